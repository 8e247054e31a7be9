package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	users "github.com/DanielFonsecaa/42chess/internal/user"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	var seen string
	handler := RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		zerolog.Ctx(r.Context()).Info().Msg("inside")
		seen = w.Header().Get(requestIDHeader)
		w.WriteHeader(http.StatusTeapot)
	}))

	t.Run("keeps incoming id", func(t *testing.T) {
		buf.Reset()
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set(requestIDHeader, "abc-123")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, "abc-123", rec.Header().Get(requestIDHeader))
		assert.Equal(t, "abc-123", seen)

		lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
		require.Len(t, lines, 2)
		for _, line := range lines {
			var entry map[string]any
			require.NoError(t, json.Unmarshal(line, &entry))
			assert.Equal(t, "abc-123", entry["request_id"])
		}

		var completed map[string]any
		require.NoError(t, json.Unmarshal(lines[1], &completed))
		assert.Equal(t, float64(http.StatusTeapot), completed["status"])
	})

	t.Run("generates an id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		_, err := uuid.Parse(rec.Header().Get(requestIDHeader))
		assert.NoError(t, err)
	})
}

func TestRequireAdmin(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	testCases := []struct {
		name  string
		user  *users.User
		auth  int
		admin int
	}{
		{name: "anonymous", user: nil, auth: http.StatusUnauthorized, admin: http.StatusUnauthorized},
		{name: "player", user: &users.User{ID: uuid.New()}, auth: http.StatusNoContent, admin: http.StatusForbidden},
		{name: "admin", user: &users.User{ID: uuid.New(), IsAdmin: true}, auth: http.StatusNoContent, admin: http.StatusNoContent},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/tournaments", nil)
			if tc.user != nil {
				req = req.WithContext(WithUser(req.Context(), tc.user))
			}

			rec := httptest.NewRecorder()
			RequireAuth(ok).ServeHTTP(rec, req)
			assert.Equal(t, tc.auth, rec.Code)

			rec = httptest.NewRecorder()
			RequireAdmin(ok).ServeHTTP(rec, req)
			assert.Equal(t, tc.admin, rec.Code)
		})
	}
}
