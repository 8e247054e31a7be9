package httputil

import (
	"errors"
	"net/http"

	"github.com/DanielFonsecaa/42chess/internal/tournament"
	"github.com/rs/zerolog"
)

type errorBody struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// StatusFor maps an error kind onto its HTTP status.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, tournament.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, tournament.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, tournament.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, tournament.ErrPrecondition):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// Error writes err as {"error","kind"}. Internal errors are logged and their
// text is not sent to the client.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	body := errorBody{Error: err.Error(), Kind: tournament.Kind(err)}

	logger := zerolog.Ctx(r.Context())
	if status == http.StatusInternalServerError {
		logger.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		body.Error = "internal server error"
	} else {
		logger.Debug().Err(err).Str("kind", body.Kind).Msg("request rejected")
	}

	WriteJSON(w, r, status, body)
}

func InternalServerError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	zerolog.Ctx(r.Context()).Error().Err(err).Msg(msg)
	WriteJSON(w, r, http.StatusInternalServerError, errorBody{Error: "internal server error", Kind: "internal"})
}

func BadRequest(w http.ResponseWriter, r *http.Request, msg string, err error) {
	event := zerolog.Ctx(r.Context()).Warn().Str("message", msg)
	if err != nil {
		event = event.Err(err)
	}
	event.Msg("bad request")
	WriteJSON(w, r, http.StatusBadRequest, errorBody{Error: msg, Kind: "validation"})
}

func Unauthorized(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, r, http.StatusUnauthorized, errorBody{Error: "login required", Kind: "unauthorized"})
}

func Forbidden(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, r, http.StatusForbidden, errorBody{Error: "admin only", Kind: "forbidden"})
}
