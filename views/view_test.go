package views

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/DanielFonsecaa/42chess/internal/tournament"
	"github.com/DanielFonsecaa/42chess/internal/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrepareRoundsData(t *testing.T) {
	a := tournament.Participant{ID: uuid.New(), Username: "ding"}
	b := tournament.Participant{ID: uuid.New(), Username: "nepo"}
	c := tournament.Participant{ID: uuid.New()}

	matches := []tournament.Match{
		{Round: 1, Board: 2, PlayerAID: c.ID},
		{Round: 1, Board: 1, PlayerAID: a.ID, PlayerBID: &b.ID},
		{Round: 2, Board: 1, PlayerAID: c.ID, PlayerBID: &a.ID},
	}

	data := PrepareRoundsData([]tournament.Participant{a, b, c}, matches)

	assert.Equal(t, []int{2, 1}, data.RoundNums)
	require.Len(t, data.Rounds[1], 2)
	assert.Equal(t, 1, data.Rounds[1][0].Board)
	assert.Equal(t, "bye", data.Name(data.Rounds[1][1].PlayerBID))
	assert.Equal(t, "nepo", data.Name(&b.ID))
	assert.Equal(t, c.ID.String()[:8], data.Name(&c.ID))
}

func TestTournamentPage(t *testing.T) {
	a := tournament.Participant{ID: uuid.New(), Username: "<script>"}
	b := tournament.Participant{ID: uuid.New(), Username: "hikaru"}
	ended := time.Date(2025, 3, 7, 22, 0, 0, 0, time.UTC)

	tour := &tournament.Tournament{Name: "Blitz & Bullet", TimeGame: 3, EndedAt: &ended, WinnerID: &b.ID}
	matches := []tournament.Match{
		{Round: 1, Board: 1, PlayerAID: a.ID, PlayerBID: &b.ID, ScoreA: utils.Ptr(0.5), ScoreB: utils.Ptr(0.5)},
	}
	standings := []tournament.Standing{
		{ParticipantID: a.ID, Rank: 1, Points: 0.5, Played: 1},
		{ParticipantID: b.ID, Rank: 1, Points: 0.5, Played: 1},
	}

	var buf bytes.Buffer
	err := TournamentPage(tour, standings, PrepareRoundsData([]tournament.Participant{a, b}, matches)).Render(context.Background(), &buf)
	require.NoError(t, err)

	html := buf.String()
	assert.Contains(t, html, "<h1>Blitz &amp; Bullet</h1>")
	assert.Contains(t, html, "winner <strong>hikaru</strong>")
	assert.Contains(t, html, "&lt;script&gt;")
	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "<h2>Round 1</h2>")
	assert.Contains(t, html, "½ : ½")
}

func TestFormatPoints(t *testing.T) {
	testCases := map[float64]string{0: "0", 0.5: "½", 1: "1", 2.5: "2½", 7: "7"}
	for in, expected := range testCases {
		assert.Equal(t, expected, formatPoints(in))
	}
	assert.Equal(t, "-", formatScore(nil))
}
