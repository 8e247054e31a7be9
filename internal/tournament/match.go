package tournament

import (
	"time"

	"github.com/google/uuid"
)

// Points a participant is awarded for a bye. A bye is never a full win.
const (
	ByeScoreA = 0.5
	ByeScoreB = 0.0
)

type Match struct {
	ID           uuid.UUID `db:"id" json:"id"`
	TournamentID uuid.UUID `db:"tournament_id" json:"tournamentId"`

	Round int `db:"round" json:"round"`
	Board int `db:"board" json:"board"`

	PlayerAID uuid.UUID  `db:"player_a_id" json:"playerAId"`
	PlayerBID *uuid.UUID `db:"player_b_id" json:"playerBId"` // nil on a bye

	// nil until the result is recorded
	ScoreA *float64 `db:"score_a" json:"scoreA"`
	ScoreB *float64 `db:"score_b" json:"scoreB"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

func (m *Match) IsBye() bool {
	return m.PlayerBID == nil
}

func (m *Match) IsScored() bool {
	return m.ScoreA != nil && m.ScoreB != nil
}

// Involves reports whether the participant sits on either side of the match.
func (m *Match) Involves(participantID uuid.UUID) bool {
	return m.PlayerAID == participantID || (m.PlayerBID != nil && *m.PlayerBID == participantID)
}
