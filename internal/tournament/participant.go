package tournament

import (
	"time"

	"github.com/google/uuid"
)

type Participant struct {
	ID           uuid.UUID `db:"id" json:"id"`
	TournamentID uuid.UUID `db:"tournament_id" json:"tournamentId"`
	UserID       uuid.UUID `db:"user_id" json:"userId"`
	ByeCount     int       `db:"bye_count" json:"byeCount"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`

	// Filled from the users table when listing, not a participants column
	Username string `db:"username" json:"username,omitempty"`
}

// Standing is one row of the standings table, ranked by points then join order.
type Standing struct {
	ParticipantID uuid.UUID `json:"participantId"`
	Username      string    `json:"username,omitempty"`
	Rank          int       `json:"rank"`
	Points        float64   `json:"points"`
	Played        int       `json:"played"`
	Byes          int       `json:"byes"`
}
