package tournament

import (
	"time"

	"github.com/google/uuid"
)

// DefaultTimeGame is the informational clock, in minutes, given to new tournaments.
const DefaultTimeGame = 10

type Tournament struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	Name      string     `db:"name" json:"name"`
	TimeGame  int        `db:"time_game" json:"timeGame"`
	CreatedAt time.Time  `db:"created_at" json:"createdAt"`
	StartedAt *time.Time `db:"started_at" json:"startedAt"`
	EndedAt   *time.Time `db:"ended_at" json:"endedAt"`
	WinnerID  *uuid.UUID `db:"winner_id" json:"winnerId"`
}

func (t *Tournament) IsClosed() bool {
	return t.EndedAt != nil
}
