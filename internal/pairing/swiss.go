package pairing

import (
	"slices"
	"sort"
	"time"

	"github.com/DanielFonsecaa/42chess/internal/tournament"
	"github.com/google/uuid"
)

// Entrant is a participant as the Swiss pairer sees it.
type Entrant struct {
	ID       uuid.UUID
	Points   float64
	ByeCount int
	JoinedAt time.Time
}

func Entrants(participants []tournament.Participant, standings *Standings) []Entrant {
	entrants := make([]Entrant, 0, len(participants))
	for _, p := range participants {
		entrants = append(entrants, Entrant{
			ID:       p.ID,
			Points:   standings.Points(p.ID),
			ByeCount: p.ByeCount,
			JoinedAt: p.CreatedAt,
		})
	}
	return entrants
}

// Rank orders entrants by points desc, bye count asc, join time asc.
// Entrants equal on all three keep their input order.
func Rank(entrants []Entrant) []Entrant {
	ranked := slices.Clone(entrants)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.ByeCount != b.ByeCount {
			return a.ByeCount < b.ByeCount
		}
		return a.JoinedAt.Before(b.JoinedAt)
	})
	return ranked
}

// SwissRound pairs one round greedily down the ranking. Each entrant takes the
// highest-ranked remaining opponent it has not met yet, or the next one in
// line when it has met them all. An odd entrant out gets the bye, unless a
// never-byed entrant with strictly fewer points can take it instead.
func SwissRound(entrants []Entrant, havePlayed func(a, b uuid.UUID) bool) []Pair {
	pool := Rank(entrants)
	remaining := slices.Clone(pool)
	pairs := make([]Pair, 0, len(pool)/2+1)

	for len(remaining) > 1 {
		top := remaining[0]
		remaining = remaining[1:]

		idx := slices.IndexFunc(remaining, func(op Entrant) bool {
			return !havePlayed(top.ID, op.ID)
		})
		if idx < 0 {
			idx = 0
		}
		opponent := remaining[idx].ID
		remaining = slices.Delete(remaining, idx, idx+1)

		pairs = append(pairs, Pair{PlayerA: top.ID, PlayerB: &opponent})
	}

	if len(remaining) == 1 {
		pairs = assignBye(pairs, pool, remaining[0])
	}
	return pairs
}

func assignBye(pairs []Pair, pool []Entrant, leftover Entrant) []Pair {
	var candidate *Entrant
	for i := range pool {
		e := &pool[i]
		if e.ByeCount != 0 || e.Points >= leftover.Points {
			continue
		}
		// <= so the lowest-ranked of equally low scorers wins the bye
		if candidate == nil || e.Points <= candidate.Points {
			candidate = e
		}
	}

	if candidate == nil {
		return append(pairs, Pair{PlayerA: leftover.ID})
	}

	for i, p := range pairs {
		switch {
		case p.PlayerA == candidate.ID:
			pairs[i].PlayerA = leftover.ID
		case p.PlayerB != nil && *p.PlayerB == candidate.ID:
			id := leftover.ID
			pairs[i].PlayerB = &id
		default:
			continue
		}
		break
	}
	return append(pairs, Pair{PlayerA: candidate.ID})
}
