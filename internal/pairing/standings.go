package pairing

import (
	"sort"

	"github.com/DanielFonsecaa/42chess/internal/tournament"
	"github.com/google/uuid"
)

type pairKey struct {
	a, b uuid.UUID
}

// Standings holds cumulative points and head-to-head history derived from a
// set of matches. Unscored matches add nothing to the points.
type Standings struct {
	points map[uuid.UUID]float64
	games  map[uuid.UUID]int
	byes   map[uuid.UUID]int
	played map[pairKey]struct{}
}

func ComputeStandings(participantIDs []uuid.UUID, matches []tournament.Match) *Standings {
	s := &Standings{
		points: make(map[uuid.UUID]float64, len(participantIDs)),
		games:  make(map[uuid.UUID]int, len(participantIDs)),
		byes:   make(map[uuid.UUID]int, len(participantIDs)),
		played: make(map[pairKey]struct{}),
	}
	for _, id := range participantIDs {
		s.points[id] = 0
	}

	for _, m := range matches {
		if m.ScoreA != nil {
			s.points[m.PlayerAID] += *m.ScoreA
		}
		if m.IsBye() {
			s.byes[m.PlayerAID]++
			continue
		}

		b := *m.PlayerBID
		if m.ScoreB != nil {
			s.points[b] += *m.ScoreB
		}
		if m.IsScored() {
			s.games[m.PlayerAID]++
			s.games[b]++
		}
		// Pairing history counts from creation, not from scoring
		s.played[pairKey{m.PlayerAID, b}] = struct{}{}
		s.played[pairKey{b, m.PlayerAID}] = struct{}{}
	}

	return s
}

func (s *Standings) Points(id uuid.UUID) float64 {
	return s.points[id]
}

func (s *Standings) HavePlayed(a, b uuid.UUID) bool {
	_, ok := s.played[pairKey{a, b}]
	return ok
}

// Table ranks participants by points, keeping join order between equals.
// participants must already be in join order.
func (s *Standings) Table(participants []tournament.Participant) []tournament.Standing {
	table := make([]tournament.Standing, 0, len(participants))
	for _, p := range participants {
		table = append(table, tournament.Standing{
			ParticipantID: p.ID,
			Username:      p.Username,
			Points:        s.points[p.ID],
			Played:        s.games[p.ID],
			Byes:          s.byes[p.ID],
		})
	}

	sort.SliceStable(table, func(i, j int) bool {
		return table[i].Points > table[j].Points
	})

	for i := range table {
		if i > 0 && table[i].Points == table[i-1].Points {
			table[i].Rank = table[i-1].Rank
		} else {
			table[i].Rank = i + 1
		}
	}
	return table
}

// Winner is the first participant in join order holding the highest total.
// Returns nil when there are no participants.
func (s *Standings) Winner(participants []tournament.Participant) *uuid.UUID {
	var winner *uuid.UUID
	best := -1.0
	for i := range participants {
		if pts := s.points[participants[i].ID]; pts > best {
			best = pts
			winner = &participants[i].ID
		}
	}
	if winner == nil {
		return nil
	}
	id := *winner
	return &id
}

// MaxRound returns the highest round number among matches, 0 when empty.
func MaxRound(matches []tournament.Match) int {
	max := 0
	for _, m := range matches {
		if m.Round > max {
			max = m.Round
		}
	}
	return max
}

// RoundComplete reports whether every match of the given round has both scores.
func RoundComplete(matches []tournament.Match, round int) bool {
	for _, m := range matches {
		if m.Round == round && !m.IsScored() {
			return false
		}
	}
	return true
}

// FirstIncompleteRound returns the lowest round in 1..MaxRound with an
// unscored match, or 0 when every created round is complete.
func FirstIncompleteRound(matches []tournament.Match) int {
	for r := 1; r <= MaxRound(matches); r++ {
		if !RoundComplete(matches, r) {
			return r
		}
	}
	return 0
}
