package views

import (
	"sort"

	"github.com/DanielFonsecaa/42chess/internal/tournament"
	"github.com/google/uuid"
)

type RoundsData struct {
	Rounds    map[int][]tournament.Match
	RoundNums []int
	Names     map[uuid.UUID]string
}

// PrepareRoundsData groups matches by round, boards in order, newest round
// first.
func PrepareRoundsData(participants []tournament.Participant, matches []tournament.Match) RoundsData {
	names := make(map[uuid.UUID]string, len(participants))
	for _, p := range participants {
		name := p.Username
		if name == "" {
			name = p.ID.String()[:8]
		}
		names[p.ID] = name
	}

	rounds := make(map[int][]tournament.Match)
	var roundNums []int
	for _, m := range matches {
		if _, exists := rounds[m.Round]; !exists {
			roundNums = append(roundNums, m.Round)
		}
		rounds[m.Round] = append(rounds[m.Round], m)
	}

	sort.Sort(sort.Reverse(sort.IntSlice(roundNums)))
	for _, r := range roundNums {
		sort.Slice(rounds[r], func(i, j int) bool {
			return rounds[r][i].Board < rounds[r][j].Board
		})
	}

	return RoundsData{Rounds: rounds, RoundNums: roundNums, Names: names}
}

func (d RoundsData) Name(id *uuid.UUID) string {
	if id == nil {
		return "bye"
	}
	if name, ok := d.Names[*id]; ok {
		return name
	}
	return "?"
}
