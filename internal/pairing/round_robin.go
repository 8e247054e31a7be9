package pairing

import "github.com/google/uuid"

// MaxRoundRobinSize is the largest cohort paired round-robin; bigger ones go Swiss.
const MaxRoundRobinSize = 10

func UsesRoundRobin(participantCount int) bool {
	return participantCount >= 2 && participantCount <= MaxRoundRobinSize
}

// RoundRobinSchedule builds the full circle-method schedule for ids, which
// must be in join order. An odd cohort is padded with an empty slot and
// whoever draws it gets the bye. Returns nil for fewer than two ids.
func RoundRobinSchedule(ids []uuid.UUID) [][]Pair {
	if len(ids) < 2 {
		return nil
	}

	slots := make([]*uuid.UUID, 0, len(ids)+1)
	for i := range ids {
		id := ids[i]
		slots = append(slots, &id)
	}
	if len(slots)%2 == 1 {
		slots = append(slots, nil)
	}

	n := len(slots)
	rounds := make([][]Pair, 0, n-1)
	for r := 0; r < n-1; r++ {
		pairs := make([]Pair, 0, n/2)
		for i := 0; i < n/2; i++ {
			a, b := slots[i], slots[n-1-i]
			switch {
			case a == nil:
				pairs = append(pairs, Pair{PlayerA: *b})
			case b == nil:
				pairs = append(pairs, Pair{PlayerA: *a})
			default:
				pairs = append(pairs, Pair{PlayerA: *a, PlayerB: b})
			}
		}
		rounds = append(rounds, byesLast(pairs))

		// First slot stays fixed, the last one moves to index 1
		last := slots[n-1]
		copy(slots[2:], slots[1:n-1])
		slots[1] = last
	}

	return rounds
}
