package pairing

import (
	"math/rand/v2"
	"sync"

	"github.com/google/uuid"
)

// Pair is one board of a round. PlayerB is nil when PlayerA has the bye.
type Pair struct {
	PlayerA uuid.UUID
	PlayerB *uuid.UUID
}

func (p Pair) IsBye() bool {
	return p.PlayerB == nil
}

// SideChooser decides whether the two players of a pairing swap sides.
type SideChooser func() bool

// KeepSides never swaps, so generated pairings come out as scheduled.
func KeepSides() bool {
	return false
}

// RandomSides swaps on a fair coin flip drawn from r. The returned chooser
// is safe for concurrent use.
func RandomSides(r *rand.Rand) SideChooser {
	var mu sync.Mutex
	return func() bool {
		mu.Lock()
		defer mu.Unlock()
		return r.IntN(2) == 0
	}
}

// AssignSides applies choose to every two-player pairing. Byes keep their
// single player on side A.
func AssignSides(pairs []Pair, choose SideChooser) []Pair {
	out := make([]Pair, len(pairs))
	for i, p := range pairs {
		if !p.IsBye() && choose() {
			a := p.PlayerA
			p = Pair{PlayerA: *p.PlayerB, PlayerB: &a}
		}
		out[i] = p
	}
	return out
}

// byesLast moves bye pairings behind every two-player pairing, keeping order otherwise.
func byesLast(pairs []Pair) []Pair {
	out := make([]Pair, 0, len(pairs))
	var byes []Pair
	for _, p := range pairs {
		if p.IsBye() {
			byes = append(byes, p)
			continue
		}
		out = append(out, p)
	}
	return append(out, byes...)
}
