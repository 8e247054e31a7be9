package pairing

import (
	"math"

	"github.com/DanielFonsecaa/42chess/internal/tournament"
)

const (
	ResultA    = "A"
	ResultB    = "B"
	ResultDraw = "draw"
)

// ResultInput is either a symbolic Result or explicit scores, never both.
type ResultInput struct {
	Result string   `json:"result,omitempty"`
	ScoreA *float64 `json:"scoreA,omitempty"`
	ScoreB *float64 `json:"scoreB,omitempty"`
}

func validScore(v float64) bool {
	return v == 0 || v == 0.5 || v == 1
}

// ResolveScores turns a result payload into the scores to persist. A bye only
// ever resolves to 0.5/0.
func ResolveScores(bye bool, in ResultInput) (scoreA, scoreB float64, err error) {
	hasScores := in.ScoreA != nil || in.ScoreB != nil
	if in.Result != "" && hasScores {
		return 0, 0, tournament.ErrAmbiguousResult
	}

	if bye {
		switch {
		case in.Result == ResultA, in.Result == ResultDraw:
			return tournament.ByeScoreA, tournament.ByeScoreB, nil
		case in.Result != "":
			return 0, 0, tournament.ErrInvalidResult
		case in.ScoreA != nil:
			if *in.ScoreA != tournament.ByeScoreA || (in.ScoreB != nil && *in.ScoreB != tournament.ByeScoreB) {
				return 0, 0, tournament.ErrInvalidByeScore
			}
			return tournament.ByeScoreA, tournament.ByeScoreB, nil
		default:
			return 0, 0, tournament.ErrMissingResult
		}
	}

	switch in.Result {
	case ResultA:
		return 1, 0, nil
	case ResultB:
		return 0, 1, nil
	case ResultDraw:
		return 0.5, 0.5, nil
	case "":
	default:
		return 0, 0, tournament.ErrInvalidResult
	}

	if in.ScoreA == nil || in.ScoreB == nil {
		return 0, 0, tournament.ErrMissingResult
	}
	a, b := *in.ScoreA, *in.ScoreB
	if !validScore(a) || !validScore(b) || math.Abs(a+b-1) > 1e-9 {
		return 0, 0, tournament.ErrInvalidScores
	}
	return a, b, nil
}
