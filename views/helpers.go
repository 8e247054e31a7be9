package views

import (
	"context"
	"strconv"

	"github.com/DanielFonsecaa/42chess/internal/middleware"
	users "github.com/DanielFonsecaa/42chess/internal/user"
)

func GetUser(ctx context.Context) *users.User {
	return middleware.GetAuthenticatedUser(ctx)
}

// formatPoints prints 1.5 as "1½" and whole numbers without decimals.
func formatPoints(p float64) string {
	whole := int(p)
	if p-float64(whole) >= 0.5 {
		if whole == 0 {
			return "½"
		}
		return strconv.Itoa(whole) + "½"
	}
	return strconv.Itoa(whole)
}

func formatScore(score *float64) string {
	if score == nil {
		return "-"
	}
	return formatPoints(*score)
}
