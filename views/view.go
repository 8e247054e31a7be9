package views

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/DanielFonsecaa/42chess/internal/tournament"
	"github.com/a-h/templ"
)

func Render(w http.ResponseWriter, r *http.Request, component templ.Component) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return component.Render(r.Context(), w)
}

// TournamentPage is the read-only standings and rounds page of a tournament.
func TournamentPage(t *tournament.Tournament, standings []tournament.Standing, data RoundsData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &printer{w: w}

		p.printf(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>%s</title></head><body>`, templ.EscapeString(t.Name))
		p.printf(`<h1>%s</h1>`, templ.EscapeString(t.Name))
		p.printf(`<p class="meta">%d min per game`, t.TimeGame)
		if t.IsClosed() {
			p.printf(` · closed, winner <strong>%s</strong>`, templ.EscapeString(data.Name(t.WinnerID)))
		}
		p.printf(`</p>`)

		if user := GetUser(ctx); user != nil {
			p.printf(`<p class="user">Signed in as %s</p>`, templ.EscapeString(user.Username))
		}

		p.printf(`<h2>Standings</h2><table class="standings"><thead><tr><th>#</th><th>Player</th><th>Pts</th><th>Games</th><th>Byes</th></tr></thead><tbody>`)
		for _, s := range standings {
			p.printf(`<tr><td>%d</td><td>%s</td><td>%s</td><td>%d</td><td>%d</td></tr>`,
				s.Rank, templ.EscapeString(data.Name(&s.ParticipantID)), formatPoints(s.Points), s.Played, s.Byes)
		}
		p.printf(`</tbody></table>`)

		for _, r := range data.RoundNums {
			p.printf(`<section class="round"><h2>Round %d</h2><table><tbody>`, r)
			for _, m := range data.Rounds[r] {
				p.printf(`<tr><td>%d</td><td>%s</td><td>%s : %s</td><td>%s</td></tr>`,
					m.Board,
					templ.EscapeString(data.Name(&m.PlayerAID)),
					formatScore(m.ScoreA), formatScore(m.ScoreB),
					templ.EscapeString(data.Name(m.PlayerBID)))
			}
			p.printf(`</tbody></table></section>`)
		}

		p.printf(`</body></html>`)
		return p.err
	})
}

// printer keeps the first write error so the page body reads straight through.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}
