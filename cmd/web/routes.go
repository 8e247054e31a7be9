package main

import (
	"net/http"

	"github.com/DanielFonsecaa/42chess/internal/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func newRouter(app *application) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestLogger(app.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   app.config.FrontendOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", app.health)

	r.Group(func(r chi.Router) {
		r.Use(app.sessions.LoadAndSave)
		r.Use(middleware.LoadAuthenticatedUser(app.sessions, app.userStore))

		r.Get("/auth/{provider}", app.beginAuth)
		r.Get("/auth/{provider}/callback", app.completeAuth)
		r.Post("/auth/guest", app.guestLogin)
		r.Post("/auth/logout", app.logout)
		r.With(middleware.RequireAuth).Get("/me", app.me)

		r.Route("/tournaments", func(r chi.Router) {
			r.Get("/", app.listTournaments)
			r.With(middleware.RequireAdmin).Post("/", app.createTournament)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", app.getTournament)
				r.Get("/matches", app.listMatches)
				r.Get("/standings", app.standings)
				r.Get("/view", app.tournamentPage)

				r.With(middleware.RequireAuth).Post("/join", app.joinTournament)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Put("/", app.updateTournament)
					r.Delete("/", app.deleteTournament)
					r.Post("/start", app.startNextRound)
					r.Post("/close", app.closeTournament)
					r.Post("/reset", app.resetTournament)
					r.Patch("/matches/{matchId}/result", app.setMatchResult)
				})
			})
		})
	})

	return r
}
