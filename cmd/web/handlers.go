package main

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/DanielFonsecaa/42chess/internal/httputil"
	"github.com/DanielFonsecaa/42chess/internal/middleware"
	"github.com/DanielFonsecaa/42chess/internal/pairing"
	"github.com/DanielFonsecaa/42chess/internal/service"
	"github.com/DanielFonsecaa/42chess/internal/tournament"
	"github.com/DanielFonsecaa/42chess/views"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/markbates/goth/gothic"
	"github.com/rs/zerolog"
)

func uuidParam(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid %s", tournament.ErrValidation, name)
	}
	return id, nil
}

func (app *application) health(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

func (app *application) listTournaments(w http.ResponseWriter, r *http.Request) {
	tournaments, err := app.tournaments.ListTournaments(r.Context())
	if err != nil {
		httputil.Error(w, r, err)
		return
	}
	if tournaments == nil {
		tournaments = []tournament.Tournament{}
	}
	httputil.WriteJSON(w, r, http.StatusOK, tournaments)
}

func (app *application) createTournament(w http.ResponseWriter, r *http.Request) {
	var in service.CreateTournamentInput
	if err := httputil.ReadJSON(w, r, &in); err != nil {
		httputil.BadRequest(w, r, err.Error(), err)
		return
	}

	created, err := app.tournaments.CreateTournament(r.Context(), in)
	if err != nil {
		httputil.Error(w, r, err)
		return
	}
	zerolog.Ctx(r.Context()).Info().Str("tournament_id", created.ID.String()).Msg("tournament created")
	httputil.WriteJSON(w, r, http.StatusCreated, created)
}

func (app *application) getTournament(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		httputil.Error(w, r, err)
		return
	}

	detail, err := app.tournaments.GetTournamentDetail(r.Context(), id)
	if err != nil {
		httputil.Error(w, r, err)
		return
	}
	httputil.WriteJSON(w, r, http.StatusOK, detail)
}

func (app *application) updateTournament(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		httputil.Error(w, r, err)
		return
	}

	var in service.UpdateTournamentInput
	if err := httputil.ReadJSON(w, r, &in); err != nil {
		httputil.BadRequest(w, r, err.Error(), err)
		return
	}

	updated, err := app.tournaments.UpdateTournament(r.Context(), id, in)
	if err != nil {
		httputil.Error(w, r, err)
		return
	}
	httputil.WriteJSON(w, r, http.StatusOK, updated)
}

func (app *application) deleteTournament(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		httputil.Error(w, r, err)
		return
	}
	if err := app.tournaments.DeleteTournament(r.Context(), id); err != nil {
		httputil.Error(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (app *application) joinTournament(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		httputil.Error(w, r, err)
		return
	}
	user := middleware.GetAuthenticatedUser(r.Context())

	participant, err := app.tournaments.JoinTournament(r.Context(), id, user.ID)
	if err != nil {
		httputil.Error(w, r, err)
		return
	}
	httputil.WriteJSON(w, r, http.StatusCreated, participant)
}

func (app *application) startNextRound(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		httputil.Error(w, r, err)
		return
	}

	round, err := app.rounds.StartNextRound(r.Context(), id)
	if err != nil {
		httputil.Error(w, r, err)
		return
	}

	matches, err := app.matches.ListMatches(r.Context(), id, &round)
	if err != nil {
		httputil.Error(w, r, err)
		return
	}
	httputil.WriteJSON(w, r, http.StatusCreated, map[string]any{"round": round, "matches": matches})
}

func (app *application) closeTournament(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		httputil.Error(w, r, err)
		return
	}

	closed, err := app.tournaments.CloseTournament(r.Context(), id)
	if err != nil {
		httputil.Error(w, r, err)
		return
	}
	httputil.WriteJSON(w, r, http.StatusOK, closed)
}

func (app *application) resetTournament(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		httputil.Error(w, r, err)
		return
	}
	if err := app.tournaments.ResetTournament(r.Context(), id); err != nil {
		httputil.Error(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (app *application) listMatches(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		httputil.Error(w, r, err)
		return
	}

	var round *int
	if v := r.URL.Query().Get("round"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			httputil.BadRequest(w, r, "round must be a positive integer", err)
			return
		}
		round = &n
	}

	matches, err := app.matches.ListMatches(r.Context(), id, round)
	if err != nil {
		httputil.Error(w, r, err)
		return
	}
	if matches == nil {
		matches = []tournament.Match{}
	}
	httputil.WriteJSON(w, r, http.StatusOK, matches)
}

func (app *application) setMatchResult(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		httputil.Error(w, r, err)
		return
	}
	matchID, err := uuidParam(r, "matchId")
	if err != nil {
		httputil.Error(w, r, err)
		return
	}

	var in pairing.ResultInput
	if err := httputil.ReadJSON(w, r, &in); err != nil {
		httputil.BadRequest(w, r, err.Error(), err)
		return
	}

	match, err := app.matches.SetMatchResult(r.Context(), id, matchID, in)
	if err != nil {
		httputil.Error(w, r, err)
		return
	}
	httputil.WriteJSON(w, r, http.StatusOK, match)
}

func (app *application) standings(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		httputil.Error(w, r, err)
		return
	}

	standings, err := app.tournaments.Standings(r.Context(), id)
	if err != nil {
		httputil.Error(w, r, err)
		return
	}
	if standings == nil {
		standings = []tournament.Standing{}
	}
	httputil.WriteJSON(w, r, http.StatusOK, standings)
}

func (app *application) tournamentPage(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		httputil.Error(w, r, err)
		return
	}

	detail, err := app.tournaments.GetTournamentDetail(r.Context(), id)
	if err != nil {
		httputil.Error(w, r, err)
		return
	}

	data := views.PrepareRoundsData(detail.Participants, detail.Matches)
	if err := views.Render(w, r, views.TournamentPage(detail.Tournament, detail.Standings, data)); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to render tournament page")
	}
}

func (app *application) beginAuth(w http.ResponseWriter, r *http.Request) {
	r = gothic.GetContextWithProvider(r, chi.URLParam(r, "provider"))
	gothic.BeginAuthHandler(w, r)
}

func (app *application) completeAuth(w http.ResponseWriter, r *http.Request) {
	r = gothic.GetContextWithProvider(r, chi.URLParam(r, "provider"))

	gothUser, err := gothic.CompleteUserAuth(w, r)
	if err != nil {
		httputil.BadRequest(w, r, "Authentication failure", err)
		return
	}

	user, err := app.users.FindOrCreateUserByProvider(r.Context(), gothUser)
	if err != nil {
		httputil.InternalServerError(w, r, "Failed to find or create user", err)
		return
	}

	if err := app.sessions.RenewToken(r.Context()); err != nil {
		httputil.InternalServerError(w, r, "Failed to renew session", err)
		return
	}
	app.sessions.Put(r.Context(), middleware.SessionUserKey, user.ID.String())
	httputil.WriteJSON(w, r, http.StatusOK, user)
}

func (app *application) guestLogin(w http.ResponseWriter, r *http.Request) {
	user, err := app.users.EnsureGuestUser(r.Context())
	if err != nil {
		httputil.InternalServerError(w, r, "Failed to login as guest", err)
		return
	}

	if err := app.sessions.RenewToken(r.Context()); err != nil {
		httputil.InternalServerError(w, r, "Failed to renew session", err)
		return
	}
	app.sessions.Put(r.Context(), middleware.SessionUserKey, user.ID.String())
	httputil.WriteJSON(w, r, http.StatusOK, user)
}

func (app *application) logout(w http.ResponseWriter, r *http.Request) {
	if err := app.sessions.Destroy(r.Context()); err != nil {
		httputil.InternalServerError(w, r, "Failed to end session", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (app *application) me(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, r, http.StatusOK, middleware.GetAuthenticatedUser(r.Context()))
}
