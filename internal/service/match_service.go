package service

import (
	"context"
	"fmt"

	"github.com/DanielFonsecaa/42chess/internal/pairing"
	"github.com/DanielFonsecaa/42chess/internal/store"
	"github.com/DanielFonsecaa/42chess/internal/tournament"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
)

type MatchService struct {
	db    *sqlx.DB
	store *store.TournamentStore
}

func NewMatchService(db *sqlx.DB, store *store.TournamentStore) *MatchService {
	return &MatchService{db: db, store: store}
}

// SetMatchResult records or corrects the result of a match. Re-recording is
// allowed until the tournament is closed; the last write wins.
func (s *MatchService) SetMatchResult(ctx context.Context, tournamentID, matchID uuid.UUID, in pairing.ResultInput) (*tournament.Match, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	t, err := s.store.GetTournament(ctx, tx, tournamentID)
	if err != nil {
		return nil, orNotFound(err, tournament.ErrTournamentNotFound)
	}
	if t.IsClosed() {
		return nil, tournament.ErrTournamentClosed
	}

	match, err := s.store.GetMatch(ctx, tx, matchID)
	if err != nil {
		return nil, orNotFound(err, tournament.ErrMatchNotFound)
	}
	if match.TournamentID != tournamentID {
		return nil, tournament.ErrMatchNotFound
	}

	scoreA, scoreB, err := pairing.ResolveScores(match.IsBye(), in)
	if err != nil {
		return nil, err
	}

	updated, err := s.store.UpdateMatchScore(ctx, tx, matchID, scoreA, scoreB)
	if err != nil {
		return nil, fmt.Errorf("failed to update match score: %w", orNotFound(err, tournament.ErrMatchNotFound))
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Debug().
		Str("match_id", matchID.String()).
		Float64("score_a", scoreA).
		Float64("score_b", scoreB).
		Msg("match result recorded")
	return updated, nil
}

// ListMatches returns the tournament's matches, optionally only one round.
func (s *MatchService) ListMatches(ctx context.Context, tournamentID uuid.UUID, round *int) ([]tournament.Match, error) {
	if _, err := s.store.GetTournament(ctx, s.db, tournamentID); err != nil {
		return nil, orNotFound(err, tournament.ErrTournamentNotFound)
	}
	if round != nil {
		return s.store.GetRoundMatches(ctx, s.db, tournamentID, *round)
	}
	return s.store.GetMatches(ctx, s.db, tournamentID)
}
