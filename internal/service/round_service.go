package service

import (
	"context"
	"fmt"
	"time"

	"github.com/DanielFonsecaa/42chess/internal/pairing"
	"github.com/DanielFonsecaa/42chess/internal/store"
	"github.com/DanielFonsecaa/42chess/internal/tournament"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
)

// RoundService materialises rounds one at a time.
type RoundService struct {
	db    *sqlx.DB
	store *store.TournamentStore
	sides pairing.SideChooser
	now   func() time.Time
}

func NewRoundService(db *sqlx.DB, store *store.TournamentStore, sides pairing.SideChooser) *RoundService {
	return &RoundService{db: db, store: store, sides: sides, now: time.Now}
}

// StartNextRound creates round MaxRound+1 and returns its number.
//
// Everything is read and written inside one transaction. The database opens
// write transactions immediately, so two concurrent calls for the same
// tournament run one after the other and the second sees the first's round.
func (s *RoundService) StartNextRound(ctx context.Context, tournamentID uuid.UUID) (int, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	t, err := s.store.GetTournament(ctx, tx, tournamentID)
	if err != nil {
		return 0, orNotFound(err, tournament.ErrTournamentNotFound)
	}
	if t.IsClosed() {
		return 0, tournament.ErrTournamentClosed
	}

	participants, err := s.store.GetParticipants(ctx, tx, tournamentID)
	if err != nil {
		return 0, fmt.Errorf("failed to load participants: %w", err)
	}
	if len(participants) < 2 {
		return 0, tournament.ErrNotEnoughParticipants
	}

	matches, err := s.store.GetMatches(ctx, tx, tournamentID)
	if err != nil {
		return 0, fmt.Errorf("failed to load matches: %w", err)
	}
	last := pairing.MaxRound(matches)
	if last > 0 && !pairing.RoundComplete(matches, last) {
		return 0, tournament.ErrPreviousRoundIncomplete
	}
	next := last + 1

	pairs, err := s.pairRound(participants, matches, next)
	if err != nil {
		return 0, err
	}

	batch := newRoundBatch(tournamentID, next, pairs, s.now().UTC())
	if err := s.store.CreateRound(ctx, tx, batch); err != nil {
		return 0, fmt.Errorf("failed to create round %d: %w", next, err)
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}

	zerolog.Ctx(ctx).Info().
		Str("tournament_id", tournamentID.String()).
		Int("round", next).
		Int("matches", len(batch.Matches)).
		Int("byes", len(batch.ByeParticipantIDs)).
		Msg("round created")
	return next, nil
}

func (s *RoundService) pairRound(participants []tournament.Participant, matches []tournament.Match, round int) ([]pairing.Pair, error) {
	ids := participantIDs(participants)

	if pairing.UsesRoundRobin(len(participants)) {
		schedule := pairing.RoundRobinSchedule(ids)
		if round > len(schedule) {
			return nil, tournament.ErrAllRoundsCreated
		}
		return pairing.AssignSides(schedule[round-1], s.sides), nil
	}

	standings := pairing.ComputeStandings(ids, matches)
	return pairing.SwissRound(pairing.Entrants(participants, standings), standings.HavePlayed), nil
}

// newRoundBatch numbers boards in pairing order. Byes are born scored.
func newRoundBatch(tournamentID uuid.UUID, round int, pairs []pairing.Pair, now time.Time) store.RoundBatch {
	batch := store.RoundBatch{
		TournamentID: tournamentID,
		Round:        round,
		Matches:      make([]tournament.Match, 0, len(pairs)),
		StartedAt:    now,
	}
	for i, p := range pairs {
		m := tournament.Match{
			ID:           uuid.New(),
			TournamentID: tournamentID,
			Round:        round,
			Board:        i + 1,
			PlayerAID:    p.PlayerA,
			PlayerBID:    p.PlayerB,
			CreatedAt:    now,
		}
		if p.IsBye() {
			scoreA, scoreB := tournament.ByeScoreA, tournament.ByeScoreB
			m.ScoreA, m.ScoreB = &scoreA, &scoreB
			batch.ByeParticipantIDs = append(batch.ByeParticipantIDs, p.PlayerA)
		}
		batch.Matches = append(batch.Matches, m)
	}
	return batch
}
