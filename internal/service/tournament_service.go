package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/DanielFonsecaa/42chess/internal/pairing"
	"github.com/DanielFonsecaa/42chess/internal/store"
	"github.com/DanielFonsecaa/42chess/internal/tournament"
	"github.com/DanielFonsecaa/42chess/internal/utils"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type TournamentService struct {
	db        *sqlx.DB
	store     *store.TournamentStore
	userStore *store.UserStore
	now       func() time.Time
}

func NewTournamentService(db *sqlx.DB, store *store.TournamentStore, userStore *store.UserStore) *TournamentService {
	return &TournamentService{db: db, store: store, userStore: userStore, now: time.Now}
}

type CreateTournamentInput struct {
	Name      string     `json:"name"`
	StartedAt *time.Time `json:"startedAt"`
	TimeGame  *int       `json:"timeGame"`
}

// UpdateTournamentInput changes only the fields that are set.
type UpdateTournamentInput struct {
	Name      *string    `json:"name"`
	StartedAt *time.Time `json:"startedAt"`
	TimeGame  *int       `json:"timeGame"`
}

// TournamentDetail is everything the tournament page shows.
type TournamentDetail struct {
	Tournament   *tournament.Tournament   `json:"tournament"`
	Participants []tournament.Participant `json:"participants"`
	Matches      []tournament.Match       `json:"matches"`
	Standings    []tournament.Standing    `json:"standings"`
	CurrentRound int                      `json:"currentRound"`
}

func (s *TournamentService) CreateTournament(ctx context.Context, in CreateTournamentInput) (*tournament.Tournament, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, tournament.ErrNameRequired
	}
	timeGame := utils.OrDefault(in.TimeGame, tournament.DefaultTimeGame)
	if timeGame <= 0 {
		return nil, tournament.ErrInvalidTimeGame
	}

	now := s.now().UTC()
	startedAt := now
	if in.StartedAt != nil {
		startedAt = in.StartedAt.UTC()
	}

	t := &tournament.Tournament{
		ID:        uuid.New(),
		Name:      name,
		TimeGame:  timeGame,
		CreatedAt: now,
		StartedAt: &startedAt,
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if err := s.store.CreateTournament(ctx, tx, t); err != nil {
		return nil, fmt.Errorf("failed to create tournament: %w", err)
	}
	return t, tx.Commit()
}

func (s *TournamentService) UpdateTournament(ctx context.Context, id uuid.UUID, in UpdateTournamentInput) (*tournament.Tournament, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	t, err := s.store.GetTournament(ctx, tx, id)
	if err != nil {
		return nil, orNotFound(err, tournament.ErrTournamentNotFound)
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, tournament.ErrNameRequired
		}
		t.Name = name
	}
	if in.TimeGame != nil {
		if *in.TimeGame <= 0 {
			return nil, tournament.ErrInvalidTimeGame
		}
		t.TimeGame = *in.TimeGame
	}
	if in.StartedAt != nil {
		startedAt := in.StartedAt.UTC()
		t.StartedAt = &startedAt
	}

	if err := s.store.UpdateTournament(ctx, tx, t); err != nil {
		return nil, fmt.Errorf("failed to update tournament: %w", orNotFound(err, tournament.ErrTournamentNotFound))
	}
	return t, tx.Commit()
}

// JoinTournament adds the user to the tournament. A second join by the same
// user is a conflict, not a persistence failure.
func (s *TournamentService) JoinTournament(ctx context.Context, tournamentID, userID uuid.UUID) (*tournament.Participant, error) {
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

	user, err := s.userStore.GetUser(ctx, tx, userID)
	if err != nil {
		return nil, orNotFound(err, tournament.ErrUserNotFound)
	}

	p := &tournament.Participant{
		ID:           uuid.New(),
		TournamentID: tournamentID,
		UserID:       userID,
		CreatedAt:    s.now().UTC(),
		Username:     user.Username,
	}
	if err := s.store.CreateParticipant(ctx, tx, p); err != nil {
		if errors.Is(err, store.ErrUniqueViolation) {
			return nil, tournament.ErrAlreadyJoined
		}
		return nil, fmt.Errorf("failed to create participant: %w", err)
	}
	return p, tx.Commit()
}

// CloseTournament picks the winner from the final standings and freezes the
// tournament. Every created round must be fully scored.
func (s *TournamentService) CloseTournament(ctx context.Context, id uuid.UUID) (*tournament.Tournament, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	t, err := s.store.GetTournament(ctx, tx, id)
	if err != nil {
		return nil, orNotFound(err, tournament.ErrTournamentNotFound)
	}
	if t.IsClosed() {
		return nil, tournament.ErrTournamentClosed
	}

	matches, err := s.store.GetMatches(ctx, tx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load matches: %w", err)
	}
	if pairing.MaxRound(matches) == 0 {
		return nil, tournament.ErrNoRounds
	}
	if round := pairing.FirstIncompleteRound(matches); round > 0 {
		return nil, &tournament.RoundIncompleteError{Round: round}
	}

	participants, err := s.store.GetParticipants(ctx, tx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load participants: %w", err)
	}
	winner := pairing.ComputeStandings(participantIDs(participants), matches).Winner(participants)

	endedAt := s.now().UTC()
	if err := s.store.CloseTournament(ctx, tx, id, endedAt, winner); err != nil {
		return nil, fmt.Errorf("failed to close tournament: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	t.EndedAt = &endedAt
	t.WinnerID = winner
	event := zerolog.Ctx(ctx).Info().Str("tournament_id", id.String())
	if winner != nil {
		event = event.Str("winner_id", winner.String())
	}
	event.Msg("tournament closed")
	return t, nil
}

// ResetTournament drops every round and reopens the tournament, keeping its
// participants.
func (s *TournamentService) ResetTournament(ctx context.Context, id uuid.UUID) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.store.ResetTournament(ctx, tx, id); err != nil {
		return orNotFound(err, tournament.ErrTournamentNotFound)
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	zerolog.Ctx(ctx).Info().Str("tournament_id", id.String()).Msg("tournament reset")
	return nil
}

func (s *TournamentService) DeleteTournament(ctx context.Context, id uuid.UUID) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.store.DeleteTournament(ctx, tx, id); err != nil {
		return orNotFound(err, tournament.ErrTournamentNotFound)
	}
	return tx.Commit()
}

func (s *TournamentService) ListTournaments(ctx context.Context) ([]tournament.Tournament, error) {
	return s.store.ListTournaments(ctx)
}

// GetTournamentDetail loads the tournament, its participants and its matches
// concurrently, then derives the standings.
func (s *TournamentService) GetTournamentDetail(ctx context.Context, id uuid.UUID) (*TournamentDetail, error) {
	var (
		t            *tournament.Tournament
		participants []tournament.Participant
		matches      []tournament.Match
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		t, err = s.store.GetTournament(gctx, s.db, id)
		return orNotFound(err, tournament.ErrTournamentNotFound)
	})
	g.Go(func() error {
		var err error
		participants, err = s.store.GetParticipants(gctx, s.db, id)
		return err
	})
	g.Go(func() error {
		var err error
		matches, err = s.store.GetMatches(gctx, s.db, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	standings := pairing.ComputeStandings(participantIDs(participants), matches)
	return &TournamentDetail{
		Tournament:   t,
		Participants: participants,
		Matches:      matches,
		Standings:    standings.Table(participants),
		CurrentRound: pairing.MaxRound(matches),
	}, nil
}

// Standings ranks participants by points, ties in join order.
func (s *TournamentService) Standings(ctx context.Context, id uuid.UUID) ([]tournament.Standing, error) {
	if _, err := s.store.GetTournament(ctx, s.db, id); err != nil {
		return nil, orNotFound(err, tournament.ErrTournamentNotFound)
	}
	participants, err := s.store.GetParticipants(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	matches, err := s.store.GetMatches(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	return pairing.ComputeStandings(participantIDs(participants), matches).Table(participants), nil
}

func participantIDs(participants []tournament.Participant) []uuid.UUID {
	ids := make([]uuid.UUID, len(participants))
	for i, p := range participants {
		ids[i] = p.ID
	}
	return ids
}
