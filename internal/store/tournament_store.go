package store

import (
	"context"
	"fmt"
	"time"

	"github.com/DanielFonsecaa/42chess/internal/tournament"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Reads take a QueryerContext so callers can run them either on the pool or
// inside the transaction that will write the result.
type TournamentStore struct {
	db *sqlx.DB
}

func NewTournamentStore(db *sqlx.DB) *TournamentStore {
	return &TournamentStore{db: db}
}

// DB exposes the pool for reads outside a transaction.
func (s *TournamentStore) DB() *sqlx.DB {
	return s.db
}

const (
	participantColumns = `p.id, p.tournament_id, p.user_id, p.bye_count, p.created_at, COALESCE(u.username, '') AS username`
	participantsQuery  = `SELECT ` + participantColumns + `
		FROM participants p LEFT JOIN users u ON u.id = p.user_id
		WHERE p.tournament_id = ?
		ORDER BY p.created_at ASC, p.rowid ASC`
	matchesQuery = `SELECT * FROM matches WHERE tournament_id = ? ORDER BY round ASC, board ASC`
)

func (s *TournamentStore) CreateTournament(ctx context.Context, tx *sqlx.Tx, t *tournament.Tournament) error {
	_, err := tx.NamedExecContext(ctx, `INSERT INTO tournaments (id, name, time_game, created_at, started_at)
        VALUES (:id, :name, :time_game, :created_at, :started_at)`, t)
	return translateError(err)
}

func (s *TournamentStore) GetTournament(ctx context.Context, q sqlx.QueryerContext, id uuid.UUID) (*tournament.Tournament, error) {
	var t tournament.Tournament
	if err := sqlx.GetContext(ctx, q, &t, "SELECT * FROM tournaments WHERE id = ?", id); err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *TournamentStore) ListTournaments(ctx context.Context) ([]tournament.Tournament, error) {
	var tournaments []tournament.Tournament
	err := s.db.SelectContext(ctx, &tournaments, "SELECT * FROM tournaments ORDER BY created_at DESC")
	return tournaments, err
}

func (s *TournamentStore) UpdateTournament(ctx context.Context, tx *sqlx.Tx, t *tournament.Tournament) error {
	result, err := tx.NamedExecContext(ctx, `UPDATE tournaments SET
		name = :name,
		time_game = :time_game,
		started_at = :started_at
		WHERE id = :id`, t)
	if err != nil {
		return err
	}
	return checkAffectedRows(result)
}

// SetTournamentStarted touches started_at. Safe to call on every round.
func (s *TournamentStore) SetTournamentStarted(ctx context.Context, tx *sqlx.Tx, id uuid.UUID, at time.Time) error {
	result, err := tx.ExecContext(ctx, "UPDATE tournaments SET started_at = ? WHERE id = ?", at, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result)
}

// CloseTournament writes ended_at and winner_id together.
func (s *TournamentStore) CloseTournament(ctx context.Context, tx *sqlx.Tx, id uuid.UUID, endedAt time.Time, winnerID *uuid.UUID) error {
	result, err := tx.ExecContext(ctx, "UPDATE tournaments SET ended_at = ?, winner_id = ? WHERE id = ?", endedAt, winnerID, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result)
}

func (s *TournamentStore) CreateParticipant(ctx context.Context, tx *sqlx.Tx, p *tournament.Participant) error {
	_, err := tx.NamedExecContext(ctx, `INSERT INTO participants (id, tournament_id, user_id, bye_count, created_at)
		VALUES (:id, :tournament_id, :user_id, :bye_count, :created_at)`, p)
	return translateError(err)
}

// GetParticipants returns the tournament's participants in join order.
func (s *TournamentStore) GetParticipants(ctx context.Context, q sqlx.QueryerContext, tournamentID uuid.UUID) ([]tournament.Participant, error) {
	var participants []tournament.Participant
	err := sqlx.SelectContext(ctx, q, &participants, participantsQuery, tournamentID)
	return participants, err
}

func (s *TournamentStore) GetMatches(ctx context.Context, q sqlx.QueryerContext, tournamentID uuid.UUID) ([]tournament.Match, error) {
	var matches []tournament.Match
	err := sqlx.SelectContext(ctx, q, &matches, matchesQuery, tournamentID)
	return matches, err
}

func (s *TournamentStore) GetRoundMatches(ctx context.Context, q sqlx.QueryerContext, tournamentID uuid.UUID, round int) ([]tournament.Match, error) {
	var matches []tournament.Match
	err := sqlx.SelectContext(ctx, q, &matches, "SELECT * FROM matches WHERE tournament_id = ? AND round = ? ORDER BY board ASC", tournamentID, round)
	return matches, err
}

func (s *TournamentStore) GetMatch(ctx context.Context, q sqlx.QueryerContext, id uuid.UUID) (*tournament.Match, error) {
	var match tournament.Match
	if err := sqlx.GetContext(ctx, q, &match, "SELECT * FROM matches WHERE id = ?", id); err != nil {
		return nil, err
	}
	return &match, nil
}

func (s *TournamentStore) UpdateMatchScore(ctx context.Context, tx *sqlx.Tx, id uuid.UUID, scoreA, scoreB float64) (*tournament.Match, error) {
	result, err := tx.ExecContext(ctx, "UPDATE matches SET score_a = ?, score_b = ? WHERE id = ?", scoreA, scoreB, id)
	if err != nil {
		return nil, err
	}
	if err := checkAffectedRows(result); err != nil {
		return nil, err
	}
	return s.GetMatch(ctx, tx, id)
}

// RoundBatch is every write that materialises one round: the new matches,
// one bye increment per bye match and the started_at touch.
type RoundBatch struct {
	TournamentID      uuid.UUID
	Round             int
	Matches           []tournament.Match
	ByeParticipantIDs []uuid.UUID
	StartedAt         time.Time
}

// CreateRound applies the batch inside tx. Nothing is visible until the
// caller commits.
func (s *TournamentStore) CreateRound(ctx context.Context, tx *sqlx.Tx, batch RoundBatch) error {
	if len(batch.Matches) == 0 {
		return fmt.Errorf("round %d has no matches", batch.Round)
	}

	_, err := tx.NamedExecContext(ctx, `INSERT INTO matches (id, tournament_id, round, board, player_a_id, player_b_id, score_a, score_b, created_at)
		VALUES (:id, :tournament_id, :round, :board, :player_a_id, :player_b_id, :score_a, :score_b, :created_at)`, batch.Matches)
	if err != nil {
		return fmt.Errorf("failed to insert matches: %w", translateError(err))
	}

	for _, id := range batch.ByeParticipantIDs {
		result, err := tx.ExecContext(ctx, "UPDATE participants SET bye_count = bye_count + 1 WHERE id = ? AND tournament_id = ?", id, batch.TournamentID)
		if err != nil {
			return fmt.Errorf("failed to increment bye count: %w", err)
		}
		if err := checkAffectedRows(result); err != nil {
			return fmt.Errorf("failed to increment bye count for %s: %w", id, err)
		}
	}

	if err := s.SetTournamentStarted(ctx, tx, batch.TournamentID, batch.StartedAt); err != nil {
		return fmt.Errorf("failed to mark tournament started: %w", err)
	}
	return nil
}

// ResetTournament drops every match, zeroes bye counts and reopens the
// tournament. Participants and started_at are kept.
func (s *TournamentStore) ResetTournament(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM matches WHERE tournament_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete matches: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "UPDATE participants SET bye_count = 0 WHERE tournament_id = ?", id); err != nil {
		return fmt.Errorf("failed to reset bye counts: %w", err)
	}
	result, err := tx.ExecContext(ctx, "UPDATE tournaments SET ended_at = NULL, winner_id = NULL WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to reopen tournament: %w", err)
	}
	return checkAffectedRows(result)
}

// DeleteTournament removes matches, participants, then the tournament.
func (s *TournamentStore) DeleteTournament(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM matches WHERE tournament_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete matches: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM participants WHERE tournament_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete participants: %w", err)
	}
	result, err := tx.ExecContext(ctx, "DELETE FROM tournaments WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete tournament: %w", err)
	}
	return checkAffectedRows(result)
}
