package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/DanielFonsecaa/42chess/internal/db"
	"github.com/DanielFonsecaa/42chess/internal/pairing"
	"github.com/DanielFonsecaa/42chess/internal/store"
	"github.com/DanielFonsecaa/42chess/internal/tournament"
	users "github.com/DanielFonsecaa/42chess/internal/user"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2025, 3, 7, 19, 0, 0, 0, time.UTC)

// setupTestDB creates an in-memory SQLite database and applies migrations
func setupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	database, err := db.InitMemoryDB()
	require.NoError(t, err, "Failed to connect to in-memory DB")
	t.Cleanup(func() { database.Close() })

	require.NoError(t, db.RunMigrations(database.DB), "Failed to apply migrations")
	return database
}

// tickingClock advances one second per reading, so every join gets a
// distinct timestamp in call order.
func tickingClock(start time.Time) func() time.Time {
	var mu sync.Mutex
	current := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		current = current.Add(time.Second)
		return current
	}
}

type testServices struct {
	db          *sqlx.DB
	store       *store.TournamentStore
	userStore   *store.UserStore
	tournaments *TournamentService
	rounds      *RoundService
	matches     *MatchService
}

func newTestServices(t *testing.T) *testServices {
	t.Helper()
	database := setupTestDB(t)
	tournamentStore := store.NewTournamentStore(database)
	userStore := store.NewUserStore(database)

	clock := tickingClock(t0)
	tournaments := NewTournamentService(database, tournamentStore, userStore)
	tournaments.now = clock
	rounds := NewRoundService(database, tournamentStore, pairing.KeepSides)
	rounds.now = clock

	return &testServices{
		db:          database,
		store:       tournamentStore,
		userStore:   userStore,
		tournaments: tournaments,
		rounds:      rounds,
		matches:     NewMatchService(database, tournamentStore),
	}
}

func (s *testServices) createUser(t *testing.T, name string) *users.User {
	t.Helper()
	user := &users.User{ID: uuid.New(), Email: name + "@example.com", Username: name, CreatedAt: t0}
	require.NoError(t, s.userStore.CreateUser(context.Background(), user))
	return user
}

// seedTournament creates a tournament and joins n players, returning the
// participants in join order.
func (s *testServices) seedTournament(t *testing.T, n int) (*tournament.Tournament, []tournament.Participant) {
	t.Helper()
	ctx := context.Background()

	tour, err := s.tournaments.CreateTournament(ctx, CreateTournamentInput{Name: fmt.Sprintf("Club night (%d)", n)})
	require.NoError(t, err)

	for i := 0; i < n; i++ {
		user := s.createUser(t, fmt.Sprintf("player%02d", i))
		_, err := s.tournaments.JoinTournament(ctx, tour.ID, user.ID)
		require.NoError(t, err)
	}

	participants, err := s.store.GetParticipants(ctx, s.db, tour.ID)
	require.NoError(t, err)
	require.Len(t, participants, n)
	return tour, participants
}

func (s *testServices) roundMatches(t *testing.T, tournamentID uuid.UUID, round int) []tournament.Match {
	t.Helper()
	matches, err := s.matches.ListMatches(context.Background(), tournamentID, &round)
	require.NoError(t, err)
	return matches
}

// scoreRound gives every two-player match of the round to player A.
func (s *testServices) scoreRound(t *testing.T, tournamentID uuid.UUID, round int) {
	t.Helper()
	for _, m := range s.roundMatches(t, tournamentID, round) {
		if m.IsBye() {
			continue
		}
		_, err := s.matches.SetMatchResult(context.Background(), tournamentID, m.ID, pairing.ResultInput{Result: pairing.ResultA})
		require.NoError(t, err)
	}
}
