package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/DanielFonsecaa/42chess/internal/pairing"
	"github.com/DanielFonsecaa/42chess/internal/tournament"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartNextRound_TwoPlayers(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	tour, participants := svc.seedTournament(t, 2)
	a, b := participants[0], participants[1]

	round, err := svc.rounds.StartNextRound(ctx, tour.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, round)

	matches := svc.roundMatches(t, tour.ID, 1)
	require.Len(t, matches, 1)
	match := matches[0]
	assert.Equal(t, 1, match.Board)
	assert.Equal(t, a.ID, match.PlayerAID)
	require.NotNil(t, match.PlayerBID)
	assert.Equal(t, b.ID, *match.PlayerBID)
	assert.False(t, match.IsScored(), "two-player matches start unscored")

	fetched, err := svc.store.GetTournament(ctx, svc.db, tour.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched.StartedAt)

	updated, err := svc.matches.SetMatchResult(ctx, tour.ID, match.ID, pairing.ResultInput{Result: pairing.ResultDraw})
	require.NoError(t, err)
	assert.Equal(t, 0.5, *updated.ScoreA)
	assert.Equal(t, 0.5, *updated.ScoreB)

	closed, err := svc.tournaments.CloseTournament(ctx, tour.ID)
	require.NoError(t, err)
	require.NotNil(t, closed.WinnerID)
	assert.Equal(t, a.ID, *closed.WinnerID, "tied points go to the earliest joiner")

	t.Run("a two-player round robin has one round", func(t *testing.T) {
		svc := newTestServices(t)
		tour, _ := svc.seedTournament(t, 2)
		_, err := svc.rounds.StartNextRound(ctx, tour.ID)
		require.NoError(t, err)
		svc.scoreRound(t, tour.ID, 1)

		_, err = svc.rounds.StartNextRound(ctx, tour.ID)
		assert.ErrorIs(t, err, tournament.ErrAllRoundsCreated)
	})
}

func TestStartNextRound_Preconditions(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name         string
		participants int
		expected     error
	}{
		{name: "no participants", participants: 0, expected: tournament.ErrNotEnoughParticipants},
		{name: "one participant", participants: 1, expected: tournament.ErrNotEnoughParticipants},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc := newTestServices(t)
			tour, _ := svc.seedTournament(t, tc.participants)

			_, err := svc.rounds.StartNextRound(ctx, tour.ID)
			assert.ErrorIs(t, err, tc.expected)
			assert.ErrorIs(t, err, tournament.ErrPrecondition)
		})
	}

	t.Run("unknown tournament", func(t *testing.T) {
		svc := newTestServices(t)
		_, err := svc.rounds.StartNextRound(ctx, uuid.New())
		assert.ErrorIs(t, err, tournament.ErrTournamentNotFound)
	})

	t.Run("closed tournament", func(t *testing.T) {
		svc := newTestServices(t)
		tour, _ := svc.seedTournament(t, 2)
		_, err := svc.rounds.StartNextRound(ctx, tour.ID)
		require.NoError(t, err)
		svc.scoreRound(t, tour.ID, 1)
		_, err = svc.tournaments.CloseTournament(ctx, tour.ID)
		require.NoError(t, err)

		_, err = svc.rounds.StartNextRound(ctx, tour.ID)
		assert.ErrorIs(t, err, tournament.ErrTournamentClosed)
	})
}

func TestStartNextRound_SecondCallWithoutScoresFails(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	tour, _ := svc.seedTournament(t, 4)

	round, err := svc.rounds.StartNextRound(ctx, tour.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, round)

	_, err = svc.rounds.StartNextRound(ctx, tour.ID)
	assert.ErrorIs(t, err, tournament.ErrPreviousRoundIncomplete)

	matches, err := svc.store.GetMatches(ctx, svc.db, tour.ID)
	require.NoError(t, err)
	assert.Len(t, matches, 2)
	assert.Equal(t, 1, pairing.MaxRound(matches))
}

func TestStartNextRound_ConcurrentCallsCreateOneRound(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	tour, _ := svc.seedTournament(t, 6)

	const callers = 4
	var wg sync.WaitGroup
	errs := make([]error, callers)
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = svc.rounds.StartNextRound(ctx, tour.ID)
		}()
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, tournament.ErrPreviousRoundIncomplete)
	}
	assert.Equal(t, 1, succeeded)

	matches, err := svc.store.GetMatches(ctx, svc.db, tour.ID)
	require.NoError(t, err)
	assert.Len(t, matches, 3)
}

func TestStartNextRound_ThreePlayersBye(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	tour, participants := svc.seedTournament(t, 3)

	_, err := svc.rounds.StartNextRound(ctx, tour.ID)
	require.NoError(t, err)

	matches := svc.roundMatches(t, tour.ID, 1)
	require.Len(t, matches, 2)

	game, bye := matches[0], matches[1]
	assert.False(t, game.IsBye())
	assert.Equal(t, 1, game.Board)
	require.True(t, bye.IsBye(), "the bye takes the last board")
	assert.Equal(t, 2, bye.Board)
	assert.Equal(t, participants[0].ID, bye.PlayerAID)
	assert.Equal(t, 0.5, *bye.ScoreA)
	assert.Equal(t, 0.0, *bye.ScoreB)

	got, err := svc.store.GetParticipants(ctx, svc.db, tour.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got[0].ByeCount)
	assert.Equal(t, 0, got[1].ByeCount)
	assert.Equal(t, 0, got[2].ByeCount)

	t.Run("scoring the bye does not count it again", func(t *testing.T) {
		_, err := svc.matches.SetMatchResult(ctx, tour.ID, bye.ID, pairing.ResultInput{Result: pairing.ResultA})
		require.NoError(t, err)

		got, err := svc.store.GetParticipants(ctx, svc.db, tour.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, got[0].ByeCount)
	})
}

func TestStartNextRound_FullRoundRobin(t *testing.T) {
	for _, n := range []int{2, 3, 4, 5, 10} {
		t.Run(tournamentSize(n), func(t *testing.T) {
			svc := newTestServices(t)
			ctx := context.Background()
			tour, participants := svc.seedTournament(t, n)

			expectedRounds := n - 1
			if n%2 == 1 {
				expectedRounds = n
			}

			for r := 1; r <= expectedRounds; r++ {
				round, err := svc.rounds.StartNextRound(ctx, tour.ID)
				require.NoError(t, err)
				require.Equal(t, r, round)
				svc.scoreRound(t, tour.ID, r)
			}

			_, err := svc.rounds.StartNextRound(ctx, tour.ID)
			assert.ErrorIs(t, err, tournament.ErrAllRoundsCreated)

			matches, err := svc.store.GetMatches(ctx, svc.db, tour.ID)
			require.NoError(t, err)
			standings := pairing.ComputeStandings(participantIDs(participants), matches)
			for i := range participants {
				for j := i + 1; j < n; j++ {
					assert.True(t, standings.HavePlayed(participants[i].ID, participants[j].ID))
				}
			}

			got, err := svc.store.GetParticipants(ctx, svc.db, tour.ID)
			require.NoError(t, err)
			for _, p := range got {
				if n%2 == 1 {
					assert.Equal(t, 1, p.ByeCount)
				} else {
					assert.Equal(t, 0, p.ByeCount)
				}
			}
		})
	}
}

func TestStartNextRound_SwissFirstRoundFollowsJoinOrder(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	tour, participants := svc.seedTournament(t, 12)

	_, err := svc.rounds.StartNextRound(ctx, tour.ID)
	require.NoError(t, err)

	matches := svc.roundMatches(t, tour.ID, 1)
	require.Len(t, matches, 6)
	for i, m := range matches {
		assert.Equal(t, i+1, m.Board)
		assert.Equal(t, participants[2*i].ID, m.PlayerAID)
		require.NotNil(t, m.PlayerBID)
		assert.Equal(t, participants[2*i+1].ID, *m.PlayerBID)
	}
}

func TestStartNextRound_SwissOddFieldAndNoRematch(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	tour, participants := svc.seedTournament(t, 13)

	for r := 1; r <= 3; r++ {
		_, err := svc.rounds.StartNextRound(ctx, tour.ID)
		require.NoError(t, err)

		matches := svc.roundMatches(t, tour.ID, r)
		require.Len(t, matches, 7)

		seen := make(map[uuid.UUID]int)
		byes := 0
		for _, m := range matches {
			seen[m.PlayerAID]++
			if m.IsBye() {
				byes++
				continue
			}
			seen[*m.PlayerBID]++
		}
		assert.Equal(t, 1, byes)
		assert.Len(t, seen, 13)
		for id, count := range seen {
			assert.Equal(t, 1, count, "participant %s seated %d times", id, count)
		}

		svc.scoreRound(t, tour.ID, r)
	}

	matches, err := svc.store.GetMatches(ctx, svc.db, tour.ID)
	require.NoError(t, err)

	pairs := make(map[[2]uuid.UUID]bool)
	for _, m := range matches {
		if m.IsBye() {
			continue
		}
		key := [2]uuid.UUID{m.PlayerAID, *m.PlayerBID}
		if key[1].String() < key[0].String() {
			key[0], key[1] = key[1], key[0]
		}
		assert.False(t, pairs[key], "rematch in the first three rounds of a 13 player field")
		pairs[key] = true
	}

	got, err := svc.store.GetParticipants(ctx, svc.db, tour.ID)
	require.NoError(t, err)
	totalByes := 0
	for _, p := range got {
		assert.LessOrEqual(t, p.ByeCount, 1)
		totalByes += p.ByeCount
	}
	assert.Equal(t, 3, totalByes)
	assert.Len(t, participants, 13)
}

func TestStartNextRound_ErrorKinds(t *testing.T) {
	svc := newTestServices(t)
	tour, _ := svc.seedTournament(t, 1)

	_, err := svc.rounds.StartNextRound(context.Background(), tour.ID)
	require.Error(t, err)
	assert.Equal(t, "precondition", tournament.Kind(err))
	assert.False(t, errors.Is(err, tournament.ErrValidation))
}

func tournamentSize(n int) string {
	return map[int]string{2: "two", 3: "three", 4: "four", 5: "five", 10: "ten"}[n] + " players"
}
