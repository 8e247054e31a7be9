package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DanielFonsecaa/42chess/internal/config"
	"github.com/DanielFonsecaa/42chess/internal/db"
	"github.com/DanielFonsecaa/42chess/internal/logging"
	"github.com/DanielFonsecaa/42chess/internal/middleware"
	"github.com/DanielFonsecaa/42chess/internal/pairing"
	"github.com/DanielFonsecaa/42chess/internal/service"
	"github.com/DanielFonsecaa/42chess/internal/store"
	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/rs/zerolog"
)

type application struct {
	config    *config.Config
	logger    zerolog.Logger
	sessions  *scs.SessionManager
	userStore *store.UserStore

	tournaments *service.TournamentService
	rounds      *service.RoundService
	matches     *service.MatchService
	users       *service.UserService
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	logger := logging.New(cfg.LogLevel)

	database, err := db.InitDB(cfg.DBPath, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open database")
	}
	defer database.Close()

	if err := db.RunMigrations(database.DB); err != nil {
		logger.Fatal().Err(err).Msg("failed to run migrations")
	}

	providers := middleware.InitAuth(cfg.OAuth)
	logger.Info().Strs("providers", providers).Msg("oauth providers registered")

	sessionManager := scs.New()
	sessionManager.Lifetime = cfg.SessionLifetime
	sessionManager.Store = sqlite3store.New(database.DB)

	tournamentStore := store.NewTournamentStore(database)
	userStore := store.NewUserStore(database)

	app := &application{
		config:      cfg,
		logger:      logger,
		sessions:    sessionManager,
		userStore:   userStore,
		tournaments: service.NewTournamentService(database, tournamentStore, userStore),
		rounds:      service.NewRoundService(database, tournamentStore, pairing.RandomSides(newRand())),
		matches:     service.NewMatchService(database, tournamentStore),
		users:       service.NewUserService(userStore, cfg.AdminEmails),
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      newRouter(app),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info().Str("address", server.Addr).Msg("server starting")
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("server error")
		}
	case sig := <-quit:
		logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logger.Error().Err(err).Msg("graceful shutdown failed")
			server.Close()
		}
	}
	logger.Info().Msg("server stopped")
}

// newRand seeds side assignment from the runtime's random source.
func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}
