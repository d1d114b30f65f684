package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	router "github.com/hectorjsiilva/impostor-game/internal/adapters/http"
	"github.com/hectorjsiilva/impostor-game/internal/adapters/ws"
	"github.com/hectorjsiilva/impostor-game/internal/config"
	"github.com/hectorjsiilva/impostor-game/internal/game"
	"github.com/hectorjsiilva/impostor-game/internal/storage"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Initialize zerolog global logger early so config.Load can use it.
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	// Human-friendly output for terminal; in production you may want JSON only.
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	var listing game.Listing = game.NopListing{}
	if cfg.PostgresDSN != "" {
		pg, err := storage.NewPostgresListing(ctx, cfg.PostgresDSN)
		if err != nil {
			log.Error().Err(err).Msg("postgres unavailable, public listing not persisted")
		} else {
			defer pg.Close()
			listing = pg
		}
	}

	hub := ws.NewHub()
	sessions := ws.NewSessions(cfg.ChatRateLimit, cfg.ChatRateBurst)
	registry := game.NewRegistry(cfg.EvictionGrace)
	engine := game.NewEngine(registry, hub, listing, game.Options{
		TurnDuration: cfg.TurnDuration,
		TickInterval: cfg.TickInterval,
		MinPlayers:   cfg.MinPlayers,
	})
	ctl := ws.NewController(engine, hub, sessions, cfg.ReadLimit, cfg.PingPeriod)

	r := router.SetupRouter(ctx, cfg, engine, ctl)
	addr := fmt.Sprintf(":%d", cfg.Port)

	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("Impostor game server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited gracefully")
}
