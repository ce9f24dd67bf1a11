package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iamasit07/4-in-a-row/engine/internal/config"
	"github.com/iamasit07/4-in-a-row/engine/internal/domain"
	"github.com/iamasit07/4-in-a-row/engine/internal/service/cleanup"
	"github.com/iamasit07/4-in-a-row/engine/internal/service/game"
	transportHttp "github.com/iamasit07/4-in-a-row/engine/internal/transport/http"
	"github.com/iamasit07/4-in-a-row/engine/internal/transport/websocket"
	"github.com/iamasit07/4-in-a-row/engine/pkg/logger"
	"github.com/rs/zerolog/log"
)

func main() {
	config.LoadEnv()
	cfg := config.LoadConfig()
	logger.Setup(cfg.LogLevel, cfg.LogPretty)

	p1, err := domain.ParsePlayerConfig(cfg.Player1)
	if err != nil {
		log.Fatal().Err(err).Str("value", cfg.Player1).Msg("invalid PLAYER1")
	}
	p2, err := domain.ParsePlayerConfig(cfg.Player2)
	if err != nil {
		log.Fatal().Err(err).Str("value", cfg.Player2).Msg("invalid PLAYER2")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	matches := game.NewManager(cfg.SearchTimeout, cfg.MatchIdleTTL)

	cleanupWorker := cleanup.NewWorker(matches, cfg.CleanupInterval)
	go cleanupWorker.Start(ctx)

	connManager := websocket.NewConnectionManager()
	wsHandler := websocket.NewHandler(connManager, matches, [2]domain.PlayerConfig{p1, p2})

	router := transportHttp.NewRouter(cfg, matches, wsHandler.HandleWebSocket)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("server is shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited gracefully")
}
