package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"

	"github.com/domeballhq/match-engine/internal/config"
	"github.com/domeballhq/match-engine/internal/engine"
	"github.com/domeballhq/match-engine/internal/handler"
	"github.com/domeballhq/match-engine/internal/logger"
	"github.com/domeballhq/match-engine/internal/repository"
	"github.com/domeballhq/match-engine/internal/repository/postgres"
	"github.com/domeballhq/match-engine/internal/service"
)

func main() {
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("❌ Config loading failed: %v", err)
	}

	appLogger, err := logger.New(&cfg.Logger)
	if err != nil {
		log.Fatalf("❌ Logger initialization failed: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repo, err := repository.New(ctx, cfg, &appLogger)
	if err != nil {
		log.Fatalf("❌ Postgres connection failed: %v", err)
	}
	defer repo.Close()

	if err := repo.Migrate(ctx); err != nil {
		log.Fatalf("❌ Migrations failed: %v", err)
	}

	matchRepo, err := postgres.NewMatchRepository(repo.Pool())
	if err != nil {
		log.Fatalf("❌ Match repository init failed: %v", err)
	}

	matchSvc := service.NewMatchService(matchRepo, tuningFromConfig(cfg.Engine), appLogger)

	if cfg.Logger.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	handler.Register(router, postgres.NewPinger(repo.Pool()), matchSvc)

	srv := &http.Server{
		Addr:        fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:     cors.Default().Handler(router),
		ReadTimeout: time.Duration(cfg.Server.ReadTimeout) * time.Second,
		// No WriteTimeout: SSE match streams stay open for minutes.
	}

	go func() {
		appLogger.Info().Str("addr", srv.Addr).Msg("🚀 Service started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	appLogger.Info().Msg("shutdown signal received")

	shutdownTimeout := time.Duration(cfg.Server.ShutdownTimeout) * time.Second
	if shutdownTimeout <= 0 {
		shutdownTimeout = 15 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error().Err(err).Msg("graceful shutdown failed")
	}
	appLogger.Info().Msg("✅ Service stopped")
}

// tuningFromConfig overlays the operator-facing knobs onto the defaults.
func tuningFromConfig(ec config.EngineConfig) engine.Tuning {
	tune := engine.DefaultTuning()
	if ec.TicksPerMinute > 0 {
		tune.TicksPerMinute = ec.TicksPerMinute
	}
	if ec.SubStaminaFloor > 0 {
		tune.SubStaminaThreshold = float64(ec.SubStaminaFloor)
	}
	if ec.BaseInjuryRate > 0 {
		tune.BaseInjuryRate = ec.BaseInjuryRate
	}
	return tune
}
