package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"gameguide-backend/pkg/container"
	"gameguide-backend/pkg/logger"
)

func main() {
	_ = godotenv.Load()
	logger.Init(getEnv("APP_ENV", "development"), getEnv("LOG_LEVEL", "info"))

	c, err := container.NewContainer()
	if err != nil {
		log.Fatal().Err(err).Msg("[Container] Failed to initialize")
	}
	defer c.Cleanup()

	workerCfg := loadWorkerConfig()

	// Refuse to start against an unreachable Redis.
	checker := &HealthChecker{stores: c.Stores()}
	if err := checker.checkAll(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("[Startup] Health check failed")
	}

	handlers := initializeHandlers(c)
	srv := setupAsynqServer(c.Config, handlers)
	scheduler := setupScheduler(c.Config)
	health := startHealthCheckServer(workerCfg.HealthAddr, checker)

	log.Info().
		Str("reconcile_schedule", c.Config.Worker.ReconcileSchedule).
		Msg("Game guide worker started")

	waitForShutdown(srv, scheduler, health)
}

type shutdowner interface {
	Shutdown(ctx context.Context) error
}

func waitForShutdown(srv *asynqServer, scheduler *asynqScheduler, health shutdowner) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("[Shutdown] Gracefully stopping...")
	scheduler.Shutdown()
	srv.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = health.Shutdown(ctx)

	log.Info().Msg("[Shutdown] Stopped")
}
