package main

import (
	"os"

	"github.com/rs/zerolog/log"
)

// workerConfig holds the settings only the worker process reads; everything
// else comes from internal/config through the container.
type workerConfig struct {
	HealthAddr string
}

func loadWorkerConfig() *workerConfig {
	cfg := &workerConfig{
		HealthAddr: getEnv("WORKER_HEALTH_ADDR", ":9999"),
	}

	log.Info().Str("health_addr", cfg.HealthAddr).Msg("[Config] Worker loaded")
	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
