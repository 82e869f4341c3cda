package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"gameguide-backend/pkg/kv"
)

// HealthChecker performs startup health checks
type HealthChecker struct {
	stores map[string]kv.Store
}

// checkAll pings every store the handlers touch.
func (h *HealthChecker) checkAll(ctx context.Context) error {
	for name, store := range h.stores {
		log.Info().Str("store", name).Msg("Checking Redis...")

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err := store.Ping(pingCtx)
		cancel()

		if err != nil {
			return fmt.Errorf("redis %s: %w", name, err)
		}
	}
	return nil
}

// healthHandler serves /health (liveness) and /ready (stores reachable).
func (h *HealthChecker) healthHandler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, map[string]string{"status": "UP", "service": "gameguide-worker"})
	})

	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		if err := h.checkAll(r.Context()); err != nil {
			writeStatus(w, http.StatusServiceUnavailable, map[string]string{"status": "NOT_READY", "error": err.Error()})
			return
		}
		writeStatus(w, http.StatusOK, map[string]string{"status": "READY"})
	})

	return mux
}

func writeStatus(w http.ResponseWriter, status int, body map[string]string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func startHealthCheckServer(addr string, checker *HealthChecker) *http.Server {
	srv := &http.Server{
		Addr:              addr,
		Handler:           checker.healthHandler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("[Health] Starting health check server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("[Health] Failed to start")
		}
	}()

	return srv
}
