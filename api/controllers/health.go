package controllers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/multierr"

	"github.com/coauto/coauto-backend/api/responses"
	"github.com/coauto/coauto-backend/pkg/config"
	pkgerrors "github.com/coauto/coauto-backend/pkg/errors"
	"github.com/coauto/coauto-backend/pkg/logger"
)

type pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Coauto-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady probes the datastore and cache before confirming readiness.
func HealthReady(cfg *config.Config, database, cache pinger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Coauto-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		var probeErr error
		if database != nil {
			if err := database.Ping(ctx); err != nil {
				probeErr = multierr.Append(probeErr, fmt.Errorf("database: %w", err))
			}
		}
		if cache != nil {
			if err := cache.Ping(ctx); err != nil {
				probeErr = multierr.Append(probeErr, fmt.Errorf("redis: %w", err))
			}
		}

		if probeErr != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, probeErr, "readiness probes failed"))
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
