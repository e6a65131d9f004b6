package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/coauto/coauto-backend/api/middleware"
	"github.com/coauto/coauto-backend/api/routes"
	authsvc "github.com/coauto/coauto-backend/internal/auth"
	"github.com/coauto/coauto-backend/internal/catalog"
	"github.com/coauto/coauto-backend/internal/lookups"
	"github.com/coauto/coauto-backend/internal/ratings"
	"github.com/coauto/coauto-backend/internal/users"
	"github.com/coauto/coauto-backend/pkg/config"
	"github.com/coauto/coauto-backend/pkg/db"
	"github.com/coauto/coauto-backend/pkg/identity"
	"github.com/coauto/coauto-backend/pkg/logger"
	"github.com/coauto/coauto-backend/pkg/migrate"
	"github.com/coauto/coauto-backend/pkg/redis"
	"github.com/coauto/coauto-backend/pkg/secrets"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	if err := applySecretBundle(context.Background(), cfg, secrets.NewEnvProvider()); err != nil {
		logg.Error(context.Background(), "failed to resolve secret bundle", err)
		os.Exit(1)
	}

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	directory, err := identity.NewClient(cfg.Identity)
	if err != nil {
		logg.Error(context.Background(), "failed to create identity client", err)
		os.Exit(1)
	}

	lookupsRepo := lookups.NewRepository(dbClient.DB())
	vehicleRepo := catalog.NewRepository(dbClient.DB())
	ratingRepo := ratings.NewRepository(dbClient.DB())
	userRepo := users.NewRepository(dbClient.DB())

	vehicleService, err := catalog.NewService(vehicleRepo, lookupsRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create vehicle service", err)
		os.Exit(1)
	}
	ratingService, err := ratings.NewService(ratingRepo, userRepo, vehicleRepo, lookupsRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create rating service", err)
		os.Exit(1)
	}
	userService, err := users.NewService(userRepo, lookupsRepo, lookupsRepo, directory)
	if err != nil {
		logg.Error(context.Background(), "failed to create user service", err)
		os.Exit(1)
	}
	authService, err := authsvc.NewService(directory, userRepo, lookupsRepo, lookupsRepo, cfg.Identity.GroupName)
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := middleware.NewHTTPMetrics(registry)
	metricsHandler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			directory,
			httpMetrics,
			metricsHandler,
			lookupsRepo,
			vehicleService,
			ratingService,
			userService,
			authService,
		),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case sig := <-stop:
		logg.Info(logg.WithField(ctx, "signal", sig.String()), "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
			os.Exit(1)
		}
	}
}

// applySecretBundle overrides credential fields from the configured bundle
// and assembles the DSN that config.Load deferred in bundle mode. With the
// default env source the individual variables stand as loaded.
func applySecretBundle(ctx context.Context, cfg *config.Config, provider secrets.Provider) error {
	if cfg.Secrets.Source != config.SecretSourceBundle {
		return nil
	}

	bundle, err := provider.Fetch(ctx, cfg.Secrets.Bundle)
	if err != nil {
		return err
	}

	if dsn := bundle.Get("db_dsn"); dsn != "" {
		cfg.DB.DSN = dsn
	}
	if host := bundle.Get("db_host"); host != "" {
		cfg.DB.Host = host
	}
	if user := bundle.Get("db_user"); user != "" {
		cfg.DB.User = user
	}
	if password := bundle.Get("db_password"); password != "" {
		cfg.DB.Password = password
	}
	if name := bundle.Get("db_name"); name != "" {
		cfg.DB.Name = name
	}
	if id := bundle.Get("identity_client_id"); id != "" {
		cfg.Identity.ClientID = id
	}
	if secret := bundle.Get("identity_client_secret"); secret != "" {
		cfg.Identity.ClientSecret = secret
	}
	if pool := bundle.Get("identity_user_pool_id"); pool != "" {
		cfg.Identity.UserPoolID = pool
	}

	return cfg.DB.EnsureDSN()
}
