package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/fleetlinehq/fleetline-backend/api/controllers"
	"github.com/fleetlinehq/fleetline-backend/api/routes"
	"github.com/fleetlinehq/fleetline-backend/internal/companies"
	"github.com/fleetlinehq/fleetline-backend/internal/contacts"
	"github.com/fleetlinehq/fleetline-backend/internal/dashboard"
	"github.com/fleetlinehq/fleetline-backend/internal/opportunities"
	"github.com/fleetlinehq/fleetline-backend/internal/users"
	"github.com/fleetlinehq/fleetline-backend/internal/visits"
	"github.com/fleetlinehq/fleetline-backend/pkg/config"
	"github.com/fleetlinehq/fleetline-backend/pkg/db"
	"github.com/fleetlinehq/fleetline-backend/pkg/logger"
	"github.com/fleetlinehq/fleetline-backend/pkg/metrics"
	"github.com/fleetlinehq/fleetline-backend/pkg/migrate"
	pkgredis "github.com/fleetlinehq/fleetline-backend/pkg/redis"
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

	// Redis is optional: without it the API runs with the idempotency
	// replay guard disabled.
	var redisPinger controllers.Pinger
	var idempotencyStore pkgredis.IdempotencyStore
	if cfg.Redis.Enabled() {
		redisClient, err := pkgredis.New(context.Background(), cfg.Redis, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
		redisPinger = redisClient
		idempotencyStore = redisClient
	} else {
		logg.Warn(context.Background(), "redis not configured, idempotency guard disabled")
	}

	conn := dbClient.DB()
	usersRepo := users.NewRepository(conn)
	companiesRepo := companies.NewRepository(conn)
	contactsRepo := contacts.NewRepository(conn)

	usersSvc, err := users.NewService(usersRepo)
	requireService(logg, "users", err)
	companiesSvc, err := companies.NewService(companiesRepo, usersRepo)
	requireService(logg, "companies", err)
	contactsSvc, err := contacts.NewService(contactsRepo, companiesRepo)
	requireService(logg, "contacts", err)
	visitsSvc, err := visits.NewService(visits.NewRepository(conn), companiesRepo, contactsRepo, usersRepo)
	requireService(logg, "visits", err)
	opportunitiesSvc, err := opportunities.NewService(opportunities.NewRepository(conn), companiesRepo, contactsRepo, usersRepo, time.Now)
	requireService(logg, "opportunities", err)
	dashboardSvc, err := dashboard.NewService(dashboard.NewRepository(conn), time.Now)
	requireService(logg, "dashboard", err)

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)

	handler := routes.NewRouter(routes.Deps{
		Config:           cfg,
		Logger:           logg,
		DBPinger:         dbClient,
		RedisPinger:      redisPinger,
		IdempotencyStore: idempotencyStore,
		HTTPMetrics:      httpMetrics,
		MetricsRegistry:  registry,
	}, routes.Services{
		Users:         usersSvc,
		Companies:     companiesSvc,
		Contacts:      contactsSvc,
		Visits:        visitsSvc,
		Opportunities: opportunitiesSvc,
		Dashboard:     dashboardSvc,
	})

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
		Addr:    addr,
		Handler: handler,
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func requireService(logg *logger.Logger, name string, err error) {
	if err != nil {
		logg.Error(context.Background(), "failed to create "+name+" service", err)
		os.Exit(1)
	}
}
