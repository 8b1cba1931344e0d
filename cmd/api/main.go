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
	"github.com/rs/zerolog"

	"github.com/Okleeqo/forecastIQ-app/api/routes"
	"github.com/Okleeqo/forecastIQ-app/internal/clients"
	"github.com/Okleeqo/forecastIQ-app/internal/reports"
	"github.com/Okleeqo/forecastIQ-app/internal/scenario"
	"github.com/Okleeqo/forecastIQ-app/internal/subscriptions"
	"github.com/Okleeqo/forecastIQ-app/pkg/config"
	"github.com/Okleeqo/forecastIQ-app/pkg/db"
	"github.com/Okleeqo/forecastIQ-app/pkg/logger"
	"github.com/Okleeqo/forecastIQ-app/pkg/metrics"
	"github.com/Okleeqo/forecastIQ-app/pkg/migrate"
	"github.com/Okleeqo/forecastIQ-app/pkg/openai"
	"github.com/Okleeqo/forecastIQ-app/pkg/redis"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		bootstrapFatal("loading config", err)
	}

	logg := logger.New(logger.Options{
		ServiceName: "forecastiq-api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "database bootstrap failed", err)
		os.Exit(1)
	}
	defer dbClient.Close()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		logg.Error(ctx, "dev migrations failed", err)
		os.Exit(1)
	}

	var redisClient *redis.Client
	if cfg.Redis.URL != "" || cfg.Redis.Address != "" {
		redisClient, err = redis.New(ctx, cfg.Redis)
		if err != nil {
			logg.Error(ctx, "redis bootstrap failed", err)
			os.Exit(1)
		}
		defer redisClient.Close()
	} else {
		logg.Warn(ctx, "redis not configured, report rate limiting disabled")
	}

	clientSvc, err := clients.NewService(clients.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(ctx, "wiring client service", err)
		os.Exit(1)
	}
	subsSvc, err := subscriptions.NewService(subscriptions.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(ctx, "wiring subscription service", err)
		os.Exit(1)
	}
	scenarioSvc, err := scenario.NewService(scenario.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(ctx, "wiring scenario service", err)
		os.Exit(1)
	}

	var llm *openai.Client
	if cfg.OpenAI.APIKey != "" {
		llm, err = openai.NewClient(cfg.OpenAI.APIKey,
			openai.WithBaseURL(cfg.OpenAI.BaseURL),
			openai.WithModel(cfg.OpenAI.Model),
			openai.WithHTTPClient(&http.Client{Timeout: cfg.OpenAI.Timeout}),
		)
		if err != nil {
			logg.Error(ctx, "wiring openai client", err)
			os.Exit(1)
		}
	} else {
		logg.Warn(ctx, "openai not configured, report enhancement disabled")
	}

	var reportSvc reports.Service
	if llm != nil {
		reportSvc = reports.NewService(llm)
	} else {
		reportSvc = reports.NewService(nil)
	}

	handler := routes.NewRouter(routes.Dependencies{
		Config:        cfg,
		Logger:        logg,
		DB:            dbClient,
		Redis:         redisClient,
		Metrics:       metrics.NewHTTPMetrics(),
		Clients:       clientSvc,
		Subscriptions: subsSvc,
		Scenarios:     scenarioSvc,
		Reports:       reportSvc,
	})

	server := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		startCtx := logg.WithFields(ctx, map[string]any{"port": cfg.App.Port, "env": cfg.App.Env})
		logg.Info(startCtx, "api listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(shutdownCtx, "shutdown failed", err)
			os.Exit(1)
		}
		logg.Info(context.Background(), "api stopped")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "server failed", err)
			os.Exit(1)
		}
	}
}

// bootstrapFatal reports failures that happen before the logger exists.
func bootstrapFatal(msg string, err error) {
	l := zerolog.New(os.Stderr)
	l.Error().Err(err).Msg(msg)
	os.Exit(1)
}
