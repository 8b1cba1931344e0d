package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/Okleeqo/forecastIQ-app/pkg/config"
	"github.com/Okleeqo/forecastIQ-app/pkg/db"
	"github.com/Okleeqo/forecastIQ-app/pkg/logger"
	"github.com/Okleeqo/forecastIQ-app/pkg/migrate"
)

func main() {
	_ = godotenv.Load()

	dir := flag.String("dir", migrate.DefaultDir, "migrations directory")
	flag.Parse()

	command := "up"
	if args := flag.Args(); len(args) > 0 {
		command = args[0]
	}
	extra := flag.Args()
	if len(extra) > 0 {
		extra = extra[1:]
	}

	cfg, err := config.Load()
	if err != nil {
		l := zerolog.New(os.Stderr)
		l.Error().Err(err).Msg("loading config")
		os.Exit(1)
	}

	logg := logger.New(logger.Options{
		ServiceName: "forecastiq-migrate",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "database bootstrap failed", err)
		os.Exit(1)
	}
	defer client.Close()

	sqlDB, err := client.SQLDB()
	if err != nil {
		logg.Error(ctx, "getting sql handle", err)
		os.Exit(1)
	}

	runCtx := logg.WithFields(ctx, map[string]any{"command": command, "dir": *dir})
	if err := migrate.Run(ctx, sqlDB, *dir, command, extra...); err != nil {
		logg.Error(runCtx, "migration failed", err)
		os.Exit(1)
	}
	logg.Info(runCtx, "migration complete")
}
