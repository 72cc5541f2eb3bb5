package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/omerfq/stitchline-backend/internal/seed"
	"github.com/omerfq/stitchline-backend/pkg/config"
	"github.com/omerfq/stitchline-backend/pkg/db"
	"github.com/omerfq/stitchline-backend/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config error:", err)
		os.Exit(1)
	}

	logg := logger.New(logger.Options{
		ServiceName: "stitchline-seed",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
	})

	ctx := context.Background()

	client, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "connecting to database", err)
		os.Exit(1)
	}
	defer client.Close()

	seeder := seed.New(client.DB(), cfg.Password, logg)
	if err := seeder.Run(ctx); err != nil {
		logg.Error(ctx, "seed failed", err)
		os.Exit(1)
	}
}
