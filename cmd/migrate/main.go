package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/omerfq/stitchline-backend/pkg/config"
	"github.com/omerfq/stitchline-backend/pkg/db"
	"github.com/omerfq/stitchline-backend/pkg/logger"
	"github.com/omerfq/stitchline-backend/pkg/migrate"
)

func main() {
	_ = godotenv.Load()

	dir := flag.String("dir", migrate.DefaultDir, "directory with migration files")
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}
	command := args[0]

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config error:", err)
		os.Exit(1)
	}

	logg := logger.New(logger.Options{
		ServiceName: "stitchline-migrate",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
	})

	ctx := context.Background()

	client, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "connecting to database", err)
		os.Exit(1)
	}
	defer client.Close()

	sqlDB, err := client.DB().DB()
	if err != nil {
		logg.Error(ctx, "extracting sql handle", err)
		os.Exit(1)
	}

	switch command {
	case "up-to", "down-to":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, command, "requires a version argument")
			os.Exit(2)
		}
		err = migrate.MigrateToVersion(ctx, sqlDB, *dir, args[1])
	default:
		err = migrate.Run(ctx, sqlDB, *dir, command, args[1:]...)
	}
	if err != nil {
		logg.Error(ctx, "migration failed", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: migrate [-dir DIR] COMMAND [ARGS]

Commands:
  up                 apply all pending migrations
  up-by-one          apply the next migration
  up-to VERSION      migrate up to VERSION
  down               roll back the last migration
  down-to VERSION    roll back to VERSION
  status             print migration status
  version            print current version
  create NAME sql    create a new migration file`)
}
