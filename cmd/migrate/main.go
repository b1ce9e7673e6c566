package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/devconsult/backend/internal/config"
	"github.com/devconsult/backend/internal/database"
	"github.com/devconsult/backend/internal/logging"
)

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: migrate [command]

Commands:
  up (default)  apply all pending migrations
  down          roll back the latest migration
  version       print the applied migration version`)
	os.Exit(1)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Setup("INFO", "text")
		logging.Fatal("invalid configuration", "error", err)
	}
	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	cmd := "up"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	mg, err := database.NewMigrator(cfg.DatabaseURL)
	if err != nil {
		logging.Fatal("open migrator failed", "error", err)
	}
	defer mg.Close()

	switch cmd {
	case "up":
		if err := mg.Up(); err != nil {
			logging.Fatal("migrate up failed", "error", err)
		}
	case "down":
		if err := mg.Down(); err != nil {
			logging.Fatal("migrate down failed", "error", err)
		}
	case "version":
		version, dirty, ok, err := mg.Version()
		if err != nil {
			logging.Fatal("read version failed", "error", err)
		}
		if !ok {
			slog.Info("no migrations applied")
			return
		}
		fmt.Printf("%d", version)
		if dirty {
			fmt.Print(" (dirty)")
		}
		fmt.Println()
	default:
		usage()
	}
}
