package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/kindredapp/kindred-api/internal/config"
	"github.com/kindredapp/kindred-api/internal/redact"
	"github.com/kindredapp/kindred-api/migrations"
	"github.com/pressly/goose/v3"
)

// runMigrations executes the given goose command (up, down, status)
// against the configured database using the embedded migration files.
func runMigrations(cfg *config.Config, command string) error {
	migrationLogger := slog.Default().With(
		"component", "migrations",
		"command", command,
	)

	startTime := time.Now()
	migrationLogger.Info("Starting migration operation")

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			migrationLogger.Error("Failed to close database connection", "error", cerr)
		}
	}()

	switch command {
	case "up":
		err = goose.Up(db, ".")
	case "down":
		err = goose.Down(db, ".")
	case "status":
		err = goose.Status(db, ".")
	default:
		return fmt.Errorf("unknown migration command %q (expected up, down, or status)", command)
	}

	if err != nil {
		migrationLogger.Error("Migration operation failed",
			"error", redact.Error(err),
			"duration", time.Since(startTime))
		return fmt.Errorf("goose %s failed: %w", command, err)
	}

	migrationLogger.Info("Migration operation completed",
		"duration", time.Since(startTime))
	return nil
}
