package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"flashdeals/internal/infrastructure/database/postgres/migrations"
	"flashdeals/internal/logger"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations applies the embedded schema migrations
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}

	if err := gooseUpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("Database migrations applied", zap.String("event", "migrations_applied"))
	return nil
}
