package postgres

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"testing"

	"flashdeals/internal/infrastructure/database/postgres/migrations"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubGooseUp(t *testing.T, fn func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error) {
	t.Helper()
	original := gooseUpContext
	gooseUpContext = fn
	t.Cleanup(func() { gooseUpContext = original })
}

func TestRunMigrations(t *testing.T) {
	sqlDB, _, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	var gotDir string
	stubGooseUp(t, func(_ context.Context, db *sql.DB, dir string, _ ...goose.OptionsFunc) error {
		assert.Same(t, sqlDB, db)
		gotDir = dir
		return nil
	})

	require.NoError(t, RunMigrations(context.Background(), sqlDB))
	assert.Equal(t, ".", gotDir)
}

func TestRunMigrations_Failure(t *testing.T) {
	sqlDB, _, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	boom := errors.New("relation already exists")
	stubGooseUp(t, func(context.Context, *sql.DB, string, ...goose.OptionsFunc) error {
		return boom
	})

	err = RunMigrations(context.Background(), sqlDB)
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "failed to run migrations")
}

func TestMigrationsEmbedded(t *testing.T) {
	entries, err := fs.Glob(migrations.Migrations, "*.sql")
	require.NoError(t, err)
	assert.Equal(t, []string{"00001_init.sql", "00002_offers_wishlist.sql", "00003_tickets.sql"}, entries)
}
