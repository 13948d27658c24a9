package migrations

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
)

// NewProvider returns a goose provider over the Go migrations registered by
// this package.
func NewProvider(db *sql.DB) (*goose.Provider, error) {
	provider, err := goose.NewProvider(goose.DialectPostgres, db, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create migration provider: %w", err)
	}
	return provider, nil
}

// Up opens dsn with lib/pq and applies every pending migration.
func Up(ctx context.Context, dsn string) ([]*goose.MigrationResult, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}
	defer db.Close()

	provider, err := NewProvider(db)
	if err != nil {
		return nil, err
	}

	return provider.Up(ctx)
}
