package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateCollections, downCreateCollections)
}

func upCreateCollections(ctx context.Context, tx *sql.Tx) error {
	for _, table := range []string{"posts", "comments", "likes"} {
		_, err := tx.ExecContext(ctx, `
		CREATE TABLE `+table+` (
			id         TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
			seq        BIGSERIAL NOT NULL,
			unique_key TEXT UNIQUE,
			body       JSONB NOT NULL,
			created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now()
		);
		`)
		if err != nil {
			return err
		}
	}
	return nil
}

func downCreateCollections(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
	DROP TABLE IF EXISTS likes;
	DROP TABLE IF EXISTS comments;
	DROP TABLE IF EXISTS posts;
	`)
	return err
}
