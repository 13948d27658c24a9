package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upIndexPostRefs, downIndexPostRefs)
}

func upIndexPostRefs(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
		CREATE INDEX comments_post_id_idx ON comments ((body->>'postId'), seq);
		CREATE INDEX likes_post_id_idx ON likes ((body->>'postId'), seq);
		CREATE INDEX posts_seq_idx ON posts (seq);
	`)
	return err
}

func downIndexPostRefs(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
		DROP INDEX IF EXISTS posts_seq_idx;
		DROP INDEX IF EXISTS likes_post_id_idx;
		DROP INDEX IF EXISTS comments_post_id_idx;
	`)
	return err
}
