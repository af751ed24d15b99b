package migrations

import (
	"context"
	"time"

	"github.com/chiru-cafe/chiru/src/migration/types"
	"github.com/chiru-cafe/chiru/src/oops"
	"github.com/jackc/pgx/v5"
)

func init() {
	registerMigration(Initial{})
}

type Initial struct{}

func (m Initial) Version() types.MigrationVersion {
	return types.MigrationVersion(time.Date(2022, 5, 14, 19, 2, 31, 0, time.UTC))
}

func (m Initial) Name() string {
	return "Initial"
}

func (m Initial) Description() string {
	return "Creates boards and posts, and seeds the first board"
}

func (m Initial) Up(ctx context.Context, tx pgx.Tx) error {
	// Post ids are allocated per board from next_post_id, inside the same
	// transaction as the post insert. The thread column points at the
	// thread root on the same board; a root points at itself.
	_, err := tx.Exec(ctx,
		`
		CREATE TABLE IF NOT EXISTS boards (
			name TEXT NOT NULL PRIMARY KEY,
			title TEXT NOT NULL,
			next_post_id INTEGER NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS posts (
			id INTEGER NOT NULL,
			board TEXT NOT NULL REFERENCES boards (name),
			title VARCHAR(255),
			author VARCHAR(255),
			email VARCHAR(255),
			sage BOOLEAN NOT NULL DEFAULT FALSE,
			plaintext_content VARCHAR(10000),
			html_content VARCHAR(20000) NOT NULL,
			thread INTEGER NOT NULL,
			posted_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
			UNIQUE (id, board),
			FOREIGN KEY (thread, board) REFERENCES posts (id, board)
		);

		INSERT INTO boards (name, title)
		VALUES ('b', 'Random')
		ON CONFLICT DO NOTHING;
		`,
	)
	if err != nil {
		return oops.New(err, "failed to create boards and posts")
	}
	return nil
}

func (m Initial) Down(ctx context.Context, tx pgx.Tx) error {
	_, err := tx.Exec(ctx,
		`
		DROP TABLE IF EXISTS posts;
		DROP TABLE IF EXISTS boards;
		`,
	)
	if err != nil {
		return oops.New(err, "failed to drop boards and posts")
	}
	return nil
}
