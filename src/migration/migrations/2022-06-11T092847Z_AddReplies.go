package migrations

import (
	"context"
	"time"

	"github.com/chiru-cafe/chiru/src/migration/types"
	"github.com/chiru-cafe/chiru/src/oops"
	"github.com/jackc/pgx/v5"
)

func init() {
	registerMigration(AddReplies{})
}

type AddReplies struct{}

func (m AddReplies) Version() types.MigrationVersion {
	return types.MigrationVersion(time.Date(2022, 6, 11, 9, 28, 47, 0, time.UTC))
}

func (m AddReplies) Name() string {
	return "AddReplies"
}

func (m AddReplies) Description() string {
	return "Adds the reply edges between posts"
}

func (m AddReplies) Up(ctx context.Context, tx pgx.Tx) error {
	// Each row is a directed edge: the post (reply_id, reply_board), living
	// in thread reply_thread, replies to (message_id, message_board). Both
	// sides carry a board, so replies can link across boards.
	_, err := tx.Exec(ctx,
		`
		CREATE TABLE IF NOT EXISTS replies (
			message_id INTEGER NOT NULL,
			message_board TEXT NOT NULL,
			reply_id INTEGER NOT NULL,
			reply_board TEXT NOT NULL,
			reply_thread INTEGER NOT NULL,
			PRIMARY KEY (message_id, message_board, reply_id, reply_board, reply_thread),
			FOREIGN KEY (message_id, message_board) REFERENCES posts (id, board),
			FOREIGN KEY (reply_id, reply_board) REFERENCES posts (id, board),
			FOREIGN KEY (reply_thread, reply_board) REFERENCES posts (id, board)
		);
		`,
	)
	if err != nil {
		return oops.New(err, "failed to create replies")
	}
	return nil
}

func (m AddReplies) Down(ctx context.Context, tx pgx.Tx) error {
	_, err := tx.Exec(ctx,
		`
		DROP TABLE IF EXISTS replies;
		`,
	)
	if err != nil {
		return oops.New(err, "failed to drop replies")
	}
	return nil
}
