package migrations

import (
	"context"
	"time"

	"github.com/chiru-cafe/chiru/src/migration/types"
	"github.com/chiru-cafe/chiru/src/oops"
	"github.com/jackc/pgx/v5"
)

func init() {
	registerMigration(AddBansAndPostIP{})
}

type AddBansAndPostIP struct{}

func (m AddBansAndPostIP) Version() types.MigrationVersion {
	return types.MigrationVersion(time.Date(2022, 6, 2, 21, 13, 4, 0, time.UTC))
}

func (m AddBansAndPostIP) Name() string {
	return "AddBansAndPostIP"
}

func (m AddBansAndPostIP) Description() string {
	return "Adds time-windowed IP bans and records the origin IP of posts"
}

func (m AddBansAndPostIP) Up(ctx context.Context, tx pgx.Tx) error {
	// An IP is banned from created_at until created_at + duration. The ip
	// column is inet, so a ban can cover a whole network.
	//
	// Posts made before this migration get 0.0.0.0 as their origin.
	_, err := tx.Exec(ctx,
		`
		CREATE TABLE IF NOT EXISTS bans (
			ip INET NOT NULL,
			created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
			duration INTERVAL NOT NULL,
			reason TEXT NOT NULL,
			PRIMARY KEY (ip, created_at, duration)
		);

		ALTER TABLE posts
			ADD COLUMN IF NOT EXISTS ip INET NOT NULL DEFAULT '0.0.0.0';
		`,
	)
	if err != nil {
		return oops.New(err, "failed to create bans or add the posts ip column")
	}
	return nil
}

func (m AddBansAndPostIP) Down(ctx context.Context, tx pgx.Tx) error {
	_, err := tx.Exec(ctx,
		`
		ALTER TABLE posts
			DROP COLUMN IF EXISTS ip;

		DROP TABLE IF EXISTS bans;
		`,
	)
	if err != nil {
		return oops.New(err, "failed to drop bans or the posts ip column")
	}
	return nil
}
