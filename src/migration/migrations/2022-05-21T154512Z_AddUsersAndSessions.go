package migrations

import (
	"context"
	"time"

	"github.com/chiru-cafe/chiru/src/migration/types"
	"github.com/chiru-cafe/chiru/src/oops"
	"github.com/jackc/pgx/v5"
)

func init() {
	registerMigration(AddUsersAndSessions{})
}

type AddUsersAndSessions struct{}

func (m AddUsersAndSessions) Version() types.MigrationVersion {
	return types.MigrationVersion(time.Date(2022, 5, 21, 15, 45, 12, 0, time.UTC))
}

func (m AddUsersAndSessions) Name() string {
	return "AddUsersAndSessions"
}

func (m AddUsersAndSessions) Description() string {
	return "Adds users with a closed privilege enum, and their sessions"
}

func (m AddUsersAndSessions) Up(ctx context.Context, tx pgx.Tx) error {
	// CREATE TYPE has no IF NOT EXISTS, hence the DO block guard.
	_, err := tx.Exec(ctx,
		`
		DO $$ BEGIN
			CREATE TYPE privilege_level AS ENUM ('admin', 'mod');
		EXCEPTION
			WHEN duplicate_object THEN NULL;
		END $$;

		CREATE TABLE IF NOT EXISTS users (
			id UUID NOT NULL PRIMARY KEY,
			name VARCHAR(255) NOT NULL UNIQUE,
			password VARCHAR(255) NOT NULL,
			level privilege_level NOT NULL
		);

		CREATE TABLE IF NOT EXISTS sessions (
			id UUID NOT NULL PRIMARY KEY,
			uid UUID NOT NULL REFERENCES users (id),
			logged_in_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
		);
		`,
	)
	if err != nil {
		return oops.New(err, "failed to create users and sessions")
	}
	return nil
}

func (m AddUsersAndSessions) Down(ctx context.Context, tx pgx.Tx) error {
	_, err := tx.Exec(ctx,
		`
		DROP TABLE IF EXISTS sessions;
		DROP TABLE IF EXISTS users;
		DROP TYPE IF EXISTS privilege_level;
		`,
	)
	if err != nil {
		return oops.New(err, "failed to drop users and sessions")
	}
	return nil
}
