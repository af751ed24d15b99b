package chandata

import (
	"context"
	"errors"

	"github.com/chiru-cafe/chiru/src/auth"
	"github.com/chiru-cafe/chiru/src/db"
	"github.com/chiru-cafe/chiru/src/models"
	"github.com/chiru-cafe/chiru/src/oops"
	"github.com/google/uuid"
)

var ErrBadCredentials = errors.New("bad credentials")

func CreateUser(ctx context.Context, dbConn db.ConnOrTx, name, password string, level models.PrivilegeLevel) (*models.User, error) {
	if !level.Valid() {
		return nil, oops.New(nil, "invalid privilege level: %s", level)
	}

	hashed := auth.HashPassword(password)
	user, err := db.QueryOne[models.User](ctx, dbConn,
		`
		INSERT INTO users (id, name, password, level)
		VALUES ($1, $2, $3, $4::privilege_level)
		RETURNING $columns
		`,
		uuid.New(), name, hashed.String(), string(level),
	)
	if err != nil {
		return nil, oops.New(err, "failed to create user %s", name)
	}
	return user, nil
}

// Returns db.NotFound if no user has that name.
func FetchUserByName(ctx context.Context, dbConn db.ConnOrTx, name string) (*models.User, error) {
	user, err := db.QueryOne[models.User](ctx, dbConn,
		`
		SELECT $columns
		FROM users
		WHERE LOWER(name) = LOWER($1)
		`,
		name,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func UpdatePassword(ctx context.Context, dbConn db.ConnOrTx, name string, hashed auth.HashedPassword) error {
	tag, err := dbConn.Exec(ctx,
		"UPDATE users SET password = $1 WHERE LOWER(name) = LOWER($2)",
		hashed.String(), name,
	)
	if err != nil {
		return oops.New(err, "failed to update password")
	} else if tag.RowsAffected() < 1 {
		return db.NotFound
	}

	return nil
}

/*
Verifies a user's credentials and, on success, opens a session for them.
Returns ErrBadCredentials for an unknown name or a wrong password, so
callers cannot distinguish the two.
*/
func LogIn(ctx context.Context, dbConn db.ConnOrTx, name, password string) (*models.Session, error) {
	user, err := FetchUserByName(ctx, dbConn, name)
	if err != nil {
		if errors.Is(err, db.NotFound) {
			return nil, ErrBadCredentials
		}
		return nil, err
	}

	hashed, err := auth.ParsePasswordString(user.Password)
	if err != nil {
		return nil, err
	}
	ok, err := auth.CheckPassword(password, hashed)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrBadCredentials
	}

	return CreateSession(ctx, dbConn, user.ID)
}

func CreateSession(ctx context.Context, dbConn db.ConnOrTx, uid uuid.UUID) (*models.Session, error) {
	session, err := db.QueryOne[models.Session](ctx, dbConn,
		`
		INSERT INTO sessions (id, uid)
		VALUES ($1, $2)
		RETURNING $columns
		`,
		uuid.New(), uid,
	)
	if err != nil {
		return nil, oops.New(err, "failed to create session")
	}
	return session, nil
}

// Returns db.NotFound if the session does not exist.
func FetchSession(ctx context.Context, dbConn db.ConnOrTx, id uuid.UUID) (*models.Session, error) {
	session, err := db.QueryOne[models.Session](ctx, dbConn,
		`
		SELECT $columns
		FROM sessions
		WHERE id = $1
		`,
		id,
	)
	if err != nil {
		return nil, err
	}
	return session, nil
}

func DeleteSession(ctx context.Context, dbConn db.ConnOrTx, id uuid.UUID) error {
	_, err := dbConn.Exec(ctx, "DELETE FROM sessions WHERE id = $1", id)
	if err != nil {
		return oops.New(err, "failed to delete session")
	}
	return nil
}
