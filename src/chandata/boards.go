package chandata

import (
	"context"

	"github.com/chiru-cafe/chiru/src/db"
	"github.com/chiru-cafe/chiru/src/models"
	"github.com/chiru-cafe/chiru/src/oops"
)

func FetchBoards(ctx context.Context, dbConn db.ConnOrTx) ([]*models.Board, error) {
	boards, err := db.Query[models.Board](ctx, dbConn,
		`
		SELECT $columns
		FROM boards
		ORDER BY name
		`,
	)
	if err != nil {
		return nil, oops.New(err, "failed to fetch boards")
	}
	return boards, nil
}

// Returns db.NotFound if no board has that name.
func FetchBoard(ctx context.Context, dbConn db.ConnOrTx, name string) (*models.Board, error) {
	board, err := db.QueryOne[models.Board](ctx, dbConn,
		`
		SELECT $columns
		FROM boards
		WHERE name = $1
		`,
		name,
	)
	if err != nil {
		return nil, err
	}
	return board, nil
}

func CreateBoard(ctx context.Context, dbConn db.ConnOrTx, name, title string) (*models.Board, error) {
	board, err := db.QueryOne[models.Board](ctx, dbConn,
		`
		INSERT INTO boards (name, title)
		VALUES ($1, $2)
		RETURNING $columns
		`,
		name, title,
	)
	if err != nil {
		return nil, oops.New(err, "failed to create board %s", name)
	}
	return board, nil
}
