package chandata

import (
	"context"

	"github.com/chiru-cafe/chiru/src/db"
	"github.com/chiru-cafe/chiru/src/models"
	"github.com/chiru-cafe/chiru/src/oops"
)

// Returns the reply edges pointing at a post, i.e. the posts that quoted it.
func FetchPostReplies(ctx context.Context, dbConn db.ConnOrTx, post *models.Post) ([]*models.Reply, error) {
	replies, err := db.Query[models.Reply](ctx, dbConn,
		`
		SELECT $columns
		FROM replies
		WHERE message_id = $1 AND message_board = $2
		ORDER BY reply_board, reply_id
		`,
		post.ID, post.Board,
	)
	if err != nil {
		return nil, oops.New(err, "failed to fetch replies for post %d on %s", post.ID, post.Board)
	}
	return replies, nil
}
