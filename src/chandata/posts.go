package chandata

import (
	"context"
	"net/netip"

	"github.com/chiru-cafe/chiru/src/db"
	"github.com/chiru-cafe/chiru/src/markup"
	"github.com/chiru-cafe/chiru/src/models"
	"github.com/chiru-cafe/chiru/src/oops"
)

type CreatePostInput struct {
	Board string

	// Nil starts a new thread; the post becomes its own thread root.
	// Otherwise the id of an existing post on the same board whose thread
	// the new post joins.
	Thread *int

	Title  *string
	Author *string
	Email  *string
	Sage   bool

	// The raw user-supplied body. html_content is always derived from this;
	// a nil body still produces an html_content value.
	Content *string

	IP netip.Prefix
}

/*
Creates a post, allocating its per-board id and recording any >>id reply
edges, all in one transaction. Returns db.NotFound if the board or the
target thread does not exist.

The id comes from atomically advancing boards.next_post_id in the same
transaction as the insert, so concurrent posters on one board cannot
collide.
*/
func CreatePost(ctx context.Context, dbConn db.ConnOrTx, input CreatePostInput) (*models.Post, error) {
	tx, err := dbConn.Begin(ctx)
	if err != nil {
		return nil, oops.New(err, "failed to start transaction")
	}
	defer tx.Rollback(ctx)

	postID, err := db.QueryOneScalar[int](ctx, tx,
		`
		UPDATE boards
		SET next_post_id = next_post_id + 1
		WHERE name = $1
		RETURNING next_post_id
		`,
		input.Board,
	)
	if err != nil {
		return nil, err
	}

	thread := postID
	if input.Thread != nil {
		// The foreign key would catch a bogus thread anyway, but checking
		// here turns it into a NotFound instead of a constraint error. Using
		// the target's own thread also keeps thread pointing at a root even
		// if the caller passed a mid-thread post id.
		targetThread, err := db.QueryOneScalar[int](ctx, tx,
			`
			SELECT thread
			FROM posts
			WHERE id = $1 AND board = $2
			`,
			*input.Thread, input.Board,
		)
		if err != nil {
			return nil, err
		}
		thread = targetThread
	}

	replied, err := resolveReplyRefs(ctx, tx, input.Board, input.Content)
	if err != nil {
		return nil, err
	}
	htmlContent := markup.PostBody(input.Content, input.Board, replied)

	post, err := db.QueryOne[models.Post](ctx, tx,
		`
		INSERT INTO posts (id, board, title, author, email, sage, plaintext_content, html_content, thread, ip)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING $columns
		`,
		postID, input.Board,
		input.Title, input.Author, input.Email,
		input.Sage,
		input.Content, htmlContent,
		thread,
		input.IP,
	)
	if err != nil {
		return nil, oops.New(err, "failed to insert post")
	}

	for messageID := range replied {
		_, err := tx.Exec(ctx,
			`
			INSERT INTO replies (message_id, message_board, reply_id, reply_board, reply_thread)
			VALUES ($1, $2, $3, $2, $4)
			`,
			messageID, input.Board, postID, thread,
		)
		if err != nil {
			return nil, oops.New(err, "failed to insert reply edge")
		}
	}

	err = tx.Commit(ctx)
	if err != nil {
		return nil, oops.New(err, "failed to commit post")
	}

	return post, nil
}

// Maps each >>id in the body that resolves to a post on the board to that
// post's thread id.
func resolveReplyRefs(ctx context.Context, dbConn db.ConnOrTx, board string, content *string) (map[int]int, error) {
	if content == nil {
		return nil, nil
	}
	refs := markup.ReplyRefs(*content)
	if len(refs) == 0 {
		return nil, nil
	}

	type postThread struct {
		ID     int `db:"id"`
		Thread int `db:"thread"`
	}
	rows, err := db.Query[postThread](ctx, dbConn,
		`
		SELECT $columns
		FROM posts
		WHERE id = ANY($1) AND board = $2
		`,
		refs, board,
	)
	if err != nil {
		return nil, oops.New(err, "failed to resolve reply references")
	}

	resolved := make(map[int]int, len(rows))
	for _, row := range rows {
		resolved[row.ID] = row.Thread
	}
	return resolved, nil
}

// Returns all posts in a thread, oldest first. Returns db.NotFound for an
// empty result, since that means there is no such thread.
func FetchThreadPosts(ctx context.Context, dbConn db.ConnOrTx, board string, threadID int) ([]*models.Post, error) {
	posts, err := db.Query[models.Post](ctx, dbConn,
		`
		SELECT $columns
		FROM posts
		WHERE board = $1 AND thread = $2
		ORDER BY posted_at, id
		`,
		board, threadID,
	)
	if err != nil {
		return nil, oops.New(err, "failed to fetch thread posts")
	}
	if len(posts) == 0 {
		return nil, db.NotFound
	}
	return posts, nil
}

/*
Returns the thread roots of a board, ordered by latest activity. Saged
replies do not count as activity, but the thread root itself always does,
so a fresh thread with only saged replies still sorts by its creation time.
*/
func FetchBoardThreads(ctx context.Context, dbConn db.ConnOrTx, board string) ([]*models.Post, error) {
	posts, err := db.Query[models.Post](ctx, dbConn,
		`
		WITH threads AS (
			SELECT posts.thread AS id, MAX(posts.posted_at) AS last_post
			FROM posts
			WHERE posts.board = $1 AND (posts.thread = posts.id OR NOT posts.sage)
			GROUP BY posts.thread
		)
		SELECT $columns{posts}
		FROM posts
			JOIN threads ON posts.id = threads.id
		WHERE posts.board = $1
		ORDER BY threads.last_post DESC
		`,
		board,
	)
	if err != nil {
		return nil, oops.New(err, "failed to fetch threads for board %s", board)
	}
	return posts, nil
}
