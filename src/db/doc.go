/*
This package contains lowish-level APIs for making database queries to our Postgres database. It streamlines the process of mapping query results to Go types, while allowing you to write arbitrary SQL queries.

The primary functions are Query and QueryOne. See the function documentation for details.

# Query syntax

This package allows a few small extensions to SQL syntax to streamline the interaction between Go and Postgres.

Arguments can be provided using placeholders like $1, $2, etc. All arguments will be safely escaped and mapped from their Go type to the correct Postgres type. (This is a direct proxy to pgx.)

	threadIDs, err := db.QueryScalar[int](ctx, conn,
		`
		SELECT id
		FROM posts
		WHERE
			board = ANY($1)
			AND id = thread
		`,
		[]string{"b", "g"},
	)

(This also demonstrates a useful tip: if you want to use a slice in your query, use Postgres arrays instead of IN.)

To query multiple columns at once, you may use a struct type with `db:"column_name"` tags, and the special $columns placeholder:

	type Board struct {
		Name       string `db:"name"`
		Title      string `db:"title"`
		NextPostID int    `db:"next_post_id"`
	}
	boards, err := db.Query[Board](ctx, conn, `SELECT $columns FROM boards`)
	// Resulting query:
	// SELECT name, title, next_post_id FROM boards

Sometimes a table name prefix is required on each column to disambiguate between column names, especially when performing a JOIN. In those situations, you can include the prefix in the $columns placeholder like $columns{prefix}:

	posts, err := db.Query[models.Post](ctx, conn, `
		SELECT $columns{posts}
		FROM
			posts
			JOIN replies ON replies.reply_id = posts.id AND replies.reply_board = posts.board
		WHERE
			replies.message_id = $1
	`, id)
	// Resulting query:
	// SELECT posts.id, posts.board, ... FROM ...
*/
package db
