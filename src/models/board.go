package models

type Board struct {
	Name  string `db:"name"`
	Title string `db:"title"`

	// Advanced atomically by the post-creation transaction. Do not assign
	// post ids any other way.
	NextPostID int `db:"next_post_id"`
}
