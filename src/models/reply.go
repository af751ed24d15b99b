package models

// A directed "reply_* replies to message_* within thread reply_thread" edge.
// Boards are tracked on both sides, so replies may link across boards.
type Reply struct {
	MessageID    int    `db:"message_id"`
	MessageBoard string `db:"message_board"`
	ReplyID      int    `db:"reply_id"`
	ReplyBoard   string `db:"reply_board"`
	ReplyThread  int    `db:"reply_thread"`
}
