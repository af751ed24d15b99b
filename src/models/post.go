package models

import (
	"net/netip"
	"time"
)

type Post struct {
	// Ids are per-board, so only (ID, Board) is unique.
	ID    int    `db:"id"`
	Board string `db:"board"`

	Title  *string `db:"title"`
	Author *string `db:"author"`
	Email  *string `db:"email"`

	// A saged reply does not bump its thread.
	Sage bool `db:"sage"`

	PlaintextContent *string `db:"plaintext_content"`
	HTMLContent      string  `db:"html_content"`

	// The id of the thread root on the same board. Equal to ID for roots.
	Thread int `db:"thread"`

	PostedAt time.Time    `db:"posted_at"`
	IP       netip.Prefix `db:"ip"`
}

func (p *Post) IsThreadRoot() bool {
	return p.Thread == p.ID
}
