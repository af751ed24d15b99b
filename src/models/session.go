package models

import (
	"time"

	"github.com/google/uuid"
)

type Session struct {
	ID         uuid.UUID `db:"id"`
	UID        uuid.UUID `db:"uid"`
	LoggedInAt time.Time `db:"logged_in_at"`
}
