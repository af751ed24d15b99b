package models

import (
	"github.com/google/uuid"
)

// PrivilegeLevel is a closed enumeration backed by the privilege_level
// Postgres enum. Collaborators must map any other role onto these two
// values or extend the schema.
type PrivilegeLevel string

const (
	PrivilegeAdmin PrivilegeLevel = "admin"
	PrivilegeMod   PrivilegeLevel = "mod"
)

func (l PrivilegeLevel) Valid() bool {
	switch l {
	case PrivilegeAdmin, PrivilegeMod:
		return true
	default:
		return false
	}
}

type User struct {
	ID   uuid.UUID `db:"id"`
	Name string    `db:"name"`

	// Opaque credential hash in the auth package's string format.
	Password string `db:"password"`

	Level PrivilegeLevel `db:"level"`
}
