package models

import (
	"net/netip"
	"time"
)

// A ban means "IP is banned from CreatedAt until CreatedAt+Duration, for
// Reason". Bans are standalone records keyed by (ip, created_at, duration);
// nothing ties them to posts except the shared address semantics.
type Ban struct {
	IP        netip.Prefix  `db:"ip"`
	CreatedAt time.Time     `db:"created_at"`
	Duration  time.Duration `db:"duration"`
	Reason    string        `db:"reason"`
}

func (b *Ban) ExpiresAt() time.Time {
	return b.CreatedAt.Add(b.Duration)
}
