package chandata

import (
	"context"
	"errors"
	"net/netip"
	"time"

	"github.com/chiru-cafe/chiru/src/db"
	"github.com/chiru-cafe/chiru/src/models"
	"github.com/chiru-cafe/chiru/src/oops"
)

// The interval column is selected as whole nanoseconds so it can land in a
// time.Duration; durations are likewise passed in as seconds. Bans never
// need sub-second or calendar-unit precision.
const banColumns = `
	ip,
	created_at,
	(EXTRACT(EPOCH FROM duration)::bigint * 1000000000) AS duration,
	reason
`

func BanIP(ctx context.Context, dbConn db.ConnOrTx, ip netip.Prefix, duration time.Duration, reason string) (*models.Ban, error) {
	ban, err := db.QueryOne[models.Ban](ctx, dbConn,
		`
		INSERT INTO bans (ip, duration, reason)
		VALUES ($1, $2 * INTERVAL '1 second', $3)
		RETURNING `+banColumns,
		ip, duration.Seconds(), reason,
	)
	if err != nil {
		return nil, oops.New(err, "failed to ban %s", ip)
	}
	return ban, nil
}

/*
Returns the most recent ban currently covering addr, or nil if the address
is not banned. Collaborators are expected to call this before accepting a
post; nothing in the schema ties bans to posts.
*/
func ActiveBan(ctx context.Context, dbConn db.ConnOrTx, addr netip.Addr) (*models.Ban, error) {
	ban, err := db.QueryOne[models.Ban](ctx, dbConn,
		`
		SELECT `+banColumns+`
		FROM bans
		WHERE $1 <<= ip AND created_at + duration > NOW()
		ORDER BY created_at DESC
		`,
		netip.PrefixFrom(addr, addr.BitLen()),
	)
	if err != nil {
		if errors.Is(err, db.NotFound) {
			return nil, nil
		}
		return nil, oops.New(err, "failed to look up bans for %s", addr)
	}
	return ban, nil
}

// Lifts all active bans covering the given network. Expired bans are kept
// as history. Returns the number of bans lifted.
func UnbanIP(ctx context.Context, dbConn db.ConnOrTx, ip netip.Prefix) (int64, error) {
	tag, err := dbConn.Exec(ctx,
		`
		DELETE FROM bans
		WHERE ip = $1 AND created_at + duration > NOW()
		`,
		ip,
	)
	if err != nil {
		return 0, oops.New(err, "failed to unban %s", ip)
	}
	return tag.RowsAffected(), nil
}

func FetchBans(ctx context.Context, dbConn db.ConnOrTx) ([]*models.Ban, error) {
	bans, err := db.Query[models.Ban](ctx, dbConn,
		`
		SELECT `+banColumns+`
		FROM bans
		ORDER BY created_at DESC
		`,
	)
	if err != nil {
		return nil, oops.New(err, "failed to fetch bans")
	}
	return bans, nil
}
