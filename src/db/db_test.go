package db

import (
	"net/netip"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type testRow struct {
	ID       int          `db:"id"`
	Board    string       `db:"board"`
	Title    *string      `db:"title"`
	PostedAt time.Time    `db:"posted_at"`
	IP       netip.Prefix `db:"ip"`

	NoTag string
}

func TestCompileQuery(t *testing.T) {
	t.Run("no placeholder", func(t *testing.T) {
		q := compileQuery("SELECT id FROM posts", reflect.TypeOf(0))
		assert.Equal(t, "SELECT id FROM posts", q)
	})
	t.Run("plain $columns", func(t *testing.T) {
		q := compileQuery("SELECT $columns FROM posts", reflect.TypeOf(testRow{}))
		assert.Equal(t, "SELECT id, board, title, posted_at, ip FROM posts", q)
	})
	t.Run("$columns with prefix", func(t *testing.T) {
		q := compileQuery("SELECT $columns{posts} FROM posts", reflect.TypeOf(testRow{}))
		assert.Equal(t, "SELECT posts.id, posts.board, posts.title, posts.posted_at, posts.ip FROM posts", q)
	})
	t.Run("$columns into a scalar panics", func(t *testing.T) {
		assert.Panics(t, func() {
			compileQuery("SELECT $columns FROM posts", reflect.TypeOf(0))
		})
	})
}

func TestTypeIsScalar(t *testing.T) {
	scalars := []reflect.Type{
		reflect.TypeOf(0),
		reflect.TypeOf(""),
		reflect.TypeOf(false),
		reflect.TypeOf(time.Time{}),
		reflect.TypeOf(&time.Time{}),
		reflect.TypeOf(uuid.UUID{}),
		reflect.TypeOf(netip.Addr{}),
		reflect.TypeOf(netip.Prefix{}),
	}
	for _, st := range scalars {
		assert.True(t, typeIsScalar(st), "expected %v to be scalar", st)
	}

	assert.False(t, typeIsScalar(reflect.TypeOf(testRow{})))
	assert.False(t, typeIsScalar(reflect.TypeOf(&testRow{})))
}
