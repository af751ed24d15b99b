package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashPassword(t *testing.T) {
	hp := HashPassword("corndog sandwich")

	assert.Equal(t, Argon2id, hp.Algorithm)
	assert.NotEmpty(t, hp.Salt)
	assert.NotEmpty(t, hp.Hash)

	t.Run("correct password", func(t *testing.T) {
		ok, err := CheckPassword("corndog sandwich", hp)
		assert.Nil(t, err)
		assert.True(t, ok)
	})
	t.Run("wrong password", func(t *testing.T) {
		ok, err := CheckPassword("corndog sandwhich", hp)
		assert.Nil(t, err)
		assert.False(t, ok)
	})
}

func TestPasswordStringRoundTrip(t *testing.T) {
	hp := HashPassword("hunter2")
	parsed, err := ParsePasswordString(hp.String())
	assert.Nil(t, err)
	assert.Equal(t, hp, parsed)

	ok, err := CheckPassword("hunter2", parsed)
	assert.Nil(t, err)
	assert.True(t, ok)
}

func TestParsePasswordString(t *testing.T) {
	_, err := ParsePasswordString("not a password string")
	assert.NotNil(t, err)

	_, err = ParsePasswordString("argon2id$t=1,m=40960,p=1,l=64$c2FsdA==$aGFzaA==")
	assert.Nil(t, err)
}

func TestCheckPasswordUnknownAlgorithm(t *testing.T) {
	_, err := CheckPassword("whatever", HashedPassword{Algorithm: "md5"})
	assert.NotNil(t, err)
}

func TestParseArgon2idConfig(t *testing.T) {
	cfg, err := ParseArgon2idConfig("t=1,m=40960,p=1,l=64")
	assert.Nil(t, err)
	assert.Equal(t, uint32(1), cfg.Time)
	assert.Equal(t, uint32(40960), cfg.Memory)
	assert.Equal(t, uint8(1), cfg.Threads)
	assert.Equal(t, uint32(64), cfg.KeyLength)
	assert.Equal(t, "t=1,m=40960,p=1,l=64", cfg.String())

	_, err = ParseArgon2idConfig("nope")
	assert.NotNil(t, err)
}
