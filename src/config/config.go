package config

import (
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
)

// Deployments edit this file in place; these are the local dev defaults.
var Config = ChiruConfig{
	Env:      Dev,
	LogLevel: zerolog.DebugLevel,
	Postgres: PostgresConfig{
		User:     "chiru",
		Password: "password",
		Hostname: "localhost",
		Port:     5432,
		DbName:   "chiru",
		LogLevel: tracelog.LogLevelWarn,
		MinConn:  2,
		MaxConn:  10,
	},
}
