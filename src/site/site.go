package site

import (
	"context"
	"fmt"
	"time"

	"github.com/chiru-cafe/chiru/src/db"
	"github.com/chiru-cafe/chiru/src/logging"
	"github.com/spf13/cobra"
)

// The root of the chiru CLI. Command packages attach their subcommands to
// this from their init functions; main.go pulls them in with blank imports.
var Command = &cobra.Command{
	Use:   "chiru",
	Short: "Manage the chiru imageboard database",
	Run: func(cmd *cobra.Command, args []string) {
		defer logging.LogPanics(nil)

		ctx := context.Background()
		conn := db.NewConn()
		defer conn.Close(ctx)

		version, err := db.QueryOneScalar[time.Time](ctx, conn, "SELECT version FROM chiru_migration")
		if err != nil {
			fmt.Println("No migration version found. Run `chiru migrate` to set up the database.")
			return
		}
		fmt.Printf("Database schema version: %s\n", version.UTC().Format(time.RFC3339))

		boards, err := db.QueryScalar[string](ctx, conn, "SELECT name FROM boards ORDER BY name")
		if err != nil {
			panic(err)
		}
		fmt.Printf("Boards: %d\n", len(boards))
		for _, name := range boards {
			fmt.Printf("  /%s/\n", name)
		}
	},
}
