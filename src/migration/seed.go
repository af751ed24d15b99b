package migration

import (
	"context"
	"fmt"
	"net/netip"
	"time"

	lorem "github.com/HandmadeNetwork/golorem"
	"github.com/chiru-cafe/chiru/src/chandata"
	"github.com/chiru-cafe/chiru/src/config"
	"github.com/chiru-cafe/chiru/src/db"
	"github.com/chiru-cafe/chiru/src/models"
	"github.com/chiru-cafe/chiru/src/site"
	"github.com/chiru-cafe/chiru/src/utils"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/spf13/cobra"
)

func init() {
	seedCommand := &cobra.Command{
		Use:   "seed [sampledata]",
		Short: "Migrate the database and fill it with sample data",
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) > 0 && args[0] == "sampledata" {
				SampleSeed()
			} else {
				BareMinimumSeed()
			}
		},
	}

	site.Command.AddCommand(seedCommand)
}

// Creates only what's necessary to get the site running. Not really very
// useful for local dev on its own; sample data makes things a lot better.
func BareMinimumSeed() {
	Migrate(LatestVersion())

	ctx := context.Background()
	conn := db.NewConnWithConfig(config.PostgresConfig{
		LogLevel: tracelog.LogLevelWarn,
	})
	defer conn.Close(ctx)

	fmt.Println("Creating admin user (\"admin\"/\"password\")...")
	utils.Must1(chandata.CreateUser(ctx, conn, "admin", "password", models.PrivilegeAdmin))
}

// Seeds the database with sample data for local dev.
func SampleSeed() {
	BareMinimumSeed()

	ctx := context.Background()
	conn := db.NewConnWithConfig(config.PostgresConfig{
		LogLevel: tracelog.LogLevelWarn,
	})
	defer conn.Close(ctx)

	fmt.Println("Creating moderator (\"janny\"/\"password\")...")
	utils.Must1(chandata.CreateUser(ctx, conn, "janny", "password", models.PrivilegeMod))

	fmt.Println("Creating boards...")
	utils.Must1(chandata.CreateBoard(ctx, conn, "g", "Technology"))

	fmt.Println("Creating threads...")
	for _, board := range []string{"b", "g"} {
		for i := 0; i < 3; i++ {
			op := seedPost(ctx, conn, chandata.CreatePostInput{
				Board: board,
				Title: ptr(lorem.Sentence(1, 5)),
			})

			numReplies := 2 + i*3
			for j := 0; j < numReplies; j++ {
				input := chandata.CreatePostInput{
					Board:  board,
					Thread: &op.ID,
					Sage:   j%4 == 3,
				}
				if j == 0 {
					// quote the OP so the replies table gets exercised
					input.Content = ptr(fmt.Sprintf(">>%d\n%s", op.ID, lorem.Paragraph(1, 2)))
				}
				if j%3 == 1 {
					input.Author = ptr(lorem.Word(3, 8))
				}
				seedPost(ctx, conn, input)
			}
		}
	}

	fmt.Println("Banning a troublemaker...")
	utils.Must1(chandata.BanIP(ctx, conn,
		netip.MustParsePrefix("203.0.113.0/24"),
		72*time.Hour,
		"flooding",
	))

	fmt.Println("Done!")
}

func seedPost(ctx context.Context, conn db.ConnOrTx, input chandata.CreatePostInput) *models.Post {
	if input.Content == nil {
		input.Content = ptr(lorem.Paragraph(1, 3))
	}
	if !input.IP.IsValid() {
		input.IP = netip.MustParsePrefix("192.168.2.1/32")
	}
	return utils.Must1(chandata.CreatePost(ctx, conn, input))
}

func ptr[T any](v T) *T {
	return &v
}
