package admintools

import (
	"context"
	"errors"
	"fmt"
	"net/netip"
	"os"
	"time"

	"github.com/chiru-cafe/chiru/src/auth"
	"github.com/chiru-cafe/chiru/src/chandata"
	"github.com/chiru-cafe/chiru/src/db"
	"github.com/chiru-cafe/chiru/src/models"
	"github.com/chiru-cafe/chiru/src/site"
	"github.com/spf13/cobra"
)

func init() {
	adminCommand := &cobra.Command{
		Use:   "admin",
		Short: "Miscellaneous admin commands",
	}
	site.Command.AddCommand(adminCommand)

	var addUserLevel string
	addUserCommand := &cobra.Command{
		Use:   "adduser [username] [password]",
		Short: "Create a new staff user",
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) < 2 {
				fmt.Printf("You must provide a username and a password.\n\n")
				cmd.Usage()
				os.Exit(1)
			}

			username := args[0]
			password := args[1]
			level := models.PrivilegeLevel(addUserLevel)
			if !level.Valid() {
				fmt.Printf("Unknown privilege level '%s'. Use 'admin' or 'mod'.\n\n", addUserLevel)
				os.Exit(1)
			}

			ctx := context.Background()
			conn := db.NewConn()
			defer conn.Close(ctx)

			_, err := chandata.FetchUserByName(ctx, conn, username)
			if err == nil {
				fmt.Printf("%s already exists. Please pick a different username.\n\n", username)
				os.Exit(1)
			} else if !errors.Is(err, db.NotFound) {
				panic(err)
			}

			user, err := chandata.CreateUser(ctx, conn, username, password, level)
			if err != nil {
				panic(err)
			}

			fmt.Printf("Created %s '%s' (%s)\n", user.Level, user.Name, user.ID)
		},
	}
	addUserCommand.Flags().StringVar(&addUserLevel, "level", string(models.PrivilegeMod), "Privilege level for the new user (admin or mod)")
	adminCommand.AddCommand(addUserCommand)

	setPasswordCommand := &cobra.Command{
		Use:   "setpassword [username] [new password]",
		Short: "Replace a user's password",
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) < 2 {
				fmt.Printf("You must provide a username and a password.\n\n")
				cmd.Usage()
				os.Exit(1)
			}

			username := args[0]
			password := args[1]

			ctx := context.Background()
			conn := db.NewConn()
			defer conn.Close(ctx)

			user, err := chandata.FetchUserByName(ctx, conn, username)
			if err != nil {
				if errors.Is(err, db.NotFound) {
					fmt.Printf("User '%s' not found\n", username)
					os.Exit(1)
				} else {
					panic(err)
				}
			}

			hashedPassword := auth.HashPassword(password)

			err = chandata.UpdatePassword(ctx, conn, user.Name, hashedPassword)
			if err != nil {
				panic(err)
			}

			fmt.Printf("Successfully updated password for '%s'\n", user.Name)
		},
	}
	adminCommand.AddCommand(setPasswordCommand)

	addBoardCommand := &cobra.Command{
		Use:   "addboard [name] [title]",
		Short: "Create a new board",
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) < 2 {
				fmt.Printf("You must provide a board name and a title.\n\n")
				cmd.Usage()
				os.Exit(1)
			}

			ctx := context.Background()
			conn := db.NewConn()
			defer conn.Close(ctx)

			board, err := chandata.CreateBoard(ctx, conn, args[0], args[1])
			if err != nil {
				panic(err)
			}

			fmt.Printf("Created board /%s/ - %s\n", board.Name, board.Title)
		},
	}
	adminCommand.AddCommand(addBoardCommand)

	banCommand := &cobra.Command{
		Use:   "ban [ip or cidr] [duration] [reason...]",
		Short: "Ban an IP address or network",
		Long:  "Ban an IP address or network for a duration like 24h or 30m.",
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) < 3 {
				fmt.Printf("You must provide an address, a duration, and a reason.\n\n")
				cmd.Usage()
				os.Exit(1)
			}

			ip, err := parseBanTarget(args[0])
			if err != nil {
				fmt.Printf("ERROR: bad address: %v\n", err)
				os.Exit(1)
			}
			duration, err := time.ParseDuration(args[1])
			if err != nil {
				fmt.Printf("ERROR: bad duration: %v\n", err)
				os.Exit(1)
			}
			reason := ""
			for i, part := range args[2:] {
				if i > 0 {
					reason += " "
				}
				reason += part
			}

			ctx := context.Background()
			conn := db.NewConn()
			defer conn.Close(ctx)

			ban, err := chandata.BanIP(ctx, conn, ip, duration, reason)
			if err != nil {
				panic(err)
			}

			fmt.Printf("Banned %s until %s\n", ban.IP, ban.ExpiresAt().Format(time.RFC1123))
		},
	}
	adminCommand.AddCommand(banCommand)

	unbanCommand := &cobra.Command{
		Use:   "unban [ip or cidr]",
		Short: "Lift active bans on an IP address or network",
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) < 1 {
				fmt.Printf("You must provide an address.\n\n")
				cmd.Usage()
				os.Exit(1)
			}

			ip, err := parseBanTarget(args[0])
			if err != nil {
				fmt.Printf("ERROR: bad address: %v\n", err)
				os.Exit(1)
			}

			ctx := context.Background()
			conn := db.NewConn()
			defer conn.Close(ctx)

			n, err := chandata.UnbanIP(ctx, conn, ip)
			if err != nil {
				panic(err)
			}
			if n == 0 {
				fmt.Printf("No active bans on %s.\n", ip)
			} else {
				fmt.Printf("Lifted %d ban(s) on %s.\n", n, ip)
			}
		},
	}
	adminCommand.AddCommand(unbanCommand)

	bansCommand := &cobra.Command{
		Use:   "bans",
		Short: "List all bans",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()
			conn := db.NewConn()
			defer conn.Close(ctx)

			bans, err := chandata.FetchBans(ctx, conn)
			if err != nil {
				panic(err)
			}

			now := time.Now()
			for _, ban := range bans {
				status := "active"
				if ban.ExpiresAt().Before(now) {
					status = "expired"
				}
				fmt.Printf("%s\t%s\tuntil %s\t%s\n", ban.IP, status, ban.ExpiresAt().Format(time.RFC1123), ban.Reason)
			}
		},
	}
	adminCommand.AddCommand(bansCommand)
}

// Accepts either a CIDR network or a bare address, which bans just that host.
func parseBanTarget(s string) (netip.Prefix, error) {
	if prefix, err := netip.ParsePrefix(s); err == nil {
		return prefix, nil
	}
	addr, err := netip.ParseAddr(s)
	if err != nil {
		return netip.Prefix{}, err
	}
	return netip.PrefixFrom(addr, addr.BitLen()), nil
}
