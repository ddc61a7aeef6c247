package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/fieldtrail/fieldtrail/internal/cli"
	"github.com/fieldtrail/fieldtrail/internal/model"
	"github.com/fieldtrail/fieldtrail/internal/profile"
)

func profileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Show your employee profile",
		Long:  `Fetch your profile from the backend, falling back to the locally cached copy when offline.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			session, err := store.GetSession(ctx)
			if err != nil {
				return err
			}

			user := session.User
			if client, err := newAPIClient(store); err == nil {
				if fresh, err := client.Me(ctx); err == nil {
					user = *fresh
				} else {
					slog.Warn("Profile fetch failed, showing cached profile", "error", err)
				}
			}

			printProfile(user)
			return nil
		},
	}
}

func printProfile(user model.User) {
	fmt.Println(cli.FormatTitle("Profile"))
	for _, field := range profile.Render(user) {
		fmt.Printf("%s %s\n",
			cli.TableCellStyle.Render(cli.BoldStyle.Render(field.Label+":")),
			field.Value)
	}
}
