package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/fieldtrail/fieldtrail/internal/cli"
	"github.com/fieldtrail/fieldtrail/internal/common"
)

func loginCmd() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the backend",
		Long:  `Authenticate with your work email and password. The session is stored locally until you log out.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			if email == "" {
				fmt.Print(cli.FormatPrompt("Email"))
				reader := bufio.NewReader(os.Stdin)
				line, err := reader.ReadString('\n')
				if err != nil {
					return fmt.Errorf("failed to read email: %w", err)
				}
				email = strings.TrimSpace(line)
			}
			if email == "" {
				return common.NewUserError("An email address is required to log in.", errors.New("email is empty"))
			}

			fmt.Print(cli.FormatPrompt("Password"))
			password, err := term.ReadPassword(syscall.Stdin)
			fmt.Println()
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}

			client, err := newAPIClient(nil)
			if err != nil {
				return err
			}

			session, err := client.Login(ctx, email, string(password))
			if err != nil {
				if errors.Is(err, common.ErrBackendRejected) {
					return common.NewUserError("Login failed. Check your email and password.", err)
				}
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.SaveSession(ctx, session); err != nil {
				return fmt.Errorf("failed to store session: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Logged in as %s", session.User.FullName)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "work email address")
	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and discard the stored session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.ClearSession(ctx); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("Logged out"))
			return nil
		},
	}
}

func forgotPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "forgot-password <email>",
		Short: "Request a password reset email",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAPIClient(nil)
			if err != nil {
				return err
			}

			if err := client.ForgotPassword(cmd.Context(), args[0]); err != nil {
				if errors.Is(err, common.ErrBackendRejected) {
					return common.NewUserError("The backend could not start a password reset for that address.", err)
				}
				return err
			}

			fmt.Println(cli.FormatSuccess("Password reset requested. Check your inbox."))
			return nil
		},
	}
}
