package main

import (
	"fmt"

	"github.com/nikolayk812/fluxshop/internal/auth"
	"github.com/nikolayk812/fluxshop/internal/domain"
	"github.com/spf13/cobra"
)

func (c *cli) loginCmd() *cobra.Command {
	var creds domain.Credentials

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and keep the session token locally",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.app.Auth.Login(cmd.Context(), creds); err != nil {
				return c.userError(err, auth.LoginFailure(err))
			}

			if p, ok := c.app.Session.Profile(); ok {
				fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s.\n", p.Email)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged in.")
			return nil
		},
	}
	cmd.Flags().StringVar(&creds.Email, "email", "", "account email")
	cmd.Flags().StringVar(&creds.Password, "password", "", "account password")

	return cmd
}

func (c *cli) signupCmd() *cobra.Command {
	var req domain.SignupRequest

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.app.Auth.Signup(cmd.Context(), req); err != nil {
				return c.userError(err, auth.SignupFailure(err))
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Account created. Log in with `fluxshop login`.")
			return nil
		},
	}
	cmd.Flags().StringVar(&req.Name, "name", "", "full name")
	cmd.Flags().StringVar(&req.Email, "email", "", "account email")
	cmd.Flags().StringVar(&req.Password, "password", "", "password (min 6)")

	return cmd
}

func (c *cli) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the local session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.app.Session.Logout(cmd.Context()); err != nil {
				return c.userError(err, "Logout failed")
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
}

func (c *cli) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			p, ok := c.app.Session.Profile()
			switch {
			case ok:
				role := "customer"
				if p.IsAdmin {
					role = "admin"
				}
				fmt.Fprintf(out, "%s <%s> (%s)\n", p.Name, p.Email, role)
			case c.app.Session.Token() != "":
				fmt.Fprintln(out, "Session token present but the profile could not be loaded.")
			default:
				fmt.Fprintln(out, "Not logged in.")
			}
			return nil
		},
	}
}
