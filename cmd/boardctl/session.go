package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"liteboard/internal/config"
)

func (a *app) loginCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "login <username>",
		GroupID: "session",
		Short:   "Sign in to a development store and save the session",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, path, err := a.loadProfile()
			if err != nil {
				return err
			}
			p.Session = ""
			c, err := a.clientFor(p)
			if err != nil {
				return err
			}

			user, err := c.Login(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			p.Session = c.SessionToken()
			if p.Session == "" {
				return fmt.Errorf("store at %s did not return a session", p.URL)
			}
			if err := config.SaveProfile(path, p); err != nil {
				return err
			}

			fmt.Fprintf(a.out, "Logged in to %s as %s\n", p.URL, user.Username)
			return nil
		},
	}
}

func (a *app) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "logout",
		GroupID: "session",
		Short:   "End the session and forget it",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, path, err := a.loadProfile()
			if err != nil {
				return err
			}
			c, err := a.clientFor(p)
			if err != nil {
				return err
			}
			if err := c.Logout(cmd.Context()); err != nil {
				a.logger.Warn("logout request failed", "error", err)
			}

			p.Session = ""
			if err := config.SaveProfile(path, p); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Logged out")
			return nil
		},
	}
}

func (a *app) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "whoami",
		GroupID: "session",
		Short:   "Show the signed-in user",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			user, err := c.Profile(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "%s (%s)\n", user.Username, user.ID)
			return nil
		},
	}
}
