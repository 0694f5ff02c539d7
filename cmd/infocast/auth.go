package main

import (
	"github.com/spf13/cobra"

	"github.com/infocast/infocast/internal/core/ports"
	"github.com/infocast/infocast/internal/render"
)

func (a *app) loginCmd() *cobra.Command {
	var creds ports.Credentials

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and persist the session credential",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.session.Login(cmd.Context(), creds)
		},
	}
	cmd.Flags().StringVarP(&creds.Email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&creds.Password, "password", "p", "", "account password")
	return cmd
}

func (a *app) registerCmd() *cobra.Command {
	var reg ports.Registration

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and start a session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.session.Register(cmd.Context(), reg)
		},
	}
	cmd.Flags().StringVarP(&reg.Username, "username", "u", "", "username")
	cmd.Flags().StringVarP(&reg.Email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&reg.Password, "password", "p", "", "account password")
	return cmd
}

func (a *app) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the persisted session credential",
		Run: func(*cobra.Command, []string) {
			a.session.Logout()
		},
	}
}

func (a *app) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current principal",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Print(render.User(a.session.Principal()))
		},
	}
}

func (a *app) profileCmd() *cobra.Command {
	var updates ports.ProfileUpdate

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Update the current user's profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.session.UpdateProfile(cmd.Context(), updates)
		},
	}
	cmd.Flags().StringVarP(&updates.Username, "username", "u", "", "new username")
	cmd.Flags().StringVarP(&updates.Email, "email", "e", "", "new email")
	return cmd
}
