// Command infocast is the terminal client for the InfoCast broadcast
// service.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/infocast/infocast/internal/core/service"
	"github.com/infocast/infocast/internal/infrastructure/api"
	"github.com/infocast/infocast/internal/infrastructure/credentials"
	"github.com/infocast/infocast/internal/pkg/config"
	"github.com/infocast/infocast/internal/render"
	"github.com/infocast/infocast/pkg/logger"
)

// app carries the wired client core into every command. It is built once
// in the root PersistentPreRun, after which the session has already been
// restored — commands never observe a loading session.
type app struct {
	log        zerolog.Logger
	session    *service.Session
	broadcasts *service.Broadcasts
}

func main() {
	a := &app{}

	root := &cobra.Command{
		Use:           "infocast",
		Short:         "Client for the InfoCast broadcast service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	root.AddCommand(
		a.loginCmd(),
		a.registerCmd(),
		a.logoutCmd(),
		a.whoamiCmd(),
		a.profileCmd(),
		a.listCmd(),
		a.getCmd(),
		a.createCmd(),
		a.editCmd(),
		a.deleteCmd(),
		a.statsCmd(),
	)

	if err := root.Execute(); err != nil {
		// Mutation failures have already been reported through the
		// notifier; the exit code is the only thing left to set.
		os.Exit(1)
	}
}

func (a *app) init(cmd *cobra.Command) error {
	cfg := config.Load()
	a.log = logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty})

	store, err := credentials.NewFileStore(cfg.TokenPath)
	if err != nil {
		return fmt.Errorf("resolving credential store: %w", err)
	}

	gateway := api.NewClient(cfg.APIURL, cfg.RequestTimeout, a.log)
	notifier := render.Notifier{Out: cmd.OutOrStdout()}

	a.session = service.NewSession(gateway, store, notifier, a.log)
	a.broadcasts = service.NewBroadcasts(gateway, notifier, a.log)

	// Resume any persisted session before the command body runs. A
	// rejected credential is silently discarded here.
	a.session.Restore(cmd.Context())
	return nil
}
