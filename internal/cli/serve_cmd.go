package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexanderramin/clientdesk/internal/api"
	"github.com/spf13/cobra"
)

func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the admin API, client portal and lead questionnaire over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = app.HTTPAddr
			}
			server := api.New(app.services(), api.Options{
				PublicURL: app.PublicURL,
				Logger:    app.Logger,
				Now:       app.now,
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errc := make(chan error, 1)
			go func() { errc <- server.Listen(addr) }()
			printf(cmd, "Listening on %s\n", addr)

			select {
			case err := <-errc:
				return err
			case <-ctx.Done():
			}
			if err := server.Shutdown(); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return <-errc
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config)")
	return cmd
}

func (a *App) services() api.Services {
	return api.Services{
		Projects:     a.Projects,
		Modules:      a.Modules,
		Changes:      a.Changes,
		Requirements: a.Requirements,
		Leads:        a.Leads,
		Portal:       a.Portal,
	}
}
