package cli

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"hotel-ob/internal/server"
)

// ServeCommand creates the serve command
func ServeCommand(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the wizard over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			orch, err := app.Orchestrator(cmd.Context())
			if err != nil {
				return err
			}
			if addr == "" {
				addr = app.Config.ListenAddr
			}

			gin.SetMode(gin.ReleaseMode)
			srv := server.New(orch,
				server.WithLogger(app.Logger.Named("http")),
				server.WithMetrics(app.Metrics.Handler()),
			)
			app.Logger.Infow("starting wizard server", "addr", addr, "backend", app.Config.APIURL)
			return srv.Run(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (defaults to HOTELOB_LISTEN_ADDR)")
	return cmd
}

// InitDBCommand creates the init-db command
func InitDBCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "init-db",
		Short: "Create the session tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := app.DataStore(cmd.Context())
			if err != nil {
				return err
			}
			if err := ds.InitDB(cmd.Context()); err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}
			if app.Config.IsMemoryMode() {
				fmt.Fprintln(cmd.OutOrStdout(), "Memory store needs no initialization.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Database initialized successfully (%s).\n", maskConnectionString(app.Config.ConnectionString))
			return nil
		},
	}
}
