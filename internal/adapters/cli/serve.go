package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/aeroroute-go/internal/adapters/httpapi"
	"github.com/andrescamacho/aeroroute-go/internal/adapters/metrics"
	"github.com/andrescamacho/aeroroute-go/internal/infrastructure/pidfile"
)

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	var (
		port    int
		pidPath string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the route planning HTTP API",
		Long: `Serve the HTTP API until interrupted.

Endpoints:
  POST /v1/route-plans      compute a route plan
  GET  /v1/airports/:icao   airport reference data
  GET  /v1/aircraft/:id     aircraft performance record
  GET  /health              liveness
  GET  /metrics             prometheus metrics (when enabled)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			app, err := newApplication(ctx, appOptions{metrics: true, publish: true})
			if err != nil {
				return err
			}
			defer app.Close()

			if cmd.Flags().Changed("port") {
				app.cfg.Server.Port = port
			}
			if pidPath == "" {
				pidPath = app.cfg.Server.PIDFile
			}
			if pidPath != "" {
				pf := pidfile.New(pidPath)
				if err := pf.Acquire(); err != nil {
					return err
				}
				defer func() {
					if err := pf.Release(); err != nil {
						app.logger.Warn("failed to release PID file", "path", pf.Path(), "error", err)
					}
				}()
			}

			var opts []httpapi.ServerOption
			if metrics.IsEnabled() {
				opts = append(opts, httpapi.WithMetrics(metrics.GetRegistry(), app.cfg.Metrics.Path))
			}
			server := httpapi.NewServer(app.cfg.Server, app.mediator, app.logger, opts...)

			if err := server.Run(ctx); err != nil {
				return fmt.Errorf("serve: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "Listen port (overrides server.port)")
	cmd.Flags().StringVar(&pidPath, "pid-file", "", "PID file enforcing a single instance (overrides server.pid_file)")

	return cmd
}
