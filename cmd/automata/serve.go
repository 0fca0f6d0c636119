package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/internal/presentation/tui"
	httpAdapter "github.com/aretw0/automata/pkg/adapters/http"
	"github.com/spf13/cobra"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long: `Exposes evaluation, validation, graphs and reports as a JSON API over HTTP.
Prometheus metrics are served on /metrics.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := a.runtime("")
			if err != nil {
				return err
			}
			defer rt.Close()

			if addr == "" {
				addr = a.cfg.HTTP.Addr
			}
			handler := httpAdapter.NewHandler(rt.Engine,
				httpAdapter.WithMetrics(rt.Metrics.Handler()),
				httpAdapter.WithMaxWordSize(a.cfg.MaxWordSize),
				httpAdapter.WithLogger(a.logger),
			)

			srv := &http.Server{
				Addr:              addr,
				Handler:           handler,
				ReadHeaderTimeout: 10 * time.Second,
			}

			tui.PrintBanner(cmd.ErrOrStderr(), strings.TrimSpace(automata.Version))

			// Channel to listen for errors coming from the listener.
			serverErrors := make(chan error, 1)
			go func() {
				a.logger.Info("starting server", "addr", srv.Addr, "definitions", a.cfg.Definitions, "store", a.cfg.Store.Kind)
				serverErrors <- srv.ListenAndServe()
			}()

			shutdown := make(chan os.Signal, 1)
			signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(shutdown)

			select {
			case err := <-serverErrors:
				return fmt.Errorf("server error: %w", err)

			case sig := <-shutdown:
				a.logger.Info("shutting down", "signal", sig.String())

				// Give outstanding requests a deadline for completion.
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()

				if err := srv.Shutdown(ctx); err != nil {
					a.logger.Error("graceful shutdown did not complete", "err", err)
					if err := srv.Close(); err != nil && !errors.Is(err, http.ErrServerClosed) {
						return fmt.Errorf("error killing server: %w", err)
					}
				}
				a.logger.Info("server stopped gracefully")
				return nil
			}
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Address to listen on (overrides http.addr)")
	return cmd
}
