package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/aretw0/jot/internal/api"
	"github.com/aretw0/jot/pkg/core"
)

func serveCmd(g *globals) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the store over a JSON HTTP API",
		Long: `Serve the store over a JSON HTTP API. Changes made by other processes
(another jot command, a text editor) are picked up while serving.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			store, err := g.open(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			if !cmd.Flags().Changed("addr") {
				addr = store.Settings.Server.Addr
			}
			srv := &http.Server{
				Addr:              addr,
				Handler:           api.New(store.Service, g.logger),
				ReadHeaderTimeout: 5 * time.Second,
			}

			eg, ctx := errgroup.WithContext(ctx)
			eg.Go(func() error {
				g.logger.Info("listening", "addr", addr, "root", store.Root)
				if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			})
			eg.Go(func() error {
				err := store.Watch(ctx)
				if errors.Is(err, core.ErrNotWatchable) {
					g.logger.Info("storage cannot be watched, external changes need a restart")
					return nil
				}
				return err
			})
			eg.Go(func() error {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			})
			return eg.Wait()
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from jot.yaml, else 127.0.0.1:7474)")
	return cmd
}
