package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aretw0/jot/pkg/adapters/lifecycle"
	"github.com/aretw0/jot/pkg/core"
)

func watchCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "watch [pattern]",
		Short: "Print changes made to the store by other processes",
		Long: `Print changes made to the store by other processes, one line per changed
key, until interrupted. The pattern is a glob over keys (NOTES, TAGS,
THEME_NOTEAPP); it defaults to every key.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pattern := "*"
			if len(args) == 1 {
				pattern = args[0]
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			store, err := g.open(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			w, ok := store.Storage.(core.Watchable)
			if !ok {
				return core.ErrNotWatchable
			}
			src := lifecycle.NewSource(w, pattern)
			if err := src.Start(ctx); err != nil {
				return err
			}
			for e := range src.Events() {
				fmt.Fprintln(cmd.OutOrStdout(), e.String())
			}
			return nil
		},
	}
}
