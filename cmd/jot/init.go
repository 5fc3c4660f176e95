package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/jot"
)

func initCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize a jot store",
		Long: `Initialize a new jot store in the current directory (or --dir).
It creates the .jot directory and a jot.yaml recording the adapter.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root := g.dir
			if root == "" {
				wd, err := os.Getwd()
				if err != nil {
					return err
				}
				root = wd
			}

			store, err := jot.Open(cmd.Context(), root, append(g.options(cmd), jot.WithAutoInit(true))...)
			if err != nil {
				return fmt.Errorf("initialize store: %w", err)
			}
			defer store.Close()

			if _, err := jot.WriteConfig(store.Root, jot.Config{
				Adapter:   store.Settings.Adapter,
				StableIDs: store.Settings.StableIDs,
			}); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Initialized empty jot store in", store.Root)
			return nil
		},
	}
}
