package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/jot/pkg/core"
)

func themeCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:       "theme [toggle|light|dark]",
		Short:     "Show or change the theme preference",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"toggle", "light", "dark"},
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := g.open(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			if len(args) == 1 {
				switch args[0] {
				case "toggle":
					_, err = store.ToggleTheme(cmd.Context())
				default:
					var theme core.Theme
					if theme, err = core.ParseTheme(args[0]); err == nil {
						err = store.SetTheme(cmd.Context(), theme)
					}
				}
				if err != nil {
					return err
				}
			}

			p := store.Palette()
			fmt.Fprintf(cmd.OutOrStdout(), "theme: %s (toggle: %s)\n", p.Theme, p.ToggleLabel)
			return nil
		},
	}
}
