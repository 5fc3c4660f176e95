package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/jot/pkg/adapters/markdown"
)

func exportCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "export <dir>",
		Short: "Write every note as a markdown file with a YAML frontmatter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := g.open(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			paths, err := markdown.Export(cmd.Context(), args[0], store.Notes())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d notes to %s\n", len(paths), args[0])
			return nil
		},
	}
}

func importCmd(g *globals) *cobra.Command {
	var pattern string

	cmd := &cobra.Command{
		Use:   "import <dir>",
		Short: "Create a note from every markdown file under a directory",
		Long: `Create a note from every markdown file under a directory. The frontmatter
may carry a title and tag labels; unknown labels become new tags. Imported notes
always get new IDs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := g.open(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			n, err := markdown.Import(cmd.Context(), args[0], pattern, store.Service)
			if err != nil {
				return fmt.Errorf("import (after %d notes): %w", n, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d notes\n", n)
			return nil
		},
	}
	cmd.Flags().StringVar(&pattern, "pattern", "", "Glob selecting the files (default **/*.md)")
	return cmd
}
