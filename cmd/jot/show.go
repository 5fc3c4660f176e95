package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func showCmd(g *globals) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := g.open(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			note, ok := store.Note(args[0])
			if !ok {
				return fmt.Errorf("note %s not found", args[0])
			}

			out := cmd.OutOrStdout()
			if asJSON {
				encoder := json.NewEncoder(out)
				encoder.SetIndent("", "  ")
				return encoder.Encode(note)
			}

			fmt.Fprintf(out, "# %s\n", note.Title)
			if len(note.Tags) > 0 {
				fmt.Fprintf(out, "tags: %s\n", labels(note.Tags))
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, note.Markdown)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output in JSON format")
	return cmd
}
