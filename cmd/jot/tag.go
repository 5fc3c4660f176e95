package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/aretw0/jot/pkg/core"
)

func tagCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tag",
		Short: "Manage tags",
		Long:  `Manage tags. Deleting or renaming a tag never modifies notes.`,
	}
	cmd.AddCommand(tagAddCmd(g), tagListCmd(g), tagRenameCmd(g), tagDeleteCmd(g))
	return cmd
}

func tagAddCmd(g *globals) *cobra.Command {
	var id string

	cmd := &cobra.Command{
		Use:   "add <label>",
		Short: "Create a tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tag := core.Tag{ID: id, Label: args[0]}
			if err := core.Validate(tag); err != nil {
				return err
			}

			store, err := g.open(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			if tag.ID == "" {
				if tag, err = store.NewTag(cmd.Context(), tag.Label); err != nil {
					return err
				}
			} else {
				if _, exists := store.Tag(tag.ID); exists {
					return fmt.Errorf("tag %s already exists", tag.ID)
				}
				if err := store.AddTag(cmd.Context(), tag); err != nil {
					return err
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), tag.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "Use this ID instead of a generated one")
	return cmd
}

func tagListCmd(g *globals) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tags",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := g.open(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			tags := store.Tags()
			if asJSON {
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				return encoder.Encode(tags)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, t := range tags {
				fmt.Fprintf(tw, "%s\t%s\n", t.ID, t.Label)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output in JSON format")
	return cmd
}

func tagRenameCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <id> <label>",
		Short: "Rename a tag",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := core.Validate(core.Tag{ID: args[0], Label: args[1]}); err != nil {
				return err
			}

			store, err := g.open(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			if _, ok := store.Tag(args[0]); !ok {
				return fmt.Errorf("tag %s not found", args[0])
			}
			return store.UpdateTag(cmd.Context(), args[0], args[1])
		},
	}
}

func tagDeleteCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a tag; notes keep their other tags",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := g.open(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			if _, ok := store.Tag(args[0]); !ok {
				return fmt.Errorf("tag %s not found", args[0])
			}
			return store.DeleteTag(cmd.Context(), args[0])
		},
	}
}
