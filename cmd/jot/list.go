package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/aretw0/jot/pkg/core"
)

func listCmd(g *globals) *cobra.Command {
	var (
		title   string
		tags    []string
		tagGlob string
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List notes, optionally filtered",
		Long: `List notes whose title contains --title (case-insensitive) and that carry
every --tag (by label or ID). --tag-glob keeps notes carrying at least one tag
whose label matches the pattern.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if tagGlob != "" && !doublestar.ValidatePattern(tagGlob) {
				return fmt.Errorf("%w: bad pattern %q", core.ErrInvalidInput, tagGlob)
			}

			store, err := g.open(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			required := make([]string, 0, len(tags))
			for _, ref := range tags {
				tag, ok := lookupTag(store.Tags(), ref)
				if !ok {
					// An unknown tag matches nothing.
					return printNotes(cmd.OutOrStdout(), nil, asJSON)
				}
				required = append(required, tag.ID)
			}

			notes := store.Filter(title, required)
			if tagGlob != "" {
				notes = filterByLabelGlob(notes, tagGlob)
			}
			return printNotes(cmd.OutOrStdout(), notes, asJSON)
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "Filter by title substring")
	cmd.Flags().StringArrayVar(&tags, "tag", nil, "Require a tag, by label or ID (repeatable)")
	cmd.Flags().StringVar(&tagGlob, "tag-glob", "", "Require a tag whose label matches a glob")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output in JSON format")
	return cmd
}

// lookupTag finds a tag by ID, then by label (case-insensitively).
func lookupTag(tags []core.Tag, ref string) (core.Tag, bool) {
	for _, t := range tags {
		if t.ID == ref {
			return t, true
		}
	}
	for _, t := range tags {
		if strings.EqualFold(t.Label, ref) {
			return t, true
		}
	}
	return core.Tag{}, false
}

func filterByLabelGlob(notes []core.Note, pattern string) []core.Note {
	out := make([]core.Note, 0, len(notes))
	for _, n := range notes {
		for _, t := range n.Tags {
			if ok, _ := doublestar.Match(pattern, t.Label); ok {
				out = append(out, n)
				break
			}
		}
	}
	return out
}

func printNotes(w io.Writer, notes []core.Note, asJSON bool) error {
	if notes == nil {
		notes = []core.Note{}
	}
	if asJSON {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(notes)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, n := range notes {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", n.ID, n.Title, labels(n.Tags))
	}
	return tw.Flush()
}

func labels(tags []core.Tag) string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		out = append(out, t.Label)
	}
	return strings.Join(out, ", ")
}
