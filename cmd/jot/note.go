package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/jot/pkg/core"
)

func newCmd(g *globals) *cobra.Command {
	var (
		title    string
		markdown string
		file     string
		tags     []string
	)

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a note",
		Long: `Create a note. Tags are given by label; unknown labels become new tags.

  jot new --title "Weekly meeting" --tag work --file notes.md
  echo "# Idea" | jot new --title Idea --file -`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := readMarkdown(cmd, markdown, file)
			if err != nil {
				return err
			}
			data := core.NoteData{Title: title, Markdown: body}
			if err := core.Validate(data); err != nil {
				return err
			}

			store, err := g.open(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			if data.Tags, err = store.EnsureTags(cmd.Context(), tags); err != nil {
				return err
			}
			note, err := store.CreateNote(cmd.Context(), data)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), note.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "Note title")
	cmd.Flags().StringVarP(&markdown, "markdown", "m", "", "Markdown body")
	cmd.Flags().StringVarP(&file, "file", "f", "", "Read the body from a file (- for stdin)")
	cmd.Flags().StringArrayVar(&tags, "tag", nil, "Tag label (repeatable)")
	return cmd
}

func editCmd(g *globals) *cobra.Command {
	var (
		title    string
		markdown string
		file     string
		tags     []string
		noTags   bool
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a note",
		Long: `Edit a note. Fields not given keep their current value.
Unless the store uses stable IDs, the note gets a new ID, which is printed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := g.open(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			id := args[0]
			current, ok := store.Note(id)
			if !ok {
				return fmt.Errorf("note %s not found", id)
			}

			data := core.NoteData{Title: current.Title, Markdown: current.Markdown, Tags: current.Tags}
			if cmd.Flags().Changed("title") {
				data.Title = title
			}
			if cmd.Flags().Changed("markdown") || cmd.Flags().Changed("file") {
				if data.Markdown, err = readMarkdown(cmd, markdown, file); err != nil {
					return err
				}
			}
			if noTags {
				data.Tags = nil
			} else if cmd.Flags().Changed("tag") {
				if data.Tags, err = store.EnsureTags(cmd.Context(), tags); err != nil {
					return err
				}
			}
			if err := core.Validate(data); err != nil {
				return err
			}

			updated, found, err := store.UpdateNote(cmd.Context(), id, data)
			if err != nil {
				return err
			}
			if !found {
				return errors.New("note was deleted concurrently")
			}
			fmt.Fprintln(cmd.OutOrStdout(), updated.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "New title")
	cmd.Flags().StringVarP(&markdown, "markdown", "m", "", "New markdown body")
	cmd.Flags().StringVarP(&file, "file", "f", "", "Read the new body from a file (- for stdin)")
	cmd.Flags().StringArrayVar(&tags, "tag", nil, "Replace tags with these labels (repeatable)")
	cmd.Flags().BoolVar(&noTags, "no-tags", false, "Remove every tag")
	return cmd
}

func deleteCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a note",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := g.open(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			id := args[0]
			if _, ok := store.Note(id); !ok {
				return fmt.Errorf("note %s not found", id)
			}
			if err := store.DeleteNote(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Deleted", id)
			return nil
		},
	}
}
