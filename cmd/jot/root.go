package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/jot"
)

// globals holds the persistent flags shared by every command.
type globals struct {
	dir       string
	adapter   string
	stableIDs bool
	readOnly  bool
	verbose   bool
	logger    *slog.Logger
}

func newRootCmd() *cobra.Command {
	g := &globals{}

	rootCmd := &cobra.Command{
		Use:   "jot",
		Short: "A local markdown note store with tags",
		Long: `jot keeps markdown notes and the tags that group them on your machine.
Notes are filtered by title and tags; deleting a tag never deletes a note.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if g.verbose {
				level = slog.LevelDebug
			}
			g.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&g.dir, "dir", "C", "", "Store root (default: discovered from the working directory)")
	flags.StringVar(&g.adapter, "adapter", "fs", "Storage adapter: fs, sqlite or memory")
	flags.BoolVar(&g.stableIDs, "stable-ids", false, "Keep note IDs when editing")
	flags.BoolVar(&g.readOnly, "read-only", false, "Open the store read-only")
	flags.BoolVarP(&g.verbose, "verbose", "v", false, "Enable verbose logging")

	rootCmd.AddCommand(
		initCmd(g),
		newCmd(g),
		listCmd(g),
		showCmd(g),
		editCmd(g),
		deleteCmd(g),
		tagCmd(g),
		themeCmd(g),
		serveCmd(g),
		exportCmd(g),
		importCmd(g),
		statusCmd(g),
		watchCmd(g),
		versionCmd(),
	)
	return rootCmd
}

// options turns the flags the user actually set into store options, so that
// jot.yaml values apply otherwise.
func (g *globals) options(cmd *cobra.Command) []jot.Option {
	opts := []jot.Option{jot.WithLogger(g.logger)}
	if cmd.Flags().Changed("adapter") {
		opts = append(opts, jot.WithAdapter(g.adapter))
	}
	if cmd.Flags().Changed("stable-ids") {
		opts = append(opts, jot.WithStableNoteIDs(g.stableIDs))
	}
	if cmd.Flags().Changed("read-only") {
		opts = append(opts, jot.WithReadOnly(g.readOnly))
	}
	return opts
}

// root returns --dir, or the store root found above the working directory.
func (g *globals) root() (string, error) {
	if g.dir != "" {
		return g.dir, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	root, err := jot.FindRoot(wd)
	if err != nil {
		return "", fmt.Errorf("not inside a jot store (run 'jot init'): %w", err)
	}
	return root, nil
}

// open opens the store of an existing root.
func (g *globals) open(cmd *cobra.Command, extra ...jot.Option) (*jot.Store, error) {
	root, err := g.root()
	if err != nil {
		return nil, err
	}
	opts := append(g.options(cmd), jot.WithMustExist(true))
	return jot.Open(cmd.Context(), root, append(opts, extra...)...)
}

// readMarkdown returns the body given by --markdown or read from --file
// ("-" for stdin).
func readMarkdown(cmd *cobra.Command, markdown, file string) (string, error) {
	if file == "" {
		return markdown, nil
	}
	var r io.Reader = cmd.InOrStdin()
	if file != "-" {
		f, err := os.Open(file)
		if err != nil {
			return "", err
		}
		defer f.Close()
		r = f
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read markdown: %w", err)
	}
	return string(data), nil
}
