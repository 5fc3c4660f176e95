package main

import (
	"encoding/json"
	"fmt"

	"github.com/aretw0/introspection"
	"github.com/spf13/cobra"

	"github.com/aretw0/jot"
	"github.com/aretw0/jot/pkg/adapters/fs"
	"github.com/aretw0/jot/pkg/notes"
)

func statusCmd(g *globals) *cobra.Command {
	var diagram bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Print the state of the store as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := g.open(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			var component introspection.Introspectable = store.Service
			if diagram {
				config := introspection.DefaultDiagramConfig()
				config.SecondaryID = "store"
				config.SecondaryLabel = "Store Topology"
				fmt.Fprintln(cmd.OutOrStdout(), introspection.TreeDiagram(buildStoreTree(store), config))
				return nil
			}

			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			return encoder.Encode(map[string]any{
				"root":     store.Root,
				"settings": store.Settings,
				"state":    component.State(),
			})
		},
	}
	cmd.Flags().BoolVar(&diagram, "diagram", false, "Print a Mermaid diagram instead of JSON")
	return cmd
}

type storeNode struct {
	Name     string
	Status   string
	Metadata map[string]string
	Children []storeNode
}

// buildStoreTree lays the store out for introspection.TreeDiagram.
// Status values must match classes in introspection.DefaultStyles().
func buildStoreTree(store *jot.Store) storeNode {
	state, _ := store.State().(notes.ServiceState)

	storage := storeNode{
		Name:     "Storage",
		Status:   "running",
		Metadata: map[string]string{"type": state.StorageType, "adapter": store.Settings.Adapter},
	}
	if fsState, ok := state.Storage.(fs.StorageState); ok {
		watcher := "suspended"
		if fsState.ActiveWatchers > 0 {
			watcher = "running"
		}
		storage.Metadata["path"] = fsState.Path
		storage.Children = []storeNode{
			{Name: "Watcher", Status: watcher, Metadata: map[string]string{"type": "goroutine"}},
			{Name: "Cache", Status: "running", Metadata: map[string]string{
				"type":    "container",
				"entries": fmt.Sprintf("%d", fsState.CacheSize),
			}},
		}
	}

	return storeNode{
		Name:   "Store",
		Status: "running",
		Metadata: map[string]string{
			"type":  "container",
			"path":  store.Root,
			"notes": fmt.Sprintf("%d", state.Notes),
			"tags":  fmt.Sprintf("%d", state.Tags),
			"theme": state.Theme,
		},
		Children: []storeNode{storage},
	}
}
