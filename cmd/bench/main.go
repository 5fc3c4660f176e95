package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/aretw0/jot"
	"github.com/aretw0/jot/pkg/core"
)

func main() {
	count := flag.Int("count", 1000, "Number of notes to generate")
	tags := flag.Int("tags", 20, "Number of tags to spread over the notes")
	adapter := flag.String("adapter", "fs", "Storage adapter (fs, sqlite)")
	keep := flag.Bool("keep", false, "Keep the benchmark store after running")
	verbose := flag.Bool("v", false, "Log at debug level")
	flag.Parse()

	benchDir, err := os.MkdirTemp("", "jot_bench_")
	if err != nil {
		panic(err)
	}
	defer func() {
		if !*keep {
			os.RemoveAll(benchDir)
		} else {
			fmt.Printf("Keeping bench dir: %s\n", benchDir)
		}
	}()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	ctx := context.Background()

	store, err := jot.Open(ctx, benchDir,
		jot.WithAdapter(*adapter),
		jot.WithAutoInit(true),
		jot.WithLogger(logger),
	)
	if err != nil {
		panic(err)
	}

	// 1. Writes: every mutation rewrites the whole collection.
	fmt.Printf("Generating %d notes (%d tags) in %s...\n", *count, *tags, benchDir)
	startGen := time.Now()
	pool := make([]core.Tag, 0, *tags)
	for i := 0; i < *tags; i++ {
		tag, err := store.NewTag(ctx, fmt.Sprintf("tag-%d", i))
		if err != nil {
			panic(err)
		}
		pool = append(pool, tag)
	}
	for i := 0; i < *count; i++ {
		data := core.NoteData{
			Title:    fmt.Sprintf("Note %d", i),
			Markdown: fmt.Sprintf("# Benchmark Note %d\nThis is a test note.", i),
		}
		if len(pool) > 0 {
			data.Tags = []core.Tag{pool[i%len(pool)], pool[(i*7)%len(pool)]}
		}
		if _, err := store.CreateNote(ctx, data); err != nil {
			panic(err)
		}
	}
	genDuration := time.Since(startGen)
	store.Close()

	// 2. Cold load, as a new CLI invocation would do.
	startLoad := time.Now()
	store, err = jot.Open(ctx, benchDir, jot.WithAdapter(*adapter), jot.WithLogger(logger))
	if err != nil {
		panic(err)
	}
	defer store.Close()
	loadDuration := time.Since(startLoad)

	// 3. Resolution (cold, then memoized) and filtering.
	startResolve := time.Now()
	resolved := store.Notes()
	resolveDuration := time.Since(startResolve)

	startWarm := time.Now()
	store.Notes()
	warmDuration := time.Since(startWarm)

	var required []string
	if len(pool) > 0 {
		required = []string{pool[0].ID}
	}
	startFilter := time.Now()
	filtered := store.Filter("note 1", required)
	filterDuration := time.Since(startFilter)

	fmt.Printf("--------------------------------------------------\n")
	fmt.Printf("Benchmark Result (%d notes, adapter %s):\n", len(resolved), *adapter)
	fmt.Printf("  Create:        %v (%v/note)\n", genDuration, genDuration/time.Duration(max(*count, 1)))
	fmt.Printf("  Load:          %v\n", loadDuration)
	fmt.Printf("  Resolve cold:  %v\n", resolveDuration)
	fmt.Printf("  Resolve warm:  %v\n", warmDuration)
	fmt.Printf("  Filter:        %v (%d matches)\n", filterDuration, len(filtered))
	fmt.Printf("--------------------------------------------------\n")
}
