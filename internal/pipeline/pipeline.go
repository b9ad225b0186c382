// Package pipeline wires discovery, parsing, extraction, indexing, ranking,
// scoring, and emission into the single end-to-end run the CLI invokes.
package pipeline

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/kantord/cruxlines/internal/discovery"
	"github.com/kantord/cruxlines/internal/emit"
	"github.com/kantord/cruxlines/internal/extract"
	"github.com/kantord/cruxlines/internal/frecency"
	"github.com/kantord/cruxlines/internal/graph"
	"github.com/kantord/cruxlines/internal/index"
	"github.com/kantord/cruxlines/internal/parser"
	"github.com/kantord/cruxlines/internal/scoring"
	"github.com/kantord/cruxlines/pkg/types"
)

// fileResult holds the defs/refs extracted from one source file, or a skip
// reason when the file could not be parsed or read.
type fileResult struct {
	file types.SourceFile
	defs []types.Definition
	refs []types.Reference
	skip string
}

// Run executes stages 1-8 over paths and writes the final TSV to stdout.
// SKIP diagnostics for unreadable or unparseable files go to stderr. Returns
// a *types.ExitError on unrecoverable path errors; per-file failures never
// abort the run.
func Run(paths []string, withRefs bool, stdout, stderr io.Writer) error {
	files, err := discovery.Discover(paths)
	if err != nil {
		return &types.ExitError{Code: 1, Message: err.Error()}
	}

	results := parseAndExtract(files, stderr)

	var allDefs []types.Definition
	var allRefs []types.Reference
	allFiles := make([]string, 0, len(files))
	sourceFiles := make([]types.SourceFile, 0, len(files))
	for _, r := range results {
		allFiles = append(allFiles, r.file.RelPath)
		sourceFiles = append(sourceFiles, r.file)
		allDefs = append(allDefs, r.defs...)
		allRefs = append(allRefs, r.refs...)
	}

	idx := index.New(allDefs)
	resolved := index.Resolve(idx, allRefs)

	g := graph.New(allFiles, resolved)
	rawRank := graph.Rank(g)

	gitRoot := gitRootOf(paths)
	frec := frecency.Map(gitRoot, sourceFiles)

	blended := make(map[string]float64, len(rawRank))
	for f, r := range rawRank {
		blended[f] = r * frec[f]
	}
	fileRank := graph.MaxNormalize(blended)

	scored := scoring.Score(allDefs, resolved, idx, fileRank)
	emit.Sort(scored)

	return emit.Write(stdout, scored, withRefs)
}

// parseAndExtract runs stages 2-3 (parse + extract) in parallel. Work is
// split across a bounded set of workers, each holding a single Pool that it
// reuses across every file it is handed -- parser grammar state is not
// reentrant, so a Pool is never shared across goroutines, but building one
// per worker (rather than per file) is what the concurrency model asks for.
func parseAndExtract(files []types.SourceFile, stderr io.Writer) []fileResult {
	results := make([]fileResult, len(files))

	workers := runtime.NumCPU()
	if workers > len(files) {
		workers = len(files)
	}
	if workers < 1 {
		workers = 1
	}

	indices := make(chan int)
	var mu sync.Mutex
	var g errgroup.Group
	g.SetLimit(workers)

	for w := 0; w < workers; w++ {
		g.Go(func() error {
			pool, err := parser.NewPool()
			if err != nil {
				for i := range indices {
					f := files[i]
					mu.Lock()
					fmt.Fprintf(stderr, "SKIP %s: %v\n", f.RelPath, err)
					mu.Unlock()
					results[i] = fileResult{file: f, skip: err.Error()}
				}
				return nil
			}
			defer pool.Close()

			for i := range indices {
				results[i] = parseOne(pool, files[i], stderr, &mu)
			}
			return nil
		})
	}

	for i := range files {
		indices <- i
	}
	close(indices)

	_ = g.Wait()
	return results
}

// parseOne reads, parses, and extracts a single file using the caller's
// Pool, writing a SKIP diagnostic to stderr on any failure.
func parseOne(pool *parser.Pool, f types.SourceFile, stderr io.Writer, mu *sync.Mutex) fileResult {
	skip := func(err error) fileResult {
		mu.Lock()
		fmt.Fprintf(stderr, "SKIP %s: %v\n", f.RelPath, err)
		mu.Unlock()
		return fileResult{file: f, skip: err.Error()}
	}

	content, err := os.ReadFile(f.Path)
	if err != nil {
		return skip(err)
	}

	tree, err := pool.ParseFile(f.Lang, filepath.Ext(f.Path), content)
	if err != nil {
		return skip(err)
	}
	defer tree.Close()

	defs, refs, err := extract.Extract(f.Lang, tree, content, f.RelPath)
	if err != nil {
		return skip(err)
	}

	return fileResult{file: f, defs: defs, refs: refs}
}

// gitRootOf picks the first existing path argument as the root to search
// for .git from; frecency.Map itself degrades to neutral weights when no
// repository is found there.
func gitRootOf(paths []string) string {
	if len(paths) == 0 {
		return "."
	}
	info, err := os.Stat(paths[0])
	if err == nil && !info.IsDir() {
		return filepath.Dir(paths[0])
	}
	return paths[0]
}
