// Package discovery turns CLI path arguments into the ordered set of source
// files the rest of the pipeline analyzes.
package discovery

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"

	"github.com/kantord/cruxlines/pkg/types"
)

// skipDirs lists directory names that are never descended into, regardless
// of .gitignore contents.
var skipDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"__pycache__":  true,
	"target":       true,
	".venv":        true,
	"venv":         true,
}

// Discover resolves a list of CLI path arguments into a deduplicated list
// of SourceFile, in argument order (each directory's files in the lexical
// order of the walk); the list is not sorted. Directories are walked recursively and
// filtered through .gitignore; explicit file arguments always bypass
// ignore filtering and are processed even if they would otherwise be
// ignored (ripgrep semantics). Files with an extension outside
// types.LangForExt are silently dropped in either case.
func Discover(paths []string) ([]types.SourceFile, error) {
	seen := make(map[string]bool)
	var out []types.SourceFile

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p, err)
		}

		if info.IsDir() {
			files, err := discoverDir(p)
			if err != nil {
				return nil, err
			}
			for _, f := range files {
				if !seen[f.Path] {
					seen[f.Path] = true
					out = append(out, f)
				}
			}
			continue
		}

		abs, err := filepath.Abs(p)
		if err != nil {
			abs = p
		}
		lang, ok := types.LangForExt[strings.ToLower(filepath.Ext(p))]
		if !ok {
			continue
		}
		if !seen[abs] {
			seen[abs] = true
			out = append(out, types.SourceFile{Path: abs, RelPath: p, Lang: lang})
		}
	}

	return out, nil
}

// discoverDir walks a single directory root, respecting its top-level
// .gitignore.
func discoverDir(root string) ([]types.SourceFile, error) {
	var gitIgnore *ignore.GitIgnore
	gitignorePath := filepath.Join(root, ".gitignore")
	if _, err := os.Stat(gitignorePath); err == nil {
		gitIgnore, err = ignore.CompileIgnoreFile(gitignorePath)
		if err != nil {
			return nil, fmt.Errorf("parse .gitignore: %w", err)
		}
	}

	var out []types.SourceFile

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			fmt.Fprintf(os.Stderr, "SKIP %s: %v\n", path, err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if d.Type()&fs.ModeSymlink != 0 {
			return nil
		}

		name := d.Name()

		if d.IsDir() {
			if path != root && strings.HasPrefix(name, ".") {
				return fs.SkipDir
			}
			if skipDirs[name] {
				return fs.SkipDir
			}
			return nil
		}

		lang, ok := types.LangForExt[strings.ToLower(filepath.Ext(name))]
		if !ok {
			return nil
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			relPath = path
		}

		if gitIgnore != nil && gitIgnore.MatchesPath(relPath) {
			return nil
		}

		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		out = append(out, types.SourceFile{Path: abs, RelPath: path, Lang: lang})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	return out, nil
}
