// Package frecency computes a per-file git-history weight: a scalar that
// rewards files touched recently and frequently, falling back to a neutral
// 1.0 when no repository or no history is available for a path.
package frecency

import (
	"bufio"
	"context"
	"fmt"
	"math"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/kantord/cruxlines/pkg/types"
)

const (
	gitLogTimeout   = 25 * time.Second
	gitSHAMinLength = 40
	logWindowMonths = 6
	halfLifeDays    = 30.0
	neutral         = 1.0
)

// Map returns the frecency scalar for every file, keyed by its RelPath. When
// gitRoot (or any of its ancestors) is not inside a Git repository, every
// path maps to the neutral value 1.0. Paths touched by no commit in the log
// window also stay at 1.0; paths with history are boosted above it by
// recency-weighted commit frequency.
//
// git log reports paths relative to the repository's top-level directory,
// which need not be gitRoot itself (gitRoot may be a subdirectory the CLI
// was invoked against). Matching is therefore done on absolute path, not on
// RelPath directly: each commit path is resolved against the discovered
// top-level and looked up by absolute path to recover its RelPath.
func Map(gitRoot string, files []types.SourceFile) map[string]float64 {
	out := make(map[string]float64, len(files))
	byAbs := make(map[string]string, len(files))
	for _, f := range files {
		out[f.RelPath] = neutral
		abs, err := filepath.Abs(f.Path)
		if err != nil {
			abs = f.Path
		}
		byAbs[filepath.Clean(abs)] = f.RelPath
	}

	topLevel, err := gitTopLevel(gitRoot)
	if err != nil {
		return out
	}

	commits, err := runGitLog(topLevel, logWindowMonths)
	if err != nil || len(commits) == 0 {
		return out
	}

	now := commits[0].timestamp
	for _, c := range commits {
		if c.timestamp > now {
			now = c.timestamp
		}
	}

	for _, c := range commits {
		ageDays := float64(now-c.timestamp) / 86400.0
		weight := decay(ageDays)
		for _, f := range c.files {
			abs := filepath.Clean(filepath.Join(topLevel, filepath.FromSlash(f)))
			if relPath, known := byAbs[abs]; known {
				out[relPath] += weight
			}
		}
	}

	return out
}

// gitTopLevel resolves the repository root containing dir. Returns an error
// if dir is not inside a Git repository.
func gitTopLevel(dir string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), gitLogTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", "rev-parse", "--show-toplevel")
	cmd.Dir = dir
	raw, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git rev-parse --show-toplevel: %w", err)
	}
	return strings.TrimSpace(string(raw)), nil
}

func decay(ageDays float64) float64 {
	if ageDays < 0 {
		ageDays = 0
	}
	return math.Exp2(-ageDays / halfLifeDays)
}

type commit struct {
	timestamp int64
	files     []string
}

func runGitLog(rootDir string, months int) ([]commit, error) {
	since := fmt.Sprintf("--since=%d months ago", months)
	ctx, cancel := context.WithTimeout(context.Background(), gitLogTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", "log",
		"--pretty=format:%H|%at",
		"--name-only",
		since,
		"--no-merges",
	)
	cmd.Dir = rootDir

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("git log stdout pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("git log start: %w", err)
	}

	var commits []commit
	var current *commit
	scanner := bufio.NewScanner(stdout)

	for scanner.Scan() {
		line := scanner.Text()

		if line == "" {
			continue
		}

		if parts := strings.SplitN(line, "|", 2); len(parts) == 2 && len(parts[0]) >= gitSHAMinLength {
			if current != nil {
				commits = append(commits, *current)
			}
			ts, _ := strconv.ParseInt(parts[1], 10, 64)
			current = &commit{timestamp: ts}
			continue
		}

		if current != nil {
			current.files = append(current.files, filepath.ToSlash(line))
		}
	}

	if current != nil {
		commits = append(commits, *current)
	}

	if err := cmd.Wait(); err != nil {
		if ctx.Err() != nil {
			return commits, nil
		}
		if len(commits) > 0 {
			return commits, nil
		}
		return nil, fmt.Errorf("git log: %w", err)
	}

	return commits, nil
}
