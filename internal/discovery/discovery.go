// Package discovery enumerates the document corpus for a run.
//
// The corpus is the set of eligible source paths before any per-target
// selection: markdown-family files, partials (underscore-prefixed names) and
// hidden files excluded, global ignore patterns applied, sorted so that
// downstream ordering never depends on filesystem iteration order.
package discovery

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"git.home.luguber.info/inful/llmstxt/internal/logfields"
	"git.home.luguber.info/inful/llmstxt/internal/selection"
)

// Root is one resolved documentation root: the corpus path prefix plus the
// on-disk directory backing it.
type Root struct {
	Prefix string
	Dir    string
}

// ErrWalkFailed indicates filesystem traversal of a root failed.
var ErrWalkFailed = errors.New("documentation root walk failed")

var markdownExtensions = map[string]bool{
	".md":       true,
	".mdx":      true,
	".markdown": true,
}

// Discover walks the roots and returns the sorted corpus.
//
// A missing root directory is a corpus-level condition: it is logged and
// contributes nothing, other roots still contribute.
func Discover(roots []Root, ignorePatterns []string) ([]string, error) {
	corpus := make([]string, 0)

	for _, root := range roots {
		if _, err := os.Stat(root.Dir); os.IsNotExist(err) {
			slog.Warn("Documentation root not found, skipping", logfields.Root(root.Dir))
			continue
		}

		files, err := walkRoot(root)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrWalkFailed, root.Dir, err)
		}
		corpus = append(corpus, files...)
		slog.Debug("Root discovered", logfields.Root(root.Dir), logfields.Count(len(files)))
	}

	if len(ignorePatterns) > 0 {
		kept := corpus[:0]
		for _, p := range corpus {
			if selection.MatchAny(ignorePatterns, p) {
				slog.Debug("Ignoring file", logfields.File(p))
				continue
			}
			kept = append(kept, p)
		}
		corpus = kept
	}

	sort.Strings(corpus)
	return corpus, nil
}

func walkRoot(root Root) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root.Dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()

		if d.IsDir() {
			// Hidden directories (including .git in cloned roots) are
			// never descended into.
			if path != root.Dir && strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.HasPrefix(name, ".") {
			return nil
		}
		// Partials are only reachable through import resolution.
		if strings.HasPrefix(name, "_") {
			return nil
		}
		if !markdownExtensions[strings.ToLower(filepath.Ext(name))] {
			return nil
		}

		rel, err := filepath.Rel(root.Dir, path)
		if err != nil {
			return err
		}
		files = append(files, root.Prefix+"/"+filepath.ToSlash(rel))
		return nil
	})

	return files, err
}
