// Package pipeline drives a full generation run: resolve roots, discover
// the corpus, load documents, render every output target and write the
// artifacts.
package pipeline

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/llmstxt/internal/clean"
	"git.home.luguber.info/inful/llmstxt/internal/config"
	"git.home.luguber.info/inful/llmstxt/internal/discovery"
	"git.home.luguber.info/inful/llmstxt/internal/document"
	"git.home.luguber.info/inful/llmstxt/internal/gitsource"
	"git.home.luguber.info/inful/llmstxt/internal/logfields"
	"git.home.luguber.info/inful/llmstxt/internal/partials"
	"git.home.luguber.info/inful/llmstxt/internal/render"
	"git.home.luguber.info/inful/llmstxt/internal/selection"
	"git.home.luguber.info/inful/llmstxt/internal/state"
	"git.home.luguber.info/inful/llmstxt/internal/urlpath"
	"git.home.luguber.info/inful/llmstxt/internal/util/sets"
	"git.home.luguber.info/inful/llmstxt/internal/workspace"
)

// ErrArtifactWriteFailed indicates an artifact could not be written.
var ErrArtifactWriteFailed = errors.New("artifact write failed")

const loadWorkers = 8

// Driver executes generation runs for one configuration.
type Driver struct {
	cfg   *config.Config
	runID string
}

// NewDriver creates a driver for cfg.
func NewDriver(cfg *config.Config) *Driver {
	return &Driver{cfg: cfg}
}

// Run performs one complete generation pass. Every pass mints a fresh run
// id carried in all of its log lines, so repeated runs of one driver (watch
// mode) stay distinguishable.
func (d *Driver) Run(ctx context.Context) error {
	d.runID = uuid.NewString()
	start := time.Now()
	slog.Info("Starting generation run", logfields.RunID(d.runID))

	roots, cleanup, err := d.resolveRoots(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	corpus, err := discovery.Discover(roots, d.cfg.IgnoreFiles)
	if err != nil {
		return err
	}
	if len(corpus) == 0 {
		slog.Warn("Corpus is empty, no artifacts generated", logfields.RunID(d.runID))
		return nil
	}
	slog.Info("Corpus discovered", logfields.RunID(d.runID), logfields.Count(len(corpus)))

	var store *state.Store
	if d.cfg.StateFile != "" {
		store, err = state.Open(d.cfg.StateFile)
		if err != nil {
			return err
		}
		defer store.Close()
	}

	loader := d.newLoader(roots)
	docs := d.loadAll(ctx, loader, corpus)

	written := 0
	for _, target := range d.cfg.Targets() {
		n, err := d.emitTarget(ctx, store, corpus, docs, target)
		if err != nil {
			return err
		}
		written += n
	}

	if d.cfg.GenerateMarkdownFiles {
		n, err := d.emitStandalone(ctx, store, corpus, docs)
		if err != nil {
			return err
		}
		written += n
	}

	slog.Info("Generation run complete",
		logfields.RunID(d.runID),
		logfields.Count(written),
		logfields.DurationMS(float64(time.Since(start).Milliseconds())))
	return nil
}

// DiscoverCorpus resolves the configured roots and returns the sorted
// corpus without generating anything.
func (d *Driver) DiscoverCorpus(ctx context.Context) ([]string, error) {
	d.runID = uuid.NewString()
	roots, cleanup, err := d.resolveRoots(ctx)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	return discovery.Discover(roots, d.cfg.IgnoreFiles)
}

// resolveRoots maps configured roots to on-disk directories, cloning
// git-backed roots into an ephemeral workspace. The returned cleanup always
// runs safely, even when no workspace was created.
func (d *Driver) resolveRoots(ctx context.Context) ([]discovery.Root, func(), error) {
	configured := []config.Root{d.cfg.DocsRoot}
	if d.cfg.BlogRoot != nil {
		configured = append(configured, *d.cfg.BlogRoot)
	}

	var ws *workspace.Manager
	cleanup := func() {
		if ws != nil {
			if err := ws.Cleanup(); err != nil {
				slog.Warn("Workspace cleanup failed", logfields.Error(err))
			}
		}
	}

	roots := make([]discovery.Root, 0, len(configured))
	for _, root := range configured {
		prefix := rootPrefix(root.Dir)

		if root.Git == nil {
			roots = append(roots, discovery.Root{
				Prefix: prefix,
				Dir:    filepath.Join(d.cfg.BaseDir, filepath.FromSlash(root.Dir)),
			})
			continue
		}

		if ws == nil {
			ws = workspace.NewManager("")
			if err := ws.Create(); err != nil {
				cleanup()
				return nil, nil, err
			}
		}
		dir, err := gitsource.Fetch(ctx, ws.Path(), *root.Git)
		if err != nil {
			// Same policy as a missing local root dir: the root
			// contributes nothing, the run continues.
			slog.Warn("Git root unavailable, skipping",
				logfields.RunID(d.runID), logfields.URL(root.Git.URL), logfields.Error(err))
			continue
		}
		roots = append(roots, discovery.Root{Prefix: prefix, Dir: dir})
	}

	return roots, cleanup, nil
}

// rootPrefix reduces a root dir to its corpus path prefix. Multi-segment
// dirs contribute only their last segment so corpus paths stay flat
// ("content/docs" and "docs" both yield "docs/...").
func rootPrefix(dir string) string {
	prefix := path.Base(path.Clean(filepath.ToSlash(dir)))
	if prefix == "." || prefix == "/" || prefix == "" {
		prefix = "docs"
	}
	return prefix
}

func (d *Driver) newLoader(roots []discovery.Root) *document.Loader {
	dirs := make(map[string]string, len(roots))
	for _, root := range roots {
		dirs[root.Prefix] = root.Dir
	}

	trans := d.cfg.Transformation()
	return &document.Loader{
		Dirs:       dirs,
		SiteURL:    d.cfg.SiteURL,
		PathPrefix: d.cfg.PathPrefix,
		PathRules: urlpath.Rules{
			IgnorePaths: trans.IgnorePaths,
			AddPaths:    trans.AddPaths,
		},
		CleanOptions: clean.Options{
			RemoveImports:           d.cfg.RemoveImports,
			RemoveDuplicateHeadings: d.cfg.RemoveDuplicateHeadings,
		},
		ResolvedURLs: d.cfg.ResolvedURLs,
		Partials:     &partials.Resolver{},
	}
}

// loadAll loads every corpus file once, concurrently, preserving corpus
// indexing. Unloadable files are logged and yield nil entries; drafts yield
// nil entries silently.
func (d *Driver) loadAll(ctx context.Context, loader *document.Loader, corpus []string) map[string]*document.Document {
	results := make([]*document.Document, len(corpus))

	jobs := make(chan int)
	var wg sync.WaitGroup
	workers := loadWorkers
	if len(corpus) < workers {
		workers = len(corpus)
	}

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				doc, err := loader.Load(corpus[idx])
				if err != nil {
					slog.Warn("Skipping document",
						logfields.RunID(d.runID), logfields.File(corpus[idx]), logfields.Error(err))
					continue
				}
				results[idx] = doc
			}
		}()
	}

	for idx := range corpus {
		if ctx.Err() != nil {
			break
		}
		jobs <- idx
	}
	close(jobs)
	wg.Wait()

	docs := make(map[string]*document.Document, len(corpus))
	for idx, doc := range results {
		if doc != nil {
			docs[corpus[idx]] = doc
		}
	}
	return docs
}

func (d *Driver) emitTarget(ctx context.Context, store *state.Store, corpus []string, docs map[string]*document.Document, target config.OutputTarget) (int, error) {
	selected := selection.Select(corpus, selection.Rules{
		Include:              target.IncludePatterns,
		Ignore:               target.IgnorePatterns,
		Order:                target.OrderPatterns,
		IncludeUnmatchedLast: target.IncludeUnmatchedLast,
	})

	ordered := make([]*document.Document, 0, len(selected))
	for _, p := range selected {
		if doc, ok := docs[p]; ok {
			ordered = append(ordered, doc)
		}
	}

	if len(ordered) == 0 {
		slog.Warn("Output target selected no documents, skipping",
			logfields.RunID(d.runID), logfields.Target(target.Name))
		return 0, nil
	}

	text := render.Render(ordered, target)
	outPath := filepath.Join(d.cfg.OutputDir, target.FileName)
	wrote, err := d.writeArtifact(ctx, store, outPath, text)
	if err != nil {
		return 0, err
	}

	slog.Info("Target rendered",
		logfields.RunID(d.runID), logfields.Target(target.Name),
		logfields.Artifact(outPath), logfields.Count(len(ordered)))
	if wrote {
		return 1, nil
	}
	return 0, nil
}

func (d *Driver) emitStandalone(ctx context.Context, store *state.Store, corpus []string, docs map[string]*document.Document) (int, error) {
	outDir := filepath.Join(d.cfg.OutputDir, d.cfg.MarkdownDir)
	used := sets.New[string]()
	written := 0

	for _, p := range corpus {
		doc, ok := docs[p]
		if !ok {
			continue
		}
		name := render.StandaloneFileName(doc, used)
		text := render.RenderStandalone(doc, d.cfg.KeepFrontMatterKeys)
		wrote, err := d.writeArtifact(ctx, store, filepath.Join(outDir, name), text)
		if err != nil {
			return written, err
		}
		if wrote {
			written++
		}
	}

	slog.Info("Standalone files rendered",
		logfields.RunID(d.runID), logfields.Path(outDir), logfields.Count(written))
	return written, nil
}

// writeArtifact writes content to outPath, skipping the write when the state
// store says the content is unchanged and the file still exists. Reports
// whether a write happened.
func (d *Driver) writeArtifact(ctx context.Context, store *state.Store, outPath, content string) (bool, error) {
	sum := sha256.Sum256([]byte(content))
	hash := hex.EncodeToString(sum[:])

	if store != nil {
		prev, err := store.ArtifactHash(ctx, outPath)
		if err != nil {
			return false, err
		}
		if prev == hash && fileExists(outPath) {
			slog.Debug("Artifact unchanged, skipping write",
				logfields.RunID(d.runID), logfields.Artifact(outPath))
			return false, nil
		}
	}

	if dir := filepath.Dir(outPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return false, fmt.Errorf("%w: %s: %w", ErrArtifactWriteFailed, outPath, err)
		}
	}
	if err := os.WriteFile(outPath, []byte(content), 0o644); err != nil {
		return false, fmt.Errorf("%w: %s: %w", ErrArtifactWriteFailed, outPath, err)
	}

	if store != nil {
		if err := store.RecordArtifact(ctx, outPath, hash); err != nil {
			return true, err
		}
	}
	return true, nil
}

func fileExists(p string) bool {
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}

// LocalRootDirs returns the on-disk directories of filesystem-backed roots,
// for callers that need to watch them. Git-backed roots have no stable local
// directory and are excluded.
func (d *Driver) LocalRootDirs() []string {
	dirs := make([]string, 0, 2)
	if d.cfg.DocsRoot.Git == nil {
		dirs = append(dirs, filepath.Join(d.cfg.BaseDir, filepath.FromSlash(d.cfg.DocsRoot.Dir)))
	}
	if d.cfg.BlogRoot != nil && d.cfg.BlogRoot.Git == nil {
		dirs = append(dirs, filepath.Join(d.cfg.BaseDir, filepath.FromSlash(d.cfg.BlogRoot.Dir)))
	}
	return dirs
}
