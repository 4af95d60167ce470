// Package gitsource materializes git-backed documentation roots into the
// run workspace.
package gitsource

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"git.home.luguber.info/inful/llmstxt/internal/config"
	"git.home.luguber.info/inful/llmstxt/internal/logfields"
)

// ErrCloneFailed indicates the repository could not be cloned.
var ErrCloneFailed = errors.New("git clone failed")

// ErrPathNotFound indicates the configured subdirectory does not exist in
// the cloned repository.
var ErrPathNotFound = errors.New("path not found in repository")

// Fetch shallow-clones src into workspaceDir and returns the on-disk
// directory of the configured documentation path within the clone.
func Fetch(ctx context.Context, workspaceDir string, src config.GitSource) (string, error) {
	repoPath := filepath.Join(workspaceDir, repoDirName(src.URL))

	cloneOptions := &git.CloneOptions{
		URL:   src.URL,
		Depth: 1,
	}
	if src.Ref != "" {
		cloneOptions.ReferenceName = plumbing.ReferenceName("refs/heads/" + src.Ref)
		cloneOptions.SingleBranch = true
	}

	slog.Info("Cloning documentation source", logfields.URL(src.URL), logfields.Path(repoPath))
	if _, err := git.PlainCloneContext(ctx, repoPath, false, cloneOptions); err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrCloneFailed, src.URL, err)
	}

	dir := repoPath
	if src.Path != "" {
		dir = filepath.Join(repoPath, filepath.FromSlash(src.Path))
	}
	if _, err := os.Stat(dir); err != nil {
		return "", fmt.Errorf("%w: %s in %s", ErrPathNotFound, src.Path, src.URL)
	}
	return dir, nil
}

// repoDirName derives a stable directory name from the clone URL.
func repoDirName(url string) string {
	name := strings.TrimSuffix(filepath.Base(url), ".git")
	if name == "" || name == "." || name == "/" {
		name = "repo"
	}
	return name
}
