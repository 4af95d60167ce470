// Package workspace manages the ephemeral directory that git-sourced
// documentation roots are cloned into for the duration of a run.
package workspace

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/llmstxt/internal/logfields"
)

// Manager owns one timestamped scratch directory per run.
type Manager struct {
	baseDir string
	dir     string
}

// NewManager creates a manager rooted at baseDir, defaulting to the system
// temp directory.
func NewManager(baseDir string) *Manager {
	if baseDir == "" {
		baseDir = os.TempDir()
	}
	return &Manager{baseDir: baseDir}
}

// Create makes the run's scratch directory.
func (m *Manager) Create() error {
	timestamp := time.Now().Format("20060102-150405")
	dir := filepath.Join(m.baseDir, fmt.Sprintf("llmstxt-%s", timestamp))

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create workspace directory: %w", err)
	}

	m.dir = dir
	slog.Debug("Created workspace", logfields.Path(dir))
	return nil
}

// Path returns the scratch directory, or "" before Create.
func (m *Manager) Path() string {
	return m.dir
}

// Cleanup removes the scratch directory.
func (m *Manager) Cleanup() error {
	if m.dir == "" {
		return nil
	}
	if err := os.RemoveAll(m.dir); err != nil {
		return fmt.Errorf("failed to cleanup workspace: %w", err)
	}
	slog.Debug("Cleaned up workspace", logfields.Path(m.dir))
	m.dir = ""
	return nil
}
