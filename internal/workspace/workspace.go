// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package workspace creates and removes the scratch directories that hold
// converted documents. Each workspace belongs to exactly one source file and
// is removed as soon as that file has been processed.
package workspace

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

const prefix = "doc-archiver-"

// Manager creates workspaces under a base directory.
type Manager struct {
	baseDir string
}

// NewManager returns a Manager rooted at baseDir, or os.TempDir() when
// baseDir is empty.
func NewManager(baseDir string) *Manager {
	if baseDir == "" {
		baseDir = os.TempDir()
	}
	return &Manager{baseDir: baseDir}
}

// Create makes a new, uniquely named workspace directory and returns its path.
func (m *Manager) Create() (string, error) {
	if err := os.MkdirAll(m.baseDir, 0o755); err != nil {
		return "", fmt.Errorf("creating workspace base %s: %w", m.baseDir, err)
	}
	dir := filepath.Join(m.baseDir, prefix+uuid.NewString())
	if err := os.Mkdir(dir, 0o700); err != nil {
		return "", fmt.Errorf("creating workspace: %w", err)
	}
	slog.Debug("created workspace", "path", dir)
	return dir, nil
}

// Remove deletes a workspace recursively. An empty path or a directory that
// is already gone is not an error.
func Remove(dir string) error {
	if dir == "" {
		return nil
	}
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("removing workspace %s: %w", dir, err)
	}
	slog.Debug("removed workspace", "path", dir)
	return nil
}
