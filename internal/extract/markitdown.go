// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/doc-archiver/internal/command"
	"github.com/pdiddy/doc-archiver/internal/container"
)

// MarkitdownCLI runs the markitdown command-line tool on a file path and
// returns what it prints.
type MarkitdownCLI struct {
	bin  string
	exec command.Executor
}

// Extract runs markitdown on path.
func (m *MarkitdownCLI) Extract(path string) (string, error) {
	var out bytes.Buffer
	if err := m.exec.RunPiped(m.bin, []string{path}, nil, &out); err != nil {
		return "", fmt.Errorf("converting %s with markitdown: %w", path, err)
	}
	return markitdownText(path, out.String())
}

// MarkitdownContainer pipes files through the markitdown container image.
type MarkitdownContainer struct {
	runtime container.Runtime
	image   string
}

// NewMarkitdownContainer returns an extractor that runs image on rt. It
// checks that the image exists locally first.
func NewMarkitdownContainer(rt container.Runtime, image string) (*MarkitdownContainer, error) {
	if err := rt.ImageExists(image); err != nil {
		return nil, fmt.Errorf("markitdown image not available in %s: %w", rt.Name(), err)
	}
	return &MarkitdownContainer{runtime: rt, image: image}, nil
}

// Extract streams the file at path into the container. The extension is
// passed as a hint because markitdown cannot sniff stdin by name.
func (m *MarkitdownContainer) Extract(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var args []string
	if ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), "."); ext != "" {
		args = []string{"-x", ext}
	}

	var out bytes.Buffer
	if err := m.runtime.Run(m.image, args, f, &out); err != nil {
		return "", fmt.Errorf("converting %s with markitdown: %w", path, err)
	}
	return markitdownText(path, out.String())
}

// markitdownText strips the single newline markitdown's print adds, so an
// empty document yields ErrNoContent and archived bodies stay byte-exact.
func markitdownText(path, stdout string) (string, error) {
	text := strings.TrimSuffix(stdout, "\n")
	if text == "" {
		return "", fmt.Errorf("markitdown on %s: %w", path, ErrNoContent)
	}
	return text, nil
}
