// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract pulls the text content out of .docx files as Markdown.
// Backends: the markitdown CLI, the markitdown container image run through
// docker or podman, and a native OOXML reader used when neither is present.
package extract

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/pdiddy/doc-archiver/internal/command"
	"github.com/pdiddy/doc-archiver/internal/container"
	"github.com/pdiddy/doc-archiver/pkg/types"
)

// ErrNoContent is returned when a backend runs cleanly but yields no text.
var ErrNoContent = errors.New("no content extracted")

// Extractor converts a document at path into text.
type Extractor interface {
	Extract(path string) (string, error)
}

// New builds the extractor selected by cfg.Backend. BackendAuto prefers the
// markitdown CLI, then a container runtime holding cfg.Image, then the
// native reader.
func New(cfg types.ExtractConfig) (Extractor, error) {
	return newExtractor(cfg, command.OS{})
}

func newExtractor(cfg types.ExtractConfig, exec command.Executor) (Extractor, error) {
	defaults := types.DefaultArchiveConfig().Extract
	if cfg.Markitdown == "" {
		cfg.Markitdown = defaults.Markitdown
	}
	if cfg.Image == "" {
		cfg.Image = defaults.Image
	}

	switch cfg.Backend {
	case types.BackendMarkitdown:
		if !command.Available(exec, cfg.Markitdown) {
			return nil, fmt.Errorf("markitdown backend: %q not found on PATH", cfg.Markitdown)
		}
		return &MarkitdownCLI{bin: cfg.Markitdown, exec: exec}, nil

	case types.BackendContainer:
		rt, err := container.Detect(exec)
		if err != nil {
			return nil, fmt.Errorf("container backend: %w", err)
		}
		return NewMarkitdownContainer(rt, cfg.Image)

	case types.BackendNative:
		return Native{}, nil

	case types.BackendAuto, "":
		if command.Available(exec, cfg.Markitdown) {
			slog.Debug("extract backend selected", "backend", types.BackendMarkitdown)
			return &MarkitdownCLI{bin: cfg.Markitdown, exec: exec}, nil
		}
		if rt, err := container.Detect(exec); err == nil {
			if c, err := NewMarkitdownContainer(rt, cfg.Image); err == nil {
				slog.Debug("extract backend selected", "backend", types.BackendContainer, "runtime", rt.Name())
				return c, nil
			}
		}
		slog.Debug("extract backend selected", "backend", types.BackendNative)
		return Native{}, nil
	}

	return nil, fmt.Errorf("unknown extract backend %q: use auto, markitdown, container, or native", cfg.Backend)
}

// Backend reports which backend e is.
func Backend(e Extractor) types.ExtractBackend {
	switch e.(type) {
	case *MarkitdownCLI:
		return types.BackendMarkitdown
	case *MarkitdownContainer:
		return types.BackendContainer
	case Native:
		return types.BackendNative
	}
	return ""
}
