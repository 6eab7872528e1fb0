// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline builds a Markdown archive from a tree of Word documents.
// Files are processed one at a time: legacy .doc files are converted to
// .docx in a private workspace, text is extracted, and a block is appended
// to the archive. A failure on one file is reported and the run moves on.
package pipeline

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pdiddy/doc-archiver/internal/archive"
	"github.com/pdiddy/doc-archiver/internal/convert"
	"github.com/pdiddy/doc-archiver/internal/extract"
	"github.com/pdiddy/doc-archiver/internal/walk"
	"github.com/pdiddy/doc-archiver/internal/workspace"
	"github.com/pdiddy/doc-archiver/pkg/types"
)

const banner = "========================================"

// ErrSourceNotDir is returned when the source path is not an existing directory.
var ErrSourceNotDir = errors.New("source directory does not exist")

// LegacyConverter converts a .doc file to .docx. The returned Result names
// the workspace to remove even when err is non-nil.
type LegacyConverter interface {
	Convert(docPath string) (convert.Result, error)
}

// Result counts the outcome of every document in a run.
type Result struct {
	Archived int
	Skipped  int
	Failed   int
}

// Total returns the number of documents processed.
func (r Result) Total() int {
	return r.Archived + r.Skipped + r.Failed
}

// HasFailures reports whether any document failed with an error.
func (r Result) HasFailures() bool {
	return r.Failed > 0
}

func (r *Result) add(s types.Status) {
	switch s {
	case types.StatusArchived:
		r.Archived++
	case types.StatusSkipped:
		r.Skipped++
	case types.StatusFailed:
		r.Failed++
	}
}

// Pipeline wires the converter and extractor to the status streams.
type Pipeline struct {
	conv   LegacyConverter
	ext    extract.Extractor
	stdout io.Writer
	stderr io.Writer
}

// New returns a Pipeline writing progress to stdout and warnings and
// errors to stderr.
func New(conv LegacyConverter, ext extract.Extractor, stdout, stderr io.Writer) *Pipeline {
	return &Pipeline{conv: conv, ext: ext, stdout: stdout, stderr: stderr}
}

// CheckSource returns ErrSourceNotDir unless dir is an existing directory.
func CheckSource(dir string) error {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrSourceNotDir, dir)
	}
	return nil
}

// Run archives every document under sourceDir into outputPath. The
// returned error is non-nil only when the run could not happen at all:
// the source is missing, the archive cannot be created, or the archive
// cannot be flushed.
func (p *Pipeline) Run(sourceDir, outputPath string) (Result, error) {
	var result Result

	if err := CheckSource(sourceDir); err != nil {
		return result, err
	}

	absSource, err := filepath.Abs(sourceDir)
	if err != nil {
		return result, fmt.Errorf("resolving %s: %w", sourceDir, err)
	}
	absOutput, err := filepath.Abs(outputPath)
	if err != nil {
		return result, fmt.Errorf("resolving %s: %w", outputPath, err)
	}

	fmt.Fprintln(p.stdout, "Starting Word to Markdown conversion...")
	fmt.Fprintf(p.stdout, "Source: %s\n", absSource)
	fmt.Fprintf(p.stdout, "Output: %s\n", absOutput)

	w, err := archive.Create(outputPath)
	if err != nil {
		return result, err
	}

	onWalkErr := func(path string, err error) {
		fmt.Fprintf(p.stderr, "    [Warning] Cannot read %s: %v\n", path, err)
	}
	walkErr := walk.Documents(sourceDir, outputPath, onWalkErr, func(doc types.Document) error {
		result.add(p.processFile(doc, w))
		return nil
	})

	closeErr := w.Close()
	if walkErr != nil {
		return result, fmt.Errorf("walking %s: %w", sourceDir, walkErr)
	}
	if closeErr != nil {
		return result, closeErr
	}

	fmt.Fprintf(p.stdout, "\n%s\n", banner)
	fmt.Fprintf(p.stdout, "Processing complete! Converted %d files.\n", w.Count())
	fmt.Fprintf(p.stdout, "Output file: %s\n", absOutput)

	slog.Debug("archive run finished",
		"archived", result.Archived, "skipped", result.Skipped, "failed", result.Failed)
	return result, nil
}

// processFile takes one document through conversion, extraction, and
// writing. Any workspace created for it is removed before returning,
// whatever the outcome.
func (p *Pipeline) processFile(doc types.Document, w *archive.Writer) (status types.Status) {
	fmt.Fprintf(p.stdout, "Processing: %s ...\n", doc.Name)

	var workspaceDir string
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(p.stderr, "    [Error] Unexpected error %s: %v\n", doc.Name, r)
			status = types.StatusFailed
		}
		if err := workspace.Remove(workspaceDir); err != nil {
			fmt.Fprintf(p.stderr, "    [Warning] %v\n", err)
		}
	}()

	target := doc.Path
	if doc.Format.Legacy() {
		res, err := p.conv.Convert(doc.Path)
		workspaceDir = res.Workspace
		if err != nil {
			status = types.StatusFailed
			if errors.Is(err, convert.ErrToolNotFound) {
				fmt.Fprintf(p.stderr, "    [Warning] LibreOffice not found. Skipping .doc conversion of %s.\n", doc.Name)
				status = types.StatusSkipped
			} else {
				fmt.Fprintf(p.stderr, "    [Error] Failed to convert .doc: %s -> %v\n", doc.Path, err)
			}
			fmt.Fprintln(p.stdout, "    [Skip] Could not convert .doc file.")
			return status
		}
		target = res.Path
	}

	content, err := p.ext.Extract(target)
	switch {
	case errors.Is(err, extract.ErrNoContent), err == nil && content == "":
		fmt.Fprintf(p.stderr, "    [Warning] No content extracted from %s.\n", doc.Name)
		return types.StatusSkipped
	case err != nil:
		fmt.Fprintf(p.stderr, "    [Error] Extraction failed for %s: %v\n", doc.Name, err)
		return types.StatusFailed
	}

	if err := w.Append(doc.Name, doc.RelPath, content); err != nil {
		fmt.Fprintf(p.stderr, "    [Error] Unexpected error %s: %v\n", doc.Name, err)
		return types.StatusFailed
	}

	fmt.Fprintln(p.stdout, "    [OK] Added to archive.")
	return types.StatusArchived
}
