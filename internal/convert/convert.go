// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns legacy .doc files into .docx with a headless
// LibreOffice (soffice) run. Each conversion writes into its own workspace;
// the caller removes it once the converted file has been consumed.
package convert

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/doc-archiver/internal/command"
	"github.com/pdiddy/doc-archiver/internal/workspace"
)

// DefaultSoffice is the LibreOffice binary looked up on PATH.
const DefaultSoffice = "soffice"

var (
	// ErrToolNotFound is returned when soffice is not on PATH.
	ErrToolNotFound = errors.New("soffice not found on PATH")

	// ErrNoOutput is returned when soffice exits cleanly but the expected
	// .docx is missing from the workspace.
	ErrNoOutput = errors.New("converted file not produced")
)

// Result describes one conversion attempt. Workspace is set whenever a
// workspace was created, including on failure, so the caller can clean it up.
type Result struct {
	// Path is the converted .docx. Empty on failure.
	Path string
	// Workspace is the scratch directory holding Path.
	Workspace string
}

// Converter runs soffice to convert .doc files.
type Converter struct {
	bin        string
	workspaces *workspace.Manager
	exec       command.Executor
}

// New returns a Converter that runs bin (DefaultSoffice when empty) and
// creates workspaces with ws.
func New(bin string, ws *workspace.Manager) *Converter {
	return newConverter(bin, ws, command.OS{})
}

func newConverter(bin string, ws *workspace.Manager, exec command.Executor) *Converter {
	if bin == "" {
		bin = DefaultSoffice
	}
	return &Converter{bin: bin, workspaces: ws, exec: exec}
}

// Binary returns the soffice executable name.
func (c *Converter) Binary() string { return c.bin }

// Available reports whether the soffice executable is on PATH.
func (c *Converter) Available() bool {
	return command.Available(c.exec, c.bin)
}

// Convert converts docPath into a fresh workspace. On failure the returned
// Result still carries the workspace, if one was created.
func (c *Converter) Convert(docPath string) (res Result, err error) {
	dir, err := c.workspaces.Create()
	if err != nil {
		return Result{}, err
	}
	res.Workspace = dir

	defer func() {
		if r := recover(); r != nil {
			res.Path = ""
			err = fmt.Errorf("converting %s: %v", docPath, r)
		}
	}()

	if !c.Available() {
		return res, fmt.Errorf("%w (looked for %q)", ErrToolNotFound, c.bin)
	}

	args := []string{"--headless", "--convert-to", "docx", "--outdir", dir, docPath}
	if err := c.exec.RunSilent(c.bin, args...); err != nil {
		return res, fmt.Errorf("running %s on %s: %w", c.bin, docPath, err)
	}

	out := filepath.Join(dir, OutputName(docPath))
	if _, err := os.Stat(out); err != nil {
		return res, fmt.Errorf("%w: %s", ErrNoOutput, out)
	}

	res.Path = out
	return res, nil
}

// OutputName returns the file name soffice writes for docPath: the same base
// name with a .docx extension.
func OutputName(docPath string) string {
	base := filepath.Base(docPath)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".docx"
}
