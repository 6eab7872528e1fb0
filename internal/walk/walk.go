// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package walk discovers Word documents under a source directory.
package walk

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pdiddy/doc-archiver/pkg/types"
)

// walkDir is filepath.WalkDir, replaceable in tests.
var walkDir = filepath.WalkDir

// IgnoredDirs lists directory names pruned during traversal.
var IgnoredDirs = map[string]bool{
	".git":               true,
	"__pycache__":        true,
	".ipynb_checkpoints": true,
	".gemini":            true,
	".agent":             true,
	"bin":                true,
	"obj":                true,
	"node_modules":       true,
}

// Documents walks root and calls fn for every .doc or .docx file, in
// filepath.WalkDir order. Subdirectories named in IgnoredDirs are pruned;
// the root itself never is. The file at outputPath is skipped so an archive
// written inside the tree does not feed back into itself.
//
// An error returned by fn stops the walk and is returned, as is a root
// that cannot be stat'ed. Directories that cannot be read, the root
// included, are skipped and reported to onErr when it is non-nil.
func Documents(root, outputPath string, onErr func(path string, err error), fn func(types.Document) error) error {
	absOutput := ""
	if outputPath != "" {
		abs, err := filepath.Abs(outputPath)
		if err != nil {
			return fmt.Errorf("resolving output path %s: %w", outputPath, err)
		}
		absOutput = abs
	}

	// WalkDir does not descend into a symlinked root; a trailing separator
	// makes it resolve the link like any other directory.
	walkRoot := root
	if info, err := os.Lstat(root); err == nil && info.Mode()&fs.ModeSymlink != 0 {
		walkRoot = root + string(filepath.Separator)
	}

	return walkDir(walkRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d == nil && path == walkRoot {
				return err
			}
			if onErr != nil {
				onErr(path, err)
			}
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if path != walkRoot && IgnoredDirs[d.Name()] {
				return fs.SkipDir
			}
			return nil
		}

		format, ok := types.FormatFromExt(filepath.Ext(d.Name()))
		if !ok {
			return nil
		}

		if absOutput != "" {
			if abs, err := filepath.Abs(path); err == nil && abs == absOutput {
				return nil
			}
		}

		rel, err := filepath.Rel(walkRoot, path)
		if err != nil {
			rel = path
		}

		return fn(types.Document{
			Path:    path,
			RelPath: rel,
			Name:    d.Name(),
			Format:  format,
		})
	})
}

// Collect returns every document Documents would visit.
func Collect(root, outputPath string) ([]types.Document, error) {
	var docs []types.Document
	err := Documents(root, outputPath, nil, func(d types.Document) error {
		docs = append(docs, d)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return docs, nil
}
