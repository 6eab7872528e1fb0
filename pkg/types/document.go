// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "strings"

// Format identifies a word-processor document format by extension.
type Format string

const (
	// FormatDoc is the legacy binary Word format; it must be converted first.
	FormatDoc Format = "doc"
	// FormatDocx is the OOXML Word format, extracted directly.
	FormatDocx Format = "docx"
)

// FormatFromExt maps a file extension (with leading dot, any case) to a
// Format. The second result is false for extensions that are not documents.
func FormatFromExt(ext string) (Format, bool) {
	switch strings.ToLower(ext) {
	case ".doc":
		return FormatDoc, true
	case ".docx":
		return FormatDocx, true
	}
	return "", false
}

// Legacy reports whether documents of this format need conversion.
func (f Format) Legacy() bool {
	return f == FormatDoc
}

// Status is the terminal state of one document in an archive run.
type Status string

const (
	StatusArchived Status = "archived"
	StatusSkipped  Status = "skipped"
	StatusFailed   Status = "failed"
)

// Document is an eligible file discovered under the source directory.
type Document struct {
	// Path is the file path as found during traversal (joined onto the root).
	Path string `json:"path" yaml:"path"`

	// RelPath is Path relative to the source directory.
	RelPath string `json:"rel_path" yaml:"rel_path"`

	// Name is the base name of the file.
	Name string `json:"name" yaml:"name"`

	// Format is derived from the extension.
	Format Format `json:"format" yaml:"format"`
}
