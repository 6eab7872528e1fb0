// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package archive writes the aggregated Markdown document: a fixed title
// preamble followed by one block per source file.
package archive

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// Preamble opens every archive.
const Preamble = "# 文档归档\n\n自动生成的 Markdown 文档集合\n\n"

// Writer appends source blocks to an archive. It is not safe for concurrent use.
type Writer struct {
	f     *os.File
	w     *bufio.Writer
	count int
}

// Create truncates or creates the file at path and writes the preamble.
func Create(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating archive %s: %w", path, err)
	}
	w := &Writer{f: f, w: bufio.NewWriter(f)}
	if _, err := w.w.WriteString(Preamble); err != nil {
		f.Close()
		return nil, fmt.Errorf("writing preamble to %s: %w", path, err)
	}
	return w, nil
}

// Header returns the block header for a source file.
func Header(name, relPath string) string {
	return fmt.Sprintf("\n\n---\n\n## 来源文件：%s\n### 路径：%s\n\n", name, relPath)
}

// Append writes one block: the header for name and relPath followed by
// content exactly as given. The count increases only if both writes succeed.
func (w *Writer) Append(name, relPath, content string) error {
	if _, err := io.WriteString(w.w, Header(name, relPath)); err != nil {
		return fmt.Errorf("writing header for %s: %w", relPath, err)
	}
	if _, err := io.WriteString(w.w, content); err != nil {
		return fmt.Errorf("writing content for %s: %w", relPath, err)
	}
	w.count++
	return nil
}

// Count returns the number of blocks appended.
func (w *Writer) Count() int { return w.count }

// Close flushes buffered output and closes the file.
func (w *Writer) Close() error {
	flushErr := w.w.Flush()
	closeErr := w.f.Close()
	if flushErr != nil {
		return fmt.Errorf("flushing archive: %w", flushErr)
	}
	return closeErr
}
