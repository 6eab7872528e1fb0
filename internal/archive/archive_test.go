// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package archive

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreate_WritesPreamble(t *testing.T) {
	p := filepath.Join(t.TempDir(), "out.md")
	w, err := Create(p)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	data, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, Preamble, string(data))
	assert.Equal(t, 0, w.Count())
}

func TestCreate_TruncatesExisting(t *testing.T) {
	p := filepath.Join(t.TempDir(), "out.md")
	require.NoError(t, os.WriteFile(p, []byte("stale content that is longer than nothing"), 0o644))

	w, err := Create(p)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	data, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, Preamble, string(data))
}

func TestCreate_MissingParent(t *testing.T) {
	_, err := Create(filepath.Join(t.TempDir(), "no", "such", "dir", "out.md"))
	assert.Error(t, err)
}

func TestAppend(t *testing.T) {
	p := filepath.Join(t.TempDir(), "out.md")
	w, err := Create(p)
	require.NoError(t, err)

	require.NoError(t, w.Append("report.docx", "report.docx", "Hello"))
	require.NoError(t, w.Append("old.doc", filepath.Join("2023", "old.doc"), "raw *markdown* | kept\n"))
	assert.Equal(t, 2, w.Count())
	require.NoError(t, w.Close())

	data, err := os.ReadFile(p)
	require.NoError(t, err)

	want := Preamble +
		"\n\n---\n\n## 来源文件：report.docx\n### 路径：report.docx\n\nHello" +
		"\n\n---\n\n## 来源文件：old.doc\n### 路径：" + filepath.Join("2023", "old.doc") + "\n\nraw *markdown* | kept\n"
	assert.Equal(t, want, string(data))
}
