// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package walk

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/doc-archiver/pkg/types"
)

func touch(t *testing.T, root, rel string) string {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte("x"), 0o644))
	return p
}

func relPaths(docs []types.Document) []string {
	out := make([]string, len(docs))
	for i, d := range docs {
		out[i] = filepath.ToSlash(d.RelPath)
	}
	return out
}

func TestCollect(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "report.docx")
	touch(t, root, "OLD.DOC")
	touch(t, root, "notes.txt")
	touch(t, root, "sub/deep/memo.Docx")
	touch(t, root, "sub/readme.md")

	docs, err := Collect(root, filepath.Join(t.TempDir(), "out.md"))
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"report.docx", "OLD.DOC", "sub/deep/memo.Docx"}, relPaths(docs))

	for _, d := range docs {
		switch d.Name {
		case "OLD.DOC":
			assert.Equal(t, types.FormatDoc, d.Format)
		default:
			assert.Equal(t, types.FormatDocx, d.Format)
		}
		assert.Equal(t, filepath.Base(d.Path), d.Name)
	}
}

func TestCollect_PrunesIgnoredDirs(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "keep.docx")
	for dir := range IgnoredDirs {
		touch(t, root, dir+"/hidden.docx")
		touch(t, root, "nested/"+dir+"/hidden.doc")
	}
	touch(t, root, "nested/visible.doc")

	docs, err := Collect(root, "")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"keep.docx", "nested/visible.doc"}, relPaths(docs))
}

func TestCollect_RootNamedLikeIgnoredDir(t *testing.T) {
	root := filepath.Join(t.TempDir(), "bin")
	touch(t, root, "a.docx")

	docs, err := Collect(root, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.docx"}, relPaths(docs))
}

func TestCollect_ExcludesOutputFile(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "a.docx")
	out := touch(t, root, "archive.docx")

	docs, err := Collect(root, out)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.docx"}, relPaths(docs))
}

func TestCollect_ExcludesRelativeOutputPath(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "a.docx")
	touch(t, root, "self.docx")

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(root))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	docs, err := Collect(".", "self.docx")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.docx"}, relPaths(docs))
}

func TestCollect_MissingRoot(t *testing.T) {
	_, err := Collect(filepath.Join(t.TempDir(), "nope"), "")
	assert.Error(t, err)
}

func TestDocuments_CallbackErrorStopsWalk(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "a.docx")
	touch(t, root, "b.docx")

	calls := 0
	err := Documents(root, "", nil, func(types.Document) error {
		calls++
		return os.ErrClosed
	})
	assert.ErrorIs(t, err, os.ErrClosed)
	assert.Equal(t, 1, calls)
}

func TestCollect_SymlinkedRoot(t *testing.T) {
	target := t.TempDir()
	touch(t, target, "report.docx")
	touch(t, target, "sub/old.doc")
	touch(t, target, "node_modules/x.docx")

	link := filepath.Join(t.TempDir(), "exams")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	docs, err := Collect(link, "")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"report.docx", "sub/old.doc"}, relPaths(docs))
	for _, d := range docs {
		assert.FileExists(t, d.Path)
	}
}

func TestDocuments_UnreadableRootIsReported(t *testing.T) {
	root := t.TempDir()
	denied := errors.New("permission denied")

	orig := walkDir
	t.Cleanup(func() { walkDir = orig })
	walkDir = func(path string, fn fs.WalkDirFunc) error {
		info, err := os.Stat(path)
		require.NoError(t, err)
		d := fs.FileInfoToDirEntry(info)
		if err := fn(path, d, nil); err != nil {
			return err
		}
		if err := fn(path, d, denied); err != nil && !errors.Is(err, fs.SkipDir) {
			return err
		}
		return nil
	}

	var reported []error
	err := Documents(root, "", func(_ string, err error) {
		reported = append(reported, err)
	}, func(types.Document) error {
		t.Fatal("no documents expected")
		return nil
	})

	require.NoError(t, err)
	require.Len(t, reported, 1)
	assert.ErrorIs(t, reported[0], denied)
}

func TestDocuments_UnreadableSubdirIsSkipped(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permissions are not enforced for root")
	}
	root := t.TempDir()
	touch(t, root, "a.docx")
	locked := filepath.Join(root, "locked")
	touch(t, root, "locked/b.docx")
	require.NoError(t, os.Chmod(locked, 0o000))
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	var reported []string
	var found []string
	err := Documents(root, "", func(path string, _ error) {
		reported = append(reported, path)
	}, func(d types.Document) error {
		found = append(found, d.Name)
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"a.docx"}, found)
	assert.Equal(t, []string{locked}, reported)
}
