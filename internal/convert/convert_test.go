// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/doc-archiver/internal/workspace"
)

// mockExecutor fakes soffice. When produce is set, RunSilent writes the
// converted file into the --outdir argument.
type mockExecutor struct {
	onPath  bool
	produce bool
	runErr  error
	panics  bool

	calls [][]string
}

func (m *mockExecutor) LookPath(file string) (string, error) {
	if m.onPath {
		return "/usr/bin/" + file, nil
	}
	return "", errors.New("not found: " + file)
}

func (m *mockExecutor) RunSilent(name string, args ...string) error {
	m.calls = append(m.calls, append([]string{name}, args...))
	if m.panics {
		panic("soffice crashed")
	}
	if m.runErr != nil {
		return m.runErr
	}
	if m.produce {
		var outdir string
		for i, a := range args {
			if a == "--outdir" && i+1 < len(args) {
				outdir = args[i+1]
			}
		}
		src := args[len(args)-1]
		return os.WriteFile(filepath.Join(outdir, OutputName(src)), []byte("PK"), 0o644)
	}
	return nil
}

func (m *mockExecutor) RunPiped(string, []string, io.Reader, io.Writer) error {
	return errors.New("unexpected piped run")
}

func setupDoc(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "old.doc")
	require.NoError(t, os.WriteFile(p, []byte("legacy"), 0o644))
	return p
}

func TestConvert(t *testing.T) {
	tests := []struct {
		name    string
		exec    *mockExecutor
		wantErr error
		wantOK  bool
	}{
		{
			name:   "successful conversion",
			exec:   &mockExecutor{onPath: true, produce: true},
			wantOK: true,
		},
		{
			name:    "soffice missing",
			exec:    &mockExecutor{},
			wantErr: ErrToolNotFound,
		},
		{
			name:    "exit without output file",
			exec:    &mockExecutor{onPath: true},
			wantErr: ErrNoOutput,
		},
		{
			name: "non-zero exit",
			exec: &mockExecutor{onPath: true, runErr: errors.New("exit status 1")},
		},
		{
			name: "panic during run",
			exec: &mockExecutor{onPath: true, panics: true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := setupDoc(t)
			base := t.TempDir()
			c := newConverter("", workspace.NewManager(base), tt.exec)

			res, err := c.Convert(doc)

			require.NotEmpty(t, res.Workspace, "workspace must be returned for cleanup")
			assert.Equal(t, base, filepath.Dir(res.Workspace))
			assert.DirExists(t, res.Workspace)

			if tt.wantOK {
				require.NoError(t, err)
				assert.Equal(t, filepath.Join(res.Workspace, "old.docx"), res.Path)
				assert.FileExists(t, res.Path)
				return
			}
			require.Error(t, err)
			assert.Empty(t, res.Path)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestConvert_Arguments(t *testing.T) {
	doc := setupDoc(t)
	exec := &mockExecutor{onPath: true, produce: true}
	c := newConverter("lowriter", workspace.NewManager(t.TempDir()), exec)

	res, err := c.Convert(doc)
	require.NoError(t, err)

	require.Len(t, exec.calls, 1)
	assert.Equal(t, []string{
		"lowriter", "--headless", "--convert-to", "docx", "--outdir", res.Workspace, doc,
	}, exec.calls[0])
}

func TestConvert_WorkspaceCreationFails(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	c := newConverter("", workspace.NewManager(blocker), &mockExecutor{onPath: true, produce: true})
	res, err := c.Convert(setupDoc(t))
	require.Error(t, err)
	assert.Empty(t, res.Workspace)
	assert.Empty(t, res.Path)
}

func TestOutputName(t *testing.T) {
	tests := map[string]string{
		"old.doc":            "old.docx",
		"/a/b/Report.DOC":    "Report.docx",
		"dotted.name.v2.doc": "dotted.name.v2.docx",
	}
	for in, want := range tests {
		assert.Equal(t, want, OutputName(in), in)
	}
}

func TestNew_DefaultBinary(t *testing.T) {
	assert.Equal(t, DefaultSoffice, New("", workspace.NewManager(t.TempDir())).Binary())
}
