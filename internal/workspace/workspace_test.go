// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package workspace

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerCreate(t *testing.T) {
	base := filepath.Join(t.TempDir(), "scratch")
	m := NewManager(base)

	a, err := m.Create()
	require.NoError(t, err)
	b, err := m.Create()
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	for _, dir := range []string{a, b} {
		assert.Equal(t, base, filepath.Dir(dir))
		assert.True(t, strings.HasPrefix(filepath.Base(dir), prefix))
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

func TestNewManager_DefaultsToTempDir(t *testing.T) {
	dir, err := NewManager("").Create()
	require.NoError(t, err)
	t.Cleanup(func() { _ = Remove(dir) })
	assert.Equal(t, filepath.Clean(os.TempDir()), filepath.Dir(dir))
}

func TestRemove(t *testing.T) {
	m := NewManager(t.TempDir())
	dir, err := m.Create()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "x.docx"), []byte("x"), 0o644))

	require.NoError(t, Remove(dir))
	_, err = os.Stat(dir)
	assert.True(t, os.IsNotExist(err))

	// Second removal and empty path are no-ops.
	assert.NoError(t, Remove(dir))
	assert.NoError(t, Remove(""))
}
