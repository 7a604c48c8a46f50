package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.mkv", "a.mkv"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "nested.mkv"), nil, 0o644))
	require.NoError(t, os.Symlink(filepath.Join(dir, "a.mkv"), filepath.Join(dir, "link.mkv")))

	// a folder expands non-recursively and skips symlinks and subfolders
	files := collectFiles([]string{dir})
	assert.Equal(t, []string{
		filepath.Join(dir, "a.mkv"),
		filepath.Join(dir, "b.mkv"),
	}, files)

	// single files pass through; missing paths are skipped; output sorted
	files = collectFiles([]string{
		filepath.Join(dir, "b.mkv"),
		filepath.Join(dir, "missing.mkv"),
		filepath.Join(dir, "a.mkv"),
	})
	assert.Equal(t, []string{
		filepath.Join(dir, "a.mkv"),
		filepath.Join(dir, "b.mkv"),
	}, files)
}
