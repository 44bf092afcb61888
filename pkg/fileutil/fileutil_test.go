//go:build !integration

package fileutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, nil, 0o644))
}

func TestDirExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "flow.yaml")
	touch(t, file)

	assert.True(t, DirExists(dir))
	assert.False(t, DirExists(filepath.Join(dir, "absent")))
	assert.False(t, DirExists(file))
}

func TestExpandPaths(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "b.yaml"))
	touch(t, filepath.Join(dir, "a.JSON"))
	touch(t, filepath.Join(dir, "notes.md"))
	touch(t, filepath.Join(dir, "nested", "c.yml"))
	touch(t, filepath.Join(dir, ".git", "d.yaml"))

	exts := []string{".yaml", ".yml", ".json"}
	got, err := ExpandPaths([]string{"single.yaml", dir, "missing.json"}, exts)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"single.yaml",
		filepath.Join(dir, "a.JSON"),
		filepath.Join(dir, "b.yaml"),
		filepath.Join(dir, "nested", "c.yml"),
		"missing.json",
	}, got)
}

func TestExpandPaths_EmptyDir(t *testing.T) {
	got, err := ExpandPaths([]string{t.TempDir()}, []string{".yaml"})
	require.NoError(t, err)
	assert.Empty(t, got)
}
