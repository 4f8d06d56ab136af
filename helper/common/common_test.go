package common

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupDataDir(t *testing.T) {
	t.Parallel()

	root := filepath.Join(t.TempDir(), "harness", "data")

	require.NoError(t, SetupDataDir(root))
	require.DirExists(t, root)

	// existing directories are accepted and the probe file is gone
	require.NoError(t, SetupDataDir(root))

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSetupDataDir_PathIsFile(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, []byte{}, 0600))

	require.Error(t, SetupDataDir(file))
}

func TestFileExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "deployments.db")

	require.False(t, FileExists(file))
	require.False(t, FileExists(dir))

	require.NoError(t, os.WriteFile(file, []byte{}, 0600))
	require.True(t, FileExists(file))
}

func TestDirEntries(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Lottery.json"), []byte("{}"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte{}, 0600))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.json"), 0750))

	files, err := DirEntries(dir, "*.json")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "Lottery.json")}, files)
}
