package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopyFile(t *testing.T) {
	tempDir := t.TempDir()

	srcFile := filepath.Join(tempDir, "source.txt")
	dstFile := filepath.Join(tempDir, "nested", "destination.txt")

	content := "Hello, World!"
	err := os.WriteFile(srcFile, []byte(content), 0o644)
	require.NoError(t, err)

	err = CopyFile(srcFile, dstFile)
	require.NoError(t, err)

	copied, err := os.ReadFile(dstFile)
	require.NoError(t, err)
	assert.Equal(t, content, string(copied))

	// Source stays in place
	_, err = os.Stat(srcFile)
	assert.NoError(t, err)

	// No temporary files left behind
	entries, err := os.ReadDir(filepath.Dir(dstFile))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestCopyFile_PreservesPermissions(t *testing.T) {
	tempDir := t.TempDir()

	srcFile := filepath.Join(tempDir, "script.sh")
	dstFile := filepath.Join(tempDir, "copy.sh")

	err := os.WriteFile(srcFile, []byte("#!/bin/sh\n"), 0o755)
	require.NoError(t, err)

	err = CopyFile(srcFile, dstFile)
	require.NoError(t, err)

	info, err := os.Stat(dstFile)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())
}

func TestCopyFile_MissingSource(t *testing.T) {
	tempDir := t.TempDir()
	err := CopyFile(filepath.Join(tempDir, "nope.txt"), filepath.Join(tempDir, "out.txt"))
	assert.Error(t, err)
}

func TestFileExists(t *testing.T) {
	tempDir := t.TempDir()

	file := filepath.Join(tempDir, "present.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	assert.True(t, FileExists(file))
	assert.False(t, FileExists(filepath.Join(tempDir, "absent.txt")))
	assert.False(t, FileExists(tempDir), "directories are not files")
}

func TestRecreateDir(t *testing.T) {
	tempDir := t.TempDir()

	dir := filepath.Join(tempDir, "out")
	require.NoError(t, EnsureDir(dir))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "stale.txt"), []byte("old"), 0o644))

	require.NoError(t, RecreateDir(dir))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestEnsureDir_Idempotent(t *testing.T) {
	tempDir := t.TempDir()
	dir := filepath.Join(tempDir, "a", "b")

	require.NoError(t, EnsureDir(dir))
	require.NoError(t, EnsureDir(dir))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
