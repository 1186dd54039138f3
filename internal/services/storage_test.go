package services

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorageService_SaveAndDelete(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	storage := NewStorageService(dir)
	require.NoError(t, storage.EnsureUploadDir())

	path, err := storage.SaveFile("../../Jane Resume.PDF", []byte("%PDF-1.7"))
	require.NoError(t, err)

	assert.Equal(t, dir, filepath.Dir(path))
	assert.True(t, strings.HasSuffix(path, ".pdf"))
	assert.NotContains(t, filepath.Base(path), "Jane")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.7"), data)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	require.NoError(t, storage.DeleteFile(path))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// Deleting twice is not an error.
	assert.NoError(t, storage.DeleteFile(path))
}

func TestStorageService_UniqueNames(t *testing.T) {
	storage := NewStorageService(t.TempDir())

	first, err := storage.SaveFile("resume.pdf", []byte("a"))
	require.NoError(t, err)
	second, err := storage.SaveFile("resume.pdf", []byte("b"))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestStorageService_RefusesPathsOutsideUploadDir(t *testing.T) {
	root := t.TempDir()
	storage := NewStorageService(filepath.Join(root, "uploads"))
	require.NoError(t, storage.EnsureUploadDir())

	outside := filepath.Join(root, "keep.txt")
	require.NoError(t, os.WriteFile(outside, []byte("keep"), 0o600))

	assert.Error(t, storage.DeleteFile(outside))
	_, err := os.Stat(outside)
	assert.NoError(t, err)
}
