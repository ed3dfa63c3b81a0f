package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bamsammich/dirmigrate/internal/platform"
	"github.com/bamsammich/dirmigrate/internal/platform/memfs"
)

func TestHashFile(t *testing.T) {
	dir := t.TempDir()
	fsys := platform.NewOS()
	path := filepath.Join(dir, "test.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello world"), 0644))

	h1, err := HashFile(fsys, path)
	require.NoError(t, err)
	assert.NotEmpty(t, h1)

	// Same content should produce the same hash.
	path2 := filepath.Join(dir, "test2.txt")
	require.NoError(t, os.WriteFile(path2, []byte("hello world"), 0644))
	h2, err := HashFile(fsys, path2)
	require.NoError(t, err)
	assert.Equal(t, h1, h2)

	// Different content should produce a different hash.
	path3 := filepath.Join(dir, "test3.txt")
	require.NoError(t, os.WriteFile(path3, []byte("different content"), 0644))
	h3, err := HashFile(fsys, path3)
	require.NoError(t, err)
	assert.NotEqual(t, h1, h3)
}

func TestHashFileEmpty(t *testing.T) {
	m := memfs.New()
	require.NoError(t, m.WriteFile("/empty", nil, 0644))

	h, err := HashFile(m, "/empty")
	require.NoError(t, err)
	// BLAKE3 of the empty input.
	assert.Equal(t, "af1349b9f5f9a1a6a0404dea36dcc9499bcb25c9adc112b7cc9a93cae41f3262", h)
}

func TestHashFileNotExist(t *testing.T) {
	_, err := HashFile(platform.NewOS(), "/nonexistent/file")
	assert.Error(t, err)
}

func TestManifest(t *testing.T) {
	m := memfs.New()
	require.NoError(t, m.MkdirAll("/r/d", 0o755))
	require.NoError(t, m.WriteFile("/r/d/f", []byte("x"), 0o644))
	require.NoError(t, m.MakeSymlink("f", "/r/d/l"))
	require.NoError(t, m.MakeOther("/r/fifo"))

	got, err := Manifest(m, "/r")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "dir", got["d"])
	assert.Equal(t, "-> f", got["d/l"])
	assert.Len(t, got["d/f"], 64)
}
