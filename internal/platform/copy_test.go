//go:build linux

package platform

import (
	"crypto/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openPair(t *testing.T, data []byte) (src, dst *os.File) {
	t.Helper()
	dir := t.TempDir()
	srcPath := filepath.Join(dir, "src")
	require.NoError(t, os.WriteFile(srcPath, data, 0o644))

	src, err := os.Open(srcPath)
	require.NoError(t, err)
	t.Cleanup(func() { src.Close() })

	dst, err = os.OpenFile(filepath.Join(dir, "dst"), os.O_RDWR|os.O_CREATE, 0o644)
	require.NoError(t, err)
	t.Cleanup(func() { dst.Close() })
	require.NoError(t, dst.Truncate(int64(len(data))))
	return src, dst
}

func readAll(t *testing.T, f *os.File) []byte {
	t.Helper()
	got, err := os.ReadFile(f.Name())
	require.NoError(t, err)
	return got
}

func TestCopyRangeWhole(t *testing.T) {
	// 4 MiB, larger than the 1 MiB read/write buffer.
	data := make([]byte, 4*1024*1024)
	_, err := rand.Read(data)
	require.NoError(t, err)
	src, dst := openPair(t, data)

	result, err := CopyRange(CopyRangeParams{Dst: dst, Src: src, Offset: 0, Length: int64(len(data))})
	require.NoError(t, err)
	assert.Equal(t, int64(len(data)), result.BytesWritten)
	assert.Equal(t, data, readAll(t, dst))
}

func TestCopyRangeBackwardChunks(t *testing.T) {
	data := []byte("AAAA_BBBB_CCCC")
	src, dst := openPair(t, data)

	// Tail first, then the head, at the same offsets in both files.
	_, err := CopyRange(CopyRangeParams{Dst: dst, Src: src, Offset: 10, Length: 4})
	require.NoError(t, err)
	assert.Equal(t, []byte("CCCC"), readAll(t, dst)[10:])

	_, err = CopyRange(CopyRangeParams{Dst: dst, Src: src, Offset: 0, Length: 10})
	require.NoError(t, err)
	assert.Equal(t, data, readAll(t, dst))
}

func TestCopyRangePastEOF(t *testing.T) {
	src, dst := openPair(t, []byte("short"))

	_, err := CopyRange(CopyRangeParams{Dst: dst, Src: src, Offset: 2, Length: 10})
	require.Error(t, err)
}

func TestCopyReadWrite(t *testing.T) {
	data := []byte("read-write fallback test")
	src, dst := openPair(t, data)

	result, err := copyReadWrite(CopyRangeParams{Dst: dst, Src: src, Offset: 5, Length: int64(len(data) - 5)})
	require.NoError(t, err)
	assert.Equal(t, ReadWrite, result.Method)
	assert.Equal(t, int64(len(data)-5), result.BytesWritten)
	assert.Equal(t, data[5:], readAll(t, dst)[5:])
}

func TestCopySendfile(t *testing.T) {
	data := []byte("sendfile writes at the destination position")
	src, dst := openPair(t, data)

	result, err := copySendfile(CopyRangeParams{Dst: dst, Src: src, Offset: 9, Length: int64(len(data) - 9)})
	if err != nil && isFallbackErr(err) {
		t.Skipf("sendfile not supported here: %v", err)
	}
	require.NoError(t, err)
	assert.Equal(t, Sendfile, result.Method)
	assert.Equal(t, data[9:], readAll(t, dst)[9:])
}

func TestCopyMethodString(t *testing.T) {
	assert.Equal(t, "read_write", ReadWrite.String())
	assert.Equal(t, "copy_file_range", CopyFileRange.String())
	assert.Equal(t, "sendfile", Sendfile.String())
	assert.Equal(t, "unknown", CopyMethod(99).String())
}
