//go:build linux

package platform

import (
	"io"

	"golang.org/x/sys/unix"
)

// CopyRange tries the most efficient in-kernel transfer first, falling
// through on unsupported/cross-device errors. A strategy that has already
// moved bytes is never retried with the next one.
func CopyRange(params CopyRangeParams) (CopyResult, error) {
	result, err := copyFileRange(params)
	if err == nil || result.BytesWritten > 0 || !isFallbackErr(err) {
		return result, err
	}

	result, err = copySendfile(params)
	if err == nil || result.BytesWritten > 0 || !isFallbackErr(err) {
		return result, err
	}

	return copyReadWrite(params)
}

//nolint:gosec // G115: fd values are small non-negative integers
func copyFileRange(params CopyRangeParams) (CopyResult, error) {
	roff := params.Offset
	woff := params.Offset
	remaining := params.Length

	var totalWritten int64
	for remaining > 0 {
		n, err := unix.CopyFileRange(int(params.Src.Fd()), &roff, int(params.Dst.Fd()), &woff, int(remaining), 0)
		if err != nil {
			return CopyResult{BytesWritten: totalWritten, Method: CopyFileRange}, err
		}
		if n == 0 {
			return CopyResult{BytesWritten: totalWritten, Method: CopyFileRange}, io.ErrUnexpectedEOF
		}
		remaining -= int64(n)
		totalWritten += int64(n)
	}

	return CopyResult{BytesWritten: totalWritten, Method: CopyFileRange}, nil
}

//nolint:gosec // G115: fd values are small non-negative integers
func copySendfile(params CopyRangeParams) (CopyResult, error) {
	// sendfile(2) writes at the destination's file position.
	if _, err := params.Dst.Seek(params.Offset, io.SeekStart); err != nil {
		return CopyResult{Method: Sendfile}, err
	}

	offset := params.Offset
	remaining := params.Length

	var totalWritten int64
	for remaining > 0 {
		n, err := unix.Sendfile(int(params.Dst.Fd()), int(params.Src.Fd()), &offset, int(remaining))
		if err != nil {
			return CopyResult{BytesWritten: totalWritten, Method: Sendfile}, err
		}
		if n == 0 {
			return CopyResult{BytesWritten: totalWritten, Method: Sendfile}, io.ErrUnexpectedEOF
		}
		remaining -= int64(n)
		totalWritten += int64(n)
	}

	return CopyResult{BytesWritten: totalWritten, Method: Sendfile}, nil
}
