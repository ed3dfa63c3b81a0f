package engine

import (
	"errors"
	"os"
	"path"
	"syscall"

	"github.com/bamsammich/dirmigrate/internal/platform"
)

// migrateFile moves one regular file from the back.
//
// The destination is extended to the original length up front so that each
// chunk lands at its final offset. Every chunk is synced to the destination
// before the source is truncated below it, so at any instant the bytes
// [len(src), L) are durable in the destination and [0, len(src)) are still
// in the source. A rerun picks up from whatever the source length is.
//
// skipped is true when the file was dropped as a known corruption.
func (m *Migrator) migrateFile(rel string, e platform.Entry) (skipped bool, err error) {
	from := path.Join(m.cfg.From, rel)
	to := path.Join(m.cfg.To, rel)

	src, err := m.fs.OpenFile(from, os.O_RDWR, 0)
	if err != nil {
		if errors.Is(err, syscall.EIO) && m.corrupt.Match(rel, false) {
			m.skipCorrupted(rel, e, err)
			return true, nil
		}
		return false, m.fail(OpOpenSource, rel, err)
	}
	defer func() {
		if src != nil {
			src.Close() //nolint:errcheck // already failing
		}
	}()

	created := !m.fs.Exists(to)
	dst, err := m.fs.OpenFile(to, os.O_WRONLY|os.O_CREATE, 0o600)
	if err != nil {
		return false, m.fail(OpOpenDest, rel, err)
	}
	defer func() {
		if dst != nil {
			dst.Close() //nolint:errcheck // already failing
		}
	}()
	if created {
		if err := m.fs.SyncDir(path.Dir(to)); err != nil {
			return false, m.fail(OpSync, rel, err)
		}
	}

	remaining, err := src.Size()
	if err != nil {
		return false, m.fail(OpStat, rel, err)
	}
	dstLen, err := dst.Size()
	if err != nil {
		return false, m.fail(OpStat, rel, err)
	}
	// On a rerun the destination already has the full length. Never shrink
	// it: the tail holds data the source no longer has.
	if dstLen < remaining {
		if err := dst.Truncate(remaining); err != nil {
			return false, m.fail(OpTruncate, rel, err)
		}
	}

	if err := m.copyAttributes(rel, e, to); err != nil {
		return false, err
	}

	for remaining > 0 {
		if err := m.checkCancel(); err != nil {
			return false, err
		}
		n := remaining % m.chunk
		if n == 0 {
			n = m.chunk
		}
		off := remaining - n
		if err := waitN(m.ctx, m.limiter, n); err != nil {
			return false, m.checkCancelOr(err)
		}
		if err := m.fs.SendFile(dst, src, off, n); err != nil {
			return false, m.fail(OpSendFile, rel, err)
		}
		// The last chunk is covered by the sync after close, and the source
		// goes away with the unlink.
		if off > 0 {
			if err := dst.Sync(); err != nil {
				return false, m.fail(OpSync, rel, err)
			}
			if err := src.Truncate(off); err != nil {
				return false, m.fail(OpTruncate, rel, err)
			}
		}
		remaining = off
		m.addMigrated(n)
	}

	cerr := dst.Close()
	dst = nil
	if cerr != nil {
		return false, m.fail(OpSync, rel, cerr)
	}
	cerr = src.Close()
	src = nil
	if cerr != nil {
		return false, m.fail(OpOther, rel, cerr)
	}

	if err := m.fixTimes(rel, to); err != nil {
		return false, err
	}
	if err := m.fs.SyncFile(to); err != nil {
		return false, m.fail(OpSync, rel, err)
	}
	return false, nil
}
