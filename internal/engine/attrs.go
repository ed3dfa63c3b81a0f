package engine

import (
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/bamsammich/dirmigrate/internal/platform"
)

const timespecSize = 16

// encodeTimespec packs t as two little-endian int64s, seconds then nanoseconds.
func encodeTimespec(t time.Time) []byte {
	b := make([]byte, timespecSize)
	binary.LittleEndian.PutUint64(b[0:8], uint64(t.Unix()))
	binary.LittleEndian.PutUint64(b[8:16], uint64(t.Nanosecond()))
	return b
}

func decodeTimespec(b []byte) (time.Time, error) {
	if len(b) != timespecSize {
		return time.Time{}, fmt.Errorf("timestamp attribute is %d bytes, want %d", len(b), timespecSize)
	}
	sec := int64(binary.LittleEndian.Uint64(b[0:8]))
	nsec := int64(binary.LittleEndian.Uint64(b[8:16]))
	return time.Unix(sec, nsec), nil
}

// copyAttributes carries ownership, permissions, timestamps, extended
// attributes and inode flags from src to the destination path dst.
//
// Timestamps are not applied here. They are parked in two xattrs on dst the
// first time dst is seen and applied by fixTimes once dst is complete, so a
// resumed run still restores the original times after the source has been
// modified by earlier partial runs.
func (m *Migrator) copyAttributes(rel string, src platform.Entry, dst string) error {
	if err := m.fs.Lchown(dst, src.UID, src.GID); err != nil {
		return m.fail(OpSetAttribute, rel, err)
	}
	if src.Kind == platform.KindSymlink {
		return nil
	}
	if err := m.fs.Chmod(dst, src.Mode); err != nil {
		return m.fail(OpSetAttribute, rel, err)
	}
	if err := m.setTimeMarker(rel, dst, m.cfg.MtimeXattr, src.Mtime); err != nil {
		return err
	}
	if err := m.setTimeMarker(rel, dst, m.cfg.AtimeXattr, src.Atime); err != nil {
		return err
	}
	if err := m.copyXattrs(rel, src.Path, dst); err != nil {
		return err
	}
	return m.copyFlags(rel, src.Path, dst)
}

// setTimeMarker stores t under name on path unless a value is already there.
func (m *Migrator) setTimeMarker(rel, path, name string, t time.Time) error {
	_, err := m.fs.Getxattr(path, name)
	switch {
	case err == nil:
		return nil
	case !errors.Is(err, platform.ErrNoAttr):
		return m.fail(OpGetAttribute, rel, err)
	}
	if err := m.fs.Setxattr(path, name, encodeTimespec(t)); err != nil {
		return m.fail(OpSetAttribute, rel, err)
	}
	return nil
}

func (m *Migrator) copyXattrs(rel, src, dst string) error {
	names, err := m.fs.Listxattr(src)
	if err != nil {
		return m.fail(OpGetAttribute, rel, err)
	}
	for _, name := range names {
		if name == m.cfg.MtimeXattr || name == m.cfg.AtimeXattr {
			continue
		}
		val, err := m.fs.Getxattr(src, name)
		if err != nil {
			return m.fail(OpGetAttribute, rel, err)
		}
		if err := m.fs.Setxattr(dst, name, val); err != nil {
			return m.fail(OpSetAttribute, rel, err)
		}
	}
	return nil
}

func (m *Migrator) copyFlags(rel, src, dst string) error {
	srcFlags, err := m.fs.GetFlags(src)
	if err != nil {
		return m.fail(OpGetAttribute, rel, err)
	}
	dstFlags, err := m.fs.GetFlags(dst)
	if err != nil {
		return m.fail(OpGetAttribute, rel, err)
	}
	want := srcFlags & platform.CopyableFlags
	if dstFlags&platform.CopyableFlags == want {
		return nil
	}
	if err := m.fs.SetFlags(dst, dstFlags&^platform.CopyableFlags|want); err != nil {
		return m.fail(OpSetAttribute, rel, err)
	}
	return nil
}

// fixTimes applies the parked timestamps to path.
func (m *Migrator) fixTimes(rel, path string) error {
	mtime, err := m.readTimeMarker(rel, path, m.cfg.MtimeXattr)
	if err != nil {
		return err
	}
	atime, err := m.readTimeMarker(rel, path, m.cfg.AtimeXattr)
	if err != nil {
		return err
	}
	if err := m.fs.SetTimes(path, atime, mtime, true); err != nil {
		return m.fail(OpSetAttribute, rel, err)
	}
	return nil
}

func (m *Migrator) readTimeMarker(rel, path, name string) (time.Time, error) {
	b, err := m.fs.Getxattr(path, name)
	if err != nil {
		return time.Time{}, m.fail(OpGetAttribute, rel, err)
	}
	t, err := decodeTimespec(b)
	if err != nil {
		return time.Time{}, m.fail(OpGetAttribute, rel, err)
	}
	return t, nil
}

// clearTimeMarkers drops the parked timestamps once they are no longer
// needed. A missing marker is fine.
func (m *Migrator) clearTimeMarkers(rel, path string) error {
	for _, name := range []string{m.cfg.MtimeXattr, m.cfg.AtimeXattr} {
		if err := m.fs.Removexattr(path, name); err != nil && !errors.Is(err, platform.ErrNoAttr) {
			return m.fail(OpSetAttribute, rel, err)
		}
	}
	return nil
}
