package engine

import (
	"errors"
	"io/fs"
	"path"
	"strings"

	"github.com/bamsammich/dirmigrate/internal/platform"
)

// rewriteTarget points absolute targets inside From at the same place
// inside To. Relative targets and targets elsewhere are left alone.
func (m *Migrator) rewriteTarget(target string) string {
	prefix := strings.TrimSuffix(m.cfg.From, "/") + "/"
	if !path.IsAbs(target) || !strings.HasPrefix(target, prefix) {
		return target
	}
	return path.Join(m.cfg.To, strings.TrimPrefix(target, prefix))
}

// migrateLink recreates a symlink at the destination. Any existing entry
// there, from an interrupted run, is replaced.
func (m *Migrator) migrateLink(rel string, e platform.Entry) error {
	from := path.Join(m.cfg.From, rel)
	to := path.Join(m.cfg.To, rel)

	target, err := m.fs.Readlink(from)
	if err != nil {
		return m.fail(OpReadLink, rel, err)
	}
	target = m.rewriteTarget(target)

	if err := m.fs.Remove(to); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return m.fail(OpDelete, rel, err)
	}
	if err := m.fs.Symlink(target, to); err != nil {
		return m.fail(OpCreateLink, rel, err)
	}
	if err := m.copyAttributes(rel, e, to); err != nil {
		return err
	}
	// Symlinks cannot carry the timestamp xattrs, so times go on directly.
	if err := m.fs.SetTimes(to, e.Atime, e.Mtime, false); err != nil {
		return m.fail(OpSetAttribute, rel, err)
	}
	// There is no way to fsync a symlink by itself.
	m.fs.Sync()

	m.addMigrated(e.Size)
	return nil
}
