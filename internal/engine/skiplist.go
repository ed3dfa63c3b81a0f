package engine

import (
	"os"
	"path"
	"strconv"
	"strings"

	"github.com/bamsammich/dirmigrate/internal/platform"
)

// skipCorrupted drops a known-corrupt file instead of failing the run. The
// file counts as migrated and its source is removed by the caller.
func (m *Migrator) skipCorrupted(rel string, e platform.Entry, cause error) {
	oe := newOpError(OpOpenSourceNonFatal, rel, cause)
	m.recordFailure(oe, false)
	m.log.Warn("skipping known corrupted file", "path", rel, "error", cause)

	m.mu.Lock()
	m.appendSkipRecord(rel)
	m.mu.Unlock()

	m.stats.AddFilesSkipped(1)
	m.addMigrated(e.Size)
}

// appendSkipRecord adds rel to the skip list. Failing to record is logged and
// otherwise ignored. Callers hold m.mu.
func (m *Migrator) appendSkipRecord(rel string) {
	p := path.Join(m.cfg.To, SkippedFileList)
	log := m.log.With("skip_list", p)

	if err := m.fs.CreateDirectory(path.Dir(p)); err != nil {
		log.Warn("create skip list directory", "error", err)
		return
	}
	created := !m.fs.Exists(p)
	f, err := m.fs.OpenFile(p, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o600)
	if err != nil {
		log.Warn("open skip list", "error", err)
		return
	}
	defer f.Close() //nolint:errcheck // synced below
	if _, err := f.Write([]byte(skipRecord(rel))); err != nil {
		log.Warn("append skip list", "error", err)
		return
	}
	if err := f.Sync(); err != nil {
		log.Warn("sync skip list", "error", err)
		return
	}
	if created {
		if err := m.fs.SyncDir(path.Dir(p)); err != nil {
			log.Warn("sync skip list directory", "error", err)
		}
	}
}

// skipRecord formats one line of the skip list. A name containing a newline,
// or one that starts with a quote, is written as a quoted Go string so the
// list stays one entry per line and strconv.Unquote recovers it.
func skipRecord(rel string) string {
	if strings.ContainsRune(rel, '\n') || strings.HasPrefix(rel, `"`) {
		rel = strconv.Quote(rel)
	}
	return rel + "\n"
}
