// Package engine moves a directory tree from one location to another on the
// same device without ever holding two full copies of the data. Files are
// moved from the back, one durable chunk at a time, and the source is
// truncated behind each chunk. An interrupted migration resumes from
// whatever state the trees were left in.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/bamsammich/dirmigrate/internal/event"
	"github.com/bamsammich/dirmigrate/internal/filter"
	"github.com/bamsammich/dirmigrate/internal/platform"
	"github.com/bamsammich/dirmigrate/internal/stats"
)

// Migrator moves From into To. A Migrator may be reused for a later run
// once Migrate has returned, but not concurrently.
type Migrator struct {
	fs        platform.FS
	cfg       Config
	stats     *stats.Collector
	whitelist *filter.Whitelist
	corrupt   *filter.Set
	limiter   *rate.Limiter
	now       func() time.Time
	log       *slog.Logger

	running   atomic.Bool
	cancelled atomic.Bool

	// Per-run state.
	ctx   context.Context
	chunk int64

	mu         sync.Mutex // progress counters and the skip list
	progress   ProgressFunc
	migrated   int64
	total      int64
	lastReport time.Time

	dirMu sync.Mutex
	dirs  map[string]*dirState

	failMu      sync.Mutex
	lastFailure *OpError
}

// New validates cfg and returns a Migrator for it.
func New(fsys platform.FS, cfg Config) (*Migrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()
	cfg.From = path.Clean(cfg.From)
	cfg.To = path.Clean(cfg.To)
	cfg.StatusDir = path.Clean(cfg.StatusDir)

	whitelist, err := filter.NewWhitelist(cfg.MinimalPaths...)
	if err != nil {
		return nil, fmt.Errorf("minimal paths: %w", err)
	}
	corrupt, err := filter.NewSet(cfg.KnownCorruptions...)
	if err != nil {
		return nil, fmt.Errorf("known corruptions: %w", err)
	}

	m := &Migrator{
		fs:        fsys,
		cfg:       cfg,
		stats:     stats.NewCollector(),
		whitelist: whitelist,
		corrupt:   corrupt,
		now:       time.Now,
		log:       cfg.Logger,
	}
	if cfg.IOLimit > 0 {
		m.limiter = NewIOLimiter(cfg.IOLimit)
	}
	return m, nil
}

// Stats returns the migration counters. Presenters may Tick it.
func (m *Migrator) Stats() *stats.Collector { return m.stats }

// IsMigrationStarted reports whether a migration into this status directory
// has ever begun.
func (m *Migrator) IsMigrationStarted() bool {
	return IsMigrationStarted(m.fs, m.cfg.StatusDir)
}

// IsMigrationStarted reports whether the started marker exists in statusDir.
func IsMigrationStarted(fsys platform.FS, statusDir string) bool {
	return fsys.Exists(path.Join(statusDir, StartedMarkerName))
}

// Cancel asks a running migration to stop at the next chunk or entry. It
// is safe to call from any goroutine, and it stays in effect: later calls
// to Migrate fail with ErrCancelled.
func (m *Migrator) Cancel() {
	m.cancelled.Store(true)
}

// LastFailure returns the most recent failure, fatal or not, or nil.
func (m *Migrator) LastFailure() *OpError {
	m.failMu.Lock()
	defer m.failMu.Unlock()
	return m.lastFailure
}

// Migrate runs the migration to completion. It returns nil once every entry
// below From has been moved. Any error leaves both trees in a state a later
// call can resume from.
func (m *Migrator) Migrate(ctx context.Context, progress ProgressFunc) error {
	if progress == nil {
		return ErrNilCallback
	}
	if !m.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer m.running.Store(false)

	m.ctx = ctx
	m.progress = progress
	m.migrated, m.total = 0, 0
	m.lastReport = time.Time{}
	m.dirs = map[string]*dirState{}

	log := m.cfg.Logger.With("run", uuid.NewString())
	m.log = log

	err := m.migrate()
	if err != nil {
		m.reportStatus(event.Failed)
		log.Error("migration failed", "error", err, "stats", m.stats.Snapshot())
		return err
	}
	m.reportDone()
	log.Info("migration complete", "stats", m.stats.Snapshot())
	return nil
}

func (m *Migrator) migrate() error {
	if err := m.fs.TouchDurable(path.Join(m.cfg.StatusDir, StartedMarkerName)); err != nil {
		return m.fail(OpStartedMarker, "", err)
	}

	root, err := m.fs.Lstat(m.cfg.From)
	if err != nil {
		return m.fail(OpStat, "", err)
	}
	if root.Kind != platform.KindDir {
		return m.fail(OpStat, "", fmt.Errorf("%s is a %s, not a directory", m.cfg.From, root.Kind))
	}

	size, err := m.measure()
	if err != nil {
		return err
	}
	chunk, err := m.chunkSize(size.DirBytes)
	if err != nil {
		return err
	}
	m.chunk = chunk
	m.stats.SetBytesTotal(size.Bytes)
	attrs := []any{
		"from", m.cfg.From, "to", m.cfg.To, "mode", m.cfg.Mode,
		"bytes", size.Bytes, "files", size.Files, "dirs", size.Dirs, "symlinks", size.Symlinks,
		"chunk", chunk, "workers", m.cfg.Workers,
		"skip_rules", m.corrupt.Len(), "skip_patterns", m.corrupt.Patterns(),
	}
	if m.cfg.Mode == Minimal {
		attrs = append(attrs, "minimal_paths", m.whitelist.Patterns())
	}
	m.log.Info("starting migration", attrs...)

	m.mu.Lock()
	m.total = size.Bytes
	m.report(event.Initializing)
	m.mu.Unlock()

	if m.cfg.Workers == 0 {
		return m.walk(root, m.processJob)
	}

	// The walker and the workers share the pool's context, so the first job
	// failure stops the walk at its next entry instead of at its next push.
	pool := newWorkerPool(m.ctx, m.cfg.MaxQueuedJobs, m.processJob)
	m.ctx = pool.ctx
	pool.start(m.cfg.Workers)
	walkErr := m.walk(root, pool.push)
	jobErr := pool.join()
	return preferCause(walkErr, jobErr)
}

// preferCause picks the error that explains a failed run. A worker's own
// failure beats the cancellation or exhaustion it causes in the walker.
func preferCause(walkErr, jobErr error) error {
	if jobErr == nil {
		return walkErr
	}
	if walkErr == nil || errors.Is(walkErr, ErrWorkersExhausted) || errors.Is(walkErr, ErrCancelled) ||
		errors.Is(walkErr, jobErr) {
		return jobErr
	}
	return walkErr
}

// chunkSize derives the chunk from free space on the destination so that
// every worker can have one chunk in flight on top of the directory entries
// still to be created.
func (m *Migrator) chunkSize(dirBytes int64) (int64, error) {
	free, err := m.fs.FreeSpace(m.cfg.To)
	if err != nil {
		return 0, m.fail(OpFreeSpace, "", err)
	}
	jobs := int64(max(1, m.cfg.Workers))
	required := FreeSpaceBuffer + dirBytes + jobs*ErasureBlockSize
	if free < required {
		err := fmt.Errorf("%w: %d bytes free, %d required", ErrInsufficientSpace, free, required)
		return 0, m.fail(OpFreeSpace, "", err)
	}

	chunk := min(m.cfg.ChunkSize, (free-FreeSpaceBuffer-dirBytes)/jobs)
	if chunk > ErasureBlockSize {
		chunk -= chunk % ErasureBlockSize
	}
	return chunk, nil
}

// processJob moves one file or symlink, removes its source and releases its
// parent directory. The parent clears the file's parked times when it
// finishes.
func (m *Migrator) processJob(job Job) error {
	if err := m.checkCancel(); err != nil {
		return err
	}

	switch job.Entry.Kind {
	case platform.KindSymlink:
		if err := m.migrateLink(job.Rel, job.Entry); err != nil {
			return err
		}
		m.stats.AddSymlinksMigrated(1)
	default:
		skipped, err := m.migrateFile(job.Rel, job.Entry)
		if err != nil {
			return err
		}
		if skipped {
			if err := m.fs.Remove(path.Join(m.cfg.From, job.Rel)); err != nil {
				return m.fail(OpDelete, job.Rel, err)
			}
			return m.releaseChild(parentRel(job.Rel))
		}
		m.stats.AddFilesMigrated(1)
	}

	if err := m.fs.Remove(path.Join(m.cfg.From, job.Rel)); err != nil {
		return m.fail(OpDelete, job.Rel, err)
	}
	return m.releaseChild(parentRel(job.Rel))
}

func parentRel(rel string) string {
	if p := path.Dir(rel); p != "." {
		return p
	}
	return ""
}

// checkCancel returns ErrCancelled once Cancel was called or ctx ended. When
// a worker failure ended ctx it returns that failure instead.
func (m *Migrator) checkCancel() error {
	if m.cancelled.Load() {
		return ErrCancelled
	}
	return m.ctxErr()
}

func (m *Migrator) ctxErr() error {
	if m.ctx.Err() == nil {
		return nil
	}
	cause := context.Cause(m.ctx)
	if errors.Is(cause, context.Canceled) || errors.Is(cause, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrCancelled, cause)
	}
	return cause
}

// checkCancelOr maps a rate limiter or queue error to a cancellation when
// that is what caused it.
func (m *Migrator) checkCancelOr(err error) error {
	if cerr := m.checkCancel(); cerr != nil {
		return cerr
	}
	return err
}

// fail wraps err in an OpError and records it. Errors that are already
// OpErrors or cancellations pass through unchanged.
func (m *Migrator) fail(op Operation, rel string, err error) error {
	var oe *OpError
	if errors.As(err, &oe) || errors.Is(err, ErrCancelled) {
		return err
	}
	oe = newOpError(op, rel, err)
	m.recordFailure(oe, true)
	return oe
}

func (m *Migrator) recordFailure(oe *OpError, fatal bool) {
	m.failMu.Lock()
	m.lastFailure = oe
	m.failMu.Unlock()
	if fatal {
		m.log.Error("migration step failed",
			"op", oe.Op.String(), "path", oe.Path, "class", oe.Class.String(), "error", oe.Err)
	}
}
