package engine

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"os"
	"path"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bamsammich/dirmigrate/internal/event"
	"github.com/bamsammich/dirmigrate/internal/platform"
	"github.com/bamsammich/dirmigrate/internal/platform/memfs"
)

const (
	testStatus = "/home/.shadow/user"
	testFrom   = "/home/.shadow/user/mount"
	testTo     = "/home/.shadow/user/temporary_mount"
	testChunk  = 128
)

// fixture is a memfs tree with the source and destination roots created.
type fixture struct {
	t  *testing.T
	fs *memfs.FS

	mu     sync.Mutex
	events []event.Progress
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{t: t, fs: memfs.New()}
	require.NoError(t, f.fs.MkdirAll(testFrom, 0o755))
	require.NoError(t, f.fs.MkdirAll(testTo, 0o700))
	return f
}

func (f *fixture) config(opts ...func(*Config)) Config {
	cfg := Config{
		From:             testFrom,
		To:               testTo,
		StatusDir:        testStatus,
		ChunkSize:        testChunk,
		MtimeXattr:       "user.mtime",
		AtimeXattr:       "user.atime",
		ProgressInterval: time.Second,
		Logger:           slog.New(slog.DiscardHandler),
	}
	for _, o := range opts {
		o(&cfg)
	}
	return cfg
}

func (f *fixture) migrator(opts ...func(*Config)) *Migrator {
	f.t.Helper()
	m, err := New(f.fs, f.config(opts...))
	require.NoError(f.t, err)
	m.now = steppingClock()
	return m
}

// steppingClock advances one second per reading, so every progress update
// passes the throttle.
func steppingClock() func() time.Time {
	var mu sync.Mutex
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now = now.Add(time.Second)
		return now
	}
}

func (f *fixture) record(p event.Progress) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, p)
}

func (f *fixture) progress() []event.Progress {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]event.Progress(nil), f.events...)
}

// run migrates with a fresh Migrator.
func (f *fixture) run(opts ...func(*Config)) error {
	f.t.Helper()
	return f.migrator(opts...).Migrate(context.Background(), f.record)
}

func (f *fixture) mkdir(rel string, mode os.FileMode) {
	f.t.Helper()
	require.NoError(f.t, f.fs.MkdirAll(path.Join(testFrom, rel), mode))
}

func (f *fixture) write(rel string, data []byte, mode os.FileMode) {
	f.t.Helper()
	require.NoError(f.t, f.fs.WriteFile(path.Join(testFrom, rel), data, mode))
}

func (f *fixture) link(target, rel string) {
	f.t.Helper()
	require.NoError(f.t, f.fs.MakeSymlink(target, path.Join(testFrom, rel)))
}

func (f *fixture) src(rel string) platform.Entry {
	f.t.Helper()
	e, err := f.fs.Lstat(path.Join(testFrom, rel))
	require.NoError(f.t, err)
	return e
}

func (f *fixture) dst(rel string) platform.Entry {
	f.t.Helper()
	e, err := f.fs.Lstat(path.Join(testTo, rel))
	require.NoError(f.t, err)
	return e
}

func (f *fixture) readDst(rel string) []byte {
	f.t.Helper()
	data, err := f.fs.ReadFile(path.Join(testTo, rel))
	require.NoError(f.t, err)
	return data
}

// requireSourceEmpty asserts every entry below the source root is gone.
func (f *fixture) requireSourceEmpty() {
	f.t.Helper()
	require.Empty(f.t, f.fs.Paths(testFrom))
}

func (f *fixture) manifest(root string) map[string]string {
	f.t.Helper()
	m, err := Manifest(f.fs, root)
	require.NoError(f.t, err)
	return m
}

// assertSameTimes checks that want's timestamps landed on got.
func assertSameTimes(t *testing.T, want, got platform.Entry) {
	t.Helper()
	assert.True(t, want.Mtime.Equal(got.Mtime), "%s mtime: want %v got %v", got.Path, want.Mtime, got.Mtime)
	assert.True(t, want.Atime.Equal(got.Atime), "%s atime: want %v got %v", got.Path, want.Atime, got.Atime)
}

func randBytes(seed uint64, n int) []byte {
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(r.Uint32())
	}
	return b
}
