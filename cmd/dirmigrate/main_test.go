package main

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bamsammich/dirmigrate/internal/config"
	"github.com/bamsammich/dirmigrate/internal/engine"
	"github.com/bamsammich/dirmigrate/internal/event"
	"github.com/bamsammich/dirmigrate/internal/platform/memfs"
)

func buildFromArgs(t *testing.T, cfg config.Config, args ...string) (engine.Config, error) {
	t.Helper()
	cmd, o := migrateCommand()
	require.NoError(t, cmd.Flags().Parse(args))
	return buildEngineConfig(cmd.Flags(), *o, cfg, "/data/from", "/data/to")
}

func ptr[T any](v T) *T { return &v }

func TestBuildEngineConfig_Defaults(t *testing.T) {
	ecfg, err := buildFromArgs(t, config.Config{}, "--status-dir", "/data")
	require.NoError(t, err)

	assert.Equal(t, "/data/from", ecfg.From)
	assert.Equal(t, "/data/to", ecfg.To)
	assert.Equal(t, "/data", ecfg.StatusDir)
	assert.Equal(t, int64(128<<20), ecfg.ChunkSize)
	assert.Equal(t, engine.Full, ecfg.Mode)
	assert.Equal(t, min(runtime.NumCPU()*2, 32), ecfg.Workers)
	assert.Zero(t, ecfg.IOLimit)
	assert.Equal(t, engine.DefaultMtimeXattr, ecfg.MtimeXattr)
	assert.Equal(t, engine.DefaultAtimeXattr, ecfg.AtimeXattr)
}

func TestBuildEngineConfig_ConfigFile(t *testing.T) {
	cfg := config.Config{
		Defaults: config.DefaultsConfig{
			ChunkSize: ptr("4M"),
			Workers:   ptr(3),
			Mode:      ptr("minimal"),
			IOLimit:   ptr("1M"),
		},
		Minimal: config.MinimalConfig{Paths: []string{"keep"}},
		Skip:    config.SkipConfig{KnownCorruptions: []string{"*.db"}},
		Xattr:   config.XattrConfig{Mtime: ptr("user.m"), Atime: ptr("user.a")},
	}

	ecfg, err := buildFromArgs(t, cfg, "--status-dir", "/data")
	require.NoError(t, err)
	assert.Equal(t, int64(4<<20), ecfg.ChunkSize)
	assert.Equal(t, 3, ecfg.Workers)
	assert.Equal(t, engine.Minimal, ecfg.Mode)
	assert.Equal(t, int64(1<<20), ecfg.IOLimit)
	assert.Equal(t, []string{"keep"}, ecfg.MinimalPaths)
	assert.Equal(t, []string{"*.db"}, ecfg.KnownCorruptions)
	assert.Equal(t, "user.m", ecfg.MtimeXattr)
	assert.Equal(t, "user.a", ecfg.AtimeXattr)
}

func TestBuildEngineConfig_FlagsOverrideConfig(t *testing.T) {
	cfg := config.Config{
		Defaults: config.DefaultsConfig{
			ChunkSize: ptr("4M"),
			Workers:   ptr(3),
			IOLimit:   ptr("1M"),
		},
		Xattr: config.XattrConfig{Mtime: ptr("user.m")},
	}

	ecfg, err := buildFromArgs(t, cfg,
		"--status-dir", "/data",
		"--chunk-size", "8M",
		"--workers", "5",
		"--bwlimit", "2M",
		"--mtime-xattr", "user.flag",
	)
	require.NoError(t, err)
	assert.Equal(t, int64(8<<20), ecfg.ChunkSize)
	assert.Equal(t, 5, ecfg.Workers)
	assert.Equal(t, int64(2<<20), ecfg.IOLimit)
	assert.Equal(t, "user.flag", ecfg.MtimeXattr)
}

func TestBuildEngineConfig_Inline(t *testing.T) {
	ecfg, err := buildFromArgs(t, config.Config{}, "--status-dir", "/data", "--workers", "4", "--inline")
	require.NoError(t, err)
	assert.Zero(t, ecfg.Workers)
}

func TestBuildEngineConfig_PatternFiles(t *testing.T) {
	dir := t.TempDir()
	minimal := filepath.Join(dir, "minimal")
	require.NoError(t, os.WriteFile(minimal, []byte("# kept\nsession_manager\nuser/Downloads\n"), 0o644))
	corrupt := filepath.Join(dir, "corrupt")
	require.NoError(t, os.WriteFile(corrupt, []byte("root/*.db\n"), 0o644))

	ecfg, err := buildFromArgs(t, config.Config{},
		"--status-dir", "/data",
		"--minimal",
		"--minimal-paths-file", minimal,
		"--known-corruptions-file", corrupt,
	)
	require.NoError(t, err)
	assert.Equal(t, engine.Minimal, ecfg.Mode)
	assert.Equal(t, []string{"session_manager", "user/Downloads"}, ecfg.MinimalPaths)
	assert.Equal(t, []string{"root/*.db"}, ecfg.KnownCorruptions)
}

func TestBuildEngineConfig_BadSizes(t *testing.T) {
	_, err := buildFromArgs(t, config.Config{}, "--status-dir", "/data", "--chunk-size", "huge")
	assert.ErrorContains(t, err, "--chunk-size")

	_, err = buildFromArgs(t, config.Config{}, "--status-dir", "/data", "--bwlimit", "fast")
	assert.ErrorContains(t, err, "--bwlimit")
}

func TestForwardProgress(t *testing.T) {
	events := make(chan event.Progress, 1)
	fn := forwardProgress(events, slog.New(slog.DiscardHandler))

	fn(event.Progress{Status: event.InProgress, Migrated: 1})
	// Channel full: the second IN_PROGRESS is dropped instead of blocking.
	fn(event.Progress{Status: event.InProgress, Migrated: 2})

	got := <-events
	assert.Equal(t, int64(1), got.Migrated)

	fn(event.Progress{Status: event.Failed})
	assert.Equal(t, event.Failed, (<-events).Status)
}

func TestWriteDigest(t *testing.T) {
	fsys := memfs.New()
	require.NoError(t, fsys.MkdirAll("/t/sub", 0o755))
	require.NoError(t, fsys.WriteFile("/t/sub/b", nil, 0o644))
	require.NoError(t, fsys.WriteFile("/t/a", []byte("x"), 0o644))

	var out bytes.Buffer
	require.NoError(t, writeDigest(&out, fsys, "/t"))

	want, err := engine.HashFile(fsys, "/t/a")
	require.NoError(t, err)
	empty, err := engine.HashFile(fsys, "/t/sub/b")
	require.NoError(t, err)
	assert.Equal(t, want+"  a\ndir  sub\n"+empty+"  sub/b\n", out.String())
}

func TestStatusCmd(t *testing.T) {
	dir := t.TempDir()

	cmd := newStatusCmd()
	cmd.SetArgs([]string{"--status-dir", dir})
	err := cmd.Execute()
	var exitErr *exitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, exitNotStarted, exitErr.code)

	require.NoError(t, os.WriteFile(filepath.Join(dir, engine.StartedMarkerName), nil, 0o644))
	cmd = newStatusCmd()
	cmd.SetArgs([]string{"--status-dir", dir})
	assert.NoError(t, cmd.Execute())
}
