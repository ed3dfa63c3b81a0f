package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bamsammich/dirmigrate/internal/filter"
)

func validConfig() Config {
	return Config{From: "/a/mount", To: "/a/temporary_mount", StatusDir: "/a"}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "relative from", mutate: func(c *Config) { c.From = "mount" }, wantErr: true},
		{name: "relative to", mutate: func(c *Config) { c.To = "tmp" }, wantErr: true},
		{name: "missing status dir", mutate: func(c *Config) { c.StatusDir = "" }, wantErr: true},
		{name: "same roots", mutate: func(c *Config) { c.To = c.From + "/" }, wantErr: true},
		{name: "to inside from", mutate: func(c *Config) { c.To = c.From + "/x" }, wantErr: true},
		{name: "from inside to", mutate: func(c *Config) { c.From = c.To + "/x" }, wantErr: true},
		{name: "status inside from", mutate: func(c *Config) { c.StatusDir = c.From + "/s" }, wantErr: true},
		{name: "status equals to", mutate: func(c *Config) { c.StatusDir = c.To }, wantErr: true},
		{name: "status elsewhere", mutate: func(c *Config) { c.StatusDir = "/var/lib/dirmigrate" }},
		{name: "sibling prefix", mutate: func(c *Config) { c.To = c.From + "2" }},
		{name: "negative chunk", mutate: func(c *Config) { c.ChunkSize = -1 }, wantErr: true},
		{name: "negative workers", mutate: func(c *Config) { c.Workers = -1 }, wantErr: true},
		{name: "negative io limit", mutate: func(c *Config) { c.IOLimit = -1 }, wantErr: true},
		{name: "bad mode", mutate: func(c *Config) { c.Mode = "partial" }, wantErr: true},
		{name: "minimal mode", mutate: func(c *Config) { c.Mode = Minimal }},
		{name: "same xattr names", mutate: func(c *Config) { c.MtimeXattr, c.AtimeXattr = "user.t", "user.t" }, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfigDefaults(t *testing.T) {
	cfg := validConfig().withDefaults()
	assert.Equal(t, DefaultChunkSize, cfg.ChunkSize)
	assert.Equal(t, Full, cfg.Mode)
	assert.Equal(t, DefaultMaxQueuedJobs, cfg.MaxQueuedJobs)
	assert.Equal(t, DefaultMtimeXattr, cfg.MtimeXattr)
	assert.Equal(t, DefaultAtimeXattr, cfg.AtimeXattr)
	assert.Equal(t, DefaultProgressInterval, cfg.ProgressInterval)
	assert.Equal(t, filter.DefaultMinimalPaths, cfg.MinimalPaths)
	assert.Equal(t, filter.DefaultKnownCorruptions, cfg.KnownCorruptions)
	assert.NotNil(t, cfg.Logger)
}

func TestNewRejectsBadPatterns(t *testing.T) {
	cfg := validConfig()
	cfg.MinimalPaths = []string{"user/**"}
	_, err := New(nil, cfg)
	require.Error(t, err)

	cfg = validConfig()
	cfg.KnownCorruptions = []string{""}
	_, err = New(nil, cfg)
	require.Error(t, err)
}

func TestNewCleansPaths(t *testing.T) {
	cfg := validConfig()
	cfg.From = "/a/mount/"
	m, err := New(nil, cfg)
	require.NoError(t, err)
	assert.Equal(t, "/a/mount", m.cfg.From)
	assert.Nil(t, m.limiter)

	cfg.IOLimit = 1 << 20
	m, err = New(nil, cfg)
	require.NoError(t, err)
	assert.NotNil(t, m.limiter)
}
