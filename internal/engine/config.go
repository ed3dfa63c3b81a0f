package engine

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/bamsammich/dirmigrate/internal/filter"
)

// Mode selects how much of the tree is migrated.
type Mode string

const (
	// Full migrates everything below From.
	Full Mode = "full"
	// Minimal migrates only the whitelisted paths and leaves the rest in
	// the source.
	Minimal Mode = "minimal"
)

// Defaults.
const (
	DefaultChunkSize        int64 = 128 << 20
	DefaultMaxQueuedJobs          = 100000
	DefaultProgressInterval       = time.Second
	DefaultMtimeXattr             = "trusted.DirMigrationMtime"
	DefaultAtimeXattr             = "trusted.DirMigrationAtime"

	// FreeSpaceBuffer is kept free on the destination on top of the chunk
	// reservations.
	FreeSpaceBuffer int64 = 4 << 20
	// ErasureBlockSize is the unit the source filesystem reclaims space in.
	// Chunks larger than this are rounded down to a multiple of it.
	ErasureBlockSize int64 = 4 << 20

	// StartedMarkerName is created in the status directory before any data moves.
	StartedMarkerName = "dirmigrate.started"
	// SkippedFileList lists the entries dropped as known corruptions. It
	// lives in the destination below the "root" subtree.
	SkippedFileList = "root/dirmigrate.files-skipped"
)

// Config describes one migration.
type Config struct {
	From      string `validate:"required,abspath"`
	To        string `validate:"required,abspath"`
	StatusDir string `validate:"required,abspath"`

	// ChunkSize is an upper bound. The engine may pick a smaller chunk when
	// free space is tight.
	ChunkSize int64 `validate:"gt=0"`
	Mode      Mode  `validate:"omitempty,oneof=full minimal"`
	// Workers is the number of file workers. Zero migrates files inline on
	// the walking goroutine.
	Workers       int `validate:"gte=0"`
	MaxQueuedJobs int `validate:"gte=0"`
	// IOLimit caps aggregate copy throughput in bytes per second. Zero is unlimited.
	IOLimit int64 `validate:"gte=0"`

	MtimeXattr string
	AtimeXattr string

	ProgressInterval time.Duration `validate:"gte=0"`

	// MinimalPaths is the whitelist used in Minimal mode.
	MinimalPaths []string
	// KnownCorruptions lists files that may be dropped when opening them
	// fails with EIO.
	KnownCorruptions []string

	Logger *slog.Logger `validate:"-"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	//nolint:errcheck // tag name is static
	v.RegisterValidation("abspath", func(fl validator.FieldLevel) bool {
		return filepath.IsAbs(fl.Field().String())
	})
	return v
}

// withDefaults fills zero fields.
func (c Config) withDefaults() Config {
	if c.ChunkSize == 0 {
		c.ChunkSize = DefaultChunkSize
	}
	if c.Mode == "" {
		c.Mode = Full
	}
	if c.MaxQueuedJobs == 0 {
		c.MaxQueuedJobs = DefaultMaxQueuedJobs
	}
	if c.MtimeXattr == "" {
		c.MtimeXattr = DefaultMtimeXattr
	}
	if c.AtimeXattr == "" {
		c.AtimeXattr = DefaultAtimeXattr
	}
	if c.ProgressInterval == 0 {
		c.ProgressInterval = DefaultProgressInterval
	}
	if c.MinimalPaths == nil {
		c.MinimalPaths = filter.DefaultMinimalPaths
	}
	if c.KnownCorruptions == nil {
		c.KnownCorruptions = filter.DefaultKnownCorruptions
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}

// Validate checks a Config after defaults are applied.
func (c Config) Validate() error {
	c = c.withDefaults()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	from, to, status := filepath.Clean(c.From), filepath.Clean(c.To), filepath.Clean(c.StatusDir)
	if from == to || within(to, from) || within(from, to) {
		return fmt.Errorf("invalid config: %s and %s must not overlap", from, to)
	}
	if within(status, from) || within(status, to) || status == from || status == to {
		return fmt.Errorf("invalid config: status dir %s must be outside the migrated trees", status)
	}
	if c.MtimeXattr == c.AtimeXattr {
		return fmt.Errorf("invalid config: mtime and atime xattr names must differ")
	}
	return nil
}

// within reports whether p is strictly below dir.
func within(p, dir string) bool {
	if dir == "/" {
		return p != "/"
	}
	return strings.HasPrefix(p, dir+"/")
}
