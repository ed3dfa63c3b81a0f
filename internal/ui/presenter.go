package ui

import (
	"io"
	"time"

	"github.com/bamsammich/dirmigrate/internal/event"
	"github.com/bamsammich/dirmigrate/internal/stats"
)

// Presenter consumes progress reports and displays them.
type Presenter interface {
	// Run consumes reports until the channel closes. Blocks until done.
	Run(events <-chan event.Progress) error
	// Summary returns the final summary line.
	Summary() string
}

// Config configures a Presenter.
type Config struct {
	Writer   io.Writer
	Stats    stats.ReadTicker
	Width    int           // terminal columns, 0 for the default
	Interval time.Duration // plain mode progress period, 0 for the default
	IsTTY    bool
	Quiet    bool
}

const defaultPlainInterval = 5 * time.Second

// NewPresenter creates the appropriate presenter based on configuration.
//
//nolint:ireturn // factory function returns interface by design
func NewPresenter(
	cfg Config,
) Presenter {
	if cfg.Quiet {
		return &quietPresenter{}
	}
	if !cfg.IsTTY {
		interval := cfg.Interval
		if interval <= 0 {
			interval = defaultPlainInterval
		}
		return &plainPresenter{
			w:        cfg.Writer,
			stats:    cfg.Stats,
			interval: interval,
		}
	}
	return &hudPresenter{
		w:     cfg.Writer,
		stats: cfg.Stats,
		width: cfg.Width,
	}
}
