package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/bamsammich/dirmigrate/internal/event"
	"github.com/bamsammich/dirmigrate/internal/stats"
)

// plainPresenter prints phase changes as they happen and a progress line
// every interval, for logs and pipes.
type plainPresenter struct {
	w        io.Writer
	stats    stats.ReadTicker
	interval time.Duration

	last    event.Progress
	printed event.Progress // last progress line written
	failed  bool
}

func (p *plainPresenter) Run(events <-chan event.Progress) error {
	secTicker := time.NewTicker(time.Second)
	defer secTicker.Stop()
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			p.handleEvent(ev)
		case <-secTicker.C:
			p.stats.Tick()
		case <-ticker.C:
			p.printProgress()
		}
	}
}

func (p *plainPresenter) handleEvent(ev event.Progress) {
	p.last = ev
	switch ev.Status {
	case event.Initializing:
		fmt.Fprintf(p.w, "initializing: %s to migrate\n", FormatBytes(ev.Total))
	case event.Failed:
		p.failed = true
		fmt.Fprintf(p.w, "failed: %.0f%% %s/%s\n",
			ev.Fraction()*100, FormatBytes(ev.Migrated), FormatBytes(ev.Total))
	case event.InProgress:
		if ev.Migrated >= ev.Total {
			p.printProgress()
		}
	}
}

// printProgress writes a progress line unless nothing moved since the last.
func (p *plainPresenter) printProgress() {
	ev := p.last
	if ev.Status != event.InProgress || ev.Migrated == p.printed.Migrated {
		return
	}
	p.printed = ev
	fmt.Fprintf(p.w, "progress: %.0f%% %s/%s %s eta %s\n",
		ev.Fraction()*100,
		FormatBytes(ev.Migrated), FormatBytes(ev.Total),
		FormatRate(p.stats.RollingSpeed(10)),
		FormatETA(p.stats.ETA()),
	)
}

func (p *plainPresenter) Summary() string {
	return CompletionSummary(p.stats.Snapshot(), p.failed)
}
