package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/bamsammich/dirmigrate/internal/event"
	"github.com/bamsammich/dirmigrate/internal/stats"
)

// ANSI escape sequences.
const (
	ansiDim   = "\033[2m"
	ansiReset = "\033[0m"
)

// hudPresenter draws a 2-line HUD on the terminal that redraws in place.
type hudPresenter struct {
	w     io.Writer
	stats stats.ReadTicker
	width int

	// Internal state.
	last         event.Progress
	failed       bool
	hudDrawn     bool
	hudLineCount int
	lastHUDDraw  time.Time
}

const (
	sparklineWidth  = 20
	minBarWidth     = 10
	maxBarWidth     = 40
	hudFixedColumns = 40 // everything on the bar line except the bar
	hudMinInterval  = 50 * time.Millisecond
)

func (p *hudPresenter) Run(events <-chan event.Progress) error {
	// Fire first tick quickly to seed the ring buffer with initial speed data,
	// then switch to 1s interval.
	secTicker := time.NewTicker(250 * time.Millisecond)
	defer secTicker.Stop()
	firstTickDone := false

	// Keeps speed and ETA moving between reports.
	redrawTicker := time.NewTicker(100 * time.Millisecond)
	defer redrawTicker.Stop()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				p.clearHUD()
				return nil
			}
			p.handleEvent(ev)
			p.maybeDrawHUD()

		case <-redrawTicker.C:
			p.drawHUD()

		case <-secTicker.C:
			p.stats.Tick()
			if !firstTickDone {
				firstTickDone = true
				secTicker.Reset(time.Second)
			}
		}
	}
}

func (p *hudPresenter) handleEvent(ev event.Progress) {
	p.last = ev
	switch ev.Status {
	case event.Initializing:
		p.clearHUD()
		fmt.Fprintf(p.w, "%smigrating %s%s\n", ansiDim, FormatBytes(ev.Total), ansiReset)
	case event.Failed:
		p.failed = true
		p.clearHUD()
		fmt.Fprintf(p.w, "✗  failed at %.0f%%  %s / %s\n",
			ev.Fraction()*100, FormatBytes(ev.Migrated), FormatBytes(ev.Total))
	}
}

// maybeDrawHUD redraws the HUD if enough time has passed since the last draw.
func (p *hudPresenter) maybeDrawHUD() {
	if time.Since(p.lastHUDDraw) < hudMinInterval {
		return
	}
	p.drawHUD()
}

func (p *hudPresenter) barWidth() int {
	w := p.width
	if w <= 0 {
		w = 80
	}
	return min(max(w-hudFixedColumns, minBarWidth), maxBarWidth)
}

func (p *hudPresenter) drawHUD() {
	if p.last.Status == 0 || p.failed {
		return
	}
	p.clearHUD()

	ev := p.last
	speed := p.stats.RollingSpeed(10)
	spark := Sparkline(p.stats.SparklineData(sparklineWidth), sparklineWidth)

	// Line 1: throughput sparkline + speed + byte totals.
	fmt.Fprintf(p.w, "       %s   %s   %s / %s\n",
		spark, FormatRate(speed), FormatBytes(ev.Migrated), FormatBytes(ev.Total))

	// Line 2: progress bar + phase + eta.
	pct := ev.Fraction()
	fmt.Fprintf(p.w, " %3.0f%%  %s   %s   eta %s\n",
		pct*100, ProgressBar(pct, p.barWidth()),
		strings.ToLower(ev.Status.String()), FormatETA(p.stats.ETA()))

	p.hudDrawn = true
	p.hudLineCount = 2
	p.lastHUDDraw = time.Now()
}

func (p *hudPresenter) clearHUD() {
	if !p.hudDrawn {
		return
	}
	// Move cursor up N lines and clear to end of screen.
	fmt.Fprintf(p.w, "\033[%dA\033[J", p.hudLineCount)
	p.hudDrawn = false
}

func (p *hudPresenter) Summary() string {
	return CompletionSummary(p.stats.Snapshot(), p.failed)
}
