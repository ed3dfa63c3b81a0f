package ui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bamsammich/dirmigrate/internal/event"
	"github.com/bamsammich/dirmigrate/internal/stats"
)

func TestHudPresenterDraw(t *testing.T) {
	var out bytes.Buffer
	p := &hudPresenter{w: &out, stats: stats.NewCollector(), width: 60}

	p.handleEvent(event.Progress{Status: event.InProgress, Migrated: 512, Total: 1024})
	p.drawHUD()

	output := out.String()
	assert.Contains(t, output, " 50%  ▪▪▪▪▪▪▪▪▪▪□□□□□□□□□□   in_progress   eta --")
	assert.Contains(t, output, "512 B / 1.0 KiB")
	assert.True(t, p.hudDrawn)

	// A second draw moves the cursor back over the first.
	out.Reset()
	p.drawHUD()
	assert.Contains(t, out.String(), "\033[2A\033[J")
}

func TestHudPresenterRun(t *testing.T) {
	var out bytes.Buffer
	p := &hudPresenter{w: &out, stats: stats.NewCollector()}

	events := make(chan event.Progress, 4)
	events <- event.Progress{Status: event.Initializing, Total: 4096}
	events <- event.Progress{Status: event.InProgress, Migrated: 4096, Total: 4096}
	close(events)

	require.NoError(t, p.Run(events))
	assert.Contains(t, out.String(), "migrating 4.0 KiB")
	assert.False(t, p.hudDrawn, "HUD cleared on exit")
	assert.Contains(t, p.Summary(), "done ✓")
}

func TestHudPresenterFailed(t *testing.T) {
	var out bytes.Buffer
	p := &hudPresenter{w: &out, stats: stats.NewCollector()}

	p.handleEvent(event.Progress{Status: event.InProgress, Migrated: 10, Total: 100})
	p.drawHUD()
	p.handleEvent(event.Progress{Status: event.Failed, Migrated: 10, Total: 100})

	assert.Contains(t, out.String(), "✗  failed at 10%")
	assert.False(t, p.hudDrawn)

	// No HUD after a failure.
	out.Reset()
	p.drawHUD()
	assert.Empty(t, out.String())
	assert.Contains(t, p.Summary(), "done ✗")
}

func TestHudBarWidth(t *testing.T) {
	assert.Equal(t, 40, (&hudPresenter{}).barWidth())
	assert.Equal(t, 20, (&hudPresenter{width: 60}).barWidth())
	assert.Equal(t, minBarWidth, (&hudPresenter{width: 20}).barWidth())
	assert.Equal(t, maxBarWidth, (&hudPresenter{width: 200}).barWidth())
}
