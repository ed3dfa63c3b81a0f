package ui

import "github.com/bamsammich/dirmigrate/internal/event"

// quietPresenter consumes reports but produces no output.
type quietPresenter struct{}

func (p *quietPresenter) Run(events <-chan event.Progress) error {
	for range events {
		// Counters live on the collector; nothing to render.
	}
	return nil
}

func (p *quietPresenter) Summary() string {
	return ""
}
