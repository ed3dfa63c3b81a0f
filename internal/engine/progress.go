package engine

import (
	"github.com/bamsammich/dirmigrate/internal/event"
)

// ProgressFunc receives progress reports. It is called with the engine's
// progress lock held and must not call back into the Migrator.
type ProgressFunc func(event.Progress)

// report sends the current counters. Callers hold m.mu.
func (m *Migrator) report(status event.Status) {
	now := m.now()
	m.lastReport = now
	m.progress(event.Progress{
		Status:    status,
		Migrated:  m.migrated,
		Total:     m.total,
		Timestamp: now,
	})
}

// addMigrated counts n bytes as moved and reports IN_PROGRESS at most once
// per ProgressInterval.
func (m *Migrator) addMigrated(n int64) {
	if n <= 0 {
		return
	}
	m.stats.AddBytesMigrated(n)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.migrated += n
	if m.now().Sub(m.lastReport) < m.cfg.ProgressInterval {
		return
	}
	m.report(event.InProgress)
}

func (m *Migrator) reportStatus(status event.Status) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.report(status)
}

// reportDone reports one last IN_PROGRESS update at 100%.
func (m *Migrator) reportDone() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.migrated = max(m.migrated, m.total)
	m.report(event.InProgress)
}
