package event

import "time"

// Status is the migration phase reported through the progress callback.
type Status int

const (
	Initializing Status = iota + 1
	InProgress
	Failed
	Success
)

var statusNames = [...]string{
	Initializing: "INITIALIZING",
	InProgress:   "IN_PROGRESS",
	Failed:       "FAILED",
	Success:      "SUCCESS",
}

func (s Status) String() string {
	if s > 0 && int(s) < len(statusNames) {
		return statusNames[s]
	}
	return "UNKNOWN"
}

// Progress is one progress report from the engine.
type Progress struct {
	Status    Status
	Migrated  int64 // bytes moved so far in this run
	Total     int64 // bytes left to move when the run started
	Timestamp time.Time
}

// Fraction returns Migrated/Total in [0, 1]. An empty run is complete.
func (p Progress) Fraction() float64 {
	if p.Total <= 0 {
		return 1
	}
	f := float64(p.Migrated) / float64(p.Total)
	return min(max(f, 0), 1)
}
