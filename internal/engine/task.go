package engine

import "github.com/bamsammich/dirmigrate/internal/platform"

// Job is one file or symlink handed to a worker.
type Job struct {
	Rel   string // path relative to the migration roots
	Entry platform.Entry
}

// dirState tracks a directory whose children are still in flight.
type dirState struct {
	entry    platform.Entry
	pending  int  // children not yet finished, plus one while the walker is listing
	retained bool // something below stays in the source
}
