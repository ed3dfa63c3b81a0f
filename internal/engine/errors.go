package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
)

var (
	// ErrCancelled is returned when Cancel was called or the context ended.
	// The on-disk state is consistent and the migration can be resumed.
	ErrCancelled = errors.New("migration cancelled")
	// ErrInsufficientSpace is returned before any data moves when the
	// destination cannot hold even one chunk per worker.
	ErrInsufficientSpace = errors.New("not enough free space to begin migration")
	// ErrWorkersExhausted is returned when every worker has stopped while
	// the walker still had jobs to hand out.
	ErrWorkersExhausted = errors.New("all migration workers have stopped")
	// ErrNilCallback is returned by Migrate when no progress callback is given.
	ErrNilCallback = errors.New("progress callback is required")
	// ErrAlreadyRunning is returned when Migrate is called concurrently.
	ErrAlreadyRunning = errors.New("migration already running")
)

// Operation names the step that failed.
type Operation int

const (
	OpOther Operation = iota
	OpStartedMarker
	OpFreeSpace
	OpStat
	OpEnumerate
	OpMkdir
	OpOpenSource
	OpOpenSourceNonFatal
	OpOpenDest
	OpTruncate
	OpSendFile
	OpSync
	OpGetAttribute
	OpSetAttribute
	OpReadLink
	OpCreateLink
	OpDelete
)

var operationNames = [...]string{
	OpOther:              "other",
	OpStartedMarker:      "started-marker",
	OpFreeSpace:          "free-space",
	OpStat:               "stat",
	OpEnumerate:          "enumerate",
	OpMkdir:              "mkdir",
	OpOpenSource:         "open-source",
	OpOpenSourceNonFatal: "open-source-nonfatal",
	OpOpenDest:           "open-destination",
	OpTruncate:           "truncate",
	OpSendFile:           "sendfile",
	OpSync:               "sync",
	OpGetAttribute:       "get-attribute",
	OpSetAttribute:       "set-attribute",
	OpReadLink:           "readlink",
	OpCreateLink:         "create-link",
	OpDelete:             "delete",
}

func (o Operation) String() string {
	if o >= 0 && int(o) < len(operationNames) {
		return operationNames[o]
	}
	return "unknown"
}

// PathClass buckets a failing path by the part of the user's data it sits in.
type PathClass int

const (
	UnderOther PathClass = iota
	UnderAndroidOther
	UnderAndroidCache
	UnderDownloads
	UnderCache
	UnderGCache
)

var pathClassNames = [...]string{
	UnderOther:        "other",
	UnderAndroidOther: "android-other",
	UnderAndroidCache: "android-cache",
	UnderDownloads:    "downloads",
	UnderCache:        "cache",
	UnderGCache:       "gcache",
}

func (c PathClass) String() string {
	if c >= 0 && int(c) < len(pathClassNames) {
		return pathClassNames[c]
	}
	return "unknown"
}

var pathClassPrefixes = []struct {
	prefix string
	class  PathClass
}{
	{"root/android-data", UnderAndroidOther},
	{"user/Downloads", UnderDownloads},
	{"user/Cache", UnderCache},
	{"user/GCache", UnderGCache},
}

// classifyPath maps a path relative to the migration root to its PathClass.
// Android app caches live at
//
//	root/android-data/data/data/<package>/cache
//	root/android-data/data/media/0/Android/data/<package>/cache
func classifyPath(rel string) PathClass {
	m, ok := lo.Find(pathClassPrefixes, func(m struct {
		prefix string
		class  PathClass
	}) bool {
		return strings.HasPrefix(rel, m.prefix+"/")
	})
	if !ok {
		return UnderOther
	}
	if m.class != UnderAndroidOther {
		return m.class
	}

	c := strings.Split(rel, "/")
	switch {
	case len(c) >= 7 && c[2] == "data" && c[3] == "data" && c[5] == "cache":
		return UnderAndroidCache
	case len(c) >= 10 && c[2] == "data" && c[3] == "media" && c[4] == "0" &&
		c[5] == "Android" && c[6] == "data" && c[8] == "cache":
		return UnderAndroidCache
	}
	return UnderAndroidOther
}

// OpError records which step failed on which path.
type OpError struct {
	Op    Operation
	Path  string // relative to the migration root
	Class PathClass
	Err   error
}

func newOpError(op Operation, rel string, err error) *OpError {
	return &OpError{Op: op, Path: rel, Class: classifyPath(rel), Err: err}
}

func (e *OpError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *OpError) Unwrap() error { return e.Err }
