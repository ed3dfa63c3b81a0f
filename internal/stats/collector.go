package stats

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

const ringSize = 60

// Reader is the read side of a Collector.
type Reader interface {
	Snapshot() Snapshot
	RollingSpeed(seconds int) float64
	SparklineData(n int) []float64
	ETA() time.Duration
}

// ReadTicker is a Reader that presenters also drive once per second.
type ReadTicker interface {
	Reader
	Tick()
}

// Collector tracks migration statistics using lock-free atomic counters.
type Collector struct {
	filesMigrated    atomic.Int64
	dirsMigrated     atomic.Int64
	symlinksMigrated atomic.Int64
	filesSkipped     atomic.Int64
	entriesRetained  atomic.Int64
	otherIgnored     atomic.Int64
	bytesMigrated    atomic.Int64
	bytesTotal       atomic.Int64
	startTime        time.Time

	// Ring buffer, written only by Tick.
	mu         sync.Mutex
	throughput [ringSize]int64 // bytes delta per second
	ringIdx    int
	ringCount  int // samples written so far, capped at ringSize
	lastBytes  int64
}

// NewCollector creates a Collector with startTime set to now.
func NewCollector() *Collector {
	return &Collector{startTime: time.Now()}
}

// Snapshot is a point-in-time read of all counters.
type Snapshot struct {
	FilesMigrated    int64
	DirsMigrated     int64
	SymlinksMigrated int64
	FilesSkipped     int64
	EntriesRetained  int64
	OtherIgnored     int64
	BytesMigrated    int64
	BytesTotal       int64
	Elapsed          time.Duration
}

// SetBytesTotal records the size pass result.
func (c *Collector) SetBytesTotal(n int64) { c.bytesTotal.Store(n) }

func (c *Collector) AddFilesMigrated(n int64)    { c.filesMigrated.Add(n) }
func (c *Collector) AddDirsMigrated(n int64)     { c.dirsMigrated.Add(n) }
func (c *Collector) AddSymlinksMigrated(n int64) { c.symlinksMigrated.Add(n) }
func (c *Collector) AddFilesSkipped(n int64)     { c.filesSkipped.Add(n) }
func (c *Collector) AddEntriesRetained(n int64)  { c.entriesRetained.Add(n) }
func (c *Collector) AddOtherIgnored(n int64)     { c.otherIgnored.Add(n) }
func (c *Collector) AddBytesMigrated(n int64)    { c.bytesMigrated.Add(n) }

// Snapshot returns a point-in-time read of all counters.
func (c *Collector) Snapshot() Snapshot {
	return Snapshot{
		FilesMigrated:    c.filesMigrated.Load(),
		DirsMigrated:     c.dirsMigrated.Load(),
		SymlinksMigrated: c.symlinksMigrated.Load(),
		FilesSkipped:     c.filesSkipped.Load(),
		EntriesRetained:  c.entriesRetained.Load(),
		OtherIgnored:     c.otherIgnored.Load(),
		BytesMigrated:    c.bytesMigrated.Load(),
		BytesTotal:       c.bytesTotal.Load(),
		Elapsed:          c.Elapsed(),
	}
}

// Tick snapshots the byte delta into the ring buffer. Called 1/sec by the presenter.
func (c *Collector) Tick() {
	current := c.bytesMigrated.Load()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.throughput[c.ringIdx] = current - c.lastBytes
	c.lastBytes = current
	c.ringIdx = (c.ringIdx + 1) % ringSize
	if c.ringCount < ringSize {
		c.ringCount++
	}
}

// RollingSpeed returns average bytes/sec over the last n seconds of samples.
func (c *Collector) RollingSpeed(seconds int) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	count := min(seconds, c.ringCount)
	if count <= 0 {
		return 0
	}
	var sum int64
	for i := range count {
		sum += c.throughput[(c.ringIdx-1-i+ringSize)%ringSize]
	}
	return float64(sum) / float64(count)
}

// SparklineData returns up to n of the latest per-second byte deltas,
// oldest first.
func (c *Collector) SparklineData(n int) []float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	count := min(n, c.ringCount)
	if count <= 0 {
		return nil
	}
	data := make([]float64, count)
	for i := range count {
		data[i] = float64(c.throughput[(c.ringIdx-count+i+ringSize)%ringSize])
	}
	return data
}

// ETA estimates remaining time based on rolling speed and remaining bytes.
func (c *Collector) ETA() time.Duration {
	speed := c.RollingSpeed(10)
	if speed <= 0 {
		return 0
	}
	remaining := c.bytesTotal.Load() - c.bytesMigrated.Load()
	if remaining <= 0 {
		return 0
	}
	return time.Duration(float64(remaining)/speed) * time.Second
}

// Elapsed returns time since collector creation.
func (c *Collector) Elapsed() time.Duration {
	return time.Since(c.startTime)
}

func (s Snapshot) String() string {
	return fmt.Sprintf(
		"files=%d dirs=%d symlinks=%d skipped=%d retained=%d ignored=%d bytes=%d/%d",
		s.FilesMigrated, s.DirsMigrated, s.SymlinksMigrated, s.FilesSkipped,
		s.EntriesRetained, s.OtherIgnored, s.BytesMigrated, s.BytesTotal,
	)
}

// FormatBytes returns a human-readable byte count.
func FormatBytes(b int64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}
