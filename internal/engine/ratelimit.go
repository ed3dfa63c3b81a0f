package engine

import (
	"context"

	"golang.org/x/time/rate"
)

// NewIOLimiter creates a rate.Limiter that caps aggregate copy throughput to
// bytesPerSec. The burst is 1 MB so that a chunk is admitted in a few
// steps rather than one huge wait.
func NewIOLimiter(bytesPerSec int64) *rate.Limiter {
	burst := 1 << 20 // 1 MB
	if bytesPerSec < int64(burst) {
		burst = int(bytesPerSec)
	}
	return rate.NewLimiter(rate.Limit(bytesPerSec), burst)
}

// waitN blocks until limiter admits n bytes. WaitN rejects requests larger
// than the burst, so n is taken in burst-sized pieces. A nil limiter never
// blocks.
func waitN(ctx context.Context, limiter *rate.Limiter, n int64) error {
	if limiter == nil {
		return nil
	}
	burst := int64(limiter.Burst())
	for n > 0 {
		step := min(n, burst)
		if err := limiter.WaitN(ctx, int(step)); err != nil {
			return err
		}
		n -= step
	}
	return nil
}
