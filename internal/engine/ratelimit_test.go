package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIOLimiter(t *testing.T) {
	t.Parallel()

	t.Run("burst capped to rate when rate < 1MB", func(t *testing.T) {
		t.Parallel()
		lim := NewIOLimiter(1024)
		assert.Equal(t, 1024, lim.Burst())
	})

	t.Run("burst is 1MB when rate >= 1MB", func(t *testing.T) {
		t.Parallel()
		lim := NewIOLimiter(10 * 1024 * 1024)
		assert.Equal(t, 1<<20, lim.Burst())
	})
}

func TestWaitN(t *testing.T) {
	t.Parallel()

	t.Run("nil limiter never blocks", func(t *testing.T) {
		t.Parallel()
		require.NoError(t, waitN(context.Background(), nil, 1<<40))
	})

	t.Run("requests larger than the burst are split", func(t *testing.T) {
		t.Parallel()
		lim := NewIOLimiter(64 << 20)
		// Ten bursts at 64 MB/s is well under a second.
		require.NoError(t, waitN(context.Background(), lim, 10<<20))
	})

	t.Run("enforces rate limit", func(t *testing.T) {
		t.Parallel()
		// 10 KB at 5 KB/s should take ~1s after the first burst.
		lim := NewIOLimiter(5 * 1024)
		start := time.Now()
		require.NoError(t, waitN(context.Background(), lim, 10*1024))
		assert.Greater(t, time.Since(start), 500*time.Millisecond,
			"rate limiter should hold the copy to ~5KB/s")
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()
		lim := NewIOLimiter(1024) // 1 KB/s, very slow
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		assert.Error(t, waitN(ctx, lim, 1<<20))
	})
}

func TestMigrate_IOLimit(t *testing.T) {
	f := newFixture(t)
	f.write("f", randBytes(1, 4*testChunk), 0o644)

	require.NoError(t, f.run(func(c *Config) { c.IOLimit = 1 << 20 }))
	assert.Len(t, f.readDst("f"), 4*testChunk)
}
