package crawl_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/scout"
	"github.com/fwojciec/scout/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainLimiter(t *testing.T) {
	t.Parallel()

	t.Run("implements scout.DomainLimiter interface", func(t *testing.T) {
		t.Parallel()
		var _ scout.DomainLimiter = crawl.NewDomainLimiter(1)
	})

	t.Run("first request to a host is immediate", func(t *testing.T) {
		t.Parallel()

		limiter := crawl.NewDomainLimiter(10)

		start := time.Now()
		require.NoError(t, limiter.Wait(context.Background(), "www.indeed.com"))
		assert.Less(t, time.Since(start), 50*time.Millisecond)
	})

	t.Run("spaces requests to the same host", func(t *testing.T) {
		t.Parallel()

		limiter := crawl.NewDomainLimiter(10) // 100ms between requests

		require.NoError(t, limiter.Wait(context.Background(), "www.indeed.com"))

		start := time.Now()
		require.NoError(t, limiter.Wait(context.Background(), "www.indeed.com"))
		assert.GreaterOrEqual(t, time.Since(start), 80*time.Millisecond)
	})

	t.Run("hosts are limited independently", func(t *testing.T) {
		t.Parallel()

		limiter := crawl.NewDomainLimiter(10)

		require.NoError(t, limiter.Wait(context.Background(), "www.indeed.com"))

		start := time.Now()
		require.NoError(t, limiter.Wait(context.Background(), "www.linkedin.com"))
		assert.Less(t, time.Since(start), 50*time.Millisecond)
	})

	t.Run("burst allows several immediate requests", func(t *testing.T) {
		t.Parallel()

		limiter := crawl.NewDomainLimiter(1, crawl.WithBurst(3))

		start := time.Now()
		for range 3 {
			require.NoError(t, limiter.Wait(context.Background(), "www.udemy.com"))
		}
		assert.Less(t, time.Since(start), 50*time.Millisecond)
	})

	t.Run("zero rate does not limit", func(t *testing.T) {
		t.Parallel()

		for _, rps := range []float64{0, -1} {
			limiter := crawl.NewDomainLimiter(rps)
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			for range 5 {
				require.NoError(t, limiter.Wait(ctx, "www.indeed.com"))
			}
			cancel()
		}
	})

	t.Run("returns error when context expires", func(t *testing.T) {
		t.Parallel()

		limiter := crawl.NewDomainLimiter(1)
		require.NoError(t, limiter.Wait(context.Background(), "www.edx.org"))

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		assert.Error(t, limiter.Wait(ctx, "www.edx.org"))
	})

	t.Run("is safe for concurrent use", func(t *testing.T) {
		t.Parallel()

		limiter := crawl.NewDomainLimiter(100)

		var wg sync.WaitGroup
		var completed atomic.Int32
		for range 5 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if limiter.Wait(context.Background(), "www.coursera.org") == nil {
					completed.Add(1)
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, int32(5), completed.Load())
	})
}
