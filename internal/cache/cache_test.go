package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"catalogdash/internal/pkg/clock"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func counting(n *atomic.Int32, val string) func(context.Context) (string, error) {
	return func(context.Context) (string, error) {
		n.Add(1)
		return val, nil
	}
}

func TestCache_ServesSnapshotWithinWindow(t *testing.T) {
	clk := clock.NewMockClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	c := New[string](5*time.Minute, clk)

	var loads atomic.Int32
	for i := 0; i < 3; i++ {
		v, err := c.Get(context.Background(), "all", counting(&loads, "v1"))
		require.NoError(t, err)
		assert.Equal(t, "v1", v)
		clk.Advance(time.Minute)
	}
	assert.Equal(t, int32(1), loads.Load())
}

func TestCache_ExpiryTriggersSingleReload(t *testing.T) {
	clk := clock.NewMockClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	c := New[string](5*time.Minute, clk)

	var loads atomic.Int32
	_, err := c.Get(context.Background(), "all", counting(&loads, "v1"))
	require.NoError(t, err)

	clk.Advance(5 * time.Minute)

	v, err := c.Get(context.Background(), "all", counting(&loads, "v2"))
	require.NoError(t, err)
	assert.Equal(t, "v2", v)

	v, err = c.Get(context.Background(), "all", counting(&loads, "v3"))
	require.NoError(t, err)
	assert.Equal(t, "v2", v)
	assert.Equal(t, int32(2), loads.Load())
}

func TestCache_ZeroTTLNeverExpires(t *testing.T) {
	clk := clock.NewMockClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	c := New[string](0, clk)

	var loads atomic.Int32
	_, err := c.Get(context.Background(), "vocab", counting(&loads, "v1"))
	require.NoError(t, err)

	clk.Advance(24 * 365 * time.Hour)
	v, err := c.Get(context.Background(), "vocab", counting(&loads, "v2"))
	require.NoError(t, err)
	assert.Equal(t, "v1", v)
	assert.Equal(t, int32(1), loads.Load())
}

func TestCache_ErrorsAreNotCached(t *testing.T) {
	c := New[string](time.Minute, nil)
	boom := errors.New("boom")

	_, err := c.Get(context.Background(), "k", func(context.Context) (string, error) {
		return "", boom
	})
	assert.ErrorIs(t, err, boom)

	var loads atomic.Int32
	v, err := c.Get(context.Background(), "k", counting(&loads, "ok"))
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
	assert.Equal(t, int32(1), loads.Load())
}

func TestCache_ConcurrentMissesShareOneLoad(t *testing.T) {
	c := New[string](time.Minute, nil)

	var loads atomic.Int32
	release := make(chan struct{})
	load := func(context.Context) (string, error) {
		loads.Add(1)
		<-release
		return "shared", nil
	}

	var wg sync.WaitGroup
	results := make([]string, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := c.Get(context.Background(), "all", load)
			assert.NoError(t, err)
			results[i] = v
		}(i)
	}

	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), loads.Load())
	for _, v := range results {
		assert.Equal(t, "shared", v)
	}
}

func TestCache_CancelledCallerDoesNotFailOthers(t *testing.T) {
	c := New[string](time.Minute, nil)

	var once sync.Once
	started := make(chan struct{})
	release := make(chan struct{})
	load := func(ctx context.Context) (string, error) {
		once.Do(func() { close(started) })
		select {
		case <-release:
			return "shared", nil
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := c.Get(ctx, "all", load)
		firstErr <- err
	}()
	<-started

	type result struct {
		v   string
		err error
	}
	second := make(chan result, 1)
	go func() {
		v, err := c.Get(context.Background(), "all", load)
		second <- result{v, err}
	}()
	time.Sleep(20 * time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-firstErr, context.Canceled)

	close(release)
	res := <-second
	require.NoError(t, res.err)
	assert.Equal(t, "shared", res.v)

	v, err := c.Get(context.Background(), "all", load)
	require.NoError(t, err)
	assert.Equal(t, "shared", v)
}

func TestCache_StoredAt(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c := New[int](time.Minute, clock.NewMockClock(start))

	_, ok := c.StoredAt("k")
	assert.False(t, ok)

	_, err := c.Get(context.Background(), "k", func(context.Context) (int, error) { return 1, nil })
	require.NoError(t, err)

	at, ok := c.StoredAt("k")
	assert.True(t, ok)
	assert.Equal(t, start, at)
}
