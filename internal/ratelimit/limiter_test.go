package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(limit int, window time.Duration) (*Limiter, *time.Time) {
	l := NewLimiter(limit, window)
	current := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return current }
	return l, &current
}

func TestAllow_SlidingWindow(t *testing.T) {
	l, current := newTestLimiter(3, 60*time.Second)

	for i := 0; i < 3; i++ {
		require.NoError(t, l.Allow("ingest", "10.0.0.1"))
		*current = current.Add(time.Second)
	}

	// 4th within the window is rejected
	err := l.Allow("ingest", "10.0.0.1")
	var rateErr *Error
	require.ErrorAs(t, err, &rateErr)
	assert.Equal(t, "ingest", rateErr.Bucket)

	// once the window fully elapses, admission succeeds again
	*current = current.Add(61 * time.Second)
	require.NoError(t, l.Allow("ingest", "10.0.0.1"))
}

func TestAllow_RejectionLeavesHistoryUnchanged(t *testing.T) {
	l, current := newTestLimiter(2, 60*time.Second)

	require.NoError(t, l.Allow("ingest", "c"))
	require.NoError(t, l.Allow("ingest", "c"))

	// repeated rejections must not extend the occupied window
	for i := 0; i < 5; i++ {
		require.Error(t, l.Allow("ingest", "c"))
		*current = current.Add(time.Second)
	}

	*current = current.Add(56 * time.Second)
	require.NoError(t, l.Allow("ingest", "c"))
}

func TestAllow_IndependentKeys(t *testing.T) {
	l, _ := newTestLimiter(1, time.Minute)

	require.NoError(t, l.Allow("ingest", "a"))
	require.NoError(t, l.Allow("ingest", "b"))
	require.NoError(t, l.Allow("export", "a"))
	require.Error(t, l.Allow("ingest", "a"))
}
