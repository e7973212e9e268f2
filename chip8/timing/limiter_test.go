package timing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameDuration(t *testing.T) {
	assert.Equal(t, time.Second/60, FrameDuration(60))
	assert.Equal(t, 2*time.Millisecond, FrameDuration(500))
	assert.Equal(t, FrameDuration(DefaultTickRate), FrameDuration(0))
	assert.Equal(t, FrameDuration(DefaultTickRate), FrameDuration(-5))
}

func TestNewLimiter(t *testing.T) {
	testCases := []struct {
		kind string
		want any
	}{
		{KindAdaptive, &AdaptiveLimiter{}},
		{"", &AdaptiveLimiter{}},
		{KindTicker, &TickerLimiter{}},
		{KindNone, &noOpLimiter{}},
	}
	for _, tC := range testCases {
		t.Run(tC.kind, func(t *testing.T) {
			l, err := NewLimiter(tC.kind, 60)
			require.NoError(t, err)
			assert.IsType(t, tC.want, l)
			if ticker, ok := l.(*TickerLimiter); ok {
				ticker.Stop()
			}
		})
	}

	_, err := NewLimiter("turbo", 60)
	assert.ErrorContains(t, err, "turbo")
}

func TestAdaptiveLimiter_Paces(t *testing.T) {
	l := NewAdaptiveLimiter(200)

	start := time.Now()
	for i := 0; i < 5; i++ {
		l.WaitForNextFrame()
	}
	// the first frame is due immediately, the next four are 5ms apart
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestAdaptiveLimiter_ResetsWhenBehind(t *testing.T) {
	l := NewAdaptiveLimiter(1000)
	l.deadline = time.Now().Add(-time.Second)

	l.WaitForNextFrame()

	assert.True(t, l.deadline.After(time.Now().Add(-10*time.Millisecond)))
}

func TestTickerLimiter(t *testing.T) {
	l := NewTickerLimiter(500)
	defer l.Stop()

	start := time.Now()
	l.WaitForNextFrame()
	l.WaitForNextFrame()
	assert.GreaterOrEqual(t, time.Since(start), 3*time.Millisecond)

	l.Reset()
	l.WaitForNextFrame()
}

func TestNoOpLimiter(t *testing.T) {
	l := NewNoOpLimiter()
	start := time.Now()
	for i := 0; i < 1000; i++ {
		l.WaitForNextFrame()
	}
	l.Reset()
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}
