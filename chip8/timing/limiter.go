package timing

import (
	"fmt"
	"time"
)

// Limiter controls the tick rate of the emulation loop.
type Limiter interface {
	// WaitForNextFrame blocks until it's time for the next frame.
	// Returns immediately if timing is behind schedule.
	WaitForNextFrame()

	// Reset resets the timing state, useful after pauses.
	Reset()
}

// NewNoOpLimiter returns a limiter that doesn't limit (for headless mode).
func NewNoOpLimiter() Limiter {
	return &noOpLimiter{}
}

type noOpLimiter struct{}

func (n *noOpLimiter) WaitForNextFrame() {}
func (n *noOpLimiter) Reset()            {}

// DefaultTickRate is the conventional CHIP-8 timer rate, one step per frame.
const DefaultTickRate = 60.0

// FrameDuration returns the duration of one frame at the given rate in Hz.
// Non-positive rates fall back to DefaultTickRate.
func FrameDuration(hz float64) time.Duration {
	if hz <= 0 {
		hz = DefaultTickRate
	}
	return time.Duration(float64(time.Second) / hz)
}

// Limiter kinds accepted by NewLimiter.
const (
	KindAdaptive = "adaptive"
	KindTicker   = "ticker"
	KindNone     = "none"
)

// NewLimiter builds a limiter by name running at hz frames per second.
func NewLimiter(kind string, hz float64) (Limiter, error) {
	switch kind {
	case KindAdaptive, "":
		return NewAdaptiveLimiter(hz), nil
	case KindTicker:
		return NewTickerLimiter(hz), nil
	case KindNone:
		return NewNoOpLimiter(), nil
	}
	return nil, fmt.Errorf("unknown limiter %q (want %s, %s or %s)", kind, KindAdaptive, KindTicker, KindNone)
}
