package timing

import (
	"log/slog"
	"time"
)

const (
	// spinWindow is the tail of each wait spent polling the clock instead of sleeping
	spinWindow = time.Millisecond
	// maxLag is how far behind schedule a frame can be before the schedule restarts
	maxLag = 5 * time.Millisecond
	// driftCheckFrames is how often the schedule is compared against wall time
	driftCheckFrames = 60
)

// AdaptiveLimiter keeps an absolute schedule of frame deadlines, so short
// oversleeps don't accumulate. It sleeps for most of the wait and spins for
// the last millisecond.
type AdaptiveLimiter struct {
	period   time.Duration
	deadline time.Time
	epoch    time.Time
	frames   int64
}

// NewAdaptiveLimiter returns a limiter running at hz frames per second.
// The first frame is due immediately.
func NewAdaptiveLimiter(hz float64) *AdaptiveLimiter {
	l := &AdaptiveLimiter{period: FrameDuration(hz)}
	l.Reset()
	return l
}

// WaitForNextFrame blocks until the current deadline, then schedules the next one.
func (l *AdaptiveLimiter) WaitForNextFrame() {
	now := time.Now()
	remaining := l.deadline.Sub(now)

	if remaining > 2*spinWindow {
		time.Sleep(remaining - spinWindow)
	}
	if remaining > 0 {
		for time.Now().Before(l.deadline) {
		}
	} else if -remaining > maxLag {
		l.deadline = now
	}

	l.deadline = l.deadline.Add(l.period)
	l.frames++

	if l.frames%driftCheckFrames == 0 {
		l.correctDrift()
	}
}

// correctDrift nudges the schedule a tenth of the way towards wall time when
// the two have drifted apart by more than 10ms.
func (l *AdaptiveLimiter) correctDrift() {
	now := time.Now()
	drift := now.Sub(l.deadline)
	if drift.Abs() <= 10*time.Millisecond {
		return
	}

	l.deadline = l.deadline.Add(drift / 10)
	slog.Debug("Frame timing drift correction",
		"drift_ms", drift.Milliseconds(),
		"fps", float64(l.frames)/now.Sub(l.epoch).Seconds())
}

// Reset restarts the schedule from now.
func (l *AdaptiveLimiter) Reset() {
	now := time.Now()
	l.deadline = now
	l.epoch = now
	l.frames = 0
}
