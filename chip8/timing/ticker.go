package timing

import "time"

// TickerLimiter paces frames off a time.Ticker. Missed ticks are dropped by the
// runtime, so a slow frame is followed by one that doesn't wait at all.
type TickerLimiter struct {
	ticker *time.Ticker
	period time.Duration
}

// NewTickerLimiter starts a ticker firing hz times per second. Call Stop when done.
func NewTickerLimiter(hz float64) *TickerLimiter {
	l := &TickerLimiter{period: FrameDuration(hz)}
	l.ticker = time.NewTicker(l.period)
	return l
}

// WaitForNextFrame blocks until the next tick.
func (l *TickerLimiter) WaitForNextFrame() {
	<-l.ticker.C
}

// Reset restarts the period from now, dropping a pending tick if any.
func (l *TickerLimiter) Reset() {
	select {
	case <-l.ticker.C:
	default:
	}
	l.ticker.Reset(l.period)
}

// Stop releases the underlying ticker.
func (l *TickerLimiter) Stop() {
	l.ticker.Stop()
}
