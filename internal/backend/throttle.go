package backend

import (
	"context"
	"time"
)

// settleGate spaces successive listings of the same root so that a burst
// of filesystem changes costs one directory read per settle period.
type settleGate struct {
	period time.Duration
	last   time.Time
	now    func() time.Time
}

func newSettleGate(period time.Duration) *settleGate {
	return &settleGate{period: period, now: time.Now}
}

// wait blocks until the settle period since the previous pass has elapsed.
// It reports false when ctx is cancelled first.
func (g *settleGate) wait(ctx context.Context) bool {
	if g == nil || g.period <= 0 {
		return ctx.Err() == nil
	}
	if !g.last.IsZero() {
		if remaining := g.period - g.now().Sub(g.last); remaining > 0 {
			timer := time.NewTimer(remaining)
			select {
			case <-ctx.Done():
				timer.Stop()
				return false
			case <-timer.C:
			}
		}
	}
	g.last = g.now()
	return ctx.Err() == nil
}
