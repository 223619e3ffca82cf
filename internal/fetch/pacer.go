package fetch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Pacer enforces a pause of at least interval between the end of one piece of
// paced work and the start of the next. Callers bracket the work with Wait and
// Done. The first Wait returns immediately.
type Pacer struct {
	interval time.Duration

	mu      sync.Mutex
	limiter *rate.Limiter
}

// NewPacer returns a pacer for the given interval. A non-positive interval
// disables pacing.
func NewPacer(interval time.Duration) *Pacer {
	return &Pacer{
		interval: interval,
		limiter:  newLimiter(interval),
	}
}

func newLimiter(interval time.Duration) *rate.Limiter {
	if interval <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(interval), 1)
}

// Wait blocks until interval has passed since the last Done.
func (p *Pacer) Wait(ctx context.Context) error {
	if p == nil {
		return nil
	}
	p.mu.Lock()
	limiter := p.limiter
	p.mu.Unlock()

	if err := limiter.Wait(ctx); err != nil {
		return fmt.Errorf("pacer wait: %w", err)
	}
	return nil
}

// Done marks the paced work as finished; the next Wait counts the interval from now.
func (p *Pacer) Done() {
	if p == nil || p.interval <= 0 {
		return
	}
	limiter := newLimiter(p.interval)
	limiter.Allow()

	p.mu.Lock()
	p.limiter = limiter
	p.mu.Unlock()
}

func (p *Pacer) Interval() time.Duration {
	if p == nil {
		return 0
	}
	return p.interval
}
