// Package pacer provides a call-counting breather used to stay under venue
// rate limits during long sequential fetch loops.
package pacer

import (
	"context"
	"time"
)

const (
	// DefaultEvery is how many consecutive calls go through before a pause.
	DefaultEvery = 5
	// DefaultCooldown is how long each pause lasts.
	DefaultCooldown = 12 * time.Second
)

// Pacer pauses for a fixed cooldown after every N calls to Breathe. It is a
// backpressure valve against HTTP 429 responses and bans, not a retry or
// correctness mechanism. A Pacer is not safe for concurrent use; the core
// issues venue calls strictly sequentially.
type Pacer struct {
	every    int
	cooldown time.Duration
	calls    int
}

// Option configures a Pacer.
type Option func(*Pacer)

// WithEvery sets how many calls pass between pauses. Zero or negative
// disables pacing entirely.
func WithEvery(n int) Option {
	return func(p *Pacer) {
		p.every = n
	}
}

// WithCooldown sets the pause duration.
func WithCooldown(d time.Duration) Option {
	return func(p *Pacer) {
		p.cooldown = d
	}
}

// New creates a Pacer with default values and optional overrides.
func New(opts ...Option) *Pacer {
	p := &Pacer{
		every:    DefaultEvery,
		cooldown: DefaultCooldown,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Breathe is called once before each paced network call. After every N
// calls it blocks for the cooldown, or returns early with the context's
// error if the context ends first.
func (p *Pacer) Breathe(ctx context.Context) error {
	if p.every > 0 && p.calls > 0 && p.calls%p.every == 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(p.cooldown):
		}
	}
	p.calls++
	return nil
}
