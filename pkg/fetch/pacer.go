package fetch

import (
	"context"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"
)

// Pacer spaces outbound requests by sleeping for a uniformly random duration
// drawn from [minDelay, maxDelay] between page follows
type Pacer struct {
	minDelay time.Duration
	maxDelay time.Duration
	rng      *rand.Rand // Injected so tests can seed it
	sleep    func(ctx context.Context, d time.Duration)
	log      *logrus.Logger
}

// NewPacer creates a Pacer
func NewPacer(minDelay, maxDelay time.Duration, rng *rand.Rand, log *logrus.Logger) *Pacer {
	return &Pacer{
		minDelay: minDelay,
		maxDelay: maxDelay,
		rng:      rng,
		sleep:    sleepWithContext,
		log:      log,
	}
}

// Wait blocks for a random duration within the configured range.
// Returns early if ctx is cancelled during the sleep.
func (p *Pacer) Wait(ctx context.Context) {
	delay := p.minDelay
	if span := p.maxDelay - p.minDelay; span > 0 {
		delay += time.Duration(p.rng.Int63n(int64(span) + 1))
	}
	if delay <= 0 {
		return
	}

	p.log.WithField("sleep", delay).Debug("Pacing before next request")
	p.sleep(ctx, delay)
}

// sleepWithContext waits for d or until ctx is done, whichever comes first
func sleepWithContext(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}
