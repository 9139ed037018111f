package commands

import (
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/rios0rios0/cvefinder/internal/domain/entities"
)

const defaultMaxInterval = 30 * time.Second

// RetryPolicy bounds the generate-and-extract loop. MaxAttempts 0 retries until the
// model yields a patch or the context ends.
type RetryPolicy struct {
	MaxAttempts int
	BackOff     backoff.BackOff
}

// NewRetryPolicy builds the policy from configuration. A zero initial interval means
// no delay between attempts.
func NewRetryPolicy(cfg entities.RetryConfig) RetryPolicy {
	if cfg.InitialInterval <= 0 {
		return RetryPolicy{MaxAttempts: cfg.MaxAttempts, BackOff: &backoff.ZeroBackOff{}}
	}

	exponential := backoff.NewExponentialBackOff()
	exponential.InitialInterval = cfg.InitialInterval
	exponential.MaxInterval = cfg.MaxInterval
	if exponential.MaxInterval <= 0 {
		exponential.MaxInterval = defaultMaxInterval
	}
	return RetryPolicy{MaxAttempts: cfg.MaxAttempts, BackOff: exponential}
}

// exhausted reports whether another attempt is allowed after attempts were made.
func (it RetryPolicy) exhausted(attempts int) bool {
	return it.MaxAttempts > 0 && attempts >= it.MaxAttempts
}

// nextDelay returns the wait before the next attempt, or false when the back-off gave up.
func (it RetryPolicy) nextDelay() (time.Duration, bool) {
	if it.BackOff == nil {
		return 0, true
	}
	delay := it.BackOff.NextBackOff()
	if delay == backoff.Stop {
		return 0, false
	}
	return delay, true
}

func (it RetryPolicy) reset() {
	if it.BackOff != nil {
		it.BackOff.Reset()
	}
}
