package mongo

import (
	"math"
	"math/rand/v2"
	"time"
)

// DefaultRetryInterval is the delay between failed connection attempts.
const DefaultRetryInterval = 5 * time.Second

// BackoffStrategy maps the number of failed attempts to the delay before the
// next one. Implementations must be pure and safe for concurrent use.
type BackoffStrategy interface {
	// NextInterval returns the delay after the given failed attempt.
	// Attempt starts at 1.
	NextInterval(attempt int) time.Duration
}

// BackoffFunc adapts a plain function to BackoffStrategy.
type BackoffFunc func(attempt int) time.Duration

func (f BackoffFunc) NextInterval(attempt int) time.Duration { return f(attempt) }

// FixedBackoff waits the same interval after every failure.
type FixedBackoff struct {
	Interval time.Duration
}

// NextInterval returns Interval for every attempt, or DefaultRetryInterval when unset.
func (f FixedBackoff) NextInterval(attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}
	if f.Interval <= 0 {
		return DefaultRetryInterval
	}
	return f.Interval
}

// LinearBackoff grows the delay by Interval on each failure, capped at MaxInterval.
type LinearBackoff struct {
	Interval    time.Duration
	MaxInterval time.Duration
}

// NextInterval returns min(Interval * attempt, MaxInterval).
func (l LinearBackoff) NextInterval(attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}

	interval := l.Interval
	if interval <= 0 {
		interval = time.Second
	}

	maxInterval := l.MaxInterval
	if maxInterval <= 0 {
		maxInterval = time.Minute
	}

	delay := interval * time.Duration(attempt)
	if delay > maxInterval || delay <= 0 {
		delay = maxInterval
	}
	return delay
}

// ExponentialBackoff multiplies the delay on each failure, with optional jitter.
type ExponentialBackoff struct {
	InitialInterval time.Duration
	MaxInterval     time.Duration
	Multiplier      float64
	JitterFactor    float64
}

// NextInterval returns min(InitialInterval * Multiplier^(attempt-1) * (1 ± JitterFactor), MaxInterval).
func (e ExponentialBackoff) NextInterval(attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}

	initial := e.InitialInterval
	if initial <= 0 {
		initial = time.Second
	}

	maxInterval := e.MaxInterval
	if maxInterval <= 0 {
		maxInterval = time.Minute
	}

	multiplier := e.Multiplier
	if multiplier <= 0 {
		multiplier = 2
	}

	interval := float64(initial) * math.Pow(multiplier, float64(attempt-1))

	if e.JitterFactor > 0 {
		interval *= 1 + (rand.Float64()*2-1)*e.JitterFactor
	}

	if interval > float64(maxInterval) {
		return maxInterval
	}
	return time.Duration(interval)
}

// DefaultBackoff waits DefaultRetryInterval after every failure, forever.
func DefaultBackoff() BackoffStrategy {
	return FixedBackoff{Interval: DefaultRetryInterval}
}
