package retry

import (
	"math"
	"math/rand/v2"
	"time"
)

// Backoff computes the delay before the next retry attempt.
type Backoff interface {
	// Delay returns the wait before retry attempt+1. attempt is zero-indexed:
	// 0 is the delay after the first failed call.
	Delay(attempt uint) time.Duration
}

// ExpBackoff grows the delay exponentially: Base * Factor^attempt, clamped
// to [Base, Max].
type ExpBackoff struct {
	Base   time.Duration
	Max    time.Duration
	Factor float64
}

// Delay implements Backoff.
func (b ExpBackoff) Delay(attempt uint) time.Duration {
	d := time.Duration(float64(b.Base) * math.Pow(b.Factor, float64(attempt)))

	if d < b.Base {
		return b.Base
	}

	if d > b.Max {
		return b.Max
	}

	return d
}

// ConstantBackoff waits the same duration between every attempt.
type ConstantBackoff time.Duration

// Delay implements Backoff.
func (b ConstantBackoff) Delay(uint) time.Duration {
	return time.Duration(b)
}

// Jitter randomizes a backoff delay so that many clients retrying at once do
// not synchronize. The value is the random share of the delay: 0 keeps the
// delay exact, 1 makes it fully random in [0, delay), values in between blend
// the two. Negative values disable jitter.
type Jitter float64

const (
	// EqualJitter blends half deterministic delay with half randomness.
	EqualJitter Jitter = 0.5
	// FullJitter picks a uniformly random delay in [0, delay).
	FullJitter Jitter = 1.0
	// WithoutJitter keeps the computed delay exactly.
	WithoutJitter Jitter = -1.0
)

func (j Jitter) apply(d time.Duration) time.Duration {
	if j <= 0.0 {
		return d
	}

	//nolint:gosec // G404: jitter does not need a cryptographic source.
	r := rand.Float64() * float64(d)

	if j < 1.0 {
		r = float64(j)*r + (1.0-float64(j))*float64(d)
	}

	return time.Duration(r)
}
