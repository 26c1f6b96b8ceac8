package guardrails

import (
	"context"
	"time"
)

// WithRun returns a context bounded by the per-run budget d without extending
// any parent deadline; zero means no extra limit
func WithRun(parent context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	return withChildTimeout(parent, d)
}

// Remaining returns the time until the deadline on ctx, or zero when none is set or it has passed
func Remaining(ctx context.Context) time.Duration {
	if dl, ok := ctx.Deadline(); ok {
		if d := time.Until(dl); d > 0 {
			return d
		}
	}
	return 0
}

// withChildTimeout picks the tighter of d and the parent's remaining budget
func withChildTimeout(parent context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(parent)
	}
	if rem := Remaining(parent); rem > 0 && rem < d {
		return context.WithTimeout(parent, rem)
	}
	return context.WithTimeout(parent, d)
}
