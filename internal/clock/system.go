package clock

import (
	"context"
	"time"
)

type SystemClock struct{}

func (SystemClock) Now(context.Context) time.Time {
	return time.Now().UTC()
}

// Fixed is a clock pinned to a single instant, for tests.
type Fixed time.Time

func (f Fixed) Now(context.Context) time.Time {
	return time.Time(f)
}
