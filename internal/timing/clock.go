package timing

import (
	"context"
	"time"
)

// Clock supplies the current time and blocks for durations until the context ends.
type Clock interface {
	Now() time.Time
	Sleep(sleepContext context.Context, duration time.Duration) error
}

// SystemClock reads the operating system clock and sleeps with timers.
type SystemClock struct{}

// NewSystemClock constructs a clock backed by the time package.
func NewSystemClock() SystemClock {
	return SystemClock{}
}

// Now returns the current local time.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// Sleep blocks for the duration or until the context is cancelled, returning the context error in the latter case.
func (SystemClock) Sleep(sleepContext context.Context, duration time.Duration) error {
	if sleepContext == nil {
		sleepContext = context.Background()
	}
	if duration <= 0 {
		return sleepContext.Err()
	}

	timer := time.NewTimer(duration)
	defer timer.Stop()

	select {
	case <-sleepContext.Done():
		return sleepContext.Err()
	case <-timer.C:
		return nil
	}
}

// TimestampLayout is the layout used for every timestamp printed to the busy stream.
const TimestampLayout = "2006-01-02 15:04:05"

// ClockTimeLayout is the layout used for bare wall-clock times inside sentences.
const ClockTimeLayout = "15:04:05"

// FormatTimestamp renders the instant using TimestampLayout.
func FormatTimestamp(instant time.Time) string {
	return instant.Format(TimestampLayout)
}
