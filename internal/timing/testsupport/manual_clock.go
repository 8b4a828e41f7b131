package testsupport

import (
	"context"
	"sync"
	"time"
)

// ManualClock is a timing.Clock whose Sleep advances virtual time immediately.
type ManualClock struct {
	mutex          sync.Mutex
	currentTime    time.Time
	sleeps         []time.Duration
	cancelAfter    int
	cancelFunction context.CancelFunc
}

// NewManualClock constructs a manual clock starting at the provided instant.
func NewManualClock(startTime time.Time) *ManualClock {
	return &ManualClock{currentTime: startTime}
}

// Now returns the current virtual time.
func (clock *ManualClock) Now() time.Time {
	clock.mutex.Lock()
	defer clock.mutex.Unlock()
	return clock.currentTime
}

// Advance moves virtual time forward.
func (clock *ManualClock) Advance(duration time.Duration) {
	clock.mutex.Lock()
	defer clock.mutex.Unlock()
	clock.currentTime = clock.currentTime.Add(duration)
}

// CancelAfterSleeps invokes cancelFunction once the given number of sleeps have been recorded.
func (clock *ManualClock) CancelAfterSleeps(sleepCount int, cancelFunction context.CancelFunc) {
	clock.mutex.Lock()
	defer clock.mutex.Unlock()
	clock.cancelAfter = sleepCount
	clock.cancelFunction = cancelFunction
}

// Sleep records the duration, advances virtual time, and reports context cancellation.
func (clock *ManualClock) Sleep(sleepContext context.Context, duration time.Duration) error {
	if sleepContext != nil {
		if contextError := sleepContext.Err(); contextError != nil {
			return contextError
		}
	}

	clock.mutex.Lock()
	clock.sleeps = append(clock.sleeps, duration)
	if duration > 0 {
		clock.currentTime = clock.currentTime.Add(duration)
	}
	sleepCount := len(clock.sleeps)
	cancelFunction := clock.cancelFunction
	cancelAfter := clock.cancelAfter
	clock.mutex.Unlock()

	if cancelFunction != nil && sleepCount >= cancelAfter {
		cancelFunction()
	}

	if sleepContext != nil {
		return sleepContext.Err()
	}
	return nil
}

// Sleeps returns a copy of every recorded sleep duration.
func (clock *ManualClock) Sleeps() []time.Duration {
	clock.mutex.Lock()
	defer clock.mutex.Unlock()
	recorded := make([]time.Duration, len(clock.sleeps))
	copy(recorded, clock.sleeps)
	return recorded
}

// TotalSlept sums every recorded sleep duration.
func (clock *ManualClock) TotalSlept() time.Duration {
	clock.mutex.Lock()
	defer clock.mutex.Unlock()
	var total time.Duration
	for _, duration := range clock.sleeps {
		total += duration
	}
	return total
}
