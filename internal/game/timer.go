// internal/game/timer.go
package game

import (
	"fmt"
	"time"
)

// Timer measures play time for timed games. Paused time is never counted:
// pausing folds the running span into accumulated and clears the start instant.
type Timer struct {
	accumulated time.Duration
	startedAt   time.Time
	running     bool
}

// Start resets the timer and starts it at now.
func (t *Timer) Start(now time.Time) {
	t.accumulated = 0
	t.startedAt = now
	t.running = true
}

// Pause stops the timer. It returns false if the timer was not running.
func (t *Timer) Pause(now time.Time) bool {
	if !t.running {
		return false
	}
	t.accumulated += now.Sub(t.startedAt)
	t.startedAt = time.Time{}
	t.running = false
	return true
}

// Resume restarts a paused timer. It returns false if the timer was already running.
func (t *Timer) Resume(now time.Time) bool {
	if t.running {
		return false
	}
	t.startedAt = now
	t.running = true
	return true
}

// Reset zeroes the timer and stops it.
func (t *Timer) Reset() {
	*t = Timer{}
}

func (t *Timer) Running() bool {
	return t.running
}

func (t *Timer) Elapsed(now time.Time) time.Duration {
	if !t.running {
		return t.accumulated
	}
	return t.accumulated + now.Sub(t.startedAt)
}

// ElapsedSeconds returns whole elapsed seconds, rounded down.
func (t *Timer) ElapsedSeconds(now time.Time) int {
	return int(t.Elapsed(now) / time.Second)
}

// FormatClock renders seconds as MM:SS.
func FormatClock(seconds int) string {
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
