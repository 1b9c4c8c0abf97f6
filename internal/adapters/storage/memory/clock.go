package memory

import "time"

// bumpClock returns the current time, nudged forward when the wall
// clock has not advanced past prev. Keeps updated_at monotonic
// non-decreasing even on coarse clocks.
func bumpClock(prev time.Time) time.Time {
	now := time.Now().UTC()
	if !now.After(prev) {
		return prev.Add(time.Nanosecond)
	}
	return now
}
