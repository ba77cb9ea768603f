package report

import (
	"math"
	"time"

	"github.com/frahmantamala/timetracker/internal/clock"
)

// ComputeWindow totals worked hours over the closed window [start, end].
// It is a pure function of its inputs: a carry-over log (most recent log
// strictly before start, may be nil), the in-window logs in ascending
// timestamp order, and the window bounds.
//
// A carry-over IN opens an interval at start, clipping any pre-window
// duration. Within the window an IN opens an interval (duplicate INs while
// already open are ignored) and an OUT closes it. An interval still open
// after the last log is closed synthetically at end. Every instant is
// clamped into [start, end] before use.
//
// The result is fractional hours, unrounded. Callers round for
// presentation with RoundHours.
func ComputeWindow(carryOver *clock.ClockLog, logs []*clock.ClockLog, start, end time.Time) float64 {
	if !end.After(start) {
		return 0
	}

	var total time.Duration
	var openAt time.Time
	open := false

	if carryOver != nil && carryOver.Type == clock.TypeIn {
		open = true
		openAt = start
	}

	for _, log := range logs {
		at := clampTime(log.Timestamp, start, end)
		switch log.Type {
		case clock.TypeIn:
			if !open {
				open = true
				openAt = at
			}
		case clock.TypeOut:
			if open {
				total += at.Sub(openAt)
				open = false
			}
		}
	}

	if open {
		total += end.Sub(openAt)
	}

	return float64(total.Milliseconds()) / 3_600_000
}

// RoundHours rounds to two decimals for presentation.
func RoundHours(hours float64) float64 {
	return math.Round(hours*100) / 100
}

func clampTime(t, start, end time.Time) time.Time {
	if t.Before(start) {
		return start
	}
	if t.After(end) {
		return end
	}
	return t
}
