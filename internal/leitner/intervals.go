package leitner

import (
	"fmt"
	"time"
)

// NumBoxes is the number of repetition tiers.
const NumBoxes = 8

// MasteredBox is the terminal box. Cards here are never due.
const MasteredBox = NumBoxes - 1

const day = 24 * time.Hour

// IntervalTable holds the wait after a review before a card in each box is
// due again. The entry for MasteredBox is ignored.
type IntervalTable [NumBoxes]time.Duration

// DefaultIntervals returns the standard table.
func DefaultIntervals() IntervalTable {
	return IntervalTable{
		10 * time.Minute,
		1 * day,
		2 * day,
		4 * day,
		7 * day,
		14 * day,
		45 * day,
		0,
	}
}

// DebugIntervals returns the standard table with box 0 shortened to 15s.
func DebugIntervals() IntervalTable {
	t := DefaultIntervals()
	t[0] = 15 * time.Second
	return t
}

// Interval returns the wait for box b and whether the box is ever due.
func (t IntervalTable) Interval(b int) (time.Duration, bool) {
	if b < 0 || b >= MasteredBox {
		return 0, false
	}
	return t[b], true
}

// WithOverrides returns a copy of t with per-box overrides applied.
// Overrides for MasteredBox, out-of-range boxes or negative durations are
// skipped.
func (t IntervalTable) WithOverrides(overrides map[int]time.Duration) IntervalTable {
	out := t
	for b, d := range overrides {
		if b < 0 || b >= MasteredBox || d < 0 {
			continue
		}
		out[b] = d
	}
	return out
}

func validateOverride(b int, d time.Duration) error {
	if b < 0 || b >= MasteredBox {
		return fmt.Errorf("%w: %d", ErrInvalidBox, b)
	}
	if d < 0 {
		return fmt.Errorf("leitner: interval for box %d must not be negative", b)
	}
	return nil
}
