package leitner

import "time"

// DateKeyLayout is the persisted form of a calendar day.
const DateKeyLayout = "2006-01-02"

// DailyNewCardBudget counts new-card introductions per calendar day.
type DailyNewCardBudget struct {
	counts map[string]int
	loc    *time.Location
}

// NewDailyNewCardBudget returns a budget whose days follow loc. A nil loc
// means time.Local.
func NewDailyNewCardBudget(loc *time.Location) *DailyNewCardBudget {
	if loc == nil {
		loc = time.Local
	}
	return &DailyNewCardBudget{counts: make(map[string]int), loc: loc}
}

// DateKey returns the calendar day of now as YYYY-MM-DD.
func (b *DailyNewCardBudget) DateKey(now time.Time) string {
	return now.In(b.loc).Format(DateKeyLayout)
}

// IntroducedOn returns how many new cards were introduced on now's day.
func (b *DailyNewCardBudget) IntroducedOn(now time.Time) int {
	return b.counts[b.DateKey(now)]
}

// CanIntroduceNew reports whether another new card may be introduced today.
// An override lets the learner continue past the cap; it does not raise it.
func (b *DailyNewCardBudget) CanIntroduceNew(now time.Time, limitEnabled bool, maxPerDay int, overrideConfirmed bool) bool {
	if !limitEnabled {
		return true
	}
	if b.IntroducedOn(now) < maxPerDay {
		return true
	}
	return overrideConfirmed
}

// RecordIntroduced counts one introduction on now's day.
func (b *DailyNewCardBudget) RecordIntroduced(now time.Time) {
	b.counts[b.DateKey(now)]++
}

// History returns a copy of all per-day counts.
func (b *DailyNewCardBudget) History() map[string]int {
	out := make(map[string]int, len(b.counts))
	for k, v := range b.counts {
		out[k] = v
	}
	return out
}
