package leitner

import (
	"sort"
	"time"
)

// DueCalculator decides which boxed cards are due for repetition.
type DueCalculator struct {
	ledger    *BoxLedger
	intervals IntervalTable
}

// NewDueCalculator returns a calculator over ledger using intervals.
func NewDueCalculator(ledger *BoxLedger, intervals IntervalTable) *DueCalculator {
	return &DueCalculator{ledger: ledger, intervals: intervals}
}

// IsDue reports whether a single card is due at now.
func (d *DueCalculator) IsDue(id CardID, now time.Time, ignoreBox0Wait bool) bool {
	b, ok := d.ledger.Box(id)
	if !ok {
		return false
	}
	wait, ever := d.intervals.Interval(b)
	if !ever {
		return false
	}
	last, ok := d.ledger.LastReviewed(id)
	if !ok {
		return false
	}
	if b == 0 && ignoreBox0Wait {
		return true
	}
	return now.Sub(last) >= wait
}

// DueCards returns the cards due at now, oldest review first. Ties are
// broken by id. With ignoreBox0Wait, every reviewed box-0 card is due.
// Pause state is not considered here.
func (d *DueCalculator) DueCards(now time.Time, ignoreBox0Wait bool) []CardID {
	var due []CardID
	for _, id := range d.ledger.Cards() {
		if d.IsDue(id, now, ignoreBox0Wait) {
			due = append(due, id)
		}
	}
	sort.SliceStable(due, func(i, j int) bool {
		ti, _ := d.ledger.LastReviewed(due[i])
		tj, _ := d.ledger.LastReviewed(due[j])
		return ti.Before(tj)
	})
	return due
}

// NextDue returns when the card next becomes due. It returns false for
// unseen, never-reviewed and mastered cards.
func (d *DueCalculator) NextDue(id CardID) (time.Time, bool) {
	b, ok := d.ledger.Box(id)
	if !ok {
		return time.Time{}, false
	}
	wait, ever := d.intervals.Interval(b)
	if !ever {
		return time.Time{}, false
	}
	last, ok := d.ledger.LastReviewed(id)
	if !ok {
		return time.Time{}, false
	}
	return last.Add(wait), true
}
