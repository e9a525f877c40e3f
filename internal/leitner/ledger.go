package leitner

import (
	"sort"
	"time"
)

// Transition describes the effect of one grading on a card.
type Transition struct {
	Card    CardID    `json:"card_id"`
	Outcome Outcome   `json:"outcome"`
	From    int       `json:"from"` // -1 when the card was unseen.
	To      int       `json:"to"`
	First   bool      `json:"first"`
	At      time.Time `json:"at"`
}

// Promoted reports whether the card moved to a higher box.
func (t Transition) Promoted() bool { return !t.First && t.To > t.From }

// Demoted reports whether the card moved to a lower box.
func (t Transition) Demoted() bool { return !t.First && t.To < t.From }

// Mastered reports whether this grading moved the card into MasteredBox.
func (t Transition) Mastered() bool { return t.To == MasteredBox && t.From != MasteredBox }

// BoxLedger owns box membership and last-review timestamps.
type BoxLedger struct {
	boxes    map[CardID]int
	reviewed map[CardID]time.Time
}

// NewBoxLedger returns an empty ledger.
func NewBoxLedger() *BoxLedger {
	return &BoxLedger{
		boxes:    make(map[CardID]int),
		reviewed: make(map[CardID]time.Time),
	}
}

// Box returns the card's box, or false if the card is unseen.
func (l *BoxLedger) Box(id CardID) (int, bool) {
	b, ok := l.boxes[id]
	return b, ok
}

// LastReviewed returns the card's last review time, or false if never reviewed.
func (l *BoxLedger) LastReviewed(id CardID) (time.Time, bool) {
	t, ok := l.reviewed[id]
	return t, ok
}

// Seen reports whether the card has a box assignment.
func (l *BoxLedger) Seen(id CardID) bool {
	_, ok := l.boxes[id]
	return ok
}

// Grade applies the box transition for outcome and stamps the review time.
// The stored timestamp never moves backwards.
func (l *BoxLedger) Grade(id CardID, outcome Outcome, now time.Time) Transition {
	tr := Transition{Card: id, Outcome: outcome, At: now}

	from, seen := l.boxes[id]
	if !seen {
		tr.First = true
		tr.From = -1
		if outcome == Great {
			tr.To = 1
		} else {
			tr.To = 0
		}
	} else {
		tr.From = from
		switch outcome {
		case Great:
			tr.To = min(from+1, MasteredBox)
		case Poor:
			tr.To = max(from-1, 0)
		default:
			tr.To = from
		}
	}
	l.boxes[id] = tr.To

	if prev, ok := l.reviewed[id]; ok && now.Before(prev) {
		tr.At = prev
	}
	l.reviewed[id] = tr.At
	return tr
}

// Forget removes the card's box and timestamp. It reports whether anything
// was removed.
func (l *BoxLedger) Forget(id CardID) bool {
	_, boxed := l.boxes[id]
	_, stamped := l.reviewed[id]
	delete(l.boxes, id)
	delete(l.reviewed, id)
	return boxed || stamped
}

// Cards returns every boxed card in ascending id order.
func (l *BoxLedger) Cards() []CardID {
	ids := make([]CardID, 0, len(l.boxes))
	for id := range l.boxes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Counts returns the number of cards in each box.
func (l *BoxLedger) Counts() [NumBoxes]int {
	var c [NumBoxes]int
	for _, b := range l.boxes {
		c[b]++
	}
	return c
}

// Len returns the number of boxed cards.
func (l *BoxLedger) Len() int { return len(l.boxes) }

// boxLists returns membership in the persisted shape: one sorted list per box.
func (l *BoxLedger) boxLists() [NumBoxes][]CardID {
	var lists [NumBoxes][]CardID
	for i := range lists {
		lists[i] = []CardID{}
	}
	for _, id := range l.Cards() {
		b := l.boxes[id]
		lists[b] = append(lists[b], id)
	}
	return lists
}
