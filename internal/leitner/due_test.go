package leitner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDueBoxZeroScenario(t *testing.T) {
	l := NewBoxLedger()
	l.Grade("a", Fair, t0)
	d := NewDueCalculator(l, DefaultIntervals())

	b, _ := l.Box("a")
	assert.Equal(t, 0, b)
	assert.Empty(t, d.DueCards(t0.Add(5*time.Minute), false))
	assert.Equal(t, []CardID{"a"}, d.DueCards(t0.Add(5*time.Minute), true))
	assert.Equal(t, []CardID{"a"}, d.DueCards(t0.Add(11*time.Minute), false))
}

func TestDueExactBoundary(t *testing.T) {
	l := NewBoxLedger()
	l.Grade("a", Great, t0) // box 1
	d := NewDueCalculator(l, DefaultIntervals())

	assert.False(t, d.IsDue("a", t0.Add(24*time.Hour-time.Second), false))
	assert.True(t, d.IsDue("a", t0.Add(24*time.Hour), false))
}

func TestDueIgnoreBox0WaitOnlyAffectsBoxZero(t *testing.T) {
	l := NewBoxLedger()
	l.Grade("a", Great, t0)
	d := NewDueCalculator(l, DefaultIntervals())

	assert.Empty(t, d.DueCards(t0.Add(time.Minute), true))
}

func TestMasteredNeverDue(t *testing.T) {
	l := NewBoxLedger()
	l.boxes["a"] = MasteredBox
	l.reviewed["a"] = t0
	d := NewDueCalculator(l, DefaultIntervals())

	far := t0.AddDate(50, 0, 0)
	assert.Empty(t, d.DueCards(far, false))
	assert.Empty(t, d.DueCards(far, true))
	_, ok := d.NextDue("a")
	assert.False(t, ok)
}

func TestDueRequiresTimestamp(t *testing.T) {
	l := NewBoxLedger()
	l.boxes["a"] = 0
	d := NewDueCalculator(l, DefaultIntervals())

	assert.Empty(t, d.DueCards(t0.AddDate(1, 0, 0), true))
}

func TestDueOrderOldestFirst(t *testing.T) {
	l := NewBoxLedger()
	l.Grade("c", Fair, t0.Add(2*time.Minute))
	l.Grade("b", Fair, t0)
	l.Grade("a", Fair, t0)
	l.Grade("d", Fair, t0.Add(time.Minute))
	d := NewDueCalculator(l, DefaultIntervals())

	got := d.DueCards(t0.Add(time.Hour), false)
	assert.Equal(t, []CardID{"a", "b", "d", "c"}, got)
}

func TestNextDue(t *testing.T) {
	l := NewBoxLedger()
	l.Grade("a", Great, t0)
	l.Grade("a", Great, t0) // box 2
	d := NewDueCalculator(l, DefaultIntervals())

	next, ok := d.NextDue("a")
	assert.True(t, ok)
	assert.Equal(t, t0.Add(48*time.Hour), next)
}

func TestIntervalOverrides(t *testing.T) {
	tbl := DefaultIntervals().WithOverrides(map[int]time.Duration{
		0:  time.Second,
		7:  time.Second,
		9:  time.Second,
		2:  -time.Second,
		3:  time.Hour,
		-1: time.Second,
	})
	assert.Equal(t, time.Second, tbl[0])
	assert.Equal(t, 48*time.Hour, tbl[2])
	assert.Equal(t, time.Hour, tbl[3])
	_, ever := tbl.Interval(MasteredBox)
	assert.False(t, ever)
	assert.Equal(t, 15*time.Second, DebugIntervals()[0])
}
