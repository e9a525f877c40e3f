package leitner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

func TestGradeFirstTime(t *testing.T) {
	tests := []struct {
		outcome Outcome
		want    int
	}{
		{Great, 1},
		{Fair, 0},
		{Poor, 0},
	}
	for _, tt := range tests {
		t.Run(tt.outcome.String(), func(t *testing.T) {
			l := NewBoxLedger()
			tr := l.Grade("a", tt.outcome, t0)

			assert.True(t, tr.First)
			assert.Equal(t, -1, tr.From)
			assert.Equal(t, tt.want, tr.To)
			b, ok := l.Box("a")
			require.True(t, ok)
			assert.Equal(t, tt.want, b)
			last, ok := l.LastReviewed("a")
			require.True(t, ok)
			assert.Equal(t, t0, last)
		})
	}
}

func TestGradeRepeat(t *testing.T) {
	tests := []struct {
		name    string
		start   int
		outcome Outcome
		want    int
	}{
		{"great promotes", 3, Great, 4},
		{"great caps at mastered", 7, Great, 7},
		{"fair keeps", 4, Fair, 4},
		{"poor demotes", 4, Poor, 3},
		{"poor floors at zero", 0, Poor, 0},
		{"poor demotes mastered", 7, Poor, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewBoxLedger()
			l.boxes["a"] = tt.start
			l.reviewed["a"] = t0

			tr := l.Grade("a", tt.outcome, t0.Add(time.Hour))
			assert.False(t, tr.First)
			assert.Equal(t, tt.start, tr.From)
			assert.Equal(t, tt.want, tr.To)
		})
	}
}

func TestGradeStepsToBounds(t *testing.T) {
	for start := 0; start < MasteredBox; start++ {
		l := NewBoxLedger()
		l.boxes["a"] = start
		steps := 0
		for {
			b, _ := l.Box("a")
			if b == MasteredBox {
				break
			}
			l.Grade("a", Great, t0)
			steps++
		}
		assert.Equal(t, MasteredBox-start, steps, "great steps from box %d", start)
	}
	for start := 1; start <= MasteredBox; start++ {
		l := NewBoxLedger()
		l.boxes["a"] = start
		steps := 0
		for {
			b, _ := l.Box("a")
			if b == 0 {
				break
			}
			l.Grade("a", Poor, t0)
			steps++
		}
		assert.Equal(t, start, steps, "poor steps from box %d", start)
	}
}

func TestGradeKeepsBoxInRange(t *testing.T) {
	l := NewBoxLedger()
	seq := []Outcome{Poor, Poor, Great, Great, Great, Great, Great, Great, Great, Great, Great, Fair, Poor, Great, Great}
	for i, o := range seq {
		tr := l.Grade("a", o, t0.Add(time.Duration(i)*time.Minute))
		assert.GreaterOrEqual(t, tr.To, 0)
		assert.LessOrEqual(t, tr.To, MasteredBox)
	}
}

func TestGradeTimestampNeverMovesBack(t *testing.T) {
	l := NewBoxLedger()
	l.Grade("a", Fair, t0)
	tr := l.Grade("a", Fair, t0.Add(-time.Hour))

	assert.Equal(t, t0, tr.At)
	last, _ := l.LastReviewed("a")
	assert.Equal(t, t0, last)
}

func TestTransitionFlags(t *testing.T) {
	l := NewBoxLedger()
	first := l.Grade("a", Great, t0)
	assert.False(t, first.Promoted(), "first grading is not a promotion")
	assert.False(t, first.Demoted())

	up := l.Grade("a", Great, t0)
	assert.True(t, up.Promoted())

	l.boxes["a"] = 6
	m := l.Grade("a", Great, t0)
	assert.True(t, m.Mastered())
	again := l.Grade("a", Great, t0)
	assert.False(t, again.Mastered())

	down := l.Grade("a", Poor, t0)
	assert.True(t, down.Demoted())
}

func TestLedgerForgetAndCounts(t *testing.T) {
	l := NewBoxLedger()
	l.Grade("b", Great, t0)
	l.Grade("a", Fair, t0)
	l.Grade("c", Great, t0)

	assert.Equal(t, []CardID{"a", "b", "c"}, l.Cards())
	counts := l.Counts()
	assert.Equal(t, 1, counts[0])
	assert.Equal(t, 2, counts[1])

	assert.True(t, l.Forget("b"))
	assert.False(t, l.Forget("b"))
	assert.False(t, l.Seen("b"))
	_, ok := l.LastReviewed("b")
	assert.False(t, ok)
	assert.Equal(t, 2, l.Len())

	lists := l.boxLists()
	assert.Equal(t, []CardID{"a"}, lists[0])
	assert.Equal(t, []CardID{"c"}, lists[1])
	assert.Empty(t, lists[7])
}
