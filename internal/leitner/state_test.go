package leitner

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateSurvivesReload(t *testing.T) {
	store := NewMemoryStore()
	s, clock := newTestScheduler(t, store, Options{DailyLimitEnabled: true, MaxNewPerDay: 5})
	mustNext(t, s, []CardID{"a"})
	mustAnswer(t, s, "a", Great)
	mustAnswer(t, s, "b", Poor)
	require.NoError(t, s.Pause("b"))
	require.NoError(t, s.Pin([]CardID{"c", "d"}))
	clock.Advance(time.Minute)

	r, _ := newTestScheduler(t, store, Options{DailyLimitEnabled: true, MaxNewPerDay: 5})
	b, ok := r.Box("a")
	assert.True(t, ok)
	assert.Equal(t, 1, b)
	last, _ := r.LastReviewed("a")
	assert.True(t, last.Equal(t0))
	assert.True(t, r.IsPaused("b"))
	assert.True(t, r.IsFocusActive())
	assert.Equal(t, []CardID{"c", "d"}, r.FocusQueue())
	assert.Equal(t, 1, r.Stats().NewToday)
	assert.Equal(t, map[string]int{"2025-03-14": 1}, r.DailyHistory())
}

func TestPersistedBoxesShape(t *testing.T) {
	store := NewMemoryStore()
	s, _ := newTestScheduler(t, store, Options{})
	mustAnswer(t, s, "a", Great)
	mustAnswer(t, s, "b", Fair)

	raw, ok, err := store.Get(KeyBoxes)
	require.NoError(t, err)
	require.True(t, ok)
	var boxes [][]string
	require.NoError(t, json.Unmarshal(raw, &boxes))
	require.Len(t, boxes, NumBoxes)
	assert.Equal(t, []string{"b"}, boxes[0])
	assert.Equal(t, []string{"a"}, boxes[1])
	assert.Empty(t, boxes[7])
}

func TestLoadMalformedFieldsAsFresh(t *testing.T) {
	store := NewMemoryStore()
	for _, key := range StateKeys {
		require.NoError(t, store.Set(key, []byte(`{{{not json`)))
	}

	s, _ := newTestScheduler(t, store, Options{})
	st := s.Stats()
	assert.Zero(t, st.Seen)
	assert.Zero(t, st.Paused)
	assert.Zero(t, st.NewToday)
	assert.False(t, st.FocusActive)
	assert.Equal(t, DefaultIntervals(), s.Intervals())

	sel := mustNext(t, s, []CardID{"a"})
	assert.Equal(t, OriginNew, sel.Origin)
}

func TestLoadDropsCorruptEntries(t *testing.T) {
	store := NewMemoryStore()
	set := func(key, value string) {
		require.NoError(t, store.Set(key, []byte(value)))
	}
	set(KeyBoxes, `[["a","dup"],["b","dup"],5,[],[],[],[],[],["overflow"]]`)
	set(KeyReviewTimestamps, `{"a":"2025-03-14T09:00:00Z","dup":"2025-03-14T09:00:00Z","b":"yesterday","orphan":"2025-03-14T09:00:00Z"}`)
	set(KeyPaused, `{"a":"2025-03-14T09:00:00Z","":"2025-03-14T09:00:00Z","c":42}`)
	set(KeyDailyNewCount, `{"2025-03-14":3,"soon":1,"2025-03-13":-2,"2025-03-12":"x"}`)
	set(KeyFocusQueue, `{"active":true,"queue":[]}`)
	set(KeyBoxIntervalOverrides, `{"0":"20s","7":"1h","x":"1m","2":"forever"}`)

	s, _ := newTestScheduler(t, store, Options{})

	b, ok := s.Box("a")
	assert.True(t, ok)
	assert.Equal(t, 0, b)
	b, _ = s.Box("dup")
	assert.Equal(t, 0, b, "first occurrence wins")
	_, ok = s.Box("b")
	assert.False(t, ok, "timestamp unreadable")
	_, ok = s.Box("overflow")
	assert.False(t, ok)

	_, ok = s.LastReviewed("a")
	assert.True(t, ok)
	_, ok = s.LastReviewed("b")
	assert.False(t, ok)
	_, ok = s.LastReviewed("orphan")
	assert.False(t, ok)

	assert.Equal(t, []CardID{"a"}, s.Paused())
	assert.Equal(t, map[string]int{"2025-03-14": 3}, s.DailyHistory())
	assert.False(t, s.IsFocusActive())
	assert.Equal(t, 20*time.Second, s.Intervals()[0])
	assert.Equal(t, 48*time.Hour, s.Intervals()[2])
}

func TestLoadBoxWithoutTimestampIsNewAgain(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Set(KeyBoxes, []byte(`[[],["b"],[],[],[],[],[],[]]`)))
	require.NoError(t, store.Set(KeyReviewTimestamps, []byte(`{"b":"garbage"}`)))

	s, clock := newTestScheduler(t, store, Options{})
	assert.Equal(t, 0, s.Stats().Seen)

	for _, years := range []int{0, 1, 3} {
		clock.T = t0.AddDate(years, 0, 0)
		sel := mustNext(t, s, []CardID{"b"})
		assert.Equal(t, CardID("b"), sel.Card, "after %d years", years)
		assert.Equal(t, OriginNew, sel.Origin)
	}

	// The next grading starts the card over as a first grading.
	tr := mustAnswer(t, s, "b", Great)
	assert.True(t, tr.First)
	assert.Equal(t, 1, tr.To)
}

type brokenStore struct{}

func (brokenStore) Get(string) ([]byte, bool, error) { return nil, false, errors.New("io error") }
func (brokenStore) Set(string, []byte) error        { return nil }

func TestLoadUnreadableStore(t *testing.T) {
	s, _ := newTestScheduler(t, brokenStore{}, Options{})
	assert.Zero(t, s.Stats().Seen)
	mustAnswer(t, s, "a", Great)
}
