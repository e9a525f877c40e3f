package leitner

import (
	"sort"
	"time"
)

// PauseRegistry tracks cards the learner has set aside.
type PauseRegistry struct {
	paused map[CardID]time.Time
}

// NewPauseRegistry returns an empty registry.
func NewPauseRegistry() *PauseRegistry {
	return &PauseRegistry{paused: make(map[CardID]time.Time)}
}

// Pause marks the card paused at now. Re-pausing updates the timestamp.
func (r *PauseRegistry) Pause(id CardID, now time.Time) {
	r.paused[id] = now
}

// Resume unpauses the card. It reports whether the card was paused.
func (r *PauseRegistry) Resume(id CardID) bool {
	_, ok := r.paused[id]
	delete(r.paused, id)
	return ok
}

// IsPaused reports whether the card is paused.
func (r *PauseRegistry) IsPaused(id CardID) bool {
	_, ok := r.paused[id]
	return ok
}

// PausedSince returns when the card was paused.
func (r *PauseRegistry) PausedSince(id CardID) (time.Time, bool) {
	t, ok := r.paused[id]
	return t, ok
}

// Filter returns ids with paused cards removed, preserving order.
func (r *PauseRegistry) Filter(ids []CardID) []CardID {
	if len(r.paused) == 0 {
		return ids
	}
	out := make([]CardID, 0, len(ids))
	for _, id := range ids {
		if !r.IsPaused(id) {
			out = append(out, id)
		}
	}
	return out
}

// List returns paused ids in ascending order.
func (r *PauseRegistry) List() []CardID {
	ids := make([]CardID, 0, len(r.paused))
	for id := range r.paused {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Len returns the number of paused cards.
func (r *PauseRegistry) Len() int { return len(r.paused) }
