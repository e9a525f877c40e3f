package leitner

// FocusQueue is a pinned FIFO of cards that pre-empts normal selection
// while active.
type FocusQueue struct {
	active bool
	queue  []CardID
}

// NewFocusQueue returns an inactive, empty queue.
func NewFocusQueue() *FocusQueue {
	return &FocusQueue{}
}

// Pin replaces the queue with ids, in order. The queue becomes active when
// ids is non-empty.
func (q *FocusQueue) Pin(ids []CardID) {
	q.queue = append([]CardID(nil), ids...)
	q.active = len(q.queue) > 0
}

// PopNext removes and returns the head. The queue deactivates once empty.
func (q *FocusQueue) PopNext() (CardID, bool) {
	if len(q.queue) == 0 {
		q.active = false
		return "", false
	}
	id := q.queue[0]
	q.queue = q.queue[1:]
	if len(q.queue) == 0 {
		q.active = false
	}
	return id, true
}

// Peek returns the head without removing it.
func (q *FocusQueue) Peek() (CardID, bool) {
	if len(q.queue) == 0 {
		return "", false
	}
	return q.queue[0], true
}

// IsActive reports whether the queue currently overrides selection.
func (q *FocusQueue) IsActive() bool { return q.active }

// Remaining returns the number of queued cards.
func (q *FocusQueue) Remaining() int { return len(q.queue) }

// Cards returns a copy of the queue.
func (q *FocusQueue) Cards() []CardID { return append([]CardID(nil), q.queue...) }

// Clear empties and deactivates the queue.
func (q *FocusQueue) Clear() {
	q.queue = nil
	q.active = false
}
