package leitner

import "sync"

// StateStore is the durable key-value record of one learner profile.
// Get reports false for keys that were never written.
type StateStore interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
}

// Persisted field keys.
const (
	KeyBoxes                = "boxes"
	KeyReviewTimestamps     = "reviewTimestamps"
	KeyPaused               = "paused"
	KeyDailyNewCount        = "dailyNewCount"
	KeyFocusQueue           = "focusQueue"
	KeyBoxIntervalOverrides = "boxIntervalOverrides"
)

// StateKeys lists every field a Scheduler reads on load.
var StateKeys = []string{
	KeyBoxes,
	KeyReviewTimestamps,
	KeyPaused,
	KeyDailyNewCount,
	KeyFocusQueue,
	KeyBoxIntervalOverrides,
}

// MemoryStore is an in-process StateStore.
type MemoryStore struct {
	mu     sync.Mutex
	fields map[string][]byte
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{fields: make(map[string][]byte)}
}

// Get returns a copy of the stored value.
func (m *MemoryStore) Get(key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.fields[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

// Set stores a copy of value.
func (m *MemoryStore) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fields[key] = append([]byte(nil), value...)
	return nil
}
