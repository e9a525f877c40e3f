package leitner

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

type focusState struct {
	Active bool     `json:"active"`
	Queue  []CardID `json:"queue"`
}

// load reads every field from the store. Unreadable or malformed fields are
// treated as absent; malformed entries inside a field are dropped one by one.
func (s *Scheduler) load() {
	if raw, ok := s.read(KeyBoxes); ok {
		s.decodeBoxes(raw)
	}
	if raw, ok := s.read(KeyReviewTimestamps); ok {
		for id, t := range s.decodeTimes(KeyReviewTimestamps, raw) {
			if !s.ledger.Seen(id) {
				s.dropped(KeyReviewTimestamps, string(id), "no box assignment")
				continue
			}
			s.ledger.reviewed[id] = t
		}
	}
	// A box without a review time can never become due; treat it as unseen.
	for id := range s.ledger.boxes {
		if _, ok := s.ledger.reviewed[id]; !ok {
			s.dropped(KeyBoxes, string(id), "no review timestamp")
			delete(s.ledger.boxes, id)
		}
	}
	if raw, ok := s.read(KeyPaused); ok {
		for id, t := range s.decodeTimes(KeyPaused, raw) {
			s.pauses.Pause(id, t)
		}
	}
	if raw, ok := s.read(KeyDailyNewCount); ok {
		s.decodeDailyCounts(raw)
	}
	if raw, ok := s.read(KeyFocusQueue); ok {
		var fs focusState
		if err := json.Unmarshal(raw, &fs); err != nil {
			s.dropped(KeyFocusQueue, "", err.Error())
		} else {
			q := make([]CardID, 0, len(fs.Queue))
			for _, id := range fs.Queue {
				if id != "" {
					q = append(q, id)
				}
			}
			s.focus.queue = q
			s.focus.active = fs.Active && len(q) > 0
		}
	}
	if raw, ok := s.read(KeyBoxIntervalOverrides); ok {
		s.decodeOverrides(raw)
	}
	s.due = NewDueCalculator(s.ledger, s.intervals())
}

func (s *Scheduler) read(key string) ([]byte, bool) {
	raw, ok, err := s.store.Get(key)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("state field unreadable, starting fresh")
		return nil, false
	}
	return raw, ok && len(raw) > 0
}

func (s *Scheduler) dropped(key, entry, reason string) {
	s.log.Warn().Str("key", key).Str("entry", entry).Str("reason", reason).Msg("dropping corrupt state")
}

func (s *Scheduler) decodeBoxes(raw []byte) {
	var lists []json.RawMessage
	if err := json.Unmarshal(raw, &lists); err != nil {
		s.dropped(KeyBoxes, "", err.Error())
		return
	}
	for b, listRaw := range lists {
		if b >= NumBoxes {
			s.dropped(KeyBoxes, strconv.Itoa(b), "box index out of range")
			continue
		}
		var ids []CardID
		if err := json.Unmarshal(listRaw, &ids); err != nil {
			s.dropped(KeyBoxes, strconv.Itoa(b), err.Error())
			continue
		}
		for _, id := range ids {
			if id == "" {
				continue
			}
			if prev, dup := s.ledger.boxes[id]; dup {
				s.dropped(KeyBoxes, string(id), fmt.Sprintf("already in box %d", prev))
				continue
			}
			s.ledger.boxes[id] = b
		}
	}
}

func (s *Scheduler) decodeTimes(key string, raw []byte) map[CardID]time.Time {
	var entries map[CardID]json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		s.dropped(key, "", err.Error())
		return nil
	}
	out := make(map[CardID]time.Time, len(entries))
	for id, v := range entries {
		var t time.Time
		if err := json.Unmarshal(v, &t); err != nil {
			s.dropped(key, string(id), err.Error())
			continue
		}
		if id == "" || t.IsZero() {
			s.dropped(key, string(id), "empty id or zero time")
			continue
		}
		out[id] = t
	}
	return out
}

func (s *Scheduler) decodeDailyCounts(raw []byte) {
	var entries map[string]json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		s.dropped(KeyDailyNewCount, "", err.Error())
		return
	}
	for k, v := range entries {
		if _, err := time.Parse(DateKeyLayout, k); err != nil {
			s.dropped(KeyDailyNewCount, k, "bad date key")
			continue
		}
		var n int
		if err := json.Unmarshal(v, &n); err != nil || n < 0 {
			s.dropped(KeyDailyNewCount, k, "bad count")
			continue
		}
		s.budget.counts[k] = n
	}
}

func (s *Scheduler) decodeOverrides(raw []byte) {
	var entries map[string]string
	if err := json.Unmarshal(raw, &entries); err != nil {
		s.dropped(KeyBoxIntervalOverrides, "", err.Error())
		return
	}
	for k, v := range entries {
		b, err := strconv.Atoi(k)
		if err != nil {
			s.dropped(KeyBoxIntervalOverrides, k, "bad box index")
			continue
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			s.dropped(KeyBoxIntervalOverrides, k, err.Error())
			continue
		}
		if err := validateOverride(b, d); err != nil {
			s.dropped(KeyBoxIntervalOverrides, k, err.Error())
			continue
		}
		s.overrides[b] = d
	}
}

// persist writes the named fields, one Set per field.
func (s *Scheduler) persist(keys ...string) error {
	for _, key := range keys {
		raw, err := json.Marshal(s.encode(key))
		if err != nil {
			return fmt.Errorf("encode %s: %w", key, err)
		}
		if err := s.store.Set(key, raw); err != nil {
			return fmt.Errorf("persist %s: %w", key, err)
		}
	}
	return nil
}

func (s *Scheduler) encode(key string) any {
	switch key {
	case KeyBoxes:
		return s.ledger.boxLists()
	case KeyReviewTimestamps:
		return s.ledger.reviewed
	case KeyPaused:
		return s.pauses.paused
	case KeyDailyNewCount:
		return s.budget.counts
	case KeyFocusQueue:
		q := s.focus.queue
		if q == nil {
			q = []CardID{}
		}
		return focusState{Active: s.focus.active, Queue: q}
	case KeyBoxIntervalOverrides:
		out := make(map[string]string, len(s.overrides))
		for b, d := range s.overrides {
			out[strconv.Itoa(b)] = d.String()
		}
		return out
	}
	panic("leitner: unknown state key " + key)
}
