package leitner

import "time"

// Selection is the outcome of one NextCard call.
type Selection struct {
	Card                CardID `json:"card_id,omitempty"`
	Origin              Origin `json:"origin"`
	BlockedByDailyLimit bool   `json:"blocked_by_daily_limit"`
	// Strategy names the rule that produced the selection.
	Strategy string `json:"strategy"`
}

// Found reports whether a card was selected.
func (s Selection) Found() bool { return s.Origin != OriginNone }

// turn is the per-call input shared by all strategies.
type turn struct {
	now        time.Time
	candidates []CardID
	set        map[CardID]struct{}
}

func (t *turn) has(id CardID) bool {
	_, ok := t.set[id]
	return ok
}

func (t *turn) keep(ids []CardID) []CardID {
	var out []CardID
	for _, id := range ids {
		if t.has(id) {
			out = append(out, id)
		}
	}
	return out
}

// A strategy either decides the turn (done=true) or passes to the next one.
type strategy struct {
	name string
	pick func(s *Scheduler, t *turn) (sel Selection, done bool, err error)
}

// strategies are tried in order; the first to decide wins.
var strategies = []strategy{
	{"focus", (*Scheduler).pickFocus},
	{"due", (*Scheduler).pickDue},
	{"new", (*Scheduler).pickNew},
	{"relaxed", (*Scheduler).pickRelaxed},
}

// NextCard selects the card to present from candidates, the ids allowed by
// the caller's current category filter.
func (s *Scheduler) NextCard(candidates []CardID) (Selection, error) {
	t := &turn{
		now:        s.clock.Now(),
		candidates: candidates,
		set:        toSet(candidates),
	}
	for _, st := range strategies {
		sel, done, err := st.pick(s, t)
		if err != nil {
			return Selection{}, err
		}
		if done {
			sel.Strategy = st.name
			s.log.Debug().
				Str("strategy", st.name).
				Str("card", sel.Card.Short()).
				Stringer("origin", sel.Origin).
				Bool("blocked", sel.BlockedByDailyLimit).
				Msg("next card")
			return sel, nil
		}
	}
	return Selection{Origin: OriginNone, Strategy: "none"}, nil
}

// pickFocus pops pinned cards until one is a candidate. Popped cards that
// are not candidates are discarded. An exhausted queue falls through.
func (s *Scheduler) pickFocus(t *turn) (Selection, bool, error) {
	if !s.focus.IsActive() {
		return Selection{}, false, nil
	}
	for s.focus.IsActive() {
		id, ok := s.focus.PopNext()
		if !ok {
			break
		}
		if t.has(id) {
			if err := s.persist(KeyFocusQueue); err != nil {
				return Selection{}, false, err
			}
			return Selection{Card: id, Origin: OriginRepetition}, true, nil
		}
		s.log.Debug().Str("card", id.Short()).Msg("pinned card outside filter, skipped")
	}
	return Selection{}, false, s.persist(KeyFocusQueue)
}

func (s *Scheduler) pickDue(t *turn) (Selection, bool, error) {
	due := s.pauses.Filter(t.keep(s.due.DueCards(t.now, false)))
	if len(due) == 0 {
		return Selection{}, false, nil
	}
	return Selection{Card: due[0], Origin: OriginRepetition}, true, nil
}

// pickNew introduces the first unseen, unpaused candidate in caller order.
// A reached cap ends the turn so the caller can tell it apart from an
// exhausted filter.
func (s *Scheduler) pickNew(t *turn) (Selection, bool, error) {
	var next CardID
	for _, id := range t.candidates {
		if !s.ledger.Seen(id) && !s.pauses.IsPaused(id) {
			next = id
			break
		}
	}
	if next == "" {
		return Selection{}, false, nil
	}
	if !s.budget.CanIntroduceNew(t.now, s.limitEnabled, s.maxPerDay, s.overrideConfirmed) {
		return Selection{Origin: OriginNone, BlockedByDailyLimit: true}, true, nil
	}
	s.budget.RecordIntroduced(t.now)
	if err := s.persist(KeyDailyNewCount); err != nil {
		return Selection{}, false, err
	}
	return Selection{Card: next, Origin: OriginNew}, true, nil
}

// pickRelaxed is the last resort: box-0 cards regardless of their wait.
func (s *Scheduler) pickRelaxed(t *turn) (Selection, bool, error) {
	due := s.pauses.Filter(t.keep(s.due.DueCards(t.now, true)))
	if len(due) == 0 {
		return Selection{}, false, nil
	}
	return Selection{Card: due[0], Origin: OriginRepetition}, true, nil
}

// NextCardOverridingLimit is NextCard with the daily new-card cap lifted for
// this call only. The session override flag is left as it was.
func (s *Scheduler) NextCardOverridingLimit(candidates []CardID) (Selection, error) {
	prev := s.overrideConfirmed
	s.overrideConfirmed = true
	defer func() { s.overrideConfirmed = prev }()
	return s.NextCard(candidates)
}
