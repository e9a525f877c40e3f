package leitner

// Stats is a read-only summary for dashboards and observers.
type Stats struct {
	Due            int           `json:"due"`
	PerBox         [NumBoxes]int `json:"per_box"`
	Seen           int           `json:"seen"`
	Mastered       int           `json:"mastered"`
	NewToday       int           `json:"new_today"`
	DailyLimit     int           `json:"daily_limit"` // 0 when the limit is disabled
	Paused         int           `json:"paused"`
	FocusActive    bool          `json:"focus_active"`
	FocusRemaining int           `json:"focus_remaining"`
	Date           string        `json:"date"`
}

// Stats summarizes the whole profile at the current time.
func (s *Scheduler) Stats() Stats {
	return s.stats(nil)
}

// StatsFor restricts card counts to candidates. New-card, focus and date
// fields are profile-wide.
func (s *Scheduler) StatsFor(candidates []CardID) Stats {
	return s.stats(toSet(candidates))
}

func (s *Scheduler) stats(only map[CardID]struct{}) Stats {
	now := s.clock.Now()
	in := func(id CardID) bool {
		if only == nil {
			return true
		}
		_, ok := only[id]
		return ok
	}

	st := Stats{
		NewToday:       s.budget.IntroducedOn(now),
		FocusActive:    s.focus.IsActive(),
		FocusRemaining: s.focus.Remaining(),
		Date:           s.budget.DateKey(now),
	}
	if s.limitEnabled {
		st.DailyLimit = s.maxPerDay
	}
	for _, id := range s.ledger.Cards() {
		if !in(id) {
			continue
		}
		b, _ := s.ledger.Box(id)
		st.PerBox[b]++
		st.Seen++
	}
	st.Mastered = st.PerBox[MasteredBox]
	for _, id := range s.pauses.Filter(s.due.DueCards(now, false)) {
		if in(id) {
			st.Due++
		}
	}
	for _, id := range s.pauses.List() {
		if in(id) {
			st.Paused++
		}
	}
	return st
}
