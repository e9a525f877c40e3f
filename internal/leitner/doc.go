// Package leitner implements a box-based spaced repetition scheduler.
//
// Cards move between eight boxes (0 through 7) according to the learner's
// self-assessment. Each box has a fixed wait interval; box 7 is the terminal
// "mastered" box and is never due. On every turn the Scheduler decides
// whether to serve a pinned focus card, a due repetition, or a new card,
// subject to a daily cap on new introductions.
//
// Basic usage:
//
//	s, err := leitner.New(leitner.NewMemoryStore(), leitner.Options{
//	    DailyLimitEnabled: true,
//	    MaxNewPerDay:      20,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	sel, err := s.NextCard(candidates)
//	// ... present sel.Card, collect the learner's grade ...
//	tr, err := s.RecordAnswer(sel.Card, leitner.Great)
//
// The Scheduler is not safe for concurrent use. Hosts that serve several
// requests at once must serialize turns themselves.
package leitner
