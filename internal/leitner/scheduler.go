package leitner

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Observer is notified after a grading has been persisted.
type Observer interface {
	CardGraded(Transition)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Transition)

// CardGraded calls f(t).
func (f ObserverFunc) CardGraded(t Transition) { f(t) }

// Options configures a Scheduler.
// Zero values produce sensible defaults; see field comments.
type Options struct {
	Clock             Clock          // nil → SystemClock
	Location          *time.Location // nil → time.Local; defines "today" for the daily cap
	DailyLimitEnabled bool
	MaxNewPerDay      int  // used only when DailyLimitEnabled
	DebugIntervals    bool // box 0 waits 15s instead of 10m
	Logger            *zerolog.Logger
	Observers         []Observer
}

// Scheduler answers "what card next?" and "how did this answer change
// state?" for one learner profile.
type Scheduler struct {
	store     StateStore
	clock     Clock
	log       zerolog.Logger
	observers []Observer

	limitEnabled      bool
	maxPerDay         int
	overrideConfirmed bool
	baseIntervals     IntervalTable
	overrides         map[int]time.Duration

	ledger *BoxLedger
	due    *DueCalculator
	pauses *PauseRegistry
	budget *DailyNewCardBudget
	focus  *FocusQueue
}

// New loads the profile held by store and returns a Scheduler over it.
// Missing or corrupt persisted state never fails construction; it is
// treated as a fresh learner.
func New(store StateStore, opts Options) (*Scheduler, error) {
	if opts.MaxNewPerDay < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLimit, opts.MaxNewPerDay)
	}
	clock := opts.Clock
	if clock == nil {
		clock = SystemClock{}
	}
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = opts.Logger.With().Str("component", "scheduler").Logger()
	}
	base := DefaultIntervals()
	if opts.DebugIntervals {
		base = DebugIntervals()
	}

	s := &Scheduler{
		store:         store,
		clock:         clock,
		log:           logger,
		observers:     opts.Observers,
		limitEnabled:  opts.DailyLimitEnabled,
		maxPerDay:     opts.MaxNewPerDay,
		baseIntervals: base,
		overrides:     make(map[int]time.Duration),
		ledger:        NewBoxLedger(),
		pauses:        NewPauseRegistry(),
		budget:        NewDailyNewCardBudget(opts.Location),
		focus:         NewFocusQueue(),
	}
	s.load()
	return s, nil
}

// AddObserver registers o for future gradings.
func (s *Scheduler) AddObserver(o Observer) {
	s.observers = append(s.observers, o)
}

func (s *Scheduler) intervals() IntervalTable {
	return s.baseIntervals.WithOverrides(s.overrides)
}

// Intervals returns the effective interval table.
func (s *Scheduler) Intervals() IntervalTable { return s.intervals() }

// Now returns the scheduler clock's time.
func (s *Scheduler) Now() time.Time { return s.clock.Now() }

// RecordAnswer applies the grading outcome to the card and stamps its
// review time.
func (s *Scheduler) RecordAnswer(id CardID, outcome Outcome) (Transition, error) {
	if !outcome.IsValid() {
		return Transition{}, fmt.Errorf("%w: %d", ErrInvalidOutcome, int(outcome))
	}
	tr := s.ledger.Grade(id, outcome, s.clock.Now())
	s.log.Debug().
		Str("card", id.Short()).
		Stringer("outcome", outcome).
		Int("from", tr.From).
		Int("to", tr.To).
		Msg("graded")
	if err := s.persist(KeyBoxes, KeyReviewTimestamps); err != nil {
		return tr, err
	}
	for _, o := range s.observers {
		o.CardGraded(tr)
	}
	return tr, nil
}

// ResetCategory discards box and review history for every boxed card match
// accepts. It returns how many cards were reset. Pause and focus state are
// left alone.
func (s *Scheduler) ResetCategory(match func(CardID) bool) (int, error) {
	n := 0
	for _, id := range s.ledger.Cards() {
		if match(id) && s.ledger.Forget(id) {
			n++
		}
	}
	if n == 0 {
		return 0, nil
	}
	s.log.Info().Int("cards", n).Msg("category reset")
	return n, s.persist(KeyBoxes, KeyReviewTimestamps)
}

// ResetCards discards box and review history for ids.
func (s *Scheduler) ResetCards(ids []CardID) (int, error) {
	set := toSet(ids)
	return s.ResetCategory(func(id CardID) bool {
		_, ok := set[id]
		return ok
	})
}

// Pause sets the card aside; it stops appearing as due until resumed.
func (s *Scheduler) Pause(id CardID) error {
	s.pauses.Pause(id, s.clock.Now())
	return s.persist(KeyPaused)
}

// Resume makes a paused card eligible again with its box and timestamp
// untouched. Resuming a card that is not paused is a no-op.
func (s *Scheduler) Resume(id CardID) error {
	if !s.pauses.Resume(id) {
		return nil
	}
	return s.persist(KeyPaused)
}

// IsPaused reports whether the card is paused.
func (s *Scheduler) IsPaused(id CardID) bool { return s.pauses.IsPaused(id) }

// PausedSince returns when the card was paused.
func (s *Scheduler) PausedSince(id CardID) (time.Time, bool) { return s.pauses.PausedSince(id) }

// Paused returns every paused card.
func (s *Scheduler) Paused() []CardID { return s.pauses.List() }

// Pin replaces the focus queue with ids and activates it.
func (s *Scheduler) Pin(ids []CardID) error {
	s.focus.Pin(ids)
	return s.persist(KeyFocusQueue)
}

// PopNext removes and returns the head of the focus queue.
func (s *Scheduler) PopNext() (CardID, bool, error) {
	id, ok := s.focus.PopNext()
	if !ok {
		return "", false, nil
	}
	return id, true, s.persist(KeyFocusQueue)
}

// ClearFocus empties and deactivates the focus queue.
func (s *Scheduler) ClearFocus() error {
	s.focus.Clear()
	return s.persist(KeyFocusQueue)
}

// IsFocusActive reports whether the focus queue overrides selection.
func (s *Scheduler) IsFocusActive() bool { return s.focus.IsActive() }

// FocusQueue returns the queued card ids in order.
func (s *Scheduler) FocusQueue() []CardID { return s.focus.Cards() }

// ConfirmDailyOverride lets this session keep introducing new cards after
// the daily cap is reached. The cap itself is unchanged.
func (s *Scheduler) ConfirmDailyOverride() {
	s.overrideConfirmed = true
}

// OverrideConfirmed reports whether ConfirmDailyOverride was called.
func (s *Scheduler) OverrideConfirmed() bool { return s.overrideConfirmed }

// SetIntervalOverride changes the wait for box b. Intended for debugging.
func (s *Scheduler) SetIntervalOverride(b int, d time.Duration) error {
	if err := validateOverride(b, d); err != nil {
		return err
	}
	s.overrides[b] = d
	s.due = NewDueCalculator(s.ledger, s.intervals())
	return s.persist(KeyBoxIntervalOverrides)
}

// ClearIntervalOverrides restores the configured interval table.
func (s *Scheduler) ClearIntervalOverrides() error {
	s.overrides = make(map[int]time.Duration)
	s.due = NewDueCalculator(s.ledger, s.intervals())
	return s.persist(KeyBoxIntervalOverrides)
}

// Box returns the card's box, or false if unseen.
func (s *Scheduler) Box(id CardID) (int, bool) { return s.ledger.Box(id) }

// LastReviewed returns when the card was last graded.
func (s *Scheduler) LastReviewed(id CardID) (time.Time, bool) { return s.ledger.LastReviewed(id) }

// NextDue returns when the card next becomes due.
func (s *Scheduler) NextDue(id CardID) (time.Time, bool) { return s.due.NextDue(id) }

// DueCards returns due, unpaused cards at the current time.
func (s *Scheduler) DueCards(ignoreBox0Wait bool) []CardID {
	return s.pauses.Filter(s.due.DueCards(s.clock.Now(), ignoreBox0Wait))
}

// DailyHistory returns new-card introductions per date key.
func (s *Scheduler) DailyHistory() map[string]int { return s.budget.History() }

func toSet(ids []CardID) map[CardID]struct{} {
	set := make(map[CardID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
