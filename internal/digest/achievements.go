package digest

import (
	"github.com/rs/zerolog"

	"github.com/lazypower/leitner/internal/leitner"
)

// Achievements tracks promotions during a session and logs milestones.
// It implements leitner.Observer.
type Achievements struct {
	log        zerolog.Logger
	promotions int
	mastered   int
	streak     int
}

var _ leitner.Observer = (*Achievements)(nil)

// NewAchievements returns an observer logging to log.
func NewAchievements(log zerolog.Logger) *Achievements {
	return &Achievements{log: log.With().Str("component", "achievements").Logger()}
}

// CardGraded records the transition.
func (a *Achievements) CardGraded(tr leitner.Transition) {
	if tr.Outcome == leitner.Great {
		a.streak++
	} else {
		a.streak = 0
	}
	if tr.Promoted() {
		a.promotions++
		a.log.Debug().Str("card", tr.Card.Short()).Int("box", tr.To).Msg("promoted")
	}
	if tr.Mastered() {
		a.mastered++
		a.log.Info().Str("card", tr.Card.Short()).Int("session_mastered", a.mastered).Msg("card mastered")
	}
	if a.streak > 0 && a.streak%10 == 0 {
		a.log.Info().Int("streak", a.streak).Msg("great streak")
	}
}

// Promotions returns how many promotions were observed.
func (a *Achievements) Promotions() int { return a.promotions }

// Mastered returns how many cards reached the mastered box.
func (a *Achievements) Mastered() int { return a.mastered }

// Streak returns the current run of Great outcomes.
func (a *Achievements) Streak() int { return a.streak }
