// Package digest reports scheduler progress in the background: a periodic
// stats digest and an observer that reacts to box changes.
package digest

import (
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/rs/zerolog"

	"github.com/lazypower/leitner/internal/leitner"
)

// Notifier receives a profile's stats on every digest tick.
type Notifier interface {
	Notify(profile string, st leitner.Stats) error
}

// LogNotifier writes digests to a logger.
type LogNotifier struct {
	Log zerolog.Logger
}

// Notify logs one line per digest.
func (n LogNotifier) Notify(profile string, st leitner.Stats) error {
	n.Log.Info().
		Str("profile", profile).
		Int("due", st.Due).
		Int("seen", st.Seen).
		Int("mastered", st.Mastered).
		Int("new_today", st.NewToday).
		Int("paused", st.Paused).
		Ints("per_box", st.PerBox[:]).
		Msg("digest")
	return nil
}

// Digest periodically hands a profile's stats to a Notifier.
type Digest struct {
	cron     *gocron.Scheduler
	interval time.Duration
	profile  string
	stats    func() leitner.Stats
	notifier Notifier
	log      zerolog.Logger
}

// New creates a Digest. stats is called on the job goroutine; callers that
// share a Scheduler with request handlers must serialize inside it.
func New(interval time.Duration, profile string, stats func() leitner.Stats, notifier Notifier, log zerolog.Logger) *Digest {
	return &Digest{
		cron:     gocron.NewScheduler(time.UTC),
		interval: interval,
		profile:  profile,
		stats:    stats,
		notifier: notifier,
		log:      log,
	}
}

// Start schedules the digest job. The first digest runs after one interval.
func (d *Digest) Start() error {
	if d.interval <= 0 {
		return fmt.Errorf("digest interval must be positive, got %s", d.interval)
	}
	if _, err := d.cron.Every(d.interval).WaitForSchedule().Do(d.run); err != nil {
		return fmt.Errorf("schedule digest: %w", err)
	}
	d.cron.StartAsync()
	return nil
}

// Stop terminates the digest job.
func (d *Digest) Stop() {
	d.cron.Stop()
}

// RunNow produces one digest immediately.
func (d *Digest) RunNow() error {
	return d.notifier.Notify(d.profile, d.stats())
}

func (d *Digest) run() {
	if err := d.RunNow(); err != nil {
		d.log.Error().Err(err).Str("profile", d.profile).Msg("digest failed")
	}
}
