package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/lazypower/leitner/internal/config"
	"github.com/lazypower/leitner/internal/leitner"
	"github.com/lazypower/leitner/internal/logger"
	"github.com/lazypower/leitner/internal/store"
)

// session bundles what every study command needs: config, the open
// database and the profile's scheduler.
type session struct {
	cfg     config.Config
	db      *store.DB
	sched   *leitner.Scheduler
	profile string
	log     zerolog.Logger
}

// openSession loads configuration, opens the database and builds the
// scheduler for the selected profile.
func openSession() (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log := logger.New(os.Stderr, cfg.Log.Format, cfg.Log.Level)

	db, err := openDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	profile := cfg.Scheduler.Profile
	if profileFlag != "" {
		profile = profileFlag
	}

	sched, err := newScheduler(cfg, db.Profile(profile), log)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &session{
		cfg:     cfg,
		db:      db,
		sched:   sched,
		profile: profile,
		log:     log,
	}, nil
}

func (s *session) Close() error {
	return s.db.Close()
}

// openDB opens the configured database, falling back to ~/.leitner.
func openDB(cfg config.Config) (*store.DB, error) {
	dbPath := cfg.Database.Path
	if dbPath == "" {
		var err error
		dbPath, err = store.DefaultDBPath()
		if err != nil {
			return nil, fmt.Errorf("resolve db path: %w", err)
		}
	}
	return store.Open(dbPath)
}

func newScheduler(cfg config.Config, st leitner.StateStore, log zerolog.Logger) (*leitner.Scheduler, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	sched, err := leitner.New(st, leitner.Options{
		Location:          loc,
		DailyLimitEnabled: cfg.Scheduler.DailyLimitEnabled,
		MaxNewPerDay:      cfg.Scheduler.MaxNewPerDay,
		DebugIntervals:    cfg.Scheduler.DebugIntervals,
		Logger:            &log,
	})
	if err != nil {
		return nil, fmt.Errorf("scheduler: %w", err)
	}
	return sched, nil
}

// candidates returns explicit ids when given, otherwise the catalog cards
// in the category.
func (s *session) candidates(args []string, mainCategory, subCategory string) ([]leitner.CardID, error) {
	if len(args) == 0 {
		return s.db.CardIDs(mainCategory, subCategory)
	}
	return parseCardIDs(args)
}

func parseCardIDs(args []string) ([]leitner.CardID, error) {
	ids := make([]leitner.CardID, 0, len(args))
	for _, a := range args {
		id, err := leitner.ParseCardID(a)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
