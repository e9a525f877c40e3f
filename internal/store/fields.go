package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lazypower/leitner/internal/leitner"
)

// FieldStore is the state record of one learner profile. It implements
// leitner.StateStore.
type FieldStore struct {
	db      *DB
	profile string
}

var _ leitner.StateStore = (*FieldStore)(nil)

// Profile returns the field store for the named profile.
func (db *DB) Profile(name string) *FieldStore {
	return &FieldStore{db: db, profile: name}
}

// Name returns the profile name.
func (f *FieldStore) Name() string { return f.profile }

// Get returns the stored value of key. It reports false if the key was
// never written.
func (f *FieldStore) Get(key string) ([]byte, bool, error) {
	var value []byte
	err := f.db.Get(&value, `SELECT value FROM state_fields WHERE profile = ? AND key = ?`, f.profile, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get field %s/%s: %w", f.profile, key, err)
	}
	return value, true, nil
}

// Set writes key in a single statement.
func (f *FieldStore) Set(key string, value []byte) error {
	_, err := f.db.Exec(`
		INSERT INTO state_fields (profile, key, value, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (profile, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, f.profile, key, value, time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("set field %s/%s: %w", f.profile, key, err)
	}
	return nil
}

// Profiles returns every profile with stored state, sorted by name.
func (db *DB) Profiles() ([]string, error) {
	var names []string
	if err := db.Select(&names, `SELECT DISTINCT profile FROM state_fields ORDER BY profile`); err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	return names, nil
}
