package store

import (
	"fmt"
)

type migration struct {
	Version     int
	Description string
	SQL         string
}

var migrations = []migration{
	{
		Version:     1,
		Description: "state_fields: per-profile scheduler state, one row per field",
		SQL: `
CREATE TABLE state_fields (
    profile    TEXT NOT NULL,
    key        TEXT NOT NULL,
    value      BLOB NOT NULL,
    updated_at INTEGER NOT NULL,
    PRIMARY KEY (profile, key)
);
`,
	},
	{
		Version:     2,
		Description: "cards: question bank catalog",
		SQL: `
CREATE TABLE cards (
    id            TEXT PRIMARY KEY,
    main_category TEXT NOT NULL,
    sub_category  TEXT NOT NULL DEFAULT '',
    prompt        TEXT NOT NULL,
    created_at    INTEGER NOT NULL
);

CREATE INDEX idx_cards_category ON cards(main_category, sub_category);
`,
	},
	{
		Version:     3,
		Description: "answers: grading history",
		SQL: `
CREATE TABLE answers (
    id          INTEGER PRIMARY KEY,
    profile     TEXT NOT NULL,
    card_id     TEXT NOT NULL,
    outcome     TEXT NOT NULL CHECK (outcome IN ('great', 'fair', 'poor')),
    from_box    INTEGER NOT NULL,
    to_box      INTEGER NOT NULL,
    first       INTEGER NOT NULL DEFAULT 0,
    answered_at INTEGER NOT NULL
);

CREATE INDEX idx_answers_profile  ON answers(profile, answered_at DESC);
CREATE INDEX idx_answers_card     ON answers(card_id);
`,
	},
}

func (db *DB) migrate() error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_versions (
			version     INTEGER PRIMARY KEY,
			description TEXT NOT NULL,
			applied_at  INTEGER NOT NULL DEFAULT (strftime('%s', 'now') * 1000)
		)
	`)
	if err != nil {
		return fmt.Errorf("create schema_versions: %w", err)
	}

	for _, m := range migrations {
		var count int
		if err := db.Get(&count, "SELECT COUNT(*) FROM schema_versions WHERE version = ?", m.Version); err != nil {
			return fmt.Errorf("check migration %d: %w", m.Version, err)
		}
		if count > 0 {
			continue
		}

		tx, err := db.Beginx()
		if err != nil {
			return fmt.Errorf("begin migration %d: %w", m.Version, err)
		}

		if _, err := tx.Exec(m.SQL); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d (%s): %w", m.Version, m.Description, err)
		}

		if _, err := tx.Exec(
			"INSERT INTO schema_versions (version, description) VALUES (?, ?)",
			m.Version, m.Description,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("record migration %d: %w", m.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %d: %w", m.Version, err)
		}
	}

	return nil
}

// SchemaVersion returns the current schema version.
func (db *DB) SchemaVersion() (int, error) {
	var version int
	err := db.Get(&version, "SELECT COALESCE(MAX(version), 0) FROM schema_versions")
	return version, err
}
