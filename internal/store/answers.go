package store

import (
	"fmt"

	"github.com/lazypower/leitner/internal/leitner"
)

// Answer is one logged grading.
type Answer struct {
	ID         int64          `db:"id" json:"id"`
	Profile    string         `db:"profile" json:"profile"`
	CardID     leitner.CardID `db:"card_id" json:"card_id"`
	Outcome    string         `db:"outcome" json:"outcome"`
	FromBox    int            `db:"from_box" json:"from_box"`
	ToBox      int            `db:"to_box" json:"to_box"`
	First      bool           `db:"first" json:"first"`
	AnsweredAt int64          `db:"answered_at" json:"answered_at"`
}

// LogAnswer appends a grading transition to the profile's history.
func (db *DB) LogAnswer(profile string, tr leitner.Transition) error {
	_, err := db.Exec(`
		INSERT INTO answers (profile, card_id, outcome, from_box, to_box, first, answered_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, profile, tr.Card, tr.Outcome.String(), tr.From, tr.To, tr.First, tr.At.UnixMilli())
	if err != nil {
		return fmt.Errorf("log answer: %w", err)
	}
	return nil
}

// RecentAnswers returns the profile's latest gradings, newest first.
func (db *DB) RecentAnswers(profile string, limit int) ([]Answer, error) {
	var answers []Answer
	err := db.Select(&answers, `
		SELECT id, profile, card_id, outcome, from_box, to_box, first, answered_at
		FROM answers WHERE profile = ?
		ORDER BY answered_at DESC, id DESC LIMIT ?
	`, profile, limit)
	if err != nil {
		return nil, fmt.Errorf("recent answers: %w", err)
	}
	return answers, nil
}

// AnswerCount returns how many gradings the profile has logged for a card.
func (db *DB) AnswerCount(profile string, id leitner.CardID) (int, error) {
	var n int
	err := db.Get(&n, `SELECT COUNT(*) FROM answers WHERE profile = ? AND card_id = ?`, profile, id)
	if err != nil {
		return 0, fmt.Errorf("count answers: %w", err)
	}
	return n, nil
}
