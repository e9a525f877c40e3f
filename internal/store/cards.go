package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lazypower/leitner/internal/leitner"
)

// Card is a question bank entry.
type Card struct {
	ID           leitner.CardID `db:"id" json:"id"`
	MainCategory string         `db:"main_category" json:"main_category"`
	SubCategory  string         `db:"sub_category" json:"sub_category"`
	Prompt       string         `db:"prompt" json:"prompt"`
	CreatedAt    int64          `db:"created_at" json:"created_at"`
}

// Category is a (main, sub) pair with its card count.
type Category struct {
	MainCategory string `db:"main_category" json:"main_category"`
	SubCategory  string `db:"sub_category" json:"sub_category"`
	Cards        int    `db:"cards" json:"cards"`
}

// AddCard registers a card under its derived id. Adding the same card again
// returns the existing row and created=false.
func (db *DB) AddCard(mainCategory, subCategory, prompt string) (*Card, bool, error) {
	mainCategory = strings.TrimSpace(mainCategory)
	subCategory = strings.TrimSpace(subCategory)
	prompt = strings.TrimSpace(prompt)
	if mainCategory == "" || prompt == "" {
		return nil, false, fmt.Errorf("add card: main category and prompt are required")
	}

	id := leitner.NewCardID(mainCategory, subCategory, prompt)
	now := time.Now().UnixMilli()
	result, err := db.Exec(`
		INSERT OR IGNORE INTO cards (id, main_category, sub_category, prompt, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, id, mainCategory, subCategory, prompt, now)
	if err != nil {
		return nil, false, fmt.Errorf("insert card: %w", err)
	}
	rows, _ := result.RowsAffected()

	card, err := db.GetCard(id)
	if err != nil {
		return nil, false, err
	}
	return card, rows > 0, nil
}

// GetCard returns a card by id, or nil if it does not exist.
func (db *DB) GetCard(id leitner.CardID) (*Card, error) {
	var c Card
	err := db.Get(&c, `
		SELECT id, main_category, sub_category, prompt, created_at
		FROM cards WHERE id = ?
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get card: %w", err)
	}
	return &c, nil
}

// ListCards returns the cards of a category in insertion order. An empty
// main category matches every card; an empty sub category matches the whole
// main category.
func (db *DB) ListCards(mainCategory, subCategory string) ([]Card, error) {
	query := `SELECT id, main_category, sub_category, prompt, created_at FROM cards`
	var (
		where []string
		args  []any
	)
	if mainCategory != "" {
		where = append(where, "main_category = ?")
		args = append(args, mainCategory)
		if subCategory != "" {
			where = append(where, "sub_category = ?")
			args = append(args, subCategory)
		}
	}
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at, id"

	var cards []Card
	if err := db.Select(&cards, query, args...); err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}
	return cards, nil
}

// CardIDs returns the ids of ListCards(mainCategory, subCategory), the
// candidate set for a category filter.
func (db *DB) CardIDs(mainCategory, subCategory string) ([]leitner.CardID, error) {
	cards, err := db.ListCards(mainCategory, subCategory)
	if err != nil {
		return nil, err
	}
	ids := make([]leitner.CardID, len(cards))
	for i, c := range cards {
		ids[i] = c.ID
	}
	return ids, nil
}

// Categories returns every (main, sub) pair with its card count.
func (db *DB) Categories() ([]Category, error) {
	var cats []Category
	err := db.Select(&cats, `
		SELECT main_category, sub_category, COUNT(*) AS cards
		FROM cards GROUP BY main_category, sub_category
		ORDER BY main_category, sub_category
	`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return cats, nil
}
