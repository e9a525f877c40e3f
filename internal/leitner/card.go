package leitner

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// CardID is the stable key of a card. It is derived once from the card's
// categories and prompt and never regenerated.
type CardID string

// PromptPrefixRunes is how much of the prompt text participates in the id.
const PromptPrefixRunes = 64

var cardNamespace = uuid.MustParse("6f1d3c2e-8b4a-5e7f-9a0b-1c2d3e4f5a6b")

// NewCardID derives the id for a card from its main category, sub category
// and the first PromptPrefixRunes runes of its prompt. Surrounding
// whitespace is ignored.
func NewCardID(mainCategory, subCategory, prompt string) CardID {
	p := []rune(strings.TrimSpace(prompt))
	if len(p) > PromptPrefixRunes {
		p = p[:PromptPrefixRunes]
	}
	name := strings.Join([]string{
		strings.TrimSpace(mainCategory),
		strings.TrimSpace(subCategory),
		string(p),
	}, "\x1f")
	return CardID(uuid.NewSHA1(cardNamespace, []byte(name)).String())
}

// ParseCardID validates s as a card id.
func ParseCardID(s string) (CardID, error) {
	u, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidCardID, s)
	}
	return CardID(u.String()), nil
}

// String returns the id text.
func (id CardID) String() string { return string(id) }

// Short returns the first eight characters, for log lines and tables.
func (id CardID) Short() string {
	if len(id) > 8 {
		return string(id[:8])
	}
	return string(id)
}
