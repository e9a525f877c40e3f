package leitner

import (
	"encoding"
	"fmt"
	"strings"
)

// Outcome is the learner's self-assessment after seeing a card.
type Outcome int

const (
	Poor  Outcome = iota + 1 // Did not recall.
	Fair                     // Recalled with effort.
	Great                    // Recalled easily.
)

var (
	outcomeNames  = [...]string{Poor: "poor", Fair: "fair", Great: "great"}
	outcomeByName = map[string]Outcome{
		"poor":  Poor,
		"fair":  Fair,
		"great": Great,
	}
)

// Compile-time interface checks.
var (
	_ fmt.Stringer             = Outcome(0)
	_ encoding.TextMarshaler   = Outcome(0)
	_ encoding.TextUnmarshaler = (*Outcome)(nil)
	_ fmt.Stringer             = Origin(0)
	_ encoding.TextMarshaler   = Origin(0)
	_ encoding.TextUnmarshaler = (*Origin)(nil)
)

// IsValid reports whether o is Poor, Fair or Great.
func (o Outcome) IsValid() bool {
	return o >= Poor && o <= Great
}

// String returns "poor", "fair" or "great", or "Outcome(n)" for invalid values.
func (o Outcome) String() string {
	if o.IsValid() {
		return outcomeNames[o]
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// MarshalText implements encoding.TextMarshaler.
func (o Outcome) MarshalText() ([]byte, error) {
	if !o.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidOutcome, int(o))
	}
	return []byte(outcomeNames[o]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Matching is case-insensitive.
func (o *Outcome) UnmarshalText(text []byte) error {
	v, err := ParseOutcome(string(text))
	if err != nil {
		return err
	}
	*o = v
	return nil
}

// ParseOutcome parses "great", "fair" or "poor" (any case).
func ParseOutcome(s string) (Outcome, error) {
	v, ok := outcomeByName[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidOutcome, s)
	}
	return v, nil
}

// Origin tells the caller why a card was selected.
type Origin int

const (
	OriginNone       Origin = iota // Nothing to serve.
	OriginRepetition               // A due, relaxed or pinned card.
	OriginNew                      // A never-boxed card.
)

var originNames = [...]string{OriginNone: "none", OriginRepetition: "repetition", OriginNew: "new"}

// String returns "none", "repetition" or "new".
func (o Origin) String() string {
	if o >= OriginNone && o <= OriginNew {
		return originNames[o]
	}
	return fmt.Sprintf("Origin(%d)", int(o))
}

// MarshalText implements encoding.TextMarshaler.
func (o Origin) MarshalText() ([]byte, error) {
	if o < OriginNone || o > OriginNew {
		return nil, fmt.Errorf("%w: %d", ErrInvalidOrigin, int(o))
	}
	return []byte(originNames[o]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Origin) UnmarshalText(text []byte) error {
	for i, name := range originNames {
		if name == string(text) {
			*o = Origin(i)
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrInvalidOrigin, text)
}
