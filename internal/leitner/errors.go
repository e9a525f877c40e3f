package leitner

import "errors"

// Sentinel errors for the leitner package.
// Use errors.Is to check: errors.Is(err, leitner.ErrInvalidOutcome)
var (
	ErrInvalidOutcome = errors.New("leitner: invalid grading outcome")
	ErrInvalidOrigin  = errors.New("leitner: invalid selection origin")
	ErrInvalidCardID  = errors.New("leitner: invalid card id")
	ErrInvalidBox     = errors.New("leitner: box index out of range")
	ErrInvalidLimit   = errors.New("leitner: daily new-card limit must not be negative")
)
