package repository

import "errors"

var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("record not found")
	// ErrInsufficientCredits is returned when a reserve would drive the balance negative.
	ErrInsufficientCredits = errors.New("insufficient credits")
)
