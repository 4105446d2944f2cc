package domain

import "errors"

var (
	// ErrNotFound: the row (or a referenced property) does not exist.
	ErrNotFound = errors.New("not found")
	// ErrNoFields: an update patch carried nothing to write.
	ErrNoFields = errors.New("no fields to update")
	// ErrDuplicate: unique constraint violation.
	ErrDuplicate = errors.New("duplicate field value")
	// ErrForeignKey: referenced resource missing at the store level.
	ErrForeignKey = errors.New("referenced resource not found")
	// ErrRequired: NOT NULL violation reached the store.
	ErrRequired = errors.New("required field missing")
)
