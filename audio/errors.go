package audio

import "errors"

var (
	// ErrNotFound indicates the identifier resolves to no stored record.
	ErrNotFound = errors.New("audio record not found")
	// ErrDuplicateName indicates a create or rename collides with an existing name.
	ErrDuplicateName = errors.New("audio name already exists")
	// ErrEmptyName indicates the candidate name is empty after trimming.
	ErrEmptyName = errors.New("audio name is empty")
)
