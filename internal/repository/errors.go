package repository

import "errors"

var (
	// ErrNotFound is returned when the requested entity does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique field (username, email,
	// chapter id) is already taken.
	ErrDuplicate = errors.New("record already exists")
)
