package entity

import "errors"

var (
	// ErrEmptyLink is returned when an article has no link.
	ErrEmptyLink = errors.New("article link is required")

	// ErrEmptyTitle is returned when an article has no title.
	ErrEmptyTitle = errors.New("article title is required")

	// ErrDuplicateLink is returned when an article with the same link already exists.
	ErrDuplicateLink = errors.New("article link already exists")

	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("entity not found")
)
