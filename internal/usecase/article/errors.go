// Package article provides the read and maintenance use cases over stored
// articles: filtered listing, aggregate stats, cleanup, targeted deletion,
// and re-categorization.
package article

import "errors"

// Sentinel errors for article use case operations.
var (
	// ErrArticleNotFound indicates that no article matched the given link.
	ErrArticleNotFound = errors.New("article not found")

	// ErrInvalidDays indicates a non-positive cleanup window.
	ErrInvalidDays = errors.New("days must be a positive integer")

	// ErrEmptySource indicates a delete-by-source request without a source name.
	ErrEmptySource = errors.New("source is required")

	// ErrEmptyLink indicates a delete request without a link.
	ErrEmptyLink = errors.New("link is required")
)
