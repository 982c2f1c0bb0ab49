package fetcher

import "errors"

var (
	// ErrInvalidURL indicates the feed URL failed validation.
	ErrInvalidURL = errors.New("invalid url")

	// ErrPrivateIP indicates the feed URL resolves to a private address.
	ErrPrivateIP = errors.New("url resolves to private ip")

	// ErrTooManyRedirects indicates the redirect limit was exceeded.
	ErrTooManyRedirects = errors.New("too many redirects")

	// ErrNoEntries indicates the feed parsed but contained no entries.
	ErrNoEntries = errors.New("no entries in feed")
)
