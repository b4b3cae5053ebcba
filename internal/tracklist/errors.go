package tracklist

import "errors"

var (
	// ErrPlayer wraps any failure surfaced by the remote player. The
	// underlying error text is preserved; nothing is retried here.
	ErrPlayer = errors.New("player request failed")

	// ErrCacheBusy is reported when an operation needs exclusive access to
	// the metadata cache while a conflicting access is outstanding, for
	// example a live iteration snapshot. This surfaces a borrow-discipline
	// violation to the caller instead of blocking on it.
	ErrCacheBusy = errors.New("metadata cache busy")
)
