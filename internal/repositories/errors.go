package repositories

import "errors"

// ErrNotFound is wrapped by every repository when a lookup matches no record,
// so callers can classify misses with errors.Is without string comparison.
var ErrNotFound = errors.New("record not found")
