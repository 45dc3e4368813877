package link

import "errors"

var (
	// ErrConflict is returned when one side of a requested link is already
	// linked. Callers must unlink first; the service never auto-replaces.
	ErrConflict = errors.New("record is already linked")
	// ErrNotFound is returned when a referenced record or link does not exist.
	ErrNotFound = errors.New("link not found")
	// ErrOrphaned is returned by Resolve after it removed a link whose
	// referent no longer exists. Callers should treat the result as "no link"
	// but may want to log that cleanup occurred.
	ErrOrphaned = errors.New("dangling link removed")
)
