package feed

import (
	"errors"
	"fmt"
)

// ErrNoShop is reported when a document parses but carries no recognizable
// shop/catalog container at any supported depth.
var ErrNoShop = errors.New("feed: no shop container found")

// ErrKind discriminates sync failures so callers never have to sniff
// message strings.
type ErrKind string

const (
	KindTransport ErrKind = "transport"
	KindStructure ErrKind = "structure"
	KindStorage   ErrKind = "storage"
)

// SyncError wraps an underlying failure with its kind.
type SyncError struct {
	Kind ErrKind
	Err  error
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("feed sync (%s): %v", e.Kind, e.Err)
}

func (e *SyncError) Unwrap() error { return e.Err }

// KindOf extracts the error kind, defaulting to storage for plain errors
// surfaced from the persistence layer.
func KindOf(err error) ErrKind {
	var se *SyncError
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindStorage
}
