package slidecache

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrEmptyKey     = errors.New("slidecache: key must be non-empty")
	ErrNilValue     = errors.New("slidecache: value must be non-nil")
	ErrNilOptions   = errors.New("slidecache: entry options must be non-nil")
	ErrEmptyPattern = errors.New("slidecache: pattern must be non-empty")
	ErrClosed       = errors.New("slidecache: cache is closed")

	// ErrNoConfig is returned by New when Options carry no way to dial.
	ErrNoConfig = errors.New("slidecache: one of Config, URL or NewClient is required")
)

// ExpirationError reports an absolute expiration that is not strictly after
// the entry's creation time. It is raised before any network interaction.
type ExpirationError struct {
	Creation time.Time
	Absolute time.Time
}

func (e *ExpirationError) Error() string {
	return fmt.Sprintf("slidecache: absolute expiration %s must be after creation time %s",
		e.Absolute.Format(time.RFC3339Nano), e.Creation.Format(time.RFC3339Nano))
}
