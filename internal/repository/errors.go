package repository

import (
	"errors"
	"fmt"
)

// Lookup and configuration failures.
var (
	// ErrRunNotFound is returned when no run id starts with the given prefix.
	ErrRunNotFound = errors.New("run not found")

	// ErrAmbiguousID is matched by *AmbiguousIDError.
	ErrAmbiguousID = errors.New("ambiguous run id")

	// ErrNoRepository is returned when no repository location is configured.
	ErrNoRepository = errors.New("repository not configured")

	// ErrUnsupportedScheme is returned for repository URLs other than file://.
	ErrUnsupportedScheme = errors.New("unsupported repository location")
)

// AmbiguousIDError reports a partial id matching several runs.
type AmbiguousIDError struct {
	Prefix string
	Count  int
}

func (e *AmbiguousIDError) Error() string {
	return fmt.Sprintf("found %d experiments with id '%s'", e.Count, e.Prefix)
}

// Is makes errors.Is(err, ErrAmbiguousID) true.
func (e *AmbiguousIDError) Is(target error) bool {
	return target == ErrAmbiguousID
}
