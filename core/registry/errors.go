package registry

import "errors"

var (
	// ErrDuplicateID is returned when a filter is registered under an id
	// already present in the registry. Registration is aborted and the
	// registry is left unchanged.
	ErrDuplicateID = errors.New("duplicate filter id")

	// ErrUnknownID is returned by queries and mutations naming an
	// unregistered filter id. The operation is a no-op.
	ErrUnknownID = errors.New("unknown filter id")
)
