package domain

import "errors"

// Error categories surfaced to the command boundary. Adapters wrap the
// underlying cause with fmt.Errorf("...: %w", Err...) so callers can match
// with errors.Is.
var (
	// ErrSourceUnreachable means a remote control plane could not be reached.
	ErrSourceUnreachable = errors.New("source unreachable")

	// ErrUnauthenticated means no usable cloud credentials were found.
	ErrUnauthenticated = errors.New("not authenticated")

	// ErrPermissionDenied means the credentials lack access to an API.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrNotFound means the requested remote resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrPersistence means the local document could not be read or written.
	ErrPersistence = errors.New("persistence failed")

	// ErrInvalidDescriptor means a fetched descriptor lacks required fields.
	ErrInvalidDescriptor = errors.New("invalid descriptor")
)
