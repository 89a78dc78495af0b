package store

import "errors"

var (
	// ErrNotFound is returned when no consultation has the requested id.
	ErrNotFound = errors.New("store: record not found")
	// ErrIntegrity is returned when a write is rejected by storage: a required
	// field is missing or the storage file cannot be written.
	ErrIntegrity = errors.New("store: integrity error")
	// ErrAuthFailure is returned for any rejected credential pair. Unknown
	// usernames and wrong passwords share it.
	ErrAuthFailure = errors.New("store: authentication failed")
)
