package followers

import "errors"

var (
	// ErrAuthorization means no usable credential could be obtained.
	ErrAuthorization = errors.New("authorization failed")
	// ErrFetch means the follower listing could not be read completely.
	ErrFetch = errors.New("follower fetch failed")
	// ErrStorage means the database rejected a read or write.
	ErrStorage = errors.New("storage failure")
	// ErrNotFound is returned by lookups of absent records.
	ErrNotFound = errors.New("not found")
	// ErrRunInProgress means another process holds the run lock for the target.
	ErrRunInProgress = errors.New("run already in progress")
	// ErrCredentialRejected is returned by API clients when the platform
	// refuses the credential outright.
	ErrCredentialRejected = errors.New("credential rejected")
	// ErrCursorConsumed is returned when a follower cursor is drained twice.
	ErrCursorConsumed = errors.New("follower cursor already consumed")
)
