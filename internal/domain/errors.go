package domain

import "errors"

// Failure taxonomy shared by all layers. Adapters map their own failures onto
// these sentinels; handlers map them onto HTTP statuses.
var (
	// ErrUnauthenticated: the request carried no verified subject.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrForbidden: the subject is verified but does not own the resource.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound: the referenced hotel or room does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation: field constraints violated; nothing was persisted.
	ErrValidation = errors.New("validation failed")

	// ErrStoreUnavailable: the relational or blob store is unreachable or
	// erroring. The operation may be retried by the caller as a whole.
	ErrStoreUnavailable = errors.New("store unavailable")
)
