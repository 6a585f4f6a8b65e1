package domain

import "errors"

var (
	// ErrUnauthenticated means no valid principal backs the request.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrAccessDenied is the marker every AccessDeniedError matches via
	// errors.Is. Callers branch on the kind, not on the reason text.
	ErrAccessDenied = errors.New("access denied")

	// ErrStoreUnavailable signals a transient store failure (timeout or
	// lost connection). Safe to retry.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// AccessDeniedError carries a human-readable reason for an authorization
// rejection. The reason is rendered to the caller; it must not reveal
// whether the probed resource exists.
type AccessDeniedError struct {
	Reason string
}

func (e *AccessDeniedError) Error() string {
	return "access denied: " + e.Reason
}

func (e *AccessDeniedError) Is(target error) bool {
	return target == ErrAccessDenied
}

// AccessDenied builds an AccessDeniedError with the given reason.
func AccessDenied(reason string) error {
	return &AccessDeniedError{Reason: reason}
}
