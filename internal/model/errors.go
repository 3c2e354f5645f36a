package model

import "errors"

// Sentinel errors for the authorization and session core. Handlers map these
// to HTTP statuses in one place; services wrap them with context via %w.
var (
	// ErrUnauthenticated means no session, or an expired/invalidated one.
	ErrUnauthenticated = errors.New("not authenticated")

	// ErrForbidden means the session is valid but the role or tenant scope
	// does not admit the action.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound means a referenced tenant, tag or user does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict means a uniqueness violation that could not be folded into
	// an idempotent success.
	ErrConflict = errors.New("already exists")

	// ErrValidation means malformed or incomplete input.
	ErrValidation = errors.New("invalid input")

	// ErrAuditWrite means the audit entry for a privileged mutation could not
	// be persisted. The enclosing operation must fail rather than complete
	// unaudited.
	ErrAuditWrite = errors.New("audit write failed")
)
