// Package common defines shared constants and sentinel errors used across
// the archive client layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Access control errors. Every mutating repository operation re-checks
	// admin status and fails with ErrAccessDenied for non-admin sessions.
	ErrAccessDenied = errors.New("access denied: admin privileges required")

	// Local store errors. A write whose payload exceeds the configured cap
	// fails with ErrQuotaExceeded; callers decide whether the operation is
	// still a best-effort success (remote copy exists) or must abort.
	ErrQuotaExceeded = errors.New("local storage quota exceeded")

	// Remote sync errors. Returned without attempting network I/O while the
	// sync client has not reported ready.
	ErrRemoteUnavailable = errors.New("remote store unavailable")

	// Auth errors (invalid, malformed or tampered session token).
	ErrInvalidToken = errors.New("invalid session token")
)
