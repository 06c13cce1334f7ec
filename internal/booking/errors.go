package booking

import (
	"errors"

	"github.com/teemow/slotbooker/internal/calendar"
)

// Kind classifies an operation failure.
type Kind string

const (
	// KindInput marks missing or malformed caller input. No remote call was
	// made; the caller can retry with corrected input.
	KindInput Kind = "input"

	// KindSession marks a transport or handshake failure acquiring the
	// backend session. Session state has been discarded, so retrying is safe.
	KindSession Kind = "session"

	// KindRemote marks a backend call that completed but reported a failure.
	// The backend's message is preserved verbatim.
	KindRemote Kind = "remote"

	// KindConflict marks a booking re-validation that found the slot taken.
	// Not a bug: the caller should re-fetch slots and pick another.
	KindConflict Kind = "conflict"
)

// Error is the typed failure returned by all three operations.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func inputError(message string) *Error {
	return &Error{Kind: KindInput, Message: message}
}

func conflictError(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// fromCalendarError maps the calendar client's error types onto the engine's
// taxonomy. Unknown errors are treated as remote failures.
func fromCalendarError(err error) *Error {
	var sessionErr *calendar.SessionError
	if errors.As(err, &sessionErr) {
		return &Error{Kind: KindSession, Message: err.Error(), Err: err}
	}

	var toolErr *calendar.ToolError
	if errors.As(err, &toolErr) {
		return &Error{Kind: KindRemote, Message: toolErr.Message, Err: err}
	}

	return &Error{Kind: KindRemote, Message: err.Error(), Err: err}
}

// KindOf extracts the failure kind from an operation error. Errors that did
// not originate here count as remote failures.
func KindOf(err error) Kind {
	var opErr *Error
	if errors.As(err, &opErr) {
		return opErr.Kind
	}
	return KindRemote
}
