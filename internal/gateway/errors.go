package gateway

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a gateway failure.
type Kind string

const (
	// KindNetwork means no response was received (including timeouts).
	KindNetwork Kind = "network"
	// KindApplication means the server answered with a failure: a non-2xx
	// status or a 2xx body carrying success:false / error.
	KindApplication Kind = "application"
	// KindUnauthenticated means no valid token was available.
	KindUnauthenticated Kind = "unauthenticated"
)

var (
	// ErrNotAuthenticated is matched by errors.Is for KindUnauthenticated failures.
	ErrNotAuthenticated = errors.New("not authenticated")
)

// Error is the single normalized failure returned by every gateway call.
type Error struct {
	Kind   Kind
	Status int    // HTTP status, 0 when no response was received
	Msg    string // User-facing message
	Err    error  // Underlying error, if any
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s error (HTTP %d): %s", e.Kind, e.Status, e.Msg)
	}
	return fmt.Sprintf("%s error: %s", e.Kind, e.Msg)
}

// Message returns the human-readable text shown to the user.
func (e *Error) Message() string {
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrNotAuthenticated) work for unauthenticated failures.
func (e *Error) Is(target error) bool {
	return target == ErrNotAuthenticated && e.Kind == KindUnauthenticated
}

func networkError(err error, timedOut bool) *Error {
	msg := "could not reach the server"
	if timedOut {
		msg = "request timed out"
	}
	return &Error{Kind: KindNetwork, Msg: msg, Err: err}
}

func applicationError(status int, msg string) *Error {
	if msg == "" {
		msg = http.StatusText(status)
	}
	if msg == "" {
		msg = "request failed"
	}
	return &Error{Kind: KindApplication, Status: status, Msg: msg}
}

func unauthenticatedError(status int, err error) *Error {
	return &Error{Kind: KindUnauthenticated, Status: status, Msg: "not authenticated", Err: err}
}

// IsKind reports whether err is a gateway Error of kind k.
func IsKind(err error, k Kind) bool {
	var gwErr *Error
	return errors.As(err, &gwErr) && gwErr.Kind == k
}
