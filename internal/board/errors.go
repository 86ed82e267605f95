package board

import (
	"errors"
	"fmt"
)

// Transition rejections. These are returned before anything is mutated
// and before any remote call is made.
var (
	ErrUnknownProject           = errors.New("unknown project")
	ErrInvalidTransition        = errors.New("invalid status transition")
	ErrTransitionAlreadyPending = errors.New("a status change is already pending for this project")
)

// ErrNoOpTransition is the InvalidTransition case where the target equals the current status.
var ErrNoOpTransition = fmt.Errorf("%w: project is already in that status", ErrInvalidTransition)

// FailureKind classifies a failed remote status change.
type FailureKind int

const (
	// RemoteRejected means the service answered with an error (validation, conflict)
	RemoteRejected FailureKind = iota
	// NetworkFailure means the request could not complete
	NetworkFailure
)

func (k FailureKind) String() string {
	if k == NetworkFailure {
		return "network failure"
	}
	return "remote rejected"
}

// RemoteError is the structured error remote implementations return so the
// coordinator can tell a rejection from a transport failure.
type RemoteError struct {
	Kind    FailureKind
	Status  int    // HTTP status when there was one
	Message string // Server supplied message, shown verbatim to the user
	Err     error
}

// Error implements the error interface.
func (e *RemoteError) Error() string {
	switch {
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return e.Kind.String() + ": " + e.Err.Error()
	default:
		return e.Kind.String()
	}
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// Rejected builds a RemoteRejected error carrying a server message.
func Rejected(status int, message string) *RemoteError {
	return &RemoteError{Kind: RemoteRejected, Status: status, Message: message}
}

// Unreachable builds a NetworkFailure error around the transport error.
func Unreachable(err error) *RemoteError {
	return &RemoteError{Kind: NetworkFailure, Err: err}
}

// classifyFailure maps any error from a Remote onto a failure kind and the
// message the user should see. Errors that are not RemoteErrors are treated
// as network failures: the request did not produce a server answer.
func classifyFailure(err error) (FailureKind, string) {
	var remoteErr *RemoteError
	if errors.As(err, &remoteErr) {
		return remoteErr.Kind, remoteErr.Message
	}
	return NetworkFailure, ""
}
