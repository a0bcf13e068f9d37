package bookingflow

import (
	"errors"
	"fmt"
)

// ErrorKind classifies workflow errors for the caller.
type ErrorKind string

const (
	// KindValidationRejected means the remote service rejected a malformed
	// or incomplete submission.
	KindValidationRejected ErrorKind = "VALIDATION_REJECTED"
	// KindDependencyUnavailable means a required, non-degradable remote
	// call failed.
	KindDependencyUnavailable ErrorKind = "DEPENDENCY_UNAVAILABLE"
	// KindSlotConflict means the booking failed because the slot was
	// already taken.
	KindSlotConflict ErrorKind = "SLOT_CONFLICT"
	// KindPrecondition means the operation was invoked in a workflow state
	// that does not allow it.
	KindPrecondition ErrorKind = "PRECONDITION_FAILED"
	// KindBusy means another operation on the same session is in flight.
	KindBusy ErrorKind = "OPERATION_IN_FLIGHT"
	// KindUnknown covers everything else, surfaced with a generic message.
	KindUnknown ErrorKind = "UNKNOWN"
)

const genericErrorMessage = "something went wrong, please try again"

// FlowError is the error type surfaced by the booking workflow. Message is
// user-facing; a server-supplied detail message is preferred over the
// generic fallback.
type FlowError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *FlowError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *FlowError) Unwrap() error {
	return e.Err
}

func newFlowError(kind ErrorKind, message string, err error) *FlowError {
	if message == "" {
		message = genericErrorMessage
	}
	return &FlowError{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the kind from an error, KindUnknown when it is not a
// FlowError.
func KindOf(err error) ErrorKind {
	var flowErr *FlowError
	if errors.As(err, &flowErr) {
		return flowErr.Kind
	}
	return KindUnknown
}

func asFlowError(err error) *FlowError {
	var flowErr *FlowError
	if errors.As(err, &flowErr) {
		return flowErr
	}
	return newFlowError(KindUnknown, genericErrorMessage, err)
}
