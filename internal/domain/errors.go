package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a retrieval failure for presentation and HTTP mapping
type ErrorKind string

const (
	KindValidation            ErrorKind = "validation"
	KindBusy                  ErrorKind = "busy"
	KindInvalidState          ErrorKind = "invalid-state"
	KindNetwork               ErrorKind = "network"
	KindServer                ErrorKind = "server"
	KindMalformedResponse     ErrorKind = "malformed-response"
	KindUnexpectedContentType ErrorKind = "unexpected-content-type"
	KindUnknown               ErrorKind = "unknown"
)

// Validation failure reasons
const (
	ReasonNoMatch            = "no-match"
	ReasonQualityUnavailable = "quality-unavailable"
)

// ValidationError reports a bad or unsupported URL, or an unavailable
// quality label. Local failure, no network attempted.
type ValidationError struct {
	Reason  string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed (%s): %s", e.Reason, e.Message)
}

// BusyError rejects an intent because a same-kind request is already in
// flight. The pending request is neither queued behind nor cancelled.
type BusyError struct {
	Operation string
}

func (e *BusyError) Error() string {
	return fmt.Sprintf("%s already in progress", e.Operation)
}

// InvalidStateError rejects an intent the session's current phase does not
// permit.
type InvalidStateError struct {
	Phase  Phase
	Intent string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("cannot %s while session is %s", e.Intent, e.Phase)
}

// NetworkError reports a transport failure: the endpoint produced no
// response at all.
type NetworkError struct {
	Cause error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Cause)
}

func (e *NetworkError) Unwrap() error {
	return e.Cause
}

// ServerError reports a reachable endpoint answering with a non-success
// status. Message carries the server-supplied error text when available.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error (%d): %s", e.Status, e.Message)
}

// MalformedResponseError reports a success status whose payload violates the
// descriptor contract.
type MalformedResponseError struct {
	Message string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed response: %s", e.Message)
}

// UnexpectedContentTypeError reports an asset response whose declared media
// type does not match the requested content kind.
type UnexpectedContentTypeError struct {
	ContentType string
}

func (e *UnexpectedContentTypeError) Error() string {
	return fmt.Sprintf("unexpected response media type: %q", e.ContentType)
}

// KindOf classifies an error from the retrieval taxonomy
func KindOf(err error) ErrorKind {
	var (
		validationErr  *ValidationError
		busyErr        *BusyError
		stateErr       *InvalidStateError
		networkErr     *NetworkError
		serverErr      *ServerError
		malformedErr   *MalformedResponseError
		contentTypeErr *UnexpectedContentTypeError
	)
	switch {
	case errors.As(err, &validationErr):
		return KindValidation
	case errors.As(err, &busyErr):
		return KindBusy
	case errors.As(err, &stateErr):
		return KindInvalidState
	case errors.As(err, &networkErr):
		return KindNetwork
	case errors.As(err, &serverErr):
		return KindServer
	case errors.As(err, &malformedErr):
		return KindMalformedResponse
	case errors.As(err, &contentTypeErr):
		return KindUnexpectedContentType
	default:
		return KindUnknown
	}
}
