package model

import (
	"fmt"
	"strconv"
)

// ValidationError reports malformed client-side input. It never reaches the
// network.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ShapeError reports a server payload that failed normalization: a required
// field absent or of the wrong type while constructing Entity.
type ShapeError struct {
	Entity string
	Field  string
	Reason string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("malformed %s payload: field %q %s", e.Entity, e.Field, e.Reason)
}

// AuthError reports a missing, expired, or rejected credential.
type AuthError struct {
	Reason string
}

func (e *AuthError) Error() string {
	return "authentication failed: " + e.Reason
}

// ConflictError reports a uniqueness violation, e.g. registering an email
// that already has an account.
type ConflictError struct {
	Resource string
}

func (e *ConflictError) Error() string {
	return e.Resource + " already exists"
}

type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	if e.ID == 0 {
		return e.Entity + " not found"
	}
	return e.Entity + " " + strconv.FormatInt(e.ID, 10) + " not found"
}

// TimeoutError reports that the remote service did not answer within the
// operation's deadline.
type TimeoutError struct {
	Op string
}

func (e *TimeoutError) Error() string {
	return e.Op + " timed out"
}

// TransportError reports a connectivity failure or an unclassifiable remote
// response.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	if e.Err == nil {
		return e.Op + " failed"
	}
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
