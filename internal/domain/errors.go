package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a domain failure so the transport layer can map it to a
// status code without inspecting messages.
type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindNotFound   ErrorKind = "not_found"
	KindConflict   ErrorKind = "conflict"
)

// Error is the failure type returned by the scheduling and seating services.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func NewValidationError(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func NewNotFoundError(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func NewConflictError(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func IsValidation(err error) bool { return hasKind(err, KindValidation) }
func IsNotFound(err error) bool   { return hasKind(err, KindNotFound) }
func IsConflict(err error) bool   { return hasKind(err, KindConflict) }

func hasKind(err error, kind ErrorKind) bool {
	var domainErr *Error
	return errors.As(err, &domainErr) && domainErr.Kind == kind
}

var (
	ErrRecordNotFound        = NewNotFoundError("record not found")
	ErrSessionOverlap        = NewConflictError("another active session in this hall overlaps the given time range")
	ErrSessionCancelled      = NewConflictError("cannot edit a cancelled session, restore it first")
	ErrRestoreOverlap        = NewConflictError("cannot restore: another active session in this hall overlaps this session's time range")
	ErrEditConflict          = NewConflictError("edit conflict")
	ErrSeatsLockedByBookings = NewConflictError("cannot change seats: there are bookings for sessions in this hall")
	ErrSeatsLockedBySessions = NewConflictError("cannot change seats: this hall already has sessions")
	ErrSeatsAlreadyGenerated = NewConflictError("seats already generated, regenerate is not allowed")
	ErrHallInUse             = NewConflictError("cannot delete hall: it still has sessions or bookings")
)
