package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCatalog     = errors.New("invalid catalog")
	ErrUnknownDuration    = errors.New("unknown session duration")
	ErrEmptyDraft         = errors.New("observation text is required")
	ErrEmptySessionType   = errors.New("session type is required")
	ErrGenerationInFlight = errors.New("note generation already in progress")
	ErrSaveInFlight       = errors.New("final note save already in progress")
	ErrDraftLocked        = errors.New("draft can only change while awaiting input")
	ErrNotReviewing       = errors.New("no generated note to edit")
	ErrMissingNoteID      = errors.New("generation response carried no note id")
)

// TransportError means no response was obtained from the service.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: transport: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ServiceError means the service answered with a non-success status.
type ServiceError struct {
	Op     string
	Status int
	Detail string
}

func (e *ServiceError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s: service: %s", e.Op, e.Detail)
	}
	return fmt.Sprintf("%s: service returned %d: %s", e.Op, e.Status, e.Detail)
}

// ErrorKind classifies err for reporting.
func ErrorKind(err error) string {
	var te *TransportError
	var se *ServiceError
	switch {
	case errors.As(err, &te):
		return "transport"
	case errors.As(err, &se):
		return "service"
	default:
		return "internal"
	}
}
