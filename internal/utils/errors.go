package utils

import (
	"errors"
	"fmt"
	"net/http"
)

/*
   Sentinel errors for the rental domain logic.
   Controllers and services do: if errors.Is(err, ErrXYZ) { ... }
*/
var (
	ErrInvalidTransition = errors.New("invalid_transition")
	ErrRangeUnavailable  = errors.New("range_unavailable")
	ErrFlatNotRentable   = errors.New("flat_not_rentable")
	ErrForbidden         = errors.New("forbidden")
	ErrNotFound          = errors.New("not_found")
	ErrSlotUnclaimable   = errors.New("slot_unclaimable")
	ErrNoRowsUpdated     = errors.New("no_rows_updated")

	// For concurrency conflicts on versioned rows
	ErrRowVersionConflict = errors.New("row_version_conflict")

	// Reference draws that lost a race to the unique index redraw;
	// a generator that never wins inside its budget gives up.
	ErrReferenceTaken          = errors.New("reference_taken")
	ErrReferenceSpaceExhausted = errors.New("reference_space_exhausted")
)

// FieldError carries one field-level validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

/*
   ValidationError aggregates field-level failures from the boundary
   (malformed drafts, bad date order, missing reasons, ...). It is
   caller-correctable and never retried.
*/
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 1 {
		return fmt.Sprintf("validation failed: %s %s", e.Fields[0].Field, e.Fields[0].Message)
	}
	return fmt.Sprintf("validation failed on %d fields", len(e.Fields))
}

// NewValidationError is a convenience for single-field failures.
func NewValidationError(field, message string) error {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}

// AppError for structured error handling from services to controllers.
type AppError struct {
	StatusCode int
	Code       string
	Message    string
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// HandleAppError centralizes responding to service-layer errors,
// mapping the domain taxonomy onto HTTP status codes.
func HandleAppError(w http.ResponseWriter, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		RespondErrorWithCode(w, appErr.StatusCode, appErr.Code, appErr.Message, nil, appErr.Err)
		return
	}

	var valErr *ValidationError
	switch {
	case errors.As(err, &valErr):
		RespondErrorWithCode(w, http.StatusBadRequest, ErrCodeValidation, valErr.Error(), valErr.Fields, nil)
	case errors.Is(err, ErrInvalidTransition):
		RespondErrorWithCode(w, http.StatusConflict, ErrCodeInvalidTransition, "The requested state change is not allowed from the current state", nil, err)
	case errors.Is(err, ErrRangeUnavailable):
		RespondErrorWithCode(w, http.StatusConflict, ErrCodeConflict, "This flat is unavailable for that period", nil, err)
	case errors.Is(err, ErrFlatNotRentable):
		RespondErrorWithCode(w, http.StatusForbidden, ErrCodeForbidden, "This flat is not open for rental", nil, err)
	case errors.Is(err, ErrForbidden):
		RespondErrorWithCode(w, http.StatusForbidden, ErrCodeForbidden, "You are not allowed to perform this action", nil, err)
	case errors.Is(err, ErrNotFound):
		RespondErrorWithCode(w, http.StatusNotFound, ErrCodeNotFound, "Resource not found", nil, err)
	default:
		RespondErrorWithCode(w, http.StatusInternalServerError, ErrCodeInternal, "An unexpected error occurred, please try again", nil, err)
	}
}
