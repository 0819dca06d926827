package domain

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound        = errors.New("not found")
	ErrValidation      = errors.New("validation error")
	ErrMissingLocation = errors.New("missing location")
	ErrUnknownMethod   = errors.New("unknown calculation method")
	ErrNoSolution      = errors.New("no solution")
	ErrInvalidRating   = errors.New("invalid quality rating")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

// UnknownMethodError reports a calculation method tag outside the supported set.
type UnknownMethodError struct {
	Method CalculationMethod
}

func (e *UnknownMethodError) Error() string {
	return fmt.Sprintf("calculation method %q: %s", string(e.Method), ErrUnknownMethod)
}

func (e *UnknownMethodError) Unwrap() error { return ErrUnknownMethod }

// NoSolutionError marks a single prayer whose defining solar event does not
// occur on the given date (polar day or night, unreachable twilight angle).
type NoSolutionError struct {
	Prayer PrayerName
	Date   time.Time
}

func (e *NoSolutionError) Error() string {
	return fmt.Sprintf("%s on %s: %s", e.Prayer, e.Date.Format(time.DateOnly), ErrNoSolution)
}

func (e *NoSolutionError) Unwrap() error { return ErrNoSolution }

// InvalidRatingError reports a quality rating outside 1..5.
type InvalidRatingError struct {
	Rating QualityRating
}

func (e *InvalidRatingError) Error() string {
	return fmt.Sprintf("rating %d: %s (want %d..%d)", int(e.Rating), ErrInvalidRating, MinQualityRating, MaxQualityRating)
}

func (e *InvalidRatingError) Unwrap() error { return ErrInvalidRating }
