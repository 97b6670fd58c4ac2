package models

import (
	"errors"
	"fmt"
)

// Fallback messages shown when the server gives no usable detail.
const (
	FallbackExtractMessage = "Failed to extract itinerary"
	FallbackDemoMessage    = "Failed to load demo"
)

// Domain specific errors.
var (
	ErrValidation      = errors.New("validation failed")
	ErrSchema          = errors.New("itinerary does not match schema")
	ErrRequestInFlight = errors.New("a request is already in flight")
	ErrNotConfigured   = errors.New("provider not configured")
	ErrNoContent       = errors.New("no content could be extracted")
)

// ValidationError is raised locally before any request is issued.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// ExtractionError is a non-2xx answer from an extraction endpoint.
// Message is the server detail, or a fallback when the body had none.
type ExtractionError struct {
	Status  int
	Message string
}

func (e *ExtractionError) Error() string {
	return e.Message
}

// TransportError is a network failure distinct from an HTTP error status.
type TransportError struct {
	Message string
	Err     error
}

func (e *TransportError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// SchemaError reports a payload that could not be turned into an Itinerary.
type SchemaError struct {
	Path   string
	Reason string
}

func (e *SchemaError) Error() string {
	if e.Path == "" {
		return "invalid itinerary: " + e.Reason
	}
	return fmt.Sprintf("invalid itinerary: %s: %s", e.Path, e.Reason)
}

func (e *SchemaError) Unwrap() error { return ErrSchema }

// HTTPError carries a status code and a user facing detail out of the backend services.
type HTTPError struct {
	Status int
	Detail string
	Err    error
}

func (e *HTTPError) Error() string {
	if e.Err == nil {
		return e.Detail
	}
	return fmt.Sprintf("%s: %v", e.Detail, e.Err)
}

func (e *HTTPError) Unwrap() error { return e.Err }

// UserMessage turns any composer error into the string displayed to the user.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var extractionErr *ExtractionError
	var transportErr *TransportError
	var schemaErr *SchemaError
	var validationErr *ValidationError

	switch {
	case errors.As(err, &extractionErr):
		return extractionErr.Message
	case errors.As(err, &transportErr):
		return transportErr.Message
	case errors.As(err, &schemaErr):
		return "The itinerary service returned an unexpected response"
	case errors.As(err, &validationErr):
		return "Please paste a video link"
	case errors.Is(err, ErrRequestInFlight):
		return "Still working on your last request"
	default:
		return FallbackExtractMessage
	}
}
