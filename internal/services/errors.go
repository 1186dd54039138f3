package services

import "fmt"

// ValidationError is a user-correctable input problem.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error on %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// ExtractionError means no text could be obtained from a file.
type ExtractionError struct {
	FileName string
	Message  string
	Cause    error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("extraction failed for %s: %s: %v", e.FileName, e.Message, e.Cause)
	}
	return fmt.Sprintf("extraction failed for %s: %s", e.FileName, e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

// ParseError means the model output could not be decoded as JSON.
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// ExternalServiceError wraps a failed call to the generative model or another remote dependency.
type ExternalServiceError struct {
	Service string
	Message string
	Cause   error
}

func (e *ExternalServiceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s call failed: %s: %v", e.Service, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s call failed: %s", e.Service, e.Message)
}

func (e *ExternalServiceError) Unwrap() error {
	return e.Cause
}
