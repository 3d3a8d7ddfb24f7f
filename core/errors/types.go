// ABOUTME: Custom error types for the core business logic
// ABOUTME: Provides structured errors for better error handling and API responses

package errors

import (
	"errors"
	"fmt"
)

// NotFoundError represents a resource not found error
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// ExternalAPIError represents an error from an external API or article source
type ExternalAPIError struct {
	StatusCode int
	Message    string
	API        string
}

// Error implements the error interface
func (e *ExternalAPIError) Error() string {
	return fmt.Sprintf("external API error from %s: %d - %s", e.API, e.StatusCode, e.Message)
}

// UnsupportedSourceError is returned when no adapter is registered for a host
// and the selector is configured to reject unknown sources
type UnsupportedSourceError struct {
	Host string
}

// Error implements the error interface
func (e *UnsupportedSourceError) Error() string {
	return fmt.Sprintf("unsupported news source: %s", e.Host)
}

// SynthesisError represents a failed text-to-speech request
type SynthesisError struct {
	Voice   string
	Message string
	Err     error
}

// Error implements the error interface
func (e *SynthesisError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("speech synthesis failed for voice %s: %s: %v", e.Voice, e.Message, e.Err)
	}
	return fmt.Sprintf("speech synthesis failed for voice %s: %s", e.Voice, e.Message)
}

// Unwrap returns the underlying error
func (e *SynthesisError) Unwrap() error {
	return e.Err
}

// IsNotFound checks if an error is a NotFoundError
func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr)
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsExternalAPI checks if an error is an ExternalAPIError
func IsExternalAPI(err error) bool {
	var apiErr *ExternalAPIError
	return errors.As(err, &apiErr)
}

// IsUnsupportedSource checks if an error is an UnsupportedSourceError
func IsUnsupportedSource(err error) bool {
	var srcErr *UnsupportedSourceError
	return errors.As(err, &srcErr)
}

// IsSynthesis checks if an error is a SynthesisError
func IsSynthesis(err error) bool {
	var synthErr *SynthesisError
	return errors.As(err, &synthErr)
}

// WrapError wraps an error with additional context
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
