// ABOUTME: Error handling utilities for API handlers
// ABOUTME: Converts domain errors to {error, details} JSON bodies with matching HTTP status

package handlers

import (
	"errors"
	"net/http"

	coreerrors "yomu-news-api/core/errors"
)

// ErrorResponse is the error body of every endpoint. It implements huma.StatusError.
type ErrorResponse struct {
	status  int
	Message string `json:"error"`
	Details string `json:"details,omitempty"`
}

// Error implements the error interface
func (e *ErrorResponse) Error() string {
	if e.Details != "" {
		return e.Message + ": " + e.Details
	}
	return e.Message
}

// GetStatus returns the HTTP status code
func (e *ErrorResponse) GetStatus() int {
	return e.status
}

func newError(status int, message string, err error) *ErrorResponse {
	resp := &ErrorResponse{status: status, Message: message}
	if err != nil {
		resp.Details = err.Error()
	}
	return resp
}

func badRequest(message string) *ErrorResponse {
	return &ErrorResponse{status: http.StatusBadRequest, Message: message}
}

// toHumaError converts domain errors to appropriate HTTP errors
func toHumaError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case coreerrors.IsValidation(err):
		return newError(http.StatusBadRequest, "Invalid request", err)
	case coreerrors.IsUnsupportedSource(err):
		return newError(http.StatusBadRequest, "Unsupported news source", err)
	case coreerrors.IsNotFound(err):
		return newError(http.StatusNotFound, "Not found", err)
	case coreerrors.IsSynthesis(err):
		return newError(http.StatusBadGateway, "Speech synthesis failed", err)
	}

	var apiErr *coreerrors.ExternalAPIError
	if errors.As(err, &apiErr) {
		if apiErr.StatusCode == http.StatusTooManyRequests {
			return newError(http.StatusTooManyRequests, "Rate limited by article source", err)
		}
		return newError(http.StatusInternalServerError, "Failed to fetch from article source", err)
	}

	return newError(http.StatusInternalServerError, "Internal server error", err)
}
