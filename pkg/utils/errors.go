package utils

import (
	"fmt"
	"net/http"
)

// CustomError represents a custom application error
type CustomError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

func (e *CustomError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Detail)
	}
	return e.Message
}

// NewDependencyError marks a required backing store as unreachable. These
// propagate to the caller unchanged; no inline retry.
func NewDependencyError(detail string) *CustomError {
	return &CustomError{
		Code:    http.StatusBadGateway,
		Message: "Dependency unavailable",
		Detail:  detail,
	}
}

// NewTranslationError wraps a provider failure. Callers absorb these with a
// default-locale fallback; they are logged, never surfaced.
func NewTranslationError(detail string) *CustomError {
	return &CustomError{
		Code:    http.StatusBadGateway,
		Message: "Translation failed",
		Detail:  detail,
	}
}
