package errors

import (
	stderrors "errors"
	"fmt"
)

// SiteError is the structured error type for sitesearch.
// It carries enough context for logging and for user-visible status text.
type SiteError struct {
	// Code is the unique error code (e.g., "ERR_302_INDEX_HTTP_STATUS").
	Code string

	// Message is the human-readable error message.
	Message string

	// Category is the error category (Config, IO, Network, etc.).
	Category Category

	// Severity is the error severity level.
	Severity Severity

	// Details contains additional context as key-value pairs.
	Details map[string]string

	// Cause is the underlying error that caused this error.
	Cause error

	// Retryable indicates the failure is likely transient.
	Retryable bool

	// Suggestion is an actionable suggestion for the user.
	Suggestion string
}

// Error implements the error interface.
func (e *SiteError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for error chain support.
func (e *SiteError) Unwrap() error {
	return e.Cause
}

// Is matches errors by code so errors.Is works against code sentinels.
func (e *SiteError) Is(target error) bool {
	if t, ok := target.(*SiteError); ok {
		return e.Code == t.Code
	}
	return false
}

// WithDetail adds a key-value detail to the error.
func (e *SiteError) WithDetail(key, value string) *SiteError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// WithSuggestion adds an actionable suggestion for the user.
func (e *SiteError) WithSuggestion(suggestion string) *SiteError {
	e.Suggestion = suggestion
	return e
}

// New creates a new SiteError with the given code and message.
// Category, severity, and retryable flag are derived from the code.
func New(code string, message string, cause error) *SiteError {
	return &SiteError{
		Code:      code,
		Message:   message,
		Category:  categoryFromCode(code),
		Severity:  severityFromCode(code),
		Cause:     cause,
		Retryable: isRetryableCode(code),
	}
}

// Wrap creates a SiteError from an existing error.
// The error's message becomes the SiteError message.
func Wrap(code string, err error) *SiteError {
	if err == nil {
		return nil
	}
	return New(code, err.Error(), err)
}

// ConfigError creates a configuration-related error.
func ConfigError(message string, cause error) *SiteError {
	return New(ErrCodeConfigInvalid, message, cause)
}

// ValidationError creates a validation-related error.
func ValidationError(message string, cause error) *SiteError {
	return New(ErrCodeInvalidInput, message, cause)
}

// InternalError creates an internal error.
func InternalError(message string, cause error) *SiteError {
	return New(ErrCodeInternal, message, cause)
}

// IsRetryable checks if an error is retryable.
func IsRetryable(err error) bool {
	var se *SiteError
	if stderrors.As(err, &se) {
		return se.Retryable
	}
	return false
}

// HasCode reports whether any SiteError in err's chain carries code.
func HasCode(err error, code string) bool {
	var se *SiteError
	for err != nil {
		if !stderrors.As(err, &se) {
			return false
		}
		if se.Code == code {
			return true
		}
		err = se.Cause
	}
	return false
}

// GetCode extracts the error code from the first SiteError in the chain.
// Returns empty string if there is none.
func GetCode(err error) string {
	var se *SiteError
	if stderrors.As(err, &se) {
		return se.Code
	}
	return ""
}

// GetCategory extracts the category from the first SiteError in the chain.
func GetCategory(err error) Category {
	var se *SiteError
	if stderrors.As(err, &se) {
		return se.Category
	}
	return ""
}
