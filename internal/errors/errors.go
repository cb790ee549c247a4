package errors

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrorCode represents a category of application error.
type ErrorCode string

const (
	// ErrCodeConfigurationMissing indicates required environment configuration is absent.
	ErrCodeConfigurationMissing ErrorCode = "configuration_missing"
	// ErrCodeUpstreamHTTP indicates the analytics provider answered with a non-2xx status.
	ErrCodeUpstreamHTTP ErrorCode = "upstream_http"
	// ErrCodeUpstreamGraphQL indicates the provider reported a query error in the response body.
	ErrCodeUpstreamGraphQL ErrorCode = "upstream_graphql"
	// ErrCodeSchemaFieldUnsupported indicates a probed field does not exist in the provider schema.
	ErrCodeSchemaFieldUnsupported ErrorCode = "schema_field_unsupported"
	// ErrCodeAuthenticationFailed indicates a wrong or missing screener password.
	ErrCodeAuthenticationFailed ErrorCode = "authentication_failed"
	// ErrCodeValidation indicates invalid input data.
	ErrCodeValidation ErrorCode = "validation"
	// ErrCodeInternal indicates an internal server error.
	ErrCodeInternal ErrorCode = "internal"
	// ErrCodeTimeout indicates a timeout occurred.
	ErrCodeTimeout ErrorCode = "timeout"
	// ErrCodeCanceled indicates the operation was canceled.
	ErrCodeCanceled ErrorCode = "canceled"
)

// AppError represents a structured application error with a code, message, and optional cause.
// It supports error wrapping and unwrapping for use with errors.Is and errors.As.
type AppError struct {
	// Code categorizes the error type
	Code ErrorCode
	// Message is a human-readable error message
	Message string
	// Cause is the underlying error that caused this error (optional)
	Cause error
	// Field is the offending field: a form field, schema field, or env var list (optional)
	Field string
	// Status carries the upstream HTTP status for ErrCodeUpstreamHTTP
	Status int
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause, enabling errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// ConfigurationMissing reports the environment variables that must be set.
func ConfigurationMissing(vars ...string) *AppError {
	return &AppError{
		Code:    ErrCodeConfigurationMissing,
		Message: "missing env vars: " + strings.Join(vars, ", "),
		Field:   strings.Join(vars, ","),
	}
}

// UpstreamHTTP creates an error carrying the provider's HTTP status.
func UpstreamHTTP(status int, body string) *AppError {
	msg := fmt.Sprintf("cloudflare api error: %d", status)
	if body = strings.TrimSpace(body); body != "" {
		msg += ": " + body
	}
	return &AppError{
		Code:    ErrCodeUpstreamHTTP,
		Message: msg,
		Status:  status,
	}
}

// UpstreamGraphQL creates an error carrying the first GraphQL error message.
func UpstreamGraphQL(message string) *AppError {
	if strings.TrimSpace(message) == "" {
		message = "cloudflare api error"
	}
	return &AppError{
		Code:    ErrCodeUpstreamGraphQL,
		Message: message,
	}
}

// SchemaFieldUnsupported marks a schema field as absent.
func SchemaFieldUnsupported(field string, cause error) *AppError {
	return &AppError{
		Code:    ErrCodeSchemaFieldUnsupported,
		Message: fmt.Sprintf("field %s not supported", field),
		Field:   field,
		Cause:   cause,
	}
}

// AuthenticationFailed creates the single, non-revealing login failure.
func AuthenticationFailed() *AppError {
	return &AppError{
		Code:    ErrCodeAuthenticationFailed,
		Message: "invalid access key",
	}
}

// Validation creates a new Validation error.
func Validation(message string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: message,
	}
}

// Validationf creates a new Validation error with formatted message.
func Validationf(format string, args ...any) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: fmt.Sprintf(format, args...),
	}
}

// ValidationField creates a new Validation error for a specific field.
func ValidationField(field, message string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: message,
		Field:   field,
	}
}

// Internal creates a new Internal error.
func Internal(message string) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
	}
}

// Wrap wraps an existing error with an AppError, preserving the cause.
func Wrap(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an existing error with an AppError and formatted message.
func Wrapf(err error, code ErrorCode, format string, args ...any) *AppError {
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// FromContext maps context deadline and cancellation errors onto Timeout and Canceled.
// Other errors are returned unchanged.
func FromContext(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.DeadlineExceeded):
		return Wrap(err, ErrCodeTimeout, "operation timed out")
	case errors.Is(err, context.Canceled):
		return Wrap(err, ErrCodeCanceled, "operation canceled")
	default:
		return err
	}
}

// isCode checks if an error has a specific error code.
func isCode(err error, code ErrorCode) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// IsConfigurationMissing checks if an error is a ConfigurationMissing error.
func IsConfigurationMissing(err error) bool {
	return isCode(err, ErrCodeConfigurationMissing)
}

// IsUpstream reports whether the provider rejected the call at either the HTTP or GraphQL layer.
func IsUpstream(err error) bool {
	return isCode(err, ErrCodeUpstreamHTTP) || isCode(err, ErrCodeUpstreamGraphQL)
}

// IsSchemaFieldUnsupported checks if an error is a SchemaFieldUnsupported error.
func IsSchemaFieldUnsupported(err error) bool {
	return isCode(err, ErrCodeSchemaFieldUnsupported)
}

// IsAuthenticationFailed checks if an error is an AuthenticationFailed error.
func IsAuthenticationFailed(err error) bool {
	return isCode(err, ErrCodeAuthenticationFailed)
}

// IsValidation checks if an error is a Validation error.
func IsValidation(err error) bool {
	return isCode(err, ErrCodeValidation)
}

// IsInternal checks if an error is an Internal error.
func IsInternal(err error) bool {
	return isCode(err, ErrCodeInternal)
}

// GetCode returns the ErrorCode from an error, or empty string if not an AppError.
func GetCode(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// GetField returns the Field from an error, or empty string if not an AppError or no field set.
func GetField(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Field
	}
	return ""
}

// GetStatus returns the upstream HTTP status carried by err, or 0.
func GetStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status
	}
	return 0
}
