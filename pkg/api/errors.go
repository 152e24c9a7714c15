package api

import "errors"

// Machine-readable error codes carried by the taxonomy types.
const (
	CodeAuthentication = "AUTHENTICATION_ERROR"
	CodeValidation     = "VALIDATION_ERROR"
	CodeNotFound       = "NOT_FOUND"
	CodeNetwork        = "NETWORK_ERROR"
)

// networkFailureMessage is the fixed user-facing message for transport-level
// failures, as opposed to completed-but-unsuccessful HTTP responses.
const networkFailureMessage = "Network request failed. Please check your connection."

// APIError is the base API error: a human-readable message, the HTTP status
// that produced it (zero when none applies) and an optional machine code.
type APIError struct {
	Message string
	Status  int
	Code    string
}

func (e *APIError) Error() string {
	return e.Message
}

// AuthenticationError covers 401 and 403 responses.
type AuthenticationError struct {
	APIError
}

// ValidationError covers 400 and 422 responses and client-side response
// shape mismatches.
type ValidationError struct {
	APIError
}

// NotFoundError covers 404 responses.
type NotFoundError struct {
	APIError
}

// NetworkError is raised when the transport itself fails; it carries no
// HTTP status.
type NetworkError struct {
	APIError
}

func (e *AuthenticationError) Unwrap() error { return &e.APIError }
func (e *ValidationError) Unwrap() error     { return &e.APIError }
func (e *NotFoundError) Unwrap() error       { return &e.APIError }
func (e *NetworkError) Unwrap() error        { return &e.APIError }

// NewValidationError builds a ValidationError outside of response
// classification, e.g. for boundary shape checks.
func NewValidationError(message string, status int) *ValidationError {
	return &ValidationError{APIError{Message: message, Status: status, Code: CodeValidation}}
}

// NewNetworkError builds a NetworkError with the given message.
func NewNetworkError(message string) *NetworkError {
	return &NetworkError{APIError{Message: message, Code: CodeNetwork}}
}

// Classify maps a failed response's status code and extracted message to the
// matching taxonomy error. It is a pure function of (status, message);
// unmatched statuses fall back to the base APIError.
func Classify(status int, message string) error {
	switch status {
	case 401, 403:
		return &AuthenticationError{APIError{Message: message, Status: status, Code: CodeAuthentication}}
	case 404:
		return &NotFoundError{APIError{Message: message, Status: 404, Code: CodeNotFound}}
	case 400, 422:
		return &ValidationError{APIError{Message: message, Status: status, Code: CodeValidation}}
	default:
		return &APIError{Message: message, Status: status}
	}
}

// IsNotFound reports whether err is a NotFoundError anywhere in its chain.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
