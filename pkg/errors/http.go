package errors

import "fmt"

// HTTPError is an error that carries the HTTP status the delivery layer should answer with.
type HTTPError struct {
	Code       int
	Message    string
	StatusCode int
}

// NewHTTPError creates an HTTPError. Code doubles as the HTTP status.
func NewHTTPError(code int, message string) *HTTPError {
	return &HTTPError{
		Code:       code,
		Message:    message,
		StatusCode: code,
	}
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Code, e.Message)
}

// ValidationError describes a single invalid request field.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrorCollector gathers field errors for a 400 response.
type ValidationErrorCollector struct {
	errors []ValidationError
}

func NewValidationErrorCollector() *ValidationErrorCollector {
	return &ValidationErrorCollector{}
}

func (c *ValidationErrorCollector) Add(field, message string) {
	c.errors = append(c.errors, ValidationError{Field: field, Message: message})
}

func (c *ValidationErrorCollector) HasError() bool {
	return len(c.errors) > 0
}

func (c *ValidationErrorCollector) Errors() []ValidationError {
	return c.errors
}

func (c *ValidationErrorCollector) Error() string {
	return fmt.Sprintf("validation failed: %d field(s)", len(c.errors))
}
