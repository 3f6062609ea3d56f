// Package domain defines error types shared by the export profile and connection layers.
package domain

import "fmt"

// ConfigurationError indicates missing or contradictory command-line arguments or connection settings.
type ConfigurationError struct {
	Setting string // The setting at fault (e.g., "endpoint")
	Message string // Human-readable error message
	Cause   error  // Underlying error, if any
}

func (e *ConfigurationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid configuration for %s: %s (%v)", e.Setting, e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid configuration for %s: %s", e.Setting, e.Message)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Cause
}

// SigningError indicates that credentials could not be resolved or a request could not be signed.
type SigningError struct {
	Message string
	Cause   error
}

func (e *SigningError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *SigningError) Unwrap() error {
	return e.Cause
}

// ValidationError indicates that a parsed value is incompatible with the rest of its record,
// for example an RDF task type that requires a predicate but was given none.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error in %s: %s", e.Field, e.Message)
}

// ParseError indicates that a field could not be read from a structured document.
type ParseError struct {
	Field    string // Document field being parsed (e.g., "property")
	Context  string // Where in the document the failure occurred
	Expected string // What the parser expected to find
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("error parsing '%s' field for %s. Expected %s.", e.Field, e.Context, e.Expected)
}

// NewConfigurationError creates a new ConfigurationError
func NewConfigurationError(setting, message string, cause error) *ConfigurationError {
	return &ConfigurationError{
		Setting: setting,
		Message: message,
		Cause:   cause,
	}
}

// NewSigningError creates a new SigningError
func NewSigningError(message string, cause error) *SigningError {
	return &SigningError{
		Message: message,
		Cause:   cause,
	}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// NewParseError creates a new ParseError
func NewParseError(field, context, expected string) *ParseError {
	return &ParseError{
		Field:    field,
		Context:  context,
		Expected: expected,
	}
}
