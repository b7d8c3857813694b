package errors

import (
	"fmt"
)

// ConfigurationError reports misuse of the runtime API: connecting a logic
// instance twice, mounting an adapter before an implementation is attached,
// and similar wiring mistakes. These fail fast rather than degrade silently.
type ConfigurationError struct {
	Component string
	Message   string
	Err       error
}

// NewConfigurationError constructs a ConfigurationError.
func NewConfigurationError(component, message string, err error) error {
	return &ConfigurationError{Component: component, Message: message, Err: err}
}

func (e *ConfigurationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Component != "" {
		return fmt.Sprintf("configuration error [%s]: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ConfigurationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError captures invalid options or descriptor fields detected at
// construction time.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// CatalogError represents a failure loading or parsing a primitive catalog
// file.
type CatalogError struct {
	Path    string
	Message string
	Err     error
}

// NewCatalogError constructs a CatalogError.
func NewCatalogError(path string, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &CatalogError{Path: path, Message: message, Err: err}
}

func (e *CatalogError) Error() string {
	if e == nil {
		return ""
	}
	if e.Path != "" {
		return fmt.Sprintf("catalog error: %s: %s", e.Path, e.Message)
	}
	return fmt.Sprintf("catalog error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *CatalogError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
