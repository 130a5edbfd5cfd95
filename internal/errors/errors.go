// Package errors provides the domain error taxonomy of the landed cost engine.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Type identifies the category of error
type Type string

const (
	// TypeMissingReference indicates a join target that does not exist
	TypeMissingReference Type = "MISSING_REFERENCE"

	// TypeMissingLane indicates no logistics lane for a required country pair
	TypeMissingLane Type = "MISSING_LANE"

	// TypeNoAssemblyOption indicates a SKU that cannot be built at a site
	TypeNoAssemblyOption Type = "NO_ASSEMBLY_OPTION"

	// TypeInvalidData indicates reference data breaking an invariant
	TypeInvalidData Type = "INVALID_DATA"

	// TypeInput indicates an invalid parameter or argument
	TypeInput Type = "INPUT_ERROR"

	// TypeParsing indicates a parsing error
	TypeParsing Type = "PARSING_ERROR"

	// TypeConfig indicates a configuration error
	TypeConfig Type = "CONFIG_ERROR"

	// TypeInternal indicates an internal error
	TypeInternal Type = "INTERNAL_ERROR"
)

// Error represents a domain error with context
type Error struct {
	Type    Type                   `json:"type"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// IsOfType checks if the error is of a specific type
func (e *Error) IsOfType(t Type) bool {
	return e.Type == t
}

// WithContext adds context to the error
func (e *Error) WithContext(key string, value interface{}) *Error {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// New creates a new error
func New(errType Type, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
	}
}

// Newf creates a new formatted error
func Newf(errType Type, format string, args ...interface{}) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an error with context
func Wrap(errType Type, message string, cause error) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

// IsType checks if an error, or any error it wraps, is of a specific type
func IsType(err error, t Type) bool {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Type == t
	}
	return false
}

// TypeOf returns the type of a domain error, or TypeInternal for foreign errors
func TypeOf(err error) Type {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Type
	}
	return TypeInternal
}

// MissingReference reports a join target absent from the reference data
func MissingReference(kind, id string) *Error {
	return Newf(TypeMissingReference, "%s not found: %s", kind, id).
		WithContext("kind", kind).
		WithContext("id", id)
}

// MissingLane reports a country pair with no logistics lane
func MissingLane(from, to string) *Error {
	return Newf(TypeMissingLane, "no logistics lane from %s to %s", from, to).
		WithContext("from", from).
		WithContext("to", to)
}

// NoAssemblyOption reports a SKU that is not buildable at a site
func NoAssemblyOption(sku, site string) *Error {
	return Newf(TypeNoAssemblyOption, "%s cannot be assembled at %s", sku, site).
		WithContext("sku", sku).
		WithContext("site", site)
}

// InvalidData reports a reference row breaking an invariant
func InvalidData(message string) *Error {
	return New(TypeInvalidData, message)
}

// Input creates an input error
func Input(message string) *Error {
	return New(TypeInput, message)
}

// Parsing creates a parsing error
func Parsing(message string, cause error) *Error {
	return Wrap(TypeParsing, message, cause)
}

// Config creates a configuration error
func Config(message string, cause error) *Error {
	return Wrap(TypeConfig, message, cause)
}

// Internal creates an internal error
func Internal(message string, cause error) *Error {
	return Wrap(TypeInternal, message, cause)
}
