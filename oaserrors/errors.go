// Package oaserrors provides structured error types for oasfixture.
//
// These error types enable programmatic error handling via errors.Is() and
// errors.As(), allowing the driving layer to decide whether a failed value
// aborts the whole generation run or is skipped with a recorded warning.
//
// # Error Categories
//
//   - SchemaError: the schema graph cannot be mapped to a type (unknown or missing kind)
//   - ValueError: a runtime value does not satisfy its schema (enum, oneOf, null)
//   - TypeError: a runtime value has an unsupported shape for its schema
//   - BindingError: call arguments do not line up with an operation's parameters
//   - ParseError: the OpenAPI document or a data file could not be loaded
//   - ConfigError: invalid configuration or input options
//
// # Usage with errors.Is
//
//	lit, err := r.Render(v, node)
//	if errors.Is(err, oaserrors.ErrValue) {
//	    var valErr *oaserrors.ValueError
//	    if errors.As(err, &valErr) {
//	        fmt.Printf("bad value at %s: %v\n", valErr.Path, valErr.Value)
//	    }
//	}
package oaserrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrSchema indicates a structurally invalid schema.
	ErrSchema = errors.New("schema error")

	// ErrValue indicates a value that does not satisfy its schema.
	ErrValue = errors.New("value error")

	// ErrType indicates a value of an unsupported runtime type.
	ErrType = errors.New("type error")

	// ErrBinding indicates a mismatch between call arguments and operation parameters.
	ErrBinding = errors.New("binding error")

	// ErrParse indicates a parsing failure occurred.
	ErrParse = errors.New("parse error")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")
)

// SchemaError represents a schema node that cannot be mapped to a target type.
// It is fatal for the current generation target and is never retried.
type SchemaError struct {
	// Path is the structural path of the node (e.g., "body.widgets[0]")
	Path string
	// Schema is the reference name of the offending node, if any
	Schema string
	// Message describes the problem
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *SchemaError) Error() string {
	msg := "schema error"
	if e.Schema != "" {
		msg += " in " + e.Schema
	}
	if e.Path != "" {
		msg += " at " + e.Path
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *SchemaError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *SchemaError) Is(target error) bool {
	return target == ErrSchema
}

// ValueError represents a runtime value that does not satisfy its schema,
// such as an enum value outside the allowed set or a value that matches
// none of the alternatives of a oneOf.
type ValueError struct {
	// Path is the structural path of the value
	Path string
	// Value is the offending value
	Value any
	// Allowed lists the permitted values, when the schema enumerates them
	Allowed []any
	// Message describes the problem
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ValueError) Error() string {
	msg := "value error"
	if e.Path != "" {
		msg += " at " + e.Path
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if len(e.Allowed) > 0 {
		msg += fmt.Sprintf(" (allowed: %v)", e.Allowed)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ValueError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ValueError) Is(target error) bool {
	return target == ErrValue
}

// TypeError represents a value whose runtime shape is not supported by the
// schema it is rendered against.
type TypeError struct {
	// Path is the structural path of the value
	Path string
	// Value is the offending value
	Value any
	// Expected names the shape the schema requires (e.g., "string", "mapping")
	Expected string
	// Message describes the problem
	Message string
}

// Error returns a human-readable error message.
func (e *TypeError) Error() string {
	msg := "type error"
	if e.Path != "" {
		msg += " at " + e.Path
	}
	if e.Expected != "" {
		msg += ": expected " + e.Expected
		if e.Value != nil {
			msg += fmt.Sprintf(", got %T", e.Value)
		}
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *TypeError) Is(target error) bool {
	return target == ErrType
}

// BindingError represents call arguments that cannot be bound to the
// parameters of an operation.
type BindingError struct {
	// Operation is the operationId being assembled
	Operation string
	// Parameter is the parameter name that failed to bind
	Parameter string
	// Message describes the problem
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *BindingError) Error() string {
	msg := "binding error"
	if e.Operation != "" {
		msg += " in " + e.Operation
	}
	if e.Parameter != "" {
		msg += " for parameter " + e.Parameter
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *BindingError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *BindingError) Is(target error) bool {
	return target == ErrBinding
}

// ParseError represents a failure to load an OpenAPI document, a scenario
// file or a data value.
type ParseError struct {
	// Path is the file path or source identifier
	Path string
	// Message describes the parsing failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ParseError) Error() string {
	msg := "parse error"
	if e.Path != "" {
		msg += " in " + e.Path
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// ConfigError represents an invalid configuration or input.
type ConfigError struct {
	// Option is the name of the problematic configuration option
	Option string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}
