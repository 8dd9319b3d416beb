// Package oaserrors provides structured error types for the oasfixture engine.
//
// Import path: github.com/erraggy/oasfixture/oaserrors
//
// # Error Types
//
//   - [SchemaError]: the schema graph is structurally invalid for type mapping
//   - [ValueError]: a value violates its schema (enum membership, no oneOf match)
//   - [TypeError]: an untyped or mismatched value has an unsupported runtime shape
//   - [BindingError]: an operation argument is missing or undeclared
//   - [ParseError]: a document, scenario or data file could not be decoded
//   - [ConfigError]: invalid configuration or input options
//
// # Sentinel Errors
//
// Each error type has a corresponding sentinel error for use with errors.Is():
//
//   - [ErrSchema], [ErrValue], [ErrType], [ErrBinding], [ErrParse], [ErrConfig]
//
// # Propagation
//
// Mapping and rendering functions return these errors instead of sentinel
// values. Non-fatal conditions, such as a oneOf value that matches more than
// one alternative, are not errors: they are recorded as warning issues and
// the first match is used.
//
//	lit, err := renderer.Render(v, node)
//	switch {
//	case errors.Is(err, oaserrors.ErrSchema):
//	    // abort this generation target
//	case errors.Is(err, oaserrors.ErrValue), errors.Is(err, oaserrors.ErrType):
//	    // skip this value and record it
//	}
package oaserrors
