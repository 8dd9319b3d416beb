// Package severity provides severity level constants and utilities
// for issues reported while mapping types, rendering literals and
// synthesizing fixtures.
//
// The severity levels are ordered from least to most severe:
// Info < Warning < Error < Critical
package severity

// Severity indicates the severity level of an issue recorded during
// generation.
type Severity int

const (
	// SeverityError indicates a value or schema that could not be rendered.
	// The driving layer skips the affected target and keeps going.
	SeverityError Severity = iota

	// SeverityWarning indicates an ambiguity that was resolved with a
	// fallback, such as a oneOf value matching more than one alternative.
	SeverityWarning

	// SeverityInfo indicates informational messages about processing choices.
	SeverityInfo

	// SeverityCritical indicates a schema that cannot be mapped at all.
	// Generation of the current target is aborted.
	SeverityCritical
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// AtLeast reports whether s is at least as severe as other.
func (s Severity) AtLeast(other Severity) bool {
	return s.rank() >= other.rank()
}

func (s Severity) rank() int {
	switch s {
	case SeverityInfo:
		return 0
	case SeverityWarning:
		return 1
	case SeverityError:
		return 2
	case SeverityCritical:
		return 3
	default:
		return -1
	}
}
