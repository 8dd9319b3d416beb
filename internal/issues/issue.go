// Package issues provides a unified issue type for problems recorded while
// mapping types, rendering literals and synthesizing fixtures.
package issues

import (
	"fmt"

	"github.com/erraggy/oasfixture/internal/severity"
)

// Issue represents a single non-fatal problem found during generation.
type Issue struct {
	// Path is the structural path to the value (e.g., "body.widgets[0].kind")
	Path string
	// Message is a human-readable description of the issue
	Message string
	// Severity indicates the severity level of the issue
	Severity severity.Severity
	// Field is the specific field name that has the issue
	Field string
	// Value is the problematic value (optional)
	Value any
	// Context provides additional information, such as the matching alternatives (optional)
	Context string
	// Operation is the operationId the issue was recorded for (optional)
	Operation string
}

// String returns a formatted string representation of the issue.
// Uses different symbols based on severity level:
// - "✗" for Error or Critical severity
// - "⚠" for Warning severity
// - "ℹ" for Info severity
func (i Issue) String() string {
	var symbol string
	switch i.Severity {
	case severity.SeverityError, severity.SeverityCritical:
		symbol = "✗"
	case severity.SeverityWarning:
		symbol = "⚠"
	case severity.SeverityInfo:
		symbol = "ℹ"
	default:
		symbol = "?"
	}

	path := i.Path
	if path == "" {
		path = "<root>"
	}
	if i.Operation != "" {
		path = fmt.Sprintf("%s (operationId: %s)", path, i.Operation)
	}

	result := fmt.Sprintf("%s %s: %s", symbol, path, i.Message)
	if i.Context != "" {
		result += fmt.Sprintf("\n    Context: %s", i.Context)
	}
	return result
}

// List is an ordered collection of issues.
type List []Issue

// Add appends an issue.
func (l *List) Add(issue Issue) {
	*l = append(*l, issue)
}

// Warn appends a warning-level issue for path.
func (l *List) Warn(path, message string, value any) {
	l.Add(Issue{Path: path, Message: message, Severity: severity.SeverityWarning, Value: value})
}

// Count returns the number of issues at exactly the given severity.
func (l List) Count(sev severity.Severity) int {
	n := 0
	for _, i := range l {
		if i.Severity == sev {
			n++
		}
	}
	return n
}

// HasErrors reports whether any issue is Error or Critical.
func (l List) HasErrors() bool {
	for _, i := range l {
		if i.Severity.AtLeast(severity.SeverityError) {
			return true
		}
	}
	return false
}
