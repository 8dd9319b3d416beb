package issues

import (
	"testing"

	"github.com/erraggy/oasfixture/internal/severity"
	"github.com/stretchr/testify/assert"
)

func TestIssueString(t *testing.T) {
	tests := []struct {
		name        string
		issue       Issue
		contains    []string
		notContains []string
	}{
		{
			name: "error severity with basic fields",
			issue: Issue{
				Path:     "body.status",
				Message:  "value is not an allowed enum value",
				Severity: severity.SeverityError,
			},
			contains:    []string{"✗", "body.status", "value is not an allowed enum value"},
			notContains: []string{"Context:", "operationId"},
		},
		{
			name: "critical severity",
			issue: Issue{
				Path:     "body",
				Message:  "unknown kind",
				Severity: severity.SeverityCritical,
			},
			contains: []string{"✗", "body", "unknown kind"},
		},
		{
			name: "warning with context and operation",
			issue: Issue{
				Path:      "body.data",
				Message:   "value matches more than one alternative",
				Severity:  severity.SeverityWarning,
				Context:   "matched: Foo, Bar",
				Operation: "CreateWidget",
			},
			contains: []string{"⚠", "body.data (operationId: CreateWidget)", "\n    Context: matched: Foo, Bar"},
		},
		{
			name:     "info with empty path",
			issue:    Issue{Message: "note", Severity: severity.SeverityInfo},
			contains: []string{"ℹ <root>: note"},
		},
		{
			name:     "unknown severity",
			issue:    Issue{Path: "x", Message: "y", Severity: severity.Severity(99)},
			contains: []string{"? x: y"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.issue.String()
			for _, s := range tt.contains {
				assert.Contains(t, got, s)
			}
			for _, s := range tt.notContains {
				assert.NotContains(t, got, s)
			}
		})
	}
}

func TestList(t *testing.T) {
	var l List
	assert.False(t, l.HasErrors())

	l.Warn("body.data", "ambiguous", 1)
	l.Add(Issue{Path: "body", Message: "info", Severity: severity.SeverityInfo})
	assert.Len(t, l, 2)
	assert.Equal(t, 1, l.Count(severity.SeverityWarning))
	assert.Equal(t, 1, l.Count(severity.SeverityInfo))
	assert.False(t, l.HasErrors())

	l.Add(Issue{Path: "body", Message: "bad", Severity: severity.SeverityError})
	assert.True(t, l.HasErrors())
	assert.Equal(t, severity.SeverityWarning, l[0].Severity)
	assert.Equal(t, 1, l[0].Value)
}
