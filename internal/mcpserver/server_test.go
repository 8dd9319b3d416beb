package mcpserver

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/erraggy/oasfixture/internal/issues"
	"github.com/erraggy/oasfixture/internal/severity"
)

func TestMakeSlice(t *testing.T) {
	assert.Nil(t, makeSlice[int](0))
	s := makeSlice[int](3)
	assert.Empty(t, s)
	assert.Equal(t, 3, cap(s))
}

func TestSanitizeError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "nil error returns empty string",
			err:  nil,
			want: "",
		},
		{
			name: "strips absolute path",
			err:  fmt.Errorf("failed to open /home/user/secret/api.yaml: no such file"),
			want: "failed to open <path>: no such file",
		},
		{
			name: "preserves non-path content",
			err:  fmt.Errorf("cannot render value at body.name"),
			want: "cannot render value at body.name",
		},
		{
			name: "strips multiple paths",
			err:  fmt.Errorf("load /tmp/a.yaml from /tmp/b.yaml failed"),
			want: "load <path> from <path> failed",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sanitizeError(tt.err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMakeIssues(t *testing.T) {
	assert.Nil(t, makeIssues(nil))

	got := makeIssues([]issues.Issue{
		{Path: "body.kind", Message: "value is not an allowed enum value", Severity: severity.SeverityWarning, Value: "hex"},
		{Message: "example source could not be formatted", Severity: severity.SeverityWarning, Context: "1:1: expected 'package'", Operation: "CreateWidget"},
	})
	assert.Equal(t, []issueOutput{
		{Severity: "warning", Path: "body.kind", Message: "value is not an allowed enum value", Context: "value: hex"},
		{Severity: "warning", Message: "example source could not be formatted", Context: "1:1: expected 'package'", Operation: "CreateWidget"},
	}, got)
}
