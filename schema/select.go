package schema

import (
	"fmt"

	"github.com/erraggy/oasfixture/internal/httputil"
	"github.com/erraggy/oasfixture/internal/naming"
	"github.com/erraggy/oasfixture/oaserrors"
)

// BodySelector names the request body in Selector.Parameter.
const BodySelector = "body"

// Selector picks a single schema in a Document. Set Schema, or Operation
// with exactly one of Parameter or Response.
type Selector struct {
	Schema    string
	Operation string
	// Parameter is a parameter name, a multipart form field, or "body".
	Parameter string
	// Response is a status code such as "200", or "default".
	Response string
}

// Select returns the node s picks and the name anonymous objects inside it
// are aliased to. Selection failures are *oaserrors.ConfigError.
func (d *Document) Select(s Selector) (*Node, string, error) {
	if s.Schema != "" {
		if s.Operation != "" {
			return nil, "", selectError("set either schema or operation, not both")
		}
		n := d.Schema(s.Schema)
		if n == nil {
			return nil, "", selectError(fmt.Sprintf("schema %q not found", s.Schema))
		}
		return n, s.Schema, nil
	}
	if s.Operation == "" {
		return nil, "", selectError("schema or operation is required")
	}
	op := d.Operation(s.Operation)
	if op == nil {
		return nil, "", selectError(fmt.Sprintf("operation %q not found", s.Operation))
	}
	alias := naming.ToTitleCase(op.ID)

	switch {
	case s.Parameter != "" && s.Response != "":
		return nil, "", selectError("set either parameter or response, not both")
	case s.Parameter == BodySelector && !op.IsMultipart():
		if op.RequestBody == nil || op.RequestBody.Schema == nil {
			return nil, "", selectError(fmt.Sprintf("operation %q has no request body", op.ID))
		}
		return op.RequestBody.Schema, alias + "Body", nil
	case s.Parameter != "":
		if p := op.Parameter(s.Parameter); p != nil {
			return p.Schema, alias + naming.ToGoName(p.Name), nil
		}
		if op.IsMultipart() && op.RequestBody.Schema != nil {
			if n := op.RequestBody.Schema.Property(s.Parameter); n != nil {
				return n, alias + naming.ToGoName(s.Parameter), nil
			}
		}
		return nil, "", selectError(fmt.Sprintf("operation %q has no parameter %q", op.ID, s.Parameter))
	case s.Response != "":
		if !httputil.ValidateStatusCode(s.Response) {
			return nil, "", selectError(fmt.Sprintf("invalid response status %q", s.Response))
		}
		r := op.Response(s.Response)
		if r == nil || r.Schema == nil {
			return nil, "", selectError(fmt.Sprintf("operation %q has no %s response schema", op.ID, s.Response))
		}
		return r.Schema, alias + "Response", nil
	default:
		return nil, "", selectError("operation targets need a parameter or response")
	}
}

func selectError(msg string) error {
	return &oaserrors.ConfigError{Option: "target", Message: msg}
}
