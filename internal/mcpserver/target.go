package mcpserver

import (
	"github.com/erraggy/oasfixture/schema"
)

// nodeTarget selects a single schema in a loaded document. Set Schema, or
// Operation with exactly one of Parameter or Response.
type nodeTarget struct {
	Schema    string `json:"schema,omitempty"    jsonschema:"Component schema name, e.g. WidgetCreateRequest"`
	Operation string `json:"operation,omitempty" jsonschema:"operationId of the operation holding the schema"`
	Parameter string `json:"parameter,omitempty" jsonschema:"Parameter name within the operation; use body for the request body"`
	Response  string `json:"response,omitempty"  jsonschema:"Response status within the operation, e.g. 200"`
}

func (t nodeTarget) resolve(doc *schema.Document) (*schema.Node, string, error) {
	return doc.Select(schema.Selector(t))
}
