package schema

import (
	"sort"
	"strings"

	"github.com/erraggy/oasfixture/internal/httputil"
)

// Content types the engine distinguishes for request bodies.
const (
	ContentTypeJSON      = "application/json"
	ContentTypeMultipart = "multipart/form-data"
)

// Document is a loaded API description reduced to what generation needs.
type Document struct {
	Title      string
	Version    string
	Operations []*Operation
	// Schemas holds the named components by reference name.
	Schemas map[string]*Node

	byID map[string]*Operation
}

// NewDocument builds an indexed Document.
func NewDocument(title, version string, ops []*Operation, schemas map[string]*Node) *Document {
	d := &Document{
		Title:      title,
		Version:    version,
		Operations: ops,
		Schemas:    schemas,
		byID:       make(map[string]*Operation, len(ops)),
	}
	for _, op := range ops {
		d.byID[op.ID] = op
	}
	return d
}

// Operation returns the operation with the given operationId, or nil.
func (d *Document) Operation(id string) *Operation {
	if d.byID != nil {
		return d.byID[id]
	}
	for _, op := range d.Operations {
		if op.ID == id {
			return op
		}
	}
	return nil
}

// Schema returns the named component schema, or nil.
func (d *Document) Schema(name string) *Node {
	return d.Schemas[name]
}

// SchemaNames returns the component names in sorted order.
func (d *Document) SchemaNames() []string {
	names := make([]string, 0, len(d.Schemas))
	for name := range d.Schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Operation is one API operation.
type Operation struct {
	ID          string
	Method      string
	Path        string
	Summary     string
	Tags        []string
	Parameters  []*Parameter
	RequestBody *RequestBody
	Responses   []*Response
}

// Parameter is a path, query, header or cookie parameter.
type Parameter struct {
	Name        string
	In          string
	Required    bool
	Description string
	Schema      *Node
}

// RequestBody describes the operation's request body for one content type.
type RequestBody struct {
	Required    bool
	ContentType string
	Schema      *Node
}

// Response describes one response status.
type Response struct {
	Status      string
	Description string
	Schema      *Node
}

// Response returns the response declared for status, or nil.
func (o *Operation) Response(status string) *Response {
	for _, r := range o.Responses {
		if r.Status == status {
			return r
		}
	}
	return nil
}

// SuccessResponse returns the first 2xx response, falling back to "default".
func (o *Operation) SuccessResponse() *Response {
	for _, r := range o.Responses {
		if httputil.IsSuccess(r.Status) {
			return r
		}
	}
	return o.Response("default")
}

// IsMultipart reports whether the request body is multipart form data.
func (o *Operation) IsMultipart() bool {
	return o.RequestBody != nil && o.RequestBody.ContentType == ContentTypeMultipart
}

// Parameter returns the declared parameter with the given name, or nil.
func (o *Operation) Parameter(name string) *Parameter {
	for _, p := range o.Parameters {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// Group returns the kebab-case form of the first tag, used to group examples.
func (o *Operation) Group() string {
	if len(o.Tags) == 0 {
		return "default"
	}
	return strings.ToLower(strings.Join(strings.Fields(o.Tags[0]), "-"))
}
