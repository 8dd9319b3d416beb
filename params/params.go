// Package params assembles the argument list of a generated client call.
//
// Required parameters come first in declaration order, followed by one
// options builder carrying every supplied optional parameter:
//
//	a, _ := params.New(renderer, params.WithNamePrefix("datadogV1."))
//	args, err := a.Assemble(data, doc.Operation("ListWidgets"))
//	// "widgetID", *datadogV1.NewListWidgetsOptionalParameters().WithPageSize(10)
//
// Path, query and header parameters are declared first, then the fields of a
// multipart form body (promoted to parameters), then a JSON body as "body".
package params

import (
	"strings"

	"github.com/erraggy/oasfixture/internal/naming"
	"github.com/erraggy/oasfixture/literal"
	"github.com/erraggy/oasfixture/oaserrors"
	"github.com/erraggy/oasfixture/schema"
	"github.com/erraggy/oasfixture/value"
)

// BodyParameter is the argument name of a JSON request body.
const BodyParameter = "body"

// Parameter is one call argument in declaration order.
type Parameter struct {
	// Name is the argument key in the supplied data.
	Name string
	// Field is the Go name used by the options builder setter.
	Field    string
	Schema   *schema.Node
	Required bool
	// Body is set for a JSON request body.
	Body bool
}

// Parameters lists the call arguments of op in declaration order.
func Parameters(op *schema.Operation) []Parameter {
	out := make([]Parameter, 0, len(op.Parameters)+1)
	for _, p := range op.Parameters {
		out = append(out, Parameter{
			Name:     p.Name,
			Field:    naming.ToGoName(p.Name),
			Schema:   p.Schema,
			Required: p.Required,
		})
	}
	if op.RequestBody == nil {
		return out
	}
	if op.IsMultipart() && op.RequestBody.Schema != nil {
		for _, prop := range op.RequestBody.Schema.Properties {
			out = append(out, Parameter{
				Name:     prop.Name,
				Field:    naming.ToGoName(prop.Name),
				Schema:   prop.Schema,
				Required: op.RequestBody.Schema.IsRequired(prop.Name),
			})
		}
		return out
	}
	return append(out, Parameter{
		Name:     BodyParameter,
		Field:    "Body",
		Schema:   op.RequestBody.Schema,
		Required: op.RequestBody.Required,
		Body:     true,
	})
}

// Assembler builds call argument lists. It shares the Renderer's issue list.
type Assembler struct {
	renderer *literal.Renderer
	prefix   string
	repl     literal.Replacements
	bodyVar  string
}

// Option is a function that configures an Assembler.
type Option func(*Assembler) error

// New creates an Assembler rendering values with r.
func New(r *literal.Renderer, opts ...Option) (*Assembler, error) {
	if r == nil {
		return nil, &oaserrors.ConfigError{Option: "renderer", Message: "renderer cannot be nil"}
	}
	a := &Assembler{renderer: r}
	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// WithNamePrefix qualifies model names and the options builder, e.g. "datadogV1.".
func WithNamePrefix(prefix string) Option {
	return func(a *Assembler) error {
		a.prefix = prefix
		return nil
	}
}

// WithReplacements substitutes captured values with their variable names.
func WithReplacements(repl literal.Replacements) Option {
	return func(a *Assembler) error {
		a.repl = repl
		return nil
	}
}

// WithBodyVariable renders a supplied body argument as the identifier name
// instead of a literal.
func WithBodyVariable(name string) Option {
	return func(a *Assembler) error {
		if name != "" && naming.IsKeyword(name) {
			return &oaserrors.ConfigError{Option: "WithBodyVariable", Value: name, Message: "body variable must not be a Go keyword"}
		}
		a.bodyVar = name
		return nil
	}
}

// Assemble returns the argument list for calling op with args, joined by ", ".
// A missing required argument or an argument op does not declare is a
// *oaserrors.BindingError.
func (a *Assembler) Assemble(args *value.Mapping, op *schema.Operation) (string, error) {
	if args == nil {
		args = value.NewMapping()
	}
	remaining := args.Clone()
	declared := Parameters(op)

	var (
		parts       []string
		hasOptional bool
	)
	for _, p := range declared {
		if !p.Required {
			hasOptional = true
			continue
		}
		v, ok := remaining.Get(p.Name)
		if !ok {
			return "", &oaserrors.BindingError{Operation: op.ID, Parameter: p.Name, Message: "missing required parameter"}
		}
		remaining.Delete(p.Name)
		s, err := a.argument(v, p, op)
		if err != nil {
			return "", err
		}
		parts = append(parts, s)
	}

	if !hasOptional {
		if remaining.Len() > 0 {
			return "", undeclared(op, remaining.Keys()[0])
		}
		return strings.Join(parts, ", "), nil
	}

	var sb strings.Builder
	sb.WriteString("*" + a.prefix + "New" + naming.ToTitleCase(op.ID) + "OptionalParameters()")
	for _, e := range remaining.Entries() {
		p, ok := find(declared, e.Key)
		if !ok || p.Required {
			return "", undeclared(op, e.Key)
		}
		s, err := a.argument(e.Value, p, op)
		if err != nil {
			return "", err
		}
		sb.WriteString(".With" + p.Field + "(" + s + ")")
	}
	return strings.Join(append(parts, sb.String()), ", "), nil
}

func (a *Assembler) argument(v value.Value, p Parameter, op *schema.Operation) (string, error) {
	if p.Body && a.bodyVar != "" {
		return a.bodyVar, nil
	}
	opts := []literal.RenderOption{
		literal.WithNamePrefix(a.prefix),
		literal.Required(true),
		literal.WithPath(p.Name),
	}
	if a.repl != nil {
		opts = append(opts, literal.WithReplacements(a.repl))
	}
	if p.Schema != nil && p.Schema.Name == "" {
		opts = append(opts, literal.WithAliasHint(naming.ToTitleCase(op.ID)+p.Field))
	}
	s, err := a.renderer.Render(v, p.Schema, opts...)
	if err != nil {
		return "", &oaserrors.BindingError{Operation: op.ID, Parameter: p.Name, Message: "cannot render argument", Cause: err}
	}
	return s, nil
}

func find(declared []Parameter, name string) (Parameter, bool) {
	for _, p := range declared {
		if p.Name == name {
			return p, true
		}
	}
	return Parameter{}, false
}

func undeclared(op *schema.Operation, name string) error {
	return &oaserrors.BindingError{Operation: op.ID, Parameter: name, Message: "argument is not declared by the operation"}
}
