package literal

import (
	"fmt"

	"github.com/erraggy/oasfixture/gotype"
	"github.com/erraggy/oasfixture/internal/issues"
	"github.com/erraggy/oasfixture/internal/severity"
	"github.com/erraggy/oasfixture/logging"
	"github.com/erraggy/oasfixture/oaserrors"
	"github.com/erraggy/oasfixture/schema"
	"github.com/erraggy/oasfixture/value"
)

// Replacements resolves values captured earlier in a scenario to the Go
// expression that holds them.
type Replacements interface {
	Lookup(v value.Value) (string, bool)
}

// Renderer renders values as Go literals. It accumulates warning issues and
// is not safe for concurrent use; create one per generation run.
type Renderer struct {
	client string
	logger logging.Logger
	strict bool
	issues issues.List
}

// Option is a function that configures a Renderer.
type Option func(*Renderer) error

// New creates a Renderer.
func New(opts ...Option) (*Renderer, error) {
	r := &Renderer{
		client: gotype.DefaultClientPackage,
		logger: logging.NopLogger{},
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// WithClientPackage sets the package name of the client helpers.
// Default: "datadog"
func WithClientPackage(name string) Option {
	return func(r *Renderer) error {
		if name == "" {
			return &oaserrors.ConfigError{Option: "WithClientPackage", Value: name, Message: "client package must not be empty"}
		}
		r.client = name
		return nil
	}
}

// WithLogger sets the logger used to report warnings.
func WithLogger(l logging.Logger) Option {
	return func(r *Renderer) error {
		r.logger = logging.OrNop(l)
		return nil
	}
}

// WithStrictMode turns warnings into errors.
// Default: false
func WithStrictMode(enabled bool) Option {
	return func(r *Renderer) error {
		r.strict = enabled
		return nil
	}
}

// RenderOption configures a single Render call.
type RenderOption func(*state)

// WithNamePrefix qualifies model and enum names, e.g. "datadogV1.".
func WithNamePrefix(prefix string) RenderOption {
	return func(st *state) {
		st.prefix = prefix
	}
}

// WithReplacements substitutes captured values with their variable names.
func WithReplacements(repl Replacements) RenderOption {
	return func(st *state) {
		st.repl = repl
	}
}

// Required renders the value bare instead of addressed.
// Default: false
func Required(required bool) RenderOption {
	return func(st *state) {
		st.required = required
	}
}

// InList renders the value as an element of an enclosing collection.
func InList(inList bool) RenderOption {
	return func(st *state) {
		st.inList = inList
	}
}

// WithAliasHint names the type of an anonymous object.
func WithAliasHint(hint string) RenderOption {
	return func(st *state) {
		st.alias = hint
	}
}

// WithPath sets the structural path reported in errors and issues.
func WithPath(path string) RenderOption {
	return func(st *state) {
		st.path = path
	}
}

// state is the per-call rendering context. It is passed by value so every
// recursion level gets its own copy.
type state struct {
	prefix   string
	repl     Replacements
	required bool
	inList   bool
	alias    string
	path     string

	// trial is set while matching oneOf alternatives.
	trial bool
	sink  *issues.List
}

func (st state) child(path, alias string, required, inList bool) state {
	st.path = path
	st.alias = alias
	st.required = required
	st.inList = inList
	return st
}

// Render returns the Go expression for v rendered against node.
func (r *Renderer) Render(v value.Value, node *schema.Node, opts ...RenderOption) (string, error) {
	var st state
	for _, opt := range opts {
		opt(&st)
	}
	var sink issues.List
	st.sink = &sink

	out, err := r.render(v, node, st)
	for _, issue := range sink {
		r.logger.Warn(issue.Message, "path", issue.Path, "value", issue.Value, "context", issue.Context)
	}
	r.issues = append(r.issues, sink...)
	return out, err
}

// Issues returns the warnings recorded so far.
func (r *Renderer) Issues() []issues.Issue {
	return r.issues
}

// ClientPackage returns the configured client package name.
func (r *Renderer) ClientPackage() string {
	return r.client
}

// Mapper returns the type mapper used for the given model prefix.
func (r *Renderer) Mapper(prefix string) gotype.Mapper {
	return gotype.Mapper{Client: r.client, Prefix: prefix}
}

var anyNode = &schema.Node{Kind: schema.KindAny}

func (r *Renderer) render(v value.Value, node *schema.Node, st state) (string, error) {
	if node == nil {
		node = anyNode
	}
	if v == nil {
		v = value.Null{}
	}
	if node.HasEnum() {
		return r.renderEnum(v, node, st)
	}

	switch node.Kind {
	case schema.KindAny:
		return r.renderAny(v, st)
	case schema.KindString, schema.KindNumber, schema.KindInteger, schema.KindBoolean:
		return r.renderPrimitive(v, node, st)
	case schema.KindArray:
		return r.renderArray(v, node, st)
	case schema.KindObject:
		return r.renderObject(v, node, st)
	case schema.KindOneOf:
		return r.renderOneOf(v, node, st)
	}

	kind := node.RawType
	if kind == "" {
		kind = node.Kind.String()
	}
	return "", &oaserrors.SchemaError{Path: st.path, Schema: node.Name, Message: fmt.Sprintf("unknown type %q", kind)}
}

// warn records a non-fatal issue, or fails in strict mode.
func (r *Renderer) warn(st state, message string, v value.Value, context string) error {
	if r.strict {
		return &oaserrors.ValueError{Path: st.path, Value: value.Format(v), Message: message}
	}
	st.sink.Add(issues.Issue{
		Path:     st.path,
		Message:  message,
		Severity: severity.SeverityWarning,
		Value:    value.Format(v),
		Context:  context,
	})
	return nil
}

func (r *Renderer) lookup(v value.Value, st state) (string, bool) {
	if st.repl == nil {
		return "", false
	}
	return st.repl.Lookup(v)
}

func typeError(path string, v value.Value, expected string) error {
	return &oaserrors.TypeError{Path: path, Value: value.ToAny(v), Expected: expected}
}
