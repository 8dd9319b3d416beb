package fixture

import (
	"maps"
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/erraggy/oasfixture/oaserrors"
	"github.com/erraggy/oasfixture/schema"
	"github.com/erraggy/oasfixture/value"
)

// Variable is a given value that a rendered example referred to.
type Variable struct {
	// Name is the Go identifier the example declares, e.g. WidgetDataID.
	Name string
	// Key is the placeholder and environment variable, e.g. WIDGET_DATA_ID.
	Key string
	// Step is the human description of the given step.
	Step string
	// Given is the key of the given step that produced the value.
	Given string
	// Kind is the Go type the environment value is parsed into.
	Kind string
	// Schema is the node the value was generated from.
	Schema *schema.Node
}

type replacement struct {
	expr     string
	variable *Variable
	used     bool
}

// Session records values read from given steps so that rendered literals
// can refer back to them. It implements literal.Replacements and is safe for
// concurrent use.
type Session struct {
	mu           sync.Mutex
	replacements map[string]*replacement
	declared     map[string]map[string]*schema.Node
	jsonPaths    map[string]map[string]string
	used         []*Variable
}

// NewSession returns an empty session.
func NewSession() *Session {
	return &Session{
		replacements: make(map[string]*replacement),
		declared:     make(map[string]map[string]*schema.Node),
		jsonPaths:    make(map[string]map[string]string),
	}
}

// GivenOption configures Given.
type GivenOption func(*givenRef)

// FromSource roots the given step at a path inside the response, such as
// "data". Placeholder keys are built from the remaining path only.
func FromSource(path string) GivenOption {
	return func(g *givenRef) { g.source = path }
}

// Given returns an accessor for the response of a given step. Values read
// through it are registered under keys prefixed with key.
func (s *Session) Given(step, key string, node *schema.Node, opts ...GivenOption) (*Accessor, error) {
	if key == "" {
		return nil, &oaserrors.ConfigError{Option: "given.key", Message: "must not be empty"}
	}
	g := &givenRef{session: s, step: step, key: key}
	for _, opt := range opts {
		opt(g)
	}
	root := NewAccessor(node)
	if g.source != "" {
		src, err := root.Lookup(g.source)
		if err != nil {
			return nil, err
		}
		root = &Accessor{node: src.node}
	}
	root.given = g
	return root, nil
}

// record generates the value at a, registers it and remembers its JSON path.
func (s *Session) record(a *Accessor) (value.Value, error) {
	n := a.node
	if n != nil && n.HasEnum() && n.Default != nil {
		return n.Default, nil
	}

	key := strings.ToUpper(a.given.key)
	if len(a.keys) > 0 {
		key = a.placeholderKey()
	}
	v := Generate(n, a.Path(), GenerateOptions{})

	s.mu.Lock()
	defer s.mu.Unlock()

	step := s.declared[a.given.step]
	if step == nil {
		step = make(map[string]*schema.Node)
		s.declared[a.given.step] = step
	}
	step[key] = n

	if vk, ok := value.Key(v); ok {
		if r, ok := s.replacements[vk]; ok && (r.variable == nil || r.variable.Key != key) {
			v = Generate(n, a.Path(), GenerateOptions{Random: true, Prefix: key})
		}
	}
	if _, isBool := v.(value.Bool); !isBool && !value.IsNull(v) {
		if vk, ok := value.Key(v); ok {
			if _, exists := s.replacements[vk]; !exists {
				s.replacements[vk] = &replacement{
					expr: VariableName(key),
					variable: &Variable{
						Name:   VariableName(key),
						Key:    key,
						Step:   a.given.step,
						Given:  a.given.key,
						Kind:   variableKind(n),
						Schema: n,
					},
				}
			}
		}
	}

	paths := s.jsonPaths[a.given.key]
	if paths == nil {
		paths = make(map[string]string)
		s.jsonPaths[a.given.key] = paths
	}
	jp := a.jsonPath()
	if prev, ok := paths[key]; ok && prev != jp {
		return nil, &oaserrors.ValueError{
			Path:    jp,
			Value:   key,
			Message: "placeholder already bound to " + prev,
		}
	}
	paths[key] = jp
	return v, nil
}

// RegisterExpression makes later renders of v use the Go expression expr,
// such as a relative time computed from time.Now().
func (s *Session) RegisterExpression(v value.Value, expr string) {
	vk, ok := value.Key(v)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replacements[vk] = &replacement{expr: expr}
}

// Lookup returns the expression registered for v and marks it used.
func (s *Session) Lookup(v value.Value) (string, bool) {
	vk, ok := value.Key(v)
	if !ok {
		return "", false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.replacements[vk]
	if !ok {
		return "", false
	}
	if !r.used && r.variable != nil {
		s.used = append(s.used, r.variable)
	}
	r.used = true
	return r.expr, true
}

// Variables returns the given variables that were looked up, in order of
// first use.
func (s *Session) Variables() []Variable {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Variable, len(s.used))
	for i, v := range s.used {
		out[i] = *v
	}
	return out
}

// JSONPaths maps each placeholder key recorded for the given key to its
// location in that step's response.
func (s *Session) JSONPaths(given string) map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return maps.Clone(s.jsonPaths[given])
}

// Declarations returns the schemas of every value read for step, keyed by
// placeholder.
func (s *Session) Declarations(step string) map[string]*schema.Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	return maps.Clone(s.declared[step])
}

// initialisms stay upper case in variable names.
var initialisms = map[string]bool{
	"api": true, "http": true, "id": true, "ip": true, "json": true,
	"uri": true, "url": true, "uuid": true,
}

// VariableName converts a placeholder key to the Go identifier that holds
// it. Example: "WIDGET_DATA_ID" -> "WidgetDataID"
func VariableName(key string) string {
	caser := cases.Title(language.Und)
	var sb strings.Builder
	for _, part := range strings.Split(strings.ToLower(key), "_") {
		if initialisms[part] {
			sb.WriteString(strings.ToUpper(part))
			continue
		}
		sb.WriteString(caser.String(part))
	}
	name := sb.String()
	if name == "" || name[0] >= '0' && name[0] <= '9' {
		name = "Var" + name
	}
	return name
}

func variableKind(n *schema.Node) string {
	if n == nil {
		return "string"
	}
	switch n.Kind {
	case schema.KindInteger:
		return "int64"
	case schema.KindNumber:
		return "float64"
	default:
		return "string"
	}
}
