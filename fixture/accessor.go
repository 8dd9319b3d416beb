package fixture

import (
	"strings"

	"github.com/erraggy/oasfixture/internal/naming"
	"github.com/erraggy/oasfixture/oaserrors"
	"github.com/erraggy/oasfixture/schema"
	"github.com/erraggy/oasfixture/value"
)

// Accessor navigates a schema while remembering the structural path taken.
// Accessors are immutable; every step returns a new one.
type Accessor struct {
	node  *schema.Node
	keys  []value.Segment
	given *givenRef
}

// givenRef binds an accessor to one given step of a Session.
type givenRef struct {
	session *Session
	step    string
	key     string
	source  string
}

// NewAccessor returns an accessor rooted at node with an empty path.
func NewAccessor(node *schema.Node) *Accessor {
	return &Accessor{node: node}
}

// Node returns the schema at the current position.
func (a *Accessor) Node() *schema.Node { return a.node }

// Path returns the structural path from the root, e.g. "data[0].id".
func (a *Accessor) Path() string { return value.FormatPath(a.keys) }

func (a *Accessor) step(node *schema.Node, seg value.Segment) *Accessor {
	keys := make([]value.Segment, len(a.keys), len(a.keys)+1)
	copy(keys, a.keys)
	return &Accessor{node: node, keys: append(keys, seg), given: a.given}
}

// Field descends into the property name. The name is matched exactly first
// and then in snake_case. Object alternatives of a oneOf are searched in
// order, and a map schema yields its value schema for any key.
func (a *Accessor) Field(name string) (*Accessor, error) {
	candidates := []string{name}
	if snake := naming.ToSnakeCase(name); snake != name {
		candidates = append(candidates, snake)
	}
	for _, n := range searchable(a.node) {
		for _, c := range candidates {
			if child := n.Property(c); child != nil {
				return a.step(child, value.Segment{Name: c}), nil
			}
		}
	}
	if a.node != nil && a.node.AdditionalProperties != nil {
		return a.step(a.node.AdditionalProperties, value.Segment{Name: name}), nil
	}
	at := a.Path()
	if at != "" {
		at += "."
	}
	return nil, &oaserrors.ValueError{Path: at + name, Message: "no such property"}
}

// Index descends into the items of an array schema.
func (a *Accessor) Index(i int) (*Accessor, error) {
	if a.node == nil || a.node.Kind != schema.KindArray || a.node.Items == nil {
		return nil, &oaserrors.TypeError{Path: a.Path(), Expected: "array", Message: "cannot index a non-array schema"}
	}
	if i < 0 {
		return nil, &oaserrors.ValueError{Path: a.Path(), Value: i, Message: "negative index"}
	}
	return a.step(a.node.Items, value.Segment{Index: i, IsIndex: true}), nil
}

// Lookup follows a dotted, bracketed path such as "data.items[0].id".
func (a *Accessor) Lookup(path string) (*Accessor, error) {
	segs, err := value.ParsePath(path)
	if err != nil {
		return nil, err
	}
	cur := a
	for _, s := range segs {
		if s.IsIndex {
			cur, err = cur.Index(s.Index)
		} else {
			cur, err = cur.Field(s.Name)
		}
		if err != nil {
			return nil, err
		}
	}
	return cur, nil
}

// Value synthesizes the value at the current position. Accessors obtained
// from a Session record the value as a replacement; plain accessors only
// generate it.
func (a *Accessor) Value() (value.Value, error) {
	if a.given == nil {
		return Generate(a.node, a.Path(), GenerateOptions{}), nil
	}
	return a.given.session.record(a)
}

// placeholderKey names the variable holding this position's value.
func (a *Accessor) placeholderKey() string {
	parts := make([]string, 0, len(a.keys)+1)
	parts = append(parts, a.given.key)
	for _, s := range a.keys {
		if s.IsIndex {
			parts = append(parts, strings.Trim(s.String(), "[]"))
		} else {
			parts = append(parts, s.Name)
		}
	}
	return strings.ToUpper(strings.Join(parts, "_"))
}

// jsonPath locates this position inside the given step's response.
func (a *Accessor) jsonPath() string {
	p := a.Path()
	switch {
	case a.given.source == "":
		return p
	case p == "":
		return a.given.source
	case strings.HasPrefix(p, "["):
		return a.given.source + p
	default:
		return a.given.source + "." + p
	}
}

func searchable(n *schema.Node) []*schema.Node {
	if n == nil {
		return nil
	}
	if n.Kind != schema.KindOneOf {
		return []*schema.Node{n}
	}
	var out []*schema.Node
	for _, alt := range n.Alternatives {
		if alt != nil && alt.Kind == schema.KindObject {
			out = append(out, alt)
		}
	}
	return out
}
