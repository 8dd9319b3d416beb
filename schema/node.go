package schema

import (
	"slices"

	"github.com/erraggy/oasfixture/value"
)

// Property is one named child of an object schema.
type Property struct {
	Name   string
	Schema *Node
}

// Node is a read-only view over one dereferenced schema subtree.
//
// Nodes form a shared graph: a named component is a single *Node reached
// from every place that references it, and recursive schemas are pointer
// cycles. Nothing mutates a Node after loading; use WithNullable to derive
// a variant.
type Node struct {
	Kind     Kind
	Format   string
	Nullable bool

	// Enum holds the allowed raw values, paired by index with EnumNames.
	Enum      []value.Value
	EnumNames []string

	Properties           []Property
	Required             []string
	Items                *Node
	AdditionalProperties *Node
	Alternatives         []*Node

	// Name is the reference name when the node is a named component.
	Name string
	// AliasAsModel is set by x-generate-alias-as-model.
	AliasAsModel bool

	Example     value.Value
	Default     value.Value
	Description string

	// RawType keeps the declared type when it could not be recognized.
	RawType string
}

// Property returns the child schema for name, or nil.
func (n *Node) Property(name string) *Node {
	for _, p := range n.Properties {
		if p.Name == name {
			return p.Schema
		}
	}
	return nil
}

// IsRequired reports whether name is listed in Required.
func (n *Node) IsRequired(name string) bool {
	return slices.Contains(n.Required, name)
}

// IsPrimitive reports whether the node is a scalar kind.
func (n *Node) IsPrimitive() bool {
	return n != nil && n.Kind.IsPrimitive()
}

// HasEnum reports whether the node enumerates its allowed values.
func (n *Node) HasEnum() bool {
	return len(n.Enum) > 0
}

// IsMap reports whether the node is an object described only by additionalProperties.
func (n *Node) IsMap() bool {
	return n.Kind == KindObject && len(n.Properties) == 0 && n.AdditionalProperties != nil
}

// IsUntypedObject reports whether the node is an object whose values may be
// anything: no properties, and additionalProperties absent or untyped.
func (n *Node) IsUntypedObject() bool {
	if n.Kind != KindObject || len(n.Properties) != 0 || len(n.Alternatives) != 0 {
		return false
	}
	return n.AdditionalProperties == nil || n.AdditionalProperties.Kind == KindAny
}

// IsAnyMap reports whether the node is an object with additionalProperties: true
// and nothing else.
func (n *Node) IsAnyMap() bool {
	return n.IsMap() && n.AdditionalProperties.Kind == KindAny
}

// WithNullable returns a shallow copy of n with Nullable overridden.
// The receiver is returned unchanged when it already has the requested value.
func (n *Node) WithNullable(nullable bool) *Node {
	if n.Nullable == nullable {
		return n
	}
	clone := *n
	clone.Nullable = nullable
	return &clone
}

// EnumIndex returns the position of v among the enum values, or -1.
func (n *Node) EnumIndex(v value.Value) int {
	for i, e := range n.Enum {
		if value.Equal(e, v) {
			return i
		}
	}
	return -1
}

// EnumName returns the display name paired with v, or "" if v is not allowed.
func (n *Node) EnumName(v value.Value) string {
	i := n.EnumIndex(v)
	if i < 0 || i >= len(n.EnumNames) {
		return ""
	}
	return n.EnumNames[i]
}

// Category classifies the node for attribute/block grouping.
func (n *Node) Category() Category {
	switch {
	case n.IsPrimitive():
		return CategoryPrimitive
	case n.Kind == KindArray && n.Items.IsPrimitive():
		return CategoryPrimitiveArray
	case n.Kind == KindArray:
		return CategoryNonPrimitiveArray
	default:
		return CategoryNonPrimitiveObject
	}
}

// PropertiesByCategory groups the node's properties by Category, keeping
// property order inside each group.
func (n *Node) PropertiesByCategory() map[Category][]Property {
	out := make(map[Category][]Property)
	for _, p := range n.Properties {
		c := p.Schema.Category()
		out[c] = append(out[c], p)
	}
	return out
}
