package gotype

import (
	"errors"
	"fmt"
	"strings"

	"github.com/erraggy/oasfixture/oaserrors"
	"github.com/erraggy/oasfixture/schema"
)

// DefaultClientPackage is the package holding the client helper functions.
const DefaultClientPackage = "datadog"

// AnyType is the Go type for values that may be anything.
const AnyType = "interface{}"

// Mapper maps schema nodes to Go type names.
// The zero value maps without a client package or model prefix.
type Mapper struct {
	// Client is the package name qualifying Nullable wrappers and Ptr helpers.
	Client string
	// Prefix qualifies model and enum type names, e.g. "datadogV1.".
	Prefix string
}

// Request carries the per-call mapping options.
type Request struct {
	// AliasHint names anonymous object types; arrays pass "<hint>Item" to their items.
	AliasHint string
	// Nullable selects the Nullable wrapper for nullable nodes.
	Nullable bool
	// Constructor selects the NewNullable constructor instead of the wrapper type.
	Constructor bool
}

// Descriptor is a mapped type name with its nullability.
type Descriptor struct {
	Name string
	// Nullable is set when Name is a Nullable wrapper.
	Nullable bool
}

// Describe maps node and reports whether the result is a Nullable wrapper.
func (m Mapper) Describe(node *schema.Node, req Request) (Descriptor, error) {
	name, err := m.Map(node, req)
	if err != nil {
		return Descriptor{}, err
	}
	return Descriptor{Name: name, Nullable: req.Nullable && node.Nullable}, nil
}

// Map returns the Go type name for node.
//
// A node without a mappable kind returns a *oaserrors.SchemaError.
func (m Mapper) Map(node *schema.Node, req Request) (string, error) {
	if node == nil || node.Kind == schema.KindAny {
		return AnyType, nil
	}

	nullable := req.Nullable && node.Nullable

	if !node.HasEnum() {
		if p, ok := PrimitiveFor(node.Kind, node.Format); ok {
			if nullable {
				return m.nullableWrapper(p.Suffix, req.Constructor), nil
			}
			return p.GoType, nil
		}
	}

	if node.HasEnum() {
		switch {
		case node.Name != "":
			return m.model(node.Name, nullable, req.Constructor), nil
		case req.AliasHint != "":
			return m.model(req.AliasHint, nullable, req.Constructor), nil
		default:
			return "", &oaserrors.SchemaError{Message: "enum without a reference name cannot be inlined"}
		}
	}

	if node.Name != "" && (node.Kind == schema.KindObject || node.Kind == schema.KindOneOf) && !node.IsMap() {
		return m.model(node.Name, nullable, req.Constructor), nil
	}

	switch node.Kind {
	case schema.KindArray:
		return m.mapArray(node, req)
	case schema.KindObject, schema.KindOneOf:
		if node.IsMap() {
			valueType, err := m.Map(node.AdditionalProperties, Request{})
			if err != nil {
				return "", wrapPath(err, "additionalProperties")
			}
			return "map[string]" + valueType, nil
		}
		if req.AliasHint != "" && (len(node.Properties) > 0 || len(node.Alternatives) > 0) {
			return m.model(req.AliasHint, nullable, req.Constructor), nil
		}
		return AnyType, nil
	}

	kind := node.RawType
	if kind == "" {
		kind = node.Kind.String()
	}
	return "", &oaserrors.SchemaError{Schema: node.Name, Message: fmt.Sprintf("unknown type %q", kind)}
}

func (m Mapper) mapArray(node *schema.Node, req Request) (string, error) {
	if node.Name != "" && node.AliasAsModel {
		return m.model(node.Name, req.Nullable && node.Nullable, req.Constructor), nil
	}
	hint := ""
	if base := firstNonEmpty(node.Name, req.AliasHint); base != "" {
		hint = base + "Item"
	}
	itemType, err := m.Map(node.Items, Request{AliasHint: hint})
	if err != nil {
		return "", wrapPath(err, "items")
	}
	if node.Items != nil && node.Items.Nullable && node.Items.IsPrimitive() {
		itemType = "*" + itemType
	}
	return "[]" + itemType, nil
}

// ItemType returns the element type of an array node as it appears inside
// the array type, including the pointer marker for nullable primitives.
func (m Mapper) ItemType(node *schema.Node, aliasHint string) (string, error) {
	full, err := m.mapArray(node, Request{AliasHint: aliasHint})
	if err != nil {
		return "", err
	}
	item, ok := strings.CutPrefix(full, "[]")
	if !ok {
		return "", &oaserrors.SchemaError{Schema: node.Name, Message: "array is mapped as a model"}
	}
	return item, nil
}

// Ptr returns the client's pointer helper for a primitive node, e.g. "datadog.PtrInt64".
func (m Mapper) Ptr(node *schema.Node) string {
	if p, ok := PrimitiveFor(node.Kind, node.Format); ok {
		return m.qualify("Ptr" + p.Suffix)
	}
	return m.qualify("Ptr")
}

// NullableConstructor returns the client's NewNullable constructor for a
// primitive node, e.g. "datadog.NewNullableString".
func (m Mapper) NullableConstructor(node *schema.Node) string {
	p, _ := PrimitiveFor(node.Kind, node.Format)
	return m.nullableWrapper(p.Suffix, true)
}

// Qualify prefixes name with the client package.
func (m Mapper) Qualify(name string) string {
	return m.qualify(name)
}

func (m Mapper) nullableWrapper(suffix string, constructor bool) string {
	if constructor {
		return m.qualify("NewNullable" + suffix)
	}
	return m.qualify("Nullable" + suffix)
}

func (m Mapper) model(name string, nullable, constructor bool) string {
	switch {
	case nullable && constructor:
		return m.Prefix + "NewNullable" + name
	case nullable:
		return m.Prefix + "Nullable" + name
	default:
		return m.Prefix + name
	}
}

func (m Mapper) qualify(name string) string {
	if m.Client == "" {
		return name
	}
	return m.Client + "." + name
}

func wrapPath(err error, segment string) error {
	var se *oaserrors.SchemaError
	if errors.As(err, &se) {
		clone := *se
		if clone.Path == "" {
			clone.Path = segment
		} else {
			clone.Path = segment + "." + clone.Path
		}
		return &clone
	}
	return err
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
