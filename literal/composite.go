package literal

import (
	"errors"
	"strconv"
	"strings"

	"github.com/erraggy/oasfixture/gotype"
	"github.com/erraggy/oasfixture/internal/issues"
	"github.com/erraggy/oasfixture/internal/naming"
	"github.com/erraggy/oasfixture/oaserrors"
	"github.com/erraggy/oasfixture/schema"
	"github.com/erraggy/oasfixture/value"
)

func (r *Renderer) renderArray(v value.Value, node *schema.Node, st state) (string, error) {
	if value.IsNull(v) {
		return "nil", nil
	}
	seq, ok := v.(value.Sequence)
	if !ok {
		return "", typeError(st.path, v, "sequence")
	}

	item := node.Items
	if item == nil {
		item = anyNode
	}
	hint := ""
	if base := firstNonEmpty(node.Name, st.alias); base != "" {
		hint = base + "Item"
	}

	elems := make([]string, len(seq))
	for i, e := range seq {
		s, err := r.render(e, item, st.child(issues.Index(st.path, i), hint, !item.Nullable, true))
		if err != nil {
			return "", err
		}
		elems[i] = s
	}
	body := block(elems, item.IsPrimitive() || item.Kind == schema.KindAny)
	if st.inList {
		return body, nil
	}

	typeName, err := r.Mapper(st.prefix).Map(node, gotype.Request{AliasHint: st.alias})
	if err != nil {
		return "", withPath(err, st.path)
	}
	return typeName + body, nil
}

func (r *Renderer) renderObject(v value.Value, node *schema.Node, st state) (string, error) {
	name := firstNonEmpty(node.Name, st.alias)
	if value.IsNull(v) {
		if node.Nullable && name != "" && !st.inList && !node.IsMap() {
			return "*" + st.prefix + "NewNullable" + name + "(nil)", nil
		}
		return "nil", nil
	}
	mapping, ok := v.(*value.Mapping)
	if !ok {
		return "", typeError(st.path, v, "mapping")
	}

	if node.IsAnyMap() {
		return "map[string]interface{}{}", nil
	}
	if node.IsMap() {
		return r.renderMap(mapping, node, st)
	}
	if node.Name == "" && (len(node.Properties) == 0 || name == "") {
		if st.trial {
			return "", unnamedAlternative(mapping, node, st.path)
		}
		if err := r.warn(st, "no schema matched", v, ""); err != nil {
			return "", err
		}
		return r.renderUntyped(mapping, st)
	}

	var (
		fields []string
		extras []string
	)
	for _, e := range mapping.Entries() {
		child := node.Property(e.Key)
		if child == nil {
			if node.AdditionalProperties != nil {
				s, err := r.render(e.Value, node.AdditionalProperties.WithNullable(false),
					st.child(issues.Field(st.path, e.Key), "", true, true))
				if err != nil {
					return "", err
				}
				extras = append(extras, strconv.Quote(e.Key)+": "+s)
				continue
			}
			if st.trial {
				return "", &oaserrors.ValueError{Path: issues.Field(st.path, e.Key), Message: "property is not declared by " + name}
			}
			continue
		}

		field := naming.ToGoName(e.Key)
		s, err := r.render(e.Value, child, st.child(issues.Field(st.path, e.Key), name+field, node.IsRequired(e.Key), false))
		if err != nil {
			return "", err
		}
		fields = append(fields, field+": "+s)
	}

	if st.trial {
		for _, req := range node.Required {
			if !mapping.Has(req) {
				return "", &oaserrors.ValueError{Path: issues.Field(st.path, req), Message: "missing required property of " + name}
			}
		}
	}

	if len(extras) > 0 {
		apType, err := r.Mapper(st.prefix).Map(node.AdditionalProperties, gotype.Request{})
		if err != nil {
			return "", withPath(err, st.path)
		}
		fields = append(fields, "AdditionalProperties: map[string]"+apType+block(extras, false))
	}

	body := block(fields, false)
	typeName := st.prefix + name
	switch {
	case st.inList:
		return body, nil
	case node.Nullable:
		return "*" + st.prefix + "NewNullable" + name + "(&" + typeName + body + ")", nil
	case !st.required:
		return "&" + typeName + body, nil
	default:
		return typeName + body, nil
	}
}

func (r *Renderer) renderMap(mapping *value.Mapping, node *schema.Node, st state) (string, error) {
	ap := node.AdditionalProperties.WithNullable(false)
	entries := make([]string, 0, mapping.Len())
	for _, e := range mapping.Entries() {
		s, err := r.render(e.Value, ap, st.child(issues.Field(st.path, e.Key), "", true, true))
		if err != nil {
			return "", err
		}
		entries = append(entries, strconv.Quote(e.Key)+": "+s)
	}
	body := block(entries, false)
	if st.inList {
		return body, nil
	}
	valueType, err := r.Mapper(st.prefix).Map(ap, gotype.Request{})
	if err != nil {
		return "", withPath(err, st.path)
	}
	return "map[string]" + valueType + body, nil
}

// unnamedAlternative rejects an object alternative without a type name. The
// error names the first property mismatch when there is one.
func unnamedAlternative(mapping *value.Mapping, node *schema.Node, path string) error {
	if node.AdditionalProperties == nil {
		for _, key := range mapping.Keys() {
			if node.Property(key) == nil {
				return &oaserrors.ValueError{Path: issues.Field(path, key), Message: "property is not declared by the alternative"}
			}
		}
	}
	for _, req := range node.Required {
		if !mapping.Has(req) {
			return &oaserrors.ValueError{Path: issues.Field(path, req), Message: "missing required property of the alternative"}
		}
	}
	return &oaserrors.ValueError{Path: path, Value: value.Format(mapping), Message: "object alternative has no type name"}
}

// renderUntyped renders data with no usable schema as interface{} literals.
func (r *Renderer) renderUntyped(v value.Value, st state) (string, error) {
	switch x := v.(type) {
	case nil, value.Null:
		return "nil", nil
	case value.Bool:
		return strconv.FormatBool(bool(x)), nil
	case value.Sequence:
		elems := make([]string, len(x))
		parent := st.path
		for i, e := range x {
			st.path = issues.Index(parent, i)
			s, err := r.renderUntyped(e, st)
			if err != nil {
				return "", err
			}
			elems[i] = s
		}
		return "[]interface{}" + block(elems, false), nil
	case *value.Mapping:
		entries := make([]string, 0, x.Len())
		parent := st.path
		for _, e := range x.Entries() {
			st.path = issues.Field(parent, e.Key)
			s, err := r.renderUntyped(e.Value, st)
			if err != nil {
				return "", err
			}
			entries = append(entries, strconv.Quote(e.Key)+": "+s)
		}
		return "map[string]interface{}" + block(entries, false), nil
	default:
		return r.renderAny(v, st)
	}
}

func (r *Renderer) renderOneOf(v value.Value, node *schema.Node, st state) (string, error) {
	union := firstNonEmpty(node.Name, st.alias)
	if value.IsNull(v) && node.Nullable {
		if st.inList || union == "" {
			return "nil", nil
		}
		return "*" + st.prefix + "NewNullable" + union + "(nil)", nil
	}
	if value.IsNull(v) {
		return "", &oaserrors.ValueError{Path: st.path, Value: "null", Message: "null value for a non-nullable oneOf"}
	}
	if union == "" {
		return "", &oaserrors.SchemaError{Path: st.path, Message: "oneOf without a reference name"}
	}

	type match struct {
		alt  *schema.Node
		lit  string
		sink issues.List
	}
	var (
		matches []match
		lastErr error
	)
	for _, alt := range node.Alternatives {
		candidate := alt.WithNullable(false)
		var sink issues.List
		trial := st.child(st.path, "", false, false)
		trial.trial = true
		trial.sink = &sink

		lit, err := r.render(v, candidate, trial)
		if err != nil {
			lastErr = err
			continue
		}
		if candidate.Kind == schema.KindArray || candidate.IsMap() {
			lit = "&" + lit
		}
		matches = append(matches, match{alt: candidate, lit: lit, sink: sink})
	}

	switch len(matches) {
	case 0:
		return "", &oaserrors.ValueError{
			Path:    st.path,
			Value:   value.Format(v),
			Message: "no alternative of " + union + " matched",
			Cause:   lastErr,
		}
	case 1:
	default:
		names := make([]string, len(matches))
		for i, m := range matches {
			names[i] = alternativeName(m.alt)
		}
		context := "matched " + strings.Join(names, ", ") + "; using " + names[0]
		if err := r.warn(st, "ambiguous match", v, context); err != nil {
			return "", err
		}
	}

	first := matches[0]
	*st.sink = append(*st.sink, first.sink...)
	lit := st.prefix + alternativeName(first.alt) + "As" + union + "(" + first.lit + ")"
	if st.required || st.inList || node.Nullable {
		return lit, nil
	}
	return r.Mapper(st.prefix).Qualify("Ptr") + "(" + lit + ")", nil
}

// alternativeName is the name used in union constructors: the reference
// name, or the capitalized Go type of a primitive.
func alternativeName(alt *schema.Node) string {
	if alt.Name != "" {
		return alt.Name
	}
	if p, ok := gotype.PrimitiveFor(alt.Kind, alt.Format); ok {
		return p.Suffix
	}
	if alt.Kind == schema.KindAny {
		return "Interface"
	}
	return naming.ToPascalCase(alt.Kind.String())
}

// block joins elements into a braced literal body. Inline bodies keep
// scalar lists on one line.
func block(elems []string, inline bool) string {
	if len(elems) == 0 {
		return "{}"
	}
	if inline {
		return "{" + strings.Join(elems, ", ") + "}"
	}
	var sb strings.Builder
	sb.WriteString("{\n")
	for _, e := range elems {
		sb.WriteString(e)
		sb.WriteString(",\n")
	}
	sb.WriteString("}")
	return sb.String()
}

func withPath(err error, path string) error {
	var se *oaserrors.SchemaError
	if errors.As(err, &se) && se.Path == "" {
		clone := *se
		clone.Path = path
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
