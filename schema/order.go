package schema

import (
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"go.yaml.in/yaml/v4"
)

// propertyOrder holds the declared property order of each object schema.
// The loader keeps properties in maps, so the order is read back from the
// document source.
type propertyOrder map[*openapi3.Schema][]string

// readPropertyOrder walks the document source alongside the loaded document.
// Schemas it cannot reach (external references, unreadable source) fall back
// to name order.
func readPropertyOrder(data []byte, raw *openapi3.T) propertyOrder {
	if len(data) == 0 || raw == nil {
		return nil
	}
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil || len(root.Content) == 0 {
		return nil
	}
	doc := root.Content[0]
	o := propertyOrder{}

	if comps := mappingValue(doc, "components"); comps != nil && raw.Components != nil {
		schemas := mappingValue(comps, "schemas")
		for name, ref := range raw.Components.Schemas {
			o.schema(mappingValue(schemas, name), ref)
		}
		params := mappingValue(comps, "parameters")
		for name, ref := range raw.Components.Parameters {
			if ref != nil {
				o.parameter(mappingValue(params, name), ref.Value)
			}
		}
		bodies := mappingValue(comps, "requestBodies")
		for name, ref := range raw.Components.RequestBodies {
			if ref != nil && ref.Value != nil {
				o.content(mappingValue(mappingValue(bodies, name), "content"), ref.Value.Content)
			}
		}
		o.responses(mappingValue(comps, "responses"), raw.Components.Responses)
	}

	if raw.Paths == nil {
		return o
	}
	paths := mappingValue(doc, "paths")
	for p, item := range raw.Paths.Map() {
		if item == nil {
			continue
		}
		itemNode := mappingValue(paths, p)
		o.parameters(mappingValue(itemNode, "parameters"), item.Parameters)
		for method, op := range item.Operations() {
			o.operation(mappingValue(itemNode, strings.ToLower(method)), op)
		}
	}
	return o
}

// names returns the property names of s in declaration order.
func (o propertyOrder) names(s *openapi3.Schema) []string {
	names := make([]string, 0, len(s.Properties))
	seen := make(map[string]bool, len(s.Properties))
	for _, name := range o[s] {
		if _, ok := s.Properties[name]; ok && !seen[name] {
			names = append(names, name)
			seen[name] = true
		}
	}
	var rest []string
	for name := range s.Properties {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(names, rest...)
}

func (o propertyOrder) operation(n *yaml.Node, op *openapi3.Operation) {
	if n == nil || op == nil {
		return
	}
	o.parameters(mappingValue(n, "parameters"), op.Parameters)
	if op.RequestBody != nil && op.RequestBody.Value != nil {
		o.content(mappingValue(mappingValue(n, "requestBody"), "content"), op.RequestBody.Value.Content)
	}
	if op.Responses != nil {
		o.responses(mappingValue(n, "responses"), op.Responses.Map())
	}
}

func (o propertyOrder) parameters(n *yaml.Node, params openapi3.Parameters) {
	for i, ref := range params {
		if ref != nil {
			o.parameter(sequenceItem(n, i), ref.Value)
		}
	}
}

func (o propertyOrder) parameter(n *yaml.Node, p *openapi3.Parameter) {
	if n == nil || p == nil {
		return
	}
	o.schema(mappingValue(n, "schema"), p.Schema)
	o.content(mappingValue(n, "content"), p.Content)
}

func (o propertyOrder) responses(n *yaml.Node, responses map[string]*openapi3.ResponseRef) {
	for status, ref := range responses {
		if ref != nil && ref.Value != nil {
			o.content(mappingValue(mappingValue(n, status), "content"), ref.Value.Content)
		}
	}
}

func (o propertyOrder) content(n *yaml.Node, content openapi3.Content) {
	for mediaType, mt := range content {
		if mt != nil {
			o.schema(mappingValue(mappingValue(n, mediaType), "schema"), mt.Schema)
		}
	}
}

func (o propertyOrder) schema(n *yaml.Node, ref *openapi3.SchemaRef) {
	if n == nil || n.Kind != yaml.MappingNode || ref == nil || ref.Value == nil {
		return
	}
	// A reference is recorded where its target is declared.
	if mappingValue(n, "$ref") != nil {
		return
	}
	s := ref.Value
	if _, seen := o[s]; seen {
		return
	}
	props := mappingValue(n, "properties")
	names := mappingKeys(props)
	o[s] = names
	for _, name := range names {
		o.schema(mappingValue(props, name), s.Properties[name])
	}
	o.schema(mappingValue(n, "items"), s.Items)
	o.schema(mappingValue(n, "additionalProperties"), s.AdditionalProperties.Schema)
	o.schema(mappingValue(n, "not"), s.Not)
	o.schemaList(mappingValue(n, "allOf"), s.AllOf)
	o.schemaList(mappingValue(n, "oneOf"), s.OneOf)
	o.schemaList(mappingValue(n, "anyOf"), s.AnyOf)
}

func (o propertyOrder) schemaList(n *yaml.Node, refs openapi3.SchemaRefs) {
	for i, ref := range refs {
		o.schema(sequenceItem(n, i), ref)
	}
}

func mappingValue(n *yaml.Node, key string) *yaml.Node {
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return n.Content[i+1]
		}
	}
	return nil
}

func mappingKeys(n *yaml.Node) []string {
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}
	keys := make([]string, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		keys = append(keys, n.Content[i].Value)
	}
	return keys
}

func sequenceItem(n *yaml.Node, i int) *yaml.Node {
	if n == nil || n.Kind != yaml.SequenceNode || i >= len(n.Content) {
		return nil
	}
	return n.Content[i]
}
