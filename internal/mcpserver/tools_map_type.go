package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasfixture/gotype"
	"github.com/erraggy/oasfixture/schema"
)

type mapTypeInput struct {
	Spec        specInput   `json:"spec"                  jsonschema:"The OpenAPI document holding the schema"`
	Target      nodeTarget  `json:"target"                jsonschema:"The schema to map"`
	Nullable    bool        `json:"nullable,omitempty"    jsonschema:"Use the Nullable wrapper for nullable schemas"`
	Constructor bool        `json:"constructor,omitempty" jsonschema:"Return the NewNullable constructor instead of the wrapper type"`
	AliasHint   string      `json:"alias_hint,omitempty"  jsonschema:"Name for anonymous object types (defaults to one derived from the target)"`
	Client      clientInput `json:"client,omitempty"      jsonschema:"Client naming overrides"`
}

type mapTypeOutput struct {
	Type     string `json:"type"`
	Nullable bool   `json:"nullable,omitempty"`
	Kind     string `json:"kind"`
	Category string `json:"category"`
	// Properties groups an object's property names by category.
	Properties map[string][]string `json:"properties,omitempty"`
}

func handleMapType(_ context.Context, _ *mcp.CallToolRequest, input mapTypeInput) (*mcp.CallToolResult, mapTypeOutput, error) {
	doc, err := input.Spec.resolve()
	if err != nil {
		return errResult(err), mapTypeOutput{}, nil
	}
	node, hint, err := input.Target.resolve(doc)
	if err != nil {
		return errResult(err), mapTypeOutput{}, nil
	}
	if input.AliasHint != "" {
		hint = input.AliasHint
	}

	m := gotype.Mapper{Client: input.Client.client(), Prefix: input.Client.prefix()}
	desc, err := m.Describe(node, gotype.Request{
		AliasHint:   hint,
		Nullable:    input.Nullable,
		Constructor: input.Constructor,
	})
	if err != nil {
		return errResult(err), mapTypeOutput{}, nil
	}
	return nil, mapTypeOutput{
		Type:       desc.Name,
		Nullable:   desc.Nullable,
		Kind:       node.Kind.String(),
		Category:   node.Category().String(),
		Properties: propertyGroups(node),
	}, nil
}

func propertyGroups(node *schema.Node) map[string][]string {
	if len(node.Properties) == 0 {
		return nil
	}
	out := make(map[string][]string)
	for category, props := range node.PropertiesByCategory() {
		for _, p := range props {
			out[category.String()] = append(out[category.String()], p.Name)
		}
	}
	return out
}
