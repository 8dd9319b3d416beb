package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasfixture/fixture"
	"github.com/erraggy/oasfixture/value"
)

type synthesizeFixtureInput struct {
	Spec   specInput  `json:"spec"             jsonschema:"The OpenAPI document holding the schema"`
	Target nodeTarget `json:"target"           jsonschema:"The schema to synthesize a value for"`
	Key    string     `json:"key,omitempty"    jsonschema:"Given key the value is recorded under (default: fixture)"`
	Path   string     `json:"path,omitempty"   jsonschema:"Nested path to read, e.g. data.attributes.name or items[0]"`
	Random bool       `json:"random,omitempty" jsonschema:"Generate a seeded random value instead of the deterministic one"`
}

type fixtureVariable struct {
	Name string `json:"name"`
	Key  string `json:"key"`
	Kind string `json:"kind"`
}

type synthesizeFixtureOutput struct {
	Value     string            `json:"value"`
	Path      string            `json:"path,omitempty"`
	Variables []fixtureVariable `json:"variables,omitempty"`
	JSONPaths map[string]string `json:"json_paths,omitempty"`
}

const defaultFixtureKey = "fixture"

func handleSynthesizeFixture(_ context.Context, _ *mcp.CallToolRequest, input synthesizeFixtureInput) (*mcp.CallToolResult, synthesizeFixtureOutput, error) {
	doc, err := input.Spec.resolve()
	if err != nil {
		return errResult(err), synthesizeFixtureOutput{}, nil
	}
	node, _, err := input.Target.resolve(doc)
	if err != nil {
		return errResult(err), synthesizeFixtureOutput{}, nil
	}

	if input.Random {
		acc, err := fixture.NewAccessor(node).Lookup(input.Path)
		if err != nil {
			return errResult(err), synthesizeFixtureOutput{}, nil
		}
		v := fixture.Generate(acc.Node(), acc.Path(), fixture.GenerateOptions{Random: true, Prefix: input.Key})
		return nil, synthesizeFixtureOutput{Value: value.Format(v), Path: acc.Path()}, nil
	}

	key := input.Key
	if key == "" {
		key = defaultFixtureKey
	}
	session := fixture.NewSession()
	acc, err := session.Given("there is a valid \""+key+"\"", key, node)
	if err != nil {
		return errResult(err), synthesizeFixtureOutput{}, nil
	}
	if input.Path != "" {
		if acc, err = acc.Lookup(input.Path); err != nil {
			return errResult(err), synthesizeFixtureOutput{}, nil
		}
	}
	v, err := acc.Value()
	if err != nil {
		return errResult(err), synthesizeFixtureOutput{}, nil
	}
	// Booleans, nulls and enum defaults are never recorded.
	session.Lookup(v)

	vars := session.Variables()
	out := synthesizeFixtureOutput{
		Value:     value.Format(v),
		Path:      acc.Path(),
		Variables: makeSlice[fixtureVariable](len(vars)),
		JSONPaths: session.JSONPaths(key),
	}
	for _, vr := range vars {
		out.Variables = append(out.Variables, fixtureVariable{Name: vr.Name, Key: vr.Key, Kind: vr.Kind})
	}
	return nil, out, nil
}
