package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasfixture/literal"
	"github.com/erraggy/oasfixture/value"
)

type renderLiteralInput struct {
	Spec     specInput   `json:"spec"               jsonschema:"The OpenAPI document holding the schema"`
	Target   nodeTarget  `json:"target"             jsonschema:"The schema the value is rendered against"`
	Value    string      `json:"value"              jsonschema:"The value to render, as JSON"`
	Optional bool        `json:"optional,omitempty" jsonschema:"Render as an optional field, wrapping primitives in pointer helpers"`
	Strict   bool        `json:"strict,omitempty"   jsonschema:"Fail on values that would only produce a warning"`
	Client   clientInput `json:"client,omitempty"   jsonschema:"Client naming overrides"`
}

type renderLiteralOutput struct {
	Literal string        `json:"literal"`
	Issues  []issueOutput `json:"issues,omitempty"`
}

func handleRenderLiteral(_ context.Context, _ *mcp.CallToolRequest, input renderLiteralInput) (*mcp.CallToolResult, renderLiteralOutput, error) {
	doc, err := input.Spec.resolve()
	if err != nil {
		return errResult(err), renderLiteralOutput{}, nil
	}
	node, hint, err := input.Target.resolve(doc)
	if err != nil {
		return errResult(err), renderLiteralOutput{}, nil
	}
	v, err := value.DecodeJSON([]byte(input.Value))
	if err != nil {
		return errResult(fmt.Errorf("value: %w", err)), renderLiteralOutput{}, nil
	}

	r, err := input.Client.renderer(input.Strict)
	if err != nil {
		return errResult(err), renderLiteralOutput{}, nil
	}
	out, err := r.Render(v, node,
		literal.WithNamePrefix(input.Client.prefix()),
		literal.Required(!input.Optional),
		literal.WithAliasHint(hint),
	)
	if err != nil {
		return errResult(err), renderLiteralOutput{}, nil
	}
	return nil, renderLiteralOutput{Literal: out, Issues: makeIssues(r.Issues())}, nil
}
