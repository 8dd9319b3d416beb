package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasfixture/params"
	"github.com/erraggy/oasfixture/value"
)

type assembleParametersInput struct {
	Spec      specInput   `json:"spec"                jsonschema:"The OpenAPI document holding the operation"`
	Operation string      `json:"operation"           jsonschema:"operationId of the operation to call"`
	Arguments string      `json:"arguments,omitempty" jsonschema:"JSON object of arguments keyed by parameter name; use body for the request body"`
	Strict    bool        `json:"strict,omitempty"    jsonschema:"Fail on values that would only produce a warning"`
	Client    clientInput `json:"client,omitempty"    jsonschema:"Client naming overrides"`
}

type parameterSummary struct {
	Name     string `json:"name"`
	Required bool   `json:"required,omitempty"`
	Body     bool   `json:"body,omitempty"`
}

type assembleParametersOutput struct {
	Arguments  string             `json:"arguments"`
	Parameters []parameterSummary `json:"parameters,omitempty"`
	Issues     []issueOutput      `json:"issues,omitempty"`
}

func handleAssembleParameters(_ context.Context, _ *mcp.CallToolRequest, input assembleParametersInput) (*mcp.CallToolResult, assembleParametersOutput, error) {
	doc, err := input.Spec.resolve()
	if err != nil {
		return errResult(err), assembleParametersOutput{}, nil
	}
	op := doc.Operation(input.Operation)
	if op == nil {
		return errResult(fmt.Errorf("operation %q not found", input.Operation)), assembleParametersOutput{}, nil
	}

	args := value.NewMapping()
	if input.Arguments != "" {
		v, err := value.DecodeJSON([]byte(input.Arguments))
		if err != nil {
			return errResult(fmt.Errorf("arguments: %w", err)), assembleParametersOutput{}, nil
		}
		m, ok := v.(*value.Mapping)
		if !ok {
			return errResult(fmt.Errorf("arguments: expected a JSON object, got %s", value.TypeName(v))), assembleParametersOutput{}, nil
		}
		args = m
	}

	r, err := input.Client.renderer(input.Strict)
	if err != nil {
		return errResult(err), assembleParametersOutput{}, nil
	}
	a, err := params.New(r, params.WithNamePrefix(input.Client.prefix()))
	if err != nil {
		return errResult(err), assembleParametersOutput{}, nil
	}
	out, err := a.Assemble(args, op)
	if err != nil {
		return errResult(err), assembleParametersOutput{}, nil
	}

	declared := params.Parameters(op)
	summaries := makeSlice[parameterSummary](len(declared))
	for _, p := range declared {
		summaries = append(summaries, parameterSummary{Name: p.Name, Required: p.Required, Body: p.Body})
	}
	return nil, assembleParametersOutput{
		Arguments:  out,
		Parameters: summaries,
		Issues:     makeIssues(r.Issues()),
	}, nil
}
