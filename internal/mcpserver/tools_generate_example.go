package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasfixture/scenario"
)

type generateExampleInput struct {
	Spec         specInput   `json:"spec"                    jsonschema:"The OpenAPI document the scenario calls"`
	Scenario     string      `json:"scenario"                jsonschema:"The scenario as YAML or JSON: name, operation, given, body, parameters"`
	ClientImport string      `json:"client_import,omitempty" jsonschema:"Import path of the client package (default from OASFIXTURE_CLIENT_IMPORT)"`
	Strict       bool        `json:"strict,omitempty"        jsonschema:"Fail on values that would only produce a warning"`
	Client       clientInput `json:"client,omitempty"        jsonschema:"Client naming overrides"`
}

type exampleVariable struct {
	Name  string `json:"name"`
	Key   string `json:"key"`
	Kind  string `json:"kind"`
	Given string `json:"given"`
}

type generateExampleOutput struct {
	FileName  string                       `json:"file_name"`
	Group     string                       `json:"group,omitempty"`
	Skipped   bool                         `json:"skipped,omitempty"`
	Source    string                       `json:"source,omitempty"`
	Variables []exampleVariable            `json:"variables,omitempty"`
	JSONPaths map[string]map[string]string `json:"json_paths,omitempty"`
	Issues    []issueOutput                `json:"issues,omitempty"`
}

func handleGenerateExample(_ context.Context, _ *mcp.CallToolRequest, input generateExampleInput) (*mcp.CallToolResult, generateExampleOutput, error) {
	doc, err := input.Spec.resolve()
	if err != nil {
		return errResult(err), generateExampleOutput{}, nil
	}
	sc, err := scenario.Parse([]byte(input.Scenario))
	if err != nil {
		return errResult(err), generateExampleOutput{}, nil
	}

	clientImport := input.ClientImport
	if clientImport == "" {
		clientImport = cfg.ClientImport
	}
	res, err := scenario.Run(doc, sc,
		scenario.WithClientPackage(input.Client.client()),
		scenario.WithAPIVersion(input.Client.version()),
		scenario.WithClientImport(clientImport),
		scenario.WithStrictMode(input.Strict || cfg.Strict),
	)
	if err != nil {
		return errResult(err), generateExampleOutput{}, nil
	}

	out := generateExampleOutput{
		FileName:  res.FileName,
		Group:     res.Group,
		Skipped:   res.Skipped,
		Source:    string(res.Source),
		Variables: makeSlice[exampleVariable](len(res.Variables)),
		JSONPaths: res.JSONPaths,
		Issues:    makeIssues(res.Issues),
	}
	for _, v := range res.Variables {
		out.Variables = append(out.Variables, exampleVariable{Name: v.Name, Key: v.Key, Kind: v.Kind, Given: v.Given})
	}
	return nil, out, nil
}
