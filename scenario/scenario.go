// Package scenario turns a declarative example scenario into a runnable Go
// program that calls one API operation through the generated client.
//
// A scenario names the operation, the status it documents, the "given"
// steps whose responses the example depends on, and the body and
// parameters of the request. Body and parameter values are JSON templates:
// every {{ ... }} placeholder is either a fixture path rooted at a given key,
// such as {{ widget.data.id }}, or an expression over the unique* names and
// the timestamp and timeISO relative time helpers.
//
//	sc, err := scenario.ParseFile("create_widget.yaml")
//	res, err := scenario.Run(doc, sc, scenario.WithAPIVersion("v2"))
//	os.WriteFile(filepath.Join(res.Group, res.FileName), res.Source, 0o644)
package scenario

import (
	"errors"
	"os"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasfixture/oaserrors"
)

// DefaultStatus is the documented response status when a scenario omits one.
const DefaultStatus = 200

// ReplaceMe marks a parameter whose value comes from the parameter schema.
const ReplaceMe = "REPLACE.ME"

// Scenario describes one example program.
type Scenario struct {
	Name      string `yaml:"name" json:"name"`
	Operation string `yaml:"operation" json:"operation"`
	Status    int    `yaml:"status,omitempty" json:"status,omitempty"`
	// Enable lists unstable operations the example switches on.
	Enable     []string    `yaml:"enable,omitempty" json:"enable,omitempty"`
	Given      []Given     `yaml:"given,omitempty" json:"given,omitempty"`
	Body       string      `yaml:"body,omitempty" json:"body,omitempty"`
	Parameters []Parameter `yaml:"parameters,omitempty" json:"parameters,omitempty"`
}

// Given is a prerequisite step whose response later values refer to.
type Given struct {
	Step      string `yaml:"step" json:"step"`
	Key       string `yaml:"key" json:"key"`
	Operation string `yaml:"operation" json:"operation"`
	// Source roots the step at a path inside the response, e.g. "data".
	Source string `yaml:"source,omitempty" json:"source,omitempty"`
}

// Parameter supplies one request argument, either from a fixture path or
// from a JSON template.
type Parameter struct {
	Name  string `yaml:"name" json:"name"`
	From  string `yaml:"from,omitempty" json:"from,omitempty"`
	Value string `yaml:"value,omitempty" json:"value,omitempty"`
}

// Parse decodes a YAML scenario.
func Parse(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, &oaserrors.ParseError{Message: "invalid scenario", Cause: err}
	}
	if err := sc.validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// ParseFile reads and decodes a YAML scenario file.
func ParseFile(path string) (*Scenario, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is supplied by the caller
	if err != nil {
		return nil, &oaserrors.ParseError{Path: path, Message: "cannot read scenario", Cause: err}
	}
	sc, err := Parse(data)
	if err != nil {
		var pe *oaserrors.ParseError
		if errors.As(err, &pe) && pe.Path == "" {
			pe.Path = path
		}
		return nil, err
	}
	return sc, nil
}

func (sc *Scenario) validate() error {
	switch {
	case sc.Name == "":
		return &oaserrors.ParseError{Message: "scenario name is required"}
	case sc.Operation == "":
		return &oaserrors.ParseError{Message: "scenario operation is required"}
	}
	for _, g := range sc.Given {
		if g.Key == "" || g.Operation == "" {
			return &oaserrors.ParseError{Message: "given step " + quoteStep(g.Step) + " needs a key and an operation"}
		}
	}
	for _, p := range sc.Parameters {
		if p.Name == "" {
			return &oaserrors.ParseError{Message: "parameter name is required"}
		}
		if (p.From == "") == (p.Value == "") {
			return &oaserrors.ParseError{Message: "parameter " + p.Name + " needs exactly one of from or value"}
		}
	}
	return nil
}

// status returns the documented status, defaulting to DefaultStatus.
func (sc *Scenario) status() int {
	if sc.Status == 0 {
		return DefaultStatus
	}
	return sc.Status
}

func quoteStep(step string) string {
	return `"` + step + `"`
}
