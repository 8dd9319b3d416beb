// Package oasfixture turns OpenAPI schemas and example data into Go source
// for a generated API client.
//
// Given an operation and a JSON-like value, oasfixture answers three
// questions: which Go type a schema maps to, which Go expression builds a
// value of that type, and how the values line up as the arguments of a
// client call. It also synthesizes plausible values for schemas that have no
// data yet, and drives whole example programs from declarative scenarios.
//
// # Packages
//
//   - schema: load an OpenAPI 3 document into a read-only schema graph
//   - gotype: map schema nodes to Go type expressions
//   - literal: render values as Go literals against their schema
//   - params: assemble the argument list of an operation call
//   - fixture: synthesize values and track the variables that hold them
//   - scenario: generate runnable example programs from scenario files
//   - value: the ordered JSON-like value model shared by all of the above
//   - oaserrors: typed errors for errors.Is and errors.As
//   - logging: slog-compatible logging backed by zap
//
// # Quick Start
//
//	doc, err := schema.Load("openapi.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	r, _ := literal.New()
//	v, _ := value.DecodeJSON([]byte(`{"name": "example"}`))
//	lit, err := r.Render(v, doc.Schema("Widget"),
//		literal.WithNamePrefix("datadogV1."), literal.Required(true))
//	fmt.Println(lit)
//
// The oasfixture command exposes the same operations on the command line
// and as an MCP server.
package oasfixture
