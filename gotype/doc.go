// Package gotype maps schema nodes to Go type names for a generated API client.
//
// The emitted names follow the conventions of clients produced by OpenAPI
// Generator: primitives map to builtin Go types, nullable primitives to the
// client's Nullable wrappers, and named components to model types qualified
// by a package prefix.
//
// # Quick Start
//
//	m := gotype.Mapper{Client: "datadog", Prefix: "datadogV1."}
//	name, err := m.Map(node, gotype.Request{AliasHint: "WidgetOptions"})
//	if err != nil {
//	    // a *oaserrors.SchemaError: the node has no mappable kind
//	}
//
// # Nullable Wrappers
//
// With Request.Nullable set, a nullable primitive maps to the read wrapper
// (datadog.NullableString) or, with Request.Constructor, to the constructor
// (datadog.NewNullableString). Named models use the same convention with the
// model prefix (datadogV1.NullableWidget).
package gotype
