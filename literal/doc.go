// Package literal renders decoded data values as Go source expressions for
// a generated API client.
//
// A Renderer walks a value.Value alongside its schema.Node and emits the
// composite literal, constructor call or constant that produces the same
// value through the client's model types:
//
//	r, err := literal.New(literal.WithClientPackage("datadog"))
//	if err != nil {
//	    return err
//	}
//	src, err := r.Render(v, node,
//	    literal.WithNamePrefix("datadogV1."),
//	    literal.Required(true),
//	    literal.WithPath("body"),
//	)
//
// # oneOf Resolution
//
// A value rendered against a oneOf is tried against every alternative in
// declaration order, each as a non-nullable copy. When more than one
// alternative matches, the first one wins and a warning issue is recorded
// ("ambiguous match"). When none matches, Render returns a
// *oaserrors.ValueError wrapping the last failure.
//
// During those trials an object only matches when it declares every key of
// the value (or accepts additionalProperties) and every required property is
// present. Outside trials, undeclared keys are ignored.
//
// # Replacements
//
// Values captured by earlier scenario steps are emitted as variable
// references instead of literals. WithReplacements supplies the lookup,
// usually a fixture.Session.
//
// # Issues
//
// Non-fatal conditions are recorded as warnings, available from Issues and
// also logged. In strict mode they are returned as *oaserrors.ValueError.
package literal
