// Package naming provides shared case conversion utilities for oasfixture packages.
//
// Functions include ToPascalCase, ToCamelCase, ToSnakeCase, ToUpperSnakeCase,
// ToKebabCase, ToTitleCase, Untitle and ToGoName, plus Go keyword escaping.
//
// These functions are used for:
//   - Schema loader: enum display names derived from raw values
//   - Literal renderer: struct field identifiers and enum constant names
//   - Fixture synthesizer: snake_case accessor fallback and placeholder keys
//   - Scenario driver: variable identifiers, group names and scenario prefixes
//
// As an internal package, these functions are not part of the public API
// and may change without notice.
package naming
