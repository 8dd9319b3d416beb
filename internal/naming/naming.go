// Package naming provides shared string case conversion utilities.
package naming

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	patternLeadingAlpha   = regexp.MustCompile(`(.)([A-Z][a-z]+)`)
	patternFollowingAlpha = regexp.MustCompile(`([a-z0-9])([A-Z])`)
	patternNonWord        = regexp.MustCompile(`[^\p{L}\p{N}_]`)
	patternMultiUnder     = regexp.MustCompile(`__+`)
	patternNonAlnum       = regexp.MustCompile(`[^A-Za-z0-9]+`)
)

// goKeywords contains Go keywords that cannot be used as identifiers.
// Predeclared identifiers like "error" or "string" can be shadowed and are not listed.
var goKeywords = map[string]bool{
	"break": true, "case": true, "chan": true, "const": true, "continue": true,
	"default": true, "defer": true, "else": true, "fallthrough": true, "for": true,
	"func": true, "go": true, "goto": true, "if": true, "import": true,
	"interface": true, "map": true, "package": true, "range": true, "return": true,
	"select": true, "struct": true, "switch": true, "type": true, "var": true,
}

// ToPascalCase converts a string to PascalCase.
// Separators (underscore, hyphen, dot, slash) trigger capitalization of the next letter.
// Example: "user_profile" -> "UserProfile"
// Example: "api-client" -> "ApiClient"
func ToPascalCase(s string) string {
	if s == "" {
		return ""
	}

	var result strings.Builder
	capitalizeNext := true

	for _, r := range s {
		if r == '_' || r == '-' || r == '.' || r == '/' {
			capitalizeNext = true
			continue
		}
		if capitalizeNext {
			result.WriteRune(unicode.ToUpper(r))
			capitalizeNext = false
		} else {
			result.WriteRune(r)
		}
	}

	return result.String()
}

// ToCamelCase converts a string to camelCase.
// Example: "user_profile" -> "userProfile"
func ToCamelCase(s string) string {
	return Untitle(ToPascalCase(s))
}

// ToSnakeCase converts a string to snake_case.
// Word boundaries are detected at case changes, so acronyms stay together.
// Any character that is not a letter, digit or underscore becomes an underscore.
// Example: "UserProfile" -> "user_profile"
// Example: "APIClient" -> "api_client"
// Example: "page[size]" -> "page_size"
func ToSnakeCase(s string) string {
	if s == "" {
		return ""
	}
	s = patternLeadingAlpha.ReplaceAllString(s, "${1}_${2}")
	s = strings.ToLower(patternFollowingAlpha.ReplaceAllString(s, "${1}_${2}"))
	s = patternNonWord.ReplaceAllString(s, "_")
	s = strings.TrimRight(s, "_")
	return patternMultiUnder.ReplaceAllString(s, "_")
}

// ToUpperSnakeCase converts a string to UPPER_SNAKE case.
// Example: "createdAt" -> "CREATED_AT"
func ToUpperSnakeCase(s string) string {
	return strings.ToUpper(ToSnakeCase(s))
}

// ToKebabCase converts a string to kebab-case.
// Example: "UserProfile" -> "user-profile"
func ToKebabCase(s string) string {
	return strings.ReplaceAll(ToSnakeCase(s), "_", "-")
}

// ToTitleCase converts the first letter to uppercase.
// Example: "hello" -> "Hello"
func ToTitleCase(s string) string {
	if s == "" {
		return ""
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// Untitle converts the first letter to lowercase.
// Example: "ListWidgets" -> "listWidgets"
func Untitle(s string) string {
	if s == "" {
		return ""
	}
	runes := []rune(s)
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}

// ToGoName converts a schema property or parameter name to an exported Go
// identifier. Each snake_case word is title cased, so acronyms are not kept.
// Example: "created_at" -> "CreatedAt"
// Example: "filter[query]" -> "FilterQuery"
// Example: "id" -> "Id"
func ToGoName(s string) string {
	caser := cases.Title(language.Und)
	var sb strings.Builder
	for _, part := range strings.Split(ToSnakeCase(s), "_") {
		sb.WriteString(caser.String(part))
	}
	name := sb.String()
	if name == "" {
		return "Field"
	}
	if r := []rune(name)[0]; !unicode.IsLetter(r) {
		name = "Field" + name
	}
	return name
}

// ToVariableName converts a name to an unexported Go identifier that is not a keyword.
// Example: "widget_id" -> "widgetId"
// Example: "type" -> "type_"
func ToVariableName(s string) string {
	return EscapeKeyword(Untitle(ToGoName(s)))
}

// EscapeKeyword appends an underscore to name if it is a Go keyword.
func EscapeKeyword(name string) string {
	if goKeywords[name] {
		return name + "_"
	}
	return name
}

// IsKeyword reports whether name is a Go keyword.
func IsKeyword(name string) bool {
	return goKeywords[name]
}

// Alnum strips every run of characters outside [A-Za-z0-9].
// Example: "Example-Create_a widget" -> "ExampleCreateawidget"
func Alnum(s string) string {
	return patternNonAlnum.ReplaceAllString(s, "")
}

// Underscored replaces every run of characters outside [A-Za-z0-9] with one underscore.
// Example: "Create a widget returns OK" -> "Create_a_widget_returns_OK"
func Underscored(s string) string {
	return patternNonAlnum.ReplaceAllString(s, "_")
}
