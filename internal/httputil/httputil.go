// Package httputil provides HTTP status code and media type helpers.
package httputil

import (
	"mime"
	"strconv"
	"strings"
)

// HTTP Status Code Constants
const (
	StatusCodeLength = 3   // Standard length of HTTP status codes (e.g., "200", "404")
	MinStatusCode    = 100 // Minimum valid HTTP status code
	MaxStatusCode    = 599 // Maximum valid HTTP status code
	WildcardChar     = 'X' // Wildcard character used in status code patterns (e.g., "2XX")
)

// Wildcard boundary characters for validation
const (
	minWildcardBoundary = '1'
	maxWildcardBoundary = '5'
)

// ValidateStatusCode checks if a response key is valid in an OpenAPI document.
// Valid values are:
//   - "default" for default response
//   - Extension fields starting with "x-"
//   - Wildcard patterns: 1XX, 2XX, 3XX, 4XX, 5XX
//   - Numeric codes: 100-599
func ValidateStatusCode(code string) bool {
	if code == "default" {
		return true
	}

	if strings.HasPrefix(code, "x-") {
		return true
	}

	if len(code) != StatusCodeLength {
		return false
	}

	// Check for wildcard patterns (e.g., "2XX", "4XX")
	if code[1] == WildcardChar && code[2] == WildcardChar {
		return code[0] >= minWildcardBoundary && code[0] <= maxWildcardBoundary
	}

	statusCode, ok := numericStatus(code)
	return ok && statusCode >= MinStatusCode && statusCode <= MaxStatusCode
}

// IsSuccess reports whether a response key denotes a 2xx response,
// including the "2XX" wildcard.
func IsSuccess(code string) bool {
	if code == "2XX" {
		return true
	}
	statusCode, ok := numericStatus(code)
	return ok && statusCode >= 200 && statusCode < 300
}

func numericStatus(code string) (int, bool) {
	if len(code) != StatusCodeLength {
		return 0, false
	}
	for i := range len(code) {
		if code[i] < '0' || code[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(code)
	return n, err == nil
}

// IsJSONMediaType reports whether mediaType carries JSON: application/json,
// a +json structured syntax suffix, or a json subtype under any type.
// Parameters such as charset are ignored.
func IsJSONMediaType(mediaType string) bool {
	mt, _, err := mime.ParseMediaType(mediaType)
	if err != nil {
		return false
	}
	_, subtype, ok := strings.Cut(mt, "/")
	if !ok {
		return false
	}
	return subtype == "json" || strings.HasSuffix(subtype, "+json")
}
