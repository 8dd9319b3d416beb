// Package options provides shared utilities for option validation across packages.
package options

import (
	"strings"

	"github.com/erraggy/oasfixture/oaserrors"
)

// Source names one possible input of an operation and whether it was set.
type Source struct {
	Name string
	Set  bool
}

// ValidateSingleInputSource ensures exactly one input source is specified.
// component prefixes the error message (e.g., "schema", "mcp").
// Returns a *oaserrors.ConfigError naming the candidate sources when zero or
// more than one is set.
func ValidateSingleInputSource(component string, sources ...Source) error {
	var names, set []string
	for _, s := range sources {
		names = append(names, s.Name)
		if s.Set {
			set = append(set, s.Name)
		}
	}

	switch len(set) {
	case 1:
		return nil
	case 0:
		return &oaserrors.ConfigError{
			Option:  "input",
			Message: component + ": must specify an input source (" + strings.Join(names, ", ") + ")",
		}
	default:
		return &oaserrors.ConfigError{
			Option:  "input",
			Value:   strings.Join(set, ", "),
			Message: component + ": must specify exactly one input source",
		}
	}
}
