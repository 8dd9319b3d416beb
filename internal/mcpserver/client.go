package mcpserver

import (
	"github.com/erraggy/oasfixture/internal/naming"
	"github.com/erraggy/oasfixture/literal"
)

// clientInput overrides the configured client naming for a single call.
type clientInput struct {
	ClientPackage string `json:"client_package,omitempty" jsonschema:"Client package name (default from OASFIXTURE_CLIENT_PACKAGE)"`
	APIVersion    string `json:"api_version,omitempty"    jsonschema:"API version selecting the model package, e.g. v2 (default from OASFIXTURE_API_VERSION)"`
}

func (c clientInput) client() string {
	if c.ClientPackage != "" {
		return c.ClientPackage
	}
	return cfg.ClientPackage
}

func (c clientInput) version() string {
	if c.APIVersion != "" {
		return c.APIVersion
	}
	return cfg.APIVersion
}

// prefix returns the model qualifier, e.g. "datadogV1.".
func (c clientInput) prefix() string {
	return c.client() + naming.ToTitleCase(c.version()) + "."
}

func (c clientInput) renderer(strict bool) (*literal.Renderer, error) {
	return literal.New(
		literal.WithClientPackage(c.client()),
		literal.WithStrictMode(strict || cfg.Strict),
	)
}
