// Package config loads oasfixture defaults from OASFIXTURE_* environment
// variables. Command-line flags and tool arguments override these values.
package config

import (
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/erraggy/oasfixture/oaserrors"
)

// Prefix is prepended to every variable name.
const Prefix = "OASFIXTURE_"

// Config holds the process-wide defaults.
type Config struct {
	// ClientPackage is the generated client's base package name.
	ClientPackage string `env:"CLIENT_PACKAGE" envDefault:"datadog"`
	// APIVersion selects the versioned model package, e.g. "v2" for datadogV2.
	APIVersion string `env:"API_VERSION" envDefault:"v1"`
	// ClientImport is the import path of the client's base package.
	ClientImport string `env:"CLIENT_IMPORT" envDefault:"github.com/DataDog/datadog-api-client-go/v2/api/datadog"`
	// Strict turns rendering warnings into errors.
	Strict bool `env:"STRICT" envDefault:"false"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"warn"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"console"`

	// MaxInlineSize bounds inline documents passed to MCP tools, in bytes.
	MaxInlineSize int64 `env:"MAX_INLINE_SIZE" envDefault:"10485760"`

	Cache Cache `envPrefix:"CACHE_"`
}

// Cache configures the MCP server's document cache.
type Cache struct {
	Enabled       bool          `env:"ENABLED" envDefault:"true"`
	MaxSize       int           `env:"MAX_SIZE" envDefault:"10"`
	FileTTL       time.Duration `env:"FILE_TTL" envDefault:"15m"`
	ContentTTL    time.Duration `env:"CONTENT_TTL" envDefault:"15m"`
	SweepInterval time.Duration `env:"SWEEP_INTERVAL" envDefault:"60s"`
}

// Load reads the configuration from the process environment.
func Load() (Config, error) {
	return parse(env.Options{Prefix: Prefix})
}

// LoadFrom reads the configuration from environ instead of the process
// environment. Keys include the prefix.
func LoadFrom(environ map[string]string) (Config, error) {
	if environ == nil {
		environ = map[string]string{}
	}
	return parse(env.Options{Prefix: Prefix, Environment: environ})
}

func parse(opts env.Options) (Config, error) {
	cfg, err := env.ParseAsWithOptions[Config](opts)
	if err != nil {
		return Config{}, &oaserrors.ConfigError{Option: "environment", Message: "invalid " + Prefix + "* variable", Cause: err}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values the environment parser cannot.
func (c Config) Validate() error {
	switch {
	case c.ClientPackage == "":
		return &oaserrors.ConfigError{Option: Prefix + "CLIENT_PACKAGE", Message: "must not be empty"}
	case c.APIVersion == "":
		return &oaserrors.ConfigError{Option: Prefix + "API_VERSION", Message: "must not be empty"}
	case c.MaxInlineSize <= 0:
		return &oaserrors.ConfigError{Option: Prefix + "MAX_INLINE_SIZE", Value: c.MaxInlineSize, Message: "must be positive"}
	case c.Cache.MaxSize <= 0:
		return &oaserrors.ConfigError{Option: Prefix + "CACHE_MAX_SIZE", Value: c.Cache.MaxSize, Message: "must be positive"}
	}
	return nil
}
