package mcpserver

import (
	"log/slog"

	"github.com/erraggy/oasfixture/internal/config"
)

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads OASFIXTURE_* variables. An invalid environment logs a
// warning and falls back to the defaults.
func loadConfig() *config.Config {
	c, err := config.Load()
	if err != nil {
		slog.Warn("invalid environment, using defaults", "error", err)
		c, _ = config.LoadFrom(nil)
	}
	return &c
}
