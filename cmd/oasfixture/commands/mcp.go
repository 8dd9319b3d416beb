package commands

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/erraggy/oasfixture/internal/cliutil"
	"github.com/erraggy/oasfixture/internal/mcpserver"
)

// HandleMCP starts the MCP server over stdio. It returns when the client
// disconnects or the process is interrupted.
func HandleMCP(args []string) error {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	fs.Usage = func() {
		output := fs.Output()
		cliutil.Writef(output, "Usage: oasfixture mcp\n\n")
		cliutil.Writef(output, "Serve the oasfixture tools over the Model Context Protocol on stdio.\n")
		cliutil.Writef(output, "Defaults are read from OASFIXTURE_* environment variables.\n")
	}
	if ok, err := parseArgs(fs, args); !ok {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := mcpserver.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
