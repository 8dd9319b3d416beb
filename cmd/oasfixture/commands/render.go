package commands

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/erraggy/oasfixture/internal/cliutil"
	"github.com/erraggy/oasfixture/internal/config"
	"github.com/erraggy/oasfixture/internal/issues"
	"github.com/erraggy/oasfixture/literal"
	"github.com/erraggy/oasfixture/value"
)

// RenderFlags contains flags for the render command
type RenderFlags struct {
	clientFlags
	Target   targetFlags
	Value    string
	Optional bool
}

// RenderOutput is the structured result of the render command.
type RenderOutput struct {
	Literal string         `json:"literal" yaml:"literal"`
	Issues  []issues.Issue `json:"issues,omitempty" yaml:"issues,omitempty"`
}

// SetupRenderFlags creates and configures a FlagSet for the render command.
// Defaults come from cfg.
func SetupRenderFlags(cfg config.Config) (*flag.FlagSet, *RenderFlags) {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	flags := &RenderFlags{}

	flags.clientFlags.register(fs, cfg)
	flags.Target.register(fs)
	fs.StringVar(&flags.Value, "value", "", "JSON value to render, or '-' to read it from stdin")
	fs.BoolVar(&flags.Optional, "optional", false, "render as an optional field, wrapping primitives in pointer helpers")

	fs.Usage = func() {
		output := fs.Output()
		cliutil.Writef(output, "Usage: oasfixture render [flags] <file>\n\n")
		cliutil.Writef(output, "Render a JSON value as a Go literal of a schema's client type.\n\n")
		cliutil.Writef(output, "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(output, "\nExamples:\n")
		cliutil.Writef(output, "  oasfixture render -schema WidgetCreateRequest -value '{\"name\": \"gear\"}' openapi.yaml\n")
		cliutil.Writef(output, "  echo '10' | oasfixture render -operation ListWidgets -parameter page_size -optional -value - openapi.yaml\n")
		cliutil.Writef(output, "\nExit Codes:\n")
		cliutil.Writef(output, "  0    Literal rendered (warnings go to stderr)\n")
		cliutil.Writef(output, "  1    The value does not fit the schema\n")
	}

	return fs, flags
}

// HandleRender executes the render command
func HandleRender(args []string) error {
	env, err := newEnvironment()
	if err != nil {
		return err
	}
	defer env.close()

	fs, flags := SetupRenderFlags(env.cfg)
	if ok, err := parseArgs(fs, args); !ok {
		return err
	}
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("render command requires exactly one file path")
	}
	if flags.Value == "" {
		return fmt.Errorf("render command requires -value")
	}

	raw := []byte(flags.Value)
	if flags.Value == StdinFilePath {
		if raw, err = io.ReadAll(os.Stdin); err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
	}
	v, err := value.DecodeJSON(raw)
	if err != nil {
		return fmt.Errorf("decoding value: %w", err)
	}

	doc, err := loadDocument(fs.Arg(0), env.log)
	if err != nil {
		return err
	}
	node, hint, err := doc.Select(flags.Target.Selector)
	if err != nil {
		return err
	}

	r, err := literal.New(
		literal.WithClientPackage(flags.ClientPackage),
		literal.WithStrictMode(flags.Strict),
		literal.WithLogger(env.log),
	)
	if err != nil {
		return err
	}
	out, err := r.Render(v, node,
		literal.WithNamePrefix(flags.prefix()),
		literal.Required(!flags.Optional),
		literal.WithAliasHint(hint),
	)
	if err != nil {
		return err
	}

	if flags.Format != FormatText {
		return OutputStructured(os.Stdout, RenderOutput{Literal: out, Issues: r.Issues()}, flags.Format)
	}
	printIssues(r.Issues())
	cliutil.Writef(os.Stdout, "%s\n", out)
	return nil
}
