package commands

import (
	"flag"
	"fmt"
	"os"

	"github.com/erraggy/oasfixture/internal/cliutil"
	"github.com/erraggy/oasfixture/internal/config"
	"github.com/erraggy/oasfixture/internal/issues"
	"github.com/erraggy/oasfixture/literal"
	"github.com/erraggy/oasfixture/params"
	"github.com/erraggy/oasfixture/value"
)

// ParamsFlags contains flags for the params command
type ParamsFlags struct {
	clientFlags
	Operation string
	Args      string
	BodyVar   string
}

// ParamsOutput is the structured result of the params command.
type ParamsOutput struct {
	Arguments string         `json:"arguments" yaml:"arguments"`
	Issues    []issues.Issue `json:"issues,omitempty" yaml:"issues,omitempty"`
}

// SetupParamsFlags creates and configures a FlagSet for the params command.
// Defaults come from cfg.
func SetupParamsFlags(cfg config.Config) (*flag.FlagSet, *ParamsFlags) {
	fs := flag.NewFlagSet("params", flag.ContinueOnError)
	flags := &ParamsFlags{}

	flags.clientFlags.register(fs, cfg)
	fs.StringVar(&flags.Operation, "operation", "", "operationId of the operation to call")
	fs.StringVar(&flags.Args, "args", "{}", "JSON object of arguments keyed by parameter name (\"body\" for the request body)")
	fs.StringVar(&flags.BodyVar, "body-var", "", "print this identifier for the body instead of its literal")

	fs.Usage = func() {
		output := fs.Output()
		cliutil.Writef(output, "Usage: oasfixture params [flags] <file>\n\n")
		cliutil.Writef(output, "Assemble the Go argument list for calling an operation.\n\n")
		cliutil.Writef(output, "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(output, "\nExamples:\n")
		cliutil.Writef(output, "  oasfixture params -operation ListWidgets -args '{\"page_size\": 10}' openapi.yaml\n")
		cliutil.Writef(output, "  oasfixture params -operation CreateWidget -args '{\"body\": {}}' -body-var body openapi.yaml\n")
	}

	return fs, flags
}

// HandleParams executes the params command
func HandleParams(args []string) error {
	env, err := newEnvironment()
	if err != nil {
		return err
	}
	defer env.close()

	fs, flags := SetupParamsFlags(env.cfg)
	if ok, err := parseArgs(fs, args); !ok {
		return err
	}
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("params command requires exactly one file path")
	}
	if flags.Operation == "" {
		return fmt.Errorf("params command requires -operation")
	}

	v, err := value.DecodeJSON([]byte(flags.Args))
	if err != nil {
		return fmt.Errorf("decoding args: %w", err)
	}
	argMap, ok := v.(*value.Mapping)
	if !ok {
		return fmt.Errorf("args must be a JSON object, got %s", value.TypeName(v))
	}

	doc, err := loadDocument(fs.Arg(0), env.log)
	if err != nil {
		return err
	}
	op := doc.Operation(flags.Operation)
	if op == nil {
		return fmt.Errorf("operation %q not found", flags.Operation)
	}

	r, err := literal.New(
		literal.WithClientPackage(flags.ClientPackage),
		literal.WithStrictMode(flags.Strict),
		literal.WithLogger(env.log),
	)
	if err != nil {
		return err
	}
	a, err := params.New(r, params.WithNamePrefix(flags.prefix()), params.WithBodyVariable(flags.BodyVar))
	if err != nil {
		return err
	}
	out, err := a.Assemble(argMap, op)
	if err != nil {
		return err
	}

	if flags.Format != FormatText {
		return OutputStructured(os.Stdout, ParamsOutput{Arguments: out, Issues: r.Issues()}, flags.Format)
	}
	printIssues(r.Issues())
	cliutil.Writef(os.Stdout, "%s\n", out)
	return nil
}
