package commands

import (
	"flag"
	"fmt"
	"os"

	"github.com/erraggy/oasfixture/gotype"
	"github.com/erraggy/oasfixture/internal/cliutil"
	"github.com/erraggy/oasfixture/internal/config"
)

// TypeOfFlags contains flags for the typeof command
type TypeOfFlags struct {
	clientFlags
	Target      targetFlags
	Nullable    bool
	Constructor bool
	AliasHint   string
}

// TypeOfOutput is the structured result of the typeof command.
type TypeOfOutput struct {
	Type     string `json:"type" yaml:"type"`
	Nullable bool   `json:"nullable,omitempty" yaml:"nullable,omitempty"`
	Kind     string `json:"kind" yaml:"kind"`
}

// SetupTypeOfFlags creates and configures a FlagSet for the typeof command.
// Defaults come from cfg.
func SetupTypeOfFlags(cfg config.Config) (*flag.FlagSet, *TypeOfFlags) {
	fs := flag.NewFlagSet("typeof", flag.ContinueOnError)
	flags := &TypeOfFlags{}

	flags.clientFlags.register(fs, cfg)
	flags.Target.register(fs)
	fs.BoolVar(&flags.Nullable, "nullable", false, "use the Nullable wrapper for nullable schemas")
	fs.BoolVar(&flags.Constructor, "constructor", false, "print the NewNullable constructor instead of the wrapper type")
	fs.StringVar(&flags.AliasHint, "alias", "", "name for anonymous object types")

	fs.Usage = func() {
		output := fs.Output()
		cliutil.Writef(output, "Usage: oasfixture typeof [flags] <file|->\n\n")
		cliutil.Writef(output, "Print the Go client type of a schema.\n\n")
		cliutil.Writef(output, "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(output, "\nExamples:\n")
		cliutil.Writef(output, "  oasfixture typeof -schema WidgetCreateRequest openapi.yaml\n")
		cliutil.Writef(output, "  oasfixture typeof -operation ListWidgets -parameter page_size openapi.yaml\n")
		cliutil.Writef(output, "  oasfixture typeof -schema Widget -nullable -constructor -api-version v2 openapi.yaml\n")
	}

	return fs, flags
}

// HandleTypeOf executes the typeof command
func HandleTypeOf(args []string) error {
	env, err := newEnvironment()
	if err != nil {
		return err
	}
	defer env.close()

	fs, flags := SetupTypeOfFlags(env.cfg)
	if ok, err := parseArgs(fs, args); !ok {
		return err
	}
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("typeof command requires exactly one file path or '-' for stdin")
	}

	doc, err := loadDocument(fs.Arg(0), env.log)
	if err != nil {
		return err
	}
	node, hint, err := doc.Select(flags.Target.Selector)
	if err != nil {
		return err
	}
	if flags.AliasHint != "" {
		hint = flags.AliasHint
	}

	m := gotype.Mapper{Client: flags.ClientPackage, Prefix: flags.prefix()}
	desc, err := m.Describe(node, gotype.Request{AliasHint: hint, Nullable: flags.Nullable, Constructor: flags.Constructor})
	if err != nil {
		return err
	}

	if flags.Format != FormatText {
		return OutputStructured(os.Stdout, TypeOfOutput{Type: desc.Name, Nullable: desc.Nullable, Kind: node.Kind.String()}, flags.Format)
	}
	cliutil.Writef(os.Stdout, "%s\n", desc.Name)
	return nil
}
