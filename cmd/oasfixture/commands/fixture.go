package commands

import (
	"flag"
	"fmt"
	"os"

	"github.com/erraggy/oasfixture/fixture"
	"github.com/erraggy/oasfixture/internal/cliutil"
	"github.com/erraggy/oasfixture/schema"
	"github.com/erraggy/oasfixture/value"
)

// FixtureFlags contains flags for the fixture command
type FixtureFlags struct {
	Target targetFlags
	Key    string
	Path   string
	Random bool
	Format string
}

// FixtureOutput is the structured result of the fixture command.
type FixtureOutput struct {
	Value     any               `json:"value" yaml:"value"`
	Variables []string          `json:"variables,omitempty" yaml:"variables,omitempty"`
	JSONPaths map[string]string `json:"json_paths,omitempty" yaml:"json_paths,omitempty"`
}

// SetupFixtureFlags creates and configures a FlagSet for the fixture command.
func SetupFixtureFlags() (*flag.FlagSet, *FixtureFlags) {
	fs := flag.NewFlagSet("fixture", flag.ContinueOnError)
	flags := &FixtureFlags{}

	flags.Target.register(fs)
	fs.StringVar(&flags.Key, "key", "fixture", "given key the value is recorded under")
	fs.StringVar(&flags.Path, "path", "", "nested path to read, e.g. data.attributes.name")
	fs.BoolVar(&flags.Random, "random", false, "generate the seeded random value instead of the deterministic one")
	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")

	fs.Usage = func() {
		output := fs.Output()
		cliutil.Writef(output, "Usage: oasfixture fixture [flags] <file|->\n\n")
		cliutil.Writef(output, "Synthesize a fixture value for a schema.\n\n")
		cliutil.Writef(output, "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(output, "\nExamples:\n")
		cliutil.Writef(output, "  oasfixture fixture -schema WidgetResponse -key widget -path data.id openapi.yaml\n")
		cliutil.Writef(output, "  oasfixture fixture -operation CreateWidget -response 200 -random openapi.yaml\n")
	}

	return fs, flags
}

// HandleFixture executes the fixture command
func HandleFixture(args []string) error {
	env, err := newEnvironment()
	if err != nil {
		return err
	}
	defer env.close()

	fs, flags := SetupFixtureFlags()
	if ok, err := parseArgs(fs, args); !ok {
		return err
	}
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("fixture command requires exactly one file path or '-' for stdin")
	}

	doc, err := loadDocument(fs.Arg(0), env.log)
	if err != nil {
		return err
	}
	node, _, err := doc.Select(flags.Target.Selector)
	if err != nil {
		return err
	}

	v, session, err := synthesize(node, flags)
	if err != nil {
		return err
	}

	out := FixtureOutput{Value: value.ToAny(v)}
	if session != nil {
		for _, vr := range session.Variables() {
			out.Variables = append(out.Variables, vr.Key)
		}
		out.JSONPaths = session.JSONPaths(flags.Key)
	}
	if flags.Format != FormatText {
		return OutputStructured(os.Stdout, out, flags.Format)
	}
	cliutil.Writef(os.Stdout, "%s\n", value.Format(v))
	for _, key := range out.Variables {
		cliutil.Writef(os.Stderr, "%s -> %s\n", key, out.JSONPaths[key])
	}
	return nil
}

// synthesize returns the value at flags.Path. Deterministic values are
// recorded in the returned session; random values have none.
func synthesize(node *schema.Node, flags *FixtureFlags) (value.Value, *fixture.Session, error) {
	if flags.Random {
		acc, err := fixture.NewAccessor(node).Lookup(flags.Path)
		if err != nil {
			return nil, nil, err
		}
		return fixture.Generate(acc.Node(), acc.Path(), fixture.GenerateOptions{Random: true, Prefix: flags.Key}), nil, nil
	}

	session := fixture.NewSession()
	acc, err := session.Given(fmt.Sprintf("there is a valid %q", flags.Key), flags.Key, node)
	if err != nil {
		return nil, nil, err
	}
	if acc, err = acc.Lookup(flags.Path); err != nil {
		return nil, nil, err
	}
	v, err := acc.Value()
	if err != nil {
		return nil, nil, err
	}
	session.Lookup(v)
	return v, session, nil
}
