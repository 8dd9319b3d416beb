package commands

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/erraggy/oasfixture/internal/cliutil"
	"github.com/erraggy/oasfixture/internal/config"
	"github.com/erraggy/oasfixture/internal/fileutil"
	"github.com/erraggy/oasfixture/scenario"
)

// ExampleFlags contains flags for the example command
type ExampleFlags struct {
	clientFlags
	ClientImport string
	OutputDir    string
	Clock        string
}

// ExampleOutput summarizes one generated example.
type ExampleOutput struct {
	Scenario  string                       `json:"scenario" yaml:"scenario"`
	File      string                       `json:"file,omitempty" yaml:"file,omitempty"`
	Skipped   bool                         `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	Variables []string                     `json:"variables,omitempty" yaml:"variables,omitempty"`
	JSONPaths map[string]map[string]string `json:"json_paths,omitempty" yaml:"json_paths,omitempty"`
	Warnings  []string                     `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// SetupExampleFlags creates and configures a FlagSet for the example command.
// Defaults come from cfg.
func SetupExampleFlags(cfg config.Config) (*flag.FlagSet, *ExampleFlags) {
	fs := flag.NewFlagSet("example", flag.ContinueOnError)
	flags := &ExampleFlags{}

	flags.clientFlags.register(fs, cfg)
	fs.StringVar(&flags.ClientImport, "client-import", cfg.ClientImport, "import path of the client's base package")
	fs.StringVar(&flags.OutputDir, "o", "", "write examples under this directory as <group>/<file> instead of stdout")
	fs.StringVar(&flags.Clock, "clock", "", "RFC 3339 time relative times are computed from (default: frozen time)")

	fs.Usage = func() {
		output := fs.Output()
		cliutil.Writef(output, "Usage: oasfixture example [flags] <file> <scenario>...\n\n")
		cliutil.Writef(output, "Generate runnable Go example programs from scenario files.\n\n")
		cliutil.Writef(output, "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(output, "\nExamples:\n")
		cliutil.Writef(output, "  oasfixture example openapi.yaml scenarios/create_widget.yaml\n")
		cliutil.Writef(output, "  oasfixture example -api-version v2 -o examples openapi.yaml scenarios/*.yaml\n")
		cliutil.Writef(output, "\nOutput:\n")
		cliutil.Writef(output, "  Without -o exactly one scenario is allowed and its program is printed to stdout.\n")
		cliutil.Writef(output, "  Scenarios documenting a status of 300 or more are skipped with a warning.\n")
	}

	return fs, flags
}

// HandleExample executes the example command
func HandleExample(args []string) error {
	env, err := newEnvironment()
	if err != nil {
		return err
	}
	defer env.close()

	fs, flags := SetupExampleFlags(env.cfg)
	if ok, err := parseArgs(fs, args); !ok {
		return err
	}
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}
	if fs.NArg() < 2 {
		fs.Usage()
		return fmt.Errorf("example command requires a document and at least one scenario")
	}
	if flags.OutputDir == "" && fs.NArg() != 2 {
		return fmt.Errorf("example command writes more than one scenario only with -o")
	}

	opts := []scenario.Option{
		scenario.WithClientPackage(flags.ClientPackage),
		scenario.WithAPIVersion(flags.APIVersion),
		scenario.WithClientImport(flags.ClientImport),
		scenario.WithStrictMode(flags.Strict),
		scenario.WithLogger(env.log),
	}
	if flags.Clock != "" {
		clock, err := time.Parse(time.RFC3339Nano, flags.Clock)
		if err != nil {
			return fmt.Errorf("invalid -clock: %w", err)
		}
		opts = append(opts, scenario.WithClock(clock))
	}

	doc, err := loadDocument(fs.Arg(0), env.log)
	if err != nil {
		return err
	}

	summaries := make([]ExampleOutput, 0, fs.NArg()-1)
	for _, path := range fs.Args()[1:] {
		sc, err := scenario.ParseFile(path)
		if err != nil {
			return err
		}
		res, err := scenario.Run(doc, sc, opts...)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		summary := ExampleOutput{Scenario: sc.Name, Skipped: res.Skipped, JSONPaths: res.JSONPaths}
		for _, v := range res.Variables {
			summary.Variables = append(summary.Variables, v.Key)
		}
		for _, i := range res.Issues {
			summary.Warnings = append(summary.Warnings, i.String())
		}

		if !res.Skipped {
			if flags.OutputDir == "" {
				cliutil.Writef(os.Stdout, "%s", res.Source)
			} else {
				file := filepath.Join(flags.OutputDir, res.Group, res.FileName)
				if err := fileutil.WriteGenerated(file, res.Source); err != nil {
					return err
				}
				summary.File = file
			}
		}
		summaries = append(summaries, summary)
	}

	if flags.Format != FormatText {
		return OutputStructured(os.Stderr, summaries, flags.Format)
	}
	for _, s := range summaries {
		for _, w := range s.Warnings {
			cliutil.Writef(os.Stderr, "%s\n", w)
		}
		if s.File != "" {
			cliutil.Writef(os.Stderr, "wrote %s\n", s.File)
		}
	}
	return nil
}
