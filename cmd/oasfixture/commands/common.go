// Package commands provides CLI command handlers for oasfixture.
package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasfixture/internal/cliutil"
	"github.com/erraggy/oasfixture/internal/config"
	"github.com/erraggy/oasfixture/internal/issues"
	"github.com/erraggy/oasfixture/internal/naming"
	"github.com/erraggy/oasfixture/logging"
	"github.com/erraggy/oasfixture/schema"
)

// Output format constants
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// StdinFilePath is the special file path used to indicate reading from stdin.
const StdinFilePath = "-"

// ValidateOutputFormat validates an output format and returns an error if invalid.
func ValidateOutputFormat(format string) error {
	if format != FormatText && format != FormatJSON && format != FormatYAML {
		return fmt.Errorf("invalid format '%s'. Valid formats: %s, %s, %s", format, FormatText, FormatJSON, FormatYAML)
	}
	return nil
}

// OutputStructured writes data in the specified format (json or yaml) to w.
func OutputStructured(w io.Writer, data any, format string) error {
	var bytes []byte
	var err error

	switch format {
	case FormatJSON:
		bytes, err = json.MarshalIndent(data, "", "  ")
	case FormatYAML:
		bytes, err = yaml.Marshal(data)
	default:
		return fmt.Errorf("invalid format for structured output: %s", format)
	}

	if err != nil {
		return fmt.Errorf("marshaling to %s: %w", format, err)
	}

	cliutil.Writef(w, "%s\n", bytes)
	return nil
}

// environment holds the OASFIXTURE_* defaults and the logger built from them.
type environment struct {
	cfg config.Config
	log *logging.ZapAdapter
}

// newEnvironment reads the OASFIXTURE_* defaults. An invalid environment is
// an error so a typo never silently changes generated code.
func newEnvironment() (*environment, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	z, err := logging.NewZap(logging.Config{
		Component: "cli",
		Level:     cfg.LogLevel,
		Format:    cfg.LogFormat,
		Output:    os.Stderr,
	})
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return &environment{cfg: cfg, log: logging.NewZapAdapter(z)}, nil
}

func (e *environment) close() {
	_ = e.log.Sync()
}

// loadDocument loads the document at path, or from stdin for "-".
func loadDocument(path string, log logging.Logger) (*schema.Document, error) {
	opts := []schema.LoadOption{schema.WithLogger(log)}
	if path == StdinFilePath {
		opts = append(opts, schema.WithReader(os.Stdin))
	} else {
		opts = append(opts, schema.WithFilePath(path))
	}
	doc, err := schema.LoadWithOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return doc, nil
}

// clientFlags are shared by commands that emit client code.
type clientFlags struct {
	ClientPackage string
	APIVersion    string
	Strict        bool
	Format        string
}

func (c *clientFlags) register(fs *flag.FlagSet, cfg config.Config) {
	fs.StringVar(&c.ClientPackage, "client", cfg.ClientPackage, "client package qualifying Nullable wrappers and Ptr helpers")
	fs.StringVar(&c.APIVersion, "api-version", cfg.APIVersion, "API version selecting the model package, e.g. v2")
	fs.BoolVar(&c.Strict, "strict", cfg.Strict, "fail on values that would only produce a warning")
	fs.StringVar(&c.Format, "format", FormatText, "output format: text, json, or yaml")
}

// prefix returns the model qualifier, e.g. "datadogV1.".
func (c *clientFlags) prefix() string {
	return c.ClientPackage + naming.ToTitleCase(c.APIVersion) + "."
}

// targetFlags select one schema in a document.
type targetFlags struct {
	schema.Selector
}

func (t *targetFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&t.Schema, "schema", "", "component schema name")
	fs.StringVar(&t.Operation, "operation", "", "operationId holding the schema")
	fs.StringVar(&t.Parameter, "parameter", "", "parameter name within the operation (\"body\" for the request body)")
	fs.StringVar(&t.Response, "response", "", "response status within the operation, e.g. 200")
}

// printIssues writes warnings to stderr, one per line.
func printIssues(list []issues.Issue) {
	for _, i := range list {
		cliutil.Writef(os.Stderr, "%s\n", i)
	}
}

// parseArgs parses args, treating -h as success. ok is false when the
// caller should return err immediately.
func parseArgs(fs *flag.FlagSet, args []string) (ok bool, err error) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
