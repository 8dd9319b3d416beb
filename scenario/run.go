package scenario

import (
	"fmt"
	"hash/adler32"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/erraggy/oasfixture/fixture"
	"github.com/erraggy/oasfixture/gotype"
	"github.com/erraggy/oasfixture/internal/issues"
	"github.com/erraggy/oasfixture/internal/naming"
	"github.com/erraggy/oasfixture/internal/severity"
	"github.com/erraggy/oasfixture/literal"
	"github.com/erraggy/oasfixture/logging"
	"github.com/erraggy/oasfixture/oaserrors"
	"github.com/erraggy/oasfixture/params"
	"github.com/erraggy/oasfixture/schema"
	"github.com/erraggy/oasfixture/value"
)

// DefaultClientImport is the import path of the client's base package.
const DefaultClientImport = "github.com/DataDog/datadog-api-client-go/v2/api/datadog"

// DefaultAPIVersion selects the versioned model package, e.g. datadogV1.
const DefaultAPIVersion = "v1"

// Result is one generated example program.
type Result struct {
	// Source is the Go program. It is nil when the scenario was skipped.
	Source []byte
	// FileName is <OperationId>.go, with an adler32 suffix for scenarios
	// that do not use the canonical name.
	FileName string
	// Group is the kebab-case first tag of the operation.
	Group string
	// Skipped is set for scenarios documenting a non-success status.
	Skipped bool
	// Issues holds the warnings recorded while generating.
	Issues []issues.Issue
	// Variables lists the given values the program reads from the environment.
	Variables []fixture.Variable
	// JSONPaths maps each given key to its placeholder locations.
	JSONPaths map[string]map[string]string
}

type runConfig struct {
	client       string
	clientImport string
	version      string
	logger       logging.Logger
	strict       bool
	clock        time.Time
}

// Option configures Run.
type Option func(*runConfig) error

// WithClientPackage sets the client package name.
// Default: "datadog"
func WithClientPackage(name string) Option {
	return func(c *runConfig) error {
		if name == "" {
			return &oaserrors.ConfigError{Option: "client", Value: name, Message: "must not be empty"}
		}
		c.client = name
		return nil
	}
}

// WithAPIVersion selects the versioned model package, "v2" gives datadogV2.
// Default: "v1"
func WithAPIVersion(version string) Option {
	return func(c *runConfig) error {
		if version == "" {
			return &oaserrors.ConfigError{Option: "version", Value: version, Message: "must not be empty"}
		}
		c.version = version
		return nil
	}
}

// WithClientImport sets the import path of the client's base package. The
// versioned package is imported from its sibling directory.
func WithClientImport(importPath string) Option {
	return func(c *runConfig) error {
		if importPath == "" {
			return &oaserrors.ConfigError{Option: "client-import", Value: importPath, Message: "must not be empty"}
		}
		c.clientImport = importPath
		return nil
	}
}

// WithLogger sets the logger for warnings.
func WithLogger(l logging.Logger) Option {
	return func(c *runConfig) error {
		c.logger = logging.OrNop(l)
		return nil
	}
}

// WithStrictMode turns rendering warnings into errors.
func WithStrictMode(enabled bool) Option {
	return func(c *runConfig) error {
		c.strict = enabled
		return nil
	}
}

// WithClock sets the time relative time helpers are computed from.
// Default: fixture.FrozenTime
func WithClock(t time.Time) Option {
	return func(c *runConfig) error {
		c.clock = t
		return nil
	}
}

// Run generates the example program for sc against doc.
func Run(doc *schema.Document, sc *Scenario, opts ...Option) (*Result, error) {
	cfg := runConfig{
		client:       gotype.DefaultClientPackage,
		clientImport: DefaultClientImport,
		version:      DefaultAPIVersion,
		logger:       logging.NopLogger{},
		clock:        fixture.FrozenTime,
	}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	if doc == nil || sc == nil {
		return nil, &oaserrors.ConfigError{Option: "input", Message: "document and scenario are required"}
	}
	if err := sc.validate(); err != nil {
		return nil, err
	}

	op := doc.Operation(sc.Operation)
	if op == nil {
		return nil, &oaserrors.ValueError{Path: "operation", Value: sc.Operation, Message: "unknown operation"}
	}
	log := cfg.logger.With("operation", op.ID, "scenario", sc.Name)

	status := sc.status()
	res := &Result{
		FileName: fileName(op, sc, status),
		Group:    op.Group(),
	}
	if status >= 300 {
		issue := issues.Issue{
			Message:   fmt.Sprintf("do not generate example for %s:%s:%d", cfg.version, op.ID, status),
			Severity:  severity.SeverityWarning,
			Operation: op.ID,
		}
		log.Warn(issue.Message)
		res.Skipped = true
		res.Issues = []issues.Issue{issue}
		return res, nil
	}

	g := &generation{cfg: cfg, doc: doc, sc: sc, op: op, session: fixture.NewSession()}
	if err := g.bindGivens(); err != nil {
		return nil, err
	}
	if err := g.render(); err != nil {
		return nil, err
	}

	src, err := executeTemplate("example.go.tmpl", g.data())
	if err != nil {
		return nil, fmt.Errorf("scenario: executing example template: %w", err)
	}
	if formatted, ferr := formatAndFixImports(res.FileName, src); ferr != nil {
		issue := issues.Issue{
			Message:   "example source could not be formatted",
			Severity:  severity.SeverityWarning,
			Operation: op.ID,
			Context:   ferr.Error(),
		}
		log.Warn(issue.Message, "error", ferr)
		g.issues = append(g.issues, issue)
	} else {
		src = formatted
	}

	res.Source = src
	res.Issues = append(g.renderer.Issues(), g.issues...)
	res.Variables = g.session.Variables()
	res.JSONPaths = make(map[string]map[string]string, len(sc.Given))
	for _, given := range sc.Given {
		res.JSONPaths[given.Key] = g.session.JSONPaths(given.Key)
	}
	log.Debug("generated example", "file", res.FileName, "variables", len(res.Variables))
	return res, nil
}

// generation carries the state of one Run.
type generation struct {
	cfg      runConfig
	doc      *schema.Document
	sc       *Scenario
	op       *schema.Operation
	session  *fixture.Session
	expander *expander
	renderer *literal.Renderer
	issues   []issues.Issue

	body      string
	arguments string
}

func (g *generation) prefix() string {
	return g.versionPackage() + "."
}

func (g *generation) versionPackage() string {
	return g.cfg.client + naming.ToTitleCase(g.cfg.version)
}

func (g *generation) bindGivens() error {
	givens := make(map[string]*fixture.Accessor, len(g.sc.Given))
	for i, given := range g.sc.Given {
		at := fmt.Sprintf("given[%d]", i)
		op := g.doc.Operation(given.Operation)
		if op == nil {
			return &oaserrors.ValueError{Path: at + ".operation", Value: given.Operation, Message: "unknown operation"}
		}
		resp := op.SuccessResponse()
		if resp == nil || resp.Schema == nil {
			return &oaserrors.ValueError{Path: at + ".operation", Value: given.Operation, Message: "operation has no response schema"}
		}
		var opts []fixture.GivenOption
		if given.Source != "" {
			opts = append(opts, fixture.FromSource(given.Source))
		}
		acc, err := g.session.Given(given.Step, given.Key, resp.Schema, opts...)
		if err != nil {
			return err
		}
		givens[given.Key] = acc
	}
	g.expander = newExpander(g.sc.Name, g.cfg.clock, g.session, givens)
	return nil
}

// render expands the body and parameters and renders them as Go code.
func (g *generation) render() error {
	r, err := literal.New(
		literal.WithClientPackage(g.cfg.client),
		literal.WithLogger(g.cfg.logger),
		literal.WithStrictMode(g.cfg.strict),
	)
	if err != nil {
		return err
	}
	g.renderer = r

	args := value.NewMapping()
	if g.sc.Body != "" {
		if err := g.renderBody(args); err != nil {
			return err
		}
	}
	for i, p := range g.sc.Parameters {
		v, err := g.parameter(p, fmt.Sprintf("parameters[%d]", i))
		if err != nil {
			return err
		}
		args.Set(p.Name, v)
	}

	asmOpts := []params.Option{
		params.WithNamePrefix(g.prefix()),
		params.WithReplacements(g.session),
	}
	if g.body != "" {
		asmOpts = append(asmOpts, params.WithBodyVariable("body"))
	}
	asm, err := params.New(r, asmOpts...)
	if err != nil {
		return err
	}
	g.arguments, err = asm.Assemble(args, g.op)
	return err
}

func (g *generation) renderBody(args *value.Mapping) error {
	body, err := g.expander.expand(g.sc.Body, "body")
	if err != nil {
		return err
	}
	if g.op.RequestBody == nil {
		return &oaserrors.BindingError{Operation: g.op.ID, Parameter: params.BodyParameter, Message: "operation does not accept a body"}
	}

	if g.op.IsMultipart() {
		fields, ok := body.(*value.Mapping)
		if !ok {
			return &oaserrors.TypeError{Path: "body", Value: value.ToAny(body), Expected: "object"}
		}
		for _, e := range fields.Entries() {
			args.Set(e.Key, e.Value)
		}
		return nil
	}

	node := g.op.RequestBody.Schema
	opts := []literal.RenderOption{
		literal.WithNamePrefix(g.prefix()),
		literal.WithReplacements(g.session),
		literal.Required(true),
		literal.WithPath("body"),
	}
	if node != nil && node.Name == "" {
		opts = append(opts, literal.WithAliasHint(naming.ToTitleCase(g.op.ID)+"Body"))
	}
	g.body, err = g.renderer.Render(body, node, opts...)
	if err != nil {
		return err
	}
	args.Set(params.BodyParameter, body)
	return nil
}

// parameter resolves one scenario parameter to a value.
func (g *generation) parameter(p Parameter, at string) (value.Value, error) {
	if p.Value != "" {
		return g.expander.expand(p.Value, at)
	}
	if p.From != ReplaceMe {
		return g.expander.resolve(p.From)
	}
	declared := g.op.Parameter(p.Name)
	if declared == nil {
		return nil, &oaserrors.BindingError{Operation: g.op.ID, Parameter: p.Name, Message: "argument is not declared by the operation"}
	}
	return placeholderValue(declared)
}

// placeholderValue picks a stand-in value for a parameter the scenario
// leaves to the reader: the schema example or default, else a value typed
// after the schema.
func placeholderValue(p *schema.Parameter) (value.Value, error) {
	n := p.Schema
	if n == nil {
		return value.String(p.Name), nil
	}
	if n.Example != nil {
		return n.Example, nil
	}
	if n.Default != nil {
		return n.Default, nil
	}
	switch n.Kind {
	case schema.KindString:
		if n.Format == schema.FormatDateTime {
			return value.String("2021-11-11T11:11:11.111+00:00"), nil
		}
		return value.String(p.Name), nil
	case schema.KindInteger:
		if n.Format == schema.FormatInt64 {
			return value.Int(9223372036854775807), nil
		}
		return value.Int(1), nil
	case schema.KindNumber:
		return value.Float(1.0), nil
	case schema.KindBoolean:
		return value.Bool(true), nil
	case schema.KindArray:
		return value.Sequence{}, nil
	default:
		return nil, &oaserrors.ValueError{Path: p.Name, Value: ReplaceMe, Message: "no placeholder value for a " + n.Kind.String() + " parameter"}
	}
}

func (g *generation) data() exampleData {
	resp := g.op.Response(strconv.Itoa(g.sc.status()))
	return exampleData{
		Description:    g.sc.Name,
		Client:         g.cfg.client,
		ClientImport:   g.cfg.clientImport,
		Version:        g.cfg.version,
		VersionPackage: g.versionPackage(),
		VersionImport:  path.Join(path.Dir(g.cfg.clientImport), g.versionPackage()),
		Groups:         groupVariables(g.session.Variables()),
		Enable:         g.sc.Enable,
		Body:           g.body,
		API:            apiName(g.op),
		OperationID:    naming.ToTitleCase(g.op.ID),
		Arguments:      g.arguments,
		HasResponse:    resp != nil && resp.Schema != nil,
	}
}

// apiName is the client type serving the operation's first tag.
func apiName(op *schema.Operation) string {
	tag := "Default"
	if len(op.Tags) > 0 {
		tag = strings.ReplaceAll(op.Tags[0], " ", "")
	}
	return tag + "Api"
}

// fileName is <OperationId>.go for the canonical scenario name and gets an
// adler32 suffix of the scenario name otherwise.
func fileName(op *schema.Operation, sc *Scenario, status int) string {
	var description string
	if resp := op.Response(strconv.Itoa(status)); resp != nil {
		description = resp.Description
	}
	canonical := op.Summary + ` returns "` + description + `" response`
	name := naming.ToTitleCase(op.ID)
	if sc.Name != canonical {
		name += "_" + strconv.FormatUint(uint64(adler32.Checksum([]byte(sc.Name))), 10)
	}
	return name + ".go"
}
