package scenario

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/goccy/go-json"

	"github.com/erraggy/oasfixture/fixture"
	"github.com/erraggy/oasfixture/internal/naming"
	"github.com/erraggy/oasfixture/oaserrors"
	"github.com/erraggy/oasfixture/value"
)

var (
	placeholderPattern  = regexp.MustCompile(`\{\{\s*(.*?)\s*\}\}`)
	relativeTimePattern = regexp.MustCompile(`^now(?: *([+-]) *(\d+)([smhdMy]))?$`)
	identPattern        = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*`)
)

// maxPrefixLength bounds the scenario part of unique names.
const maxPrefixLength = 100

// examplePrefix derives the unique name used for resources an example creates.
func examplePrefix(scenarioName string) string {
	main := naming.Underscored(scenarioName)
	if len(main) > maxPrefixLength {
		main = main[:maxPrefixLength]
	}
	return "Example-" + main
}

// expander resolves {{ ... }} placeholders in JSON templates.
type expander struct {
	session *fixture.Session
	givens  map[string]*fixture.Accessor
	clock   time.Time
	env     map[string]any
}

func newExpander(scenarioName string, clock time.Time, session *fixture.Session, givens map[string]*fixture.Accessor) *expander {
	prefix := examplePrefix(scenarioName)
	alnum := naming.Alnum(prefix)
	return &expander{
		session: session,
		givens:  givens,
		clock:   clock,
		env: map[string]any{
			"unique":             prefix,
			"unique_lower":       strings.ToLower(prefix),
			"unique_upper":       strings.ToUpper(prefix),
			"unique_alnum":       alnum,
			"unique_lower_alnum": strings.ToLower(alnum),
			"unique_upper_alnum": strings.ToUpper(alnum),
		},
	}
}

// expand substitutes every placeholder in tpl and decodes the result as JSON.
func (e *expander) expand(tpl, path string) (value.Value, error) {
	var firstErr error
	text := placeholderPattern.ReplaceAllStringFunc(tpl, func(m string) string {
		if firstErr != nil {
			return m
		}
		code := placeholderPattern.FindStringSubmatch(m)[1]
		out, err := e.placeholder(code)
		if err != nil {
			firstErr = &oaserrors.ValueError{Path: path, Value: m, Message: "cannot expand placeholder", Cause: err}
			return m
		}
		return out
	})
	if firstErr != nil {
		return nil, firstErr
	}
	v, err := value.DecodeJSON([]byte(text))
	if err != nil {
		return nil, &oaserrors.ParseError{Path: path, Message: "expanded template is not JSON", Cause: err}
	}
	return v, nil
}

// placeholder returns the JSON text for one placeholder body.
func (e *expander) placeholder(code string) (string, error) {
	if root := identPattern.FindString(code); root != "" {
		if acc, ok := e.givens[root]; ok {
			v, err := e.fixture(acc, strings.TrimPrefix(code[len(root):], "."))
			if err != nil {
				return "", err
			}
			return fixtureText(v)
		}
	}

	program, err := expr.Compile(code,
		expr.Env(e.env),
		expr.Function("timestamp", e.timestamp, new(func(string) int64)),
		expr.Function("timeISO", e.timeISO, new(func(string) string)),
	)
	if err != nil {
		return "", err
	}
	out, err := expr.Run(program, e.env)
	if err != nil {
		return "", err
	}
	return exprText(out)
}

// resolve returns the value at a fixture path such as "widget.data.id".
func (e *expander) resolve(path string) (value.Value, error) {
	root := identPattern.FindString(path)
	acc, ok := e.givens[root]
	if !ok {
		return nil, &oaserrors.ValueError{Path: path, Message: "unknown fixture " + strconv.Quote(root)}
	}
	return e.fixture(acc, strings.TrimPrefix(path[len(root):], "."))
}

func (e *expander) fixture(acc *fixture.Accessor, path string) (value.Value, error) {
	acc, err := acc.Lookup(path)
	if err != nil {
		return nil, err
	}
	return acc.Value()
}

func (e *expander) timestamp(params ...any) (any, error) {
	t, goExpr, err := e.relativeTime(params)
	if err != nil {
		return nil, err
	}
	ts := t.Unix()
	e.session.RegisterExpression(value.Int(ts), goExpr+".Unix()")
	return ts, nil
}

func (e *expander) timeISO(params ...any) (any, error) {
	t, goExpr, err := e.relativeTime(params)
	if err != nil {
		return nil, err
	}
	iso := t.Format("2006-01-02T15:04:05-07:00")
	e.session.RegisterExpression(value.String(iso), goExpr)
	return iso, nil
}

// relativeTime evaluates "now", "now + 1h" or "now - 2d" against the frozen
// clock and returns the matching Go expression.
func (e *expander) relativeTime(params []any) (time.Time, string, error) {
	if len(params) != 1 {
		return time.Time{}, "", fmt.Errorf("expected one argument, got %d", len(params))
	}
	arg, ok := params[0].(string)
	if !ok {
		return time.Time{}, "", fmt.Errorf("expected a string argument, got %T", params[0])
	}
	m := relativeTimePattern.FindStringSubmatch(strings.TrimSpace(arg))
	if m == nil {
		return time.Time{}, "", fmt.Errorf("invalid relative time %q", arg)
	}
	t, goExpr := e.clock, "time.Now()"
	if m[1] == "" {
		return t, goExpr, nil
	}
	n, err := strconv.Atoi(m[2])
	if err != nil {
		return time.Time{}, "", err
	}
	if m[1] == "-" {
		n = -n
	}
	switch m[3] {
	case "s":
		t, goExpr = t.Add(time.Duration(n)*time.Second), fmt.Sprintf("%s.Add(time.Second*%d)", goExpr, n)
	case "m":
		t, goExpr = t.Add(time.Duration(n)*time.Minute), fmt.Sprintf("%s.Add(time.Minute*%d)", goExpr, n)
	case "h":
		t, goExpr = t.Add(time.Duration(n)*time.Hour), fmt.Sprintf("%s.Add(time.Hour*%d)", goExpr, n)
	case "d":
		t, goExpr = t.AddDate(0, 0, n), fmt.Sprintf("%s.AddDate(0, 0, %d)", goExpr, n)
	case "M":
		t, goExpr = t.AddDate(0, n, 0), fmt.Sprintf("%s.AddDate(0, %d, 0)", goExpr, n)
	case "y":
		t, goExpr = t.AddDate(n, 0, 0), fmt.Sprintf("%s.AddDate(%d, 0, 0)", goExpr, n)
	}
	return t, goExpr, nil
}

// fixtureText renders a fixture value for splicing into a JSON template.
// Strings are spliced without quotes, the template supplies them.
func fixtureText(v value.Value) (string, error) {
	if s, ok := v.(value.String); ok {
		return jsonInner(string(s))
	}
	b, err := value.Marshal(v)
	return string(b), err
}

func exprText(out any) (string, error) {
	if s, ok := out.(string); ok {
		return jsonInner(s)
	}
	b, err := json.Marshal(out)
	return string(b), err
}

// jsonInner escapes s for use inside a JSON string literal.
func jsonInner(s string) (string, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return "", err
	}
	return string(b[1 : len(b)-1]), nil
}
