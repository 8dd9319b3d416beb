package literal

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/erraggy/oasfixture/gotype"
	"github.com/erraggy/oasfixture/oaserrors"
	"github.com/erraggy/oasfixture/schema"
	"github.com/erraggy/oasfixture/value"
)

func (r *Renderer) renderEnum(v value.Value, node *schema.Node, st state) (string, error) {
	name := node.Name
	if name == "" {
		name = st.alias
	}

	if value.IsNull(v) && node.Nullable {
		if st.inList || name == "" {
			return "nil", nil
		}
		return "*" + st.prefix + "NewNullable" + name + "(nil)", nil
	}

	idx := node.EnumIndex(v)
	if idx < 0 {
		allowed := make([]any, len(node.Enum))
		for i, e := range node.Enum {
			allowed[i] = value.ToAny(e)
		}
		return "", &oaserrors.ValueError{
			Path:    st.path,
			Value:   value.Format(v),
			Allowed: allowed,
			Message: "not an allowed enum value",
		}
	}
	if len(node.EnumNames) != len(node.Enum) {
		return "", &oaserrors.SchemaError{
			Path:    st.path,
			Schema:  node.Name,
			Message: fmt.Sprintf("%d enum values but %d names", len(node.Enum), len(node.EnumNames)),
		}
	}
	if name == "" {
		return "", &oaserrors.SchemaError{Path: st.path, Message: "enum without a reference name cannot be inlined"}
	}

	var lit string
	if expr, ok := r.lookup(v, st); ok {
		lit = st.prefix + name + "(" + expr + ")"
	} else {
		lit = st.prefix + strings.ToUpper(name) + "_" + node.EnumNames[idx]
	}

	switch {
	case st.inList:
		if node.Nullable {
			return lit + ".Ptr()", nil
		}
		return lit, nil
	case node.Nullable:
		return "*" + st.prefix + "NewNullable" + name + "(" + lit + ".Ptr())", nil
	case !st.required:
		return lit + ".Ptr()", nil
	default:
		return lit, nil
	}
}

func (r *Renderer) renderPrimitive(v value.Value, node *schema.Node, st state) (string, error) {
	m := r.Mapper(st.prefix)

	if value.IsNull(v) {
		switch {
		case node.Nullable && !st.inList:
			return "*" + m.NullableConstructor(node) + "(nil)", nil
		case node.Nullable || !st.required:
			return "nil", nil
		default:
			return "", &oaserrors.ValueError{Path: st.path, Value: "null", Message: "null value for a non-nullable " + node.Kind.String()}
		}
	}

	if err := checkScalar(v, node, st.path); err != nil {
		return "", err
	}

	p, _ := gotype.PrimitiveFor(node.Kind, node.Format)
	var lit string
	if expr, ok := r.lookup(v, st); ok {
		lit = coerce(expr, v, p)
	} else {
		var err error
		if lit, err = formatScalar(v, node, st.path); err != nil {
			return "", err
		}
	}
	if node.Format == schema.FormatBinary {
		return lit, nil
	}

	switch {
	case st.inList:
		if node.Nullable {
			return m.Ptr(node) + "(" + lit + ")", nil
		}
		return lit, nil
	case node.Nullable:
		return "*" + m.NullableConstructor(node) + "(" + m.Ptr(node) + "(" + lit + "))", nil
	case !st.required:
		return m.Ptr(node) + "(" + lit + ")", nil
	default:
		return lit, nil
	}
}

// renderAny renders a value whose schema accepts anything. Only numbers and
// strings have an unambiguous Go literal.
func (r *Renderer) renderAny(v value.Value, st state) (string, error) {
	switch x := v.(type) {
	case value.Null:
		return "nil", nil
	case value.Int, value.Float, value.String:
		if expr, ok := r.lookup(v, st); ok {
			return expr, nil
		}
		switch x := x.(type) {
		case value.Int:
			return strconv.FormatInt(int64(x), 10), nil
		case value.Float:
			return formatFloat(float64(x)), nil
		default:
			return formatString(string(x.(value.String))), nil
		}
	default:
		return "", typeError(st.path, v, "int, float or string")
	}
}

// checkScalar verifies that v has the runtime shape required by a primitive node.
func checkScalar(v value.Value, node *schema.Node, path string) error {
	switch node.Kind {
	case schema.KindString:
		if _, ok := v.(value.String); !ok {
			return typeError(path, v, "string")
		}
	case schema.KindInteger:
		switch x := v.(type) {
		case value.Int:
		case value.Float:
			if float64(x) != math.Trunc(float64(x)) {
				return typeError(path, v, "integer")
			}
		default:
			return typeError(path, v, "integer")
		}
	case schema.KindNumber:
		switch v.(type) {
		case value.Int, value.Float:
		default:
			return typeError(path, v, "number")
		}
	case schema.KindBoolean:
		if _, ok := v.(value.Bool); !ok {
			return typeError(path, v, "boolean")
		}
	}
	return nil
}

// formatScalar renders a value already accepted by checkScalar.
func formatScalar(v value.Value, node *schema.Node, path string) (string, error) {
	switch x := v.(type) {
	case value.String:
		switch node.Format {
		case schema.FormatDate, schema.FormatDateTime:
			return formatTime(string(x), path)
		case schema.FormatBinary:
			return formatBinary(string(x)), nil
		default:
			return formatString(string(x)), nil
		}
	case value.Int:
		return strconv.FormatInt(int64(x), 10), nil
	case value.Float:
		if node.Kind == schema.KindInteger {
			return strconv.FormatInt(int64(x), 10), nil
		}
		return formatFloat(float64(x)), nil
	case value.Bool:
		return strconv.FormatBool(bool(x)), nil
	default:
		return "", typeError(path, v, node.Kind.String())
	}
}

// coerce converts a captured variable to the statically mapped type.
// Captured numbers are int64 or float64.
func coerce(expr string, v value.Value, p gotype.Primitive) string {
	_, isInt := v.(value.Int)
	switch {
	case p.GoType == "int32":
		return "int32(" + expr + ")"
	case p.GoType == "float32":
		return "float32(" + expr + ")"
	case p.GoType == "float64" && isInt:
		return "float64(" + expr + ")"
	default:
		return expr
	}
}

// formatString quotes s. Strings holding a quote, newline or backtick use
// the raw form; backtick runs are spliced in as interpreted strings. Strings
// with any other control character stay in the quoted form.
func formatString(s string) string {
	if !utf8.ValidString(s) || hasControl(s) {
		return strconv.Quote(s)
	}
	if !strings.ContainsAny(s, "\"\n`") {
		return strconv.Quote(s)
	}

	var sb strings.Builder
	sb.WriteByte('`')
	for i := 0; i < len(s); {
		if s[i] != '`' {
			sb.WriteByte(s[i])
			i++
			continue
		}
		j := i
		for j < len(s) && s[j] == '`' {
			j++
		}
		sb.WriteString("` + \"")
		sb.WriteString(s[i:j])
		sb.WriteString("\" + `")
		i = j
	}
	sb.WriteByte('`')
	return sb.String()
}

func hasControl(s string) bool {
	for _, r := range s {
		if (r < 0x20 && r != '\n') || r == 0x7f {
			return true
		}
	}
	return false
}

// formatTime renders a date or date-time string as a time.Date call in UTC
// with microsecond precision.
func formatTime(s, path string) (string, error) {
	t, err := parseTime(s)
	if err != nil {
		return "", &oaserrors.ValueError{Path: path, Value: s, Message: "invalid date", Cause: err}
	}
	t = t.UTC()
	return fmt.Sprintf("time.Date(%d, %d, %d, %d, %d, %d, %d, time.UTC)",
		t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute(), t.Second(),
		t.Nanosecond()/1000*1000), nil
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err == nil {
		return t, nil
	}
	if d, derr := time.Parse(time.DateOnly, s); derr == nil {
		return d, nil
	}
	return time.Time{}, err
}

func formatBinary(path string) string {
	return "func() *os.File { fp, _ := os.Open(" + strconv.Quote(path) + "); return fp }()"
}

// formatFloat keeps a decimal point so the literal stays a float constant.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
