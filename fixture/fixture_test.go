package fixture

import (
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasfixture/oaserrors"
	"github.com/erraggy/oasfixture/schema"
	"github.com/erraggy/oasfixture/value"
)

const widgetStep = `there is a valid "widget" in the system`

func str() *schema.Node { return &schema.Node{Kind: schema.KindString} }

func object(props ...schema.Property) *schema.Node {
	return &schema.Node{Kind: schema.KindObject, Properties: props}
}

func prop(name string, n *schema.Node) schema.Property {
	return schema.Property{Name: name, Schema: n}
}

func widgetResponse() *schema.Node {
	widget := object(
		prop("attributes", object(
			prop("count", &schema.Node{Kind: schema.KindInteger, Format: schema.FormatInt64}),
			prop("created_at", &schema.Node{Kind: schema.KindString, Format: schema.FormatDateTime}),
			prop("enabled", &schema.Node{Kind: schema.KindBoolean}),
			prop("name", &schema.Node{Kind: schema.KindString, Example: value.String("Example")}),
		)),
		prop("id", str()),
		prop("type", &schema.Node{
			Kind:      schema.KindString,
			Name:      "WidgetType",
			Enum:      []value.Value{value.String("widgets")},
			EnumNames: []string{"WIDGETS"},
			Default:   value.String("widgets"),
		}),
	)
	widget.Name = "Widget"
	return object(prop("data", widget))
}

func TestGenerateDeterministic(t *testing.T) {
	tests := []struct {
		name string
		node *schema.Node
		want value.Value
	}{
		{"example wins", &schema.Node{Kind: schema.KindString, Example: value.String("ex"), Default: value.String("def")}, value.String("ex")},
		{"default", &schema.Node{Kind: schema.KindInteger, Default: value.Int(7)}, value.Int(7)},
		{"first enum", &schema.Node{Kind: schema.KindString, Enum: []value.Value{value.String("b"), value.String("a")}}, value.String("b")},
		{"string", str(), value.String("string")},
		{"integer", &schema.Node{Kind: schema.KindInteger}, value.Int(1)},
		{"number", &schema.Node{Kind: schema.KindNumber}, value.Float(1.0)},
		{"boolean", &schema.Node{Kind: schema.KindBoolean}, value.Bool(true)},
		{"date-time", &schema.Node{Kind: schema.KindString, Format: schema.FormatDateTime}, value.String("2021-11-11T11:11:11.111111Z")},
		{"date", &schema.Node{Kind: schema.KindString, Format: schema.FormatDate}, value.String("2021-11-11")},
		{"array", &schema.Node{Kind: schema.KindArray, Items: &schema.Node{Kind: schema.KindInteger}}, value.Sequence{value.Int(1)}},
		{"oneOf uses first alternative", &schema.Node{Kind: schema.KindOneOf, Alternatives: []*schema.Node{{Kind: schema.KindBoolean}, str()}}, value.Bool(true)},
		{"nil node", nil, value.String("string")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Generate(tt.node, "data.field", GenerateOptions{})
			assert.True(t, value.Equal(tt.want, got), "got %s", value.Format(got))
		})
	}
}

func TestGenerateObject(t *testing.T) {
	got := Generate(object(prop("id", str()), prop("size", &schema.Node{Kind: schema.KindInteger})), "", GenerateOptions{})
	m, ok := got.(*value.Mapping)
	require.True(t, ok)
	assert.Equal(t, []string{"id", "size"}, m.Keys())
}

func TestGenerateRandom(t *testing.T) {
	t.Run("same path gives same value", func(t *testing.T) {
		a := Generate(str(), "data.id", GenerateOptions{Random: true})
		b := Generate(str(), "data.id", GenerateOptions{Random: true})
		assert.Equal(t, a, b)
	})

	t.Run("different paths give different strings", func(t *testing.T) {
		seen := map[value.Value]bool{}
		for _, path := range []string{"data.id", "data.name", "data[0].id", "id"} {
			v := Generate(str(), path, GenerateOptions{Random: true})
			assert.False(t, seen[v], "duplicate value for %s", path)
			seen[v] = true
		}
	})

	t.Run("prefix overrides path", func(t *testing.T) {
		a := Generate(str(), "data.id", GenerateOptions{Random: true, Prefix: "WIDGET_DATA_ID"})
		b := Generate(str(), "other", GenerateOptions{Random: true, Prefix: "WIDGET_DATA_ID"})
		assert.Equal(t, a, b)
		assert.NotEqual(t, value.String("string"), a)
	})

	t.Run("numbers stay in range", func(t *testing.T) {
		i, ok := Generate(&schema.Node{Kind: schema.KindInteger}, "n", GenerateOptions{Random: true}).(value.Int)
		require.True(t, ok)
		assert.GreaterOrEqual(t, int64(i), int64(0))
		assert.Less(t, int64(i), int64(randomRange))

		f, ok := Generate(&schema.Node{Kind: schema.KindNumber}, "n", GenerateOptions{Random: true}).(value.Float)
		require.True(t, ok)
		assert.GreaterOrEqual(t, float64(f), 0.0)
		assert.LessOrEqual(t, float64(f), float64(randomRange))
	})

	t.Run("booleans vary by path", func(t *testing.T) {
		boolean := &schema.Node{Kind: schema.KindBoolean}
		seen := map[value.Value]bool{}
		for i := range 32 {
			path := "data[" + strconv.Itoa(i) + "].enabled"
			v := Generate(boolean, path, GenerateOptions{Random: true})
			assert.Equal(t, v, Generate(boolean, path, GenerateOptions{Random: true}))
			seen[v] = true
		}
		assert.True(t, seen[value.Bool(true)])
		assert.True(t, seen[value.Bool(false)])
		assert.Equal(t, value.Bool(true), Generate(boolean, "enabled", GenerateOptions{}))
	})

	t.Run("enum picks a member", func(t *testing.T) {
		node := &schema.Node{Kind: schema.KindString, Enum: []value.Value{value.String("a"), value.String("b"), value.String("c")}}
		assert.GreaterOrEqual(t, node.EnumIndex(Generate(node, "status", GenerateOptions{Random: true})), 0)
	})

	t.Run("dates parse", func(t *testing.T) {
		v := Generate(&schema.Node{Kind: schema.KindString, Format: schema.FormatDateTime}, "at", GenerateOptions{Random: true})
		s, ok := v.(value.String)
		require.True(t, ok)
		_, err := time.Parse(time.RFC3339Nano, string(s))
		assert.NoError(t, err)
	})

	t.Run("examples ignored", func(t *testing.T) {
		node := &schema.Node{Kind: schema.KindString, Example: value.String("Example")}
		assert.NotEqual(t, value.String("Example"), Generate(node, "name", GenerateOptions{Random: true}))
	})
}

func TestAccessor(t *testing.T) {
	root := NewAccessor(widgetResponse())

	t.Run("lookup builds the path", func(t *testing.T) {
		acc, err := root.Lookup("data.attributes.name")
		require.NoError(t, err)
		assert.Equal(t, "data.attributes.name", acc.Path())
		v, err := acc.Value()
		require.NoError(t, err)
		assert.Equal(t, value.String("Example"), v)
	})

	t.Run("snake case fallback", func(t *testing.T) {
		acc, err := root.Lookup("data.attributes.createdAt")
		require.NoError(t, err)
		assert.Equal(t, "data.attributes.created_at", acc.Path())
		assert.Equal(t, schema.FormatDateTime, acc.Node().Format)
	})

	t.Run("missing property", func(t *testing.T) {
		_, err := root.Lookup("data.bogus")
		var valErr *oaserrors.ValueError
		require.True(t, errors.As(err, &valErr))
		assert.Equal(t, "data.bogus", valErr.Path)
	})

	t.Run("index needs an array", func(t *testing.T) {
		_, err := root.Lookup("data[0]")
		assert.True(t, errors.Is(err, oaserrors.ErrType))
	})

	t.Run("index into array", func(t *testing.T) {
		list := object(prop("data", &schema.Node{Kind: schema.KindArray, Items: object(prop("id", str()))}))
		acc, err := NewAccessor(list).Lookup("data[0].id")
		require.NoError(t, err)
		assert.Equal(t, "data[0].id", acc.Path())
	})

	t.Run("oneOf searches object alternatives", func(t *testing.T) {
		union := &schema.Node{Kind: schema.KindOneOf, Alternatives: []*schema.Node{
			str(),
			object(prop("query", str())),
			object(prop("limit", &schema.Node{Kind: schema.KindInteger})),
		}}
		acc, err := NewAccessor(object(prop("definition", union))).Lookup("definition.limit")
		require.NoError(t, err)
		assert.Equal(t, schema.KindInteger, acc.Node().Kind)
	})

	t.Run("map values", func(t *testing.T) {
		tags := &schema.Node{Kind: schema.KindObject, AdditionalProperties: str()}
		acc, err := NewAccessor(tags).Field("env")
		require.NoError(t, err)
		assert.Equal(t, "env", acc.Path())
	})
}

func TestSessionRecordsGivenValues(t *testing.T) {
	s := NewSession()
	widget, err := s.Given(widgetStep, "widget", widgetResponse(), FromSource("data"))
	require.NoError(t, err)

	id, err := widget.Field("id")
	require.NoError(t, err)
	v, err := id.Value()
	require.NoError(t, err)
	assert.Equal(t, value.String("string"), v)

	again, err := id.Value()
	require.NoError(t, err)
	assert.Equal(t, v, again)

	expr, ok := s.Lookup(v)
	require.True(t, ok)
	assert.Equal(t, "WidgetID", expr)

	count, err := widget.Lookup("attributes.count")
	require.NoError(t, err)
	n, err := count.Value()
	require.NoError(t, err)
	assert.Equal(t, value.Int(1), n)

	assert.Equal(t, map[string]string{
		"WIDGET_ID":               "data.id",
		"WIDGET_ATTRIBUTES_COUNT": "data.attributes.count",
	}, s.JSONPaths("widget"))

	decls := s.Declarations(widgetStep)
	assert.Contains(t, decls, "WIDGET_ID")
	assert.Contains(t, decls, "WIDGET_ATTRIBUTES_COUNT")

	// Only looked-up values become variables.
	vars := s.Variables()
	require.Len(t, vars, 1)
	assert.Equal(t, Variable{
		Name:   "WidgetID",
		Key:    "WIDGET_ID",
		Step:   widgetStep,
		Given:  "widget",
		Kind:   "string",
		Schema: id.Node(),
	}, vars[0])

	expr, ok = s.Lookup(value.Float(1))
	require.True(t, ok)
	assert.Equal(t, "WidgetAttributesCount", expr)
	vars = s.Variables()
	require.Len(t, vars, 2)
	assert.Equal(t, "int64", vars[1].Kind)
}

func TestSessionEnumDefaultAndBooleans(t *testing.T) {
	s := NewSession()
	widget, err := s.Given(widgetStep, "widget", widgetResponse(), FromSource("data"))
	require.NoError(t, err)

	typ, err := widget.Field("type")
	require.NoError(t, err)
	v, err := typ.Value()
	require.NoError(t, err)
	assert.Equal(t, value.String("widgets"), v)
	_, ok := s.Lookup(v)
	assert.False(t, ok)

	enabled, err := widget.Lookup("attributes.enabled")
	require.NoError(t, err)
	b, err := enabled.Value()
	require.NoError(t, err)
	assert.Equal(t, value.Bool(true), b)
	_, ok = s.Lookup(b)
	assert.False(t, ok)
}

func TestSessionCollisionRegenerates(t *testing.T) {
	s := NewSession()
	widget, err := s.Given(widgetStep, "widget", widgetResponse(), FromSource("data"))
	require.NoError(t, err)
	gadget, err := s.Given(`there is a valid "gadget" in the system`, "gadget", widgetResponse(), FromSource("data"))
	require.NoError(t, err)

	wid, err := widget.Field("id")
	require.NoError(t, err)
	first, err := wid.Value()
	require.NoError(t, err)

	gid, err := gadget.Field("id")
	require.NoError(t, err)
	second, err := gid.Value()
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	expr, ok := s.Lookup(second)
	require.True(t, ok)
	assert.Equal(t, "GadgetID", expr)
	expr, ok = s.Lookup(first)
	require.True(t, ok)
	assert.Equal(t, "WidgetID", expr)
}

func TestSessionConflictingJSONPath(t *testing.T) {
	s := NewSession()
	node := object(prop("a", object(prop("b", str()))), prop("a_b", str()))
	acc, err := s.Given("step", "thing", node)
	require.NoError(t, err)

	flat, err := acc.Field("a_b")
	require.NoError(t, err)
	_, err = flat.Value()
	require.NoError(t, err)

	nested, err := acc.Lookup("a.b")
	require.NoError(t, err)
	_, err = nested.Value()
	assert.True(t, errors.Is(err, oaserrors.ErrValue))
}

func TestSessionRegisterExpression(t *testing.T) {
	s := NewSession()
	s.RegisterExpression(value.Int(1636629071), "time.Now().Unix()")
	expr, ok := s.Lookup(value.Int(1636629071))
	require.True(t, ok)
	assert.Equal(t, "time.Now().Unix()", expr)
	assert.Empty(t, s.Variables())

	_, ok = s.Lookup(value.Sequence{})
	assert.False(t, ok)
}

func TestSessionGivenErrors(t *testing.T) {
	s := NewSession()
	_, err := s.Given("step", "", widgetResponse())
	assert.True(t, errors.Is(err, oaserrors.ErrConfig))

	_, err = s.Given("step", "widget", widgetResponse(), FromSource("missing"))
	assert.True(t, errors.Is(err, oaserrors.ErrValue))
}

func TestVariableName(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"WIDGET_DATA_ID", "WidgetDataID"},
		{"DASHBOARD_URL", "DashboardURL"},
		{"WIDGET", "Widget"},
		{"WIDGET_DATA_0_ID", "WidgetData0ID"},
		{"", "Var"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, VariableName(tt.key))
		})
	}
}
