package literal

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasfixture/oaserrors"
	"github.com/erraggy/oasfixture/schema"
	"github.com/erraggy/oasfixture/value"
)

func objectNode(name string, props ...string) *schema.Node {
	n := &schema.Node{Kind: schema.KindObject, Name: name}
	for _, p := range props {
		n.Properties = append(n.Properties, schema.Property{Name: p, Schema: strNode})
	}
	return n
}

func TestRenderOneOfPrimitives(t *testing.T) {
	union := &schema.Node{
		Kind:         schema.KindOneOf,
		Name:         "StringOrInt",
		Alternatives: []*schema.Node{{Kind: schema.KindString}, {Kind: schema.KindInteger}},
	}

	tests := []struct {
		name     string
		v        value.Value
		required bool
		want     string
	}{
		{"integer input", value.Int(5), true, "datadogV1.Int32AsStringOrInt(datadog.PtrInt32(5))"},
		{"string input", value.String("5"), true, `datadogV1.StringAsStringOrInt(datadog.PtrString("5"))`},
		{"optional", value.Int(5), false, "datadog.Ptr(datadogV1.Int32AsStringOrInt(datadog.PtrInt32(5)))"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRenderer(t)
			assert.Equal(t, tt.want, render(t, r, tt.v, union, Required(tt.required)))
			assert.Empty(t, r.Issues(), "exactly one alternative should match")
		})
	}

	t.Run("no alternative matches", func(t *testing.T) {
		r := newTestRenderer(t)
		_, err := r.Render(value.Bool(true), union, WithPath("body.value"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, oaserrors.ErrValue))
		assert.True(t, errors.Is(err, oaserrors.ErrType), "last trial failure is the cause")
		assert.Contains(t, err.Error(), "no alternative of StringOrInt matched")
	})
}

func TestRenderOneOfAmbiguousFirstMatchWins(t *testing.T) {
	circle := objectNode("Circle", "name")
	disk := objectNode("Disk", "name")
	data := mustJSON(t, `{"name": "c"}`)

	tests := []struct {
		name         string
		alternatives []*schema.Node
		want         string
		context      string
	}{
		{
			name:         "declared order",
			alternatives: []*schema.Node{circle, disk},
			want:         "datadogV1.CircleAsShape(&datadogV1.Circle{\nName: datadog.PtrString(\"c\"),\n})",
			context:      "matched Circle, Disk; using Circle",
		},
		{
			name:         "permuted order",
			alternatives: []*schema.Node{disk, circle},
			want:         "datadogV1.DiskAsShape(&datadogV1.Disk{\nName: datadog.PtrString(\"c\"),\n})",
			context:      "matched Disk, Circle; using Disk",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			union := &schema.Node{Kind: schema.KindOneOf, Name: "Shape", Alternatives: tt.alternatives}
			r := newTestRenderer(t)
			assert.Equal(t, tt.want, render(t, r, data, union, Required(true)))
			require.Len(t, r.Issues(), 1)
			assert.Equal(t, "ambiguous match", r.Issues()[0].Message)
			assert.Equal(t, tt.context, r.Issues()[0].Context)
		})
	}

	t.Run("strict mode", func(t *testing.T) {
		union := &schema.Node{Kind: schema.KindOneOf, Name: "Shape", Alternatives: []*schema.Node{circle, disk}}
		r := newTestRenderer(t, WithStrictMode(true))
		_, err := r.Render(data, union)
		assert.True(t, errors.Is(err, oaserrors.ErrValue))
	})
}

func TestRenderOneOfObjects(t *testing.T) {
	circle := objectNode("Circle", "radius")
	square := objectNode("Square", "side")
	square.Required = []string{"side"}
	union := &schema.Node{Kind: schema.KindOneOf, Name: "Shape", Alternatives: []*schema.Node{circle, square}}

	r := newTestRenderer(t)
	assert.Equal(t,
		"datadogV1.SquareAsShape(&datadogV1.Square{\nSide: \"2\",\n})",
		render(t, r, mustJSON(t, `{"side": "2"}`), union, Required(true)))
	assert.Equal(t,
		"datadogV1.CircleAsShape(&datadogV1.Circle{\nRadius: datadog.PtrString(\"1\"),\n})",
		render(t, r, mustJSON(t, `{"radius": "1"}`), union, Required(true)))
	assert.Empty(t, r.Issues())

	t.Run("in a list", func(t *testing.T) {
		list := &schema.Node{Kind: schema.KindArray, Items: union}
		out := render(t, r, mustJSON(t, `[{"side": "2"}]`), list, Required(true))
		assert.Equal(t, "[]datadogV1.Shape{\ndatadogV1.SquareAsShape(&datadogV1.Square{\nSide: \"2\",\n}),\n}", out)
	})
}

func TestRenderOneOfNullable(t *testing.T) {
	circle := objectNode("Circle", "radius")
	circle.Nullable = true
	union := &schema.Node{Kind: schema.KindOneOf, Name: "Shape", Nullable: true, Alternatives: []*schema.Node{circle}}

	r := newTestRenderer(t)
	assert.Equal(t, "*datadogV1.NewNullableShape(nil)", render(t, r, value.Null{}, union))
	assert.Equal(t,
		"datadogV1.CircleAsShape(&datadogV1.Circle{\nRadius: datadog.PtrString(\"1\"),\n})",
		render(t, r, mustJSON(t, `{"radius": "1"}`), union),
		"nullable unions are not addressed and alternatives render as non-nullable")
	assert.True(t, circle.Nullable, "trial rendering must not mutate the shared alternative")

	_, err := r.Render(value.Null{}, union.WithNullable(false))
	assert.True(t, errors.Is(err, oaserrors.ErrValue))
}

func TestRenderOneOfUnnamedObjectAlternative(t *testing.T) {
	anonymous := objectNode("", "a")
	anonymous.Required = []string{"a"}
	square := objectNode("Square", "side")
	square.Required = []string{"side"}
	union := &schema.Node{Kind: schema.KindOneOf, Name: "Shape", Alternatives: []*schema.Node{anonymous, square}}

	t.Run("named alternative wins", func(t *testing.T) {
		r := newTestRenderer(t)
		assert.Equal(t,
			"datadogV1.SquareAsShape(&datadogV1.Square{\nSide: \"2\",\n})",
			render(t, r, mustJSON(t, `{"side": "2"}`), union, Required(true)))
		assert.Empty(t, r.Issues())
	})

	t.Run("only the unnamed alternative fits", func(t *testing.T) {
		r := newTestRenderer(t)
		_, err := r.Render(mustJSON(t, `{"a": "x"}`), union, Required(true))
		require.Error(t, err)
		assert.True(t, errors.Is(err, oaserrors.ErrValue))
		assert.Contains(t, err.Error(), "no alternative of Shape matched")
		assert.Empty(t, r.Issues())
	})

	t.Run("undeclared key", func(t *testing.T) {
		r := newTestRenderer(t)
		_, err := r.Render(mustJSON(t, `{"a": "x", "b": "y"}`), &schema.Node{
			Kind: schema.KindOneOf, Name: "Shape", Alternatives: []*schema.Node{anonymous},
		})
		require.Error(t, err)
		var ve *oaserrors.ValueError
		require.True(t, errors.As(errors.Unwrap(err), &ve))
		assert.Equal(t, "b", ve.Path)
	})
}

func TestRenderOneOfEnumAndArrayAlternatives(t *testing.T) {
	status := &schema.Node{Kind: schema.KindString, Name: "Status", Enum: []value.Value{value.String("ok")}, EnumNames: []string{"OK"}}
	tags := &schema.Node{Kind: schema.KindArray, Items: strNode}
	union := &schema.Node{Kind: schema.KindOneOf, Name: "StatusOrTags", Alternatives: []*schema.Node{status, tags}}

	r := newTestRenderer(t)
	assert.Equal(t, "datadogV1.StatusAsStatusOrTags(datadogV1.STATUS_OK.Ptr())",
		render(t, r, value.String("ok"), union, Required(true)))
	assert.Equal(t, `datadogV1.ArrayAsStatusOrTags(&[]string{"a"})`,
		render(t, r, mustJSON(t, `["a"]`), union, Required(true)))
	assert.Empty(t, r.Issues())
}
