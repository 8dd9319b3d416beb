package scenario

import (
	"errors"
	"hash/adler32"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasfixture/fixture"
	"github.com/erraggy/oasfixture/oaserrors"
	"github.com/erraggy/oasfixture/schema"
	"github.com/erraggy/oasfixture/value"
)

const testSpecYAML = `
openapi: 3.0.3
info:
  title: Widget API
  version: 1.0.0
paths:
  /api/v1/widgets:
    post:
      operationId: CreateWidget
      summary: Create a widget
      tags: [Widgets]
      requestBody:
        required: true
        content:
          application/json:
            schema:
              $ref: '#/components/schemas/WidgetCreateRequest'
      responses:
        "200":
          description: OK
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/WidgetResponse'
        "400":
          description: Bad Request
  /api/v1/widgets/{widget_id}:
    delete:
      operationId: DeleteWidget
      summary: Delete a widget
      tags: [Widgets]
      parameters:
        - name: widget_id
          in: path
          required: true
          schema:
            type: string
      responses:
        "204":
          description: No Content
  /api/v1/widgets/{widget_id}/history:
    get:
      operationId: ListWidgetHistory
      summary: List widget history
      tags: [Widget Audit]
      parameters:
        - name: widget_id
          in: path
          required: true
          schema:
            type: string
        - name: from
          in: query
          required: true
          schema:
            type: integer
            format: int64
        - name: page_size
          in: query
          schema:
            type: integer
            format: int64
      responses:
        "200":
          description: OK
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/WidgetResponse'
components:
  schemas:
    WidgetCreateRequest:
      type: object
      required: [name]
      properties:
        name:
          type: string
        parent_id:
          type: string
        expires_at:
          type: string
          format: date-time
    WidgetResponse:
      type: object
      properties:
        data:
          $ref: '#/components/schemas/Widget'
    Widget:
      type: object
      properties:
        id:
          type: string
        attributes:
          type: object
          properties:
            name:
              type: string
            count:
              type: integer
              format: int64
`

const widgetGiven = `
given:
  - step: there is a valid "widget" in the system
    key: widget
    operation: CreateWidget
    source: data
`

func loadDoc(t *testing.T) *schema.Document {
	t.Helper()
	doc, err := schema.LoadData([]byte(testSpecYAML))
	require.NoError(t, err)
	return doc
}

func parse(t *testing.T, data string) *Scenario {
	t.Helper()
	sc, err := Parse([]byte(data))
	require.NoError(t, err)
	return sc
}

func TestRunCreateWidget(t *testing.T) {
	sc := parse(t, `
name: Create a widget returns "OK" response
operation: CreateWidget
`+widgetGiven+`
body: |
  {
    "name": "{{ unique }}",
    "parent_id": "{{ widget.id }}",
    "expires_at": "{{ timeISO('now + 1h') }}"
  }
`)
	res, err := Run(loadDoc(t), sc)
	require.NoError(t, err)

	assert.Equal(t, "CreateWidget.go", res.FileName)
	assert.Equal(t, "widgets", res.Group)
	assert.False(t, res.Skipped)
	assert.Empty(t, res.Issues)

	src := string(res.Source)
	for _, want := range []string{
		`// Create a widget returns "OK" response`,
		`package main`,
		`"github.com/DataDog/datadog-api-client-go/v2/api/datadog"`,
		`"github.com/DataDog/datadog-api-client-go/v2/api/datadogV1"`,
		`// there is a valid "widget" in the system`,
		`WidgetID := os.Getenv("WIDGET_ID")`,
		`body := datadogV1.WidgetCreateRequest{`,
		`"Example-Create_a_widget_returns_OK_response"`,
		`datadog.PtrString(WidgetID)`,
		`datadog.PtrTime(time.Now().Add(time.Hour*1))`,
		`api := datadogV1.NewWidgetsApi(apiClient)`,
		`resp, r, err := api.CreateWidget(ctx, body)`,
		"Error when calling `WidgetsApi.CreateWidget`",
		`responseContent, _ := json.MarshalIndent(resp, "", "  ")`,
	} {
		assert.Contains(t, src, want)
	}
	assert.NotContains(t, src, "SetUnstableOperationEnabled")

	require.Len(t, res.Variables, 1)
	assert.Equal(t, "WIDGET_ID", res.Variables[0].Key)
	assert.Equal(t, map[string]map[string]string{
		"widget": {"WIDGET_ID": "data.id"},
	}, res.JSONPaths)
}

func TestRunParameters(t *testing.T) {
	name := "Get widget history with a range"
	sc := parse(t, `
name: `+name+`
operation: ListWidgetHistory
enable: [ListWidgetHistory]
`+widgetGiven+`
parameters:
  - name: widget_id
    from: widget.id
  - name: from
    value: '{{ timestamp("now - 1d") }}'
  - name: page_size
    from: REPLACE.ME
`)
	res, err := Run(loadDoc(t), sc, WithAPIVersion("v2"))
	require.NoError(t, err)

	assert.Equal(t, "ListWidgetHistory_"+strconv.FormatUint(uint64(adler32.Checksum([]byte(name))), 10)+".go", res.FileName)
	assert.Equal(t, "widget-audit", res.Group)

	src := string(res.Source)
	assert.Contains(t, src, `"github.com/DataDog/datadog-api-client-go/v2/api/datadogV2"`)
	assert.Contains(t, src, `configuration.SetUnstableOperationEnabled("v2.ListWidgetHistory", true)`)
	assert.Contains(t, src, `api := datadogV2.NewWidgetAuditApi(apiClient)`)
	assert.Contains(t, src,
		`resp, r, err := api.ListWidgetHistory(ctx, WidgetID, time.Now().AddDate(0, 0, -1).Unix(), *datadogV2.NewListWidgetHistoryOptionalParameters().WithPageSize(9223372036854775807))`)
}

func TestRunWithoutResponse(t *testing.T) {
	sc := parse(t, `
name: Delete a widget returns "No Content" response
operation: DeleteWidget
status: 204
`+widgetGiven+`
parameters:
  - name: widget_id
    from: widget.id
`)
	res, err := Run(loadDoc(t), sc)
	require.NoError(t, err)

	src := string(res.Source)
	assert.Equal(t, "DeleteWidget.go", res.FileName)
	assert.Contains(t, src, `r, err := api.DeleteWidget(ctx, WidgetID)`)
	assert.NotContains(t, src, "resp, r, err")
	assert.NotContains(t, src, "responseContent")
	assert.NotContains(t, src, `"encoding/json"`)
}

func TestRunSkipsErrorStatus(t *testing.T) {
	sc := parse(t, `
name: Create a widget returns "Bad Request" response
operation: CreateWidget
status: 400
body: '{"name": 5}'
`)
	res, err := Run(loadDoc(t), sc)
	require.NoError(t, err)
	assert.True(t, res.Skipped)
	assert.Nil(t, res.Source)
	assert.Equal(t, "CreateWidget.go", res.FileName)
	require.Len(t, res.Issues, 1)
	assert.Equal(t, "do not generate example for v1:CreateWidget:400", res.Issues[0].Message)
}

func TestRunErrors(t *testing.T) {
	doc := loadDoc(t)
	tests := []struct {
		name     string
		scenario string
		opts     []Option
		target   error
	}{
		{
			name:     "unknown operation",
			scenario: "name: x\noperation: Nope\n",
			target:   oaserrors.ErrValue,
		},
		{
			name: "unknown given operation",
			scenario: `
name: x
operation: DeleteWidget
given:
  - step: s
    key: widget
    operation: Nope
`,
			target: oaserrors.ErrValue,
		},
		{
			name:     "body on an operation without one",
			scenario: "name: x\noperation: DeleteWidget\nbody: '{}'\n",
			target:   oaserrors.ErrBinding,
		},
		{
			name: "unknown fixture",
			scenario: `
name: x
operation: DeleteWidget
parameters:
  - name: widget_id
    from: gadget.id
`,
			target: oaserrors.ErrValue,
		},
		{
			name:     "missing required parameter",
			scenario: "name: x\noperation: DeleteWidget\n",
			target:   oaserrors.ErrBinding,
		},
		{
			name:     "body is not JSON",
			scenario: "name: x\noperation: CreateWidget\nbody: '{name'\n",
			target:   oaserrors.ErrParse,
		},
		{
			name:     "empty client package",
			scenario: "name: x\noperation: DeleteWidget\n",
			opts:     []Option{WithClientPackage("")},
			target:   oaserrors.ErrConfig,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Run(doc, parse(t, tt.scenario), tt.opts...)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.target), "got %v", err)
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"missing name", "operation: X\n"},
		{"missing operation", "name: x\n"},
		{"given without key", "name: x\noperation: X\ngiven:\n  - step: s\n    operation: Y\n"},
		{"parameter with both sources", "name: x\noperation: X\nparameters:\n  - name: p\n    from: a.b\n    value: '1'\n"},
		{"parameter with no source", "name: x\noperation: X\nparameters:\n  - name: p\n"},
		{"not yaml", "name: [x\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			assert.True(t, errors.Is(err, oaserrors.ErrParse), "got %v", err)
		})
	}

	sc := parse(t, "name: x\noperation: X\n")
	assert.Equal(t, DefaultStatus, sc.status())
}

func TestParseFileMissing(t *testing.T) {
	_, err := ParseFile("does-not-exist.yaml")
	var pe *oaserrors.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "does-not-exist.yaml", pe.Path)
}

func TestPlaceholderValue(t *testing.T) {
	tests := []struct {
		name  string
		param *schema.Parameter
		want  value.Value
	}{
		{"example", &schema.Parameter{Name: "q", Schema: &schema.Node{Kind: schema.KindString, Example: value.String("env:prod")}}, value.String("env:prod")},
		{"default", &schema.Parameter{Name: "n", Schema: &schema.Node{Kind: schema.KindInteger, Default: value.Int(50)}}, value.Int(50)},
		{"date-time", &schema.Parameter{Name: "start", Schema: &schema.Node{Kind: schema.KindString, Format: schema.FormatDateTime}}, value.String("2021-11-11T11:11:11.111+00:00")},
		{"string uses the name", &schema.Parameter{Name: "widget_id", Schema: &schema.Node{Kind: schema.KindString}}, value.String("widget_id")},
		{"int32", &schema.Parameter{Name: "n", Schema: &schema.Node{Kind: schema.KindInteger, Format: schema.FormatInt32}}, value.Int(1)},
		{"int64", &schema.Parameter{Name: "n", Schema: &schema.Node{Kind: schema.KindInteger, Format: schema.FormatInt64}}, value.Int(9223372036854775807)},
		{"array", &schema.Parameter{Name: "ids", Schema: &schema.Node{Kind: schema.KindArray, Items: &schema.Node{Kind: schema.KindString}}}, value.Sequence{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := placeholderValue(tt.param)
			require.NoError(t, err)
			assert.True(t, value.Equal(tt.want, got), "got %s", value.Format(got))
		})
	}

	_, err := placeholderValue(&schema.Parameter{Name: "obj", Schema: &schema.Node{Kind: schema.KindObject}})
	assert.True(t, errors.Is(err, oaserrors.ErrValue))
}

func TestExpander(t *testing.T) {
	newTestExpander := func() (*expander, *fixture.Session) {
		s := fixture.NewSession()
		return newExpander(`Create a widget returns "OK" response`, fixture.FrozenTime, s, nil), s
	}

	t.Run("unique names", func(t *testing.T) {
		e, _ := newTestExpander()
		v, err := e.expand(`["{{ unique }}", "{{unique_lower}}", "{{ unique_upper_alnum }}"]`, "body")
		require.NoError(t, err)
		assert.True(t, value.Equal(value.Sequence{
			value.String("Example-Create_a_widget_returns_OK_response"),
			value.String("example-create_a_widget_returns_ok_response"),
			value.String("EXAMPLECREATEAWIDGETRETURNSOKRESPONSE"),
		}, v), value.Format(v))
	})

	t.Run("relative time", func(t *testing.T) {
		tests := []struct {
			arg  string
			want int64
			expr string
		}{
			{"now", 1636629071, "time.Now().Unix()"},
			{"now + 10s", 1636629081, "time.Now().Add(time.Second*10).Unix()"},
			{"now - 5m", 1636628771, "time.Now().Add(time.Minute*-5).Unix()"},
			{"now+1h", 1636632671, "time.Now().Add(time.Hour*1).Unix()"},
			{"now + 1d", 1636715471, "time.Now().AddDate(0, 0, 1).Unix()"},
		}
		for _, tt := range tests {
			t.Run(tt.arg, func(t *testing.T) {
				e, s := newTestExpander()
				v, err := e.expand(`{{ timestamp("`+tt.arg+`") }}`, "value")
				require.NoError(t, err)
				assert.Equal(t, value.Int(tt.want), v)
				expr, ok := s.Lookup(v)
				require.True(t, ok)
				assert.Equal(t, tt.expr, expr)
			})
		}
	})

	t.Run("iso time", func(t *testing.T) {
		e, s := newTestExpander()
		v, err := e.expand(`"{{ timeISO("now + 1M") }}"`, "value")
		require.NoError(t, err)
		assert.Equal(t, value.String("2021-12-11T11:11:11+00:00"), v)
		expr, ok := s.Lookup(v)
		require.True(t, ok)
		assert.Equal(t, "time.Now().AddDate(0, 1, 0)", expr)
	})

	t.Run("custom clock", func(t *testing.T) {
		s := fixture.NewSession()
		e := newExpander("x", time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), s, nil)
		v, err := e.expand(`{{ timestamp("now") }}`, "value")
		require.NoError(t, err)
		assert.Equal(t, value.Int(1577836800), v)
	})

	t.Run("invalid relative time", func(t *testing.T) {
		e, _ := newTestExpander()
		_, err := e.expand(`{{ timestamp("tomorrow") }}`, "value")
		assert.True(t, errors.Is(err, oaserrors.ErrValue))
	})

	t.Run("strings are escaped", func(t *testing.T) {
		e, _ := newTestExpander()
		e.env["quoted"] = `say "hi"`
		v, err := e.expand(`"{{ quoted }}"`, "value")
		require.NoError(t, err)
		assert.Equal(t, value.String(`say "hi"`), v)
	})
}

func TestExamplePrefix(t *testing.T) {
	assert.Equal(t, "Example-Create_a_widget_returns_OK_response", examplePrefix(`Create a widget returns "OK" response`))
	assert.Len(t, examplePrefix(strings.Repeat("b", 150)), len("Example-")+maxPrefixLength)
}
