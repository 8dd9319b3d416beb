package schema

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/erraggy/oasfixture/internal/httputil"
	"github.com/erraggy/oasfixture/internal/naming"
	"github.com/erraggy/oasfixture/internal/options"
	"github.com/erraggy/oasfixture/logging"
	"github.com/erraggy/oasfixture/oaserrors"
	"github.com/erraggy/oasfixture/value"
)

const componentSchemaPrefix = "#/components/schemas/"

// Extension keys read by the loader.
const (
	ExtEnumVarnames = "x-enum-varnames"
	ExtAliasAsModel = "x-generate-alias-as-model"
)

var methodOrder = []string{"GET", "PUT", "POST", "DELETE", "OPTIONS", "HEAD", "PATCH", "TRACE"}

// LoadOption is a function that configures a load operation.
type LoadOption func(*loadConfig) error

type loadConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	reader   io.Reader
	bytes    []byte

	externalRefs bool
	logger       logging.Logger
}

// LoadWithOptions loads and dereferences an OpenAPI 3 document and converts
// it into an immutable Node graph.
//
// Example:
//
//	doc, err := schema.LoadWithOptions(
//	    schema.WithFilePath("openapi.yaml"),
//	    schema.WithExternalRefs(true),
//	)
func LoadWithOptions(opts ...LoadOption) (*Document, error) {
	cfg := &loadConfig{logger: logging.NopLogger{}}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	if err := options.ValidateSingleInputSource("schema",
		options.Source{Name: "WithFilePath", Set: cfg.filePath != nil},
		options.Source{Name: "WithReader", Set: cfg.reader != nil},
		options.Source{Name: "WithBytes", Set: cfg.bytes != nil},
	); err != nil {
		return nil, err
	}

	loader := openapi3.NewLoader()
	loader.IsExternalRefsAllowed = cfg.externalRefs

	source := "<bytes>"
	var (
		raw  *openapi3.T
		data []byte
		err  error
	)
	switch {
	case cfg.filePath != nil:
		source = *cfg.filePath
		raw, err = loader.LoadFromFile(source)
		if err == nil {
			var readErr error
			if data, readErr = os.ReadFile(source); readErr != nil {
				cfg.logger.Debug("property order unavailable", "source", source, "error", readErr)
			}
		}
	case cfg.reader != nil:
		data, err = io.ReadAll(cfg.reader)
		if err == nil {
			raw, err = loader.LoadFromData(data)
		}
	default:
		data = cfg.bytes
		raw, err = loader.LoadFromData(data)
	}
	if err != nil {
		return nil, &oaserrors.ParseError{Path: source, Message: "failed to load document", Cause: err}
	}

	doc, err := convertDocument(raw, readPropertyOrder(data, raw))
	if err != nil {
		var pe *oaserrors.ParseError
		if errors.As(err, &pe) && pe.Path == "" {
			pe.Path = source
		}
		return nil, err
	}
	cfg.logger.Debug("loaded document",
		"source", source,
		"operations", len(doc.Operations),
		"schemas", len(doc.Schemas))
	return doc, nil
}

// Load loads the document at path, allowing external references.
func Load(path string) (*Document, error) {
	return LoadWithOptions(WithFilePath(path), WithExternalRefs(true))
}

// LoadData loads a document from JSON or YAML bytes.
func LoadData(data []byte) (*Document, error) {
	return LoadWithOptions(WithBytes(data))
}

// WithFilePath specifies a file path as the input source.
func WithFilePath(path string) LoadOption {
	return func(cfg *loadConfig) error {
		cfg.filePath = &path
		return nil
	}
}

// WithReader specifies an io.Reader as the input source.
func WithReader(r io.Reader) LoadOption {
	return func(cfg *loadConfig) error {
		if r == nil {
			return &oaserrors.ConfigError{Option: "WithReader", Message: "reader cannot be nil"}
		}
		cfg.reader = r
		return nil
	}
}

// WithBytes specifies a byte slice as the input source.
func WithBytes(data []byte) LoadOption {
	return func(cfg *loadConfig) error {
		if data == nil {
			return &oaserrors.ConfigError{Option: "WithBytes", Message: "bytes cannot be nil"}
		}
		cfg.bytes = data
		return nil
	}
}

// WithExternalRefs allows $ref to point outside the document.
// Default: false
func WithExternalRefs(enabled bool) LoadOption {
	return func(cfg *loadConfig) error {
		cfg.externalRefs = enabled
		return nil
	}
}

// WithLogger sets the logger for load diagnostics.
func WithLogger(l logging.Logger) LoadOption {
	return func(cfg *loadConfig) error {
		cfg.logger = logging.OrNop(l)
		return nil
	}
}

type converter struct {
	memo  map[*openapi3.Schema]*Node
	names map[*openapi3.Schema]string
	order propertyOrder
}

func convertDocument(raw *openapi3.T, order propertyOrder) (*Document, error) {
	c := &converter{
		memo:  make(map[*openapi3.Schema]*Node),
		names: make(map[*openapi3.Schema]string),
		order: order,
	}

	schemas := make(map[string]*Node)
	var componentNames []string
	if raw.Components != nil {
		for name, ref := range raw.Components.Schemas {
			if ref != nil && ref.Value != nil {
				c.names[ref.Value] = name
				componentNames = append(componentNames, name)
			}
		}
	}
	sort.Strings(componentNames)
	for _, name := range componentNames {
		n, err := c.ref(raw.Components.Schemas[name], "components.schemas."+name)
		if err != nil {
			return nil, err
		}
		schemas[name] = n
	}

	ops, err := c.operations(raw)
	if err != nil {
		return nil, err
	}

	var title, version string
	if raw.Info != nil {
		title, version = raw.Info.Title, raw.Info.Version
	}
	return NewDocument(title, version, ops, schemas), nil
}

func (c *converter) operations(raw *openapi3.T) ([]*Operation, error) {
	if raw.Paths == nil {
		return nil, nil
	}
	items := raw.Paths.Map()
	paths := make([]string, 0, len(items))
	for p := range items {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	var ops []*Operation
	for _, p := range paths {
		item := items[p]
		byMethod := item.Operations()
		for _, method := range methodOrder {
			rawOp, ok := byMethod[method]
			if !ok || rawOp == nil {
				continue
			}
			op, err := c.operation(p, method, item, rawOp)
			if err != nil {
				return nil, err
			}
			ops = append(ops, op)
		}
	}
	return ops, nil
}

func (c *converter) operation(path, method string, item *openapi3.PathItem, raw *openapi3.Operation) (*Operation, error) {
	id := raw.OperationID
	if id == "" {
		id = naming.ToGoName(strings.ToLower(method) + " " + path)
	}
	op := &Operation{
		ID:      id,
		Method:  method,
		Path:    path,
		Summary: raw.Summary,
		Tags:    raw.Tags,
	}
	at := "paths." + path + "." + strings.ToLower(method)

	// Operation parameters override path-level ones with the same name and location.
	merged := make([]*openapi3.Parameter, 0, len(item.Parameters)+len(raw.Parameters))
	for _, ref := range item.Parameters {
		if ref != nil && ref.Value != nil {
			merged = append(merged, ref.Value)
		}
	}
	for _, ref := range raw.Parameters {
		if ref == nil || ref.Value == nil {
			continue
		}
		replaced := false
		for i, existing := range merged {
			if existing.Name == ref.Value.Name && existing.In == ref.Value.In {
				merged[i] = ref.Value
				replaced = true
			}
		}
		if !replaced {
			merged = append(merged, ref.Value)
		}
	}
	for _, p := range merged {
		schemaRef := p.Schema
		if schemaRef == nil {
			if mt := pickMediaType(p.Content); mt != nil {
				schemaRef = mt.Schema
			}
		}
		n, err := c.ref(schemaRef, at+".parameters."+p.Name)
		if err != nil {
			return nil, err
		}
		op.Parameters = append(op.Parameters, &Parameter{
			Name:        p.Name,
			In:          p.In,
			Required:    p.Required || p.In == openapi3.ParameterInPath,
			Description: p.Description,
			Schema:      n,
		})
	}

	if raw.RequestBody != nil && raw.RequestBody.Value != nil {
		rb := raw.RequestBody.Value
		contentType, mt := pickContent(rb.Content)
		if mt != nil {
			n, err := c.ref(mt.Schema, at+".requestBody")
			if err != nil {
				return nil, err
			}
			op.RequestBody = &RequestBody{Required: rb.Required, ContentType: contentType, Schema: n}
		}
	}

	if raw.Responses != nil {
		byStatus := raw.Responses.Map()
		statuses := make([]string, 0, len(byStatus))
		for s := range byStatus {
			statuses = append(statuses, s)
		}
		sort.Strings(statuses)
		for _, status := range statuses {
			ref := byStatus[status]
			if ref == nil || ref.Value == nil {
				continue
			}
			resp := &Response{Status: status}
			if ref.Value.Description != nil {
				resp.Description = *ref.Value.Description
			}
			if _, mt := pickContent(ref.Value.Content); mt != nil && mt.Schema != nil {
				n, err := c.ref(mt.Schema, at+".responses."+status)
				if err != nil {
					return nil, err
				}
				resp.Schema = n
			}
			op.Responses = append(op.Responses, resp)
		}
	}
	return op, nil
}

// pickContent prefers JSON, then multipart form data, then the first content type by name.
func pickContent(content openapi3.Content) (string, *openapi3.MediaType) {
	if len(content) == 0 {
		return "", nil
	}
	if mt, ok := content[ContentTypeJSON]; ok {
		return ContentTypeJSON, mt
	}
	keys := make([]string, 0, len(content))
	for k := range content {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if httputil.IsJSONMediaType(k) {
			return k, content[k]
		}
	}
	if mt, ok := content[ContentTypeMultipart]; ok {
		return ContentTypeMultipart, mt
	}
	return keys[0], content[keys[0]]
}

func pickMediaType(content openapi3.Content) *openapi3.MediaType {
	_, mt := pickContent(content)
	return mt
}

func (c *converter) ref(ref *openapi3.SchemaRef, path string) (*Node, error) {
	if ref == nil || ref.Value == nil {
		return &Node{Kind: KindAny}, nil
	}
	s := ref.Value
	if n, ok := c.memo[s]; ok {
		return n, nil
	}

	// allOf with a single member and nothing else is an alias of that member.
	if len(s.AllOf) == 1 && isBare(s) {
		target, err := c.ref(s.AllOf[0], path+".allOf[0]")
		if err != nil {
			return nil, err
		}
		if s.Nullable && !target.Nullable {
			target = target.WithNullable(true)
		}
		c.memo[s] = target
		return target, nil
	}

	n := &Node{Name: c.names[s]}
	if n.Name == "" && strings.HasPrefix(ref.Ref, componentSchemaPrefix) {
		n.Name = strings.TrimPrefix(ref.Ref, componentSchemaPrefix)
	}
	c.memo[s] = n
	if err := c.fill(n, s, path); err != nil {
		return nil, err
	}
	return n, nil
}

func isBare(s *openapi3.Schema) bool {
	return s.Type == nil && len(s.Properties) == 0 && s.Items == nil &&
		len(s.OneOf) == 0 && len(s.AnyOf) == 0 && len(s.Enum) == 0 &&
		s.AdditionalProperties.Has == nil && s.AdditionalProperties.Schema == nil
}

func (c *converter) fill(n *Node, s *openapi3.Schema, path string) error {
	n.Format = s.Format
	n.Description = s.Description
	n.Nullable = s.Nullable
	n.AliasAsModel = extBool(s.Extensions, ExtAliasAsModel)
	n.Example = normalize(s.Example)
	n.Default = normalize(s.Default)

	var kinds []string
	for _, t := range s.Type.Slice() {
		if t == "null" {
			n.Nullable = true
			continue
		}
		kinds = append(kinds, t)
	}

	if err := c.fillEnum(n, s, path); err != nil {
		return err
	}

	switch {
	case len(s.OneOf) > 0 || len(s.AnyOf) > 0:
		n.Kind = KindOneOf
	case len(kinds) == 1:
		n.Kind = ParseKind(kinds[0])
		if n.Kind == KindInvalid {
			n.RawType = kinds[0]
		}
	case len(kinds) > 1:
		n.Kind = KindInvalid
		n.RawType = strings.Join(kinds, "|")
	case s.Items != nil:
		n.Kind = KindArray
	case len(s.Properties) > 0 || len(s.AllOf) > 0 ||
		s.AdditionalProperties.Has != nil || s.AdditionalProperties.Schema != nil:
		n.Kind = KindObject
	case len(n.Enum) > 0:
		n.Kind = kindOfValue(n.Enum[0])
	default:
		n.Kind = KindAny
	}

	switch n.Kind {
	case KindOneOf:
		alts := s.OneOf
		if len(alts) == 0 {
			alts = s.AnyOf
		}
		for i, a := range alts {
			child, err := c.ref(a, fmt.Sprintf("%s.oneOf[%d]", path, i))
			if err != nil {
				return err
			}
			n.Alternatives = append(n.Alternatives, child)
		}
	case KindArray:
		items, err := c.ref(s.Items, path+".items")
		if err != nil {
			return err
		}
		n.Items = items
	case KindObject:
		return c.fillObject(n, s, path)
	}
	return nil
}

func (c *converter) fillObject(n *Node, s *openapi3.Schema, path string) error {
	for _, name := range c.order.names(s) {
		child, err := c.ref(s.Properties[name], path+".properties."+name)
		if err != nil {
			return err
		}
		n.Properties = append(n.Properties, Property{Name: name, Schema: child})
	}
	n.Required = append(n.Required, s.Required...)

	ap := s.AdditionalProperties
	switch {
	case ap.Schema != nil:
		child, err := c.ref(ap.Schema, path+".additionalProperties")
		if err != nil {
			return err
		}
		n.AdditionalProperties = child
	case ap.Has != nil && *ap.Has:
		n.AdditionalProperties = &Node{Kind: KindAny}
	}

	for i, sub := range s.AllOf {
		part, err := c.ref(sub, fmt.Sprintf("%s.allOf[%d]", path, i))
		if err != nil {
			return err
		}
		for _, p := range part.Properties {
			if n.Property(p.Name) == nil {
				n.Properties = append(n.Properties, p)
			}
		}
		for _, r := range part.Required {
			if !n.IsRequired(r) {
				n.Required = append(n.Required, r)
			}
		}
		if n.AdditionalProperties == nil {
			n.AdditionalProperties = part.AdditionalProperties
		}
	}
	return nil
}

func (c *converter) fillEnum(n *Node, s *openapi3.Schema, path string) error {
	if len(s.Enum) == 0 {
		return nil
	}
	for _, e := range s.Enum {
		n.Enum = append(n.Enum, normalize(e))
	}
	if names, ok := extStrings(s.Extensions, ExtEnumVarnames); ok {
		if len(names) != len(n.Enum) {
			return &oaserrors.ParseError{
				Message: fmt.Sprintf("%s: %s has %d names for %d enum values", path, ExtEnumVarnames, len(names), len(n.Enum)),
			}
		}
		n.EnumNames = names
		return nil
	}
	for _, e := range n.Enum {
		n.EnumNames = append(n.EnumNames, deriveEnumName(e))
	}
	return nil
}

// deriveEnumName builds an UPPER_SNAKE display name from a raw enum value.
func deriveEnumName(v value.Value) string {
	var name string
	switch v := v.(type) {
	case value.String:
		name = naming.ToUpperSnakeCase(string(v))
	case value.Int:
		name = strconv.FormatInt(int64(v), 10)
	case value.Float:
		name = strings.ReplaceAll(strconv.FormatFloat(float64(v), 'f', -1, 64), ".", "_")
	case value.Bool:
		name = strings.ToUpper(strconv.FormatBool(bool(v)))
	case value.Null:
		name = "NULL"
	}
	name = strings.ReplaceAll(name, "-", "MINUS_")
	if name == "" {
		return "EMPTY"
	}
	return name
}

func kindOfValue(v value.Value) Kind {
	switch v.(type) {
	case value.String:
		return KindString
	case value.Int:
		return KindInteger
	case value.Float:
		return KindNumber
	case value.Bool:
		return KindBoolean
	default:
		return KindAny
	}
}

// normalize converts loader output to a Value. Integral floats become Int
// because the document decoder does not keep the distinction.
func normalize(x any) value.Value {
	if x == nil {
		return nil
	}
	v, err := value.FromAny(x)
	if err != nil {
		return value.String(fmt.Sprint(x))
	}
	return integralToInt(v)
}

func integralToInt(v value.Value) value.Value {
	switch v := v.(type) {
	case value.Float:
		f := float64(v)
		if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
			return value.Int(int64(f))
		}
		return v
	case value.Sequence:
		out := make(value.Sequence, len(v))
		for i, item := range v {
			out[i] = integralToInt(item)
		}
		return out
	case *value.Mapping:
		out := value.NewMapping()
		for _, e := range v.Entries() {
			out.Set(e.Key, integralToInt(e.Value))
		}
		return out
	default:
		return v
	}
}

func extBool(ext map[string]any, key string) bool {
	b, _ := ext[key].(bool)
	return b
}

func extStrings(ext map[string]any, key string) ([]string, bool) {
	switch raw := ext[key].(type) {
	case []string:
		return raw, true
	case []any:
		out := make([]string, len(raw))
		for i, x := range raw {
			out[i] = fmt.Sprint(x)
		}
		return out, true
	default:
		return nil, false
	}
}
