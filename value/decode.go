package value

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasfixture/oaserrors"
)

// DecodeJSON decodes a single JSON document, keeping object key order and the
// distinction between integers and fractional numbers.
func DecodeJSON(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	d := &jsonDecoder{dec: dec}

	tok, err := dec.Token()
	if err != nil {
		return nil, &oaserrors.ParseError{Message: "invalid JSON value", Cause: err}
	}
	v, err := d.fromToken(tok)
	if err != nil {
		return nil, &oaserrors.ParseError{Message: "invalid JSON value", Cause: err}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, &oaserrors.ParseError{Message: "unexpected data after JSON value"}
	}
	return v, nil
}

type jsonDecoder struct {
	dec *json.Decoder
}

func (d *jsonDecoder) fromToken(tok json.Token) (Value, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return d.object()
		case '[':
			return d.array()
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", rune(t))
		}
	case string:
		return String(t), nil
	case bool:
		return Bool(t), nil
	case json.Number:
		return parseNumber(string(t))
	case float64:
		return Float(t), nil
	case nil:
		return Null{}, nil
	default:
		return nil, fmt.Errorf("unexpected token %v", tok)
	}
}

func (d *jsonDecoder) object() (Value, error) {
	m := NewMapping()
	for {
		tok, err := d.dec.Token()
		if err != nil {
			return nil, err
		}
		if delim, ok := tok.(json.Delim); ok && delim == '}' {
			return m, nil
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("object key must be a string, got %v", tok)
		}
		tok, err = d.dec.Token()
		if err != nil {
			return nil, err
		}
		v, err := d.fromToken(tok)
		if err != nil {
			return nil, err
		}
		m.Set(key, v)
	}
}

func (d *jsonDecoder) array() (Value, error) {
	seq := Sequence{}
	for {
		tok, err := d.dec.Token()
		if err != nil {
			return nil, err
		}
		if delim, ok := tok.(json.Delim); ok && delim == ']' {
			return seq, nil
		}
		v, err := d.fromToken(tok)
		if err != nil {
			return nil, err
		}
		seq = append(seq, v)
	}
}

func parseNumber(s string) (Value, error) {
	if !strings.ContainsAny(s, ".eE") {
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return Int(i), nil
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid number %q: %w", s, err)
	}
	return Float(f), nil
}

// DecodeYAML decodes a single YAML document, keeping mapping key order.
func DecodeYAML(data []byte) (Value, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, &oaserrors.ParseError{Message: "invalid YAML value", Cause: err}
	}
	v, err := fromYAMLNode(&root)
	if err != nil {
		return nil, &oaserrors.ParseError{Message: "invalid YAML value", Cause: err}
	}
	return v, nil
}

// FromYAMLNode converts an already parsed YAML node.
func FromYAMLNode(node *yaml.Node) (Value, error) {
	return fromYAMLNode(node)
}

func fromYAMLNode(node *yaml.Node) (Value, error) {
	if node == nil {
		return Null{}, nil
	}
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return Null{}, nil
		}
		return fromYAMLNode(node.Content[0])
	case yaml.AliasNode:
		return fromYAMLNode(node.Alias)
	case yaml.MappingNode:
		m := NewMapping()
		for i := 0; i+1 < len(node.Content); i += 2 {
			v, err := fromYAMLNode(node.Content[i+1])
			if err != nil {
				return nil, err
			}
			m.Set(node.Content[i].Value, v)
		}
		return m, nil
	case yaml.SequenceNode:
		seq := make(Sequence, 0, len(node.Content))
		for _, child := range node.Content {
			v, err := fromYAMLNode(child)
			if err != nil {
				return nil, err
			}
			seq = append(seq, v)
		}
		return seq, nil
	case yaml.ScalarNode:
		return fromYAMLScalar(node)
	default:
		return nil, fmt.Errorf("unsupported YAML node kind %v at line %d", node.Kind, node.Line)
	}
}

func fromYAMLScalar(node *yaml.Node) (Value, error) {
	switch node.ShortTag() {
	case "!!null":
		return Null{}, nil
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return nil, err
		}
		return Bool(b), nil
	case "!!int":
		var i int64
		if err := node.Decode(&i); err == nil {
			return Int(i), nil
		}
		var f float64
		if err := node.Decode(&f); err != nil {
			return nil, err
		}
		return Float(f), nil
	case "!!float":
		var f float64
		if err := node.Decode(&f); err != nil {
			return nil, err
		}
		return Float(f), nil
	default:
		return String(node.Value), nil
	}
}

// FromAny converts native Go data, such as the result of encoding/json
// unmarshaling into any. Map keys are sorted because Go maps are unordered.
func FromAny(x any) (Value, error) {
	switch x := x.(type) {
	case nil:
		return Null{}, nil
	case Value:
		return x, nil
	case bool:
		return Bool(x), nil
	case int:
		return Int(x), nil
	case int8:
		return Int(x), nil
	case int16:
		return Int(x), nil
	case int32:
		return Int(x), nil
	case int64:
		return Int(x), nil
	case uint:
		return fromUint(uint64(x))
	case uint8:
		return Int(x), nil
	case uint16:
		return Int(x), nil
	case uint32:
		return Int(x), nil
	case uint64:
		return fromUint(x)
	case float32:
		return Float(x), nil
	case float64:
		return Float(x), nil
	case json.Number:
		return parseNumber(string(x))
	case string:
		return String(x), nil
	case time.Time:
		return String(x.Format(time.RFC3339Nano)), nil
	case []any:
		seq := make(Sequence, 0, len(x))
		for _, item := range x {
			v, err := FromAny(item)
			if err != nil {
				return nil, err
			}
			seq = append(seq, v)
		}
		return seq, nil
	case []string:
		seq := make(Sequence, len(x))
		for i, s := range x {
			seq[i] = String(s)
		}
		return seq, nil
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		m := NewMapping()
		for _, k := range keys {
			v, err := FromAny(x[k])
			if err != nil {
				return nil, err
			}
			m.Set(k, v)
		}
		return m, nil
	default:
		return nil, &oaserrors.TypeError{Value: x, Expected: "JSON-compatible value"}
	}
}

func fromUint(u uint64) (Value, error) {
	if u > math.MaxInt64 {
		return Float(float64(u)), nil
	}
	return Int(int64(u)), nil
}

// ToAny converts v to native Go data: nil, bool, int64, float64, string,
// []any and map[string]any.
func ToAny(v Value) any {
	switch v := v.(type) {
	case Bool:
		return bool(v)
	case Int:
		return int64(v)
	case Float:
		return float64(v)
	case String:
		return string(v)
	case Sequence:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = ToAny(item)
		}
		return out
	case *Mapping:
		out := make(map[string]any, v.Len())
		for _, e := range v.entries {
			out[e.Key] = ToAny(e.Value)
		}
		return out
	default:
		return nil
	}
}
