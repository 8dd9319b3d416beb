package value

import (
	"strconv"
	"strings"

	"github.com/erraggy/oasfixture/oaserrors"
)

// Segment is one step of a structural path: a field name or a list index.
type Segment struct {
	Name    string
	Index   int
	IsIndex bool
}

// String renders the segment the way it appears in a path.
func (s Segment) String() string {
	if s.IsIndex {
		return "[" + strconv.Itoa(s.Index) + "]"
	}
	return s.Name
}

// ParsePath splits a dotted, bracketed path such as "data.items[0].id".
func ParsePath(path string) ([]Segment, error) {
	if path == "" {
		return nil, nil
	}
	var segs []Segment
	for _, dotted := range strings.Split(path, ".") {
		if dotted == "" {
			return nil, &oaserrors.ParseError{Path: path, Message: "empty path segment"}
		}
		name, rest, _ := strings.Cut(dotted, "[")
		if name != "" {
			segs = append(segs, Segment{Name: name})
		}
		for rest != "" {
			idx, tail, ok := strings.Cut(rest, "]")
			if !ok {
				return nil, &oaserrors.ParseError{Path: path, Message: "unterminated index"}
			}
			i, err := strconv.Atoi(idx)
			if err != nil || i < 0 {
				return nil, &oaserrors.ParseError{Path: path, Message: "invalid index " + strconv.Quote(idx)}
			}
			segs = append(segs, Segment{Index: i, IsIndex: true})
			if tail == "" {
				break
			}
			if !strings.HasPrefix(tail, "[") {
				return nil, &oaserrors.ParseError{Path: path, Message: "unexpected " + strconv.Quote(tail)}
			}
			rest = tail[1:]
		}
	}
	return segs, nil
}

// FormatPath joins segments back into the dotted, bracketed form.
func FormatPath(segs []Segment) string {
	var sb strings.Builder
	for i, s := range segs {
		if !s.IsIndex && i > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(s.String())
	}
	return sb.String()
}

// Lookup follows path through v.
func Lookup(v Value, path string) (Value, error) {
	segs, err := ParsePath(path)
	if err != nil {
		return nil, err
	}
	cur := v
	for i, s := range segs {
		at := FormatPath(segs[:i+1])
		if s.IsIndex {
			seq, ok := cur.(Sequence)
			if !ok {
				return nil, &oaserrors.TypeError{Path: at, Value: ToAny(cur), Expected: "array"}
			}
			if s.Index >= len(seq) {
				return nil, &oaserrors.ValueError{Path: at, Message: "index out of range"}
			}
			cur = seq[s.Index]
			continue
		}
		m, ok := cur.(*Mapping)
		if !ok {
			return nil, &oaserrors.TypeError{Path: at, Value: ToAny(cur), Expected: "object"}
		}
		next, ok := m.Get(s.Name)
		if !ok {
			return nil, &oaserrors.ValueError{Path: at, Message: "no such field"}
		}
		cur = next
	}
	return cur, nil
}
