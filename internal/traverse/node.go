// Package traverse provides an order-preserving JSON tree and key-path search
// over it. InnerTube responses nest the same renderer names at unpredictable
// depths, so lookups are by key name rather than by fixed path.
package traverse

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// MaxDepth bounds both parsing and searching.
const MaxDepth = 512

// Sentinel errors.
var (
	// ErrInvalidJSON is returned when the input is not a single valid JSON document.
	ErrInvalidJSON = errors.New("invalid JSON document")

	// ErrTooDeep is returned when the document nests deeper than MaxDepth.
	ErrTooDeep = errors.New("document exceeds maximum depth")
)

// Kind identifies the shape of a Node.
type Kind uint8

const (
	// KindAbsent is the zero Kind. It marks a lookup that found nothing.
	KindAbsent Kind = iota
	KindNull
	KindBool
	KindNumber
	KindString
	KindMapping
	KindSequence
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindMapping:
		return "mapping"
	case KindSequence:
		return "sequence"
	default:
		return "absent"
	}
}

// Field is one key/value pair of a mapping, in document order.
type Field struct {
	Key   string
	Value Node
}

// Node is a single value in a JSON tree. Mappings keep their keys in document
// order. The zero Node is absent.
type Node struct {
	kind   Kind
	b      bool
	num    float64
	raw    string // original number literal
	str    string
	fields []Field
	items  []Node
}

// Parse decodes data into a Node tree.
func Parse(data []byte) (Node, error) {
	if !gjson.ValidBytes(data) {
		return Node{}, ErrInvalidJSON
	}
	return fromResult(gjson.ParseBytes(data), 0)
}

// ParseString is Parse for string input.
func ParseString(s string) (Node, error) {
	return Parse([]byte(s))
}

func fromResult(r gjson.Result, depth int) (Node, error) {
	if depth > MaxDepth {
		return Node{}, ErrTooDeep
	}

	switch r.Type {
	case gjson.Null:
		return Node{kind: KindNull}, nil
	case gjson.False:
		return Node{kind: KindBool}, nil
	case gjson.True:
		return Node{kind: KindBool, b: true}, nil
	case gjson.Number:
		return Node{kind: KindNumber, num: r.Num, raw: r.Raw}, nil
	case gjson.String:
		return Node{kind: KindString, str: r.Str}, nil
	}

	var (
		n   Node
		err error
	)
	switch {
	case r.IsArray():
		n.kind = KindSequence
		r.ForEach(func(_, v gjson.Result) bool {
			var child Node
			child, err = fromResult(v, depth+1)
			if err != nil {
				return false
			}
			n.items = append(n.items, child)
			return true
		})
	case r.IsObject():
		n.kind = KindMapping
		r.ForEach(func(k, v gjson.Result) bool {
			var child Node
			child, err = fromResult(v, depth+1)
			if err != nil {
				return false
			}
			n.fields = append(n.fields, Field{Key: k.Str, Value: child})
			return true
		})
	default:
		return Node{}, fmt.Errorf("%w: unexpected token %q", ErrInvalidJSON, r.Raw)
	}
	if err != nil {
		return Node{}, err
	}
	return n, nil
}

// String returns a string scalar.
func String(s string) Node { return Node{kind: KindString, str: s} }

// Number returns a numeric scalar.
func Number(f float64) Node {
	return Node{kind: KindNumber, num: f, raw: strconv.FormatFloat(f, 'f', -1, 64)}
}

// Bool returns a boolean scalar.
func Bool(b bool) Node { return Node{kind: KindBool, b: b} }

// Null returns a JSON null.
func Null() Node { return Node{kind: KindNull} }

// Mapping returns a mapping with the given fields in order.
func Mapping(fields ...Field) Node { return Node{kind: KindMapping, fields: fields} }

// Sequence returns a sequence of the given items.
func Sequence(items ...Node) Node { return Node{kind: KindSequence, items: items} }

// Kind reports the node's shape.
func (n Node) Kind() Kind { return n.kind }

// Exists reports whether the node is present. A JSON null is present.
func (n Node) Exists() bool { return n.kind != KindAbsent }

// IsScalar reports whether n is a null, bool, number or string.
func (n Node) IsScalar() bool {
	return n.kind >= KindNull && n.kind <= KindString
}

// Fields returns the fields of a mapping, or nil.
func (n Node) Fields() []Field { return n.fields }

// Items returns the items of a sequence, or nil.
func (n Node) Items() []Node { return n.items }

// Len returns the number of fields or items.
func (n Node) Len() int {
	switch n.kind {
	case KindMapping:
		return len(n.fields)
	case KindSequence:
		return len(n.items)
	}
	return 0
}

// Get returns the direct child of a mapping under key.
func (n Node) Get(key string) Node {
	for _, f := range n.fields {
		if f.Key == key {
			return f.Value
		}
	}
	return Node{}
}

// Has reports whether a mapping has key as a direct child.
func (n Node) Has(key string) bool {
	return n.Get(key).Exists()
}

// Path follows direct children of mappings. It does not search.
func (n Node) Path(keys ...string) Node {
	cur := n
	for _, k := range keys {
		cur = cur.Get(k)
		if !cur.Exists() {
			return Node{}
		}
	}
	return cur
}

// Index returns the i-th item of a sequence. Negative i counts from the end.
func (n Node) Index(i int) Node {
	if i < 0 {
		i += len(n.items)
	}
	if i < 0 || i >= len(n.items) {
		return Node{}
	}
	return n.items[i]
}

// Str returns the value of a string scalar.
func (n Node) Str() (string, bool) {
	if n.kind != KindString {
		return "", false
	}
	return n.str, true
}

// Text returns the value of a string scalar, or "" for anything else.
func (n Node) Text() string {
	return n.str
}

// Int returns an integer from a number, or from a string holding one.
// InnerTube encodes large counts such as lengthSeconds and viewCount as strings.
func (n Node) Int() (int64, bool) {
	switch n.kind {
	case KindNumber:
		return int64(n.num), true
	case KindString:
		v, err := strconv.ParseInt(strings.TrimSpace(n.str), 10, 64)
		if err != nil {
			return 0, false
		}
		return v, true
	}
	return 0, false
}

// Float returns a float from a number or numeric string.
func (n Node) Float() (float64, bool) {
	switch n.kind {
	case KindNumber:
		return n.num, true
	case KindString:
		v, err := strconv.ParseFloat(strings.TrimSpace(n.str), 64)
		if err != nil {
			return 0, false
		}
		return v, true
	}
	return 0, false
}

// Truth returns the value of a boolean scalar.
func (n Node) Truth() (bool, bool) {
	if n.kind != KindBool {
		return false, false
	}
	return n.b, true
}

// Value converts n to the plain Go values encoding/json produces:
// map[string]any, []any, string, float64, bool or nil.
// Key order is lost; use MarshalJSON to keep it.
func (n Node) Value() any {
	switch n.kind {
	case KindBool:
		return n.b
	case KindNumber:
		return n.num
	case KindString:
		return n.str
	case KindMapping:
		m := make(map[string]any, len(n.fields))
		for _, f := range n.fields {
			m[f.Key] = f.Value.Value()
		}
		return m
	case KindSequence:
		s := make([]any, len(n.items))
		for i, it := range n.items {
			s[i] = it.Value()
		}
		return s
	}
	return nil
}

// MarshalJSON encodes n with mapping keys in document order.
// An absent node encodes as null.
func (n Node) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := n.encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (n Node) encode(buf *bytes.Buffer) error {
	switch n.kind {
	case KindAbsent, KindNull:
		buf.WriteString("null")
	case KindBool:
		buf.WriteString(strconv.FormatBool(n.b))
	case KindNumber:
		if n.raw != "" {
			buf.WriteString(n.raw)
		} else {
			buf.WriteString(strconv.FormatFloat(n.num, 'f', -1, 64))
		}
	case KindString:
		b, err := json.Marshal(n.str)
		if err != nil {
			return err
		}
		buf.Write(b)
	case KindMapping:
		buf.WriteByte('{')
		for i, f := range n.fields {
			if i > 0 {
				buf.WriteByte(',')
			}
			k, err := json.Marshal(f.Key)
			if err != nil {
				return err
			}
			buf.Write(k)
			buf.WriteByte(':')
			if err := f.Value.encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case KindSequence:
		buf.WriteByte('[')
		for i, it := range n.items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := it.encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	}
	return nil
}
