// Package value implements the dynamic value model a template evaluates
// expressions against: a small tagged union, plus the narrow operation
// set the evaluator needs (truthiness, canonical text, HTML conversion,
// iteration, loose indexing, function projection). Value is closed to
// this package; the constructors below are the only way to build one.
package value

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/motching/ginger-go/value/html"
)

// Kind identifies which variant of the tagged union a Value holds.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindList
	KindObject
	KindFunction
	KindHTML
)

// Value is the dynamic value every expression evaluates to. It is a
// closed sum of the eight kinds above; the unexported marker method keeps
// the set closed to this package.
type Value interface {
	Kind() Kind
	value()
}

// Argument is a single call argument: an optional name (for named
// arguments) paired with its evaluated value.
type Argument struct {
	Name  *string
	Value Value
}

// Function is the callable projection extracted by ToFunction. It takes
// the evaluated argument list, in source order, and returns a value or
// an error.
type Function func(args []Argument) (Value, error)

type nullValue struct{}

func (nullValue) Kind() Kind { return KindNull }
func (nullValue) value()     {}

type boolValue bool

func (boolValue) Kind() Kind { return KindBool }
func (boolValue) value()     {}

type numberValue struct{ d decimal.Decimal }

func (numberValue) Kind() Kind { return KindNumber }
func (numberValue) value()     {}

type stringValue string

func (stringValue) Kind() Kind { return KindString }
func (stringValue) value()     {}

type listValue []Value

func (listValue) Kind() Kind { return KindList }
func (listValue) value()     {}

// objectValue keeps insertion order alongside the map so ToText/IterKeys
// are deterministic, even though an object's own equality doesn't care
// about key order.
type objectValue struct {
	keys   []string
	values map[string]Value
}

func (*objectValue) Kind() Kind { return KindObject }
func (*objectValue) value()     {}

type funcValue struct{ fn Function }

func (funcValue) Kind() Kind { return KindFunction }
func (funcValue) value()     {}

type htmlValue struct{ h html.HTML }

func (htmlValue) Kind() Kind { return KindHTML }
func (htmlValue) value()     {}

// Constructors.

var nullSingleton Value = nullValue{}

// Null returns the null value.
func Null() Value { return nullSingleton }

// Bool wraps a boolean.
func Bool(b bool) Value { return boolValue(b) }

// IntNumber wraps an integer as a Number.
func IntNumber(n int64) Value { return numberValue{decimal.NewFromInt(n)} }

// DecimalNumber wraps an arbitrary-precision decimal as a Number.
func DecimalNumber(d decimal.Decimal) Value { return numberValue{d} }

// String wraps a string.
func String(s string) Value { return stringValue(s) }

// List wraps a slice of values, preserving order.
func List(items []Value) Value {
	out := make(listValue, len(items))
	copy(out, items)
	return out
}

// ObjectBuilder accumulates key/value pairs in insertion order, where a
// later Set of the same key overwrites the earlier value in place.
type ObjectBuilder struct {
	keys   []string
	values map[string]Value
}

// NewObjectBuilder returns an empty builder.
func NewObjectBuilder() *ObjectBuilder {
	return &ObjectBuilder{values: map[string]Value{}}
}

// Set assigns key to v, appending key to the order the first time it is
// seen and overwriting the value (without moving its position) on repeats.
func (b *ObjectBuilder) Set(key string, v Value) {
	if _, exists := b.values[key]; !exists {
		b.keys = append(b.keys, key)
	}
	b.values[key] = v
}

// Build finalizes the builder into an Object value.
func (b *ObjectBuilder) Build() Value {
	keys := make([]string, len(b.keys))
	copy(keys, b.keys)
	values := make(map[string]Value, len(b.values))
	for k, v := range b.values {
		values[k] = v
	}
	return &objectValue{keys: keys, values: values}
}

// Object builds an Object value from a list of key/value pairs,
// convenient for literals and tests.
func Object(pairs ...KV) Value {
	b := NewObjectBuilder()
	for _, p := range pairs {
		b.Set(p.Key, p.Value)
	}
	return b.Build()
}

// KV is a single key/value pair for the Object constructor.
type KV struct {
	Key   string
	Value Value
}

// Func wraps a Function as a callable Value.
func Func(fn Function) Value { return funcValue{fn: fn} }

// FromHTML wraps an already-safe HTML fragment as a Value.
func FromHTML(h html.HTML) Value { return htmlValue{h: h} }

// Operations.

// ToBoolean implements the usual truthiness: Null/False/0/""/[]/{} are
// false, everything else is true.
func ToBoolean(v Value) bool {
	switch t := v.(type) {
	case nullValue:
		return false
	case boolValue:
		return bool(t)
	case numberValue:
		return !t.d.IsZero()
	case stringValue:
		return string(t) != ""
	case listValue:
		return len(t) > 0
	case *objectValue:
		return len(t.keys) > 0
	case funcValue, htmlValue:
		return true
	default:
		return true
	}
}

// ToText renders v canonically: numbers without trailing zeros, lists
// joined by nothing, objects in a deterministic (insertion) order.
func ToText(v Value) string {
	switch t := v.(type) {
	case nullValue:
		return ""
	case boolValue:
		if t {
			return "true"
		}
		return "false"
	case numberValue:
		return t.d.String()
	case stringValue:
		return string(t)
	case listValue:
		var sb strings.Builder
		for _, item := range t {
			sb.WriteString(ToText(item))
		}
		return sb.String()
	case *objectValue:
		var sb strings.Builder
		for _, k := range t.keys {
			sb.WriteString(ToText(t.values[k]))
		}
		return sb.String()
	case funcValue:
		return "<function>"
	case htmlValue:
		return t.h.String()
	default:
		return ""
	}
}

// ToHTML converts v to an HTML fragment: if v is already HTML, identity;
// otherwise its canonical text rendering is escaped.
func ToHTML(v Value) html.HTML {
	if t, ok := v.(htmlValue); ok {
		return t.h
	}
	return html.Escape(ToText(v))
}

// ToList returns v as a list of values: a List returns itself, an Object
// returns its values in iteration order, a String returns one Value per
// rune (consistent with IterKeys's per-string indexing), anything else
// returns an empty list.
func ToList(v Value) []Value {
	switch t := v.(type) {
	case listValue:
		out := make([]Value, len(t))
		copy(out, t)
		return out
	case *objectValue:
		out := make([]Value, len(t.keys))
		for i, k := range t.keys {
			out[i] = t.values[k]
		}
		return out
	case stringValue:
		runes := []rune(string(t))
		out := make([]Value, len(runes))
		for i, r := range runes {
			out[i] = String(string(r))
		}
		return out
	default:
		return nil
	}
}

// IterKeys returns the keys to pair with ToList(v) in lockstep: integer
// indices for a List or String, string keys for an Object, empty
// otherwise.
func IterKeys(v Value) []Value {
	switch t := v.(type) {
	case listValue:
		out := make([]Value, len(t))
		for i := range t {
			out[i] = IntNumber(int64(i))
		}
		return out
	case stringValue:
		runes := []rune(string(t))
		out := make([]Value, len(runes))
		for i := range runes {
			out[i] = IntNumber(int64(i))
		}
		return out
	case *objectValue:
		out := make([]Value, len(t.keys))
		for i, k := range t.keys {
			out[i] = String(k)
		}
		return out
	default:
		return nil
	}
}

// LookupLoose indexes base by index: numeric index into a List/String,
// string key into an Object. It returns (Null, false) when the index is
// absent or of the wrong shape for base's kind.
func LookupLoose(index Value, base Value) (Value, bool) {
	switch b := base.(type) {
	case listValue:
		n, ok := indexToInt(index)
		if !ok || n < 0 || n >= len(b) {
			return Null(), false
		}
		return b[n], true
	case stringValue:
		runes := []rune(string(b))
		n, ok := indexToInt(index)
		if !ok || n < 0 || n >= len(runes) {
			return Null(), false
		}
		return String(string(runes[n])), true
	case *objectValue:
		key, ok := indexToString(index)
		if !ok {
			return Null(), false
		}
		v, found := b.values[key]
		if !found {
			return Null(), false
		}
		return v, true
	default:
		return Null(), false
	}
}

// Decimal extracts the underlying arbitrary-precision decimal from a
// Number value, for the arithmetic builtins (sum/difference/product/...)
// that fold over it directly.
func Decimal(v Value) (decimal.Decimal, bool) {
	n, ok := v.(numberValue)
	if !ok {
		return decimal.Decimal{}, false
	}
	return n.d, true
}

// ToFunction extracts the callable projection from v, if any.
func ToFunction(v Value) (Function, bool) {
	if f, ok := v.(funcValue); ok {
		return f.fn, true
	}
	return nil, false
}

func indexToInt(v Value) (int, bool) {
	n, ok := v.(numberValue)
	if !ok {
		return 0, false
	}
	i := n.d.IntPart()
	return int(i), true
}

func indexToString(v Value) (string, bool) {
	switch t := v.(type) {
	case stringValue:
		return string(t), true
	case numberValue:
		return t.d.String(), true
	default:
		return "", false
	}
}
