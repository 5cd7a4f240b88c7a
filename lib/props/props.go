// Package props provides the ordered property map passed to styled
// components, and the tagged value type stored in it.
package props

import (
	"fmt"
	"iter"
	"math"
	"reflect"
	"slices"
	"strconv"
)

// Kind tags the shape of a Value.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindString
	KindNumber
	KindBool
	KindStyle  // nested style object
	KindOpaque // functions, components, anything else
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindStyle:
		return "style"
	case KindOpaque:
		return "opaque"
	}
	return "invalid"
}

// Value is a single property value. Routing decisions branch on Kind,
// never on the dynamic type of the wrapped Go value.
type Value struct {
	kind Kind
	s    string
	n    float64
	b    bool
	v    any
}

// String wraps a string value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Number wraps a numeric value.
func Number(n float64) Value { return Value{kind: KindNumber, n: n} }

// Int wraps an integer value.
func Int(n int) Value { return Value{kind: KindNumber, n: float64(n)} }

// Bool wraps a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Opaque wraps a value the router must never inspect (handlers,
// components, structs).
func Opaque(v any) Value { return Value{kind: KindOpaque, v: v} }

// StyleValue wraps a nested style object. The concrete type is owned by
// the style compiler; props only carries it.
func StyleValue(v any) Value { return Value{kind: KindStyle, v: v} }

// Styler is implemented by style objects so ValueOf can tag them.
type Styler interface {
	IsStyle()
}

// ValueOf tags a raw Go value.
func ValueOf(v any) Value {
	switch x := v.(type) {
	case Value:
		return x
	case string:
		return String(x)
	case bool:
		return Bool(x)
	case int:
		return Int(x)
	case int8:
		return Number(float64(x))
	case int16:
		return Number(float64(x))
	case int32:
		return Number(float64(x))
	case int64:
		return Number(float64(x))
	case uint:
		return Number(float64(x))
	case uint8:
		return Number(float64(x))
	case uint16:
		return Number(float64(x))
	case uint32:
		return Number(float64(x))
	case uint64:
		return Number(float64(x))
	case float32:
		return Number(float64(x))
	case float64:
		return Number(x)
	case Styler:
		return StyleValue(x)
	case nil:
		return Value{}
	}
	return Opaque(v)
}

// Kind returns the value's tag.
func (v Value) Kind() Kind { return v.kind }

// IsValid reports whether the value was set.
func (v Value) IsValid() bool { return v.kind != KindInvalid }

// IsPrimitive reports whether the value is a string or a number. Only
// primitive values are eligible for style shorthand compilation.
func (v Value) IsPrimitive() bool {
	return v.kind == KindString || v.kind == KindNumber
}

// Str returns the string payload.
func (v Value) Str() (string, bool) { return v.s, v.kind == KindString }

// Num returns the numeric payload.
func (v Value) Num() (float64, bool) { return v.n, v.kind == KindNumber }

// Truth returns the boolean payload.
func (v Value) Truth() (bool, bool) { return v.b, v.kind == KindBool }

// Any returns the wrapped Go value.
func (v Value) Any() any {
	switch v.kind {
	case KindString:
		return v.s
	case KindNumber:
		return v.n
	case KindBool:
		return v.b
	case KindStyle, KindOpaque:
		return v.v
	}
	return nil
}

// Text renders primitive and boolean values as text. Style and opaque
// values yield false unless they implement fmt.Stringer.
func (v Value) Text() (string, bool) {
	switch v.kind {
	case KindString:
		return v.s, true
	case KindNumber:
		return FormatNumber(v.n), true
	case KindBool:
		return strconv.FormatBool(v.b), true
	case KindOpaque, KindStyle:
		if s, ok := v.v.(fmt.Stringer); ok {
			return s.String(), true
		}
	}
	return "", false
}

// FormatNumber formats n without a trailing fraction when it is integral.
func FormatNumber(n float64) string {
	if n == math.Trunc(n) && math.Abs(n) < 1e15 {
		return strconv.FormatInt(int64(n), 10)
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}

func (v Value) String() string {
	if s, ok := v.Text(); ok {
		return s
	}
	return fmt.Sprintf("<%s>", v.kind)
}

// Entry is one name/value pair.
type Entry struct {
	Name  string
	Value Value
}

// Props is an insertion-ordered property map. Like a Go map it is a
// reference: copies share their entries, so a Set or Delete through one
// copy is seen by all of them. Use Clone for an independent map. The zero
// value is an empty map that allocates on first Set.
type Props struct {
	m *propMap
}

type propMap struct {
	entries []Entry
	index   map[string]int
}

// New returns an empty map with room for n entries.
func New(n int) Props {
	return Props{m: &propMap{
		entries: make([]Entry, 0, n),
		index:   make(map[string]int, n),
	}}
}

// Of builds a map from alternating names and raw values:
//
//	props.Of("width", 100, "onClick", handler)
//
// Panics on an odd argument count or a non-string name.
func Of(kv ...any) Props {
	if len(kv)%2 != 0 {
		panic("props: Of requires name/value pairs")
	}
	p := New(len(kv) / 2)
	for i := 0; i < len(kv); i += 2 {
		name, ok := kv[i].(string)
		if !ok {
			panic(fmt.Sprintf("props: name at position %d is %T, not string", i, kv[i]))
		}
		p.Set(name, ValueOf(kv[i+1]))
	}
	return p
}

func (p Props) entries() []Entry {
	if p.m == nil {
		return nil
	}
	return p.m.entries
}

// Set stores a value. An existing name keeps its position.
func (p *Props) Set(name string, v Value) {
	if p.m == nil {
		p.m = &propMap{index: make(map[string]int)}
	}
	m := p.m
	if i, ok := m.index[name]; ok {
		m.entries[i].Value = v
		return
	}
	m.index[name] = len(m.entries)
	m.entries = append(m.entries, Entry{Name: name, Value: v})
}

// SetAny tags and stores a raw Go value.
func (p *Props) SetAny(name string, v any) { p.Set(name, ValueOf(v)) }

// Get returns the value stored under name.
func (p Props) Get(name string) (Value, bool) {
	if p.m == nil {
		return Value{}, false
	}
	i, ok := p.m.index[name]
	if !ok {
		return Value{}, false
	}
	return p.m.entries[i].Value, true
}

// Has reports whether name is present.
func (p Props) Has(name string) bool {
	_, ok := p.Get(name)
	return ok
}

// Delete removes name, keeping the order of the remaining entries.
func (p *Props) Delete(name string) {
	if p.m == nil {
		return
	}
	m := p.m
	i, ok := m.index[name]
	if !ok {
		return
	}
	m.entries = slices.Delete(m.entries, i, i+1)
	delete(m.index, name)
	for j := i; j < len(m.entries); j++ {
		m.index[m.entries[j].Name] = j
	}
}

// Len returns the number of entries.
func (p Props) Len() int { return len(p.entries()) }

// Names returns the names in insertion order.
func (p Props) Names() []string {
	entries := p.entries()
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names
}

// Entries returns a copy of the entries in insertion order.
func (p Props) Entries() []Entry {
	return slices.Clone(p.entries())
}

// All iterates entries in insertion order.
func (p Props) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for _, e := range p.entries() {
			if !yield(e.Name, e.Value) {
				return
			}
		}
	}
}

// Clone returns an independent copy.
func (p Props) Clone() Props {
	entries := p.entries()
	c := New(len(entries))
	for _, e := range entries {
		c.Set(e.Name, e.Value)
	}
	return c
}

// Equal reports whether both maps hold the same names in the same order
// with equal tags and payloads. Func payloads compare by code pointer,
// everything else deeply.
func (p Props) Equal(o Props) bool {
	pe, oe := p.entries(), o.entries()
	if len(pe) != len(oe) {
		return false
	}
	for i, e := range pe {
		f := oe[i]
		if e.Name != f.Name || !e.Value.equal(f.Value) {
			return false
		}
	}
	return true
}

func (v Value) equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.s == o.s
	case KindNumber:
		return v.n == o.n
	case KindBool:
		return v.b == o.b
	case KindStyle, KindOpaque:
		return sameOpaque(v.v, o.v)
	}
	return true
}

func sameOpaque(a, b any) bool {
	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if ra.Kind() == reflect.Func && rb.Kind() == reflect.Func {
		return ra.Type() == rb.Type() && ra.Pointer() == rb.Pointer()
	}
	return reflect.DeepEqual(a, b)
}
