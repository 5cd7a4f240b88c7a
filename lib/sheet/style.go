package sheet

import (
	"strings"

	"github.com/pthm/hxstyle/lib/props"
	"github.com/pthm/hxstyle/lib/tables"
)

// Decl is one entry of a style object. Value is a string, a number, a
// []string of fallbacks, or a nested Style under a selector or at-rule key.
// nil and bool values are skipped.
type Decl struct {
	Property string
	Value    any
}

// Style is an ordered style object. Order is significant: later
// declarations win over earlier ones for the same property.
//
//	sheet.Style{
//	    {"padding", 20},
//	    {"color", "#0055ff"},
//	    {"&:hover", sheet.Style{{"color", "red"}}},
//	}
type Style []Decl

// IsStyle tags Style for props.ValueOf.
func (Style) IsStyle() {}

// S builds a Style from alternating property names and values.
// Panics on an odd argument count or a non-string name.
func S(kv ...any) Style {
	if len(kv)%2 != 0 {
		panic("sheet: S requires property/value pairs")
	}
	s := make(Style, 0, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		name, ok := kv[i].(string)
		if !ok {
			panic("sheet: S property names must be strings")
		}
		s = append(s, Decl{Property: name, Value: kv[i+1]})
	}
	return s
}

// Merge concatenates styles in order.
func Merge(styles ...Style) Style {
	n := 0
	for _, s := range styles {
		n += len(s)
	}
	out := make(Style, 0, n)
	for _, s := range styles {
		out = append(out, s...)
	}
	return out
}

// FromProps turns a prop map into a style object, keeping its order.
// Style-tagged values become nested styles; opaque and boolean values are
// dropped.
func FromProps(p props.Props) Style {
	s := make(Style, 0, p.Len())
	for name, v := range p.All() {
		switch v.Kind() {
		case props.KindString, props.KindNumber:
			s = append(s, Decl{Property: name, Value: v.Any()})
		case props.KindStyle:
			if nested, ok := AsStyle(v); ok {
				s = append(s, Decl{Property: name, Value: nested})
			}
		}
	}
	return s
}

// AsStyle extracts a Style from a tagged prop value.
func AsStyle(v props.Value) (Style, bool) {
	if v.Kind() != props.KindStyle {
		return nil, false
	}
	s, ok := v.Any().(Style)
	return s, ok
}

// nestedStyle returns the block under a selector or at-rule key.
func nestedStyle(v any) (Style, bool) {
	switch x := v.(type) {
	case Style:
		return x, true
	case props.Value:
		return AsStyle(x)
	}
	return nil, false
}

// propertyName returns the CSS spelling of a property key.
func propertyName(key string) string {
	return tables.Hyphenate(key)
}

// formatValue renders a declaration value, appending px to unitless
// numbers where the property requires a length.
func formatValue(t *tables.Tables, key string, v any) (string, bool) {
	switch x := v.(type) {
	case nil, bool:
		return "", false
	case string:
		return x, true
	case props.Value:
		if !x.IsPrimitive() {
			return "", false
		}
		return formatValue(t, key, x.Any())
	}
	n, ok := toFloat(v)
	if !ok {
		return "", false
	}
	s := props.FormatNumber(n)
	if n == 0 || strings.HasPrefix(key, "--") || t.IsUnitless(key) {
		return s, true
	}
	return s + "px", true
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	case float32:
		return float64(x), true
	case float64:
		return x, true
	}
	return 0, false
}
