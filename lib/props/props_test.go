package props

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type styleObj []string

func (styleObj) IsStyle() {}

type label string

func (l label) String() string { return "label:" + string(l) }

func TestValueOf(t *testing.T) {
	tests := []struct {
		name string
		in   any
		kind Kind
	}{
		{"string", "x", KindString},
		{"int", 3, KindNumber},
		{"uint8", uint8(3), KindNumber},
		{"float", 1.5, KindNumber},
		{"bool", true, KindBool},
		{"style", styleObj{"a"}, KindStyle},
		{"func", func() {}, KindOpaque},
		{"struct", struct{}{}, KindOpaque},
		{"nil", nil, KindInvalid},
		{"value", String("y"), KindString},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, ValueOf(tt.in).Kind())
		})
	}
}

func TestIsPrimitive(t *testing.T) {
	assert.True(t, String("a").IsPrimitive())
	assert.True(t, Int(0).IsPrimitive())
	assert.False(t, Bool(true).IsPrimitive())
	assert.False(t, Opaque(1).IsPrimitive())
	assert.False(t, StyleValue(styleObj{}).IsPrimitive())
	assert.False(t, Value{}.IsPrimitive())
}

func TestText(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want string
		ok   bool
	}{
		{"string", String("a"), "a", true},
		{"int", Int(100), "100", true},
		{"float", Number(1.25), "1.25", true},
		{"bool", Bool(false), "false", true},
		{"stringer", Opaque(label("x")), "label:x", true},
		{"opaque", Opaque(func() {}), "", false},
		{"invalid", Value{}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.v.Text()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "100", FormatNumber(100))
	assert.Equal(t, "-2", FormatNumber(-2))
	assert.Equal(t, "0.5", FormatNumber(0.5))
}

func TestOrder(t *testing.T) {
	p := Of("b", 1, "a", 2, "c", 3)
	assert.Equal(t, []string{"b", "a", "c"}, p.Names())

	p.Set("a", Int(5))
	assert.Equal(t, []string{"b", "a", "c"}, p.Names())
	v, ok := p.Get("a")
	require.True(t, ok)
	n, _ := v.Num()
	assert.Equal(t, 5.0, n)

	p.Delete("b")
	assert.Equal(t, []string{"a", "c"}, p.Names())
	assert.False(t, p.Has("b"))
	v, ok = p.Get("c")
	require.True(t, ok)
	n, _ = v.Num()
	assert.Equal(t, 3.0, n)

	p.Delete("missing")
	assert.Equal(t, 2, p.Len())
}

func TestZeroProps(t *testing.T) {
	var p Props
	assert.Equal(t, 0, p.Len())
	assert.False(t, p.Has("x"))
	p.SetAny("x", "y")
	assert.True(t, p.Has("x"))
}

func TestCloneIsIndependent(t *testing.T) {
	p := Of("a", 1, "b", 2)
	c := p.Clone()
	c.Delete("a")
	c.SetAny("z", 1)
	assert.Equal(t, []string{"a", "b"}, p.Names())
	assert.Equal(t, []string{"b", "z"}, c.Names())
}

func TestCopiesShareEntries(t *testing.T) {
	p := Of("a", 1)
	q := p
	q.Set("b", Int(2))

	v, ok := p.Get("b")
	require.True(t, ok)
	assert.Equal(t, Int(2), v)
	assert.Equal(t, []string{"a", "b"}, p.Names())

	q.Delete("a")
	assert.Equal(t, []string{"b"}, p.Names())
	assert.False(t, p.Has("a"))
	assert.Equal(t, 1, p.Len())
	assert.True(t, p.Equal(q))
}

func TestZeroCopiesDiverge(t *testing.T) {
	var p Props
	q := p
	q.SetAny("x", 1)
	assert.Equal(t, 0, p.Len())
	assert.Equal(t, []string{"x"}, q.Names())
}

func TestAllStopsEarly(t *testing.T) {
	p := Of("a", 1, "b", 2, "c", 3)
	var seen []string
	for name := range p.All() {
		seen = append(seen, name)
		if name == "b" {
			break
		}
	}
	assert.Equal(t, []string{"a", "b"}, seen)
}

func TestEqual(t *testing.T) {
	fn := func() {}
	a := Of("x", 1, "onClick", fn, "s", styleObj{"a"})
	b := Of("x", 1, "onClick", fn, "s", styleObj{"a"})
	assert.True(t, a.Equal(b))

	assert.False(t, a.Equal(Of("x", 1)))
	assert.False(t, Of("x", 1, "y", 2).Equal(Of("y", 2, "x", 1)))
	assert.False(t, Of("x", 1).Equal(Of("x", "1")))
}

func TestOfPanics(t *testing.T) {
	assert.Panics(t, func() { Of("a") })
	assert.Panics(t, func() { Of(1, 2) })
}
