package hxstyle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/pthm/hxstyle/lib/props"
	"github.com/pthm/hxstyle/lib/tables"
)

func TestForwardProps(t *testing.T) {
	fn := func() {}
	tests := []struct {
		name   string
		target Target
		in     props.Props
		want   []string
	}{
		{
			name:   "generic attributes kept",
			target: Element("a"),
			in:     props.Of("href", "/x", "id", "a", "data-id", 1, "aria-label", "go", "onClick", fn),
			want:   []string{"href", "id", "data-id", "aria-label", "onClick"},
		},
		{
			name:   "unknown names dropped",
			target: Element("div"),
			in:     props.Of("id", "a", "isActive", true, "variant", "primary"),
			want:   []string{"id"},
		},
		{
			name:   "lowercase spellings are case-sensitive",
			target: Element("div"),
			in:     props.Of("classname", "x", "tabindex", 0, "htmlfor", "y"),
			want:   []string{"tabindex"},
		},
		{
			name:   "context conditional",
			target: Element("div"),
			in:     props.Of("width", props.Opaque(fn), "loading", "lazy", "action", "/go"),
			want:   []string{},
		},
		{
			name:   "context allowed",
			target: Element("img"),
			in:     props.Of("width", "100", "loading", "lazy", "src", "a.png"),
			want:   []string{"width", "loading", "src"},
		},
		{
			name:   "interaction flags",
			target: Element("button"),
			in:     props.Of("hover", true, "focus", true, "active", true, "keyboardFocus", true, "type", "button"),
			want:   []string{"type"},
		},
		{
			name:   "disallowed",
			target: Element("button"),
			in:     props.Of("seamless", true, "selected", true, "dashed", true, "disabled", true),
			want:   []string{"disabled"},
		},
		{
			name:   "svg only on html",
			target: Element("div"),
			in:     props.Of("strokeWidth", 2, "viewBox", "0 0 1 1", "title", "t"),
			want:   []string{"title"},
		},
		{
			name:   "svg only on svg",
			target: Element("path"),
			in:     props.Of("strokeWidth", 2, "d", "M0 0"),
			want:   []string{"strokeWidth", "d"},
		},
		{
			name:   "custom target skips element rules",
			target: Custom(ComponentFunc(nil)),
			in:     props.Of("seamless", true, "hover", true, "width", 10, "variant", "x"),
			want:   []string{"seamless", "width"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ForwardProps(tt.in, tt.target)
			assert.Equal(t, tt.want, got.Names())
		})
	}
}

func TestForwardPropsKeepsValues(t *testing.T) {
	fn := func() {}
	in := props.Of("onClick", fn, "id", "x", "tabIndex", 2)
	out := ForwardProps(in, Element("div"))
	assert.True(t, in.Equal(out))

	v, _ := out.Get("tabIndex")
	assert.Equal(t, props.KindNumber, v.Kind())
}

func TestForwardPropsIdempotent(t *testing.T) {
	fn := func() {}
	inputs := []props.Props{
		props.Of("href", "/", "isActive", true, "seamless", true, "onClick", fn),
		props.Of("width", "10", "height", 2, "strokeWidth", 1, "hover", true),
		props.Of(),
	}
	targets := []Target{Element("div"), Element("img"), Element("svg"), Element("button"), Custom(ComponentFunc(nil))}

	for _, in := range inputs {
		for _, target := range targets {
			once := ForwardProps(in, target)
			twice := ForwardProps(once, target)
			assert.True(t, once.Equal(twice), "not idempotent for %s on %s", in.Names(), target)
		}
	}
}

func TestForwardContextConditionalProperty(t *testing.T) {
	tb := tables.Default()
	elements := []string{"div", "span", "img", "svg", "form", "input", "details", "textarea", "iframe"}
	for _, name := range []string{"action", "color", "height", "label", "loading", "open", "size", "width", "wrap"} {
		allowed, ok := tb.ContextElements(name)
		if !assert.True(t, ok, name) {
			continue
		}
		for _, el := range elements {
			out := ForwardProps(props.Of(name, "x"), Element(el))
			if !contains(allowed, el) {
				assert.False(t, out.Has(name), "%s must be dropped on %s", name, el)
			}
		}
	}
}

func TestForwardLogsDrops(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	r := NewRouter(nil, zap.New(core))

	r.Forward(props.Of("seamless", true, "id", "x"), Element("button"))

	entries := logs.FilterMessage("Dropped prop").All()
	if assert.Len(t, entries, 1) {
		fields := entries[0].ContextMap()
		assert.Equal(t, "seamless", fields["prop"])
		assert.Equal(t, "button", fields["element"])
		assert.Equal(t, "disallowed", fields["reason"])
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
