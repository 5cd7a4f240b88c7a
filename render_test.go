package hxstyle

import (
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm/hxstyle/lib/props"
	"github.com/pthm/hxstyle/lib/sheet"
)

type upper string

func (u upper) String() string { return fmt.Sprintf("U(%s)", string(u)) }

func renderElement(t *testing.T, r Renderer, tag string, p props.Props) (string, Ref) {
	t.Helper()
	var ref Ref
	html, err := RenderString(context.Background(), r.Render(Element(tag), p, &ref))
	require.NoError(t, err)
	return html, ref
}

func TestElementRendererAttributes(t *testing.T) {
	r := NewElementRenderer()
	tests := []struct {
		name string
		tag  string
		in   props.Props
		want string
	}{
		{
			name: "class and for",
			tag:  "label",
			in:   props.Of("className", "a b", "htmlFor", "x"),
			want: `<label class="a b" for="x"></label>`,
		},
		{
			name: "lowercased html names",
			tag:  "div",
			in:   props.Of("tabIndex", 2, "contentEditable", "true"),
			want: `<div tabindex="2" contenteditable="true"></div>`,
		},
		{
			name: "svg names kept and kebab presentation attrs",
			tag:  "svg",
			in:   props.Of("viewBox", "0 0 10 10", "strokeWidth", 2),
			want: `<svg viewBox="0 0 10 10" stroke-width="2"></svg>`,
		},
		{
			name: "booleans",
			tag:  "input",
			in:   props.Of("disabled", true, "checked", false, "type", "checkbox"),
			want: `<input disabled type="checkbox">`,
		},
		{
			name: "aria and data booleans spelled out",
			tag:  "button",
			in:   props.Of("aria-expanded", false, "data-open", true, "hidden", false),
			want: `<button aria-expanded="false" data-open="true"></button>`,
		},
		{
			name: "escaping",
			tag:  "a",
			in:   props.Of("title", `"<x>"`, "children", "a < b"),
			want: `<a title="&#34;&lt;x&gt;&#34;">a &lt; b</a>`,
		},
		{
			name: "opaque skipped, stringer kept",
			tag:  "div",
			in:   props.Of("onClick", func() {}, "title", props.Opaque(upper("x"))),
			want: `<div title="U(x)"></div>`,
		},
		{
			name: "unrendered and unsafe names skipped",
			tag:  "div",
			in:   props.Of("key", "k", "ref", "r", `data-x"y`, "1", "id", "ok"),
			want: `<div id="ok"></div>`,
		},
		{
			name: "void element",
			tag:  "br",
			in:   props.Of("children", "ignored"),
			want: `<br>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			html, _ := renderElement(t, r, tt.tag, tt.in)
			assert.Equal(t, tt.want, html)
		})
	}
}

func TestElementRendererFillsRef(t *testing.T) {
	html, ref := renderElement(t, NewElementRenderer(), "a", props.Of("className", "c", "href", "/", "onClick", func() {}))
	assert.Equal(t, `<a class="c" href="/"></a>`, html)
	assert.Equal(t, "a", ref.Tag)
	assert.Equal(t, "c", ref.Class)
	assert.Equal(t, []string{"href"}, ref.Attrs.Names())

	_, ref = renderElement(t, NewElementRenderer(), "div", props.Of("aria-hidden", false, "hidden", false, "id", "x"))
	assert.Equal(t, []string{"aria-hidden", "id"}, ref.Attrs.Names())
}

func TestElementRendererComponentChildren(t *testing.T) {
	child := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "<b>bold</b>")
		return err
	})
	html, _ := renderElement(t, NewElementRenderer(), "p", props.Of("children", child))
	assert.Equal(t, "<p><b>bold</b></p>", html)
}

func TestElementRendererContextChildren(t *testing.T) {
	child := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "inner")
		return err
	})
	ctx := templ.WithChildren(context.Background(), child)

	html, err := RenderString(ctx, NewElementRenderer().Render(Element("section"), props.New(0), nil))
	require.NoError(t, err)
	assert.Equal(t, "<section>inner</section>", html)
}

func TestElementRendererCustomTarget(t *testing.T) {
	var gotRef *Ref
	custom := ComponentFunc(func(p props.Props, ref *Ref) templ.Component {
		gotRef = ref
		return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			_, err := io.WriteString(w, "custom")
			return err
		})
	})
	ref := &Ref{}
	html, err := RenderString(context.Background(), NewElementRenderer().Render(Custom(custom), props.New(0), ref))
	require.NoError(t, err)
	assert.Equal(t, "custom", html)
	assert.Same(t, ref, gotRef)
}

func TestElementRendererInlineStyles(t *testing.T) {
	s := sheet.New()
	class := s.Compile(sheet.S("color", "red"))
	r := NewElementRenderer(WithStyles(s))

	html, _ := renderElement(t, r, "span", props.Of("className", class+" raw"))
	assert.Equal(t, "<style>."+class+"{color:red;}</style><span class=\""+class+" raw\"></span>", html)

	result := &TestResult{HTML: html}
	tag, _, ok := result.Root()
	require.True(t, ok)
	assert.Equal(t, "span", tag)
}
