package sheet

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm/hxstyle/lib/encoding"
	"github.com/pthm/hxstyle/lib/props"
)

func TestCompileEmpty(t *testing.T) {
	s := New()
	assert.Equal(t, "", s.Compile(nil))
	assert.Equal(t, "", s.Compile(Style{}))
	assert.Equal(t, 0, s.Len())
}

func TestCompileStable(t *testing.T) {
	s := New()
	a := s.Compile(S("width", 100, "color", "red"))
	b := s.Compile(S("width", 100, "color", "red"))
	c := s.Compile(S("color", "red", "width", 100))

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c, "declaration order is significant")
	assert.True(t, strings.HasPrefix(a, "css-"))
	assert.Equal(t, 2, s.Len())
	assert.Len(t, s.Rules(), 2)
}

func TestCompileIntAndFloatAgree(t *testing.T) {
	s := New()
	assert.Equal(t, s.Compile(S("width", 100)), s.Compile(S("width", 100.0)))
}

func TestCompileKeyAndLabel(t *testing.T) {
	s := New(WithKey("ui"))
	class := s.Compile(S("label", "Button", "color", "red"))
	assert.True(t, strings.HasPrefix(class, "ui-"))
	assert.True(t, strings.HasSuffix(class, "-Button"))
	assert.NotContains(t, s.CSS(), "label")
}

func TestSerializeDeclarations(t *testing.T) {
	tests := []struct {
		name  string
		style Style
		want  string
	}{
		{"px suffix", S("width", 100), "width:100px;"},
		{"string kept", S("width", "100"), "width:100;"},
		{"zero", S("margin", 0), "margin:0;"},
		{"unitless", S("lineHeight", 1.5, "opacity", 0.5), "line-height:1.5;opacity:0.5;"},
		{"custom property", S("--gap", 4), "--gap:4;"},
		{"vendor", S("msTransform", "none", "WebkitTransition", "none"), "-ms-transform:none;-webkit-transition:none;"},
		{"fallbacks", S("display", []string{"-webkit-box", "flex"}), "display:-webkit-box;display:flex;"},
		{"nil and bool skipped", S("color", nil, "width", true, "height", 2), "height:2px;"},
		{"prop value", S("padding", props.Int(8)), "padding:8px;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			class := s.Compile(tt.style)
			assert.Equal(t, "."+class+"{"+tt.want+"}", s.CSS())
		})
	}
}

func TestSerializeNested(t *testing.T) {
	s := New()
	class := s.Compile(Style{
		{"color", "blue"},
		{"&:hover", S("color", "red")},
		{"& > span, & + p", S("margin", 4)},
		{"a", S("textDecoration", "none")},
		{"@media (min-width: 600px)", Style{
			{"padding", 8},
			{"&:focus", S("outline", "none")},
		}},
		{"@keyframes spin", S("from", "x")},
	})
	c := "." + class

	want := []string{
		c + "{color:blue;}",
		c + ":hover{color:red;}",
		c + " > span," + c + " + p{margin:4px;}",
		c + " a{text-decoration:none;}",
		"@media (min-width: 600px){" + c + "{padding:8px;}}",
		"@media (min-width: 600px){" + c + ":focus{outline:none;}}",
	}
	var got []string
	for _, r := range s.Rules() {
		assert.Equal(t, class, r.Class)
		got = append(got, r.CSS)
	}
	assert.Equal(t, want, got)
}

func TestSplitSelectorList(t *testing.T) {
	assert.Equal(t, []string{"&:is(a, b)", "&[data-x=\"1,2\"]"}, splitSelectorList(`&:is(a, b), &[data-x="1,2"]`))
	assert.Equal(t, []string{"a"}, splitSelectorList(" a , "))
}

func TestComposeOrder(t *testing.T) {
	s := New()
	base := s.Compile(S("color", "black", "padding", 4))
	over := s.Compile(S("color", "red"))

	composed := s.Compose(base, over)
	merged, ok := s.Registered(composed)
	require.True(t, ok)
	assert.Equal(t, S("color", "black", "padding", 4, "color", "red"), merged)
	assert.Contains(t, s.CSS(), "."+composed+"{color:black;padding:4px;color:red;}")

	swapped := s.Compose(over, base)
	assert.NotEqual(t, composed, swapped)
}

func TestComposeRawAndEmpty(t *testing.T) {
	s := New()
	base := s.Compile(S("color", "black"))

	assert.Equal(t, "", s.Compose())
	assert.Equal(t, "", s.Compose("", " "))
	assert.Equal(t, "a b", s.Compose("", "a", "", "b"))

	got := strings.Fields(s.Compose(base, "user-class", "", "other"))
	require.Len(t, got, 3)
	assert.Equal(t, []string{"user-class", "other"}, got[:2])
	_, ok := s.Registered(got[2])
	assert.True(t, ok)
}

func TestComposeSingleIsStable(t *testing.T) {
	s := New()
	base := s.Compile(S("color", "black"))
	assert.Equal(t, base, s.Compose(base, ""))
}

func TestRulesForAndCritical(t *testing.T) {
	s := New()
	a := s.Compile(S("color", "red"))
	b := s.Compile(S("color", "blue"))

	rules := s.RulesFor(b)
	require.Len(t, rules, 1)
	assert.Equal(t, b, rules[0].Class)

	html := `<div class="x ` + a + `">hi</div>`
	assert.Equal(t, "."+a+"{color:red;}", s.CriticalCSS(html))
	assert.Equal(t, "", s.CriticalCSS(`<div class="`+a+`x"></div>`))
}

func TestWriteToAndFlush(t *testing.T) {
	s := New()
	s.Compile(S("color", "red"))

	var buf bytes.Buffer
	n, err := s.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)
	assert.Equal(t, s.CSS(), buf.String())

	s.Flush()
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.CSS())
	assert.Empty(t, s.Classes())
}

func TestKeyframes(t *testing.T) {
	s := New()
	frames := S("from", S("opacity", 0), "50%", S("opacity", 0.5, "transform", "scale(1.1)"), "to", S("opacity", 1))

	name := s.Keyframes(frames)
	assert.True(t, strings.HasPrefix(name, "animation-"))
	assert.Equal(t, name, s.Keyframes(S("from", S("opacity", 0), "50%", S("opacity", 0.5, "transform", "scale(1.1)"), "to", S("opacity", 1))))
	assert.Equal(t, "", s.Keyframes(nil))

	rules := s.Rules()
	require.Len(t, rules, 1)
	assert.True(t, rules[0].Global)
	assert.Equal(t, "@keyframes "+name+"{from{opacity:0;}50%{opacity:0.5;transform:scale(1.1);}to{opacity:1;}}", rules[0].CSS)

	class := s.Compile(S("animation", name+" 1s linear infinite"))
	assert.Equal(t, []string{class}, s.Classes())
	assert.Equal(t, 1, s.Len())
}

func TestGlobal(t *testing.T) {
	s := New()
	s.Global(S(
		"margin", 0,
		"body, html", S("margin", 0, "a", S("color", "inherit")),
		"@font-face", S("fontFamily", "Inter", "fontWeight", 400, "src", "url(/inter.woff2)"),
		"@keyframes pulse", S("to", S("opacity", 0.5)),
		"@media (max-width: 600px)", S("body", S("fontSize", 14)),
		"@charset", S("x", "y"),
	))
	s.Global(S("body, html", S("margin", 0, "a", S("color", "inherit"))))

	assert.Equal(t, []string{
		"body,html{margin:0;}",
		"body a,html a{color:inherit;}",
		"@font-face{font-family:Inter;font-weight:400;src:url(/inter.woff2);}",
		"@keyframes pulse{to{opacity:0.5;}}",
		"@media (max-width: 600px){body{font-size:14px;}}",
		"body,html{margin:0;}",
		"body a,html a{color:inherit;}",
	}, cssOf(s.Rules()))
	assert.Empty(t, s.Classes())

	before := len(s.Rules())
	s.Global(S("body, html", S("margin", 0, "a", S("color", "inherit"))))
	assert.Len(t, s.Rules(), before, "equal global blocks register once")
}

func TestCriticalIncludesGlobals(t *testing.T) {
	s := New()
	spin := s.Keyframes(S("to", S("transform", "rotate(360deg)")))
	used := s.Compile(S("animation", spin+" 1s"))
	s.Compile(S("color", "red"))
	s.Global(S("body", S("margin", 0)))

	css := s.CriticalCSS(`<div class="` + used + `"></div>`)
	assert.Contains(t, css, "@keyframes "+spin)
	assert.Contains(t, css, "."+used+"{animation:"+spin+" 1s;}")
	assert.Contains(t, css, "body{margin:0;}")
	assert.NotContains(t, css, "color:red")

	s.Flush()
	assert.Empty(t, s.CSS())
	assert.NotEmpty(t, s.Keyframes(S("to", S("transform", "rotate(360deg)"))), "flushed keyframes can be registered again")
	assert.Len(t, s.Rules(), 1)
}

func cssOf(rules []Rule) []string {
	out := make([]string, len(rules))
	for i, r := range rules {
		out[i] = r.CSS
	}
	return out
}

func TestConcurrentCompile(t *testing.T) {
	s := New()
	var wg sync.WaitGroup
	classes := make([]string, 16)
	for i := range classes {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			classes[i] = s.Compile(S("margin", 1, "&:hover", S("margin", 2)))
		}(i)
	}
	wg.Wait()
	for _, c := range classes {
		assert.Equal(t, classes[0], c)
	}
	assert.Len(t, s.Rules(), 2)
}

func TestFromProps(t *testing.T) {
	p := props.Of(
		"width", 100,
		"color", "red",
		"hidden", true,
		"onClick", props.Opaque(func() {}),
		"&:hover", S("color", "blue"),
	)
	want := Style{
		{"width", float64(100)},
		{"color", "red"},
		{"&:hover", S("color", "blue")},
	}
	if diff := cmp.Diff(want, FromProps(p)); diff != "" {
		t.Errorf("FromProps mismatch (-want +got):\n%s", diff)
	}
}

func TestParseDeclarations(t *testing.T) {
	style, err := ParseDeclarations("color: red; padding: 4px  8px ; --gap:2px; margin: 0 !important")
	require.NoError(t, err)
	require.Len(t, style, 4)
	assert.Equal(t, Decl{"color", "red"}, style[0])
	assert.Equal(t, Decl{"padding", "4px 8px"}, style[1])
	assert.Equal(t, "--gap", style[2].Property)
	assert.Equal(t, "margin", style[3].Property)

	s := New()
	class := s.Compile(style[:2])
	assert.Equal(t, "."+class+"{color:red;padding:4px 8px;}", s.CSS())
}

func TestParseDeclarationsEmpty(t *testing.T) {
	style, err := ParseDeclarations("")
	require.NoError(t, err)
	assert.Empty(t, style)
}

func TestSnapshotHydrate(t *testing.T) {
	enc, err := encoding.NewEncoder([]byte("snapshot-key"))
	require.NoError(t, err)

	src := New()
	a := src.Compile(S("width", 100, "label", "Box"))
	b := src.Compile(Style{{"color", "red"}, {"&:hover", S("color", "blue")}, {"display", []string{"-webkit-box", "flex"}}})

	for _, mode := range []encoding.Mode{encoding.Signed, encoding.Sealed} {
		t.Run(mode.String(), func(t *testing.T) {
			data, err := src.Snapshot(enc, mode)
			require.NoError(t, err)

			dst := New()
			n, err := dst.Hydrate(enc, mode, data)
			require.NoError(t, err)
			assert.Equal(t, 2, n)
			assert.Equal(t, []string{a, b}, dst.Classes())
			assert.Equal(t, src.CSS(), dst.CSS())

			n, err = dst.Hydrate(enc, mode, data)
			require.NoError(t, err)
			assert.Equal(t, 0, n)
		})
	}
}

func TestSnapshotKeepsGlobalsInOrder(t *testing.T) {
	enc, err := encoding.NewEncoder([]byte("snapshot-key"))
	require.NoError(t, err)

	src := New()
	src.Global(S("body", S("margin", 0)))
	spin := src.Keyframes(S("to", S("transform", "rotate(360deg)")))
	class := src.Compile(S("animation", spin+" 2s"))

	data, err := src.Snapshot(enc, encoding.Sealed)
	require.NoError(t, err)

	dst := New()
	n, err := dst.Hydrate(enc, encoding.Sealed, data)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, []string{class}, dst.Classes())
	assert.Equal(t, src.CSS(), dst.CSS())

	n, err = dst.Hydrate(enc, encoding.Sealed, data)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestHydrateKeyMismatch(t *testing.T) {
	enc, err := encoding.NewEncoder([]byte("snapshot-key"))
	require.NoError(t, err)

	src := New(WithKey("a"))
	src.Compile(S("color", "red"))
	data, err := src.Snapshot(enc, encoding.Signed)
	require.NoError(t, err)

	_, err = New(WithKey("b")).Hydrate(enc, encoding.Signed, data)
	assert.ErrorIs(t, err, ErrSnapshot)
}
