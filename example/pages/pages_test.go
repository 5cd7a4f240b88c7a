package pages

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm/hxstyle"
	"github.com/pthm/hxstyle/lib/sheet"
)

func render(t *testing.T, name string) string {
	t.Helper()
	page, ok := Lookup(name)
	require.True(t, ok, name)
	html, err := hxstyle.RenderString(context.Background(), page.Body())
	require.NoError(t, err)
	return html
}

func TestIndex(t *testing.T) {
	html := render(t, "index")

	result := &hxstyle.TestResult{HTML: html}
	tag, _, ok := result.Root()
	require.True(t, ok)
	assert.Equal(t, "div", tag)
	assert.Contains(t, html, ">Hello</h2></div>")
	assert.NotContains(t, html, "<h1")
	assert.NotContains(t, html, "margin=")

	start := strings.Index(html, `<h2 class="`) + len(`<h2 class="`)
	require.Greater(t, start, len(`<h2 class="`)-1)
	class := html[start : start+strings.IndexByte(html[start:], '"')]

	style, ok := hxstyle.DefaultSheet().Registered(class)
	require.True(t, ok, class)
	assert.Equal(t, sheet.Decl{Property: "margin", Value: float64(20)}, style[len(style)-1])
	assert.Equal(t, "background", style[0].Property)
}

func TestSpeedBuild(t *testing.T) {
	html := render(t, "speed-build")

	assert.Contains(t, html, ">SUBSCRIBE</div>")
	assert.Contains(t, html, "<strong>dingo music</strong>")
	assert.Contains(t, html, "<br>")
	assert.Equal(t, 10, strings.Count(html, "1.2M views"))
	assert.NotContains(t, html, "size=", "size is not a div attribute")
	assert.NotContains(t, html, "opacity=")

	css := hxstyle.DefaultSheet().CSS()
	for _, want := range []string{
		"@media (min-width: 768px){." + AppBody.BaseClass() + "{grid-template-columns:1fr 300px;gap:32px;}}",
		"." + Container.BaseClass() + "{--gutter:20px;max-width:1080px;",
		"." + Debugger.BaseClass() + " *{outline:1px solid rgba(255,0,0,0.1);}",
		"border-radius:99999px;",
		"opacity:0.6;",
		"animation:animation-",
		"body{margin:0;font-family:system-ui, sans-serif;}",
		"*,*::before,*::after{box-sizing:border-box;}",
	} {
		assert.Contains(t, css, want)
	}
}

func TestLookup(t *testing.T) {
	for _, p := range All() {
		got, ok := Lookup(p.Name)
		assert.True(t, ok)
		assert.Equal(t, p.Title, got.Title)
	}
	_, ok := Lookup("missing")
	assert.False(t, ok)
}

func TestRegisterStyled(t *testing.T) {
	reg := hxstyle.NewRegistry(hxstyle.DefaultSheet(), nil)
	RegisterStyled(reg)

	assert.Len(t, reg.Names(), 12)
	c, ok := reg.Get("Styled(Header)")
	require.True(t, ok)
	assert.Same(t, Header, c)

	result := hxstyle.TestGet(reg.Handler(), "/preview/Styled(Text)?children=hi&opacity=0.5")
	require.True(t, result.IsOK())
	assert.True(t, result.HTMLContainsAll(">hi</div>", "opacity:0.5;"))
}
