// Package pages holds demo pages built only from styled components: a
// styled header and a video page layout.
package pages

//go:generate go run github.com/pthm/hxstyle/cmd/hxstyle generate .

import (
	"github.com/pthm/hxstyle"
	"github.com/pthm/hxstyle/lib/sheet"
)

const fluid = "calc(100vw - calc(var(--gutter, 0) * 2))"

// space converts a spacing step to pixels.
func space(step int) int { return step * 4 }

func init() {
	hxstyle.Global(sheet.S(
		"body", sheet.S("margin", 0, "fontFamily", "system-ui, sans-serif"),
		"*, *::before, *::after", sheet.S("boxSizing", "border-box"),
	))
}

var pulse = hxstyle.Keyframes(sheet.S(
	"0%, 100%", sheet.S("opacity", 1),
	"50%", sheet.S("opacity", 0.4),
))

var Header = hxstyle.New(hxstyle.Element("h1"), sheet.S(
	"background", "rgba(0, 25, 255, 0.1)",
	"color", "#0055ff",
	"textAlign", "center",
	"padding", 20,
	"lineHeight", 1,
), hxstyle.WithDisplayName("Header"))

var (
	Box = hxstyle.New(hxstyle.Element("div"), nil, hxstyle.WithDisplayName("Box"))

	HStack = hxstyle.New(hxstyle.Element("div"), sheet.S(
		"width", "100%",
		"maxWidth", fluid,
		"display", "flex",
		"alignItems", "center",
		"justifyContent", "space-between",
		"gap", 8,
		"overflow", "hidden",
	), hxstyle.WithDisplayName("HStack"))

	VStack = hxstyle.New(hxstyle.Element("div"), sheet.S(
		"width", "100%",
		"maxWidth", fluid,
		"display", "flex",
		"flexDirection", "column",
		"gap", 8,
	), hxstyle.WithDisplayName("VStack"))

	StackItem = hxstyle.New(hxstyle.Element("div"), nil, hxstyle.WithDisplayName("StackItem"))

	Spacer = hxstyle.New(hxstyle.Element("div"), sheet.S("flex", 1), hxstyle.WithDisplayName("Spacer"))

	Text = hxstyle.New(hxstyle.Element("div"), sheet.S(
		"fontSize", 14,
		"lineHeight", 1.5,
	), hxstyle.WithDisplayName("Text"))

	Heading = hxstyle.New(hxstyle.Element("div"), sheet.S(
		"fontSize", 18,
		"lineHeight", 1.2,
	), hxstyle.WithDisplayName("Heading"))

	Container = hxstyle.New(hxstyle.Element("div"), sheet.S(
		"--gutter", "20px",
		"maxWidth", 1080,
		"margin", "auto",
		"width", "100%",
		"padding", "0 var(--gutter)",
	), hxstyle.WithDisplayName("Container"))

	AppBody = hxstyle.New(hxstyle.Element("div"), sheet.S(
		"display", "grid",
		"gap", space(3),
		"@media (min-width: 768px)", sheet.S(
			"gridTemplateColumns", "1fr 300px",
			"gap", space(8),
		),
	), hxstyle.WithDisplayName("AppBody"))

	Debugger = hxstyle.New(hxstyle.Element("div"), sheet.S(
		"outline", "1px solid rgba(255,0,0,0.1)",
		"*", sheet.S("outline", "1px solid rgba(255,0,0,0.1)"),
	), hxstyle.WithDisplayName("Debugger"))

	Placeholder = hxstyle.New(hxstyle.Element("div"), sheet.S(
		"background", "rgba(0,0,0,0.08)",
		"borderRadius", 4,
		"animation", pulse+" 1.5s ease-in-out infinite",
	), hxstyle.WithDisplayName("Placeholder"))
)
