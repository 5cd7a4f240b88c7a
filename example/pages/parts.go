package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/pthm/hxstyle"
	"github.com/pthm/hxstyle/lib/props"
	"github.com/pthm/hxstyle/lib/sheet"
)

var plain = hxstyle.NewElementRenderer()

// group renders components one after another.
func group(children ...templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		for _, c := range children {
			if err := c.Render(ctx, w); err != nil {
				return err
			}
		}
		return nil
	})
}

// el renders an unstyled element.
func el(tag string, kv ...any) templ.Component {
	return plain.Render(hxstyle.Element(tag), props.Of(kv...), nil)
}

func text(s string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, templ.EscapeString(s))
		return err
	})
}

// with renders c with defaults overridden by kv.
func with(c *hxstyle.Styled, defaults []any, kv ...any) templ.Component {
	return c.With(append(defaults, kv...)...)
}

func Divider(kv ...any) templ.Component {
	return with(Box, []any{"borderBottom", "1px solid #eee", "height", 0, "width", "100%"}, kv...)
}

// Icon renders a glyph; a nil size leaves the font metrics alone.
func Icon(glyph string, size any) templ.Component {
	return Box.With(
		"css", sheet.S("fontSize", size, "width", size, "height", size, "lineHeight", 1),
		"children", glyph,
	)
}

func AspectRatio(kv ...any) templ.Component {
	return with(Box, []any{
		"width", "100%",
		"height", 0,
		"paddingBottom", "56.25%",
		"backgroundColor", "#eee",
	}, kv...)
}

func Button(label string, kv ...any) templ.Component {
	return with(Box, []any{
		"backgroundColor", "#eee",
		"height", 30,
		"lineHeight", "28px",
		"padding", "0 12px",
		"border", "1px solid #ddd",
		"fontSize", 14,
		"fontWeight", 500,
		"children", label,
	}, kv...)
}

func Avatar(size int, kv ...any) templ.Component {
	return with(Box, []any{
		"width", size,
		"height", size,
		"backgroundColor", "#eee",
		"borderRadius", 99999,
	}, kv...)
}

func Navbar() templ.Component {
	return Box.With(
		"borderBottom", "1px solid #eee",
		"minHeight", 50,
		"display", "flex",
		"alignItems", "center",
		"children", Container.With("children", HStack.With("children", group(
			Text.With("lineHeight", 1, "fontWeight", "bold", "fontSize", 18, "children", "YouTube"),
			Spacer.With(),
		))),
	)
}
