package hxstyle

import (
	"github.com/a-h/templ"

	"github.com/pthm/hxstyle/lib/props"
	"github.com/pthm/hxstyle/lib/sheet"
)

// Compiler turns style objects into class names and composes them.
//
// Compile must return the same class for equal style objects and "" for
// an empty one. Compose must keep argument order, so declarations from
// later classes win, and must ignore empty arguments.
//
// *sheet.Sheet is the default implementation.
type Compiler interface {
	Compile(style sheet.Style) string
	Compose(classes ...string) string
}

// Renderer mounts a target with its final props.
//
// Element targets are written as markup; custom targets delegate to
// their Component. Implementations fill ref, when non-nil, with what was
// actually rendered.
type Renderer interface {
	Render(target Target, p props.Props, ref *Ref) templ.Component
}

// Component is a custom render target. *Styled implements it, so styled
// components can wrap each other.
//
//	type Card struct{}
//
//	func (Card) Render(p props.Props, ref *hxstyle.Ref) templ.Component {
//	    return cardTemplate(p)
//	}
type Component interface {
	Render(p props.Props, ref *Ref) templ.Component
}

// Named is implemented by components that provide a diagnostic name.
type Named interface {
	DisplayName() string
}

// ComponentFunc adapts a function to Component.
type ComponentFunc func(p props.Props, ref *Ref) templ.Component

// Render calls f.
func (f ComponentFunc) Render(p props.Props, ref *Ref) templ.Component {
	return f(p, ref)
}

var (
	_ Compiler  = (*sheet.Sheet)(nil)
	_ Renderer  = (*ElementRenderer)(nil)
	_ Component = (*Styled)(nil)
)
