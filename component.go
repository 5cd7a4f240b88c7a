package hxstyle

import (
	"sync"

	"github.com/a-h/templ"
	"go.uber.org/zap"

	"github.com/pthm/hxstyle/lib/props"
	"github.com/pthm/hxstyle/lib/sheet"
	"github.com/pthm/hxstyle/lib/tables"
)

// Reserved prop names consumed by Styled and never forwarded.
const (
	PropAs        = "as"
	PropClassName = "className"
	PropCSS       = "css"
	PropRef       = "ref"
)

var defaultSheet = sync.OnceValue(func() *sheet.Sheet { return sheet.New() })

// DefaultSheet is the sheet styled components compile into unless
// WithCompiler is given.
func DefaultSheet() *sheet.Sheet { return defaultSheet() }

// Keyframes registers an animation in the default sheet and returns its
// name.
func Keyframes(frames sheet.Style) string { return DefaultSheet().Keyframes(frames) }

// Global adds rules that are not scoped to a class to the default sheet.
func Global(style sheet.Style) { DefaultSheet().Global(style) }

// Styled is a component with a static style that routes its render-time
// props into CSS classes and element attributes.
//
// Per render, the reserved props are consumed:
//   - as: element name or Component overriding the base target
//   - className: class list appended after the generated classes
//   - css: ad-hoc style (a sheet.Style or a declaration string) applied last
//   - ref: a *Ref filled with what was rendered
//
// The remaining props are split into style shorthands, pseudo shorthands
// and passthrough props. Passthrough props are filtered by the Router when
// the target is an element. The final class list is composed in cascade
// order: static, style shorthands, pseudo shorthands, className, css.
//
//	Box := hxstyle.New(hxstyle.Element("div"), sheet.S("padding", 20))
//	Box.With("width", 100, "_hover", "red", "children", "hi")
type Styled struct {
	base      Target
	static    sheet.Style
	baseClass string
	name      string

	compiler Compiler
	renderer Renderer
	tables   *tables.Tables
	router   *Router
	log      *zap.Logger
}

// Option configures a Styled component.
type Option func(*Styled)

// WithCompiler sets the style compiler. Defaults to DefaultSheet.
func WithCompiler(c Compiler) Option {
	return func(s *Styled) { s.compiler = c }
}

// WithRenderer sets the renderer. Defaults to an ElementRenderer.
func WithRenderer(r Renderer) Option {
	return func(s *Styled) { s.renderer = r }
}

// WithTables sets the routing tables. Defaults to tables.Default.
func WithTables(t *tables.Tables) Option {
	return func(s *Styled) { s.tables = t }
}

// WithLogger sets the logger used for dropped props and bad css props.
func WithLogger(log *zap.Logger) Option {
	return func(s *Styled) { s.log = log }
}

// WithDisplayName overrides the name inside Styled(...).
func WithDisplayName(name string) Option {
	return func(s *Styled) { s.name = name }
}

// New creates a styled component rendering base. The static style is
// compiled once, here. Panics if base is not a valid Target.
func New(base Target, static sheet.Style, opts ...Option) *Styled {
	if !base.IsValid() {
		panic("hxstyle: New requires an element name or a component")
	}
	s := &Styled{
		base:   base,
		static: static,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.tables == nil {
		s.tables = tables.Default()
	}
	if s.compiler == nil {
		s.compiler = DefaultSheet()
	}
	if s.renderer == nil {
		s.renderer = NewElementRenderer(WithRendererTables(s.tables))
	}
	if s.name == "" {
		s.name = base.Name()
	}
	s.log = s.log.Named("styled").With(zap.String("component", s.DisplayName()))
	s.router = NewRouter(s.tables, s.log)
	s.baseClass = s.compiler.Compile(static)
	return s
}

// DisplayName returns "Styled(<name>)".
func (s *Styled) DisplayName() string { return "Styled(" + s.name + ")" }

// Base returns the default render target.
func (s *Styled) Base() Target { return s.base }

// BaseClass returns the class compiled from the static style.
func (s *Styled) BaseClass() string { return s.baseClass }

// Render returns the component for p. ref, when non-nil, takes precedence
// over a "ref" prop.
func (s *Styled) Render(p props.Props, ref *Ref) templ.Component {
	rest := p.Clone()

	target := s.base
	if v, ok := rest.Get(PropAs); ok {
		rest.Delete(PropAs)
		if t, ok := targetOf(v); ok {
			target = t
		} else {
			s.log.Debug("Ignored as prop", zap.Stringer("value", v))
		}
	}

	var className string
	if v, ok := rest.Get(PropClassName); ok {
		rest.Delete(PropClassName)
		className, _ = v.Text()
	}

	var adHoc string
	if v, ok := rest.Get(PropCSS); ok {
		rest.Delete(PropCSS)
		adHoc = s.compileCSS(v)
	}

	if v, ok := rest.Get(PropRef); ok {
		rest.Delete(PropRef)
		if r, isRef := v.Any().(*Ref); isRef && ref == nil {
			ref = r
		}
	}

	parts := SplitWith(s.tables, rest)
	styleClass, pseudoClass := parts.Compile(s.compiler)

	final := parts.Passthrough
	if target.IsElement() {
		final = s.router.Forward(final, target)
	}

	class := s.compiler.Compose(s.baseClass, styleClass, pseudoClass, className, adHoc)
	if class != "" {
		final.Set(PropClassName, props.String(class))
	}
	return s.renderer.Render(target, final, ref)
}

// With renders the component with props built from alternating names and
// values, as props.Of.
func (s *Styled) With(kv ...any) templ.Component {
	return s.Render(props.Of(kv...), nil)
}

func (s *Styled) compileCSS(v props.Value) string {
	if style, ok := sheet.AsStyle(v); ok {
		return s.compiler.Compile(style)
	}
	text, ok := v.Str()
	if !ok {
		s.log.Debug("Ignored css prop", zap.String("kind", v.Kind().String()))
		return ""
	}
	style, err := sheet.ParseDeclarations(text)
	if err != nil {
		s.log.Debug("Ignored css prop", zap.Error(err))
		return ""
	}
	return s.compiler.Compile(style)
}
