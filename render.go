package hxstyle

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"go.uber.org/zap"

	"github.com/pthm/hxstyle/lib/props"
	"github.com/pthm/hxstyle/lib/sheet"
	"github.com/pthm/hxstyle/lib/tables"
)

// PropChildren holds element content: a string (escaped) or a
// templ.Component. Without it, children passed through the templ context
// are rendered.
const PropChildren = "children"

// ElementRenderer writes element targets as markup and delegates custom
// targets to their Component.
type ElementRenderer struct {
	tables *tables.Tables
	styles *sheet.Sheet
	log    *zap.Logger
}

// RendererOption configures an ElementRenderer.
type RendererOption func(*ElementRenderer)

// WithRendererTables sets the tables used for attribute spelling and void
// elements.
func WithRendererTables(t *tables.Tables) RendererOption {
	return func(r *ElementRenderer) { r.tables = t }
}

// WithStyles makes the renderer emit the rules of each element's classes
// as an inline <style> right before the element.
func WithStyles(s *sheet.Sheet) RendererOption {
	return func(r *ElementRenderer) { r.styles = s }
}

// WithRendererLogger sets the logger.
func WithRendererLogger(log *zap.Logger) RendererOption {
	return func(r *ElementRenderer) { r.log = log }
}

// NewElementRenderer creates a renderer.
func NewElementRenderer(opts ...RendererOption) *ElementRenderer {
	r := &ElementRenderer{}
	for _, opt := range opts {
		opt(r)
	}
	if r.tables == nil {
		r.tables = tables.Default()
	}
	if r.log == nil {
		r.log = zap.NewNop()
	}
	r.log = r.log.Named("render")
	return r
}

// Render implements Renderer.
func (r *ElementRenderer) Render(target Target, p props.Props, ref *Ref) templ.Component {
	if !target.IsElement() {
		if c := target.Component(); c != nil {
			return c.Render(p, ref)
		}
		return templ.NopComponent
	}
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return r.writeElement(ctx, w, target.ElementName(), p, ref)
	})
}

func (r *ElementRenderer) writeElement(ctx context.Context, w io.Writer, tag string, p props.Props, ref *Ref) error {
	class, _ := p.Get(PropClassName)
	classText, _ := class.Text()

	if r.styles != nil && classText != "" {
		if rules := r.styles.RulesFor(classText); len(rules) > 0 {
			var css strings.Builder
			css.WriteString("<style>")
			for _, rule := range rules {
				css.WriteString(rule.CSS)
			}
			css.WriteString("</style>")
			if _, err := io.WriteString(w, css.String()); err != nil {
				return err
			}
		}
	}

	attrs, rendered := r.attributes(tag, p)
	if ref != nil {
		ref.Tag = tag
		ref.Class = classText
		ref.Attrs = rendered
	}

	if _, err := io.WriteString(w, "<"+tag); err != nil {
		return err
	}
	if err := templ.RenderAttributes(ctx, w, attrs); err != nil {
		return err
	}
	if _, err := io.WriteString(w, ">"); err != nil {
		return err
	}
	if r.tables.IsVoidElement(tag) {
		return nil
	}
	if err := renderChildren(ctx, w, p); err != nil {
		return err
	}
	_, err := io.WriteString(w, "</"+tag+">")
	return err
}

// attributes converts p into markup attributes in insertion order, and
// returns the forwarded props that made it into the markup, className
// excluded. Strings and numbers become text, true a bare attribute and
// false omits it, except on aria- and data- names where booleans are
// spelled out.
func (r *ElementRenderer) attributes(tag string, p props.Props) (templ.OrderedAttributes, props.Props) {
	attrs := make(templ.OrderedAttributes, 0, p.Len())
	rendered := props.New(p.Len())
	for name, v := range p.All() {
		if name == PropChildren || r.tables.IsUnrendered(name) {
			continue
		}
		markup := r.tables.MarkupName(name, tag)
		if !safeAttributeName(markup) {
			r.log.Debug("Skipped attribute", zap.String("name", markup))
			continue
		}
		var value any
		if on, isBool := v.Truth(); isBool {
			switch {
			case spelledBool(markup):
				value = strconv.FormatBool(on)
			case !on:
				continue
			default:
				value = true
			}
		} else if text, ok := v.Text(); ok {
			value = text
		} else {
			continue
		}
		attrs = append(attrs, templ.KeyValue[string, any]{Key: markup, Value: value})
		if name != PropClassName {
			rendered.Set(name, v)
		}
	}
	return attrs, rendered
}

// spelledBool reports whether booleans render as "true"/"false" text.
func spelledBool(markup string) bool {
	return strings.HasPrefix(markup, "aria-") || strings.HasPrefix(markup, "data-")
}

func renderChildren(ctx context.Context, w io.Writer, p props.Props) error {
	if v, ok := p.Get(PropChildren); ok {
		if c, isComponent := v.Any().(templ.Component); isComponent {
			return c.Render(ctx, w)
		}
		if text, ok := v.Text(); ok {
			_, err := io.WriteString(w, templ.EscapeString(text))
			return err
		}
		return nil
	}
	children := templ.GetChildren(ctx)
	ctx = templ.ClearChildren(ctx)
	return children.Render(ctx, w)
}

// safeAttributeName rejects names that would break out of the start tag.
func safeAttributeName(name string) bool {
	if name == "" {
		return false
	}
	return !strings.ContainsAny(name, " \t\n\f\r\"'<>/=`")
}
