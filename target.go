package hxstyle

import (
	"fmt"

	"github.com/pthm/hxstyle/lib/props"
)

// Target is what a styled component renders: a markup element identified
// by name, or a custom Component. The zero Target is invalid.
type Target struct {
	element string
	custom  Component
}

// Element targets the markup element name ("div", "img", "svg").
func Element(name string) Target {
	return Target{element: name}
}

// Custom targets a component.
func Custom(c Component) Target {
	return Target{custom: c}
}

// IsElement reports whether t names a markup element.
func (t Target) IsElement() bool { return t.element != "" }

// IsValid reports whether t was constructed with Element or Custom.
func (t Target) IsValid() bool { return t.element != "" || t.custom != nil }

// ElementName returns the element name, or "" for custom targets.
func (t Target) ElementName() string { return t.element }

// Component returns the custom component, or nil for element targets.
func (t Target) Component() Component { return t.custom }

// Name returns the element name, the component's DisplayName when it has
// one, or "Component".
func (t Target) Name() string {
	switch {
	case t.element != "":
		return t.element
	case t.custom == nil:
		return ""
	}
	if n, ok := t.custom.(Named); ok {
		if name := n.DisplayName(); name != "" {
			return name
		}
	}
	return "Component"
}

func (t Target) String() string {
	if t.IsElement() {
		return t.element
	}
	return fmt.Sprintf("%s(custom)", t.Name())
}

// targetOf interprets an "as" prop value. Strings name elements; opaque
// values may hold a Target or a Component.
func targetOf(v props.Value) (Target, bool) {
	if s, ok := v.Str(); ok {
		if s == "" {
			return Target{}, false
		}
		return Element(s), true
	}
	switch x := v.Any().(type) {
	case Target:
		return x, x.IsValid()
	case Component:
		return Custom(x), true
	}
	return Target{}, false
}

// Ref receives what a renderer actually produced. Pass one to
// Styled.Render, or as the "ref" prop, to inspect the final tag, class
// and forwarded attributes.
type Ref struct {
	Tag   string
	Class string
	Attrs props.Props
}
