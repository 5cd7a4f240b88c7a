package hxstyle

import (
	"github.com/pthm/hxstyle/lib/props"
	"github.com/pthm/hxstyle/lib/sheet"
	"github.com/pthm/hxstyle/lib/tables"
)

// Parts is a prop map partitioned by routing class. The three maps share
// no names and together hold every input entry.
type Parts struct {
	Style       props.Props
	Pseudo      props.Props
	Passthrough props.Props

	tables *tables.Tables
}

// Split partitions p using the default tables.
func Split(p props.Props) Parts {
	return SplitWith(tables.Default(), p)
}

// SplitWith partitions p. Only string and number values are eligible for
// style or pseudo compilation; any other value is passed through even
// when its name is a style shorthand, so callers can still hand an
// element a non-primitive attribute of the same name.
func SplitWith(t *tables.Tables, p props.Props) Parts {
	parts := Parts{
		Style:       props.New(0),
		Pseudo:      props.New(0),
		Passthrough: props.New(p.Len()),
		tables:      t,
	}
	for name, v := range p.All() {
		if !v.IsPrimitive() {
			parts.Passthrough.Set(name, v)
			continue
		}
		switch t.Classify(name) {
		case tables.ClassStyle:
			parts.Style.Set(name, v)
		case tables.ClassPseudo:
			parts.Pseudo.Set(name, v)
		default:
			parts.Passthrough.Set(name, v)
		}
	}
	return parts
}

// Compile compiles the style entries as one style object, in insertion
// order, and each pseudo entry as its own single-selector style; the pseudo
// classes are composed in insertion order. Empty groups yield "".
func (parts Parts) Compile(c Compiler) (styleClass, pseudoClass string) {
	t := parts.tables
	if t == nil {
		t = tables.Default()
	}

	if parts.Style.Len() > 0 {
		styleClass = c.Compile(sheet.FromProps(parts.Style))
	}

	if parts.Pseudo.Len() == 0 {
		return styleClass, ""
	}
	classes := make([]string, 0, parts.Pseudo.Len())
	for name, v := range parts.Pseudo.All() {
		sel, _ := t.PseudoSelector(name)
		style := sheet.Style{{
			Property: sel,
			Value:    sheet.Style{{Property: t.PseudoValueProperty(), Value: v.Any()}},
		}}
		classes = append(classes, c.Compile(style))
	}
	return styleClass, c.Compose(classes...)
}
