// Package tables holds the static lookup data that drives prop routing:
// the style and pseudo shorthand vocabularies, the attribute vocabulary and
// the per-element attribute rules.
//
// Tables are loaded once from embedded YAML and never mutated. Loading
// checks the cross-table invariants (style and pseudo sets are disjoint, no
// name is both disallowed and context-allowed, group references resolve);
// Default panics if the embedded data breaks any of them.
package tables

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"strings"
	"sync"

	"go.uber.org/multierr"
	yaml "gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var dataFS embed.FS

// ErrConflict marks an inconsistency between tables.
var ErrConflict = errors.New("tables: conflicting classification")

// Class is the routing class of a prop name.
type Class uint8

const (
	ClassPassthrough Class = iota
	ClassStyle
	ClassPseudo
)

func (c Class) String() string {
	switch c {
	case ClassStyle:
		return "style"
	case ClassPseudo:
		return "pseudo"
	}
	return "passthrough"
}

// Tables is the loaded, validated set of lookup tables.
type Tables struct {
	style        map[string]struct{}
	styleOrder   []string
	pseudo       map[string]string
	pseudoOrder  []string
	pseudoProp   string
	unitless     map[string]struct{}
	known        map[string]struct{}
	knownLower   map[string]struct{}
	disallow     map[string]struct{}
	interaction  map[string]struct{}
	context      map[string]map[string]struct{}
	svgOnly      map[string]struct{}
	svgElements  map[string]struct{}
	rename       map[string]string
	kebab        map[string]struct{}
	unrendered   map[string]struct{}
	voidElements map[string]struct{}
}

type pseudoFile struct {
	ValueProperty string    `yaml:"value_property"`
	Selectors     yaml.Node `yaml:"selectors"`
}

type attributesFile struct {
	Known            []string            `yaml:"known"`
	Disallow         []string            `yaml:"disallow"`
	InteractionState []string            `yaml:"interaction_state"`
	Groups           map[string][]string `yaml:"groups"`
	Context          map[string][]string `yaml:"context"`
	SVGOnly          []string            `yaml:"svg_only"`
	Rename           map[string]string   `yaml:"rename"`
	Kebab            []string            `yaml:"kebab"`
	Unrendered       []string            `yaml:"unrendered"`
	VoidElements     []string            `yaml:"void_elements"`
}

var (
	defaultOnce   sync.Once
	defaultTables *Tables
)

// Default returns the tables built from the embedded data. The first call
// loads them; a broken embedded table is a build defect and panics.
func Default() *Tables {
	defaultOnce.Do(func() {
		t, err := Load(dataFS)
		if err != nil {
			panic(fmt.Sprintf("tables: embedded data is inconsistent: %v", err))
		}
		defaultTables = t
	})
	return defaultTables
}

// Load reads css_props.yaml, pseudo_props.yaml, unitless.yaml and
// attributes.yaml from fsys (under data/) and validates them. Every
// inconsistency found is reported, not just the first.
func Load(fsys fs.FS) (*Tables, error) {
	t := &Tables{}
	var errs error

	var cssGroups yaml.Node
	if err := decode(fsys, "data/css_props.yaml", &cssGroups); err != nil {
		return nil, err
	}
	styleNames, err := groupedNames(&cssGroups)
	if err != nil {
		return nil, fmt.Errorf("css_props.yaml: %w", err)
	}
	t.style, t.styleOrder, err = toSet("style prop", styleNames)
	errs = multierr.Append(errs, err)

	var pf pseudoFile
	if err := decode(fsys, "data/pseudo_props.yaml", &pf); err != nil {
		return nil, err
	}
	t.pseudoProp = pf.ValueProperty
	if t.pseudoProp == "" {
		errs = multierr.Append(errs, errors.New("pseudo_props.yaml: value_property is empty"))
	}
	t.pseudo, t.pseudoOrder, err = orderedStrings(&pf.Selectors)
	if err != nil {
		return nil, fmt.Errorf("pseudo_props.yaml: %w", err)
	}
	for _, name := range t.pseudoOrder {
		if strings.TrimSpace(t.pseudo[name]) == "" {
			errs = multierr.Append(errs, fmt.Errorf("pseudo prop %q has an empty selector", name))
		}
	}

	var unitless []string
	if err := decode(fsys, "data/unitless.yaml", &unitless); err != nil {
		return nil, err
	}
	t.unitless, _, err = toSet("unitless property", unitless)
	errs = multierr.Append(errs, err)

	var af attributesFile
	if err := decode(fsys, "data/attributes.yaml", &af); err != nil {
		return nil, err
	}
	t.known = looseSet(af.Known)
	t.knownLower = make(map[string]struct{}, len(t.known))
	for name := range t.known {
		t.knownLower[strings.ToLower(name)] = struct{}{}
	}
	t.disallow = looseSet(af.Disallow)
	t.interaction = looseSet(af.InteractionState)
	t.svgOnly = looseSet(af.SVGOnly)
	t.kebab = looseSet(af.Kebab)
	t.unrendered = looseSet(af.Unrendered)
	t.voidElements = looseSet(af.VoidElements)
	t.rename = af.Rename

	svgGroup, ok := af.Groups["svg"]
	if !ok {
		errs = multierr.Append(errs, errors.New(`attributes.yaml: missing element group "svg"`))
	}
	t.svgElements = looseSet(svgGroup)

	t.context = make(map[string]map[string]struct{}, len(af.Context))
	for name, allowed := range af.Context {
		set := make(map[string]struct{})
		for _, el := range allowed {
			if group, ok := strings.CutPrefix(el, "@"); ok {
				members, found := af.Groups[group]
				if !found {
					errs = multierr.Append(errs, fmt.Errorf("context attribute %q references unknown group %q", name, group))
					continue
				}
				for _, m := range members {
					set[m] = struct{}{}
				}
				continue
			}
			set[el] = struct{}{}
		}
		t.context[name] = set
	}

	errs = multierr.Append(errs, t.check())
	if errs != nil {
		return nil, errs
	}
	return t, nil
}

// check verifies the cross-table invariants.
func (t *Tables) check() error {
	var errs error
	for _, name := range t.styleOrder {
		if _, ok := t.pseudo[name]; ok {
			errs = multierr.Append(errs, fmt.Errorf("%w: %q is both a style and a pseudo prop", ErrConflict, name))
		}
	}
	for name := range t.disallow {
		if _, ok := t.context[name]; ok {
			errs = multierr.Append(errs, fmt.Errorf("%w: %q is both disallowed and context-allowed", ErrConflict, name))
		}
		if _, ok := t.interaction[name]; ok {
			errs = multierr.Append(errs, fmt.Errorf("%w: %q is listed as disallowed and as an interaction flag", ErrConflict, name))
		}
	}
	for name := range t.interaction {
		if _, ok := t.context[name]; ok {
			errs = multierr.Append(errs, fmt.Errorf("%w: %q is both an interaction flag and context-allowed", ErrConflict, name))
		}
	}
	return errs
}

func decode(fsys fs.FS, name string, v any) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", name, err)
	}
	return nil
}

// groupedNames flattens a mapping of group -> []name, keeping file order.
func groupedNames(n *yaml.Node) ([]string, error) {
	if n.Kind == yaml.DocumentNode && len(n.Content) == 1 {
		n = n.Content[0]
	}
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("expected a mapping of groups at line %d", n.Line)
	}
	var names []string
	for i := 1; i < len(n.Content); i += 2 {
		var group []string
		if err := n.Content[i].Decode(&group); err != nil {
			return nil, fmt.Errorf("group %q: %w", n.Content[i-1].Value, err)
		}
		names = append(names, group...)
	}
	return names, nil
}

// orderedStrings decodes a string -> string mapping, keeping file order.
func orderedStrings(n *yaml.Node) (map[string]string, []string, error) {
	if n.Kind != yaml.MappingNode {
		return nil, nil, fmt.Errorf("expected a mapping at line %d", n.Line)
	}
	m := make(map[string]string, len(n.Content)/2)
	order := make([]string, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i].Value, n.Content[i+1].Value
		if _, dup := m[k]; dup {
			return nil, nil, fmt.Errorf("duplicate key %q at line %d", k, n.Content[i].Line)
		}
		m[k] = v
		order = append(order, k)
	}
	return m, order, nil
}

// toSet builds a set and reports duplicates, which would hide authoring
// mistakes in the group files.
func toSet(what string, names []string) (map[string]struct{}, []string, error) {
	set := make(map[string]struct{}, len(names))
	order := make([]string, 0, len(names))
	var errs error
	for _, n := range names {
		if _, dup := set[n]; dup {
			errs = multierr.Append(errs, fmt.Errorf("duplicate %s %q", what, n))
			continue
		}
		set[n] = struct{}{}
		order = append(order, n)
	}
	return set, order, errs
}

func looseSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}

func has(set map[string]struct{}, name string) bool {
	_, ok := set[name]
	return ok
}

// Classify returns the routing class of a prop name.
func (t *Tables) Classify(name string) Class {
	if has(t.style, name) {
		return ClassStyle
	}
	if _, ok := t.pseudo[name]; ok {
		return ClassPseudo
	}
	return ClassPassthrough
}

// PseudoSelector returns the selector template of a pseudo prop.
func (t *Tables) PseudoSelector(name string) (string, bool) {
	sel, ok := t.pseudo[name]
	return sel, ok
}

// PseudoValueProperty is the CSS property a primitive pseudo prop value
// is applied to.
func (t *Tables) PseudoValueProperty() string { return t.pseudoProp }

// StyleProps returns the style shorthand names in table order.
func (t *Tables) StyleProps() []string { return slices.Clone(t.styleOrder) }

// PseudoProps returns the pseudo shorthand names in table order.
func (t *Tables) PseudoProps() []string { return slices.Clone(t.pseudoOrder) }

// IsUnitless reports whether numeric values of the CSS property (camelCase)
// are written without a unit.
func (t *Tables) IsUnitless(property string) bool { return has(t.unitless, property) }

// IsKnownAttribute reports whether name is in the attribute vocabulary as
// written. Matching is case-sensitive.
func (t *Tables) IsKnownAttribute(name string) bool { return has(t.known, name) }

// IsLowercaseSpelling reports whether name is the all-lowercase spelling
// of a camelCase vocabulary entry (tabindex for tabIndex).
func (t *Tables) IsLowercaseSpelling(name string) bool {
	return !has(t.known, name) && has(t.knownLower, name)
}

// IsSVGElement reports whether element belongs to the graphics vocabulary.
func (t *Tables) IsSVGElement(element string) bool { return has(t.svgElements, element) }

// IsVoidElement reports whether element has no closing tag.
func (t *Tables) IsVoidElement(element string) bool { return has(t.voidElements, element) }

// Rejection names the rule that keeps an attribute off an element.
type Rejection uint8

const (
	Accepted Rejection = iota
	RejectContext
	RejectInteraction
	RejectDisallowed
	RejectSVGOnly
)

func (r Rejection) String() string {
	switch r {
	case RejectContext:
		return "not valid for this element"
	case RejectInteraction:
		return "interaction-state flag"
	case RejectDisallowed:
		return "disallowed"
	case RejectSVGOnly:
		return "svg-only attribute"
	}
	return "accepted"
}

// CheckElement applies the element rules in precedence order: context
// allow-sets, interaction flags, the disallow list, then svg-only names.
// The generic vocabulary check is not part of it.
func (t *Tables) CheckElement(name, element string) Rejection {
	if allowed, ok := t.context[name]; ok && !has(allowed, element) {
		return RejectContext
	}
	if has(t.interaction, name) {
		return RejectInteraction
	}
	if has(t.disallow, name) {
		return RejectDisallowed
	}
	if has(t.svgOnly, name) && !t.IsSVGElement(element) {
		return RejectSVGOnly
	}
	return Accepted
}

// IsValidForElement reports whether the element rules accept name on
// element.
func (t *Tables) IsValidForElement(name, element string) bool {
	return t.CheckElement(name, element) == Accepted
}

// ContextElements returns the allow-set of a context-conditional name.
func (t *Tables) ContextElements(name string) ([]string, bool) {
	set, ok := t.context[name]
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(set))
	for el := range set {
		out = append(out, el)
	}
	slices.Sort(out)
	return out, true
}

// MarkupName returns the attribute spelling of a prop name on element.
func (t *Tables) MarkupName(name, element string) string {
	if r, ok := t.rename[name]; ok {
		return r
	}
	if has(t.kebab, name) {
		return Hyphenate(name)
	}
	if t.IsSVGElement(element) || strings.ContainsRune(name, '-') {
		return name
	}
	return strings.ToLower(name)
}

// IsUnrendered reports whether a prop is consumed by the runtime and never
// written as an attribute.
func (t *Tables) IsUnrendered(name string) bool { return has(t.unrendered, name) }

// Hyphenate converts a camelCase name to kebab-case. Vendor prefixes gain
// a leading dash (WebkitTransition, msTransition) and custom properties
// ("--gutter") are returned unchanged.
func Hyphenate(name string) string {
	if strings.HasPrefix(name, "--") {
		return name
	}
	var b strings.Builder
	b.Grow(len(name) + 4)
	if strings.HasPrefix(name, "ms") {
		b.WriteByte('-')
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c >= 'A' && c <= 'Z' {
			b.WriteByte('-')
			b.WriteByte(c + ('a' - 'A'))
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}
