package sheet

import (
	"slices"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/pthm/hxstyle/lib/tables"
)

// conditionalAtRules may wrap nested blocks. Other at-rules (@font-face,
// @keyframes) cannot be scoped to a class and are ignored inside styles;
// Sheet.Keyframes and Sheet.Global register them.
var conditionalAtRules = []string{"@media", "@supports", "@container", "@layer", "@document"}

func isConditional(key string) bool {
	for _, at := range conditionalAtRules {
		if key == at || strings.HasPrefix(key, at+" ") || strings.HasPrefix(key, at+"(") {
			return true
		}
	}
	return false
}

// serialize turns a style object scoped to selector into CSS rules.
// Declarations of a block form one rule emitted before the block's nested
// rules, in source order.
func serialize(t *tables.Tables, selector string, style Style) []string {
	var out []string
	walk(t, []string{selector}, nil, style, &out)
	return out
}

type child struct {
	key   string
	style Style
}

func walk(t *tables.Tables, selectors, wrappers []string, style Style, out *[]string) {
	var decls strings.Builder
	var children []child
	for _, d := range style {
		if d.Property == "label" {
			continue
		}
		if nested, ok := nestedStyle(d.Value); ok {
			children = append(children, child{key: strings.TrimSpace(d.Property), style: nested})
			continue
		}
		writeDecl(t, &decls, d)
	}
	if decls.Len() > 0 {
		rule := strings.Join(selectors, ",") + "{" + decls.String() + "}"
		*out = append(*out, wrap(wrappers, rule))
	}
	for _, c := range children {
		if strings.HasPrefix(c.key, "@") {
			if !isConditional(c.key) {
				continue
			}
			walk(t, selectors, append(slices.Clone(wrappers), c.key), c.style, out)
			continue
		}
		walk(t, nestSelectors(selectors, c.key), wrappers, c.style, out)
	}
}

// serializeKeyframes renders frames as one @keyframes rule. Nested blocks
// inside a stop are ignored.
func serializeKeyframes(t *tables.Tables, name string, frames Style) string {
	var b strings.Builder
	b.WriteString("@keyframes " + name + "{")
	for _, f := range frames {
		stop, ok := nestedStyle(f.Value)
		if !ok {
			continue
		}
		b.WriteString(strings.TrimSpace(f.Property) + "{")
		writeFlat(t, &b, stop)
		b.WriteString("}")
	}
	b.WriteString("}")
	return b.String()
}

// serializeGlobal renders unscoped rules, in source order.
func serializeGlobal(t *tables.Tables, style Style) []string {
	var out []string
	globalBlocks(t, nil, style, &out)
	return out
}

func globalBlocks(t *tables.Tables, wrappers []string, style Style, out *[]string) {
	for _, d := range style {
		nested, ok := nestedStyle(d.Value)
		if !ok {
			continue
		}
		key := strings.TrimSpace(d.Property)
		switch {
		case isConditional(key):
			globalBlocks(t, append(slices.Clone(wrappers), key), nested, out)
		case key == "@font-face":
			var b strings.Builder
			writeFlat(t, &b, nested)
			if b.Len() > 0 {
				*out = append(*out, wrap(wrappers, "@font-face{"+b.String()+"}"))
			}
		case strings.HasPrefix(key, "@keyframes "):
			name := strings.TrimSpace(strings.TrimPrefix(key, "@keyframes "))
			*out = append(*out, wrap(wrappers, serializeKeyframes(t, name, nested)))
		case strings.HasPrefix(key, "@"):
			continue
		default:
			walk(t, splitSelectorList(key), wrappers, nested, out)
		}
	}
}

// writeFlat writes the plain declarations of style, skipping nested blocks.
func writeFlat(t *tables.Tables, b *strings.Builder, style Style) {
	for _, d := range style {
		if _, nested := nestedStyle(d.Value); nested || d.Property == "label" {
			continue
		}
		writeDecl(t, b, d)
	}
}

func writeDecl(t *tables.Tables, b *strings.Builder, d Decl) {
	name := propertyName(d.Property)
	if fallbacks, ok := d.Value.([]string); ok {
		for _, v := range fallbacks {
			b.WriteString(name + ":" + v + ";")
		}
		return
	}
	v, ok := formatValue(t, d.Property, d.Value)
	if !ok {
		return
	}
	b.WriteString(name)
	b.WriteByte(':')
	b.WriteString(v)
	b.WriteByte(';')
}

func wrap(wrappers []string, rule string) string {
	for i := len(wrappers) - 1; i >= 0; i-- {
		rule = wrappers[i] + "{" + rule + "}"
	}
	return rule
}

// nestSelectors resolves a nested selector key against its parents. "&"
// stands for the parent; keys without it select descendants.
func nestSelectors(parents []string, key string) []string {
	parts := splitSelectorList(key)
	out := make([]string, 0, len(parts)*len(parents))
	for _, part := range parts {
		for _, parent := range parents {
			if strings.Contains(part, "&") {
				out = append(out, strings.ReplaceAll(part, "&", parent))
			} else {
				out = append(out, parent+" "+part)
			}
		}
	}
	return out
}

// splitSelectorList splits on commas outside parentheses, brackets and
// quotes.
func splitSelectorList(s string) []string {
	var parts []string
	depth := 0
	var quote byte
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '(' || c == '[':
			depth++
		case c == ')' || c == ']':
			depth--
		case c == ',' && depth == 0:
			if p := strings.TrimSpace(s[start:i]); p != "" {
				parts = append(parts, p)
			}
			start = i + 1
		}
	}
	if p := strings.TrimSpace(s[start:]); p != "" {
		parts = append(parts, p)
	}
	return parts
}

// canonical renders the style into the string the class id is hashed
// from. Equal style objects always produce the same string.
func canonical(t *tables.Tables, style Style) string {
	var b strings.Builder
	writeCanonical(t, &b, style)
	return b.String()
}

func writeCanonical(t *tables.Tables, b *strings.Builder, style Style) {
	for _, d := range style {
		if nested, ok := nestedStyle(d.Value); ok {
			b.WriteString(strings.TrimSpace(d.Property))
			b.WriteByte('{')
			writeCanonical(t, b, nested)
			b.WriteByte('}')
			continue
		}
		if d.Property == "label" {
			if l, ok := d.Value.(string); ok {
				b.WriteString("label:" + l + ";")
			}
			continue
		}
		writeDecl(t, b, d)
	}
}

// labels collects top-level label entries, which are appended to the class
// id for readability.
func labels(style Style) string {
	var ls []string
	for _, d := range style {
		if d.Property != "label" {
			continue
		}
		if l, ok := d.Value.(string); ok && l != "" {
			ls = append(ls, l)
		}
	}
	return strings.Join(ls, "-")
}

func hash(s string) string {
	return strconv.FormatUint(xxhash.Sum64String(s), 36)
}
