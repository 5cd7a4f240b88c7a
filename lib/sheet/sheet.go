// Package sheet is the default style compiler: it turns style objects into
// stable class names, keeps the generated CSS rules in insertion order and
// composes classes the way the cascade expects.
//
// Class names have the form <key>-<hash>[-<label>], where hash is derived
// from the serialised style, so equal style objects share a class and a
// single set of rules.
package sheet

import (
	"io"
	"slices"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/pthm/hxstyle/lib/tables"
)

// DefaultKey prefixes generated class names.
const DefaultKey = "css"

// Rule is one generated CSS rule and the class it belongs to. Global rules
// carry the animation name or global block id instead of a class and are
// not scoped to any element.
type Rule struct {
	Class  string
	CSS    string
	Global bool
}

type entryKind uint8

const (
	kindClass entryKind = iota
	kindKeyframes
	kindGlobal
)

type globalEntry struct {
	kind  entryKind
	style Style
}

// Sheet compiles styles and stores the resulting rules. It is safe for
// concurrent use.
type Sheet struct {
	key    string
	tables *tables.Tables
	log    *zap.Logger

	mu         sync.RWMutex
	registered map[string]Style
	globals    map[string]globalEntry
	order      []string // classes and global ids
	rules      []Rule
}

// Option configures a Sheet.
type Option func(*Sheet)

// WithKey sets the class name prefix.
func WithKey(key string) Option {
	return func(s *Sheet) {
		if key != "" {
			s.key = key
		}
	}
}

// WithTables sets the tables used for unitless properties.
func WithTables(t *tables.Tables) Option {
	return func(s *Sheet) {
		if t != nil {
			s.tables = t
		}
	}
}

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) Option {
	return func(s *Sheet) {
		if log != nil {
			s.log = log
		}
	}
}

// New creates an empty sheet.
func New(opts ...Option) *Sheet {
	s := &Sheet{
		key:        DefaultKey,
		log:        zap.NewNop(),
		registered: make(map[string]Style),
		globals:    make(map[string]globalEntry),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.tables == nil {
		s.tables = tables.Default()
	}
	s.log = s.log.Named("sheet")
	return s
}

// Key returns the class name prefix.
func (s *Sheet) Key() string { return s.key }

// Compile registers a style object and returns its class name. An empty
// style compiles to the empty string.
func (s *Sheet) Compile(style Style) string {
	if len(style) == 0 {
		return ""
	}
	class := s.key + "-" + hash(canonical(s.tables, style))
	if l := labels(style); l != "" {
		class += "-" + l
	}

	s.mu.RLock()
	_, ok := s.registered[class]
	s.mu.RUnlock()
	if ok {
		return class
	}

	css := serialize(s.tables, "."+class, style)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.registered[class]; ok {
		return class
	}
	s.registered[class] = style
	s.order = append(s.order, class)
	for _, r := range css {
		s.rules = append(s.rules, Rule{Class: class, CSS: r})
	}
	s.log.Debug("Compiled style", zap.String("class", class), zap.Int("rules", len(css)))
	return class
}

// Keyframes registers an @keyframes rule and returns its animation name,
// for use in animation or animationName declarations. frames maps stops
// ("from", "50%", "to") to the declarations at that stop.
//
//	spin := s.Keyframes(sheet.S("from", sheet.S("transform", "rotate(0deg)"), "to", sheet.S("transform", "rotate(360deg)")))
//	s.Compile(sheet.S("animation", spin+" 1s linear infinite"))
func (s *Sheet) Keyframes(frames Style) string {
	if len(frames) == 0 {
		return ""
	}
	name := "animation-" + hash(canonical(s.tables, frames))
	s.addGlobal(name, kindKeyframes, frames, []string{serializeKeyframes(s.tables, name, frames)})
	return name
}

// Global registers rules that are not scoped to a class. Top-level keys
// are selectors, @font-face, "@keyframes <name>" or conditional at-rules
// wrapping more of the same; top-level declarations are ignored.
//
//	s.Global(sheet.S("body", sheet.S("margin", 0), "@font-face", sheet.S("fontFamily", "Inter", "src", "url(/inter.woff2)")))
func (s *Sheet) Global(style Style) {
	if len(style) == 0 {
		return
	}
	s.addGlobal(globalID(s.tables, style), kindGlobal, style, serializeGlobal(s.tables, style))
}

func globalID(t *tables.Tables, style Style) string {
	return "global-" + hash(canonical(t, style))
}

func (s *Sheet) addGlobal(id string, kind entryKind, style Style, css []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.globals[id]; ok {
		return
	}
	s.globals[id] = globalEntry{kind: kind, style: style}
	s.order = append(s.order, id)
	for _, r := range css {
		s.rules = append(s.rules, Rule{Class: id, CSS: r, Global: true})
	}
	s.log.Debug("Registered global rules", zap.String("id", id), zap.Int("rules", len(css)))
}

// Compose joins class names into one class list. Classes registered with
// this sheet are merged, in argument order, into a single new class so
// later declarations win; other class names are kept verbatim, ahead of
// the merged class. Empty arguments are ignored and an argument may hold
// several space separated names.
func (s *Sheet) Compose(classes ...string) string {
	var (
		merged     Style
		registered int
		raw        []string
	)
	s.mu.RLock()
	for _, arg := range classes {
		for _, name := range strings.Fields(arg) {
			if style, ok := s.registered[name]; ok {
				merged = append(merged, style...)
				registered++
				continue
			}
			raw = append(raw, name)
		}
	}
	s.mu.RUnlock()

	if registered > 0 {
		if class := s.Compile(merged); class != "" {
			raw = append(raw, class)
		}
	}
	return strings.Join(raw, " ")
}

// Registered returns the style object a class was compiled from.
func (s *Sheet) Registered(class string) (Style, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	style, ok := s.registered[class]
	return style, ok
}

// Len returns the number of registered classes.
func (s *Sheet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.registered)
}

// Classes returns the registered classes in registration order.
func (s *Sheet) Classes() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.registered))
	for _, id := range s.order {
		if _, ok := s.registered[id]; ok {
			out = append(out, id)
		}
	}
	return out
}

// Rules returns all rules in insertion order.
func (s *Sheet) Rules() []Rule {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.rules)
}

// RulesFor returns the rules of the given classes, in insertion order.
// Arguments may hold space separated class lists.
func (s *Sheet) RulesFor(classes ...string) []Rule {
	want := make(map[string]struct{})
	for _, arg := range classes {
		for _, name := range strings.Fields(arg) {
			want[name] = struct{}{}
		}
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Rule
	for _, r := range s.rules {
		if _, ok := want[r.Class]; ok {
			out = append(out, r)
		}
	}
	return out
}

// CSS returns the whole stylesheet.
func (s *Sheet) CSS() string {
	return joinRules(s.Rules())
}

// CriticalCSS returns global rules and the rules whose class appears in
// html, for inlining styles into a server-rendered page.
func (s *Sheet) CriticalCSS(html string) string {
	var used []Rule
	for _, r := range s.Rules() {
		if r.Global || containsClass(html, r.Class) {
			used = append(used, r)
		}
	}
	return joinRules(used)
}

// WriteTo writes the stylesheet to w.
func (s *Sheet) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, s.CSS())
	return int64(n), err
}

// Flush drops every registered class and rule.
func (s *Sheet) Flush() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registered = make(map[string]Style)
	s.globals = make(map[string]globalEntry)
	s.order = nil
	s.rules = nil
}

func joinRules(rules []Rule) string {
	var b strings.Builder
	for _, r := range rules {
		b.WriteString(r.CSS)
	}
	return b.String()
}

// containsClass reports whether class occurs in html as a whole token.
func containsClass(html, class string) bool {
	for i := 0; ; {
		j := strings.Index(html[i:], class)
		if j < 0 {
			return false
		}
		start, end := i+j, i+j+len(class)
		if (start == 0 || isClassBoundary(html[start-1])) && (end == len(html) || isClassBoundary(html[end])) {
			return true
		}
		i = end
	}
}

func isClassBoundary(c byte) bool {
	switch c {
	case ' ', '"', '\'', '\t', '\n', '\r', '=':
		return true
	}
	return false
}
