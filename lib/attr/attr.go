// Package attr answers whether a prop name is a markup attribute name at
// all, independent of the element it ends up on.
package attr

import (
	"regexp"
	"strings"
	"sync"

	"golang.org/x/net/html/atom"

	"github.com/pthm/hxstyle/lib/tables"
)

// customPattern matches names that are valid whatever follows the prefix.
var customPattern = regexp.MustCompile(`^(?:data|aria|x)-.+$`)

// Oracle checks names against an attribute vocabulary.
type Oracle struct {
	tables *tables.Tables
}

// New returns an oracle over the given tables (nil means tables.Default).
func New(t *tables.Tables) *Oracle {
	if t == nil {
		t = tables.Default()
	}
	return &Oracle{tables: t}
}

var std = sync.OnceValue(func() *Oracle { return New(nil) })

// IsValid reports whether name is a valid attribute name using the
// default tables.
func IsValid(name string) bool { return std().IsValid(name) }

// IsValid reports whether name is a valid attribute name. Accepted are
// vocabulary entries, data-*, aria-* and x-* names, camelCase event
// handlers (onClick), and lowercase spellings that the HTML atom table
// knows: vocabulary entries written as markup (tabindex) and event handler
// attributes (onclick). Matching is case-sensitive, so classname is not
// className.
func (o *Oracle) IsValid(name string) bool {
	if name == "" {
		return false
	}
	if o.tables.IsKnownAttribute(name) {
		return true
	}
	if o.tables.IsLowercaseSpelling(name) && atom.Lookup([]byte(name)) != 0 {
		return true
	}
	if customPattern.MatchString(name) {
		return true
	}
	return isEventHandler(name)
}

func isEventHandler(name string) bool {
	if len(name) < 3 || !strings.HasPrefix(name, "on") {
		return false
	}
	if c := name[2]; c >= 'A' && c <= 'Z' {
		return true
	}
	return atom.Lookup([]byte(name)) != 0
}
