package hxstyle

import (
	"sync"

	"go.uber.org/zap"

	"github.com/pthm/hxstyle/lib/attr"
	"github.com/pthm/hxstyle/lib/props"
	"github.com/pthm/hxstyle/lib/tables"
)

// Router decides which props may be forwarded to a render target as
// attributes.
type Router struct {
	tables *tables.Tables
	oracle *attr.Oracle
	log    *zap.Logger
}

// NewRouter creates a router over t (nil means tables.Default). Dropped
// props are reported to log at debug level.
func NewRouter(t *tables.Tables, log *zap.Logger) *Router {
	if t == nil {
		t = tables.Default()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Router{
		tables: t,
		oracle: attr.New(t),
		log:    log.Named("router"),
	}
}

var defaultRouter = sync.OnceValue(func() *Router { return NewRouter(nil, nil) })

// ForwardProps filters p for target using the default tables.
func ForwardProps(p props.Props, target Target) props.Props {
	return defaultRouter().Forward(p, target)
}

// Forward returns the props of p that are safe to render on target, in
// their original order and with their original values.
//
// Element targets first apply the element rules (context allow-sets,
// interaction flags, the disallow list, svg-only names); any survivor must
// also be a valid attribute name. Custom targets only get the attribute
// name check. Forward never fails and is idempotent.
func (r *Router) Forward(p props.Props, target Target) props.Props {
	out := props.New(p.Len())
	for name, v := range p.All() {
		if target.IsElement() {
			if rej := r.tables.CheckElement(name, target.ElementName()); rej != tables.Accepted {
				r.dropped(name, target, rej.String())
				continue
			}
		}
		if !r.oracle.IsValid(name) {
			r.dropped(name, target, "not an attribute")
			continue
		}
		out.Set(name, v)
	}
	return out
}

func (r *Router) dropped(name string, target Target, reason string) {
	r.log.Debug("Dropped prop",
		zap.String("prop", name),
		zap.String("element", target.Name()),
		zap.String("reason", reason))
}
