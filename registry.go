package hxstyle

import (
	"fmt"
	"math"
	"net/http"
	"slices"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"github.com/pthm/hxstyle/lib/props"
	"github.com/pthm/hxstyle/lib/sheet"
)

// Registry holds styled components by display name and serves their
// stylesheet and previews over HTTP.
type Registry struct {
	mu         sync.RWMutex
	mux        *http.ServeMux
	sheet      *sheet.Sheet
	components map[string]*Styled
	log        *zap.Logger

	// OnError is called when a request cannot be served.
	// Customize this to handle errors appropriately for your application.
	OnError func(http.ResponseWriter, *http.Request, error)
}

// NewRegistry creates a registry serving the rules of s (nil means
// DefaultSheet).
func NewRegistry(s *sheet.Sheet, log *zap.Logger) *Registry {
	if s == nil {
		s = DefaultSheet()
	}
	if log == nil {
		log = zap.NewNop()
	}

	reg := &Registry{
		mux:        http.NewServeMux(),
		sheet:      s,
		components: make(map[string]*Styled),
		log:        log.Named("registry"),
	}

	// Default error handler
	reg.OnError = func(w http.ResponseWriter, r *http.Request, err error) {
		if IsNotFound(err) {
			http.Error(w, "Not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Internal error", http.StatusInternalServerError)
	}

	reg.mux.HandleFunc("GET /styles.css", reg.serveStyles)
	reg.mux.HandleFunc("GET /preview/{name}", reg.servePreview)
	return reg
}

// Sheet returns the registry's sheet.
func (reg *Registry) Sheet() *sheet.Sheet { return reg.sheet }

// Add registers components under their display names.
// Panics on a nil component or a name collision.
func (reg *Registry) Add(components ...*Styled) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	for _, c := range components {
		if c == nil {
			panic("hxstyle: cannot register a nil component")
		}
		name := c.DisplayName()
		if _, exists := reg.components[name]; exists {
			panic(fmt.Sprintf("hxstyle: name collision for %q", name))
		}
		reg.components[name] = c
	}
}

// Get returns a registered component.
func (reg *Registry) Get(name string) (*Styled, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	c, ok := reg.components[name]
	return c, ok
}

// Names returns the registered names, sorted.
func (reg *Registry) Names() []string {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	names := make([]string, 0, len(reg.components))
	for name := range reg.components {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Handler returns the HTTP handler. It serves:
//
//	GET /styles.css       the whole stylesheet
//	GET /preview/{name}   a registered component rendered as a page, with
//	                      query parameters as props
//
// Mount it under a prefix with http.StripPrefix:
//
//	http.Handle("/_s/", http.StripPrefix("/_s", reg.Handler()))
func (reg *Registry) Handler() http.Handler {
	return reg.mux
}

func (reg *Registry) serveStyles(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	if _, err := reg.sheet.WriteTo(w); err != nil {
		reg.log.Debug("Failed to write stylesheet", zap.Error(err))
	}
}

func (reg *Registry) servePreview(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	c, ok := reg.Get(name)
	if !ok {
		reg.OnError(w, r, fmt.Errorf("%w: %q", ErrNotFound, name))
		return
	}

	p := PropsFromQuery(r.URL.Query())
	page := Document(reg.sheet, c.DisplayName(), c.Render(p, nil))
	if err := Render(w, r, page); err != nil {
		reg.log.Error("Preview render failed", zap.String("component", name), zap.Error(err))
		reg.OnError(w, r, err)
	}
}

// PropsFromQuery turns query parameters into props, in sorted name order.
// Values that parse as numbers become numbers, "true" and "false" become
// booleans, everything else stays a string. Only the first value of a
// parameter is used.
func PropsFromQuery(q map[string][]string) props.Props {
	names := make([]string, 0, len(q))
	for name := range q {
		names = append(names, name)
	}
	slices.Sort(names)

	p := props.New(len(names))
	for _, name := range names {
		values := q[name]
		if len(values) == 0 {
			continue
		}
		p.Set(name, queryValue(values[0]))
	}
	return p
}

func queryValue(s string) props.Value {
	switch s {
	case "true":
		return props.Bool(true)
	case "false":
		return props.Bool(false)
	}
	if n, err := strconv.ParseFloat(s, 64); err == nil && !math.IsInf(n, 0) && !math.IsNaN(n) {
		return props.Number(n)
	}
	return props.String(s)
}
