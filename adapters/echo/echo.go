// Package hxstyleecho provides Echo framework integration for hxstyle.
//
// Mount a registry's stylesheet and preview routes onto an Echo instance
// or group:
//
//	e := echo.New()
//	reg := hxstyle.NewRegistry(hxstyle.DefaultSheet(), log)
//	reg.Add(Box, Text)
//	hxstyleecho.Mount(e, reg)
//
// Or mount on a group with middleware:
//
//	g := e.Group("/admin", authMiddleware)
//	hxstyleecho.MountGroup(g, reg)
package hxstyleecho

import (
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/pthm/hxstyle"
	"github.com/pthm/hxstyle/lib/sheet"
)

// Option configures the Mount and MountGroup functions.
type Option func(*options)

type options struct {
	path string
}

// WithPath sets the URL path prefix for registry routes.
// Defaults to "/_hxstyle/".
func WithPath(path string) Option {
	return func(o *options) {
		o.path = path
	}
}

func newOptions(opts []Option) *options {
	o := &options{path: "/_hxstyle/"}
	for _, opt := range opts {
		opt(o)
	}
	if !strings.HasSuffix(o.path, "/") {
		o.path += "/"
	}
	return o
}

// Mount serves reg's routes on an Echo instance.
//
//	GET /_hxstyle/styles.css
//	GET /_hxstyle/preview/{name}
func Mount(e *echo.Echo, reg *hxstyle.Registry, opts ...Option) {
	o := newOptions(opts)
	e.GET(o.path+"*", wrap(reg))
}

// MountGroup serves reg's routes on an Echo group so they share the
// group's middleware.
func MountGroup(g *echo.Group, reg *hxstyle.Registry, opts ...Option) {
	o := newOptions(opts)
	g.GET(o.path+"*", wrap(reg))
}

// wrap hands the wildcard remainder of the route to the registry handler,
// which works wherever the route ends up mounted.
func wrap(reg *hxstyle.Registry) echo.HandlerFunc {
	h := reg.Handler()
	return func(c echo.Context) error {
		r := c.Request()
		r2 := r.Clone(r.Context())
		r2.URL.Path = "/" + c.Param("*")
		r2.URL.RawPath = ""
		h.ServeHTTP(c.Response(), r2)
		return nil
	}
}

// Render writes a templ component to the Echo response.
//
//	func handler(c echo.Context) error {
//	    return hxstyleecho.Render(c, Box.With("children", "hello"))
//	}
func Render(c echo.Context, component templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	return component.Render(c.Request().Context(), c.Response())
}

// RenderDocument writes body wrapped in a complete page that inlines the
// rules of s it uses.
func RenderDocument(c echo.Context, s *sheet.Sheet, title string, body templ.Component) error {
	return Render(c, hxstyle.Document(s, title, body))
}

// ErrorHandler maps hxstyle errors to HTTP status codes and otherwise
// falls back to Echo's default handling.
//
//	e.HTTPErrorHandler = hxstyleecho.ErrorHandler(e)
func ErrorHandler(e *echo.Echo) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if hxstyle.IsNotFound(err) {
			err = echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		e.DefaultHTTPErrorHandler(err, c)
	}
}
