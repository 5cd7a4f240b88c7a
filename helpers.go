package hxstyle

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"github.com/a-h/templ"

	"github.com/pthm/hxstyle/lib/sheet"
)

// Render writes a templ component to the HTTP response.
//
// Sets Content-Type to text/html and renders the component using the
// request's context.
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//	    hxstyle.Render(w, r, Box.With("children", "hello"))
//	}
func Render(w http.ResponseWriter, r *http.Request, component templ.Component) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return component.Render(r.Context(), w)
}

// RenderString renders a component to a string.
func RenderString(ctx context.Context, component templ.Component) (string, error) {
	var buf bytes.Buffer
	if err := component.Render(ctx, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Document wraps body in a complete HTML page whose head inlines only the
// rules of s used by body.
//
// The body is rendered first so every class it needs is compiled before
// the critical CSS is extracted.
//
//	hxstyle.Render(w, r, hxstyle.Document(hxstyle.DefaultSheet(), "Home", page))
func Document(s *sheet.Sheet, title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		html, err := RenderString(ctx, body)
		if err != nil {
			return err
		}
		head := "<!DOCTYPE html><html><head><meta charset=\"utf-8\"><title>" +
			templ.EscapeString(title) + "</title>"
		if css := s.CriticalCSS(html); css != "" {
			head += "<style>" + css + "</style>"
		}
		head += "</head><body>"
		if _, err := io.WriteString(w, head); err != nil {
			return err
		}
		if _, err := io.WriteString(w, html); err != nil {
			return err
		}
		_, err = io.WriteString(w, "</body></html>")
		return err
	})
}
