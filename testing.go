package hxstyle

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"sync"

	"github.com/a-h/templ"
	"golang.org/x/net/html"

	"github.com/pthm/hxstyle/lib/props"
	"github.com/pthm/hxstyle/lib/sheet"
)

// TestResult holds the result of rendering a component for testing.
//
// Provides convenience methods for asserting on HTML content, the
// rendered element, headers and status codes.
type TestResult struct {
	HTML       string
	StatusCode int
	Headers    http.Header
	// Ref is filled by the renderer for TestRender results.
	Ref Ref
}

// TestRender renders a component with props and returns testable output.
//
//	result, err := hxstyle.TestRender(Box, props.Of("width", 100))
//	if !result.HasClass(Box.BaseClass()) {
//	    t.Fatal("missing base class")
//	}
func TestRender(c Component, p props.Props) (*TestResult, error) {
	return TestRenderWithContext(context.Background(), c, p)
}

// TestRenderWithContext renders a component with a custom context, for
// example one carrying templ children:
//
//	ctx := templ.WithChildren(context.Background(), child)
//	result, err := hxstyle.TestRenderWithContext(ctx, Box, props.New(0))
func TestRenderWithContext(ctx context.Context, c Component, p props.Props) (*TestResult, error) {
	result := &TestResult{
		StatusCode: http.StatusOK,
		Headers:    make(http.Header),
	}

	var buf bytes.Buffer
	if err := c.Render(p, &result.Ref).Render(ctx, &buf); err != nil {
		return nil, err
	}
	result.HTML = buf.String()
	return result, nil
}

// TestGet performs a GET request against a handler, such as
// Registry.Handler.
//
//	result := hxstyle.TestGet(reg.Handler(), "/styles.css")
func TestGet(h http.Handler, url string) *TestResult {
	req := httptest.NewRequest(http.MethodGet, url, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	return &TestResult{
		HTML:       rec.Body.String(),
		StatusCode: rec.Code,
		Headers:    rec.Header(),
	}
}

// HTMLContains checks if the HTML contains a substring.
func (r *TestResult) HTMLContains(substr string) bool {
	return strings.Contains(r.HTML, substr)
}

// HTMLContainsAll checks if the HTML contains all the given substrings.
func (r *TestResult) HTMLContainsAll(substrs ...string) bool {
	for _, s := range substrs {
		if !strings.Contains(r.HTML, s) {
			return false
		}
	}
	return true
}

// HTMLContainsAny checks if the HTML contains any of the given substrings.
func (r *TestResult) HTMLContainsAny(substrs ...string) bool {
	for _, s := range substrs {
		if strings.Contains(r.HTML, s) {
			return true
		}
	}
	return false
}

// Root returns the tag name and attributes of the first element in the
// HTML, skipping inline <style> blocks.
func (r *TestResult) Root() (tag string, attrs map[string]string, ok bool) {
	z := html.NewTokenizer(strings.NewReader(r.HTML))
	inStyle := false
	for {
		switch z.Next() {
		case html.ErrorToken:
			return "", nil, false
		case html.EndTagToken:
			if name, _ := z.TagName(); string(name) == "style" {
				inStyle = false
			}
		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			if tok.Data == "style" {
				inStyle = true
				continue
			}
			if inStyle {
				continue
			}
			attrs = make(map[string]string, len(tok.Attr))
			for _, a := range tok.Attr {
				attrs[a.Key] = a.Val
			}
			return tok.Data, attrs, true
		}
	}
}

// Attr returns an attribute of the root element.
func (r *TestResult) Attr(name string) (string, bool) {
	_, attrs, ok := r.Root()
	if !ok {
		return "", false
	}
	v, ok := attrs[name]
	return v, ok
}

// Classes returns the class list of the root element.
func (r *TestResult) Classes() []string {
	class, _ := r.Attr("class")
	return strings.Fields(class)
}

// HasClass checks if the root element carries class.
func (r *TestResult) HasClass(class string) bool {
	return slices.Contains(r.Classes(), class)
}

// IsOK checks if the status code is 200.
func (r *TestResult) IsOK() bool {
	return r.StatusCode == http.StatusOK
}

// HasStatus checks if the status code matches.
func (r *TestResult) HasStatus(code int) bool {
	return r.StatusCode == code
}

// HasHeader checks if a header is set with the given value.
func (r *TestResult) HasHeader(key, value string) bool {
	return r.Headers.Get(key) == value
}

// GetHeader returns the value of a header.
func (r *TestResult) GetHeader(key string) string {
	return r.Headers.Get(key)
}

// CompilerCall is one call seen by a RecordingCompiler.
type CompilerCall struct {
	// Op is "compile" or "compose".
	Op      string
	Style   sheet.Style
	Classes []string
	Result  string
}

// RecordingCompiler wraps a Compiler and records every call, for asserting
// on what was compiled and in which order classes were composed.
//
//	rc := hxstyle.NewRecordingCompiler(sheet.New())
//	Box := hxstyle.New(hxstyle.Element("div"), nil, hxstyle.WithCompiler(rc))
type RecordingCompiler struct {
	next Compiler

	mu    sync.Mutex
	calls []CompilerCall
}

// NewRecordingCompiler wraps next (nil means a fresh sheet).
func NewRecordingCompiler(next Compiler) *RecordingCompiler {
	if next == nil {
		next = sheet.New()
	}
	return &RecordingCompiler{next: next}
}

// Compile implements Compiler.
func (rc *RecordingCompiler) Compile(style sheet.Style) string {
	class := rc.next.Compile(style)
	rc.record(CompilerCall{Op: "compile", Style: style, Result: class})
	return class
}

// Compose implements Compiler.
func (rc *RecordingCompiler) Compose(classes ...string) string {
	class := rc.next.Compose(classes...)
	rc.record(CompilerCall{Op: "compose", Classes: slices.Clone(classes), Result: class})
	return class
}

func (rc *RecordingCompiler) record(c CompilerCall) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.calls = append(rc.calls, c)
}

// Calls returns every recorded call.
func (rc *RecordingCompiler) Calls() []CompilerCall {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return slices.Clone(rc.calls)
}

// LastCompose returns the most recent Compose call.
func (rc *RecordingCompiler) LastCompose() (CompilerCall, bool) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	for i := len(rc.calls) - 1; i >= 0; i-- {
		if rc.calls[i].Op == "compose" {
			return rc.calls[i], true
		}
	}
	return CompilerCall{}, false
}

// Reset forgets recorded calls.
func (rc *RecordingCompiler) Reset() {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.calls = nil
}

// RenderCall is one call seen by a RecordingRenderer.
type RenderCall struct {
	Target Target
	Props  props.Props
}

// RecordingRenderer records the final target and props of each render
// instead of producing markup.
type RecordingRenderer struct {
	mu    sync.Mutex
	calls []RenderCall
}

// Render implements Renderer. The returned component writes nothing.
func (rr *RecordingRenderer) Render(target Target, p props.Props, ref *Ref) templ.Component {
	rr.mu.Lock()
	rr.calls = append(rr.calls, RenderCall{Target: target, Props: p.Clone()})
	rr.mu.Unlock()
	if ref != nil {
		ref.Tag = target.ElementName()
		ref.Attrs = p.Clone()
		if v, ok := p.Get(PropClassName); ok {
			ref.Class, _ = v.Text()
		}
	}
	return templ.NopComponent
}

// Calls returns every recorded render.
func (rr *RecordingRenderer) Calls() []RenderCall {
	rr.mu.Lock()
	defer rr.mu.Unlock()
	return slices.Clone(rr.calls)
}

// Last returns the most recent render.
func (rr *RecordingRenderer) Last() (RenderCall, bool) {
	rr.mu.Lock()
	defer rr.mu.Unlock()
	if len(rr.calls) == 0 {
		return RenderCall{}, false
	}
	return rr.calls[len(rr.calls)-1], true
}
