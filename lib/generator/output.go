package generator

import (
	"bytes"
	"fmt"
	"go/format"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"unicode"

	"github.com/pthm/hxstyle/lib/tables"
)

// writeRegistration generates styled_hx.go for a package.
func (g *Generator) writeRegistration(pkgPath, pkgName string, components []StyledInfo) error {
	outputFile := filepath.Join(pkgPath, "styled"+generatedSuffix)

	fmt.Fprintf(g.opts.Out, "generating %s (%d components)\n", outputFile, len(components))

	if g.opts.DryRun {
		return nil
	}

	data := struct {
		Package    string
		Components []StyledInfo
	}{pkgName, components}

	code, err := render(registerTemplate, data)
	if err != nil {
		return err
	}
	return writeFormatted(outputFile, code)
}

// WriteProps writes a Go file declaring one constant per style prop and
// pseudo prop known to t.
func WriteProps(w io.Writer, pkgName string, t *tables.Tables) error {
	type constant struct {
		Name, Value, Comment string
	}

	var style, pseudo []constant
	for _, name := range t.StyleProps() {
		style = append(style, constant{Name: "Prop" + exported(name), Value: name})
	}
	for _, name := range t.PseudoProps() {
		sel, _ := t.PseudoSelector(name)
		pseudo = append(pseudo, constant{Name: "Pseudo" + exported(name), Value: name, Comment: sel})
	}

	data := struct {
		Package       string
		Style, Pseudo []constant
	}{pkgName, style, pseudo}

	code, err := render(propsTemplate, data)
	if err != nil {
		return err
	}
	formatted, err := format.Source(code)
	if err != nil {
		return fmt.Errorf("format source: %w", err)
	}
	_, err = w.Write(formatted)
	return err
}

func render(tmpl *template.Template, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render template: %w", err)
	}
	return buf.Bytes(), nil
}

func writeFormatted(outputFile string, code []byte) error {
	formatted, err := format.Source(code)
	if err != nil {
		// Write unformatted for debugging
		_ = os.WriteFile(outputFile+".unformatted", code, 0644)
		return fmt.Errorf("format source: %w", err)
	}
	return os.WriteFile(outputFile, formatted, 0644)
}

// exported converts "_groupHover" or "borderTop" to "GroupHover" or
// "BorderTop".
func exported(name string) string {
	var b strings.Builder
	upper := true
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			upper = true
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

var registerTemplate = template.Must(template.New("register").Parse(`// Code generated by hxstyle. DO NOT EDIT.

package {{.Package}}

import "github.com/pthm/hxstyle"

// RegisterStyled adds the package-level styled components to reg.
func RegisterStyled(reg *hxstyle.Registry) {
	reg.Add(
	{{- range .Components}}
		{{.VarName}}, {{if .Base}}// <{{.Base}}>{{end}}
	{{- end}}
	)
}
`))

var propsTemplate = template.Must(template.New("props").Parse(`// Code generated by hxstyle. DO NOT EDIT.

package {{.Package}}

// Style shorthand props.
const (
{{- range .Style}}
	{{.Name}} = {{printf "%q" .Value}}
{{- end}}
)

// Pseudo-state shorthand props.
const (
{{- range .Pseudo}}
	{{.Name}} = {{printf "%q" .Value}} // {{.Comment}}
{{- end}}
)
`))
