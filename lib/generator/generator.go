// Package generator writes Go source derived from hxstyle components and
// tables: a RegisterStyled function per package that declares styled
// components, and a constants file naming every style and pseudo prop.
package generator

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// generatedSuffix marks files owned by the generator.
const generatedSuffix = "_hx.go"

// Options configures the generator.
type Options struct {
	DryRun bool
	// Out receives progress lines. Defaults to os.Stdout.
	Out io.Writer
}

// Generator generates hxstyle code.
type Generator struct {
	opts Options
	fset *token.FileSet
}

// New creates a new generator.
func New(opts Options) *Generator {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	return &Generator{
		opts: opts,
		fset: token.NewFileSet(),
	}
}

// Generate writes styled_hx.go into every package matched by patterns that
// declares package-level styled components.
func (g *Generator) Generate(patterns ...string) error {
	packages, err := g.findPackages(patterns)
	if err != nil {
		return err
	}

	for _, pkg := range packages {
		if err := g.generatePackage(pkg); err != nil {
			return fmt.Errorf("package %s: %w", pkg, err)
		}
	}

	return nil
}

// Clean removes generated files for the given package patterns.
func (g *Generator) Clean(patterns ...string) error {
	packages, err := g.findPackages(patterns)
	if err != nil {
		return err
	}

	for _, pkg := range packages {
		if err := g.cleanPackage(pkg); err != nil {
			return fmt.Errorf("package %s: %w", pkg, err)
		}
	}

	return nil
}

// findPackages resolves package patterns to directory paths.
func (g *Generator) findPackages(patterns []string) ([]string, error) {
	var packages []string

	for _, pattern := range patterns {
		if !strings.HasSuffix(pattern, "/...") {
			packages = append(packages, pattern)
			continue
		}

		root := strings.TrimSuffix(pattern, "/...")
		if root == "" {
			root = "."
		}

		err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() {
				return nil
			}
			base := filepath.Base(path)
			if path != root && (strings.HasPrefix(base, ".") || strings.HasPrefix(base, "_") || base == "vendor" || base == "testdata") {
				return filepath.SkipDir
			}

			entries, err := os.ReadDir(path)
			if err != nil {
				return nil
			}
			for _, entry := range entries {
				if !entry.IsDir() && isSource(entry.Name()) {
					packages = append(packages, path)
					break
				}
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return packages, nil
}

func isSource(name string) bool {
	return strings.HasSuffix(name, ".go") &&
		!strings.HasSuffix(name, "_test.go") &&
		!strings.HasSuffix(name, generatedSuffix)
}

// generatePackage scans one directory and writes its registration file.
func (g *Generator) generatePackage(pkgPath string) error {
	entries, err := os.ReadDir(pkgPath)
	if err != nil {
		return err
	}

	var pkgName string
	var components []StyledInfo
	for _, entry := range entries {
		if entry.IsDir() || !isSource(entry.Name()) {
			continue
		}
		path := filepath.Join(pkgPath, entry.Name())
		file, err := parser.ParseFile(g.fset, path, nil, parser.SkipObjectResolution)
		if err != nil {
			return err
		}
		if pkgName == "" {
			pkgName = file.Name.Name
		}
		if file.Name.Name != pkgName {
			continue
		}
		components = append(components, g.findStyled(path, file)...)
	}

	if len(components) == 0 {
		return nil
	}
	sort.Slice(components, func(i, j int) bool { return components[i].VarName < components[j].VarName })

	return g.writeRegistration(pkgPath, pkgName, components)
}

// cleanPackage removes generated files from a package.
func (g *Generator) cleanPackage(pkgPath string) error {
	entries, err := os.ReadDir(pkgPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), generatedSuffix) {
			continue
		}
		path := filepath.Join(pkgPath, entry.Name())
		fmt.Fprintf(g.opts.Out, "removing %s\n", path)
		if !g.opts.DryRun {
			if err := os.Remove(path); err != nil {
				return err
			}
		}
	}

	return nil
}

// StyledInfo describes a package-level styled component declaration.
type StyledInfo struct {
	SourceFile string
	VarName    string
	// Base is the element name when the base target is a literal
	// hxstyle.Element call, otherwise empty.
	Base string
}

// findStyled finds package-level `var X = hxstyle.New(...)` declarations.
func (g *Generator) findStyled(filename string, file *ast.File) []StyledInfo {
	alias := importName(file, "github.com/pthm/hxstyle")
	if alias == "" {
		return nil
	}

	var found []StyledInfo
	for _, decl := range file.Decls {
		genDecl, ok := decl.(*ast.GenDecl)
		if !ok || genDecl.Tok != token.VAR {
			continue
		}
		for _, spec := range genDecl.Specs {
			vs, ok := spec.(*ast.ValueSpec)
			if !ok {
				continue
			}
			for i, value := range vs.Values {
				if i >= len(vs.Names) || vs.Names[i].Name == "_" {
					continue
				}
				call, ok := value.(*ast.CallExpr)
				if !ok || !isCall(call, alias, "New") {
					continue
				}
				info := StyledInfo{SourceFile: filename, VarName: vs.Names[i].Name}
				if len(call.Args) > 0 {
					info.Base = elementLiteral(call.Args[0], alias)
				}
				found = append(found, info)
			}
		}
	}
	return found
}

// importName returns the local name under which path is imported, or ""
// when the file does not import it.
func importName(file *ast.File, path string) string {
	for _, imp := range file.Imports {
		p, err := strconv.Unquote(imp.Path.Value)
		if err != nil || p != path {
			continue
		}
		if imp.Name != nil {
			if imp.Name.Name == "_" || imp.Name.Name == "." {
				return ""
			}
			return imp.Name.Name
		}
		return path[strings.LastIndex(path, "/")+1:]
	}
	return ""
}

func isCall(call *ast.CallExpr, pkg, fn string) bool {
	sel, ok := call.Fun.(*ast.SelectorExpr)
	if !ok || sel.Sel.Name != fn {
		return false
	}
	ident, ok := sel.X.(*ast.Ident)
	return ok && ident.Name == pkg
}

// elementLiteral extracts "div" from hxstyle.Element("div").
func elementLiteral(expr ast.Expr, alias string) string {
	call, ok := expr.(*ast.CallExpr)
	if !ok || !isCall(call, alias, "Element") || len(call.Args) != 1 {
		return ""
	}
	lit, ok := call.Args[0].(*ast.BasicLit)
	if !ok || lit.Kind != token.STRING {
		return ""
	}
	s, err := strconv.Unquote(lit.Value)
	if err != nil {
		return ""
	}
	return s
}
