package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/pthm/hxstyle"
	"github.com/pthm/hxstyle/example/pages"
	"github.com/pthm/hxstyle/lib/attr"
	"github.com/pthm/hxstyle/lib/config"
	"github.com/pthm/hxstyle/lib/generator"
	"github.com/pthm/hxstyle/lib/props"
	"github.com/pthm/hxstyle/lib/tables"
)

func runCheck(ctx context.Context, cmd *cli.Command) error {
	e := envFromContext(ctx)

	t := tables.Default()
	source := "embedded"
	if dir := cmd.String("tables"); dir != "" {
		var err error
		if t, err = tables.Load(os.DirFS(dir)); err != nil {
			for _, one := range multierr.Errors(err) {
				e.Log.Error("Table inconsistency", zap.String("dir", dir), zap.Error(one))
			}
			return fmt.Errorf("tables in %s are inconsistent: %d problem(s)", dir, len(multierr.Errors(err)))
		}
		source = dir
	}

	e.Log.Info("Tables loaded", zap.String("source", source))
	fmt.Fprintf(cmd.Root().Writer, "style props: %d\npseudo props: %d\n", len(t.StyleProps()), len(t.PseudoProps()))
	return nil
}

func runClassify(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() == 0 {
		return fmt.Errorf("classify needs at least one prop name")
	}
	t := tables.Default()
	oracle := attr.New(t)
	element := cmd.String("element")

	w := tabwriter.NewWriter(cmd.Root().Writer, 0, 4, 2, ' ', 0)
	header := "NAME\tCLASS\tSELECTOR\tVALID"
	if element != "" {
		header += "\t<" + element + ">"
	}
	fmt.Fprintln(w, header)

	for _, name := range cmd.Args().Slice() {
		class := t.Classify(name)
		sel, _ := t.PseudoSelector(name)
		if sel == "" {
			sel = "-"
		}
		line := fmt.Sprintf("%s\t%s\t%s\t%t", name, class, sel, oracle.IsValid(name))
		if element != "" {
			line += "\t" + elementVerdict(t, oracle, name, element)
		}
		fmt.Fprintln(w, line)
	}
	return w.Flush()
}

// elementVerdict reports what the router does with a passthrough prop on
// element.
func elementVerdict(t *tables.Tables, oracle *attr.Oracle, name, element string) string {
	if r := t.CheckElement(name, element); r != tables.Accepted {
		return "dropped (" + r.String() + ")"
	}
	if !oracle.IsValid(name) {
		return "dropped (not an attribute)"
	}
	return "forwarded as " + t.MarkupName(name, element)
}

func runRender(ctx context.Context, cmd *cli.Command) (err error) {
	e := envFromContext(ctx)

	page, ok := pages.Lookup(cmd.String("page"))
	if !ok {
		return fmt.Errorf("%w: page %q", hxstyle.ErrNotFound, cmd.String("page"))
	}

	out, closeOut, err := create(cmd.String("out"), cmd.Root().Writer)
	if err != nil {
		return fmt.Errorf("unable to create destination file: %w", err)
	}
	defer closeInto(&err, closeOut)

	s := hxstyle.DefaultSheet()
	if cmd.Bool("fragment") {
		html, err := hxstyle.RenderString(ctx, page.Body())
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(out, "%s\n<style>%s</style>\n", html, s.CSS())
		return err
	}

	if err := hxstyle.Document(s, page.Title, page.Body()).Render(ctx, out); err != nil {
		return err
	}
	e.Log.Debug("Rendered page", zap.String("page", page.Name), zap.Int("classes", s.Len()))
	return nil
}

func runGenerate(_ context.Context, cmd *cli.Command) error {
	gen := generator.New(generator.Options{
		DryRun: cmd.Bool("dry-run"),
		Out:    cmd.Root().Writer,
	})
	return gen.Generate(patterns(cmd)...)
}

func runClean(_ context.Context, cmd *cli.Command) error {
	gen := generator.New(generator.Options{Out: cmd.Root().Writer})
	return gen.Clean(patterns(cmd)...)
}

func patterns(cmd *cli.Command) []string {
	if cmd.NArg() == 0 {
		return []string{"./..."}
	}
	return cmd.Args().Slice()
}

func runProps(ctx context.Context, cmd *cli.Command) (err error) {
	out, closeOut, err := create(cmd.String("out"), cmd.Root().Writer)
	if err != nil {
		return fmt.Errorf("unable to create destination file: %w", err)
	}
	defer closeInto(&err, closeOut)

	if err := generator.WriteProps(out, cmd.String("package"), tables.Default()); err != nil {
		return err
	}
	envFromContext(ctx).Log.Debug("Wrote prop constants", zap.String("package", cmd.String("package")))
	return nil
}

func outputConfiguration(ctx context.Context, cmd *cli.Command) (err error) {
	e := envFromContext(ctx)
	if cmd.Args().Len() > 1 {
		e.Log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	out, closeOut, err := create(cmd.Args().Get(0), cmd.Root().Writer)
	if err != nil {
		return fmt.Errorf("unable to create destination file: %w", err)
	}
	defer closeInto(&err, closeOut)

	var data []byte
	if cmd.Bool("default") {
		data, err = config.Prepare()
	} else {
		data, err = config.Dump(e.Cfg)
	}
	if err != nil {
		return fmt.Errorf("unable to get configuration: %w", err)
	}
	_, err = out.Write(data)
	return err
}

// previewProps parses NAME=VALUE pairs the way preview query strings are
// parsed.
func previewProps(pairs []string) (props.Props, error) {
	q := make(map[string][]string, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			return props.Props{}, fmt.Errorf("malformed prop %q, want NAME=VALUE", pair)
		}
		q[name] = append(q[name], value)
	}
	return hxstyle.PropsFromQuery(q), nil
}
