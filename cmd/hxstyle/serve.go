package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/a-h/templ"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/pthm/hxstyle"
	"github.com/pthm/hxstyle/example/pages"
	"github.com/pthm/hxstyle/lib/config"
	"github.com/pthm/hxstyle/lib/sheet"
)

func runServe(ctx context.Context, cmd *cli.Command) error {
	e := envFromContext(ctx)
	cfg := e.Cfg

	s := hxstyle.DefaultSheet()
	if cfg.Server.Snapshot != "" {
		n, err := hydrate(cfg, s, cfg.Server.Snapshot)
		if err != nil {
			return err
		}
		e.Log.Info("Sheet hydrated", zap.String("snapshot", cfg.Server.Snapshot), zap.Int("entries", n))
	}

	reg := hxstyle.NewRegistry(s, e.Log)
	pages.RegisterStyled(reg)

	srv := &http.Server{
		Addr:              cfg.Server.Listen,
		Handler:           newHandler(cfg, reg, e.Log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	e.Log.Info("Serving", zap.String("addr", "http://"+cfg.Server.Listen), zap.Strings("components", reg.Names()))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// newHandler routes demo pages at the root and the registry under the
// configured prefix.
func newHandler(cfg *config.Config, reg *hxstyle.Registry, log *zap.Logger) http.Handler {
	if log == nil {
		log = zap.NewNop()
	}
	prefix := strings.TrimSuffix(cfg.Server.Prefix, "/")
	mux := http.NewServeMux()
	mux.Handle(prefix+"/", http.StripPrefix(prefix, reg.Handler()))

	servePage := func(w http.ResponseWriter, r *http.Request, name string) {
		page, ok := pages.Lookup(name)
		if !ok {
			reg.OnError(w, r, fmt.Errorf("%w: page %q", hxstyle.ErrNotFound, name))
			return
		}
		var doc templ.Component
		if cfg.Sheet.CriticalCSS {
			doc = hxstyle.Document(reg.Sheet(), page.Title, page.Body())
		} else {
			doc = linkedDocument(prefix+"/styles.css", page.Title, page.Body())
		}
		if err := hxstyle.Render(w, r, doc); err != nil {
			log.Error("Page render failed", zap.String("page", name), zap.Error(err))
		}
	}

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		servePage(w, r, "index")
	})
	mux.HandleFunc("GET /{page}", func(w http.ResponseWriter, r *http.Request) {
		servePage(w, r, r.PathValue("page"))
	})
	return mux
}

// linkedDocument wraps body in a page that links the whole stylesheet.
func linkedDocument(href, title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		head := "<!DOCTYPE html><html><head><meta charset=\"utf-8\"><title>" + templ.EscapeString(title) +
			"</title><link rel=\"stylesheet\" href=\"" + templ.EscapeString(href) + "\"></head><body>"
		if _, err := io.WriteString(w, head); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, "</body></html>")
		return err
	})
}

func encoderFor(cfg *config.Config) (*hxstyle.Encoder, error) {
	if len(cfg.SnapshotKey) == 0 {
		return nil, errors.New("snapshot_key is not configured")
	}
	return hxstyle.NewEncoder(cfg.SnapshotKey.Bytes())
}

func hydrate(cfg *config.Config, s *sheet.Sheet, path string) (int, error) {
	enc, err := encoderFor(cfg)
	if err != nil {
		return 0, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("unable to read snapshot: %w", err)
	}
	n, err := hxstyle.Hydrate(s, enc, cfg.Server.Mode(), strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("unable to hydrate sheet from %s: %w", path, err)
	}
	return n, nil
}

func runSnapshot(ctx context.Context, cmd *cli.Command) (err error) {
	e := envFromContext(ctx)

	enc, err := encoderFor(e.Cfg)
	if err != nil {
		return err
	}

	s := hxstyle.DefaultSheet()
	for _, page := range pages.All() {
		if _, err := hxstyle.RenderString(ctx, page.Body()); err != nil {
			return fmt.Errorf("page %s: %w", page.Name, err)
		}
	}

	data, err := hxstyle.Snapshot(s, enc, e.Cfg.Server.Mode())
	if err != nil {
		return err
	}

	out, closeOut, err := create(cmd.String("out"), cmd.Root().Writer)
	if err != nil {
		return fmt.Errorf("unable to create destination file: %w", err)
	}
	defer closeInto(&err, closeOut)

	if _, err := io.WriteString(out, data+"\n"); err != nil {
		return err
	}
	e.Log.Info("Snapshot written", zap.Int("classes", s.Len()), zap.Stringer("mode", e.Cfg.Server.Mode()))
	return nil
}

func runPreview(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() == 0 {
		return errors.New("preview needs a component name")
	}

	reg := hxstyle.NewRegistry(hxstyle.DefaultSheet(), envFromContext(ctx).Log)
	pages.RegisterStyled(reg)

	name := cmd.Args().First()
	c, ok := reg.Get(name)
	if !ok {
		c, ok = reg.Get("Styled(" + name + ")")
	}
	if !ok {
		return fmt.Errorf("%w: component %q (have %s)", hxstyle.ErrNotFound, name, strings.Join(reg.Names(), ", "))
	}

	p, err := previewProps(cmd.Args().Tail())
	if err != nil {
		return err
	}

	var ref hxstyle.Ref
	html, err := hxstyle.RenderString(ctx, c.Render(p, &ref))
	if err != nil {
		return err
	}
	var css strings.Builder
	for _, r := range reg.Sheet().RulesFor(strings.Fields(ref.Class)...) {
		css.WriteString(r.CSS)
		css.WriteByte('\n')
	}
	_, err = fmt.Fprintf(cmd.Root().Writer, "%s\n%s", html, css.String())
	return err
}
