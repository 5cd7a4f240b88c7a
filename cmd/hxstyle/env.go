package main

import (
	"context"
	"io"
	"os"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/pthm/hxstyle/lib/config"
)

type envKey struct{}

// env keeps everything the commands need in a single place.
type env struct {
	Cfg *config.Config
	Log *zap.Logger

	start time.Time
}

func envFromContext(ctx context.Context) *env {
	if e, ok := ctx.Value(envKey{}).(*env); ok {
		return e
	}
	// this should never happen
	panic("env not found in context")
}

func contextWithEnv(ctx context.Context) context.Context {
	return context.WithValue(ctx, envKey{}, &env{start: time.Now(), Log: zap.NewNop()})
}

func (e *env) uptime() time.Duration {
	return time.Since(e.start)
}

// create opens name for writing, or returns stdout when name is empty.
func create(name string, stdout io.Writer) (io.Writer, func() error, error) {
	if name == "" {
		return stdout, func() error { return nil }, nil
	}
	f, err := os.Create(name)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

// closeInto runs closeFn and adds its error to *err, so a deferred close
// of an output file cannot fail silently.
func closeInto(err *error, closeFn func() error) {
	*err = multierr.Append(*err, closeFn())
}
