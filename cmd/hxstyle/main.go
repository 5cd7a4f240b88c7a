// Command hxstyle inspects the prop routing tables, renders and serves the
// demo pages, writes sheet snapshots and generates Go code.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/pthm/hxstyle/lib/config"
)

const version = "0.1.0"

// initializeAppContext loads configuration and logging after the command
// line has been parsed.
func initializeAppContext(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	var err error

	if cmd.NArg() == 0 {
		return ctx, nil
	}

	e := envFromContext(ctx)

	configFile := cmd.String("config")
	if e.Cfg, err = config.LoadConfiguration(configFile); err != nil {
		return ctx, fmt.Errorf("unable to prepare configuration: %w", err)
	}
	if cmd.Bool("debug") {
		e.Cfg.Logging.ConsoleLogger.Level = "debug"
	}
	if e.Log, err = e.Cfg.Logging.Prepare(); err != nil {
		return ctx, fmt.Errorf("unable to prepare logs: %w", err)
	}

	e.Log.Debug("Program started", zap.Strings("args", os.Args), zap.String("ver", version), zap.String("runtime", runtime.Version()))
	if len(configFile) == 0 {
		e.Log.Debug("Using defaults (no configuration file)")
	}
	return ctx, nil
}

func destroyAppContext(ctx context.Context, cmd *cli.Command) error {
	e := envFromContext(ctx)
	e.Log.Debug("Program ended", zap.Duration("elapsed", e.uptime()), zap.Strings("parsed args", cmd.Args().Slice()))
	_ = e.Log.Sync()
	return nil
}

var errWasHandled bool

func exitErrHandler(ctx context.Context, _ *cli.Command, err error) {
	e := envFromContext(ctx)
	if e.Cfg != nil {
		e.Log.Error("Program ended with error", zap.Error(err))
		errWasHandled = true
	}
}

func usageErrorHandler(_ context.Context, _ *cli.Command, err error, _ bool) error {
	return err
}

func newApp(stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:            "hxstyle",
		Usage:           "prop routing and style compilation for templ components",
		Version:         version + " (" + runtime.Version() + ")",
		HideHelpCommand: true,
		Writer:          stdout,
		ErrWriter:       stderr,
		Before:          initializeAppContext,
		After:           destroyAppContext,
		OnUsageError:    usageErrorHandler,
		ExitErrHandler:  exitErrHandler,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "load configuration from `FILE` (YAML)"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "log at debug level, including every dropped prop"},
		},
		Commands: []*cli.Command{
			{
				Name:   "check",
				Usage:  "Loads and validates the routing tables",
				Action: runCheck,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "tables", Usage: "validate tables from `DIR` (containing data/*.yaml) instead of the embedded ones"},
				},
			},
			{
				Name:      "classify",
				Usage:     "Shows how prop names are routed",
				ArgsUsage: "NAME...",
				Action:    runClassify,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "element", Aliases: []string{"e"}, Usage: "check attributes against element `TAG`"},
				},
			},
			{
				Name:   "render",
				Usage:  "Renders a demo page",
				Action: runRender,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "page", Aliases: []string{"p"}, Value: "index", Usage: "demo page `NAME`"},
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "write to `FILE` instead of STDOUT"},
					&cli.BoolFlag{Name: "fragment", Usage: "render only the page body followed by the full stylesheet"},
				},
			},
			{
				Name:      "preview",
				Usage:     "Renders one demo component with props and prints the rules it uses",
				ArgsUsage: "COMPONENT [NAME=VALUE...]",
				Action:    runPreview,
			},
			{
				Name:   "serve",
				Usage:  "Serves the demo pages, component previews and the stylesheet",
				Action: runServe,
			},
			{
				Name:   "snapshot",
				Usage:  "Compiles every demo page and writes a protected sheet snapshot",
				Action: runSnapshot,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "write to `FILE` instead of STDOUT"},
				},
			},
			{
				Name:      "generate",
				Usage:     "Writes RegisterStyled functions for packages declaring styled components",
				ArgsUsage: "[PACKAGES]",
				Action:    runGenerate,
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "dry-run", Usage: "show what would be generated without writing files"},
				},
			},
			{
				Name:      "clean",
				Usage:     "Removes generated files",
				ArgsUsage: "[PACKAGES]",
				Action:    runClean,
			},
			{
				Name:   "props",
				Usage:  "Writes Go constants for every style and pseudo prop",
				Action: runProps,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "write to `FILE` instead of STDOUT"},
					&cli.StringFlag{Name: "package", Value: "styleprops", Usage: "package `NAME` of the generated file"},
				},
			},
			{
				Name:      "dumpconfig",
				Usage:     "Dumps either default or actual configuration (YAML)",
				ArgsUsage: "[DESTINATION]",
				Action:    outputConfiguration,
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "default", Usage: "output default embedded configuration"},
				},
			},
		},
	}
}

func main() {
	ctx, stop := signal.NotifyContext(contextWithEnv(context.Background()), os.Interrupt, syscall.SIGTERM)

	var err error
	defer func() {
		stop()
		if err != nil {
			if !errWasHandled {
				fmt.Fprintf(os.Stderr, "Program ended with error: %v\n", err)
			}
			os.Exit(1)
		}
	}()
	err = newApp(os.Stdout, os.Stderr).Run(ctx, os.Args)
}
