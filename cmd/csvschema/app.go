package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"

	"github.com/dmitrymomot/csvschema/pkg/config"
	"github.com/dmitrymomot/csvschema/pkg/csvschema"
	"github.com/dmitrymomot/csvschema/pkg/gate"
	"github.com/dmitrymomot/csvschema/pkg/httpserver"
	"github.com/dmitrymomot/csvschema/pkg/logger"
	"github.com/dmitrymomot/csvschema/pkg/schemadef"
	"github.com/dmitrymomot/csvschema/pkg/source"
)

// Exit codes.
const (
	exitOK        = 0
	exitViolation = 1
	exitUsage     = 2
	exitFailure   = 3
)

type appConfig struct {
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat  string `env:"LOG_FORMAT" envDefault:"text"`
	SchemasDir string `env:"SCHEMAS_DIR" envDefault:"./schemas"`
	// LocalRoot confines local source paths read by the gate. Empty disables
	// local sources in serve mode.
	LocalRoot string `env:"SOURCE_LOCAL_ROOT"`
	S3        source.S3Config
	Server    httpserver.Config
	Gate      gate.Config
}

const usage = `csvschema validates CSV files against YAML schemas.

Usage:
  csvschema validate -schema FILE [-env FILE] CSV_FILE|s3://bucket/key
  csvschema serve [-schemas DIR] [-env FILE]
`

// run executes one CLI invocation and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		fmt.Fprint(stderr, usage)
		return exitUsage
	}

	switch args[0] {
	case "validate":
		return validateCmd(ctx, args[1:], stdout, stderr)
	case "serve":
		return serveCmd(ctx, args[1:], stderr)
	case "-h", "--help", "help":
		fmt.Fprint(stdout, usage)
		return exitOK
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n%s", args[0], usage)
		return exitUsage
	}
}

func loadConfig(envFile string) (appConfig, error) {
	var opts []config.Option
	if envFile != "" {
		opts = append(opts, config.WithEnvFiles(envFile))
	}
	return config.Load[appConfig](opts...)
}

func newLogger(cfg appConfig, out io.Writer) (*slog.Logger, error) {
	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	format, err := logger.ParseFormat(cfg.LogFormat)
	if err != nil {
		return nil, err
	}
	return logger.New(
		logger.WithLevel(level),
		logger.WithFormat(format),
		logger.WithOutput(out),
		logger.WithAttr(logger.Component("csvschema")),
	), nil
}

// newOpener serves local paths from localRoot and s3:// references when S3
// is configured.
func newOpener(ctx context.Context, cfg appConfig, localRoot string, allowLocal bool) (source.Opener, error) {
	var local, remote source.Opener
	if allowLocal {
		l, err := source.NewLocal(localRoot)
		if err != nil {
			return nil, err
		}
		local = l
	}
	if cfg.S3.Region != "" {
		s3, err := source.NewS3(ctx, cfg.S3)
		if err != nil {
			return nil, err
		}
		remote = s3
	}
	return source.NewRouter(local, remote), nil
}

func validateCmd(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	schemaPath := fs.String("schema", "", "schema definition (YAML)")
	envFile := fs.String("env", "", "env file to read before the environment")
	quiet := fs.Bool("q", false, "print nothing on success")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if *schemaPath == "" || fs.NArg() != 1 {
		fmt.Fprint(stderr, usage)
		return exitUsage
	}
	file := fs.Arg(0)

	cfg, err := loadConfig(*envFile)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitFailure
	}
	log, err := newLogger(cfg, stderr)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitFailure
	}

	def, err := schemadef.LoadFile(*schemaPath)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitFailure
	}
	opener, err := newOpener(ctx, cfg, "", true)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitFailure
	}

	v, err := def.Validator(file, csvschema.WithOpener(opener), csvschema.WithLogger(log.With(logger.Schema(def.Name))))
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitFailure
	}

	err = v.Validate(ctx)
	switch {
	case err == nil:
		if !*quiet {
			fmt.Fprintf(stdout, "%s: valid\n", file)
		}
		return exitOK
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		fmt.Fprintln(stderr, err)
		return exitFailure
	default:
		fmt.Fprintln(stderr, err)
		return exitViolation
	}
}

func serveCmd(ctx context.Context, args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(stderr)
	schemasDir := fs.String("schemas", "", "directory of schema definitions (default $SCHEMAS_DIR)")
	envFile := fs.String("env", "", "env file to read before the environment")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	cfg, err := loadConfig(*envFile)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitFailure
	}
	if *schemasDir != "" {
		cfg.SchemasDir = *schemasDir
	}
	log, err := newLogger(cfg, stderr)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitFailure
	}

	reg, err := schemadef.LoadDir(cfg.SchemasDir)
	if err != nil {
		log.Error("failed to load schemas", logger.Error(err))
		return exitFailure
	}
	log.Info("schemas loaded", slog.Int("count", reg.Len()), slog.String("dir", cfg.SchemasDir))

	gateOpts := []gate.Option{gate.WithLogger(log)}
	if cfg.LocalRoot != "" || cfg.S3.Region != "" {
		opener, err := newOpener(ctx, cfg, cfg.LocalRoot, cfg.LocalRoot != "")
		if err != nil {
			log.Error("failed to configure sources", logger.Error(err))
			return exitFailure
		}
		gateOpts = append(gateOpts, gate.WithOpener(opener))
	}

	g := gate.NewFromConfig(reg, cfg.Gate, gateOpts...)
	srv := httpserver.NewFromConfig(cfg.Server, httpserver.WithLogger(log))
	if err := srv.Run(ctx, g); err != nil {
		log.Error("server failed", logger.Error(err))
		return exitFailure
	}
	return exitOK
}
