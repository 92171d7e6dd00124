package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// DefaultEnvFile is read when no env file is given. It is optional.
const DefaultEnvFile = ".env"

// Option configures a single Load call.
type Option func(*options)

type options struct {
	files   []string
	prefix  string
	environ []string
}

// WithEnvFiles reads the given .env files. Later files override earlier ones
// and the process environment overrides all of them. Missing files are an
// error.
func WithEnvFiles(paths ...string) Option {
	return func(o *options) {
		o.files = append(o.files, paths...)
	}
}

// WithPrefix only considers variables starting with prefix and strips it
// before matching env tags.
func WithPrefix(prefix string) Option {
	return func(o *options) { o.prefix = prefix }
}

// WithEnviron replaces the process environment, mostly useful in tests.
func WithEnviron(environ []string) Option {
	return func(o *options) { o.environ = environ }
}

// Load parses the environment into a new T.
//
// Example:
//
//	type ServerConfig struct {
//		Addr string `env:"HTTP_ADDR" envDefault:":8080"`
//	}
//
//	cfg, err := config.Load[ServerConfig]()
func Load[T any](opts ...Option) (T, error) {
	var v T
	err := LoadInto(&v, opts...)
	return v, err
}

// LoadInto parses the environment into v. Fields already set on v are
// overwritten only when the matching variable is present or has a default.
func LoadInto[T any](v *T, opts ...Option) error {
	if v == nil {
		return ErrNilPointer
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	optional := false
	if len(o.files) == 0 {
		o.files = []string{DefaultEnvFile}
		optional = true
	}

	vars, err := readEnvFiles(o.files, optional)
	if err != nil {
		return err
	}

	environ := o.environ
	if environ == nil {
		environ = os.Environ()
	}
	for _, kv := range environ {
		if k, val, ok := strings.Cut(kv, "="); ok {
			vars[k] = val
		}
	}

	if err := env.ParseWithOptions(v, env.Options{
		Environment: vars,
		Prefix:      o.prefix,
	}); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

// MustLoad works like Load but panics if configuration loading fails.
// This is useful for configurations that are required for the application to start.
func MustLoad[T any](opts ...Option) T {
	v, err := Load[T](opts...)
	if err != nil {
		panic(fmt.Sprintf("Failed to load required configuration: %v", err))
	}
	return v
}

func readEnvFiles(paths []string, optional bool) (map[string]string, error) {
	vars := make(map[string]string)
	for _, p := range paths {
		m, err := godotenv.Read(p)
		if err != nil {
			if optional && errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("%w: %s: %v", ErrEnvFile, p, err)
		}
		for k, val := range m {
			vars[k] = val
		}
	}
	return vars, nil
}
