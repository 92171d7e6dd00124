// Package config loads application configuration from environment variables
// into tagged Go structs.
//
// It wraps `github.com/joho/godotenv` and `github.com/caarlos0/env/v11`:
// .env files are read into a map, the process environment is layered on top
// and the result is parsed into the struct using its `env` tags. Nothing is
// written back to the process environment, so loading is free of side effects
// and safe to call from parallel tests.
//
// # Usage
//
//	type App struct {
//		LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
//		Server   httpserver.Config
//	}
//
//	cfg, err := config.Load[App]()
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Without options the optional `.env` in the working directory is read.
// WithEnvFiles names explicit files, which must exist.
//
// # Error Handling
//
//   - ErrParsingConfig: a variable is malformed or a required one is missing.
//   - ErrEnvFile: an explicit env file cannot be read.
//   - ErrNilPointer: LoadInto was given a nil pointer.
package config
