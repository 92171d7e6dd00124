// Package httpserver runs an http.Handler with sane timeouts and graceful
// shutdown. The validation gate is served through it.
//
// Run blocks until its context is canceled, the process receives SIGINT or
// SIGTERM, or Shutdown is called; in-flight requests then get
// ShutdownTimeout to finish. Configuration comes from functional options or
// from Config, which carries HTTP_* env tags for pkg/config.
//
//	srv := httpserver.NewFromConfig(cfg.Server, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		return err
//	}
//
// HealthCheckHandler serves liveness when called without checks and
// readiness with them.
//
// Run wraps listen errors with ErrStart and Shutdown wraps shutdown errors
// with ErrShutdown.
package httpserver
