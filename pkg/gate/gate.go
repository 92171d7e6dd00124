package gate

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/csvschema/pkg/httpserver"
	"github.com/dmitrymomot/csvschema/pkg/logger"
	"github.com/dmitrymomot/csvschema/pkg/schemadef"
	"github.com/dmitrymomot/csvschema/pkg/source"
)

// Config is the environment-driven gate configuration.
type Config struct {
	MaxBodySize int64 `env:"GATE_MAX_BODY_BYTES" envDefault:"33554432"`
}

// Option configures a Gate.
type Option func(*Gate)

// WithLogger sets the logger. Defaults to a discarding logger.
func WithLogger(l *slog.Logger) Option {
	return func(g *Gate) {
		if l != nil {
			g.log = l
		}
	}
}

// WithMaxBodySize caps request bodies. Values <= 0 keep the default.
func WithMaxBodySize(n int64) Option {
	return func(g *Gate) {
		if n > 0 {
			g.maxBody = n
		}
	}
}

// WithOpener enables validation of files referenced by the source query
// parameter instead of uploaded.
func WithOpener(o source.Opener) Option {
	return func(g *Gate) { g.opener = o }
}

// Gate exposes a schema registry over HTTP.
type Gate struct {
	registry *schemadef.Registry
	log      *slog.Logger
	maxBody  int64
	opener   source.Opener
	router   chi.Router
}

// DefaultMaxBodySize is 32 MiB.
const DefaultMaxBodySize int64 = 32 << 20

// New builds a Gate serving the schemas in registry.
func New(registry *schemadef.Registry, opts ...Option) *Gate {
	g := &Gate{
		registry: registry,
		log:      logger.Discard(),
		maxBody:  DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(g)
	}
	g.log = g.log.With(logger.Component("gate"))
	g.router = g.routes()
	return g
}

// NewFromConfig builds a Gate from cfg. opts are applied afterwards.
func NewFromConfig(registry *schemadef.Registry, cfg Config, opts ...Option) *Gate {
	return New(registry, append([]Option{WithMaxBodySize(cfg.MaxBodySize)}, opts...)...)
}

func (g *Gate) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(RunID)
	r.Use(g.accessLog)

	r.Get("/healthz", httpserver.HealthCheckHandler(g.log))
	r.Get("/readyz", httpserver.HealthCheckHandler(g.log, g.ready))
	r.Get("/schemas", g.handleList)
	r.Post("/schemas/{name}/validate", g.handleValidate)
	return r
}

// ServeHTTP implements http.Handler.
func (g *Gate) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	g.router.ServeHTTP(w, r)
}

func (g *Gate) ready(context.Context) error {
	if g.registry == nil || g.registry.Len() == 0 {
		return fmt.Errorf("%w: registry is empty", schemadef.ErrSchemaNotFound)
	}
	return nil
}

func (g *Gate) handleList(w http.ResponseWriter, r *http.Request) {
	resp := ListResponse{Data: []SchemaInfo{}}
	if g.registry != nil {
		for _, name := range g.registry.Names() {
			def, _ := g.registry.Get(name)
			resp.Data = append(resp.Data, SchemaInfo{Name: def.Name, Description: def.Description})
		}
	}
	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		g.log.WarnContext(r.Context(), "failed to write response", logger.Error(err))
	}
}

func (g *Gate) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		g.log.InfoContext(r.Context(), "request served",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			slog.Int("bytes", ww.BytesWritten()),
			logger.Duration(time.Since(start)),
		)
	})
}
