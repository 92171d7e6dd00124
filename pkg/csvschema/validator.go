package csvschema

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/dmitrymomot/csvschema/pkg/csvrow"
	"github.com/dmitrymomot/csvschema/pkg/logger"
	"github.com/dmitrymomot/csvschema/pkg/source"
)

// RowReader produces rows lazily and returns io.EOF when exhausted.
// *csvrow.Reader and *csvrow.SliceReader satisfy it.
type RowReader interface {
	Read() (csvrow.Row, error)
}

// Option configures a Validator.
type Option func(*Validator)

// WithOpener sets how the file reference is opened. Defaults to the local
// filesystem.
func WithOpener(o source.Opener) Option {
	return func(v *Validator) {
		if o != nil {
			v.opener = o
		}
	}
}

// WithLogger sets the logger. Defaults to a discarding logger.
func WithLogger(l *slog.Logger) Option {
	return func(v *Validator) {
		if l != nil {
			v.log = l
		}
	}
}

// WithReaderOptions configures the CSV reader used by Validate.
func WithReaderOptions(opts ...csvrow.Option) Option {
	return func(v *Validator) {
		v.readerOpts = append(v.readerOpts, opts...)
	}
}

// Validator checks one file against a Config. It holds no per-run state;
// everything accumulated during a run is discarded when the run returns.
type Validator struct {
	path       string
	cfg        Config
	opener     source.Opener
	log        *slog.Logger
	readerOpts []csvrow.Option
}

// New creates a Validator for the file at path.
// It fails with ErrConfiguration when path is empty.
func New(path string, cfg Config, opts ...Option) (*Validator, error) {
	if path == "" {
		return nil, &ValidationError{Kind: ErrConfiguration}
	}

	local, _ := source.NewLocal("")
	v := &Validator{
		path:   path,
		cfg:    cfg,
		opener: local,
		log:    logger.Discard(),
	}
	for _, opt := range opts {
		opt(v)
	}

	return v, nil
}

// Config returns the configuration the validator was built with.
func (v *Validator) Config() Config {
	return v.cfg
}

// Validate opens the file and checks every row. It returns nil when the file
// conforms, or the first violation found.
func (v *Validator) Validate(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	rc, err := v.opener.Open(ctx, v.path)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		verr := &ValidationError{Kind: ErrFileNotFound, File: v.path, Err: err}
		v.log.WarnContext(ctx, "csv not readable", logger.File(v.path), logger.Rule(verr.Code()), logger.Error(err))
		return verr
	}
	defer func() { _ = rc.Close() }()

	return v.ValidateRows(ctx, csvrow.NewReader(rc, v.readerOpts...))
}

// ValidateRows checks rows produced by any RowReader. The first row is the
// header row. Checks run in a fixed order and the first failure aborts the
// run; uniqueness is only decided once rows is exhausted.
func (v *Validator) ValidateRows(ctx context.Context, rows RowReader) error {
	start := time.Now()
	name := source.BaseName(v.path)
	r := newRun(v.cfg, name)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		row, err := rows.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return v.reject(ctx, &ValidationError{Kind: ErrRead, File: name, Row: r.row, Err: err})
		}

		if err := r.step(row); err != nil {
			return v.reject(ctx, err)
		}

		if r.row == 2 {
			v.log.DebugContext(ctx, "header row compiled",
				logger.File(name),
				slog.Int("columns", r.schema.Width()),
				slog.Int("unique_columns", len(r.schema.unique)),
			)
		}
	}

	if err := r.finish(); err != nil {
		return v.reject(ctx, err)
	}

	v.log.InfoContext(ctx, "csv validated",
		logger.File(name),
		logger.Rows(r.row-1),
		logger.Duration(time.Since(start)),
	)
	return nil
}

func (v *Validator) reject(ctx context.Context, err error) error {
	attrs := []any{logger.Error(err)}
	if verr, ok := AsValidationError(err); ok {
		attrs = append(attrs, logger.File(verr.File), logger.Rule(verr.Code()))
		if verr.Row > 0 {
			attrs = append(attrs, logger.Row(verr.Row))
		}
		if verr.Header != "" {
			attrs = append(attrs, logger.Header(verr.Header))
		}
	}
	v.log.InfoContext(ctx, "csv rejected", attrs...)
	return err
}
