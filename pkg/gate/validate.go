package gate

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/csvschema/pkg/csvrow"
	"github.com/dmitrymomot/csvschema/pkg/csvschema"
	"github.com/dmitrymomot/csvschema/pkg/logger"
	"github.com/dmitrymomot/csvschema/pkg/schemadef"
	"github.com/dmitrymomot/csvschema/pkg/source"
)

// defaultUploadName names raw uploads in messages when the caller gives none.
const defaultUploadName = "upload.csv"

// handleValidate checks an uploaded file, or the file named by the source
// query parameter, against a registered schema.
//
//	204  file conforms
//	422  schema violation
//	404  unknown schema or source file
//	413  body too large
//	400  malformed request or CSV
func (g *Gate) handleValidate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name := chi.URLParam(r, "name")
	log := g.log.With(logger.Schema(name))

	def, err := g.lookup(name)
	if err != nil {
		g.respond(ctx, w, http.StatusNotFound, "schema_not_found", err)
		return
	}

	if src := r.URL.Query().Get("source"); src != "" {
		err = g.validateSource(ctx, def, src, log)
	} else {
		err = g.validateUpload(ctx, w, r, def, log)
	}

	if err == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	g.fail(ctx, w, err)
}

func (g *Gate) lookup(name string) (*schemadef.Definition, error) {
	if g.registry == nil {
		return nil, schemadef.ErrSchemaNotFound
	}
	return g.registry.Get(name)
}

func (g *Gate) validateSource(ctx context.Context, def *schemadef.Definition, src string, log *slog.Logger) error {
	if g.opener == nil {
		return ErrRemoteDisabled
	}
	v, err := def.Validator(src, csvschema.WithOpener(g.opener), csvschema.WithLogger(log))
	if err != nil {
		return err
	}
	return v.Validate(ctx)
}

func (g *Gate) validateUpload(ctx context.Context, w http.ResponseWriter, r *http.Request, def *schemadef.Definition, log *slog.Logger) error {
	body := http.MaxBytesReader(w, r.Body, g.maxBody)
	defer func() { _ = body.Close() }()

	in, filename, err := uploadedFile(r, body)
	if err != nil {
		return err
	}

	v, err := def.Validator(filename, csvschema.WithLogger(log))
	if err != nil {
		return err
	}
	return v.ValidateRows(ctx, csvrow.NewReader(in, def.ReaderOptions()...))
}

// uploadedFile returns the CSV stream of the request: the "file" part of a
// multipart form, or the raw body otherwise.
func uploadedFile(r *http.Request, body io.Reader) (io.Reader, string, error) {
	mediaType, params, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		name := r.URL.Query().Get("filename")
		if name == "" {
			name = defaultUploadName
		}
		if r.ContentLength == 0 {
			return nil, "", ErrEmptyBody
		}
		return body, source.BaseName(name), nil
	}

	boundary := params["boundary"]
	if boundary == "" {
		return nil, "", ErrInvalidMultipart
	}
	mr := multipart.NewReader(body, boundary)
	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			return nil, "", ErrMissingFile
		}
		if err != nil {
			return nil, "", tooLargeOr(err, ErrInvalidMultipart)
		}
		if part.FormName() != "file" {
			continue
		}
		name := part.FileName()
		if name == "" {
			name = defaultUploadName
		}
		return part, source.BaseName(name), nil
	}
}

// fail maps a validation outcome to a status code.
func (g *Gate) fail(ctx context.Context, w http.ResponseWriter, err error) {
	var maxErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxErr):
		g.respond(ctx, w, http.StatusRequestEntityTooLarge, "body_too_large", ErrBodyTooLarge)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		g.respond(ctx, w, http.StatusServiceUnavailable, "canceled", err)
	case errors.Is(err, ErrRemoteDisabled):
		g.respond(ctx, w, http.StatusBadRequest, "remote_disabled", err)
	case errors.Is(err, ErrMissingFile), errors.Is(err, ErrEmptyBody), errors.Is(err, ErrInvalidMultipart):
		g.respond(ctx, w, http.StatusBadRequest, "bad_request", err)
	case errors.Is(err, csvschema.ErrFileNotFound):
		g.respond(ctx, w, http.StatusNotFound, "file_not_found", err)
	case errors.Is(err, csvschema.ErrRead):
		g.respond(ctx, w, http.StatusBadRequest, "malformed_csv", err)
	default:
		verr, ok := csvschema.AsValidationError(err)
		if !ok {
			g.log.ErrorContext(ctx, "validation failed unexpectedly", logger.Error(err))
			g.respond(ctx, w, http.StatusInternalServerError, "internal", errors.New("internal error"))
			return
		}
		resp := ErrorResponse{Code: "schema_violation", Message: verr.Error(), Error: violationOf(verr)}
		if werr := writeJSON(w, http.StatusUnprocessableEntity, resp); werr != nil {
			g.log.WarnContext(ctx, "failed to write response", logger.Error(werr))
		}
	}
}

func (g *Gate) respond(ctx context.Context, w http.ResponseWriter, status int, code string, err error) {
	if werr := writeError(w, status, code, err); werr != nil {
		g.log.WarnContext(ctx, "failed to write response", logger.Error(werr))
	}
}

// tooLargeOr keeps size errors recognizable and files the rest under
// fallback.
func tooLargeOr(err, fallback error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return err
	}
	return errors.Join(fallback, err)
}
