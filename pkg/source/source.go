package source

import (
	"context"
	"io"
	"path"
	"path/filepath"
	"strings"
)

// S3Scheme prefixes paths that address S3 objects, as in "s3://bucket/key".
const S3Scheme = "s3://"

// Opener opens a named input for reading.
type Opener interface {
	// Open returns a reader over the input. The caller must close it.
	Open(ctx context.Context, path string) (io.ReadCloser, error)
}

// OpenerFunc adapts a function to the Opener interface.
type OpenerFunc func(ctx context.Context, path string) (io.ReadCloser, error)

func (f OpenerFunc) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	return f(ctx, path)
}

// BaseName returns the last element of a local path or S3 URL.
//
//	source.BaseName("/data/in/users.csv")          // "users.csv"
//	source.BaseName("s3://bucket/2024/users.csv")  // "users.csv"
func BaseName(p string) string {
	if rest, ok := strings.CutPrefix(p, S3Scheme); ok {
		return path.Base(rest)
	}
	return filepath.Base(p)
}

// Router dispatches S3 URLs to the S3 opener and everything else to the local one.
type Router struct {
	local Opener
	s3    Opener
}

// NewRouter builds a Router. Either opener may be nil, in which case paths
// that need it fail with ErrUnsupportedScheme.
func NewRouter(local, s3 Opener) *Router {
	return &Router{local: local, s3: s3}
}

func (r *Router) Open(ctx context.Context, p string) (io.ReadCloser, error) {
	if strings.HasPrefix(p, S3Scheme) {
		if r.s3 == nil {
			return nil, ErrUnsupportedScheme
		}
		return r.s3.Open(ctx, p)
	}
	if r.local == nil {
		return nil, ErrUnsupportedScheme
	}
	return r.local.Open(ctx, p)
}
