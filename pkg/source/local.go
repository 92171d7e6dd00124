package source

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Local opens files from the local filesystem.
// When created with a base directory, relative and absolute paths are both
// resolved inside it and anything escaping it is rejected.
type Local struct {
	baseDir string // Absolute path, empty means unconfined
}

// NewLocal creates a filesystem opener. An empty baseDir leaves paths
// untouched, which is what a command-line tool wants.
func NewLocal(baseDir string) (*Local, error) {
	if baseDir == "" {
		return &Local{}, nil
	}

	absBaseDir, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to resolve base directory: %v", ErrFailedToGetAbsolutePath, err)
	}

	return &Local{baseDir: absBaseDir}, nil
}

// Open opens path for reading.
func (s *Local) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if path == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidPath)
	}

	absPath, err := s.resolvePath(path)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("%w: %v", ErrFailedToStatPath, err)
	}

	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	f, err := os.Open(absPath)
	if err != nil {
		if os.IsPermission(err) {
			return nil, fmt.Errorf("%w: %s", ErrAccessDenied, path)
		}
		return nil, fmt.Errorf("%w: %v", ErrFailedToOpenFile, err)
	}

	return f, nil
}

// resolvePath confines path to baseDir when one is configured.
func (s *Local) resolvePath(path string) (string, error) {
	if s.baseDir == "" {
		return filepath.Clean(path), nil
	}

	path = filepath.Clean(path)
	absPath := path
	if !filepath.IsAbs(path) {
		absPath = filepath.Join(s.baseDir, path)
	}

	absPath, err := filepath.Abs(absPath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFailedToGetAbsolutePath, err)
	}

	if !strings.HasPrefix(absPath, s.baseDir+string(filepath.Separator)) && absPath != s.baseDir {
		return "", fmt.Errorf("%w: %s", ErrInvalidPath, path)
	}

	return absPath, nil
}
