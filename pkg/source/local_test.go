package source_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/csvschema/pkg/source"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	return p
}

func TestLocal_Open(t *testing.T) {
	t.Parallel()

	t.Run("unconfined opens absolute path", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		p := writeFile(t, dir, "users.csv", "id\n1\n")

		local, err := source.NewLocal("")
		require.NoError(t, err)

		rc, err := local.Open(context.Background(), p)
		require.NoError(t, err)
		defer rc.Close()

		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, "id\n1\n", string(data))
	})

	t.Run("confined resolves relative path", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		writeFile(t, dir, "in/users.csv", "id\n")

		local, err := source.NewLocal(dir)
		require.NoError(t, err)

		rc, err := local.Open(context.Background(), "in/users.csv")
		require.NoError(t, err)
		require.NoError(t, rc.Close())
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		local, err := source.NewLocal("")
		require.NoError(t, err)

		_, err = local.Open(context.Background(), filepath.Join(t.TempDir(), "nope.csv"))
		assert.ErrorIs(t, err, source.ErrFileNotFound)
	})

	t.Run("directory", func(t *testing.T) {
		t.Parallel()
		local, err := source.NewLocal("")
		require.NoError(t, err)

		_, err = local.Open(context.Background(), t.TempDir())
		assert.ErrorIs(t, err, source.ErrIsDirectory)
	})

	t.Run("empty path", func(t *testing.T) {
		t.Parallel()
		local, err := source.NewLocal("")
		require.NoError(t, err)

		_, err = local.Open(context.Background(), "")
		assert.ErrorIs(t, err, source.ErrInvalidPath)
	})

	t.Run("path traversal rejected", func(t *testing.T) {
		t.Parallel()
		local, err := source.NewLocal(t.TempDir())
		require.NoError(t, err)

		_, err = local.Open(context.Background(), "../../etc/passwd")
		assert.ErrorIs(t, err, source.ErrInvalidPath)
	})

	t.Run("canceled context", func(t *testing.T) {
		t.Parallel()
		local, err := source.NewLocal("")
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err = local.Open(ctx, "whatever.csv")
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestBaseName(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "users.csv", source.BaseName("/data/in/users.csv"))
	assert.Equal(t, "users.csv", source.BaseName("users.csv"))
	assert.Equal(t, "users.csv", source.BaseName("s3://bucket/2024/users.csv"))
}

func TestRouter_Open(t *testing.T) {
	t.Parallel()

	var gotLocal, gotS3 string
	local := source.OpenerFunc(func(_ context.Context, p string) (io.ReadCloser, error) {
		gotLocal = p
		return io.NopCloser(nil), nil
	})
	remote := source.OpenerFunc(func(_ context.Context, p string) (io.ReadCloser, error) {
		gotS3 = p
		return io.NopCloser(nil), nil
	})

	r := source.NewRouter(local, remote)
	_, err := r.Open(context.Background(), "s3://b/k.csv")
	require.NoError(t, err)
	_, err = r.Open(context.Background(), "/tmp/k.csv")
	require.NoError(t, err)

	assert.Equal(t, "s3://b/k.csv", gotS3)
	assert.Equal(t, "/tmp/k.csv", gotLocal)

	_, err = source.NewRouter(local, nil).Open(context.Background(), "s3://b/k.csv")
	assert.ErrorIs(t, err, source.ErrUnsupportedScheme)
}
