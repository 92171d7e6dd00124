package schemadef_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/csvschema/pkg/schemadef"
)

func TestLoadDir(t *testing.T) {
	t.Parallel()

	t.Run("loads yaml files only", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		files := map[string]string{
			"users.yaml": "required_headers: [id]\n",
			"orders.YML": "name: purchase_orders\n",
			"README.md":  "not a schema",
			"notes.txt":  "x: y",
		}
		for name, content := range files {
			require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
		}
		require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.yaml"), 0755))

		reg, err := schemadef.LoadDir(dir)
		require.NoError(t, err)
		assert.Equal(t, 2, reg.Len())
		assert.Equal(t, []string{"purchase_orders", "users"}, reg.Names())

		def, err := reg.Get("users")
		require.NoError(t, err)
		assert.Equal(t, []string{"id"}, def.Config.RequiredHeaders)
	})

	t.Run("duplicate names", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yaml"), []byte("name: same\n"), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "b.yaml"), []byte("name: same\n"), 0644))

		_, err := schemadef.LoadDir(dir)
		assert.ErrorIs(t, err, schemadef.ErrDuplicateSchema)
	})

	t.Run("invalid file fails the load", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yaml"), []byte("headers_transform: camel\n"), 0644))

		_, err := schemadef.LoadDir(dir)
		assert.ErrorIs(t, err, schemadef.ErrUnknownTransform)
	})

	t.Run("missing directory", func(t *testing.T) {
		t.Parallel()
		_, err := schemadef.LoadDir(filepath.Join(t.TempDir(), "missing"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	reg, err := schemadef.NewRegistry(&schemadef.Definition{Name: "a"})
	require.NoError(t, err)

	_, err = reg.Get("b")
	assert.ErrorIs(t, err, schemadef.ErrSchemaNotFound)

	_, err = schemadef.NewRegistry(&schemadef.Definition{})
	assert.ErrorIs(t, err, schemadef.ErrInvalidDefinition)

	empty, err := schemadef.NewRegistry()
	require.NoError(t, err)
	assert.Empty(t, empty.Names())
}
