package csvschema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/csvschema/pkg/csvschema"
)

func TestSymbolTransform(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"header_1", "header_1"},
		{"HEADER 1", "header_1"},
		{"Header  1", "header_1"},
		{"E-mail (2)", "email_2"},
		{"Straße", "straße"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, csvschema.SymbolTransform(tt.in))
		})
	}
}

func TestTransforms(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "email", csvschema.LowerTransform("EMAIL"))
	assert.Equal(t, "Email", csvschema.TrimTransform("  Email \t"))

	chained := csvschema.Chain(csvschema.TrimTransform, nil, csvschema.LowerTransform)
	assert.Equal(t, "email", chained(" EMAIL "))
	assert.Equal(t, "x", csvschema.Chain()("x"))
}

func TestTransformByName(t *testing.T) {
	t.Parallel()

	t.Run("known names", func(t *testing.T) {
		t.Parallel()
		for _, name := range []string{"lower", "trim", "symbol", " Symbol "} {
			tr, err := csvschema.TransformByName(name)
			require.NoError(t, err, name)
			assert.NotNil(t, tr, name)
		}
	})

	t.Run("none resolves to nil", func(t *testing.T) {
		t.Parallel()
		for _, name := range []string{"", "none"} {
			tr, err := csvschema.TransformByName(name)
			require.NoError(t, err)
			assert.Nil(t, tr)
		}
	})

	t.Run("unknown name", func(t *testing.T) {
		t.Parallel()
		_, err := csvschema.TransformByName("camel")
		require.Error(t, err)
		assert.ErrorIs(t, err, csvschema.ErrUnknownTransform)
		assert.Contains(t, err.Error(), "camel")
	})
}
