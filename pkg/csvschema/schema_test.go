package csvschema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/csvschema/pkg/csvrow"
	"github.com/dmitrymomot/csvschema/pkg/csvschema"
)

func TestCompile(t *testing.T) {
	t.Parallel()

	t.Run("binds requirements to positions", func(t *testing.T) {
		t.Parallel()
		s := csvschema.Compile(csvschema.Config{
			FieldRequirements: []csvschema.FieldRequirement{
				{Header: "c", Unique: true},
				{Header: "a", Unique: true},
			},
		}, csvrow.Strings("a", "b", "c"))

		assert.Equal(t, 3, s.Width())
		assert.Equal(t, []int{2, 0}, s.UniqueColumns())
		assert.Empty(t, s.Unknown())

		col, ok := s.Column("b")
		require.True(t, ok)
		assert.Equal(t, 1, col)
		assert.Equal(t, "c", s.Header(2))
		assert.Equal(t, "", s.Header(9))
	})

	t.Run("last occurrence of a repeated header wins", func(t *testing.T) {
		t.Parallel()
		s := csvschema.Compile(csvschema.Config{}, csvrow.Strings("x", "y", "x"))
		col, ok := s.Column("x")
		require.True(t, ok)
		assert.Equal(t, 2, col)
	})

	t.Run("null headers are skipped", func(t *testing.T) {
		t.Parallel()
		s := csvschema.Compile(csvschema.Config{}, csvrow.Row{csvrow.Value(""), csvrow.Nil})
		col, ok := s.Column("")
		require.True(t, ok)
		assert.Equal(t, 0, col)
		assert.Equal(t, 2, s.Width())
	})

	t.Run("records unknown requirement headers once", func(t *testing.T) {
		t.Parallel()
		s := csvschema.Compile(csvschema.Config{
			FieldRequirements: []csvschema.FieldRequirement{
				{Header: "zz", CantBeNil: true},
				{Header: "a"},
				{Header: "zz", Unique: true},
			},
		}, csvrow.Strings("a"))
		assert.Equal(t, []string{"zz"}, s.Unknown())
	})

	t.Run("returned slices are copies", func(t *testing.T) {
		t.Parallel()
		s := csvschema.Compile(csvschema.Config{
			FieldRequirements: []csvschema.FieldRequirement{{Header: "a", Unique: true}},
		}, csvrow.Strings("a"))
		cols := s.UniqueColumns()
		cols[0] = 42
		assert.Equal(t, []int{0}, s.UniqueColumns())
	})
}

func TestConfig(t *testing.T) {
	t.Parallel()

	cfg := csvschema.Config{
		RequiredHeaders: []string{"a"},
		FieldRequirements: []csvschema.FieldRequirement{
			{Header: "a", Unique: true},
		},
	}

	t.Run("requirement lookup", func(t *testing.T) {
		t.Parallel()
		fr, ok := cfg.Requirement("a")
		require.True(t, ok)
		assert.True(t, fr.Unique)

		_, ok = cfg.Requirement("b")
		assert.False(t, ok)
	})

	t.Run("lenient keeps requirements", func(t *testing.T) {
		t.Parallel()
		l := cfg.Lenient()
		assert.True(t, l.AllowDuplicateHeaders)
		assert.True(t, l.AllowBlankHeaders)
		assert.True(t, l.AllowBlankRows)
		assert.True(t, l.AllowDifferentFieldCounts)
		assert.Equal(t, cfg.RequiredHeaders, l.RequiredHeaders)
		assert.Equal(t, cfg.FieldRequirements, l.FieldRequirements)
		assert.False(t, cfg.AllowBlankRows, "receiver must not change")
	})
}
