package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "c4mut.dev/pkg/c4mut/internal/model"
)

func exampleCatalog(t *testing.T) *Catalog {
	t.Helper()

	c, err := New([]Spec{{Name: "A", Variants: 3}, {Name: "B", Variants: 1}})
	require.NoError(t, err)

	return c
}

func TestNew_DerivesBasesAndCount(t *testing.T) {
	c := exampleCatalog(t)

	assert.Equal(t, 5, c.Count())
	assert.Equal(t, []m.Family{
		{Name: "A", Base: 1, Variants: 3},
		{Name: "B", Base: 4, Variants: 1},
	}, c.Families())
}

func TestNew_Empty(t *testing.T) {
	c, err := New(nil)
	require.NoError(t, err)

	assert.Equal(t, 1, c.Count())
	assert.Equal(t, "none", c.NameOf(m.None))
	assert.Equal(t, "unknown", c.NameOf(1))
}

func TestNew_RejectsInvalidTables(t *testing.T) {
	tests := []struct {
		name  string
		specs []Spec
	}{
		{"empty name", []Spec{{Name: " ", Variants: 1}}},
		{"zero variants", []Spec{{Name: "A", Variants: 0}}},
		{"negative variants", []Spec{{Name: "A", Variants: -2}}},
		{"duplicate name", []Spec{{Name: "A", Variants: 1}, {Name: "A", Variants: 2}}},
		{"reserved none", []Spec{{Name: "none", Variants: 1}}},
		{"reserved unknown", []Spec{{Name: "unknown", Variants: 1}}},
		{"id space overflow", []Spec{{Name: "A", Variants: 70000}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.specs)
			require.ErrorIs(t, err, ErrSchemaInvariant)
		})
	}
}

func TestMustNew_Panics(t *testing.T) {
	assert.Panics(t, func() {
		MustNew([]Spec{{Name: "A", Variants: 0}})
	})
}

func TestValidate_DetectsGapsAndOverlaps(t *testing.T) {
	tests := []struct {
		name     string
		families []m.Family
		count    int
	}{
		{"gap", []m.Family{{Name: "A", Base: 1, Variants: 2}, {Name: "B", Base: 4, Variants: 1}}, 5},
		{"overlap", []m.Family{{Name: "A", Base: 1, Variants: 3}, {Name: "B", Base: 3, Variants: 1}}, 4},
		{"not starting at one", []m.Family{{Name: "A", Base: 2, Variants: 1}}, 3},
		{"count mismatch", []m.Family{{Name: "A", Base: 1, Variants: 1}}, 7},
		{"empty family", []m.Family{{Name: "A", Base: 1, Variants: 0}}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Catalog{families: tt.families, count: tt.count}
			require.ErrorIs(t, c.Validate(), ErrSchemaInvariant)
		})
	}
}

func TestOwnerOf_Example(t *testing.T) {
	c := exampleCatalog(t)

	tests := []struct {
		id         m.MutantID
		wantName   string
		wantOffset int
	}{
		{0, "none", 0},
		{1, "A", 0},
		{2, "A", 1},
		{3, "A", 2},
		{4, "B", 0},
		{5, "unknown", 0},
		{999, "unknown", 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.wantName, c.NameOf(tt.id), "id %d", tt.id)
		assert.Equal(t, tt.wantOffset, c.VariantOffset(tt.id), "id %d", tt.id)
	}
}

func TestLookup(t *testing.T) {
	c := exampleCatalog(t)

	f, ok := c.Lookup("B")
	require.True(t, ok)
	assert.Equal(t, m.MutantID(4), f.Base)

	_, ok = c.Lookup("C")
	assert.False(t, ok)

	assert.Equal(t, []string{"A", "B"}, c.Names())
}

func TestFamilies_ReturnsCopy(t *testing.T) {
	c := exampleCatalog(t)

	families := c.Families()
	families[0].Name = "changed"

	assert.Equal(t, "A", c.NameOf(1))
}
