// Package catalog defines the mutant identifier space: an ordered table of
// mutant families, each occupying a contiguous range of dense ids.
package catalog

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	m "c4mut.dev/pkg/c4mut/internal/model"
)

// ErrSchemaInvariant is returned when a family table would produce
// overlapping, empty or out-of-range id ranges.
var ErrSchemaInvariant = errors.New("catalog schema invariant violated")

const (
	noneName    = "none"
	unknownName = "unknown"
)

// Spec declares one family: its display name and how many variants it has.
type Spec struct {
	Name     string
	Variants int
}

// Catalog is an immutable, ordered set of mutant families.
// It is safe for concurrent use.
type Catalog struct {
	families []m.Family
	byName   map[string]int
	count    int
}

// New derives base ids from specs in declaration order. The first family
// starts right after None; each next family starts where the previous one
// ends.
func New(specs []Spec) (*Catalog, error) {
	families := make([]m.Family, 0, len(specs))
	byName := make(map[string]int, len(specs))
	next := int(m.None) + 1

	for i, spec := range specs {
		name := strings.TrimSpace(spec.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: family #%d has no name", ErrSchemaInvariant, i)
		}

		if name == noneName || name == unknownName {
			return nil, fmt.Errorf("%w: family name %q is reserved", ErrSchemaInvariant, name)
		}

		if _, dup := byName[name]; dup {
			return nil, fmt.Errorf("%w: duplicate family name %q", ErrSchemaInvariant, name)
		}

		if spec.Variants < 1 {
			return nil, fmt.Errorf("%w: family %q has %d variants", ErrSchemaInvariant, name, spec.Variants)
		}

		if next+spec.Variants-1 > math.MaxUint16 {
			return nil, fmt.Errorf("%w: family %q overflows the id space", ErrSchemaInvariant, name)
		}

		byName[name] = len(families)
		families = append(families, m.Family{Name: name, Base: m.MutantID(next), Variants: spec.Variants})
		next += spec.Variants
	}

	c := &Catalog{families: families, byName: byName, count: next}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// MustNew is like New but panics if the table is inconsistent.
func MustNew(specs []Spec) *Catalog {
	c, err := New(specs)
	if err != nil {
		panic(err)
	}

	return c
}

// Validate checks that the families are strictly ordered and jointly cover
// [1, Count) without gaps or overlaps.
func (c *Catalog) Validate() error {
	expected := int(m.None) + 1

	for _, f := range c.families {
		if f.Variants < 1 {
			return fmt.Errorf("%w: family %q has %d variants", ErrSchemaInvariant, f.Name, f.Variants)
		}

		switch {
		case int(f.Base) < expected:
			return fmt.Errorf("%w: family %q at %d overlaps previous range ending at %d", ErrSchemaInvariant, f.Name, f.Base, expected-1)
		case int(f.Base) > expected:
			return fmt.Errorf("%w: gap before family %q: ids %d..%d unassigned", ErrSchemaInvariant, f.Name, expected, int(f.Base)-1)
		}

		expected += f.Variants
	}

	if expected != c.count {
		return fmt.Errorf("%w: count is %d but families end at %d", ErrSchemaInvariant, c.count, expected)
	}

	return nil
}

// Count returns the number of ids, including None. Valid ids are [0, Count).
func (c *Catalog) Count() int {
	return c.count
}

// Families returns a copy of the families in base id order.
func (c *Catalog) Families() []m.Family {
	out := make([]m.Family, len(c.families))
	copy(out, c.families)

	return out
}

// Names returns the display names in base id order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.families))
	for _, f := range c.families {
		names = append(names, f.Name)
	}

	return names
}

// Lookup finds a family by its display name.
func (c *Catalog) Lookup(name string) (m.Family, bool) {
	i, ok := c.byName[strings.TrimSpace(name)]
	if !ok {
		return m.Family{}, false
	}

	return c.families[i], true
}

// InRange reports whether id lies in [0, Count).
func (c *Catalog) InRange(id m.MutantID) bool {
	return int(id) < c.count
}

// OwnerOf returns the family whose range contains id: the family with the
// greatest base not exceeding id. None resolves to a "none" family and ids
// outside [0, Count) to an "unknown" family.
func (c *Catalog) OwnerOf(id m.MutantID) m.Family {
	if id == m.None {
		return m.Family{Name: noneName, Base: m.None, Variants: 1}
	}

	if !c.InRange(id) {
		return m.Family{Name: unknownName, Base: id}
	}

	i := sort.Search(len(c.families), func(i int) bool {
		return c.families[i].Base > id
	})

	return c.families[i-1]
}

// VariantOffset returns how far id lies from its owner's base id.
func (c *Catalog) VariantOffset(id m.MutantID) int {
	return c.OwnerOf(id).Offset(id)
}

// NameOf returns the display name of id's owning family.
func (c *Catalog) NameOf(id m.MutantID) string {
	return c.OwnerOf(id).Name
}
