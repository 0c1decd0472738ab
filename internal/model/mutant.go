// Package model defines the data structures shared by the mutation catalog
// and the selector.
package model

import "fmt"

// MutantID identifies one concrete mutant. Ids are dense in [0, Count).
type MutantID uint16

// None is the reserved id meaning that no mutant is active.
const None MutantID = 0

// Family is a named group of mutants sharing one transformation kind.
// It occupies the contiguous id range [Base, Base+Variants).
type Family struct {
	Name     string
	Base     MutantID
	Variants int
}

// End returns the last id of the family (inclusive).
func (f Family) End() MutantID {
	return f.Base + MutantID(f.Variants) - 1
}

// Contains reports whether id lies inside the family's range.
func (f Family) Contains(id MutantID) bool {
	return id >= f.Base && int(id) < int(f.Base)+f.Variants
}

// Offset returns the variant offset of id within the family.
// 0 is the canonical form.
func (f Family) Offset(id MutantID) int {
	return int(id) - int(f.Base)
}

func (f Family) String() string {
	if f.Variants == 1 {
		return fmt.Sprintf("%s[%d]", f.Name, f.Base)
	}

	return fmt.Sprintf("%s[%d..%d]", f.Name, f.Base, f.End())
}
