package catalog

import (
	"fmt"

	m "c4mut.dev/pkg/c4mut/internal/model"
)

// Variant counts shared by several families.
const (
	// MemOrders is the number of memory orders, minus consume.
	MemOrders = 7
	// MemOrderEntries is one entry per pair of memory orders.
	MemOrderEntries = MemOrders * MemOrders
	// CABIWeakenings covers acquire, release, acq_rel and seq_cst.
	CABIWeakenings = 4
	// RMWIdempotentCases covers add, sub, or, xor and and.
	RMWIdempotentCases = 5
	// LeadingTrailingFences is 0 in the bracket and 1, 2 in cmpxchg.
	// Site 0 is also the target of SwapBracketFences.
	LeadingTrailingFences = 3
	// ARMDMBSites counts the places ARM lowering emits a DMB.
	ARMDMBSites = 6
	// PPCSyncSites counts the leading and trailing sync emissions on PPC.
	PPCSyncSites = 2
)

// Base ids of the atomics families. Each base is the previous base plus the
// previous family's variant count.
//
// Inserting, removing or resizing a family renumbers every later id and
// invalidates any stored numeric id.
const (
	// DropAtomicGuard drops the atomic guard in generic lowering.
	DropAtomicGuard = m.None + 1
	// DropVolatileGuard drops the volatile guard.
	DropVolatileGuard = DropAtomicGuard + 1
	// DropUnorderedGuard drops the unordered guard.
	DropUnorderedGuard = DropVolatileGuard + 1

	// FlipIsStrongerThan flips one entry of the is-stronger-than table.
	FlipIsStrongerThan = DropUnorderedGuard + 1
	// FlipIsAtLeastOrStrongerThan flips one entry of the
	// is-at-least-or-stronger-than table.
	FlipIsAtLeastOrStrongerThan = FlipIsStrongerThan + MemOrderEntries
	// WeakenCABI maps one C ABI memory order to relaxed.
	WeakenCABI = FlipIsAtLeastOrStrongerThan + MemOrderEntries

	// MarkRMWIdempotentExpand spuriously marks an RMW idempotent in atomic
	// expansion, one variant per switch case.
	MarkRMWIdempotentExpand = WeakenCABI + CABIWeakenings
	// LeadingFenceIsTrailing emits a leading fence as trailing.
	LeadingFenceIsTrailing = MarkRMWIdempotentExpand + RMWIdempotentCases
	// TrailingFenceIsLeading emits a trailing fence as leading.
	TrailingFenceIsLeading = LeadingFenceIsTrailing + LeadingTrailingFences
	// SwapBracketFences swaps the bracket's leading and trailing fences.
	SwapBracketFences = TrailingFenceIsLeading + LeadingTrailingFences

	// MarkRMWIdempotentCombine spuriously marks an RMW idempotent when
	// combining instructions.
	MarkRMWIdempotentCombine = SwapBracketFences + 1
	// MarkRMWSaturatingCombine treats a saturating RMW as its plain form.
	MarkRMWSaturatingCombine = MarkRMWIdempotentCombine + RMWIdempotentCases

	// AArch64ExpandCmpXchgO0ToLLSC drops the AArch64 special case that keeps
	// cmpxchg at -O0 away from LL/SC lowering.
	AArch64ExpandCmpXchgO0ToLLSC = MarkRMWSaturatingCombine + 1
	// ARMExpandCmpXchgO0ToLLSC is the same for ARM.
	ARMExpandCmpXchgO0ToLLSC = AArch64ExpandCmpXchgO0ToLLSC + 1
	// ARMDropAtomicGuard drops the ARM atomic guard.
	ARMDropAtomicGuard = ARMExpandCmpXchgO0ToLLSC + 1
	// ARMDropDMB drops one DMB barrier emission.
	ARMDropDMB = ARMDropAtomicGuard + 1

	// PPCDropSync drops one sync emission on PPC.
	PPCDropSync = ARMDropDMB + ARMDMBSites

	// Count is one past the last valid id.
	Count = PPCDropSync + PPCSyncSites
)

// Compile-time check of every family's last id. An "invalid argument: index
// out of bounds" or "constant overflows" error here means the schema changed:
// update the literal and every stored mutant id that depends on it.
func _() {
	var x [1]struct{}
	_ = x[DropAtomicGuard+1-1-1]
	_ = x[DropVolatileGuard+1-1-2]
	_ = x[DropUnorderedGuard+1-1-3]
	_ = x[FlipIsStrongerThan+MemOrderEntries-1-52]
	_ = x[FlipIsAtLeastOrStrongerThan+MemOrderEntries-1-101]
	_ = x[WeakenCABI+CABIWeakenings-1-105]
	_ = x[MarkRMWIdempotentExpand+RMWIdempotentCases-1-110]
	_ = x[LeadingFenceIsTrailing+LeadingTrailingFences-1-113]
	_ = x[TrailingFenceIsLeading+LeadingTrailingFences-1-116]
	_ = x[SwapBracketFences+1-1-117]
	_ = x[MarkRMWIdempotentCombine+RMWIdempotentCases-1-122]
	_ = x[MarkRMWSaturatingCombine+1-1-123]
	_ = x[AArch64ExpandCmpXchgO0ToLLSC+1-1-124]
	_ = x[ARMExpandCmpXchgO0ToLLSC+1-1-125]
	_ = x[ARMDropAtomicGuard+1-1-126]
	_ = x[ARMDropDMB+ARMDMBSites-1-132]
	_ = x[PPCDropSync+PPCSyncSites-1-134]
	_ = x[Count-135]
}

var atomicsTable = []struct {
	base m.MutantID
	spec Spec
}{
	{DropAtomicGuard, Spec{Name: "DAG", Variants: 1}},
	{DropVolatileGuard, Spec{Name: "DVG", Variants: 1}},
	{DropUnorderedGuard, Spec{Name: "DUG", Variants: 1}},
	{FlipIsStrongerThan, Spec{Name: "FIS", Variants: MemOrderEntries}},
	{FlipIsAtLeastOrStrongerThan, Spec{Name: "FIA", Variants: MemOrderEntries}},
	{WeakenCABI, Spec{Name: "WCA", Variants: CABIWeakenings}},
	{MarkRMWIdempotentExpand, Spec{Name: "RIE", Variants: RMWIdempotentCases}},
	{LeadingFenceIsTrailing, Spec{Name: "LFT", Variants: LeadingTrailingFences}},
	{TrailingFenceIsLeading, Spec{Name: "TFL", Variants: LeadingTrailingFences}},
	{SwapBracketFences, Spec{Name: "SLT", Variants: 1}},
	{MarkRMWIdempotentCombine, Spec{Name: "RIC", Variants: RMWIdempotentCases}},
	{MarkRMWSaturatingCombine, Spec{Name: "RSC", Variants: 1}},
	{AArch64ExpandCmpXchgO0ToLLSC, Spec{Name: "DXG[aarch64]", Variants: 1}},
	{ARMExpandCmpXchgO0ToLLSC, Spec{Name: "DXG[arm]", Variants: 1}},
	{ARMDropAtomicGuard, Spec{Name: "DAG[arm]", Variants: 1}},
	{ARMDropDMB, Spec{Name: "DDF[arm]", Variants: ARMDMBSites}},
	{PPCDropSync, Spec{Name: "DSF[ppc]", Variants: PPCSyncSites}},
}

var atomics = buildAtomics()

func buildAtomics() *Catalog {
	specs := make([]Spec, 0, len(atomicsTable))
	for _, entry := range atomicsTable {
		specs = append(specs, entry.spec)
	}

	c := MustNew(specs)

	// The data table must agree with the base constants.
	for i, f := range c.families {
		if f.Base != atomicsTable[i].base {
			panic(fmt.Errorf("%w: family %q derived base %d, constant is %d", ErrSchemaInvariant, f.Name, f.Base, atomicsTable[i].base))
		}
	}

	if c.count != int(Count) {
		panic(fmt.Errorf("%w: derived count %d, constant is %d", ErrSchemaInvariant, c.count, Count))
	}

	return c
}

// Atomics returns the catalog of atomic-operation mutants.
func Atomics() *Catalog {
	return atomics
}
