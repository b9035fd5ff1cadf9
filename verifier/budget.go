package verifier

// Per-operation costs in abstract compute units, matching spec.md §4.5.2's
// named prices (originally per-instruction compute-unit costs in
// original_source/program/src/verifier/{miller_loop.rs,prepare_inputs.rs,
// final_exponent.rs}).
const (
	CostEll                  = 90000
	CostDoublingStepPlusEll  = 155000
	CostAdditionStepPlusEll  = 155000
	CostFq12Square           = 100000
	CostG1Add                = 42000
	CostScalarMulBit         = 500

	// MaxUnitsPerTransition bounds a single Step call's work (§4.5.2
	// "concretely ~1.35M abstract units").
	MaxUnitsPerTransition = 1350000
)

// Budget tracks the remaining compute units within one Step call. A
// transition that would exceed it stops early with its internal counters
// advanced only as far as it got, so the next Step call picks up exactly
// where this one left off (§4.5.2).
type Budget struct {
	remaining int
}

// NewBudget starts a fresh per-transition budget at the fixed ceiling.
func NewBudget() *Budget {
	return &Budget{remaining: MaxUnitsPerTransition}
}

// Spend reports whether cost units were available and, if so, deducts them.
// A false return means the caller must stop the current transition here
// and leave its state such that the next Step resumes at this exact point.
func (b *Budget) Spend(cost int) bool {
	if b.remaining < cost {
		return false
	}
	b.remaining -= cost
	return true
}
