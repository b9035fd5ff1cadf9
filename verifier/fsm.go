// Package verifier implements the stepwise, cell-based Groth16 verifier of
// spec.md §4.5 — "the hardest part": a finite state machine where each
// on-chain instruction performs exactly one bounded transition, built on
// package pairing's BN254 primitives. Grounded on
// original_source/program/src/verifier/fsm/{fsm.rs,processor.rs},
// miller_loop.rs, final_exponent.rs and prepare_inputs.rs — the state names,
// per-state cell roles and compute costs below mirror that state table
// (reproduced in doc.go) rather than reinventing the protocol.
package verifier

import "github.com/soda-maze/maze/pairing"

// Phase names one row of the §4.5.1 state table.
type Phase int

const (
	PhasePrepareInputs Phase = iota
	PhaseMillerLoop
	PhaseMillerLoopFinalize
	PhaseFinalExponentEasyPart
	PhaseHardPart1
	PhaseHardPart2
	PhaseHardPart3
	PhaseHardPart4
	PhaseFinished
)

func (p Phase) String() string {
	switch p {
	case PhasePrepareInputs:
		return "PrepareInputs"
	case PhaseMillerLoop:
		return "MillerLoop"
	case PhaseMillerLoopFinalize:
		return "MillerLoopFinalize"
	case PhaseFinalExponentEasyPart:
		return "FinalExponentEasyPart"
	case PhaseHardPart1:
		return "HardPart1"
	case PhaseHardPart2:
		return "HardPart2"
	case PhaseHardPart3:
		return "HardPart3"
	case PhaseHardPart4:
		return "HardPart4"
	case PhaseFinished:
		return "Finished"
	default:
		return "Unknown"
	}
}

// FSM is the persisted state: the variant tag (Phase) plus whatever indices
// that variant needs to resume mid-computation (§4.5 "persisting the FSM
// variant tag + indices to storage"). Every field is exported so a host can
// serialise it directly (borsh-style) between transitions.
type FSM struct {
	Phase Phase

	// PrepareInputs: which public input is being folded in, and how many of
	// its bits (MSB-first, leading zeros already skipped) have been
	// consumed so far.
	InputIndex int
	BitsDone   int

	// MillerLoop: index into AteLoopCountNAF (starts at 1 — index 0 is the
	// implicit leading digit folded into the initial r and f). CoeffIndex
	// tracks position in the lock-step GammaNegPC/DeltaNegPC arrays.
	AteIndex   int
	CoeffIndex int

	// MillerLoopFinalize: 0 before q1/q2 are derived, 1 before the q1
	// addition round, 2 before the q2 round (reset to 0 once both are done).
	FinalizeStep int

	// HardPart1/2/3: index into XNAF for the bounded exp-by-x ladder.
	HardIndex int

	// Finished.
	Result bool
}

// NewFSM returns the FSM in its initial state, ready for the first
// PrepareInputs transition.
func NewFSM() FSM {
	return FSM{Phase: PhasePrepareInputs}
}

// VerifyInputs bundles the per-verification, read-only values a transition
// needs: the proof and the public inputs it is checked against. The FSM
// itself only persists the few scalars named above; the host re-presents
// these each call exactly as it re-presents cell contents (§5 "the host is
// responsible for presenting cells at each step").
type VerifyInputs struct {
	PublicInputs []pairing.Fr
	ProofA       pairing.G1Affine
	ProofB       pairing.G2Affine
	ProofC       pairing.G1Affine
}

// Step performs exactly one bounded transition and returns the next FSM
// state. A transition that would exceed its compute budget returns the SAME
// phase with its internal counters advanced only as far as it got (§4.5.2);
// the caller re-invokes Step with a fresh Budget to continue. A non-nil
// error is always fatal (§4.5.3) — verification-is-false is communicated
// via FSM.Phase == PhaseFinished && !FSM.Result, never an error.
func (f FSM) Step(store CellStore, addrs CellAddrs, vk *PreparedVerifyingKey, in *VerifyInputs, budget *Budget) (FSM, error) {
	switch f.Phase {
	case PhasePrepareInputs:
		return f.stepPrepareInputs(store, addrs, vk, in, budget)
	case PhaseMillerLoop:
		return f.stepMillerLoop(store, addrs, vk, in, budget)
	case PhaseMillerLoopFinalize:
		return f.stepMillerLoopFinalize(store, addrs, vk, in, budget)
	case PhaseFinalExponentEasyPart:
		return f.stepFinalExponentEasyPart(store, addrs, budget)
	case PhaseHardPart1:
		return f.stepHardPart1(store, addrs, budget)
	case PhaseHardPart2:
		return f.stepHardPart2(store, addrs, budget)
	case PhaseHardPart3:
		return f.stepHardPart3(store, addrs, budget)
	case PhaseHardPart4:
		return f.stepHardPart4(store, addrs, vk, budget)
	case PhaseFinished:
		return f, nil
	default:
		return FSM{}, &FatalError{Reason: "unknown FSM phase"}
	}
}

// Reset returns the verifier to pre-PrepareInputs with all seven cells
// erased, for recycling (§5 "Cancellation and timeout" — the core exposes a
// reset transition).
func Reset(store CellStore, addrs CellAddrs) (FSM, error) {
	for _, addr := range [...]CellAddr{addrs.B1, addrs.B2, addrs.B3, addrs.B4, addrs.B5, addrs.B6, addrs.B7} {
		if addr == "" {
			continue
		}
		if err := store.Erase(addr); err != nil {
			return FSM{}, err
		}
	}
	return NewFSM(), nil
}
