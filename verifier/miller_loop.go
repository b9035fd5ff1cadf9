package verifier

import "github.com/soda-maze/maze/pairing"

// stepMillerLoop performs one ate-loop iteration (§4.5.1 row 2, steps a-f):
// square f, fold in the proof-B doubling step against A, fold in the
// corresponding precomputed gamma/delta line against prepared_input and C,
// and — when the current NAF digit is nonzero — also fold in a proof-B
// addition step and the next gamma/delta line. One full iteration
// comfortably fits one transition's budget (§4.5.2), so exactly one
// ate_index advances per Step call.
func (f FSM) stepMillerLoop(store CellStore, addrs CellAddrs, vk *PreparedVerifyingKey, in *VerifyInputs, budget *Budget) (FSM, error) {
	naf := pairing.AteLoopCountNAF()
	if f.AteIndex >= len(naf) {
		f.Phase = PhaseMillerLoopFinalize
		f.FinalizeStep = 0
		return f, nil
	}

	digit := naf[f.AteIndex]
	cost := CostFq12Square + CostDoublingStepPlusEll + 2*CostEll
	if digit != 0 {
		cost += CostAdditionStepPlusEll + 2*CostEll
	}
	if !budget.Spend(cost) {
		return f, nil
	}

	preparedCell, err := getKind(store, addrs.B3, CellG1Affine)
	if err != nil {
		return f, err
	}
	rCell, err := getKind(store, addrs.B5, CellG2Homogeneous)
	if err != nil {
		return f, err
	}
	fCell, err := getKind(store, addrs.B6, CellFq12)
	if err != nil {
		return f, err
	}
	preparedInput := preparedCell.G1Affine
	r := rCell.G2Homogen
	fVal := fCell.Fq12

	fVal.Square(&fVal)
	coeff := pairing.DoublingStep(&r)
	pairing.Ell(&fVal, coeff, &in.ProofA)
	pairing.Ell(&fVal, vk.GammaNegPC[f.CoeffIndex], &preparedInput)
	pairing.Ell(&fVal, vk.DeltaNegPC[f.CoeffIndex], &in.ProofC)
	f.CoeffIndex++

	if digit != 0 {
		addPoint := in.ProofB
		if digit == -1 {
			addPoint.Y.Neg(&addPoint.Y)
		}
		coeff2 := pairing.AdditionStep(&r, &addPoint)
		pairing.Ell(&fVal, coeff2, &in.ProofA)
		pairing.Ell(&fVal, vk.GammaNegPC[f.CoeffIndex], &preparedInput)
		pairing.Ell(&fVal, vk.DeltaNegPC[f.CoeffIndex], &in.ProofC)
		f.CoeffIndex++
	}
	f.AteIndex++

	if err := store.Put(addrs.B5, Cell{Kind: CellG2Homogeneous, G2Homogen: r}); err != nil {
		return f, err
	}
	if err := store.Put(addrs.B6, Cell{Kind: CellFq12, Fq12: fVal}); err != nil {
		return f, err
	}

	if f.AteIndex >= len(naf) {
		f.Phase = PhaseMillerLoopFinalize
		f.FinalizeStep = 0
	}
	return f, nil
}

// stepMillerLoopFinalize closes the Miller loop: derive the two
// Frobenius-twisted points q1, q2 from the proof's B point, apply the
// X_IS_NEGATIVE adjustment, then run two more addition-step-plus-ell
// rounds against q1 and q2 (§4.5.1 row 3), consuming the two trailing
// precomputed gamma/delta coefficients that precomputeLineCoeffs appended
// for exactly this purpose.
func (f FSM) stepMillerLoopFinalize(store CellStore, addrs CellAddrs, vk *PreparedVerifyingKey, in *VerifyInputs, budget *Budget) (FSM, error) {
	rCell, err := getKind(store, addrs.B5, CellG2Homogeneous)
	if err != nil {
		return f, err
	}
	fCell, err := getKind(store, addrs.B6, CellFq12)
	if err != nil {
		return f, err
	}
	r := rCell.G2Homogen
	fVal := fCell.Fq12
	preparedCell, err := getKind(store, addrs.B3, CellG1Affine)
	if err != nil {
		return f, err
	}
	preparedInput := preparedCell.G1Affine

	switch f.FinalizeStep {
	case 0:
		if !budget.Spend(CostFq12Square) {
			return f, nil
		}
		q1 := pairing.MulByCharacteristic(&in.ProofB)
		q2 := pairing.MulByCharacteristic(&q1)
		if pairing.XIsNegative {
			r.Y.Neg(&r.Y)
			fVal.Conjugate(&fVal)
		}
		negQ2 := q2
		negQ2.Y.Neg(&negQ2.Y)
		// b3 keeps holding prepared_input (still needed by both rounds
		// below); q1/negQ2 use b1/b2, which PrepareInputs and MillerLoop
		// never touch.
		if err := store.Put(addrs.B1, Cell{Kind: CellG2Affine, G2Affine: q1}); err != nil {
			return f, err
		}
		if err := store.Put(addrs.B2, Cell{Kind: CellG2Affine, G2Affine: negQ2}); err != nil {
			return f, err
		}
		if err := store.Put(addrs.B5, Cell{Kind: CellG2Homogeneous, G2Homogen: r}); err != nil {
			return f, err
		}
		if err := store.Put(addrs.B6, Cell{Kind: CellFq12, Fq12: fVal}); err != nil {
			return f, err
		}
		f.FinalizeStep = 1
		return f, nil

	case 1, 2:
		cost := CostAdditionStepPlusEll + 2*CostEll
		if !budget.Spend(cost) {
			return f, nil
		}
		addr := addrs.B1
		if f.FinalizeStep == 2 {
			addr = addrs.B2
		}
		qCell, err := getKind(store, addr, CellG2Affine)
		if err != nil {
			return f, err
		}
		q := qCell.G2Affine

		coeff := pairing.AdditionStep(&r, &q)
		pairing.Ell(&fVal, coeff, &in.ProofA)
		pairing.Ell(&fVal, vk.GammaNegPC[f.CoeffIndex], &preparedInput)
		pairing.Ell(&fVal, vk.DeltaNegPC[f.CoeffIndex], &in.ProofC)
		f.CoeffIndex++

		if err := store.Put(addrs.B5, Cell{Kind: CellG2Homogeneous, G2Homogen: r}); err != nil {
			return f, err
		}
		if err := store.Put(addrs.B6, Cell{Kind: CellFq12, Fq12: fVal}); err != nil {
			return f, err
		}
		if err := store.Erase(addr); err != nil {
			return f, err
		}

		if f.FinalizeStep == 2 {
			if err := store.Erase(addrs.B3); err != nil {
				return f, err
			}
			// Hand the Miller output to FinalExponentEasyPart in b7.
			if err := store.Put(addrs.B7, Cell{Kind: CellFq12, Fq12: fVal}); err != nil {
				return f, err
			}
			if err := store.Erase(addrs.B5); err != nil {
				return f, err
			}
			if err := store.Erase(addrs.B6); err != nil {
				return f, err
			}
			f.Phase = PhaseFinalExponentEasyPart
			f.FinalizeStep = 0
			return f, nil
		}
		f.FinalizeStep = 2
		return f, nil

	default:
		return f, &FatalError{Reason: "invalid MillerLoopFinalize step"}
	}
}
