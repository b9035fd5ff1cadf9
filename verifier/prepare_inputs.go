package verifier

import "github.com/soda-maze/maze/pairing"

// maxBitsPerPrepareInputsStep bounds how many bits of one public input a
// single PrepareInputs transition consumes (§4.5.1: "for up to 8 successive
// bits of inputs[i]").
const maxBitsPerPrepareInputsStep = 8

// stepPrepareInputs performs one PrepareInputs transition (§4.5.1 row 1):
// fold up to 8 more bits of the current public input into tmp via
// double-and-add against gamma_abc_g1[i+1], and when the input is
// exhausted, fold tmp into the running accumulator g_ic and move to the
// next input. When every input has been folded in, seed MillerLoop's r and
// f and hand off.
func (f FSM) stepPrepareInputs(store CellStore, addrs CellAddrs, vk *PreparedVerifyingKey, in *VerifyInputs, budget *Budget) (FSM, error) {
	if f.InputIndex == 0 && f.BitsDone == 0 {
		var gIC pairing.G1Jac
		gIC.FromAffine(&vk.GammaABCG1[0])
		if err := store.Put(addrs.B3, Cell{Kind: CellG1Jacobian, G1Jacobian: gIC}); err != nil {
			return f, err
		}
		if err := store.Put(addrs.B4, Cell{Kind: CellG1Jacobian}); err != nil {
			return f, err
		}
	}

	if f.InputIndex >= len(in.PublicInputs) {
		return f.finishPrepareInputs(store, addrs, in, budget)
	}

	gicCell, err := getKind(store, addrs.B3, CellG1Jacobian)
	if err != nil {
		return f, err
	}
	tmpCell, err := getKind(store, addrs.B4, CellG1Jacobian)
	if err != nil {
		return f, err
	}
	gIC := gicCell.G1Jacobian
	tmp := tmpCell.G1Jacobian

	it := pairing.NewBitIteratorBE(pairing.FrToBigInt(&in.PublicInputs[f.InputIndex]))
	it.Skip(f.BitsDone)

	bitsConsumed := 0
	for bitsConsumed < maxBitsPerPrepareInputsStep {
		bit, ok := it.Next()
		if !ok {
			break
		}
		if !budget.Spend(CostScalarMulBit) {
			break
		}
		tmp.Double(&tmp)
		if bit {
			var term pairing.G1Jac
			term.FromAffine(&vk.GammaABCG1[f.InputIndex+1])
			tmp.AddAssign(&term)
		}
		bitsConsumed++
	}
	f.BitsDone += bitsConsumed

	if it.Remaining() == 0 {
		if !budget.Spend(CostG1Add) {
			if err := store.Put(addrs.B4, Cell{Kind: CellG1Jacobian, G1Jacobian: tmp}); err != nil {
				return f, err
			}
			return f, nil
		}
		gIC.AddAssign(&tmp)
		f.InputIndex++
		f.BitsDone = 0
		tmp = pairing.G1Jac{}
	}

	if err := store.Put(addrs.B3, Cell{Kind: CellG1Jacobian, G1Jacobian: gIC}); err != nil {
		return f, err
	}
	if err := store.Put(addrs.B4, Cell{Kind: CellG1Jacobian, G1Jacobian: tmp}); err != nil {
		return f, err
	}

	if f.InputIndex >= len(in.PublicInputs) {
		return f.finishPrepareInputs(store, addrs, in, budget)
	}
	return f, nil
}

// finishPrepareInputs projects g_ic to affine as prepared_input, seeds the
// MillerLoop accumulators r := proof.B (homogeneous-projective) and f := 1,
// and erases the now-dead tmp cell.
func (f FSM) finishPrepareInputs(store CellStore, addrs CellAddrs, in *VerifyInputs, budget *Budget) (FSM, error) {
	gicCell, err := getKind(store, addrs.B3, CellG1Jacobian)
	if err != nil {
		return f, err
	}
	var preparedInput pairing.G1Affine
	preparedInput.FromJacobian(&gicCell.G1Jacobian)

	var r pairing.G2Jac
	r.FromAffine(&in.ProofB)

	var one pairing.Fq12
	one.SetOne()

	if err := store.Put(addrs.B3, Cell{Kind: CellG1Affine, G1Affine: preparedInput}); err != nil {
		return f, err
	}
	if err := store.Erase(addrs.B4); err != nil {
		return f, err
	}
	if err := store.Put(addrs.B5, Cell{Kind: CellG2Homogeneous, G2Homogen: r}); err != nil {
		return f, err
	}
	if err := store.Put(addrs.B6, Cell{Kind: CellFq12, Fq12: one}); err != nil {
		return f, err
	}

	f.Phase = PhaseMillerLoop
	f.AteIndex = 1
	f.CoeffIndex = 0
	return f, nil
}
