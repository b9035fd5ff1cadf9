package verifier

import "github.com/soda-maze/maze/pairing"

// maxDigitsPerHardPartStep bounds how many NAF digits of X a single
// HardPart1/2/3 transition consumes (§4.5.1: "up to 8 NAF digits of X per
// transition").
const maxDigitsPerHardPartStep = 8

// stepFinalExponentEasyPart runs the easy part of the final exponentiation
// on the Miller-loop output held in b7 (§4.5.1 row 4). A non-invertible
// intermediate decides the verification negative rather than erroring
// (§4.5.3, §7).
func (f FSM) stepFinalExponentEasyPart(store CellStore, addrs CellAddrs, budget *Budget) (FSM, error) {
	if !budget.Spend(4 * CostFq12Square) {
		return f, nil
	}

	rCell, err := getKind(store, addrs.B7, CellFq12)
	if err != nil {
		return f, err
	}
	rVal := rCell.Fq12

	var rInv pairing.Fq12
	if !pairing.TryInverse(&rInv, &rVal) {
		f.Phase = PhaseFinished
		f.Result = false
		return f, nil
	}

	var conj pairing.Fq12
	pairing.Conjugate(&conj, &rVal)
	conj.Mul(&conj, &rInv)
	rVal = conj

	var rP2 pairing.Fq12
	pairing.FrobeniusMap(&rP2, &rVal, 2)
	rVal.Mul(&rVal, &rP2)

	var rInvNext, y0 pairing.Fq12
	pairing.Conjugate(&rInvNext, &rVal)
	y0.SetOne()

	if err := store.Put(addrs.B1, Cell{Kind: CellFq12, Fq12: rInvNext}); err != nil {
		return f, err
	}
	if err := store.Put(addrs.B2, Cell{Kind: CellFq12, Fq12: y0}); err != nil {
		return f, err
	}
	if err := store.Put(addrs.B7, Cell{Kind: CellFq12, Fq12: rVal}); err != nil {
		return f, err
	}

	f.Phase = PhaseHardPart1
	f.HardIndex = 0
	return f, nil
}

// stepHardPart1 computes y0 = r^{-x} via the bounded ladder, then on
// completion derives y1, y2, y3, y3_inv and hands off to HardPart2
// (§4.5.1 row 5).
func (f FSM) stepHardPart1(store CellStore, addrs CellAddrs, budget *Budget) (FSM, error) {
	rInvCell, err := getKind(store, addrs.B1, CellFq12)
	if err != nil {
		return f, err
	}
	y0Cell, err := getKind(store, addrs.B2, CellFq12)
	if err != nil {
		return f, err
	}
	rCell, err := getKind(store, addrs.B7, CellFq12)
	if err != nil {
		return f, err
	}
	rInv := rInvCell.Fq12
	y0 := y0Cell.Fq12
	rVal := rCell.Fq12

	var done bool
	y0, f.HardIndex, done = hardPartLadderStepBounded(budget, f.HardIndex, y0, rVal, rInv, maxDigitsPerHardPartStep)

	if !done {
		if err := store.Put(addrs.B2, Cell{Kind: CellFq12, Fq12: y0}); err != nil {
			return f, err
		}
		return f, nil
	}

	if pairing.XIsNegative {
		pairing.Conjugate(&y0, &y0)
	}
	var y1, y2, y3, y3Inv pairing.Fq12
	pairing.CyclotomicSquare(&y1, &y0)
	pairing.CyclotomicSquare(&y2, &y1)
	y3.Mul(&y2, &y1)
	pairing.Conjugate(&y3Inv, &y3)

	if err := store.Put(addrs.B1, Cell{Kind: CellFq12, Fq12: y3Inv}); err != nil {
		return f, err
	}
	if err := store.Put(addrs.B2, Cell{Kind: CellFq12, Fq12: y1}); err != nil {
		return f, err
	}
	if err := store.Put(addrs.B3, Cell{Kind: CellFq12, Fq12: y3}); err != nil {
		return f, err
	}
	var y4Init pairing.Fq12
	y4Init.SetOne()
	if err := store.Put(addrs.B4, Cell{Kind: CellFq12, Fq12: y4Init}); err != nil {
		return f, err
	}

	f.Phase = PhaseHardPart2
	f.HardIndex = 0
	return f, nil
}

// hardPartLadderStepBounded runs one bounded slice of an exp-by-x ladder:
// square the accumulator and, for each nonzero NAF digit of X consumed this
// call, multiply by base (digit > 0) or baseInv (digit < 0) — the literal
// §4.5.1 HardPart1 rule, reused unchanged by HardPart2 and HardPart3
// against their own (base, baseInv) pair, capped at maxDigits new digits
// this call on top of whatever the budget allows.
func hardPartLadderStepBounded(budget *Budget, hardIndex int, acc, base, baseInv pairing.Fq12, maxDigits int) (pairing.Fq12, int, bool) {
	naf := pairing.XNAF()
	consumed := 0
	for hardIndex < len(naf) && consumed < maxDigits {
		if !budget.Spend(CostFq12Square) {
			return acc, hardIndex, false
		}
		pairing.CyclotomicSquare(&acc, &acc)
		switch naf[hardIndex] {
		case 1:
			acc.Mul(&acc, &base)
		case -1:
			acc.Mul(&acc, &baseInv)
		}
		hardIndex++
		consumed++
	}
	return acc, hardIndex, hardIndex >= len(naf)
}

// stepHardPart2 computes y4 = y3^{-x} via the bounded ladder, then derives
// y5, y5_inv and hands off to HardPart3 (§4.5.1 row 6).
func (f FSM) stepHardPart2(store CellStore, addrs CellAddrs, budget *Budget) (FSM, error) {
	y3InvCell, err := getKind(store, addrs.B1, CellFq12)
	if err != nil {
		return f, err
	}
	y3Cell, err := getKind(store, addrs.B3, CellFq12)
	if err != nil {
		return f, err
	}
	y4Cell, err := getKind(store, addrs.B4, CellFq12)
	if err != nil {
		return f, err
	}
	y3Inv := y3InvCell.Fq12
	y3 := y3Cell.Fq12
	y4 := y4Cell.Fq12

	var done bool
	y4, f.HardIndex, done = hardPartLadderStepBounded(budget, f.HardIndex, y4, y3, y3Inv, maxDigitsPerHardPartStep)

	if !done {
		if err := store.Put(addrs.B4, Cell{Kind: CellFq12, Fq12: y4}); err != nil {
			return f, err
		}
		return f, nil
	}

	var y5, y5Inv pairing.Fq12
	pairing.CyclotomicSquare(&y5, &y4)
	pairing.Conjugate(&y5Inv, &y5)

	if err := store.Put(addrs.B1, Cell{Kind: CellFq12, Fq12: y5Inv}); err != nil {
		return f, err
	}
	if err := store.Put(addrs.B4, Cell{Kind: CellFq12, Fq12: y4}); err != nil {
		return f, err
	}
	if err := store.Put(addrs.B5, Cell{Kind: CellFq12, Fq12: y5}); err != nil {
		return f, err
	}
	var y6Init pairing.Fq12
	y6Init.SetOne()
	if err := store.Put(addrs.B6, Cell{Kind: CellFq12, Fq12: y6Init}); err != nil {
		return f, err
	}

	f.Phase = PhaseHardPart3
	f.HardIndex = 0
	return f, nil
}

// stepHardPart3 computes y6 = y5^{-x} via the bounded ladder, then derives
// y7, y8 and hands off to HardPart4 (§4.5.1 row 7).
func (f FSM) stepHardPart3(store CellStore, addrs CellAddrs, budget *Budget) (FSM, error) {
	y5InvCell, err := getKind(store, addrs.B1, CellFq12)
	if err != nil {
		return f, err
	}
	y3Cell, err := getKind(store, addrs.B3, CellFq12)
	if err != nil {
		return f, err
	}
	y4Cell, err := getKind(store, addrs.B4, CellFq12)
	if err != nil {
		return f, err
	}
	y5Cell, err := getKind(store, addrs.B5, CellFq12)
	if err != nil {
		return f, err
	}
	y6Cell, err := getKind(store, addrs.B6, CellFq12)
	if err != nil {
		return f, err
	}
	y5Inv := y5InvCell.Fq12
	y3 := y3Cell.Fq12
	y4 := y4Cell.Fq12
	y5 := y5Cell.Fq12
	y6 := y6Cell.Fq12

	var done bool
	y6, f.HardIndex, done = hardPartLadderStepBounded(budget, f.HardIndex, y6, y5, y5Inv, maxDigitsPerHardPartStep)

	if !done {
		if err := store.Put(addrs.B6, Cell{Kind: CellFq12, Fq12: y6}); err != nil {
			return f, err
		}
		return f, nil
	}

	var y3Conj, y6Conj, y7, y8 pairing.Fq12
	pairing.Conjugate(&y3Conj, &y3)
	pairing.Conjugate(&y6Conj, &y6)
	y7.Mul(&y6Conj, &y4)
	y8.Mul(&y7, &y3Conj)

	if err := store.Put(addrs.B3, Cell{Kind: CellFq12, Fq12: y8}); err != nil {
		return f, err
	}
	if err := store.Erase(addrs.B1); err != nil {
		return f, err
	}
	if err := store.Erase(addrs.B5); err != nil {
		return f, err
	}
	if err := store.Erase(addrs.B6); err != nil {
		return f, err
	}

	f.Phase = PhaseHardPart4
	return f, nil
}

// stepHardPart4 performs the final rational combination and compares the
// result against the verifying key's alpha·beta constant (§4.5.1 row 8,
// the terminal decision).
func (f FSM) stepHardPart4(store CellStore, addrs CellAddrs, vk *PreparedVerifyingKey, budget *Budget) (FSM, error) {
	if !budget.Spend(8 * CostFq12Square) {
		return f, nil
	}

	y1Cell, err := getKind(store, addrs.B2, CellFq12)
	if err != nil {
		return f, err
	}
	y8Cell, err := getKind(store, addrs.B3, CellFq12)
	if err != nil {
		return f, err
	}
	y4Cell, err := getKind(store, addrs.B4, CellFq12)
	if err != nil {
		return f, err
	}
	rCell, err := getKind(store, addrs.B7, CellFq12)
	if err != nil {
		return f, err
	}
	y1 := y1Cell.Fq12
	y8 := y8Cell.Fq12
	y4 := y4Cell.Fq12
	rVal := rCell.Fq12

	var y9, y10, y11, y12, y13, y14, rConj, y15, y16 pairing.Fq12
	y9.Mul(&y8, &y1)
	y10.Mul(&y8, &y4)
	y11.Mul(&y10, &rVal)
	pairing.FrobeniusMap(&y12, &y9, 1)
	y13.Mul(&y12, &y11)
	var y8P2 pairing.Fq12
	pairing.FrobeniusMap(&y8P2, &y8, 2)
	y14.Mul(&y8P2, &y13)
	pairing.Conjugate(&rConj, &rVal)
	var rConjY9 pairing.Fq12
	rConjY9.Mul(&rConj, &y9)
	pairing.FrobeniusMap(&y15, &rConjY9, 3)
	y16.Mul(&y15, &y14)

	for _, addr := range [...]CellAddr{addrs.B2, addrs.B3, addrs.B4, addrs.B7} {
		if err := store.Erase(addr); err != nil {
			return f, err
		}
	}

	f.Phase = PhaseFinished
	f.Result = y16.Equal(&vk.AlphaBeta)
	return f, nil
}
