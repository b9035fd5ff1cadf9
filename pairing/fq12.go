package pairing

// FrobeniusMap applies the k-th power Frobenius endomorphism x -> x^(q^k)
// to x and writes the result into z, for k in {0,1,2,3} — the powers the
// final exponentiation's easy part and hard part both use (§4.5.1
// FinalExponentEasyPart, HardPart4).
func FrobeniusMap(z, x *Fq12, k int) {
	switch k % 4 {
	case 0:
		z.Set(x)
	case 1:
		z.Frobenius(x)
	case 2:
		z.FrobeniusSquare(x)
	case 3:
		z.FrobeniusCube(x)
	}
}

// CyclotomicSquare squares x in the cyclotomic subgroup the Miller-loop
// output and every final-exponentiation hard-part intermediate live in,
// and writes the result into z.
func CyclotomicSquare(z, x *Fq12) {
	z.CyclotomicSquare(x)
}

// Conjugate computes the Fq6-conjugate of x (negation of the C1 component),
// which for elements of the cyclotomic subgroup equals inversion.
func Conjugate(z, x *Fq12) {
	z.Conjugate(x)
}

// TryInverse inverts x into z and reports whether x was invertible. The
// only non-invertible element in a field is zero; the final exponentiation
// treats that case as a failed verification rather than a fatal error
// (§4.5.1 FinalExponentEasyPart: "if r.inverse() fails, return
// Finished(false)").
func TryInverse(z, x *Fq12) bool {
	if x.IsZero() {
		return false
	}
	z.Inverse(x)
	return true
}

// ExpByNegX raises base to the power of the negated BN254 seed x using its
// NAF representation, via base and its precomputed inverse baseInv (each
// NAF digit of +1 multiplies by baseInv, each -1 multiplies by base,
// mirroring the inverted sign convention of exponentiation by -x), then
// conjugates the result when x itself is negative. This is the
// unbounded, single-call form; the stepwise verifier FSM (package verifier)
// re-implements the same ladder as a resumable, budget-bounded state
// instead of calling this directly, per §4.5.1's MAX_LOOP-bounded
// exp_by_neg_x.
func ExpByNegX(base, baseInv *Fq12) Fq12 {
	var res Fq12
	res.SetOne()
	naf := XNAF()
	for _, d := range naf {
		res.CyclotomicSquare(&res)
		switch d {
		case 1:
			res.Mul(&res, baseInv)
		case -1:
			res.Mul(&res, base)
		}
	}
	if XIsNegative {
		res.Conjugate(&res)
	}
	return res
}
