package pairing

// Ell folds one doubling- or addition-step line evaluation into the Miller
// accumulator f, scaling the line coefficients by the fixed G1 point p
// first (the two non-trivial coefficients are always multiplied by p's
// affine x/y before the sparse multiplication — §4.1, GLOSSARY "ell").
//
// Which two coefficients get scaled, and which sparse-multiplication
// routine folds them in, depends on the twist type: M-twist uses
// mul_by_014, D-twist uses mul_by_034.
func Ell(f *Fq12, coeffs EllCoeff, p *G1Affine) {
	c0 := coeffs.C0
	c1 := coeffs.C1
	c2 := coeffs.C2

	switch BN254Twist {
	case TwistTypeM:
		c2.MulByElement(&c2, &p.Y)
		c1.MulByElement(&c1, &p.X)
		mulBy014(f, &c0, &c1, &c2)
	default: // TwistTypeD
		c0.MulByElement(&c0, &p.Y)
		c1.MulByElement(&c1, &p.X)
		mulBy034(f, &c0, &c1, &c2)
	}
}

// mulBy034 multiplies f in place by the sparse Fq12 element whose six Fq2
// coefficients are (c0, 0, 0 | c3, c4, 0) in the (C0.B0..B2, C1.B0..B2)
// basis gnark-crypto's E12 uses. Rather than hand-rolling the Karatsuba
// short-cuts a dedicated sparse routine would use, this builds the sparse
// operand explicitly and multiplies through gnark-crypto's general,
// audited Fq12 Mul.
func mulBy034(f *Fq12, c0, c3, c4 *Fq2) {
	var sparse Fq12
	sparse.C0.B0.Set(c0)
	sparse.C1.B0.Set(c3)
	sparse.C1.B1.Set(c4)
	f.Mul(f, &sparse)
}

// mulBy014 is mulBy034's M-twist counterpart: the sparse operand's six Fq2
// coefficients are (c0, c1, 0 | 0, c4, 0).
func mulBy014(f *Fq12, c0, c1, c4 *Fq2) {
	var sparse Fq12
	sparse.C0.B0.Set(c0)
	sparse.C0.B1.Set(c1)
	sparse.C1.B1.Set(c4)
	f.Mul(f, &sparse)
}
