// Package rabin is the in-circuit counterpart of package vanilla/rabin: it
// re-derives the polynomial identity Q·N + C = P² over schoolbook-multiplied
// digit arrays, with carry propagation enforced digit by digit (§4.4.5),
// grounded on original_source's lib/src/circuits/rabin/{poly.rs,uint.rs}
// convolution-with-carry shape, re-expressed directly in gnark's
// frontend.API instead of a bespoke GeneralUint witness type.
package rabin

import "github.com/consensys/gnark/frontend"

// Params fixes the circuit-side Rabin constants: the modulus as a
// little-endian digit array, the digit bit size, how many digits the
// cipher batches together, and the preimage's total digit count.
type Params struct {
	ModulusDigits []frontend.Variable // constants, length ModulusLen
	BitSize       int
	CipherBatch   int
	ModulusLen    int
}

// carryWidth is generous enough to hold a schoolbook convolution's partial
// sums: a length-n, b-bit digit convolution's largest coefficient is at
// most n·(2^b−1)^2 < 2^(2b+32) for any length this protocol plausibly uses.
func carryWidth(bitSize int) int {
	return 2*bitSize + 32
}

// splitDigit decomposes value into (hi, lo) where lo is its low bitSize
// bits and hi is everything above, enforcing the recomposition
// value = hi·2^bitSize + lo via a single ToBinary range check.
func splitDigit(api frontend.API, value frontend.Variable, bitSize int) (hi, lo frontend.Variable) {
	bits := api.ToBinary(value, carryWidth(bitSize))
	lo = api.FromBinary(bits[:bitSize]...)
	hi = api.FromBinary(bits[bitSize:]...)
	return hi, lo
}

// unpackDigits decomposes v into count digits of bitSize bits each
// (little-endian), enforcing the recomposition Σ 2^{bitSize·i}·digit_i = v.
func unpackDigits(api frontend.API, v frontend.Variable, bitSize, count int) []frontend.Variable {
	bits := api.ToBinary(v, bitSize*count)
	digits := make([]frontend.Variable, count)
	for i := 0; i < count; i++ {
		digits[i] = api.FromBinary(bits[i*bitSize : (i+1)*bitSize]...)
	}
	return digits
}

// polynomialSquare computes the schoolbook convolution of a with itself and
// propagates carries at each coefficient, returning order+1 digits (the
// last holding the final carry-out), mirroring poly.rs's
// polynomial_square.
func polynomialSquare(api frontend.API, a []frontend.Variable, bitSize int) []frontend.Variable {
	order := len(a)
	conv := make([]frontend.Variable, 2*order-1)
	for i := range conv {
		conv[i] = frontend.Variable(0)
	}
	for i := 0; i < order; i++ {
		for j := 0; j < order; j++ {
			conv[i+j] = api.Add(conv[i+j], api.Mul(a[i], a[j]))
		}
	}

	out := make([]frontend.Variable, len(conv)+1)
	carry := frontend.Variable(0)
	for i, coeff := range conv {
		sum := api.Add(coeff, carry)
		hi, lo := splitDigit(api, sum, bitSize)
		out[i] = lo
		carry = hi
	}
	out[len(conv)] = carry
	return out
}

// polynomialMulAdd computes Q·N (schoolbook) plus C, with carry
// propagation, returning a digit array the same length as the longer of
// the two padded inputs plus a final carry digit (poly.rs's
// polynomial_mul followed by polynomial_add).
func polynomialMulAdd(api frontend.API, q, n, c []frontend.Variable, bitSize int) []frontend.Variable {
	order := len(q)
	conv := make([]frontend.Variable, 2*order-1)
	for i := range conv {
		conv[i] = frontend.Variable(0)
	}
	for i := 0; i < order; i++ {
		for j := 0; j < len(n); j++ {
			conv[i+j] = api.Add(conv[i+j], api.Mul(q[i], n[j]))
		}
	}
	for i, ci := range c {
		conv[i] = api.Add(conv[i], ci)
	}

	out := make([]frontend.Variable, len(conv)+1)
	carry := frontend.Variable(0)
	for i, coeff := range conv {
		sum := api.Add(coeff, carry)
		hi, lo := splitDigit(api, sum, bitSize)
		out[i] = lo
		carry = hi
	}
	out[len(conv)] = carry
	return out
}

func assertDigitsEqual(api frontend.API, a, b []frontend.Variable) {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		api.AssertIsEqual(a[i], b[i])
	}
	for i := n; i < len(a); i++ {
		api.AssertIsEqual(a[i], 0)
	}
	for i := n; i < len(b); i++ {
		api.AssertIsEqual(b[i], 0)
	}
}

// Verify enforces the Rabin escrow identity for one leaf: unpacks
// cipherFieldArray and the leaf field into digit arrays, builds the
// preimage from paddingArray ∥ leafDigits, and asserts
// Q·N + C = P² digit-for-digit (§4.4.5 steps 1-4).
func Verify(api frontend.API, p Params, leaf frontend.Variable, cipherFieldArray, quotientDigits, paddingArray []frontend.Variable) {
	cipherDigits := make([]frontend.Variable, 0, len(cipherFieldArray)*p.CipherBatch)
	for _, field := range cipherFieldArray {
		cipherDigits = append(cipherDigits, unpackDigits(api, field, p.BitSize, p.CipherBatch)...)
	}
	if len(cipherDigits) > p.ModulusLen {
		cipherDigits = cipherDigits[:p.ModulusLen]
	}

	leafDigitCount := (254 + p.BitSize - 1) / p.BitSize
	leafDigits := unpackDigits(api, leaf, p.BitSize, leafDigitCount)

	preimage := make([]frontend.Variable, 0, p.ModulusLen)
	preimage = append(preimage, paddingArray...)
	preimage = append(preimage, leafDigits...)

	square := polynomialSquare(api, preimage, p.BitSize)
	qnPlusC := polynomialMulAdd(api, quotientDigits, p.ModulusDigits, cipherDigits, p.BitSize)

	assertDigitsEqual(api, square, qnPlusC)
}
