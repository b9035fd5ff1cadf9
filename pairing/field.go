// Package pairing implements BN254 field, curve and pairing arithmetic for
// Groth16 verification, built on top of github.com/consensys/gnark-crypto's
// BN254 field tower (Fr/Fq/Fq2/Fq6/Fq12) and group implementations.
//
// gnark-crypto supplies Montgomery-form field arithmetic, Karatsuba Fq2
// multiplication, the cyclotomic subgroup operations on Fq12 and Jacobian
// group arithmetic; this package adds the miller-loop-specific primitives
// spec'd in §4.1 that gnark-crypto's public API does not expose as
// standalone steps: doubling/addition steps returning line-evaluation
// coefficients, the sparse ell multiplication, the BN254 Frobenius
// endomorphism used to close the miller loop, and a leading-zero-skipping
// bit iterator for unpacking public inputs.
package pairing

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fp"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// Fr is a BN254 scalar field element — the field F that all circuit
// arithmetic (Poseidon, Merkle, range checks) lives in.
type Fr = fr.Element

// Fq is the BN254 base field element underlying G1 and the bottom of the
// Fq2/Fq6/Fq12 extension tower.
type Fq = fp.Element

// Fq2, Fq6, Fq12 are the quadratic, cubic-over-quadratic and
// quadratic-over-cubic extensions used by G2 and the pairing target group.
type (
	Fq2  = bn254.E2
	Fq6  = bn254.E6
	Fq12 = bn254.E12
)

// G1Affine, G1Jac, G2Affine, G2Jac are BN254 group elements in affine and
// Jacobian (for G1) / homogeneous-projective (for G2) coordinates.
type (
	G1Affine = bn254.G1Affine
	G1Jac    = bn254.G1Jac
	G2Affine = bn254.G2Affine
	G2Jac    = bn254.G2Jac
)

// EllCoeff is the (c0, c1, c2) line-evaluation triple returned by a
// doubling or addition step, ready to be folded into the Miller
// accumulator by Ell.
type EllCoeff struct {
	C0, C1, C2 Fq2
}

// BitIteratorBE iterates the bits of a big.Int most-significant-bit first,
// skipping leading zero bits — used when unpacking a public input for the
// input linear combination (§4.5.1 PrepareInputs).
type BitIteratorBE struct {
	bits []bool
	pos  int
}

// NewBitIteratorBE builds a BitIteratorBE over n's bits with leading zeros
// dropped (an all-zero input yields zero bits, matching
// BitIteratorBE::without_leading_zeros on a zero field element).
func NewBitIteratorBE(n *big.Int) *BitIteratorBE {
	if n.Sign() == 0 {
		return &BitIteratorBE{}
	}
	bitLen := n.BitLen()
	bits := make([]bool, bitLen)
	for i := 0; i < bitLen; i++ {
		bits[bitLen-1-i] = n.Bit(i) == 1
	}
	return &BitIteratorBE{bits: bits}
}

// Skip advances past the first n bits (used when resuming a
// partially-consumed public input across FSM transitions).
func (it *BitIteratorBE) Skip(n int) {
	it.pos += n
	if it.pos > len(it.bits) {
		it.pos = len(it.bits)
	}
}

// Next returns the next bit and true, or false once exhausted.
func (it *BitIteratorBE) Next() (bool, bool) {
	if it.pos >= len(it.bits) {
		return false, false
	}
	b := it.bits[it.pos]
	it.pos++
	return b, true
}

// Remaining reports how many bits are left.
func (it *BitIteratorBE) Remaining() int {
	return len(it.bits) - it.pos
}

// FrToBigInt converts a scalar field element to a big.Int in [0, r).
func FrToBigInt(e *Fr) *big.Int {
	var b big.Int
	e.BigInt(&b)
	return &b
}
