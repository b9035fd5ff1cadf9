package pairing

import (
	"math/big"
	"sync"

	"github.com/consensys/gnark-crypto/ecc/bn254/fp"
)

// TwistType identifies whether G2's twist is multiplicative (M) or
// divisive (D) relative to the sextic non-residue, per §4.1. BN254 (as
// parameterized by arkworks, the library the original soda-maze verifier
// was built against) uses a D-type twist.
type TwistType int

const (
	TwistTypeM TwistType = iota
	TwistTypeD
)

// BN254Twist is the curve's twist type, a program constant.
const BN254Twist = TwistTypeD

// XIsNegative reports whether the BN254 seed x = 4965661367192848881 is
// negative. It is not, so the sign corrections that depend on it (Miller
// loop finalisation, the exp-by-x ladders) are not applied.
const XIsNegative = false

// bn254X is the BN254 curve seed.
var bn254X = big.NewInt(4965661367192848881)

// AteLoopCount returns 6x+2, the exponent the optimal-ate Miller loop is
// indexed by.
func AteLoopCount() *big.Int {
	six := big.NewInt(6)
	t := new(big.Int).Mul(six, bn254X)
	t.Add(t, big.NewInt(2))
	return t
}

// NAF computes the non-adjacent form of n: a sequence of digits in
// {-1, 0, 1}, most-significant digit first, with no two adjacent nonzero
// digits — the representation the Miller loop and the final-exponentiation
// hard part both iterate over (§4.5.1, GLOSSARY "NAF").
func NAF(n *big.Int) []int8 {
	if n.Sign() == 0 {
		return []int8{0}
	}
	x := new(big.Int).Set(n)
	var digitsLE []int8
	two := big.NewInt(2)
	four := big.NewInt(4)
	for x.Sign() > 0 {
		if x.Bit(0) == 1 {
			mod4 := new(big.Int).Mod(x, four)
			var digit int8
			if mod4.Cmp(big.NewInt(3)) == 0 {
				digit = -1
				x.Add(x, big.NewInt(1))
			} else {
				digit = 1
				x.Sub(x, big.NewInt(1))
			}
			digitsLE = append(digitsLE, digit)
		} else {
			digitsLE = append(digitsLE, 0)
		}
		x.Div(x, two)
	}
	// reverse to most-significant-first, the order every consumer in this
	// package (Miller loop, exp-by-x) iterates in.
	out := make([]int8, len(digitsLE))
	for i, d := range digitsLE {
		out[len(digitsLE)-1-i] = d
	}
	return out
}

var (
	ateLoopNAFOnce sync.Once
	ateLoopNAF     []int8
	xNAFOnce       sync.Once
	xNAF           []int8
)

// AteLoopCountNAF is the cached NAF digits of 6x+2, most significant first.
// The leading digit is always 1; the Miller loop accounts for it by
// starting from r = B and f = 1, then iterates the remaining digits from
// index 1 (§4.5.1 MillerLoop).
func AteLoopCountNAF() []int8 {
	ateLoopNAFOnce.Do(func() {
		ateLoopNAF = NAF(AteLoopCount())
	})
	return ateLoopNAF
}

// XNAF is the cached NAF digits of the curve seed x, used by the bounded
// exp-by-x ladders in the final exponentiation hard part (§4.5.1 HardPart1-3).
func XNAF() []int8 {
	xNAFOnce.Do(func() {
		xNAF = NAF(bn254X)
	})
	return xNAF
}

// fqTwoInv is 2^{-1} in Fq, used by the G2 doubling step formula.
var (
	fqTwoInvOnce sync.Once
	fqTwoInv     fp.Element
)

// FqTwoInv returns the multiplicative inverse of 2 in the base field.
func FqTwoInv() fp.Element {
	fqTwoInvOnce.Do(func() {
		fqTwoInv.SetUint64(2)
		fqTwoInv.Inverse(&fqTwoInv)
	})
	return fqTwoInv
}
