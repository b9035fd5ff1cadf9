// Package edwards implements the twisted-Edwards curve embedded in the
// BN254 scalar field ("Baby Jubjub", the construction the Poseidon/gnark
// pack examples use for exactly this purpose) — just far enough to support
// the nullifier commitment and Elgamal-style viewing-key commitment spec.md
// §4.3.2/§4.4.4 describe and §9's jubjub Open Question resolves.
package edwards

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// Curve equation: a*x^2 + y^2 = 1 + d*x^2*y^2, over Fr.
var (
	curveA fr.Element
	curveD fr.Element

	genX fr.Element
	genY fr.Element

	subgroupOrder *big.Int
)

func init() {
	curveA.SetUint64(168700)
	curveD.SetUint64(168696)

	genX.SetString("995203441582195749578291179787384436505546430278305826713579947235728471134")
	genY.SetString("5472060717959818805561601436314318772137091100104008585924551046643952123905")

	subgroupOrder, _ = new(big.Int).SetString("2736030358979909402780800718157159386076813972158567259200215660948447373041", 10)
}

// Point is an affine twisted-Edwards point.
type Point struct {
	X, Y fr.Element
}

// Generator returns the protocol's fixed base point G.
func Generator() Point {
	return Point{X: genX, Y: genY}
}

// Identity returns the curve's neutral element (0, 1).
func Identity() Point {
	var p Point
	p.X.SetZero()
	p.Y.SetOne()
	return p
}

// Add computes the complete twisted-Edwards addition law, valid for any two
// affine points on the curve (the curve is parameterized so that a is a
// square and d is not, making the addition law exception-free).
func Add(p1, p2 Point) Point {
	var x1y2, y1x2, x1x2, y1y2, dxy, num1, num2, denom1, denom2, one fr.Element
	one.SetOne()

	x1y2.Mul(&p1.X, &p2.Y)
	y1x2.Mul(&p1.Y, &p2.X)
	num1.Add(&x1y2, &y1x2)

	x1x2.Mul(&p1.X, &p2.X)
	y1y2.Mul(&p1.Y, &p2.Y)
	num2.Mul(&curveA, &x1x2)
	num2.Sub(&y1y2, &num2)

	dxy.Mul(&curveD, &x1x2)
	dxy.Mul(&dxy, &y1y2)

	denom1.Add(&one, &dxy)
	denom2.Sub(&one, &dxy)

	denom1.Inverse(&denom1)
	denom2.Inverse(&denom2)

	var out Point
	out.X.Mul(&num1, &denom1)
	out.Y.Mul(&num2, &denom2)
	return out
}

// ScalarMul computes [scalar]p via double-and-add over the complete
// addition law.
func ScalarMul(p Point, scalar fr.Element) Point {
	var s big.Int
	scalar.BigInt(&s)

	acc := Identity()
	base := p
	for i := 0; i < s.BitLen(); i++ {
		if s.Bit(i) == 1 {
			acc = Add(acc, base)
		}
		base = Add(base, base)
	}
	return acc
}

// ScalarBaseMul computes [scalar]G.
func ScalarBaseMul(scalar fr.Element) Point {
	return ScalarMul(Generator(), scalar)
}

// TruncateToScalar reduces a base-field element (e.g. a nullifier hash) to
// the embedded curve's prime subgroup order, mirroring the original's
// truncate-to-CAPACITY-bits step before using a hash output as a scalar
// multiplier (§4.3.2 step 4).
func TruncateToScalar(x fr.Element) fr.Element {
	var b big.Int
	x.BigInt(&b)
	b.Mod(&b, subgroupOrder)
	var out fr.Element
	out.SetBigInt(&b)
	return out
}
