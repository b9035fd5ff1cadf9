package pairing

import (
	"sync"
)

// twistBCoeff, twistMulByQX and twistMulByQY are the standard BN254 D-twist
// parameterization constants: the curve equation coefficient of the sextic
// twist, and the two Frobenius-scaling constants used by the
// multiplication-by-characteristic endomorphism that closes the Miller
// loop (§4.5.1 MillerLoopFinalize: q1 = π(B), q2 = π(q1)). These are fixed
// BN254 constants, not derived per-proof.
var (
	twistBCoeff    Fq2
	twistMulByQX   Fq2
	twistMulByQY   Fq2
	twistConstOnce sync.Once
)

func loadTwistConstants() {
	twistConstOnce.Do(func() {
		twistBCoeff.A0.SetString("19485874751759354771024239261021720505790618469301721065564631296452457478373")
		twistBCoeff.A1.SetString("266929791119991161246907387137283842545076965332900288569378510910307636690")

		twistMulByQX.A0.SetString("21575463638280843010398324269430826099269044274347216827212613867836435027261")
		twistMulByQX.A1.SetString("10307601595873709700152284273816112264069230130616436755625194854815875713954")

		twistMulByQY.A0.SetString("2821565182194536844548159561693502659359617185244120367078079554186484126554")
		twistMulByQY.A1.SetString("3505843767911556378687030309984248845540243509899259641013678093033130930403")
	})
}

// DoublingStep doubles r in place (homogeneous projective G2) and returns
// the EllCoeff line-evaluation triple for this step, per the standard
// pairing-friendly-curve doubling formula (Miller 2004 / Beuchat et al.),
// specialised to the D-twist that BN254 uses here.
func DoublingStep(r *G2Jac) EllCoeff {
	twoInv := FqTwoInv()

	var a, b, c, e, f, g, h, i, j, eSquare Fq2

	a.Mul(&r.X, &r.Y)
	a.MulByElement(&a, &twoInv)

	b.Square(&r.Y)
	c.Square(&r.Z)

	loadTwistConstants()
	e.Double(&c)
	e.Add(&e, &c)
	e.Mul(&e, &twistBCoeff)

	f.Double(&e)
	f.Add(&f, &e)

	g.Add(&b, &f)
	g.MulByElement(&g, &twoInv)

	h.Add(&r.Y, &r.Z)
	h.Square(&h)
	var bc Fq2
	bc.Add(&b, &c)
	h.Sub(&h, &bc)

	i.Sub(&e, &b)
	j.Square(&r.X)
	eSquare.Square(&e)

	var bf Fq2
	bf.Sub(&b, &f)
	r.X.Mul(&a, &bf)

	var twoESquare Fq2
	twoESquare.Double(&eSquare)
	twoESquare.Add(&twoESquare, &eSquare)
	r.Y.Square(&g)
	r.Y.Sub(&r.Y, &twoESquare)

	r.Z.Mul(&b, &h)

	var twoJ Fq2
	twoJ.Double(&j)
	twoJ.Add(&twoJ, &j)

	var negH Fq2
	negH.Neg(&h)

	if BN254Twist == TwistTypeD {
		return EllCoeff{C0: negH, C1: twoJ, C2: i}
	}
	return EllCoeff{C0: i, C1: twoJ, C2: negH}
}

// AdditionStep adds affine point q into r in place and returns the EllCoeff
// line-evaluation triple for this step.
func AdditionStep(r *G2Jac, q *G2Affine) EllCoeff {
	var theta, lambda, c, d, e, ff, g, h, j Fq2

	var qyz, qxz Fq2
	qyz.Mul(&r.Z, &q.Y)
	theta.Sub(&r.Y, &qyz)

	qxz.Mul(&r.Z, &q.X)
	lambda.Sub(&r.X, &qxz)

	c.Square(&theta)
	d.Square(&lambda)
	e.Mul(&lambda, &d)
	ff.Mul(&r.Z, &c)
	g.Mul(&r.X, &d)

	var twoG Fq2
	twoG.Double(&g)
	h.Add(&e, &ff)
	h.Sub(&h, &twoG)

	r.X.Mul(&lambda, &h)

	var gh, ery Fq2
	gh.Sub(&g, &h)
	ery.Mul(&e, &r.Y)
	r.Y.Mul(&theta, &gh)
	r.Y.Sub(&r.Y, &ery)

	r.Z.Mul(&r.Z, &e)

	var tqx, lqy Fq2
	tqx.Mul(&theta, &q.X)
	lqy.Mul(&lambda, &q.Y)
	j.Sub(&tqx, &lqy)

	var negTheta Fq2
	negTheta.Neg(&theta)

	if BN254Twist == TwistTypeD {
		return EllCoeff{C0: lambda, C1: negTheta, C2: j}
	}
	return EllCoeff{C0: j, C1: negTheta, C2: lambda}
}

// MulByCharacteristic applies the Frobenius-based endomorphism π used to
// collapse the final two Miller-loop accumulators (q1 = π(B), q2 = π(q1))
// instead of running the loop to the full scalar length, per BN-curve
// optimal-ate pairings.
func MulByCharacteristic(p *G2Affine) G2Affine {
	loadTwistConstants()
	var out G2Affine
	out.X.Conjugate(&p.X)
	out.X.Mul(&out.X, &twistMulByQX)
	out.Y.Conjugate(&p.Y)
	out.Y.Mul(&out.Y, &twistMulByQY)
	return out
}
