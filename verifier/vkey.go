package verifier

import (
	"github.com/consensys/gnark-crypto/ecc/bn254"
	bn254groth16 "github.com/consensys/gnark/backend/groth16/bn254"

	"github.com/soda-maze/maze/pairing"
)

// PreparedVerifyingKey holds the verifying-key-derived constants the
// stepwise FSM treats as read-only program constants, embedded in the
// on-chain binary per circuit identity (§5 "Shared resource policy", §6
// "Verifying-key constants baked into the binary"): alpha·beta (the Fq12
// HardPart4 compares its final output against), the gamma_abc_g1 linear
// combination basis, and the precomputed Miller-loop line coefficients for
// pairing against the two FIXED G2 points -gamma and -delta (§4.5.1
// MillerLoop's "γ_neg_pc[coeff_index]", "δ_neg_pc[coeff_index]") — gamma and
// delta never vary per-proof, so their doubling/addition-step coefficients
// are computed once here instead of inside every verification.
type PreparedVerifyingKey struct {
	AlphaBeta  pairing.Fq12
	GammaABCG1 []pairing.G1Affine
	GammaNegPC []pairing.EllCoeff
	DeltaNegPC []pairing.EllCoeff
}

// PrepareVerifyingKey derives a PreparedVerifyingKey from a compiled Groth16
// verifying key, grounded on the field layout gnark's concrete BN254
// verifying key exposes (vk.G1.{Alpha,K}, vk.G2.{Beta,Gamma,Delta} — see
// DESIGN.md for the pack example this was read off).
func PrepareVerifyingKey(vk *bn254groth16.VerifyingKey) (*PreparedVerifyingKey, error) {
	alphaBeta, err := bn254.Pair([]bn254.G1Affine{vk.G1.Alpha}, []bn254.G2Affine{vk.G2.Beta})
	if err != nil {
		return nil, err
	}

	var negGamma, negDelta bn254.G2Affine
	negGamma.Neg(&vk.G2.Gamma)
	negDelta.Neg(&vk.G2.Delta)

	gammaABCG1 := make([]pairing.G1Affine, len(vk.G1.K))
	copy(gammaABCG1, vk.G1.K)

	return &PreparedVerifyingKey{
		AlphaBeta:  alphaBeta,
		GammaABCG1: gammaABCG1,
		GammaNegPC: precomputeLineCoeffs(negGamma),
		DeltaNegPC: precomputeLineCoeffs(negDelta),
	}, nil
}

// precomputeLineCoeffs runs the optimal-ate Miller loop's doubling/addition
// sequence against a FIXED G2 point q, collecting every line-evaluation
// triple it would otherwise compute at verification time. Because q never
// changes across proofs, this entire sequence — including the two closing
// Frobenius-twisted addition steps — is computed once, here, rather than
// once per verification (§4.5.1's per-proof MillerLoop only repeats this
// work for the proof's own B point).
func precomputeLineCoeffs(q bn254.G2Affine) []pairing.EllCoeff {
	var r pairing.G2Jac
	r.FromAffine(&q)

	var coeffs []pairing.EllCoeff
	naf := pairing.AteLoopCountNAF()
	for i := 1; i < len(naf); i++ {
		coeffs = append(coeffs, pairing.DoublingStep(&r))
		switch naf[i] {
		case 1:
			coeffs = append(coeffs, pairing.AdditionStep(&r, &q))
		case -1:
			var negQ bn254.G2Affine
			negQ.Neg(&q)
			coeffs = append(coeffs, pairing.AdditionStep(&r, &negQ))
		}
	}

	q1 := pairing.MulByCharacteristic(&q)
	q2 := pairing.MulByCharacteristic(&q1)
	if pairing.XIsNegative {
		r.Y.Neg(&r.Y)
	}
	coeffs = append(coeffs, pairing.AdditionStep(&r, &q1))

	negQ2 := q2
	negQ2.Y.Neg(&negQ2.Y)
	coeffs = append(coeffs, pairing.AdditionStep(&r, &negQ2))

	return coeffs
}
