// Package wire implements the byte-level encodings spec.md §6 specifies for
// proofs, public-input field elements, and Rabin parameters — the formats
// the on-chain verifier's cells and the off-chain prover/host boundary
// exchange. All multi-limb values are little-endian, Montgomery form,
// mirroring gnark-crypto's own in-memory element representation (so
// encoding is a direct limb copy, never a Montgomery reduction).
package wire

import (
	"encoding/binary"
	"fmt"

	"github.com/soda-maze/maze/pairing"
)

const (
	fqLimbs     = 4
	fqByteLen   = fqLimbs * 8
	g1AffineLen = 2*fqByteLen + 1
	g2AffineLen = 4*fqByteLen + 1
	// ProofLen is the total encoded size of a Groth16 proof (A, B, C) per
	// §6's wire format: 32+32+1 (G1) + 32×4+1 (G2) + 32+32+1 (G1).
	ProofLen = g1AffineLen + g2AffineLen + g1AffineLen
)

// putFq/getFq rely on gnark-crypto's fp.Element (this package's Fq) being
// defined as a plain [4]uint64 array of Montgomery-form limbs, so encoding
// is a direct limb copy rather than a canonical-form conversion (which
// would require undoing the Montgomery reduction §6 explicitly asks to
// preserve).
func putFq(dst []byte, e *pairing.Fq) {
	for i := 0; i < fqLimbs; i++ {
		binary.LittleEndian.PutUint64(dst[i*8:(i+1)*8], e[i])
	}
}

func getFq(src []byte) pairing.Fq {
	var e pairing.Fq
	for i := 0; i < fqLimbs; i++ {
		e[i] = binary.LittleEndian.Uint64(src[i*8 : (i+1)*8])
	}
	return e
}

func encodeG1Affine(dst []byte, p *pairing.G1Affine) {
	putFq(dst[0:fqByteLen], &p.X)
	putFq(dst[fqByteLen:2*fqByteLen], &p.Y)
	if p.X.IsZero() && p.Y.IsZero() {
		dst[2*fqByteLen] = 1
	}
}

func decodeG1Affine(src []byte) pairing.G1Affine {
	return pairing.G1Affine{
		X: getFq(src[0:fqByteLen]),
		Y: getFq(src[fqByteLen : 2*fqByteLen]),
	}
}

func encodeG2Affine(dst []byte, p *pairing.G2Affine) {
	putFq(dst[0*fqByteLen:1*fqByteLen], &p.X.A0)
	putFq(dst[1*fqByteLen:2*fqByteLen], &p.X.A1)
	putFq(dst[2*fqByteLen:3*fqByteLen], &p.Y.A0)
	putFq(dst[3*fqByteLen:4*fqByteLen], &p.Y.A1)
	if p.X.IsZero() && p.Y.IsZero() {
		dst[4*fqByteLen] = 1
	}
}

func decodeG2Affine(src []byte) pairing.G2Affine {
	var p pairing.G2Affine
	p.X.A0 = getFq(src[0*fqByteLen : 1*fqByteLen])
	p.X.A1 = getFq(src[1*fqByteLen : 2*fqByteLen])
	p.Y.A0 = getFq(src[2*fqByteLen : 3*fqByteLen])
	p.Y.A1 = getFq(src[3*fqByteLen : 4*fqByteLen])
	return p
}

// EncodeProof serialises (A, B, C) per §6's concatenated-blob wire format.
func EncodeProof(a pairing.G1Affine, b pairing.G2Affine, c pairing.G1Affine) []byte {
	out := make([]byte, ProofLen)
	encodeG1Affine(out[0:g1AffineLen], &a)
	encodeG2Affine(out[g1AffineLen:g1AffineLen+g2AffineLen], &b)
	encodeG1Affine(out[g1AffineLen+g2AffineLen:], &c)
	return out
}

// DecodeProof parses a §6-formatted proof blob back into (A, B, C).
func DecodeProof(data []byte) (a pairing.G1Affine, b pairing.G2Affine, c pairing.G1Affine, err error) {
	if len(data) != ProofLen {
		return a, b, c, fmt.Errorf("wire: proof must be %d bytes, got %d", ProofLen, len(data))
	}
	a = decodeG1Affine(data[0:g1AffineLen])
	b = decodeG2Affine(data[g1AffineLen : g1AffineLen+g2AffineLen])
	c = decodeG1Affine(data[g1AffineLen+g2AffineLen:])
	return a, b, c, nil
}

// EncodeFieldElement serialises a public-input field element as 4 × 64-bit
// little-endian limbs in Montgomery form (§6).
func EncodeFieldElement(e *pairing.Fr) []byte {
	out := make([]byte, fqByteLen)
	for i := 0; i < fqLimbs; i++ {
		binary.LittleEndian.PutUint64(out[i*8:(i+1)*8], e[i])
	}
	return out
}

// DecodeFieldElement parses §6's 4×64-bit little-endian limb encoding back
// into a scalar field element.
func DecodeFieldElement(data []byte) (pairing.Fr, error) {
	if len(data) != fqByteLen {
		return pairing.Fr{}, fmt.Errorf("wire: field element must be %d bytes, got %d", fqByteLen, len(data))
	}
	var e pairing.Fr
	for i := 0; i < fqLimbs; i++ {
		e[i] = binary.LittleEndian.Uint64(data[i*8 : (i+1)*8])
	}
	return e, nil
}
