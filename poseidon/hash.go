package poseidon

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/poseidon2"
)

// hasherFactory is the underlying gnark-crypto hasher constructor, held
// behind a var the way the teacher's zk.poseidon2HasherFactory is, so a
// test can swap it for a recording stub.
var hasherFactory = poseidon2.NewMerkleDamgardHasher

// hash runs tag and inputs through a fresh Merkle-Damgard Poseidon2 sponge
// and returns the digest as a scalar field element.
func hash(tag DomainTag, inputs ...fr.Element) fr.Element {
	h := hasherFactory()
	tagBytes := tag.element().Bytes()
	h.Write(tagBytes[:])
	for _, in := range inputs {
		b := in.Bytes()
		h.Write(b[:])
	}
	sum := h.Sum(nil)
	var out fr.Element
	out.SetBytes(sum)
	return out
}

// Leaf computes a deposit or withdraw-change leaf value from its tree
// index, amount and secret (§3 "Leaf content", §4.3.1 step 4: leaf =
// Poseidon_leaf(index, amount, secret)).
func Leaf(leafIndex, amount, secret fr.Element) fr.Element {
	return hash(DomainLeaf, leafIndex, amount, secret)
}

// Inner combines two child node values into their parent during Merkle
// path computation (§4.2).
func Inner(left, right fr.Element) fr.Element {
	return hash(DomainInner, left, right)
}

// Nullifier derives the nullifier a withdrawal reveals on-chain from the
// leaf's tree index and the depositor's secret (§4.3.2).
func Nullifier(leafIndex, secret fr.Element) fr.Element {
	return hash(DomainNullifier, leafIndex, secret)
}

// Secret hashes a raw secret into the value embedded in a leaf, so that the
// leaf commitment never directly exposes the secret (§4.3.1).
func Secret(secret fr.Element) fr.Element {
	return hash(DomainSecret, secret)
}

// Commitment derives a viewing-key commitment from a viewing public key and
// a blinding factor (§3, §9 — the resolution of the jubjub-gadget Open
// Question: an Elgamal-style commitment rather than a full jubjub point
// gadget).
func Commitment(viewPubKey, blinding fr.Element) fr.Element {
	return hash(DomainCommitment, viewPubKey, blinding)
}
