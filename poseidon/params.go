// Package poseidon provides the domain-separated Poseidon hashes used
// throughout the shielded pool: leaf commitments, inner Merkle nodes,
// nullifiers, secrets and viewing-key commitments each hash under a
// distinct domain, so that no two of these uses can ever collide even when
// fed the same field elements (§3, §4.2).
//
// The permutation itself is not hand-rolled: both the native and in-circuit
// hashers are built on gnark-crypto's and gnark's own Poseidon2
// implementations (github.com/consensys/gnark-crypto/ecc/bn254/fr/poseidon2
// and github.com/consensys/gnark/std/hash/poseidon2), the same packages the
// pack's own Poseidon users (zk.Poseidon2Hasher, and the weisyn-go and
// MuriData circuits under other_examples/) depend on. See DESIGN.md for why
// a hand-written round-constant table was rejected in favor of these.
package poseidon

import "github.com/consensys/gnark-crypto/ecc/bn254/fr"

// DomainTag distinguishes the five hash uses so that a leaf hash can never
// be replayed as a nullifier, a secret hash as an inner node, and so on.
// It is mixed in as a leading field element ahead of every hash's real
// inputs.
type DomainTag uint64

const (
	// DomainLeaf hashes a leaf's (index, amount, secret) triple into its
	// Merkle leaf value (§4.2, §4.3.1).
	DomainLeaf DomainTag = iota + 1
	// DomainInner combines two child hashes into their parent during
	// Merkle path computation and verification (§4.2).
	DomainInner
	// DomainNullifier derives a withdrawal's nullifier from a leaf's tree
	// index and its secret (§4.3.2).
	DomainNullifier
	// DomainSecret hashes a raw secret into the value embedded in a leaf,
	// so a leaf never reveals the secret itself (§4.3.1).
	DomainSecret
	// DomainCommitment derives an Elgamal-style viewing-key commitment,
	// resolving the jubjub-gadget Open Question (§3, §9).
	DomainCommitment
)

func (t DomainTag) element() fr.Element {
	var e fr.Element
	e.SetUint64(uint64(t))
	return e
}
