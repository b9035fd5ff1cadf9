// Package gadget is the in-circuit counterpart of package poseidon: the
// same five domain-separated hashes, expressed as gnark frontend.Variable
// constraints instead of native field arithmetic, built on
// github.com/consensys/gnark/std/hash/poseidon2 — the same Poseidon2
// gadget used by the weisyn-go and MuriData circuits retrieved alongside
// this spec (other_examples/27cc0c77_weisyn..., other_examples/2aad98a8_MuriData...).
package gadget

import (
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/hash/poseidon2"

	"github.com/soda-maze/maze/poseidon"
)

func hash(api frontend.API, tag poseidon.DomainTag, inputs ...frontend.Variable) (frontend.Variable, error) {
	h, err := poseidon2.NewMerkleDamgardHasher(api)
	if err != nil {
		return nil, err
	}
	h.Write(frontend.Variable(uint64(tag)))
	h.Write(inputs...)
	return h.Sum(), nil
}

// Leaf is the in-circuit form of poseidon.Leaf, used by the Deposit and
// Withdraw circuits to bind a leaf's (index, amount, secret) triple to its
// public leaf value (§4.4.3 step 1, §4.4.4 steps 3-4).
func Leaf(api frontend.API, leafIndex, amount, secret frontend.Variable) (frontend.Variable, error) {
	return hash(api, poseidon.DomainLeaf, leafIndex, amount, secret)
}

// Inner is the in-circuit form of poseidon.Inner.
func Inner(api frontend.API, left, right frontend.Variable) (frontend.Variable, error) {
	return hash(api, poseidon.DomainInner, left, right)
}

// Nullifier is the in-circuit form of poseidon.Nullifier, constrained in
// the withdraw circuit so the public nullifier matches the private
// leaf-index/secret pair (§4.4.2).
func Nullifier(api frontend.API, leafIndex, secret frontend.Variable) (frontend.Variable, error) {
	return hash(api, poseidon.DomainNullifier, leafIndex, secret)
}

// Secret is the in-circuit form of poseidon.Secret.
func Secret(api frontend.API, secret frontend.Variable) (frontend.Variable, error) {
	return hash(api, poseidon.DomainSecret, secret)
}

// Commitment is the in-circuit form of poseidon.Commitment.
func Commitment(api frontend.API, viewPubKey, blinding frontend.Variable) (frontend.Variable, error) {
	return hash(api, poseidon.DomainCommitment, viewPubKey, blinding)
}
