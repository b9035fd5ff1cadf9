// Package vanilla builds the (public_inputs, private_inputs) witness
// tuples the circuit layer expects from user-supplied origin inputs, for
// both Deposit and Withdraw (§4.3).
package vanilla

import (
	"errors"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/soda-maze/maze/poseidon"
)

// Sentinel input-shape errors, detected before any proof work is attempted
// (§7 "input-shape errors ... surfaced to the caller before any proof
// work", §6 "errors {InvalidLeafIndex, InvalidAmount, InvalidNeighborLength,
// HashFailure}").
var (
	ErrInvalidLeafIndex    = errors.New("vanilla: leaf index out of range for tree height")
	ErrInvalidAmount       = errors.New("vanilla: amount must be non-zero")
	ErrInvalidNeighborLen  = errors.New("vanilla: neighbor node slice length does not match tree height")
	ErrInsufficientBalance = errors.New("vanilla: withdraw amount exceeds source leaf balance")
	ErrLeafIndexOrder      = errors.New("vanilla: src leaf index must be less than dst leaf index")
)

// LeafLayout selects which field elements occupy a leaf hash's three input
// slots. spec.md §3/§4.3.1 describes leaf = Poseidon_leaf(index, amount,
// secret) directly; original_source's lib/src/vanilla/proof.rs instead
// folds an asset mint into the first slot and a one-way hash of the secret
// into the third. Both are legitimate — this module defaults to the
// spec.md layout so its literal S3/S4 test vectors (§8) reproduce exactly,
// while keeping the original's layout available (§3 "added" note).
type LeafLayout int

const (
	// IndexAmountSecret hashes (leaf_index, amount, secret) — spec.md's
	// literal text, and this package's default.
	IndexAmountSecret LeafLayout = iota
	// MintAmountSecretHash hashes (mint, amount, Poseidon_secret(secret)) —
	// original_source's layout.
	MintAmountSecretHash
)

// TreeConfig fixes the deployment-wide parameters a proving/verifying key
// pair is generated for: the Merkle tree height and which leaf layout is in
// use. Baking Height into the verifying key (rather than accepting it at
// runtime) resolves spec.md §9's "no single canonical tree height" Open
// Question (SPEC_FULL.md §9).
type TreeConfig struct {
	Height int
	Layout LeafLayout
}

func leafValue(cfg TreeConfig, slot1, amount, secret fr.Element) fr.Element {
	switch cfg.Layout {
	case MintAmountSecretHash:
		return poseidon.Leaf(slot1, amount, poseidon.Secret(secret))
	default:
		return poseidon.Leaf(slot1, amount, secret)
	}
}
