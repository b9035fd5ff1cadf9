// Package merkle computes blank-tree constants and Merkle paths natively,
// mirroring exactly what the Deposit/Withdraw circuits enforce in
// constraint form (§3, §4.3, §4.4.1).
package merkle

import (
	"errors"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/soda-maze/maze/poseidon"
)

// ErrHeightMismatch describes a path whose neighbor-node slice length does
// not match the tree height it is checked against. No function in this
// package returns it: PathUp and Root hash through as many neighbors as
// they are given. Length checks against the configured height happen in
// package vanilla, which returns its own ErrInvalidNeighborLen.
var ErrHeightMismatch = errors.New("merkle: neighbor path length does not match tree height")

// Blanks returns blank[0..height], the hashes of all-empty subtrees of
// increasing size: blank[0] = 0 (empty_hash, §4.2), blank[l] =
// Poseidon_inner(blank[l-1], blank[l-1]). blank[height] is the root of an
// empty tree of 2^height leaves.
func Blanks(height int) []fr.Element {
	blanks := make([]fr.Element, height+1)
	blanks[0].SetZero()
	for l := 1; l <= height; l++ {
		blanks[l] = poseidon.Inner(blanks[l-1], blanks[l-1])
	}
	return blanks
}

// NeighborBit reports whether leafIndex's bit at layer l is set, i.e.
// whether the node being hashed up from that layer sits to the tree's
// right (is_left in the spec's sense refers to the sibling's position, so
// callers combine this with friend via PathStep).
func NeighborBit(leafIndex uint64, layer int) bool {
	return (leafIndex>>uint(layer))&1 == 1
}

// PathStep folds one more layer into a running node value, given the
// sibling ("friend") at that layer and whether the current node is the
// right child (mirrors the circuit's select(is_left_bit[l], ...) gadget,
// §4.4.1).
func PathStep(node, friend fr.Element, isRight bool) fr.Element {
	if isRight {
		return poseidon.Inner(friend, node)
	}
	return poseidon.Inner(node, friend)
}

// PathUp hashes leaf up through height friend nodes, driven by leafIndex's
// bits, and returns the node value at the end of every layer — the same
// sequence the circuit's update_nodes[] public inputs carry (§4.3.1 step 5,
// §4.3.2 step 3). The final entry is the resulting root.
func PathUp(leafIndex uint64, leaf fr.Element, friends []fr.Element) []fr.Element {
	nodes := make([]fr.Element, len(friends))
	node := leaf
	for l, friend := range friends {
		node = PathStep(node, friend, NeighborBit(leafIndex, l))
		nodes[l] = node
	}
	return nodes
}

// Root hashes leaf up through friends and returns only the final root,
// discarding the intermediate layer values (used when only prev_root is
// needed, e.g. deposit step 3 and withdraw step 1).
func Root(leafIndex uint64, leaf fr.Element, friends []fr.Element) fr.Element {
	node := leaf
	for l, friend := range friends {
		node = PathStep(node, friend, NeighborBit(leafIndex, l))
	}
	return node
}
