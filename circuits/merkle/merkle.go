// Package merkle implements the two Merkle sub-circuits spec.md §4.4.1
// names: LeafExistence (prove a leaf is already in the tree) and AddNewLeaf
// (prove a leaf's insertion transforms one root into another), built on the
// Poseidon gadget (package poseidon/gadget).
package merkle

import (
	"github.com/consensys/gnark/frontend"

	"github.com/soda-maze/maze/poseidon/gadget"
)

// pathStep folds one layer: node_l = Poseidon(select(isRight, friend, prev), select(isRight, prev, friend)).
func pathStep(api frontend.API, node, friend, isRight frontend.Variable) (frontend.Variable, error) {
	api.AssertIsBoolean(isRight)
	left := api.Select(isRight, friend, node)
	right := api.Select(isRight, node, friend)
	return gadget.Inner(api, left, right)
}

// LeafExistence recomputes the path from leaf through friends, driven by
// the witnessed isRight bits, and returns (leafIndex, root) so the caller
// can constrain both against public values (§4.4.1 "LeafExistence").
func LeafExistence(api frontend.API, leaf frontend.Variable, friends, isRight []frontend.Variable) (leafIndex, root frontend.Variable, err error) {
	node := leaf
	leafIndex = frontend.Variable(0)
	weight := frontend.Variable(1)
	for l := range friends {
		node, err = pathStep(api, node, friends[l], isRight[l])
		if err != nil {
			return nil, nil, err
		}
		leafIndex = api.Add(leafIndex, api.Mul(weight, isRight[l]))
		weight = api.Mul(weight, 2)
	}
	return leafIndex, node, nil
}

// AddNewLeaf re-derives the all-empty-leaf path with the same friends and
// enforces it equals prevRoot, then recomputes the path with the real leaf
// and enforces each layer equals the corresponding public updateNodes entry
// (§4.4.1 "AddNewLeaf"). It returns the derived leaf index.
func AddNewLeaf(api frontend.API, leaf, emptyLeaf, prevRoot frontend.Variable, friends, isRight, updateNodes []frontend.Variable) (leafIndex frontend.Variable, err error) {
	emptyNode := emptyLeaf
	node := leaf
	leafIndex = frontend.Variable(0)
	weight := frontend.Variable(1)
	for l := range friends {
		emptyNode, err = pathStep(api, emptyNode, friends[l], isRight[l])
		if err != nil {
			return nil, err
		}
		node, err = pathStep(api, node, friends[l], isRight[l])
		if err != nil {
			return nil, err
		}
		api.AssertIsEqual(node, updateNodes[l])
		leafIndex = api.Add(leafIndex, api.Mul(weight, isRight[l]))
		weight = api.Mul(weight, 2)
	}
	api.AssertIsEqual(emptyNode, prevRoot)
	return leafIndex, nil
}
