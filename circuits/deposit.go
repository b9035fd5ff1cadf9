// Package circuits synthesises the Deposit and Withdraw constraint systems
// and drives the Groth16 backend for setup/prove/verify (§4.4).
package circuits

import (
	"github.com/consensys/gnark/frontend"

	circuitmerkle "github.com/soda-maze/maze/circuits/merkle"
	"github.com/soda-maze/maze/circuits/rabin"
	"github.com/soda-maze/maze/circuits/rangecheck"
	"github.com/soda-maze/maze/poseidon/gadget"
)

// DepositCircuit implements gnark's frontend.Circuit for spec.md §4.4.3.
// Height-many friend/isRight witness pairs are declared by the caller
// before compilation (gnark circuits are fixed-shape), so Height must match
// the TreeConfig a proof was generated under.
type DepositCircuit struct {
	// Public inputs.
	Amount      frontend.Variable   `gnark:",public"`
	PrevRoot    frontend.Variable   `gnark:",public"`
	LeafIndex   frontend.Variable   `gnark:",public"`
	Leaf        frontend.Variable   `gnark:",public"`
	UpdateNodes []frontend.Variable `gnark:",public"`
	CipherArray []frontend.Variable `gnark:",public"` // empty unless encryption enabled

	// Witnesses.
	Secret       frontend.Variable
	Friends      []frontend.Variable
	IsRight      []frontend.Variable
	Quotient     []frontend.Variable // empty unless encryption enabled
	PaddingArray []frontend.Variable // empty unless encryption enabled

	// Constants, not part of the witness.
	Height      int
	RabinParams *rabin.Params `gnark:"-"`
}

// Define synthesises the constraint system (§4.4.3 "Constraints").
func (c *DepositCircuit) Define(api frontend.API) error {
	rangecheck.Uint64(api, c.Amount)

	leaf, err := gadget.Leaf(api, c.LeafIndex, c.Amount, c.Secret)
	if err != nil {
		return err
	}
	api.AssertIsEqual(leaf, c.Leaf)

	leafIndex, err := circuitmerkle.AddNewLeaf(api, leaf, 0, c.PrevRoot, c.Friends, c.IsRight, c.UpdateNodes)
	if err != nil {
		return err
	}
	api.AssertIsEqual(leafIndex, c.LeafIndex)

	if c.RabinParams != nil {
		rabin.Verify(api, *c.RabinParams, leaf, c.CipherArray, c.Quotient, c.PaddingArray)
	}

	return nil
}

// NewDepositCircuit allocates a DepositCircuit shaped for the given tree
// height and Rabin configuration (nil disables the escrow sub-circuit),
// ready for frontend.Compile.
func NewDepositCircuit(height int, rabinParams *rabin.Params) *DepositCircuit {
	c := &DepositCircuit{
		Height:      height,
		UpdateNodes: make([]frontend.Variable, height),
		Friends:     make([]frontend.Variable, height),
		IsRight:     make([]frontend.Variable, height),
		RabinParams: rabinParams,
	}
	if rabinParams != nil {
		cipherLen := (rabinParams.ModulusLen + rabinParams.CipherBatch - 1) / rabinParams.CipherBatch
		c.CipherArray = make([]frontend.Variable, cipherLen)
		c.Quotient = make([]frontend.Variable, rabinParams.ModulusLen+1)
		c.PaddingArray = make([]frontend.Variable, rabinParams.ModulusLen-(254+rabinParams.BitSize-1)/rabinParams.BitSize)
	}
	return c
}
