package circuits

import (
	tedwards "github.com/consensys/gnark-crypto/ecc/twistededwards"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/algebra/native/twistededwards"

	circuitmerkle "github.com/soda-maze/maze/circuits/merkle"
	"github.com/soda-maze/maze/circuits/rangecheck"
	"github.com/soda-maze/maze/poseidon/gadget"
)

// WithdrawCircuit implements gnark's frontend.Circuit for spec.md §4.4.4.
type WithdrawCircuit struct {
	// Public inputs.
	WithdrawAmount frontend.Variable   `gnark:",public"`
	Receiver       frontend.Variable   `gnark:",public"`
	DstLeafIndex   frontend.Variable   `gnark:",public"`
	DstLeaf        frontend.Variable   `gnark:",public"`
	PrevRoot       frontend.Variable   `gnark:",public"`
	Nullifier      frontend.Variable   `gnark:",public"`
	UpdateNodes    []frontend.Variable `gnark:",public"`

	// Optional Elgamal-style viewing-key commitment (§4.4.4 step 7).
	AdminPubKey     twistededwards.Point `gnark:"-"`
	NoncePoint      twistededwards.Point `gnark:",public"`
	NullifierCipher twistededwards.Point `gnark:",public"`

	// Witnesses.
	Balance      frontend.Variable
	Secret       frontend.Variable
	SrcFriends   []frontend.Variable
	SrcIsRight   []frontend.Variable
	DstFriends   []frontend.Variable
	DstIsRight   []frontend.Variable
	SrcLeafIndex frontend.Variable
	Nonce        frontend.Variable

	Height          int
	HasCommitment   bool `gnark:"-"`
}

// Define synthesises the constraint system (§4.4.4 "Constraints").
func (c *WithdrawCircuit) Define(api frontend.API) error {
	rangecheck.Uint64(api, c.Balance)
	rangecheck.Uint64(api, c.WithdrawAmount)
	rangecheck.IsLessOrEqual(api, c.WithdrawAmount, c.Balance)
	restAmount := api.Sub(c.Balance, c.WithdrawAmount)

	srcLeaf, err := gadget.Leaf(api, c.SrcLeafIndex, c.Balance, c.Secret)
	if err != nil {
		return err
	}
	leafIndex, root, err := circuitmerkle.LeafExistence(api, srcLeaf, c.SrcFriends, c.SrcIsRight)
	if err != nil {
		return err
	}
	api.AssertIsEqual(leafIndex, c.SrcLeafIndex)
	api.AssertIsEqual(root, c.PrevRoot)

	dstLeaf, err := gadget.Leaf(api, c.DstLeafIndex, restAmount, c.Secret)
	if err != nil {
		return err
	}
	api.AssertIsEqual(dstLeaf, c.DstLeaf)

	dstLeafIndex, err := circuitmerkle.AddNewLeaf(api, dstLeaf, 0, c.PrevRoot, c.DstFriends, c.DstIsRight, c.UpdateNodes)
	if err != nil {
		return err
	}
	api.AssertIsEqual(dstLeafIndex, c.DstLeafIndex)

	nullifier, err := gadget.Nullifier(api, c.SrcLeafIndex, c.Secret)
	if err != nil {
		return err
	}
	api.AssertIsEqual(nullifier, c.Nullifier)

	if c.HasCommitment {
		curve, err := twistededwards.NewEdCurve(api, tedwards.BN254)
		if err != nil {
			return err
		}
		nonceG := curve.ScalarMul(curve.Params().Base, c.Nonce)
		api.AssertIsEqual(nonceG.X, c.NoncePoint.X)
		api.AssertIsEqual(nonceG.Y, c.NoncePoint.Y)

		nullifierG := curve.ScalarMul(curve.Params().Base, nullifier)
		shared := curve.ScalarMul(c.AdminPubKey, c.Nonce)
		cipher := curve.Add(nullifierG, shared)
		api.AssertIsEqual(cipher.X, c.NullifierCipher.X)
		api.AssertIsEqual(cipher.Y, c.NullifierCipher.Y)
	}

	return nil
}

// NewWithdrawCircuit allocates a WithdrawCircuit shaped for the given tree
// height, ready for frontend.Compile. hasCommitment toggles the optional
// Elgamal viewing-key sub-circuit (§4.4.4 step 7).
func NewWithdrawCircuit(height int, hasCommitment bool) *WithdrawCircuit {
	return &WithdrawCircuit{
		Height:        height,
		UpdateNodes:   make([]frontend.Variable, height),
		SrcFriends:    make([]frontend.Variable, height),
		SrcIsRight:    make([]frontend.Variable, height),
		DstFriends:    make([]frontend.Variable, height),
		DstIsRight:    make([]frontend.Variable, height),
		HasCommitment: hasCommitment,
	}
}
