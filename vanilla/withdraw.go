package vanilla

import (
	"context"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/soda-maze/maze/internal/edwards"
	"github.com/soda-maze/maze/internal/logging"
	"github.com/soda-maze/maze/merkle"
	"github.com/soda-maze/maze/poseidon"
)

// WithdrawOriginInputs is the raw user intent for a withdrawal (§4.3.2).
type WithdrawOriginInputs struct {
	Balance         uint64
	WithdrawAmount  uint64
	SrcLeafIndex    uint64
	DstLeafIndex    uint64
	Receiver        fr.Element
	Secret          fr.Element
	SrcNeighborNodes []fr.Element
	DstNeighborNodes []fr.Element

	// ViewKey, optional (§4.3.2 step 5). Non-nil enables the Elgamal-style
	// viewing-key commitment.
	ViewKey *ViewingKeyParams
}

// ViewingKeyParams names the admin viewing public key and the per-proof
// nonce used to build commitment = (nonce·G, nullifier·G + nonce·PK).
type ViewingKeyParams struct {
	AdminPubKey edwards.Point
	Nonce       fr.Element
}

// ViewingKeyCommitment is the Elgamal-style two-point commitment (§4.3.2
// step 5, §4.4.4 step 7 — the resolution of the jubjub-gadget Open
// Question, §9).
type ViewingKeyCommitment struct {
	NoncePoint      edwards.Point
	NullifierCipher edwards.Point
}

// WithdrawPublicInputs is what the Withdraw circuit exposes publicly
// (§4.3.2 "Outputs").
type WithdrawPublicInputs struct {
	WithdrawAmount  uint64
	Receiver        fr.Element
	DstLeafIndex    uint64
	DstLeaf         fr.Element
	PrevRoot        fr.Element
	Nullifier       fr.Element
	NullifierPoint  edwards.Point
	UpdateNodes     []fr.Element
	Commitment      *ViewingKeyCommitment
}

// WithdrawPrivateInputs is the Withdraw circuit's witness (§4.3.2).
type WithdrawPrivateInputs struct {
	Balance          uint64
	Secret           fr.Element
	SrcFriendBits    []PathBit
	DstFriendBits    []PathBit
	SrcLeafIndex     uint64
	SrcLeaf          fr.Element
	CommitmentNonce  *fr.Element
}

// GenerateWithdrawVanillaProof runs spec.md §4.3.2's algorithm: validates
// preconditions, recomputes the src leaf and its root, derives the dst leaf
// carrying the remaining balance and its updated path, the nullifier and
// its curve-point form, and — when configured — the viewing-key commitment.
func GenerateWithdrawVanillaProof(ctx context.Context, cfg TreeConfig, in WithdrawOriginInputs) (WithdrawPublicInputs, WithdrawPrivateInputs, error) {
	if err := ctx.Err(); err != nil {
		return WithdrawPublicInputs{}, WithdrawPrivateInputs{}, err
	}
	if in.DstLeafIndex >= 1<<uint(cfg.Height) || in.SrcLeafIndex >= in.DstLeafIndex {
		if in.SrcLeafIndex >= in.DstLeafIndex {
			return WithdrawPublicInputs{}, WithdrawPrivateInputs{}, ErrLeafIndexOrder
		}
		return WithdrawPublicInputs{}, WithdrawPrivateInputs{}, ErrInvalidLeafIndex
	}
	if in.WithdrawAmount == 0 {
		return WithdrawPublicInputs{}, WithdrawPrivateInputs{}, ErrInvalidAmount
	}
	if in.Balance < in.WithdrawAmount {
		return WithdrawPublicInputs{}, WithdrawPrivateInputs{}, ErrInsufficientBalance
	}
	if len(in.SrcNeighborNodes) != cfg.Height || len(in.DstNeighborNodes) != cfg.Height {
		return WithdrawPublicInputs{}, WithdrawPrivateInputs{}, ErrInvalidNeighborLen
	}

	var srcIndexF, dstIndexF, balanceF, restF fr.Element
	srcIndexF.SetUint64(in.SrcLeafIndex)
	dstIndexF.SetUint64(in.DstLeafIndex)
	balanceF.SetUint64(in.Balance)
	rest := in.Balance - in.WithdrawAmount
	restF.SetUint64(rest)

	srcLeaf := leafValue(cfg, srcIndexF, balanceF, in.Secret)
	prevRoot := merkle.Root(in.SrcLeafIndex, srcLeaf, in.SrcNeighborNodes)

	dstLeaf := leafValue(cfg, dstIndexF, restF, in.Secret)
	updateNodes := merkle.PathUp(in.DstLeafIndex, dstLeaf, in.DstNeighborNodes)

	nullifier := poseidon.Nullifier(srcIndexF, in.Secret)
	nullifierPoint := edwards.ScalarBaseMul(edwards.TruncateToScalar(nullifier))

	pub := WithdrawPublicInputs{
		WithdrawAmount: in.WithdrawAmount,
		Receiver:       in.Receiver,
		DstLeafIndex:   in.DstLeafIndex,
		DstLeaf:        dstLeaf,
		PrevRoot:       prevRoot,
		Nullifier:      nullifier,
		NullifierPoint: nullifierPoint,
		UpdateNodes:    updateNodes,
	}
	priv := WithdrawPrivateInputs{
		Balance:       in.Balance,
		Secret:        in.Secret,
		SrcFriendBits: friendBits(in.SrcLeafIndex, in.SrcNeighborNodes),
		DstFriendBits: friendBits(in.DstLeafIndex, in.DstNeighborNodes),
		SrcLeafIndex:  in.SrcLeafIndex,
		SrcLeaf:       srcLeaf,
	}

	if in.ViewKey != nil {
		scalar := edwards.TruncateToScalar(nullifier)
		noncePoint := edwards.ScalarBaseMul(in.ViewKey.Nonce)
		shared := edwards.ScalarMul(in.ViewKey.AdminPubKey, in.ViewKey.Nonce)
		cipher := edwards.Add(edwards.ScalarBaseMul(scalar), shared)
		pub.Commitment = &ViewingKeyCommitment{NoncePoint: noncePoint, NullifierCipher: cipher}
		nonce := in.ViewKey.Nonce
		priv.CommitmentNonce = &nonce
	}

	logging.L().Sugar().Debugw("withdraw vanilla proof generated",
		"src_leaf_index", in.SrcLeafIndex, "dst_leaf_index", in.DstLeafIndex,
		"withdraw_amount", in.WithdrawAmount)

	return pub, priv, nil
}

// WithdrawBlankProof returns the canonical circuit-shape input for Groth16
// setup: src index 0, dst index 1, balance 1, withdraw 1, zero secret, all
// friends blank except the src leaf slotted into the dst path's first
// neighbor (§4.3.2's analogue of §4.3.1's blank-proof construction, applied
// via original_source's lib/src/vanilla/withdraw.rs blank_proof shape).
func WithdrawBlankProof(cfg TreeConfig) (WithdrawPublicInputs, WithdrawPrivateInputs, error) {
	blanks := merkle.Blanks(cfg.Height)
	srcFriends := make([]fr.Element, cfg.Height)
	copy(srcFriends, blanks[:cfg.Height])
	dstFriends := make([]fr.Element, cfg.Height)
	copy(dstFriends, blanks[:cfg.Height])
	if cfg.Height > 0 {
		var zero, one fr.Element
		one.SetOne()
		dstFriends[0] = leafValue(cfg, zero, one, zero)
	}

	in := WithdrawOriginInputs{
		Balance:          1,
		WithdrawAmount:   1,
		SrcLeafIndex:     0,
		DstLeafIndex:     1,
		SrcNeighborNodes: srcFriends,
		DstNeighborNodes: dstFriends,
	}
	return GenerateWithdrawVanillaProof(context.Background(), cfg, in)
}
