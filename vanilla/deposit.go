package vanilla

import (
	"context"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/soda-maze/maze/internal/logging"
	"github.com/soda-maze/maze/merkle"
	"github.com/soda-maze/maze/vanilla/rabin"
)

// DepositOriginInputs is the raw user intent for a deposit (§4.3.1).
type DepositOriginInputs struct {
	LeafIndex     uint64
	Amount        uint64
	Secret        fr.Element
	NeighborNodes []fr.Element // length TreeConfig.Height

	// Encryption, optional (§3 "Rabin ciphertext"). Rabin is nil when the
	// escrow feature is disabled for this deployment.
	Rabin *rabin.Params
}

// DepositPublicInputs is what the Deposit circuit exposes publicly
// (§4.3.1 "Outputs").
type DepositPublicInputs struct {
	Amount       uint64
	PrevRoot     fr.Element
	LeafIndex    uint64
	Leaf         fr.Element
	UpdateNodes  []fr.Element
	CipherArray  []fr.Element // nil unless encryption enabled
}

// DepositPrivateInputs is the Deposit circuit's witness (§4.3.1).
type DepositPrivateInputs struct {
	Secret       fr.Element
	FriendBits   []PathBit
	Quotient     []fr.Element // nil unless encryption enabled
	PaddingArray []fr.Element // nil unless encryption enabled
}

// PathBit pairs a layer's sibling value with whether the current node sits
// to its right, matching the circuit's (is_left_bit, friend) witness pair
// (§4.4.1).
type PathBit struct {
	IsRight bool
	Friend  fr.Element
}

func friendBits(leafIndex uint64, friends []fr.Element) []PathBit {
	bits := make([]PathBit, len(friends))
	for l, friend := range friends {
		bits[l] = PathBit{IsRight: merkle.NeighborBit(leafIndex, l), Friend: friend}
	}
	return bits
}

// GenerateDepositVanillaProof runs spec.md §4.3.1's algorithm: validates the
// origin inputs, computes prev_root from the all-empty leaf, the new leaf
// value, the updated path, and — when enabled — the Rabin escrow preimage,
// quotient and ciphertext digits.
func GenerateDepositVanillaProof(ctx context.Context, cfg TreeConfig, in DepositOriginInputs) (DepositPublicInputs, DepositPrivateInputs, error) {
	if err := ctx.Err(); err != nil {
		return DepositPublicInputs{}, DepositPrivateInputs{}, err
	}
	if in.Amount == 0 {
		return DepositPublicInputs{}, DepositPrivateInputs{}, ErrInvalidAmount
	}
	if in.LeafIndex >= 1<<uint(cfg.Height) {
		return DepositPublicInputs{}, DepositPrivateInputs{}, ErrInvalidLeafIndex
	}
	if len(in.NeighborNodes) != cfg.Height {
		return DepositPublicInputs{}, DepositPrivateInputs{}, ErrInvalidNeighborLen
	}

	var amountF fr.Element
	amountF.SetUint64(in.Amount)

	var indexF fr.Element
	indexF.SetUint64(in.LeafIndex)

	blanks := merkle.Blanks(cfg.Height)
	emptyLeaf := blanks[0]
	prevRoot := merkle.Root(in.LeafIndex, emptyLeaf, in.NeighborNodes)

	leaf := leafValue(cfg, indexF, amountF, in.Secret)
	updateNodes := merkle.PathUp(in.LeafIndex, leaf, in.NeighborNodes)

	pub := DepositPublicInputs{
		Amount:      in.Amount,
		PrevRoot:    prevRoot,
		LeafIndex:   in.LeafIndex,
		Leaf:        leaf,
		UpdateNodes: updateNodes,
	}
	priv := DepositPrivateInputs{
		Secret:     in.Secret,
		FriendBits: friendBits(in.LeafIndex, in.NeighborNodes),
	}

	if in.Rabin != nil {
		quotient, cipher, padding, err := rabin.Encrypt(*in.Rabin, leaf)
		if err != nil {
			return DepositPublicInputs{}, DepositPrivateInputs{}, err
		}
		pub.CipherArray = cipher
		priv.Quotient = quotient
		priv.PaddingArray = padding
	}

	logging.L().Sugar().Debugw("deposit vanilla proof generated",
		"leaf_index", in.LeafIndex, "amount", in.Amount)

	return pub, priv, nil
}

// DepositBlankProof returns the canonical "circuit shape" input used for
// Groth16 parameter setup: amount=1, leaf_index=0, all-zero secret, all
// friends blank (§4.3.1 "Blank proof").
func DepositBlankProof(cfg TreeConfig) (DepositPublicInputs, DepositPrivateInputs, error) {
	blanks := merkle.Blanks(cfg.Height)
	friends := make([]fr.Element, cfg.Height)
	copy(friends, blanks[:cfg.Height])

	in := DepositOriginInputs{
		LeafIndex:     0,
		Amount:        1,
		NeighborNodes: friends,
	}
	return GenerateDepositVanillaProof(context.Background(), cfg, in)
}
