package vanilla

import (
	"context"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/soda-maze/maze/internal/edwards"
	"github.com/soda-maze/maze/merkle"
	"github.com/soda-maze/maze/poseidon"
)

func fe(v uint64) fr.Element {
	var e fr.Element
	e.SetUint64(v)
	return e
}

func blankFriends(height int) []fr.Element {
	blanks := merkle.Blanks(height)
	friends := make([]fr.Element, height)
	copy(friends, blanks[:height])
	return friends
}

// TestGenerateDepositVanillaProofRejectsZeroAmount checks the §7 input-
// shape validation runs before any hashing.
func TestGenerateDepositVanillaProofRejectsZeroAmount(t *testing.T) {
	cfg := TreeConfig{Height: 4}
	in := DepositOriginInputs{
		LeafIndex:     0,
		Amount:        0,
		NeighborNodes: blankFriends(4),
	}
	_, _, err := GenerateDepositVanillaProof(context.Background(), cfg, in)
	if err != ErrInvalidAmount {
		t.Fatalf("got err %v, want ErrInvalidAmount", err)
	}
}

// TestGenerateDepositVanillaProofRejectsOutOfRangeIndex checks a leaf
// index at or beyond 2^Height is rejected.
func TestGenerateDepositVanillaProofRejectsOutOfRangeIndex(t *testing.T) {
	cfg := TreeConfig{Height: 3}
	in := DepositOriginInputs{
		LeafIndex:     8, // 2^3, one past the last valid index
		Amount:        1,
		NeighborNodes: blankFriends(3),
	}
	_, _, err := GenerateDepositVanillaProof(context.Background(), cfg, in)
	if err != ErrInvalidLeafIndex {
		t.Fatalf("got err %v, want ErrInvalidLeafIndex", err)
	}
}

// TestGenerateDepositVanillaProofRejectsWrongNeighborLen checks a
// mis-sized neighbor slice is rejected.
func TestGenerateDepositVanillaProofRejectsWrongNeighborLen(t *testing.T) {
	cfg := TreeConfig{Height: 4}
	in := DepositOriginInputs{
		LeafIndex:     0,
		Amount:        1,
		NeighborNodes: blankFriends(3), // too short for height 4
	}
	_, _, err := GenerateDepositVanillaProof(context.Background(), cfg, in)
	if err != ErrInvalidNeighborLen {
		t.Fatalf("got err %v, want ErrInvalidNeighborLen", err)
	}
}

// TestDepositBlankProofProducesEmptyTreeRoot checks the blank-proof
// construction's prev_root equals the empty tree's canonical root
// (§4.3.1 "Blank proof").
func TestDepositBlankProofProducesEmptyTreeRoot(t *testing.T) {
	cfg := TreeConfig{Height: 4}
	pub, _, err := DepositBlankProof(cfg)
	if err != nil {
		t.Fatalf("DepositBlankProof failed: %v", err)
	}
	blanks := merkle.Blanks(cfg.Height)
	want := blanks[cfg.Height]
	if !pub.PrevRoot.Equal(&want) {
		t.Error("blank deposit's prev_root does not match the empty tree's root")
	}
}

// TestGenerateDepositVanillaProofUpdateNodesMatchPathUp checks that the
// deposit's returned UpdateNodes sequence equals merkle.PathUp computed
// directly from the same leaf value, i.e. the vanilla layer isn't doing
// anything but what package merkle already verifies independently.
func TestGenerateDepositVanillaProofUpdateNodesMatchPathUp(t *testing.T) {
	cfg := TreeConfig{Height: 4}
	friends := blankFriends(4)
	in := DepositOriginInputs{
		LeafIndex:     5,
		Amount:        77,
		Secret:        fe(123),
		NeighborNodes: friends,
	}
	pub, _, err := GenerateDepositVanillaProof(context.Background(), cfg, in)
	if err != nil {
		t.Fatalf("GenerateDepositVanillaProof failed: %v", err)
	}

	want := merkle.PathUp(5, pub.Leaf, friends)
	if len(pub.UpdateNodes) != len(want) {
		t.Fatalf("got %d update nodes, want %d", len(pub.UpdateNodes), len(want))
	}
	for i := range want {
		if !pub.UpdateNodes[i].Equal(&want[i]) {
			t.Errorf("update node %d diverges from merkle.PathUp", i)
		}
	}
}

// TestGenerateWithdrawVanillaProofRejectsInsufficientBalance checks the
// balance precondition (§7).
func TestGenerateWithdrawVanillaProofRejectsInsufficientBalance(t *testing.T) {
	cfg := TreeConfig{Height: 4}
	in := WithdrawOriginInputs{
		Balance:          5,
		WithdrawAmount:   10,
		SrcLeafIndex:     0,
		DstLeafIndex:     1,
		SrcNeighborNodes: blankFriends(4),
		DstNeighborNodes: blankFriends(4),
	}
	_, _, err := GenerateWithdrawVanillaProof(context.Background(), cfg, in)
	if err != ErrInsufficientBalance {
		t.Fatalf("got err %v, want ErrInsufficientBalance", err)
	}
}

// TestGenerateWithdrawVanillaProofRejectsBadLeafOrder checks src < dst is
// enforced (§4.3.2's UTXO-like "spend one leaf, create the next" shape
// depends on dst never aliasing or preceding src).
func TestGenerateWithdrawVanillaProofRejectsBadLeafOrder(t *testing.T) {
	cfg := TreeConfig{Height: 4}
	in := WithdrawOriginInputs{
		Balance:          10,
		WithdrawAmount:   5,
		SrcLeafIndex:     3,
		DstLeafIndex:     2, // must be > src
		SrcNeighborNodes: blankFriends(4),
		DstNeighborNodes: blankFriends(4),
	}
	_, _, err := GenerateWithdrawVanillaProof(context.Background(), cfg, in)
	if err != ErrLeafIndexOrder {
		t.Fatalf("got err %v, want ErrLeafIndexOrder", err)
	}
}

// TestGenerateWithdrawVanillaProofNullifierDerivesFromSrc checks the
// returned nullifier equals poseidon.Nullifier(srcIndex, secret) directly,
// and that it maps to a non-identity curve point.
func TestGenerateWithdrawVanillaProofNullifierDerivesFromSrc(t *testing.T) {
	cfg := TreeConfig{Height: 4}
	in := WithdrawOriginInputs{
		Balance:          10,
		WithdrawAmount:   3,
		SrcLeafIndex:     0,
		DstLeafIndex:     1,
		Secret:           fe(555),
		SrcNeighborNodes: blankFriends(4),
		DstNeighborNodes: blankFriends(4),
	}
	pub, _, err := GenerateWithdrawVanillaProof(context.Background(), cfg, in)
	if err != nil {
		t.Fatalf("GenerateWithdrawVanillaProof failed: %v", err)
	}

	want := poseidon.Nullifier(fe(0), fe(555))
	if !pub.Nullifier.Equal(&want) {
		t.Error("nullifier does not equal poseidon.Nullifier(srcIndex, secret)")
	}

	id := edwards.Identity()
	if pub.NullifierPoint.X.Equal(&id.X) && pub.NullifierPoint.Y.Equal(&id.Y) {
		t.Error("nullifier point is the curve identity, which should not happen for a non-zero nullifier")
	}
}

// TestGenerateWithdrawVanillaProofViewKeyOptional checks that a Withdraw
// without a ViewKey carries no commitment, and one with a ViewKey does
// (§4.3.2 step 5's optional viewing-key commitment).
func TestGenerateWithdrawVanillaProofViewKeyOptional(t *testing.T) {
	cfg := TreeConfig{Height: 4}
	baseIn := WithdrawOriginInputs{
		Balance:          10,
		WithdrawAmount:   3,
		SrcLeafIndex:     0,
		DstLeafIndex:     1,
		Secret:           fe(7),
		SrcNeighborNodes: blankFriends(4),
		DstNeighborNodes: blankFriends(4),
	}

	pubNoKey, _, err := GenerateWithdrawVanillaProof(context.Background(), cfg, baseIn)
	if err != nil {
		t.Fatalf("GenerateWithdrawVanillaProof (no key) failed: %v", err)
	}
	if pubNoKey.Commitment != nil {
		t.Error("expected nil Commitment when ViewKey is not set")
	}

	withKey := baseIn
	withKey.ViewKey = &ViewingKeyParams{
		AdminPubKey: edwards.ScalarBaseMul(fe(99)),
		Nonce:       fe(42),
	}
	pubWithKey, privWithKey, err := GenerateWithdrawVanillaProof(context.Background(), cfg, withKey)
	if err != nil {
		t.Fatalf("GenerateWithdrawVanillaProof (with key) failed: %v", err)
	}
	if pubWithKey.Commitment == nil {
		t.Fatal("expected non-nil Commitment when ViewKey is set")
	}
	if privWithKey.CommitmentNonce == nil {
		t.Fatal("expected the nonce to be carried in the private witness")
	}
}

// TestLeafLayoutDefaultsToIndexAmountSecret checks the zero-value
// TreeConfig.Layout reproduces spec.md's literal leaf formula.
func TestLeafLayoutDefaultsToIndexAmountSecret(t *testing.T) {
	var cfg TreeConfig // Layout left at its zero value
	if cfg.Layout != IndexAmountSecret {
		t.Errorf("zero-value TreeConfig.Layout = %v, want IndexAmountSecret", cfg.Layout)
	}
}
