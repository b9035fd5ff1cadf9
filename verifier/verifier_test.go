package verifier

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"

	bn254groth16 "github.com/consensys/gnark/backend/groth16/bn254"

	"github.com/soda-maze/maze/pairing"
)

// memStore is a trivial in-process CellStore, the Go shape of an in-memory
// test double for the host-owned cell storage every real deployment
// provides (an account map, a row store, ...). Mirrors the teacher's own
// habit of standing up an in-memory map for anything it would otherwise
// need a real backing store for in a unit test.
type memStore struct {
	cells map[CellAddr]Cell
}

func newMemStore() *memStore {
	return &memStore{cells: make(map[CellAddr]Cell)}
}

func (s *memStore) Get(addr CellAddr) (Cell, error) {
	return s.cells[addr], nil
}

func (s *memStore) Put(addr CellAddr, c Cell) error {
	s.cells[addr] = c
	return nil
}

func (s *memStore) Erase(addr CellAddr) error {
	delete(s.cells, addr)
	return nil
}

func testAddrs() CellAddrs {
	return CellAddrs{B1: "b1", B2: "b2", B3: "b3", B4: "b4", B5: "b5", B6: "b6", B7: "b7"}
}

// trivialCircuit is a minimal R1CS with one public input, just large
// enough to exercise Setup/Prove and hand a real VerifyingKey/Proof pair
// to PrepareVerifyingKey and the FSM — the same "smallest circuit that
// compiles" pattern the gnark-based pack examples use for their own
// Groth16 round-trip tests.
type trivialCircuit struct {
	X frontend.Variable `gnark:",public"`
	Y frontend.Variable
}

func (c *trivialCircuit) Define(api frontend.API) error {
	sq := api.Mul(c.Y, c.Y)
	api.AssertIsEqual(sq, c.X)
	return nil
}

// setupTrivial compiles trivialCircuit and runs a single groth16.Setup
// call, returning the matched (pk, vk, ccs) triple. Every caller must
// prove and verify against this same triple — Setup mints independent,
// randomized toxic waste on each call, so a proof from one Setup never
// verifies against another Setup's key, even for the identical circuit.
func setupTrivial(t *testing.T) (bn254groth16.ProvingKey, bn254groth16.VerifyingKey, constraint.ConstraintSystem) {
	t.Helper()
	var blank trivialCircuit
	ccs, err := frontend.Compile(ecc.BN254.ScalarField(), r1cs.NewBuilder, &blank)
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	pk, vk, err := groth16.Setup(ccs)
	if err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	concretePK, ok := pk.(*bn254groth16.ProvingKey)
	if !ok {
		t.Fatalf("unexpected proving key type %T", pk)
	}
	concreteVK, ok := vk.(*bn254groth16.VerifyingKey)
	if !ok {
		t.Fatalf("unexpected verifying key type %T", vk)
	}
	return *concretePK, *concreteVK, ccs
}

// proveTrivial assigns X=x, Y=y to a fresh trivialCircuit witness and
// proves it against ccs/pk from the same setupTrivial call.
func proveTrivial(t *testing.T, ccs constraint.ConstraintSystem, pk *bn254groth16.ProvingKey, x, y int64) *bn254groth16.Proof {
	t.Helper()
	circuit := &trivialCircuit{X: x, Y: y}
	w, err := frontend.NewWitness(circuit, ecc.BN254.ScalarField())
	if err != nil {
		t.Fatalf("witness failed: %v", err)
	}
	proofIface, err := groth16.Prove(ccs, pk, w)
	if err != nil {
		t.Fatalf("prove failed: %v", err)
	}
	proof, ok := proofIface.(*bn254groth16.Proof)
	if !ok {
		t.Fatalf("unexpected proof type %T", proofIface)
	}
	return proof
}

// runToCompletion drives the FSM's Step function until it reaches
// PhaseFinished, using a fresh Budget every call exactly as a real host
// would across many separate instructions (§4.5.2), and fails the test on
// any error or on exceeding a generous iteration cap (a stuck FSM should
// never need this many transitions for a 1-input circuit).
func runToCompletion(t *testing.T, store CellStore, addrs CellAddrs, vk *PreparedVerifyingKey, in *VerifyInputs) FSM {
	t.Helper()
	f := NewFSM()
	for i := 0; i < 10000; i++ {
		if f.Phase == PhaseFinished {
			return f
		}
		var err error
		f, err = f.Step(store, addrs, vk, in, NewBudget())
		if err != nil {
			t.Fatalf("Step failed at phase %s: %v", f.Phase, err)
		}
	}
	t.Fatal("FSM did not reach PhaseFinished within the iteration cap")
	return f
}

// TestFSMAcceptsValidProof drives the full FSM against a genuine
// Groth16 proof of a trivially true statement and checks it ends in
// Finished(true).
func TestFSMAcceptsValidProof(t *testing.T) {
	pkConcrete, vkConcrete, ccs := setupTrivial(t)
	proof := proveTrivial(t, ccs, &pkConcrete, 9, 3)

	vk, err := PrepareVerifyingKey(&vkConcrete)
	if err != nil {
		t.Fatalf("PrepareVerifyingKey failed: %v", err)
	}

	var xPublic pairing.Fr
	xPublic.SetUint64(9)

	in := &VerifyInputs{
		PublicInputs: []pairing.Fr{xPublic},
		ProofA:       proof.Ar,
		ProofB:       proof.Bs,
		ProofC:       proof.Krs,
	}

	store := newMemStore()
	final := runToCompletion(t, store, testAddrs(), vk, in)

	if !final.Result {
		t.Error("FSM rejected a genuine proof of a true statement")
	}
}

// TestFSMRejectsWrongPublicInput checks that presenting the same valid
// proof against a DIFFERENT public input value ends in Finished(false)
// rather than an error — §4.5.3's "verification-is-false is a result, not
// a fault" distinction.
func TestFSMRejectsWrongPublicInput(t *testing.T) {
	pkConcrete, vkConcrete, ccs := setupTrivial(t)
	proof := proveTrivial(t, ccs, &pkConcrete, 9, 3)

	vk, err := PrepareVerifyingKey(&vkConcrete)
	if err != nil {
		t.Fatalf("PrepareVerifyingKey failed: %v", err)
	}

	var wrongX pairing.Fr
	wrongX.SetUint64(16) // proof commits to X=9, not 16

	in := &VerifyInputs{
		PublicInputs: []pairing.Fr{wrongX},
		ProofA:       proof.Ar,
		ProofB:       proof.Bs,
		ProofC:       proof.Krs,
	}

	store := newMemStore()
	final := runToCompletion(t, store, testAddrs(), vk, in)

	if final.Result {
		t.Error("FSM accepted a proof against a public input it was not generated for")
	}
}

// TestFSMResumesAcrossTinyBudgets checks that feeding the FSM the smallest
// per-call budget under which every transition can still advance (the
// 8·CostFq12Square HardPart4 charge, the largest single indivisible cost)
// still reaches the same Finished(true) result, confirming a transition's
// partial progress resumes correctly rather than restarting or corrupting
// state (§4.5.2).
func TestFSMResumesAcrossTinyBudgets(t *testing.T) {
	pkConcrete, vkConcrete, ccs := setupTrivial(t)
	proof := proveTrivial(t, ccs, &pkConcrete, 9, 3)

	vk, err := PrepareVerifyingKey(&vkConcrete)
	if err != nil {
		t.Fatalf("PrepareVerifyingKey failed: %v", err)
	}

	var xPublic pairing.Fr
	xPublic.SetUint64(9)
	in := &VerifyInputs{
		PublicInputs: []pairing.Fr{xPublic},
		ProofA:       proof.Ar,
		ProofB:       proof.Bs,
		ProofC:       proof.Krs,
	}

	store := newMemStore()
	addrs := testAddrs()
	f := NewFSM()
	for i := 0; i < 2_000_000; i++ {
		if f.Phase == PhaseFinished {
			break
		}
		budget := &Budget{remaining: 8 * CostFq12Square} // largest indivisible charge
		var err error
		f, err = f.Step(store, addrs, vk, in, budget)
		if err != nil {
			t.Fatalf("Step failed at phase %s (iteration %d): %v", f.Phase, i, err)
		}
	}
	if f.Phase != PhaseFinished {
		t.Fatal("FSM never reached PhaseFinished under a tiny per-call budget")
	}
	if !f.Result {
		t.Error("FSM under a tiny budget reached a different (false) result than the generous-budget run")
	}
}

// TestGetKindFatalOnMismatch checks that reading a cell under the wrong
// expected Kind returns a *FatalError, the invariant §4.5.3 names.
func TestGetKindFatalOnMismatch(t *testing.T) {
	store := newMemStore()
	store.Put("x", Cell{Kind: CellFq})

	_, err := getKind(store, "x", CellFq12)
	var fatal *FatalError
	if err == nil {
		t.Fatal("expected a FatalError for a cell-kind mismatch")
	}
	if !errorsAsFatal(err, &fatal) {
		t.Fatalf("expected *FatalError, got %T: %v", err, err)
	}
}

func errorsAsFatal(err error, target **FatalError) bool {
	if fe, ok := err.(*FatalError); ok {
		*target = fe
		return true
	}
	return false
}

// TestResetErasesAllCells checks Reset clears every named cell and returns
// a fresh FSM.
func TestResetErasesAllCells(t *testing.T) {
	store := newMemStore()
	addrs := testAddrs()
	store.Put(addrs.B1, Cell{Kind: CellFq12})
	store.Put(addrs.B3, Cell{Kind: CellG1Affine})

	f, err := Reset(store, addrs)
	if err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	if f.Phase != PhasePrepareInputs {
		t.Errorf("Reset did not return a fresh FSM, got phase %s", f.Phase)
	}
	for _, addr := range []CellAddr{addrs.B1, addrs.B3} {
		if _, ok := store.cells[addr]; ok {
			t.Errorf("cell %q was not erased by Reset", addr)
		}
	}
}

// TestBudgetSpendStopsAtZero checks Spend refuses once the remaining
// budget is smaller than the requested cost, and leaves remaining
// unchanged on refusal.
func TestBudgetSpendStopsAtZero(t *testing.T) {
	b := &Budget{remaining: 100}
	if !b.Spend(60) {
		t.Fatal("expected Spend(60) to succeed against a 100-unit budget")
	}
	if b.remaining != 40 {
		t.Fatalf("remaining = %d, want 40", b.remaining)
	}
	if b.Spend(41) {
		t.Fatal("expected Spend(41) to fail against a 40-unit remaining budget")
	}
	if b.remaining != 40 {
		t.Fatalf("a failed Spend must not deduct: remaining = %d, want 40", b.remaining)
	}
}
