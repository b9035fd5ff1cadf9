package circuits

import (
	"context"
	"io"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"

	"github.com/soda-maze/maze/internal/logging"
)

// ProvingKey and VerifyingKey alias gnark's Groth16 key types for this
// module's fixed curve (§6 "setup(rng, const_params) -> (proving_key,
// verifying_key) via the Groth16 backend").
type (
	ProvingKey   = groth16.ProvingKey
	VerifyingKey = groth16.VerifyingKey
	Proof        = groth16.Proof
)

// Setup compiles circuit into an R1CS over BN254 and runs Groth16's
// trusted setup against it (§6 "setup"). circuit must be in its blank-proof
// shape (§4.3.1/§4.3.2 "Blank proof").
func Setup(circuit frontend.Circuit) (ProvingKey, VerifyingKey, error) {
	ccs, err := frontend.Compile(ecc.BN254.ScalarField(), r1cs.NewBuilder, circuit)
	if err != nil {
		return nil, nil, err
	}
	pk, vk, err := groth16.Setup(ccs)
	if err != nil {
		return nil, nil, err
	}
	logging.L().Sugar().Infow("groth16 setup complete", "constraints", ccs.GetNbConstraints())
	return pk, vk, nil
}

// Prove compiles circuit (assigned with the real witness) and runs
// Groth16's prover (§6 "prove").
func Prove(ctx context.Context, circuit frontend.Circuit, pk ProvingKey) (Proof, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ccs, err := frontend.Compile(ecc.BN254.ScalarField(), r1cs.NewBuilder, circuit)
	if err != nil {
		return nil, err
	}
	w, err := frontend.NewWitness(circuit, ecc.BN254.ScalarField())
	if err != nil {
		return nil, err
	}
	return groth16.Prove(ccs, pk, w)
}

// Verify runs the off-chain reference Groth16 verifier (§6 "verify"), used
// for tests and to check a proof before it is ever submitted on-chain.
func Verify(circuit frontend.Circuit, proof Proof, vk VerifyingKey) (bool, error) {
	w, err := frontend.NewWitness(circuit, ecc.BN254.ScalarField(), frontend.PublicOnly())
	if err != nil {
		return false, err
	}
	if err := groth16.Verify(proof, vk, w); err != nil {
		return false, nil
	}
	return true, nil
}

// SetupRand is a placeholder signature matching §6's "setup(rng, ...)" —
// gnark's groth16.Setup draws its own randomness internally and does not
// take an io.Reader, so rng is accepted for interface-shape compatibility
// with spec.md §6 and otherwise unused.
func SetupRand(rng io.Reader, circuit frontend.Circuit) (ProvingKey, VerifyingKey, error) {
	_ = rng
	return Setup(circuit)
}
