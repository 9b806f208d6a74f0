// Package prover generates mint proofs.
package prover

import (
	"fmt"
	"time"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/logger"

	"github.com/sovchain/mint-verifier/circuit"
	"github.com/sovchain/mint-verifier/keystore"
	"github.com/sovchain/mint-verifier/onchain"
	"github.com/sovchain/mint-verifier/pedersen"
	"github.com/sovchain/mint-verifier/types"
)

// Prover holds the compiled relation and its proving key. Both are read-only after
// construction, so one Prover can serve concurrent calls.
type Prover struct {
	cs constraint.ConstraintSystem
	pk groth16.ProvingKey
}

func New(cs constraint.ConstraintSystem, pk groth16.ProvingKey) *Prover {
	return &Prover{cs: cs, pk: pk}
}

// Setup compiles the mint circuit and runs a local, single-party Groth16 setup.
// Production keys come from a ceremony and are loaded with Load.
func Setup() (*Prover, groth16.VerifyingKey, error) {
	log := logger.Logger()
	log.Info().Msg("Compiling mint circuit " + circuit.Version)
	start := time.Now()
	cs, err := circuit.Compile()
	if err != nil {
		return nil, nil, types.WrapProving(err)
	}
	log.Info().Msg(fmt.Sprintf("Compiled mint circuit, %d constraints, time: %s", cs.GetNbConstraints(), time.Since(start)))

	log.Info().Msg("Running circuit setup")
	start = time.Now()
	pk, vk, err := groth16.Setup(cs)
	if err != nil {
		return nil, nil, types.WrapProving(err)
	}
	log.Info().Msg("Successfully ran circuit setup, time: " + time.Since(start).String())

	return New(cs, pk), vk, nil
}

// Load reads the constraint system and proving key from a key directory.
func Load(dir string) (*Prover, error) {
	cs, pk, err := keystore.LoadProverData(dir)
	if err != nil {
		return nil, err
	}
	return New(cs, pk), nil
}

// Save writes the prover data and vk to dir.
func (p *Prover) Save(dir string, vk groth16.VerifyingKey) error {
	return keystore.Save(dir, p.cs, p.pk, vk)
}

func (p *Prover) NbConstraints() int {
	return p.cs.GetNbConstraints()
}

// Prove proves that commitment hides a valid mint amount of w, bound to nonce and
// epoch. The witness is checked, and the commitment opened, before any proving work.
func (p *Prover) Prove(w *types.Witness, commitment types.Commitment, nonce, epoch uint64) (*types.Proof, *types.PublicInputs, error) {
	if err := w.Validate(); err != nil {
		return nil, nil, err
	}
	if !pedersen.Opens(commitment, w) {
		return nil, nil, types.WrapInvalidWitness("commitment does not open to amount and blinding")
	}

	pub := types.DerivePublicInputs(w, commitment, nonce, epoch)
	assignment := circuit.NewAssignment(w, pub)
	fullWitness, err := frontend.NewWitness(assignment, ecc.BN254.ScalarField())
	if err != nil {
		return nil, nil, types.WrapProving(err)
	}

	log := logger.Logger()
	start := time.Now()
	proof, err := groth16.Prove(p.cs, p.pk, fullWitness)
	if err != nil {
		return nil, nil, types.WrapProving(err)
	}
	log.Debug().Msg("Generated mint proof, time: " + time.Since(start).String())

	encoded, err := onchain.ProofFromGnark(proof)
	if err != nil {
		return nil, nil, types.WrapProving(err)
	}
	out, err := types.ProofFromBytes(encoded.Bytes())
	if err != nil {
		return nil, nil, types.WrapProving(err)
	}
	return out, pub, nil
}

// ProveMint commits to w with its own blinding and proves the result.
func (p *Prover) ProveMint(w *types.Witness, nonce, epoch uint64) (*types.Proof, *types.PublicInputs, error) {
	return p.Prove(w, pedersen.CommitWitness(w), nonce, epoch)
}
