// Package verifier checks mint proofs against a prepared verifying key.
package verifier

import (
	"fmt"
	"io"

	"github.com/consensys/gnark/backend/groth16"

	"github.com/sovchain/mint-verifier/keystore"
	"github.com/sovchain/mint-verifier/onchain"
	"github.com/sovchain/mint-verifier/types"
)

// Verifier holds a verifying key and its prepared form. It never mutates either.
type Verifier struct {
	vk       groth16.VerifyingKey
	onchain  *onchain.VerifyingKey
	prepared *PreparedVerifyingKey
}

// Item is one (proof, public inputs) pair for BatchVerify.
type Item struct {
	Proof        *types.Proof
	PublicInputs *types.PublicInputs
}

func New(vk groth16.VerifyingKey) (*Verifier, error) {
	onchainVK, err := onchain.VerifyingKeyFromGnark(vk)
	if err != nil {
		return nil, err
	}
	prepared, err := Prepare(onchainVK)
	if err != nil {
		return nil, err
	}
	return &Verifier{vk: vk, onchain: onchainVK, prepared: prepared}, nil
}

// Verify returns (false, nil) for a well-formed proof that does not verify and an
// error only when the proof bytes cannot be decoded.
func (v *Verifier) Verify(proof *types.Proof, pub *types.PublicInputs) (bool, error) {
	encoded, err := onchain.ParseProof(proof.Bytes())
	if err != nil {
		return false, err
	}
	a, b, c, err := encoded.Points()
	if err != nil {
		return false, err
	}
	inputs := pub.FieldElements()
	return v.prepared.check(a, b, c, inputs[:])
}

// VerifyBytes decodes both wire formats and verifies.
func (v *Verifier) VerifyBytes(proof, publicInputs []byte) (bool, error) {
	p, err := types.ProofFromBytes(proof)
	if err != nil {
		return false, err
	}
	pub, err := types.PublicInputsFromBytes(publicInputs)
	if err != nil {
		return false, err
	}
	return v.Verify(p, pub)
}

// BatchVerify verifies items one after another and stops at the first rejection or
// error. It costs the same as calling Verify in a loop.
func (v *Verifier) BatchVerify(items []Item) (bool, error) {
	for i, item := range items {
		ok, err := v.Verify(item.Proof, item.PublicInputs)
		if err != nil {
			return false, fmt.Errorf("item %d: %w", i, err)
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

// ExportForMove returns the on-chain verifying key layout.
func (v *Verifier) ExportForMove() []byte {
	return v.onchain.Bytes()
}

// ExportSolidity writes an EVM verifier contract for the same key.
func (v *Verifier) ExportSolidity(w io.Writer) error {
	return keystore.ExportSolidity(w, v.vk)
}

func (v *Verifier) NumPublicInputs() int {
	return v.onchain.NumPublicInputs()
}

func (v *Verifier) VerifyingKey() groth16.VerifyingKey {
	return v.vk
}
