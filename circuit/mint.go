package circuit

import (
	"fmt"

	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/math/bits"

	"github.com/sovchain/mint-verifier/pedersen"
	"github.com/sovchain/mint-verifier/sha256"
	"github.com/sovchain/mint-verifier/types"
)

// Version identifies the circuit shape that a key pair was generated for.
const Version = "mint/v1"

// MintCircuit is the mint relation. The order of the public fields is the order of
// the verifying key's input points and must not change.
type MintCircuit struct {
	CommitmentX   frontend.Variable `gnark:",public"`
	CommitmentY   frontend.Variable `gnark:",public"`
	AuthorityHash frontend.Variable `gnark:",public"`
	LimitHash     frontend.Variable `gnark:",public"`
	Nonce         frontend.Variable `gnark:",public"`
	Epoch         frontend.Variable `gnark:",public"`

	Amount     frontend.Variable
	Blinding   frontend.Variable
	Pubkey     [32]frontend.Variable
	DailyLimit frontend.Variable
}

// NewSetupCircuit returns the unassigned circuit shape used for key generation.
func NewSetupCircuit() *MintCircuit {
	return &MintCircuit{}
}

// NewAssignment binds a witness and its public inputs. Public values go through
// PublicInputs.BigInts so the prover and verifier see identical field elements.
func NewAssignment(w *types.Witness, pub *types.PublicInputs) *MintCircuit {
	inputs := pub.BigInts()
	assignment := &MintCircuit{
		CommitmentX:   inputs[0],
		CommitmentY:   inputs[1],
		AuthorityHash: inputs[2],
		LimitHash:     inputs[3],
		Nonce:         inputs[4],
		Epoch:         inputs[5],
		Amount:        w.Amount,
		Blinding:      w.BlindingScalar(),
		DailyLimit:    w.DailyLimit,
	}
	for i, b := range w.Pubkey {
		assignment.Pubkey[i] = b
	}
	return assignment
}

func (c *MintCircuit) Define(api frontend.API) error {
	amountBits := RangeCheck64(api, c.Amount)
	limitBits := RangeCheck64(api, c.DailyLimit)

	AssertPolicy(api, c.Amount, c.DailyLimit)

	committer, err := pedersen.NewChip(api)
	if err != nil {
		return fmt.Errorf("failed to create commitment chip: %w", err)
	}
	blindingBits := bits.ToBinary(api, c.Blinding)
	committer.AssertCommitment(c.CommitmentX, c.CommitmentY, amountBits, blindingBits)

	hasher := sha256.NewChip(api)
	AssertAuthorityBinding(api, hasher, c.Pubkey[:], c.AuthorityHash)
	AssertLimitBinding(api, hasher, limitBits, c.LimitHash)

	RangeCheck64(api, c.Nonce)
	RangeCheck64(api, c.Epoch)
	return nil
}
