package circuit

import (
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend"
	"github.com/consensys/gnark/test"
	"github.com/stretchr/testify/require"

	"github.com/sovchain/mint-verifier/pedersen"
	"github.com/sovchain/mint-verifier/types"
)

func onesPubkey() [32]byte {
	var pk [32]byte
	for i := range pk {
		pk[i] = 1
	}
	return pk
}

func validAssignment(t *testing.T, amount, limit uint64) (*types.Witness, *types.PublicInputs, *MintCircuit) {
	t.Helper()
	w, err := types.NewWitness(amount, onesPubkey(), limit)
	require.NoError(t, err)
	pub := types.DerivePublicInputs(w, pedersen.CommitWitness(w), 1, 100)
	return w, pub, NewAssignment(w, pub)
}

func isSolved(assignment *MintCircuit) error {
	return test.IsSolved(NewSetupCircuit(), assignment, ecc.BN254.ScalarField())
}

func TestMintCircuitSolved(t *testing.T) {
	_, _, assignment := validAssignment(t, 1_000_000, 10_000_000)
	require.NoError(t, isSolved(assignment))
}

func TestMintCircuitBoundaries(t *testing.T) {
	_, _, assignment := validAssignment(t, 1, 1)
	require.NoError(t, isSolved(assignment))

	_, _, assignment = validAssignment(t, ^uint64(0), ^uint64(0))
	require.NoError(t, isSolved(assignment))
}

func TestMintCircuitRejectsZeroAmount(t *testing.T) {
	w, err := types.NewWitness(0, onesPubkey(), 10)
	require.NoError(t, err)
	pub := types.DerivePublicInputs(w, pedersen.CommitWitness(w), 1, 100)
	require.Error(t, isSolved(NewAssignment(w, pub)))
}

func TestMintCircuitRejectsAmountOverLimit(t *testing.T) {
	w, err := types.NewWitness(11, onesPubkey(), 10)
	require.NoError(t, err)
	pub := types.DerivePublicInputs(w, pedersen.CommitWitness(w), 1, 100)
	require.Error(t, isSolved(NewAssignment(w, pub)))
}

func TestMintCircuitRejectsWraparoundAmount(t *testing.T) {
	// -1 and -2^64 satisfy limit-amount >= 0 only by wrapping around the field.
	for _, amount := range []*big.Int{
		new(big.Int).Sub(ecc.BN254.ScalarField(), big.NewInt(1)),
		new(big.Int).Sub(ecc.BN254.ScalarField(), new(big.Int).Lsh(big.NewInt(1), 64)),
	} {
		_, _, assignment := validAssignment(t, 5, 10)
		assignment.Amount = amount
		require.Error(t, isSolved(assignment))
	}
}

func TestMintCircuitRejectsWrongBindings(t *testing.T) {
	_, pub, assignment := validAssignment(t, 1_000_000, 10_000_000)

	wrong := *pub
	wrong.AuthorityHash[0] ^= 1
	assignment.AuthorityHash = wrong.BigInts()[2]
	require.Error(t, isSolved(assignment))

	_, pub, assignment = validAssignment(t, 1_000_000, 10_000_000)
	wrong = *pub
	wrong.LimitHash = types.ComputeLimitHash(10_000_001)
	assignment.LimitHash = wrong.BigInts()[3]
	require.Error(t, isSolved(assignment))

	_, _, assignment = validAssignment(t, 1_000_000, 10_000_000)
	assignment.Pubkey[5] = 2
	require.Error(t, isSolved(assignment))
}

func TestMintCircuitRejectsWrongCommitment(t *testing.T) {
	w, _, assignment := validAssignment(t, 1_000_000, 10_000_000)
	other := pedersen.Commit(w.Amount+1, w.BlindingScalar())
	otherPub := types.DerivePublicInputs(w, other, 1, 100)
	assignment.CommitmentX = otherPub.BigInts()[0]
	assignment.CommitmentY = otherPub.BigInts()[1]
	require.Error(t, isSolved(assignment))

	_, _, assignment = validAssignment(t, 1_000_000, 10_000_000)
	assignment.CommitmentX = 0
	assignment.CommitmentY = 0
	require.Error(t, isSolved(assignment))
}

func TestMintCircuitRejectsOversizedNonce(t *testing.T) {
	_, _, assignment := validAssignment(t, 1_000_000, 10_000_000)
	assignment.Nonce = new(big.Int).Lsh(big.NewInt(1), 64)
	require.Error(t, isSolved(assignment))
}

func TestPolicyGadget(t *testing.T) {
	assert := test.NewAssert(t)
	assert.CheckCircuit(
		&policyGadget{},
		test.WithValidAssignment(&policyGadget{Amount: 3, DailyLimit: 3}),
		test.WithValidAssignment(&policyGadget{Amount: 1, DailyLimit: 1 << 40}),
		test.WithInvalidAssignment(&policyGadget{Amount: 0, DailyLimit: 3}),
		test.WithInvalidAssignment(&policyGadget{Amount: 4, DailyLimit: 3}),
		test.WithCurves(ecc.BN254),
		test.WithBackends(backend.GROTH16),
		test.NoFuzzing(),
	)
}
