package prover

import (
	"sync"
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/frontend"
	"github.com/stretchr/testify/require"

	"github.com/sovchain/mint-verifier/circuit"
	"github.com/sovchain/mint-verifier/onchain"
	"github.com/sovchain/mint-verifier/pedersen"
	"github.com/sovchain/mint-verifier/types"
)

var shared struct {
	once   sync.Once
	prover *Prover
	vk     groth16.VerifyingKey
	err    error
}

func setup(t *testing.T) (*Prover, groth16.VerifyingKey) {
	t.Helper()
	shared.once.Do(func() {
		shared.prover, shared.vk, shared.err = Setup()
	})
	require.NoError(t, shared.err)
	return shared.prover, shared.vk
}

func onesPubkey() [32]byte {
	var pk [32]byte
	for i := range pk {
		pk[i] = 1
	}
	return pk
}

func gnarkVerify(t *testing.T, vk groth16.VerifyingKey, w *types.Witness, proof *types.Proof, pub *types.PublicInputs) error {
	t.Helper()
	parsed, err := onchain.ParseProof(proof.Bytes())
	require.NoError(t, err)
	gnarkProof, err := parsed.ToGnark()
	require.NoError(t, err)
	public, err := frontend.NewWitness(circuit.NewAssignment(w, pub), ecc.BN254.ScalarField(), frontend.PublicOnly())
	require.NoError(t, err)
	return groth16.Verify(gnarkProof, vk, public)
}

func TestProveRejectsInvalidWitnessBeforeProving(t *testing.T) {
	// A zero Prover has no keys; reaching the proving step would panic.
	p := &Prover{}
	for _, tc := range []struct{ amount, limit uint64 }{{0, 10}, {11, 10}} {
		w, err := types.NewWitness(tc.amount, onesPubkey(), tc.limit)
		require.NoError(t, err)
		_, _, err = p.Prove(w, pedersen.CommitWitness(w), 1, 100)
		require.ErrorIs(t, err, types.ErrInvalidWitness)
		_, _, err = p.ProveMint(w, 1, 100)
		require.ErrorIs(t, err, types.ErrInvalidWitness)
	}
}

func TestProveRejectsUnopenedCommitment(t *testing.T) {
	p := &Prover{}
	w, err := types.NewWitness(1_000_000, onesPubkey(), 10_000_000)
	require.NoError(t, err)
	_, _, err = p.Prove(w, types.Commitment{}, 1, 100)
	require.ErrorIs(t, err, types.ErrInvalidWitness)

	other := pedersen.Commit(w.Amount+1, w.BlindingScalar())
	_, _, err = p.Prove(w, other, 1, 100)
	require.ErrorIs(t, err, types.ErrInvalidWitness)
}

func TestProve(t *testing.T) {
	p, vk := setup(t)
	require.Equal(t, circuit.TargetTotal, p.NbConstraints())

	w, err := types.NewWitness(1_000_000, onesPubkey(), 10_000_000)
	require.NoError(t, err)
	commitment := pedersen.CommitWitness(w)

	proof, pub, err := p.Prove(w, commitment, 1, 100)
	require.NoError(t, err)
	require.Equal(t, types.ProofSize, proof.Size())
	require.Len(t, pub.Bytes(), types.PublicInputsSize)
	require.Equal(t, commitment, pub.Commitment())
	require.Equal(t, uint64(1), pub.Nonce)
	require.Equal(t, uint64(100), pub.Epoch)
	require.Equal(t, types.ComputeAuthorityHash(onesPubkey()), pub.AuthorityHash)
	require.Equal(t, types.ComputeLimitHash(10_000_000), pub.LimitHash)

	require.NoError(t, gnarkVerify(t, vk, w, proof, pub))
}

func TestProveUsesFreshRandomness(t *testing.T) {
	p, vk := setup(t)
	w, err := types.NewWitness(42, onesPubkey(), 42)
	require.NoError(t, err)

	proof1, pub1, err := p.ProveMint(w, 7, 8)
	require.NoError(t, err)
	proof2, pub2, err := p.ProveMint(w, 7, 8)
	require.NoError(t, err)

	require.True(t, pub1.Equal(pub2))
	require.NotEqual(t, proof1.Bytes(), proof2.Bytes())
	require.NoError(t, gnarkVerify(t, vk, w, proof1, pub1))
	require.NoError(t, gnarkVerify(t, vk, w, proof2, pub2))
}
