package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sovchain/mint-verifier/keystore"
	"github.com/sovchain/mint-verifier/onchain"
	"github.com/sovchain/mint-verifier/types"
)

func run(t *testing.T, args ...string) error {
	t.Helper()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(new(bytes.Buffer))
	return rootCmd.Execute()
}

func TestSetupProveVerifyExport(t *testing.T) {
	dir := t.TempDir()
	keys := filepath.Join(dir, "keys")
	logFile := filepath.Join(dir, "mint.log")

	require.NoError(t, run(t, "setup", "--dir", keys, "--log-file", logFile))
	manifest, err := keystore.ReadManifest(keys)
	require.NoError(t, err)
	require.Equal(t, types.NumPublicInputs, manifest.PublicInputs)

	witness := filepath.Join(dir, "witness.json")
	require.NoError(t, os.WriteFile(witness, []byte(`{
		"amount": 1000000,
		"pubkey": "0x0101010101010101010101010101010101010101010101010101010101010101",
		"daily_limit": 10000000
	}`), 0644))

	proof := filepath.Join(dir, "proof.json")
	require.NoError(t, run(t, "prove", "--dir", keys, "--log-file", logFile,
		"--witness", witness, "--out", proof, "--nonce", "1", "--epoch", "100"))
	require.NoError(t, run(t, "verify", "--dir", keys, "--log-file", logFile, "--proof", proof))

	bundle, err := types.ReadProofBundle(proof)
	require.NoError(t, err)
	pub, err := types.PublicInputsFromBytes(bundle.PublicInputs)
	require.NoError(t, err)
	pub.Nonce = 2
	bundle.PublicInputs = pub.Bytes()
	tampered := filepath.Join(dir, "tampered.json")
	require.NoError(t, bundle.Export(tampered))
	err = run(t, "verify", "--dir", keys, "--log-file", logFile, "--proof", tampered)
	require.ErrorIs(t, err, types.ErrVerificationFailed)

	move := filepath.Join(dir, "vk.move.bin")
	sol := filepath.Join(dir, "Verifier.sol")
	require.NoError(t, run(t, "export", "--dir", keys, "--log-file", logFile, "--move", move, "--solidity", sol))
	raw, err := os.ReadFile(move)
	require.NoError(t, err)
	vk, err := onchain.ParseVerifyingKey(raw)
	require.NoError(t, err)
	require.Equal(t, types.NumPublicInputs, vk.NumPublicInputs())
	_, err = os.Stat(sol)
	require.NoError(t, err)
}

func TestProveRejectsInvalidWitnessFile(t *testing.T) {
	dir := t.TempDir()
	witness := filepath.Join(dir, "witness.json")
	require.NoError(t, os.WriteFile(witness, []byte(`{"amount": 1, "pubkey": "0x01", "daily_limit": 1}`), 0644))

	err := run(t, "prove", "--dir", filepath.Join(dir, "keys"), "--log-file", filepath.Join(dir, "mint.log"),
		"--witness", witness, "--nonce", "1", "--epoch", "1")
	require.ErrorIs(t, err, types.ErrSerialization)
}
