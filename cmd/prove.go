package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/sovchain/mint-verifier/prover"
	"github.com/sovchain/mint-verifier/types"
)

var (
	fWitnessFile string
	fProofFile   string
	fNonce       uint64
	fEpoch       uint64
)

// proveCmd represents the proof command
var proveCmd = &cobra.Command{
	Use:   "prove",
	Short: "generate a mint proof from a witness file, writing hex proof and public inputs to json",
	RunE:  prove,
}

func prove(cmd *cobra.Command, args []string) error {
	w, err := types.ReadWitness(fWitnessFile)
	if err != nil {
		return err
	}

	start := time.Now()
	p, err := prover.Load(cfg.KeysDir)
	if err != nil {
		return err
	}
	log.Info().Msg("Loaded prover data, time: " + time.Since(start).String())

	start = time.Now()
	proof, pub, err := p.ProveMint(w, fNonce, fEpoch)
	if err != nil {
		return err
	}
	log.Info().Msg("Successfully created proof, time: " + time.Since(start).String())

	if err := types.NewProofBundle(proof, pub).Export(fProofFile); err != nil {
		return err
	}
	log.Info().Str("file", fProofFile).Msg("Saved proof bundle")
	return nil
}

func init() {
	rootCmd.AddCommand(proveCmd)
	proveCmd.Flags().StringVar(&fWitnessFile, "witness", "witness.json", "witness json {amount, pubkey, daily_limit, blinding?}")
	proveCmd.Flags().StringVar(&fProofFile, "out", "proof.json", "output proof bundle")
	proveCmd.Flags().Uint64Var(&fNonce, "nonce", 0, "minter nonce, strictly increasing")
	proveCmd.Flags().Uint64Var(&fEpoch, "epoch", 0, "validity epoch")
	proveCmd.MarkFlagRequired("nonce")
	proveCmd.MarkFlagRequired("epoch")
}
