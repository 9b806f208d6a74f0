package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sovchain/mint-verifier/types"
	"github.com/sovchain/mint-verifier/verifier"
)

var fBundleFile string

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "verify a proof bundle against the verifying key",
	RunE:  verify,
}

func verify(cmd *cobra.Command, args []string) error {
	v, err := verifier.Load(cfg.KeysDir)
	if err != nil {
		return err
	}
	bundle, err := types.ReadProofBundle(fBundleFile)
	if err != nil {
		return err
	}
	proof, pub, err := bundle.Decode()
	if err != nil {
		return err
	}

	ok, err := v.Verify(proof, pub)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", types.ErrVerificationFailed, fBundleFile)
	}
	log.Info().Uint64("nonce", pub.Nonce).Uint64("epoch", pub.Epoch).Msg("Proof is valid")
	return nil
}

func init() {
	rootCmd.AddCommand(verifyCmd)
	verifyCmd.Flags().StringVar(&fBundleFile, "proof", "proof.json", "proof bundle to verify")
}
