package cmd

import (
	"github.com/spf13/cobra"

	"github.com/sovchain/mint-verifier/prover"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "compile the mint circuit and generate a local key pair (r1cs, pk, vk, on-chain vk, solidity contract)",
	Long: "Runs a single-party Groth16 setup. The toxic waste is known to this process, " +
		"so keys produced here are for development; production keys come from a ceremony.",
	RunE: setup,
}

func setup(cmd *cobra.Command, args []string) error {
	p, vk, err := prover.Setup()
	if err != nil {
		return err
	}
	if err := p.Save(cfg.KeysDir, vk); err != nil {
		return err
	}
	log.Info().Int("constraints", p.NbConstraints()).Str("dir", cfg.KeysDir).Msg("Saved mint circuit keys")
	return nil
}

func init() {
	rootCmd.AddCommand(setupCmd)
}
