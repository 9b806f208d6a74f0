package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/sovchain/mint-verifier/keystore"
	"github.com/sovchain/mint-verifier/types"
	"github.com/sovchain/mint-verifier/verifier"
)

var (
	fMoveFile     string
	fSolidityFile string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "export the verifying key in the on-chain layout and as a solidity contract",
	RunE:  export,
}

func export(cmd *cobra.Command, args []string) error {
	v, err := verifier.Load(cfg.KeysDir)
	if err != nil {
		return err
	}
	if fMoveFile != "" {
		if err := os.WriteFile(fMoveFile, v.ExportForMove(), 0644); err != nil {
			return types.WrapIO(fMoveFile, err)
		}
		log.Info().Str("file", fMoveFile).Int("publicInputs", v.NumPublicInputs()).Msg("Saved on-chain verifying key")
	}
	if fSolidityFile != "" {
		if err := keystore.ExportSolidityFile(fSolidityFile, v.VerifyingKey()); err != nil {
			return err
		}
		log.Info().Str("file", fSolidityFile).Msg("Saved solidity verifier")
	}
	return nil
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVar(&fMoveFile, "move", "vk.move.bin", "on-chain verifying key output, empty to skip")
	exportCmd.Flags().StringVar(&fSolidityFile, "solidity", "", "solidity verifier output, empty to skip")
}
