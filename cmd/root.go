package cmd

import (
	"io"
	"os"

	"github.com/consensys/gnark/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/sovchain/mint-verifier/config"
)

var (
	fConfigFile string
	fKeysDir    string
	fLogLevel   string
	fLogFile    string

	cfg       *config.Config
	log       zerolog.Logger
	logCloser io.Closer
)

var rootCmd = &cobra.Command{
	Use:               "mint-verifier",
	Short:             "zero-knowledge proofs that a hidden mint amount satisfies the mint policy",
	SilenceUsage:      true,
	PersistentPreRunE: initialize,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logCloser != nil {
			logCloser.Close()
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// initialize loads the config file, applies flag overrides and installs the logger
// for both this binary and gnark.
func initialize(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(fConfigFile)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("dir") {
		cfg.KeysDir = fKeysDir
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = fLogLevel
	}
	if flags.Changed("log-file") {
		cfg.Log.Path = fLogFile
	}

	log, logCloser, err = cfg.Log.CreateLogger()
	if err != nil {
		return err
	}
	logger.Set(log)
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&fConfigFile, "config", "", "YAML config file")
	rootCmd.PersistentFlags().StringVar(&fKeysDir, "dir", "keys", "key directory (r1cs.bin, pk.bin, vk.bin, manifest.json)")
	rootCmd.PersistentFlags().StringVar(&fLogLevel, "log-level", "info", "log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&fLogFile, "log-file", "", "write logs to a rotated file instead of the console")
}
