package cmd

import (
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/sovchain/mint-verifier/api"
	"github.com/sovchain/mint-verifier/prover"
	"github.com/sovchain/mint-verifier/replay"
	"github.com/sovchain/mint-verifier/verifier"
)

var (
	fListen     string
	fVerifyOnly bool
)

var webApiCmd = &cobra.Command{
	Use:   "web-api",
	Short: "runs a web server for proof generation and verification, hex bytes in json",
	RunE:  runApi,
}

func runApi(cmd *cobra.Command, args []string) error {
	if cmd.Flags().Changed("listen") {
		cfg.Server.Listen = fListen
	}
	gin.SetMode(cfg.Server.GinMode)

	v, err := verifier.Load(cfg.KeysDir)
	if err != nil {
		return err
	}
	var p *prover.Prover
	if !fVerifyOnly {
		if p, err = prover.Load(cfg.KeysDir); err != nil {
			return err
		}
	}

	var store replay.Store
	if cfg.Replay.Path != "" {
		store, err = replay.OpenBadger(cfg.Replay.Path, log)
		if err != nil {
			return err
		}
	} else {
		store = replay.NewMemoryStore()
	}
	defer store.Close()

	router := api.NewServer(p, v, store, log).Router()
	log.Info().Str("listen", cfg.Server.Listen).Bool("prover", p != nil).Msg("Starting web api")
	return router.Run(cfg.Server.Listen)
}

func init() {
	rootCmd.AddCommand(webApiCmd)
	webApiCmd.Flags().StringVar(&fListen, "listen", "0.0.0.0:8010", "listen address")
	webApiCmd.Flags().BoolVar(&fVerifyOnly, "verify-only", false, "serve verification only, without loading the proving key")
}
