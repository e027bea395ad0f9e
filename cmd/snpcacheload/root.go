package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mgijax/snpcacheload/internal/config"
	"github.com/mgijax/snpcacheload/internal/runner"
	"github.com/mgijax/snpcacheload/internal/store"
	"github.com/mgijax/snpcacheload/internal/vocab"
)

func newRootCmd(log *zap.SugaredLogger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snpcacheload",
		Short: "Build the SNP/marker association cache",
		Long: `Build the consensus SNP to marker association table for one genome
release: for every chromosome, join the SNP coordinate cache against the
marker location cache within the configured padding window, apply the
curated overlay, and write one pipe-delimited bcp file per chromosome.

All options come from the environment: SNP_DB, OUTPUT_DIR, OUTPUT_PREFIX,
OVERLAY_DIR, OVERLAY_PREFIX, PAD, CHROMOSOMES, WORKERS.`,
		Example: `  # full run, all chromosomes
  SNP_DB=snp.duckdb OUTPUT_DIR=./output OVERLAY_DIR=./overlay snpcacheload

  # a single chromosome with a wider window
  CHROMOSOMES=19 PAD=10000 SNP_DB=snp.duckdb OUTPUT_DIR=./output snpcacheload`,
		Version:       fmt.Sprintf("%s (%s) built %s", version, commit, date),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithin(log)
		},
	}

	cmd.AddCommand(newLocusCmd(log))
	cmd.AddCommand(newCheckCmd())
	cmd.AddCommand(newConfigCmd())

	return cmd
}

func runWithin(log *zap.SugaredLogger) error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer st.Close()

	terms, err := vocab.Load(st)
	if err != nil {
		return err
	}

	log.Infow("starting cache load",
		"db", cfg.DBPath, "pad", cfg.Pad,
		"chromosomes", len(cfg.Chromosomes), "workers", cfg.Workers)

	r, err := runner.New(st, terms, cfg, log)
	if err != nil {
		return err
	}
	return r.Run()
}
