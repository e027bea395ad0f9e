package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mgijax/snpcacheload/internal/config"
	"github.com/mgijax/snpcacheload/internal/locus"
	"github.com/mgijax/snpcacheload/internal/store"
	"github.com/mgijax/snpcacheload/internal/vocab"
)

func newLocusCmd(log *zap.SugaredLogger) *cobra.Command {
	return &cobra.Command{
		Use:   "locus",
		Short: "Refine Locus-Region annotations into upstream/downstream",
		Long: `Read every association row carrying the Locus-Region function class,
derive upstream or downstream from the SNP position relative to the marker
midpoint, and write a pk|direction file (TMP_FXN_FILE in OUTPUT_DIR) for the
distance_direction update.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
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

			rows, err := locus.Refine(st, terms, cfg.LocusPath(), log)
			if err != nil {
				return err
			}
			log.Infow("direction file written", "path", cfg.LocusPath(), "rows", rows)
			return nil
		},
	}
}
