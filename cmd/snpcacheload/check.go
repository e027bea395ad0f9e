package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mgijax/snpcacheload/internal/config"
	"github.com/mgijax/snpcacheload/internal/store"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "check",
		Short:         "Print association row counts per chromosome",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if err := cfg.ValidateDB(); err != nil {
				return err
			}

			st, err := store.Open(cfg.DBPath)
			if err != nil {
				return err
			}
			defer st.Close()

			total, err := st.AssociationCount()
			if err != nil {
				return err
			}
			counts, err := st.AssociationCountByChromosome()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "total\t%d\n", total)
			for _, chromosome := range cfg.Chromosomes {
				fmt.Fprintf(out, "%s\t%d\n", chromosome, counts[chromosome])
			}
			return nil
		},
	}
}
