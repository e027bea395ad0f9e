package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mgijax/snpcacheload/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Long:  "Show the configuration a run would use, resolved from the environment and defaults.",
		Example: `  snpcacheload config                # show all options
  snpcacheload config get PAD        # show one option`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(cmd)
		},
	}

	cmd.AddCommand(newConfigGetCmd())

	return cmd
}

func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "get <option>",
		Short:         "Show one configuration option",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigGet(cmd, args[0])
		},
	}
}

func configSettings() map[string]any {
	cfg := config.Load()
	return map[string]any{
		"PAD":            cfg.Pad,
		"OVERLAY_DIR":    cfg.OverlayDir,
		"OVERLAY_PREFIX": cfg.OverlayPrefix,
		"OUTPUT_DIR":     cfg.OutputDir,
		"OUTPUT_PREFIX":  cfg.OutputPrefix,
		"CHROMOSOMES":    strings.Join(cfg.Chromosomes, ","),
		"SNP_DB":         cfg.DBPath,
		"WORKERS":        cfg.Workers,
		"TMP_FXN_FILE":   cfg.LocusFile,
	}
}

func runConfigShow(cmd *cobra.Command) error {
	out, err := yaml.Marshal(configSettings())
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), string(out))
	return nil
}

func runConfigGet(cmd *cobra.Command, option string) error {
	val, ok := configSettings()[option]
	if !ok {
		return fmt.Errorf("unknown option %q", option)
	}
	fmt.Fprintln(cmd.OutOrStdout(), val)
	return nil
}
