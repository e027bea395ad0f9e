// Package config provides environment-driven configuration for the cache load.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// DefaultPad is the half-width of the proximity window in bp.
const DefaultPad = 2000

// DefaultChromosomes is the ordered list of mouse chromosome labels processed
// by a full run.
var DefaultChromosomes = []string{
	"1", "2", "3", "4", "5", "6", "7", "8", "9", "10",
	"11", "12", "13", "14", "15", "16", "17", "18", "19",
	"X", "Y", "MT",
}

// Config holds all recognized options. Every option is read from the
// environment variable of the same name.
type Config struct {
	Pad           int64
	OverlayDir    string
	OverlayPrefix string
	OutputDir     string
	OutputPrefix  string
	Chromosomes   []string
	DBPath        string
	Workers       int
	LocusFile     string
}

// ConfigError reports a missing or unusable required option.
type ConfigError struct {
	Option  string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Option, e.Message)
}

// Load reads configuration from the environment. Callers validate the
// options their command requires.
func Load() Config {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PAD", DefaultPad)
	v.SetDefault("OVERLAY_PREFIX", "snpalliance")
	v.SetDefault("OUTPUT_PREFIX", "SNP_ConsensusSnp_Marker")
	v.SetDefault("WORKERS", 1)
	v.SetDefault("TMP_FXN_FILE", "TMP_SNP_Fxn.bcp")

	cfg := Config{
		Pad:           v.GetInt64("PAD"),
		OverlayDir:    v.GetString("OVERLAY_DIR"),
		OverlayPrefix: v.GetString("OVERLAY_PREFIX"),
		OutputDir:     v.GetString("OUTPUT_DIR"),
		OutputPrefix:  v.GetString("OUTPUT_PREFIX"),
		Chromosomes:   splitChromosomes(v.GetString("CHROMOSOMES")),
		DBPath:        v.GetString("SNP_DB"),
		Workers:       v.GetInt("WORKERS"),
		LocusFile:     v.GetString("TMP_FXN_FILE"),
	}

	if len(cfg.Chromosomes) == 0 {
		cfg.Chromosomes = DefaultChromosomes
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}

	return cfg
}

// ValidateDB checks the options every command needs.
func (c Config) ValidateDB() error {
	if c.DBPath == "" {
		return &ConfigError{Option: "SNP_DB", Message: "database path is required"}
	}
	return nil
}

// Validate checks that the options a producing run requires are usable.
func (c Config) Validate() error {
	if err := c.ValidateDB(); err != nil {
		return err
	}
	if c.OutputDir == "" {
		return &ConfigError{Option: "OUTPUT_DIR", Message: "output directory is required"}
	}
	info, err := os.Stat(c.OutputDir)
	if err != nil || !info.IsDir() {
		return &ConfigError{Option: "OUTPUT_DIR", Message: fmt.Sprintf("not a directory: %s", c.OutputDir)}
	}
	if c.Pad < 0 {
		return &ConfigError{Option: "PAD", Message: "must be >= 0"}
	}
	return nil
}

// OverlayPath returns the overlay TSV path for one chromosome.
func (c Config) OverlayPath(chromosome string) string {
	return filepath.Join(c.OverlayDir, c.OverlayPrefix+"."+chromosome+".tsv")
}

// OutputPath returns the association output file path for one chromosome.
func (c Config) OutputPath(chromosome string) string {
	return filepath.Join(c.OutputDir, c.OutputPrefix+"."+chromosome)
}

// LocusPath returns the path of the Locus-Region direction update file.
func (c Config) LocusPath() string {
	return filepath.Join(c.OutputDir, c.LocusFile)
}

func splitChromosomes(s string) []string {
	if s == "" {
		return nil
	}
	var chroms []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			chroms = append(chroms, part)
		}
	}
	return chroms
}
