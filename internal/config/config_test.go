package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("SNP_DB", filepath.Join(dir, "snp.duckdb"))
	t.Setenv("OUTPUT_DIR", dir)
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)
	cfg := Load()

	assert.Equal(t, int64(DefaultPad), cfg.Pad)
	assert.Equal(t, DefaultChromosomes, cfg.Chromosomes)
	assert.Equal(t, 1, cfg.Workers)
	assert.Equal(t, "snpalliance", cfg.OverlayPrefix)
	assert.Equal(t, "SNP_ConsensusSnp_Marker", cfg.OutputPrefix)
	require.NoError(t, cfg.Validate())
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("PAD", "10000")
	t.Setenv("CHROMOSOMES", "19, X ,MT")
	t.Setenv("WORKERS", "4")

	cfg := Load()
	assert.Equal(t, int64(10000), cfg.Pad)
	assert.Equal(t, []string{"19", "X", "MT"}, cfg.Chromosomes)
	assert.Equal(t, 4, cfg.Workers)
}

func TestValidate_MissingDB(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{OutputDir: dir}

	err := cfg.Validate()
	var cerr *ConfigError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "SNP_DB", cerr.Option)
}

func TestValidate_MissingOutputDir(t *testing.T) {
	cfg := Config{DBPath: "snp.duckdb", OutputDir: "/no/such/directory"}

	err := cfg.Validate()
	var cerr *ConfigError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "OUTPUT_DIR", cerr.Option)
}

func TestChromosomeCount(t *testing.T) {
	assert.Len(t, DefaultChromosomes, 22)
}

func TestPaths(t *testing.T) {
	cfg := Config{
		OverlayDir:    "/data/overlay",
		OverlayPrefix: "snpalliance",
		OutputDir:     "/data/output",
		OutputPrefix:  "SNP_ConsensusSnp_Marker",
		LocusFile:     "TMP_SNP_Fxn.bcp",
	}
	assert.Equal(t, filepath.Join("/data/overlay", "snpalliance.X.tsv"), cfg.OverlayPath("X"))
	assert.Equal(t, filepath.Join("/data/output", "SNP_ConsensusSnp_Marker.X"), cfg.OutputPath("X"))
	assert.Equal(t, filepath.Join("/data/output", "TMP_SNP_Fxn.bcp"), cfg.LocusPath())
}
