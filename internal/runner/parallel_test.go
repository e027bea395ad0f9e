package runner

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mgijax/snpcacheload/internal/store"
)

// seedSpread puts several markers and SNPs on each chromosome so the
// parallel renumber pass has real key ranges to rebase.
func seedSpread(t *testing.T, s *store.Store, chromosomes []string) {
	t.Helper()
	key := int64(0)
	for ci, chromosome := range chromosomes {
		for m := int64(0); m < 3; m++ {
			key++
			start := 10000 + m*50000
			require.NoError(t, s.InsertMarker(store.Marker{
				MarkerKey: key, Acc: fmt.Sprintf("MGI:%d", key),
				Chromosome: chromosome, Start: start, End: start + 20000,
				Strand: []string{"+", "-", ""}[m],
			}))
		}
		for n := int64(0); n < 40; n++ {
			snpKey := int64(ci)*1000 + n
			require.NoError(t, s.InsertSNP(store.SNP{
				SNPKey: snpKey, CoordCacheKey: snpKey + 5000,
				Acc:        fmt.Sprintf("rs%d", snpKey),
				Chromosome: chromosome, Coord: 1 + n*4000,
			}))
		}
	}
}

func TestRunParallel_MatchesSequential(t *testing.T) {
	chromosomes := []string{"1", "2", "3", "X"}

	s, cfg := newTestRun(t, chromosomes, 2000)
	seedSpread(t, s, chromosomes)

	require.NoError(t, newRunner(t, s, cfg).Run())
	sequential := map[string]string{}
	total := 0
	for _, c := range chromosomes {
		sequential[c] = readOutput(t, cfg, c)
		total += len(sequential[c])
	}
	require.Positive(t, total, "seed data must produce rows")

	cfg.Workers = 3
	require.NoError(t, newRunner(t, s, cfg).Run())

	for _, c := range chromosomes {
		assert.Equal(t, sequential[c], readOutput(t, cfg, c), "chr %s", c)
	}
}

func TestRunParallel_ClampsWorkersAndRebasesKeys(t *testing.T) {
	chromosomes := []string{"1", "2"}

	s, cfg := newTestRun(t, chromosomes, 2000)
	seedSpread(t, s, chromosomes)

	require.NoError(t, newRunner(t, s, cfg).runParallel(8))

	// More workers than chromosomes is clamped, and the rebased keys still
	// form one run-global sequence starting at 1.
	pk := 1
	for _, c := range chromosomes {
		for _, line := range strings.Split(readOutput(t, cfg, c), "\n") {
			if line == "" {
				continue
			}
			pkField, _, _ := strings.Cut(line, "|")
			assert.Equal(t, fmt.Sprintf("%d", pk), pkField)
			pk++
		}
	}
	assert.Greater(t, pk, 1)
}
