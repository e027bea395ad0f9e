// Package locus refines Locus-Region annotations into upstream/downstream
// directions.
package locus

import (
	"bufio"
	"fmt"
	"os"
	"strconv"

	"go.uber.org/zap"

	"github.com/mgijax/snpcacheload/internal/store"
	"github.com/mgijax/snpcacheload/internal/vocab"
)

// Refine reads every association row carrying the Locus-Region function
// class, derives upstream or downstream from the SNP position relative to
// the marker midpoint, and writes one "pk|direction" line per row to path.
// The resulting file loads a temp table that drives the distance_direction
// update. Returns the number of rows written.
func Refine(st *store.Store, terms *vocab.Lookup, path string, log *zap.SugaredLogger) (int, error) {
	key, err := terms.Resolve(vocab.LocusRegion)
	if err != nil {
		return 0, err
	}

	anns, err := st.LocusRegionAnnotations(int(key))
	if err != nil {
		return 0, err
	}
	log.Infow("locus-region annotations loaded", "rows", len(anns))

	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create direction file: %w", err)
	}
	w := bufio.NewWriter(f)

	rows := 0
	for _, a := range anns {
		dir, ok := direction(a.SNPCoord, a.MarkerStart, a.MarkerEnd, a.Strand)
		if !ok {
			log.Warnw("locus-region row matched no direction branch",
				"key", a.Key, "coord", a.SNPCoord,
				"start", a.MarkerStart, "end", a.MarkerEnd, "strand", a.Strand)
			continue
		}
		if _, err := w.WriteString(strconv.FormatInt(a.Key, 10) + "|" + dir + "\n"); err != nil {
			f.Close()
			return rows, fmt.Errorf("write direction file: %w", err)
		}
		rows++
	}

	if err := w.Flush(); err != nil {
		f.Close()
		return rows, fmt.Errorf("flush direction file: %w", err)
	}
	if err := f.Close(); err != nil {
		return rows, fmt.Errorf("close direction file: %w", err)
	}
	return rows, nil
}

// direction applies the midpoint rule. Unlike the proximity classifier, the
// refinement only ever assigns the upstream/downstream pair: a NULL strand
// resolves by midpoint side alone.
func direction(coord, start, end int64, strand string) (string, bool) {
	mid := float64(start+end) / 2.0
	left := float64(coord) <= mid

	switch strand {
	case "+":
		if left {
			return "upstream", true
		}
		return "downstream", true
	case "-":
		if left {
			return "downstream", true
		}
		return "upstream", true
	case "", ".", "?":
		if left {
			return "upstream", true
		}
		return "downstream", true
	}
	return "", false
}
