package proximity

import (
	"go.uber.org/zap"

	"github.com/mgijax/snpcacheload/internal/overlay"
	"github.com/mgijax/snpcacheload/internal/store"
	"github.com/mgijax/snpcacheload/internal/vocab"
)

// Classifier assigns function class, direction, and distance to one
// SNP/marker pair already known to lie within the proximity window.
type Classifier struct {
	withinCoord vocab.TermKey
	withinDist  vocab.TermKey
	overlay     overlay.Map
	log         *zap.SugaredLogger
}

// NewClassifier creates a classifier. The overlay map may be empty but not
// nil-checked per lookup; pass overlay.Map{} when there is no overlay.
func NewClassifier(withinCoord, withinDist vocab.TermKey, ov overlay.Map, log *zap.SugaredLogger) *Classifier {
	return &Classifier{
		withinCoord: withinCoord,
		withinDist:  withinDist,
		overlay:     ov,
		log:         log,
	}
}

// Classify returns the association rows for one pair. Overlay entries win
// over geometry; a pair inside the marker interval is within-coordinates;
// anything else in the window is within-distance with a strand-derived
// direction. A pair matching none of these is logged and dropped.
func (c *Classifier) Classify(snp *store.SNP, m *store.Marker) []Association {
	if entries := c.overlay.Lookup(overlay.SnpAcc(snp.Acc), overlay.MarkerAcc(m.Acc)); len(entries) > 0 {
		rows := make([]Association, len(entries))
		for i, e := range entries {
			rows[i] = Association{
				SNPKey:        snp.SNPKey,
				MarkerKey:     m.MarkerKey,
				FxnKey:        int(e.TermKey),
				CoordCacheKey: snp.CoordCacheKey,
				Distance:      0,
				Direction:     NotApplicable,
			}
		}
		return rows
	}

	if m.Contains(snp.Coord) {
		return []Association{{
			SNPKey:        snp.SNPKey,
			MarkerKey:     m.MarkerKey,
			FxnKey:        int(c.withinCoord),
			CoordCacheKey: snp.CoordCacheKey,
			Distance:      0,
			Direction:     NotApplicable,
		}}
	}

	dir, dist, ok := Orient(snp.Coord, m.Start, m.End, m.Strand)
	if !ok {
		c.log.Warnw("pair matched no classification branch",
			"snp", snp.Acc, "snpKey", snp.SNPKey, "coord", snp.Coord,
			"marker", m.Acc, "markerKey", m.MarkerKey,
			"start", m.Start, "end", m.End, "strand", m.Strand)
		return nil
	}

	return []Association{{
		SNPKey:        snp.SNPKey,
		MarkerKey:     m.MarkerKey,
		FxnKey:        int(c.withinDist),
		CoordCacheKey: snp.CoordCacheKey,
		Distance:      dist,
		Direction:     dir,
	}}
}

// Orient derives direction and distance for a SNP outside the marker
// interval. The midpoint is real-valued and a SNP exactly on it takes the
// upstream/proximal branch. Distance is measured to the nearer interval end
// and is positive for every SNP outside the interval.
func Orient(coord, start, end int64, strand string) (Direction, int64, bool) {
	if coord >= start && coord <= end {
		return NotApplicable, 0, false
	}

	mid := float64(start+end) / 2.0
	left := float64(coord) <= mid

	var dist int64
	if left {
		dist = start - coord
	} else {
		dist = coord - end
	}
	if dist <= 0 {
		return NotApplicable, 0, false
	}

	switch {
	case strand == "+" && left:
		return Upstream, dist, true
	case strand == "+":
		return Downstream, dist, true
	case strand == "-" && left:
		return Downstream, dist, true
	case strand == "-":
		return Upstream, dist, true
	case unknownStrand(strand) && left:
		return Proximal, dist, true
	case unknownStrand(strand):
		return Distal, dist, true
	}
	return NotApplicable, 0, false
}
