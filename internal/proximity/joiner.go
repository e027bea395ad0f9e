package proximity

import (
	"sort"

	"github.com/mgijax/snpcacheload/internal/store"
)

// Joiner emits every SNP/marker pair whose SNP coordinate lies within pad bp
// of the marker interval.
type Joiner struct {
	pad      int64
	classify *Classifier
}

// NewJoiner creates a joiner with the given padding window.
func NewJoiner(pad int64, classify *Classifier) *Joiner {
	return &Joiner{pad: pad, classify: classify}
}

// Join runs the proximity join for one chromosome. The SNP slice must be
// sorted ascending by coordinate; markers are visited in the order given.
// Each classified row is passed to emit; a non-nil error from emit stops the
// join.
func (j *Joiner) Join(snps []store.SNP, markers []store.Marker, emit func(*Association) error) error {
	if len(snps) == 0 || len(markers) == 0 {
		return nil
	}

	for i := range markers {
		m := &markers[i]

		hi := searchCoord(snps, m.End+j.pad)
		if hi < 0 {
			continue
		}

		leftBound := m.Start - j.pad
		for k := hi; k >= 0 && snps[k].Coord >= leftBound; k-- {
			for _, row := range j.classify.Classify(&snps[k], m) {
				if err := emit(&row); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// searchCoord returns the largest index i with snps[i].Coord <= key, or -1
// when every coordinate exceeds key. When several SNPs share the key
// coordinate the last of the run is returned.
func searchCoord(snps []store.SNP, key int64) int {
	// First index whose coordinate exceeds key; the answer is one left of it.
	i := sort.Search(len(snps), func(i int) bool {
		return snps[i].Coord > key
	})
	return i - 1
}
