package store

import (
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.duckdb")

	s, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	if err := s.CreateSchema(); err != nil {
		t.Fatalf("CreateSchema: %v", err)
	}
	return s
}

func TestFunctionClassTerms(t *testing.T) {
	s := newTestStore(t)

	terms := []struct {
		key   int
		vocab string
		term  string
	}{
		{1001, FunctionClassVocab, "within coordinates of"},
		{1002, FunctionClassVocab, "within distance of"},
		{1003, FunctionClassVocab, "Locus-Region"},
		{2001, FunctionClassVocab, "within 2 kb upstream of"},
		{1004, FunctionClassVocab, "intron"},
		{9001, "Marker Type", "within coordinates of"},
	}
	for _, tt := range terms {
		if err := s.InsertTerm(tt.key, tt.vocab, tt.term); err != nil {
			t.Fatalf("InsertTerm: %v", err)
		}
	}

	got, err := s.FunctionClassTerms()
	if err != nil {
		t.Fatalf("FunctionClassTerms: %v", err)
	}

	// The fixed names plus the legacy range term; "intron" has no place in
	// the coordinate load, and the other vocabulary's term is excluded.
	if len(got) != 4 {
		t.Errorf("len = %d, want 4 (%v)", len(got), got)
	}
	if got["within coordinates of"] != 1001 {
		t.Errorf("within coordinates of = %d, want 1001", got["within coordinates of"])
	}
	if got["within 2 kb upstream of"] != 2001 {
		t.Errorf("within 2 kb upstream of = %d, want 2001", got["within 2 kb upstream of"])
	}
	if _, ok := got["intron"]; ok {
		t.Error("intron should not be loaded")
	}
}

func TestMaxSNPCoord(t *testing.T) {
	s := newTestStore(t)

	max, err := s.MaxSNPCoord("19")
	if err != nil {
		t.Fatalf("MaxSNPCoord: %v", err)
	}
	if max != 0 {
		t.Errorf("empty chromosome max = %d, want 0", max)
	}

	snps := []SNP{
		{SNPKey: 1, CoordCacheKey: 11, Acc: "rs1", Chromosome: "19", Coord: 5000},
		{SNPKey: 2, CoordCacheKey: 12, Acc: "rs2", Chromosome: "19", Coord: 9000},
		{SNPKey: 3, CoordCacheKey: 13, Acc: "rs3", Chromosome: "X", Coord: 99999},
	}
	for _, snp := range snps {
		if err := s.InsertSNP(snp); err != nil {
			t.Fatalf("InsertSNP: %v", err)
		}
	}

	max, err = s.MaxSNPCoord("19")
	if err != nil {
		t.Fatalf("MaxSNPCoord: %v", err)
	}
	if max != 9000 {
		t.Errorf("max = %d, want 9000", max)
	}
}

func TestSNPsInRange(t *testing.T) {
	s := newTestStore(t)

	snps := []SNP{
		{SNPKey: 1, CoordCacheKey: 11, Acc: "rs1", Chromosome: "19", Coord: 9000},
		{SNPKey: 2, CoordCacheKey: 12, Acc: "rs2", Chromosome: "19", Coord: 5000},
		{SNPKey: 3, CoordCacheKey: 13, Acc: "rs3", Chromosome: "19", Coord: 5000},
		{SNPKey: 4, CoordCacheKey: 14, Acc: "rs4", Chromosome: "X", Coord: 6000},
		{SNPKey: 5, CoordCacheKey: 15, Acc: "rs5", Chromosome: "19", Coord: 20000},
	}
	for _, snp := range snps {
		if err := s.InsertSNP(snp); err != nil {
			t.Fatalf("InsertSNP: %v", err)
		}
	}

	got, err := s.SNPsInRange("19", 1, 10000)
	if err != nil {
		t.Fatalf("SNPsInRange: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	// Ascending by coordinate, key-ordered within a coordinate tie.
	if got[0].SNPKey != 2 || got[1].SNPKey != 3 || got[2].SNPKey != 1 {
		t.Errorf("order = %d,%d,%d, want 2,3,1", got[0].SNPKey, got[1].SNPKey, got[2].SNPKey)
	}
	if got[0].Chromosome != "19" || got[0].Acc != "rs2" || got[0].CoordCacheKey != 12 {
		t.Errorf("row = %+v", got[0])
	}
}

func TestMarkersInRange_Filters(t *testing.T) {
	s := newTestStore(t)

	base := Marker{Chromosome: "19", Start: 10000, End: 20000, Strand: "+"}

	pass := base
	pass.MarkerKey, pass.Acc = 1, "MGI:1"
	if err := s.InsertMarker(pass); err != nil {
		t.Fatalf("InsertMarker: %v", err)
	}

	noStrand := base
	noStrand.MarkerKey, noStrand.Acc, noStrand.Strand = 2, "MGI:2", ""
	if err := s.InsertMarker(noStrand); err != nil {
		t.Fatalf("InsertMarker: %v", err)
	}

	rejects := []struct {
		key                                       int64
		status, mtype, qualifier, fterm, organism string
	}{
		{10, "withdrawn", "Gene", "D", "protein coding gene", "mouse"},
		{11, "official", "QTL", "D", "protein coding gene", "mouse"},
		{12, "official", "Cytogenetic", "D", "protein coding gene", "mouse"},
		{13, "official", "Gene", "I", "protein coding gene", "mouse"},
		{14, "official", "Gene", "D", "heritable phenotypic marker", "mouse"},
		{15, "official", "Gene", "D", "protein coding gene", "human"},
	}
	for _, r := range rejects {
		m := base
		m.MarkerKey = r.key
		m.Acc = "MGI:reject"
		if err := s.InsertMarkerFull(m, r.status, r.mtype, r.qualifier, r.fterm, r.organism); err != nil {
			t.Fatalf("InsertMarkerFull: %v", err)
		}
	}

	outOfRange := base
	outOfRange.MarkerKey, outOfRange.Acc = 3, "MGI:3"
	outOfRange.Start, outOfRange.End = 500000, 600000
	if err := s.InsertMarker(outOfRange); err != nil {
		t.Fatalf("InsertMarker: %v", err)
	}

	got, err := s.MarkersInRange("19", 1, 100000)
	if err != nil {
		t.Fatalf("MarkersInRange: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2 (%+v)", len(got), got)
	}
	if got[0].MarkerKey != 1 || got[1].MarkerKey != 2 {
		t.Errorf("keys = %d,%d, want 1,2", got[0].MarkerKey, got[1].MarkerKey)
	}
	if got[1].Strand != "" {
		t.Errorf("NULL strand scanned as %q, want empty", got[1].Strand)
	}
}

func TestMarkersInRange_OverlapBoundaries(t *testing.T) {
	s := newTestStore(t)

	m := Marker{MarkerKey: 1, Acc: "MGI:1", Chromosome: "19", Start: 10000, End: 20000, Strand: "+"}
	if err := s.InsertMarker(m); err != nil {
		t.Fatalf("InsertMarker: %v", err)
	}

	tests := []struct {
		lo, hi int64
		want   int
	}{
		{1, 9999, 0},
		{1, 10000, 1},
		{20000, 30000, 1},
		{20001, 30000, 0},
		{12000, 13000, 1},
	}
	for _, tt := range tests {
		got, err := s.MarkersInRange("19", tt.lo, tt.hi)
		if err != nil {
			t.Fatalf("MarkersInRange(%d,%d): %v", tt.lo, tt.hi, err)
		}
		if len(got) != tt.want {
			t.Errorf("MarkersInRange(%d,%d) len = %d, want %d", tt.lo, tt.hi, len(got), tt.want)
		}
	}
}

func TestLocusRegionAnnotations(t *testing.T) {
	s := newTestStore(t)

	if err := s.InsertSNP(SNP{SNPKey: 1, CoordCacheKey: 11, Acc: "rs1", Chromosome: "19", Coord: 5000}); err != nil {
		t.Fatalf("InsertSNP: %v", err)
	}
	if err := s.InsertMarker(Marker{MarkerKey: 7, Acc: "MGI:7", Chromosome: "19", Start: 6000, End: 9000, Strand: "-"}); err != nil {
		t.Fatalf("InsertMarker: %v", err)
	}

	const locusRegionKey = 1003
	if err := s.InsertAssociation(100, 1, 7, locusRegionKey, 11); err != nil {
		t.Fatalf("InsertAssociation: %v", err)
	}
	if err := s.InsertAssociation(101, 1, 7, 1001, 11); err != nil {
		t.Fatalf("InsertAssociation: %v", err)
	}

	got, err := s.LocusRegionAnnotations(locusRegionKey)
	if err != nil {
		t.Fatalf("LocusRegionAnnotations: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	a := got[0]
	if a.Key != 100 || a.SNPCoord != 5000 || a.MarkerStart != 6000 || a.MarkerEnd != 9000 || a.Strand != "-" {
		t.Errorf("row = %+v", a)
	}
}

func TestAssociationCounts(t *testing.T) {
	s := newTestStore(t)

	if err := s.InsertMarker(Marker{MarkerKey: 1, Acc: "MGI:1", Chromosome: "19", Start: 1, End: 10, Strand: "+"}); err != nil {
		t.Fatalf("InsertMarker: %v", err)
	}
	if err := s.InsertMarker(Marker{MarkerKey: 2, Acc: "MGI:2", Chromosome: "X", Start: 1, End: 10, Strand: "+"}); err != nil {
		t.Fatalf("InsertMarker: %v", err)
	}
	for i, markerKey := range []int64{1, 1, 2} {
		if err := s.InsertAssociation(int64(i+1), int64(i+1), markerKey, 1001, int64(i+1)); err != nil {
			t.Fatalf("InsertAssociation: %v", err)
		}
	}

	total, err := s.AssociationCount()
	if err != nil {
		t.Fatalf("AssociationCount: %v", err)
	}
	if total != 3 {
		t.Errorf("total = %d, want 3", total)
	}

	counts, err := s.AssociationCountByChromosome()
	if err != nil {
		t.Fatalf("AssociationCountByChromosome: %v", err)
	}
	if counts["19"] != 2 || counts["X"] != 1 {
		t.Errorf("counts = %v", counts)
	}
}
