package store

import (
	"database/sql"
	"fmt"

	_ "github.com/marcboeker/go-duckdb"
)

// FunctionClassVocab is the vocabulary holding SNP function class terms.
const FunctionClassVocab = "SNP Function Class"

// Marker filters applied by MarkersInRange. Markers failing any of these
// never take part in the proximity join.
const (
	officialStatus     = "official"
	directQualifier    = "D"
	heritablePhenoTerm = "heritable phenotypic marker"
	mouseOrganism      = "mouse"
)

// Store provides read access to the SNP coordinate cache, marker location
// cache, vocabulary, and association tables.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens the DuckDB database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// CreateSchema creates the cache tables. Used by tests and upstream ETL; a
// production run opens a database that is already populated.
func (s *Store) CreateSchema() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS voc_term (
			term_key INTEGER NOT NULL,
			vocab_name VARCHAR NOT NULL,
			term VARCHAR NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS snp_coord_cache (
			consensus_snp_key BIGINT NOT NULL,
			coord_cache_key BIGINT NOT NULL,
			accid VARCHAR NOT NULL,
			chromosome VARCHAR NOT NULL,
			start_coordinate BIGINT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS mrk_location_cache (
			marker_key BIGINT NOT NULL,
			accid VARCHAR NOT NULL,
			chromosome VARCHAR NOT NULL,
			start_coordinate BIGINT,
			end_coordinate BIGINT,
			strand VARCHAR,
			marker_status VARCHAR NOT NULL,
			marker_type VARCHAR NOT NULL,
			feature_qualifier VARCHAR NOT NULL,
			feature_term VARCHAR NOT NULL,
			organism VARCHAR NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS snp_consensussnp_marker (
			consensussnp_marker_key BIGINT NOT NULL,
			consensus_snp_key BIGINT NOT NULL,
			marker_key BIGINT NOT NULL,
			fxn_key INTEGER NOT NULL,
			coord_cache_key BIGINT NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}

// InsertTerm adds a vocabulary term.
func (s *Store) InsertTerm(key int, vocab, term string) error {
	_, err := s.db.Exec(
		`INSERT INTO voc_term (term_key, vocab_name, term) VALUES (?, ?, ?)`,
		key, vocab, term)
	if err != nil {
		return fmt.Errorf("insert term %q: %w", term, err)
	}
	return nil
}

// InsertSNP adds a coordinate cache row.
func (s *Store) InsertSNP(snp SNP) error {
	_, err := s.db.Exec(
		`INSERT INTO snp_coord_cache
		 (consensus_snp_key, coord_cache_key, accid, chromosome, start_coordinate)
		 VALUES (?, ?, ?, ?, ?)`,
		snp.SNPKey, snp.CoordCacheKey, snp.Acc, snp.Chromosome, snp.Coord)
	if err != nil {
		return fmt.Errorf("insert snp %s: %w", snp.Acc, err)
	}
	return nil
}

// InsertMarker adds a location cache row. An empty strand is stored as NULL;
// status, type, qualifier, term, and organism default to values that pass the
// marker filters.
func (s *Store) InsertMarker(m Marker) error {
	return s.InsertMarkerFull(m, officialStatus, "Gene", directQualifier, "protein coding gene", mouseOrganism)
}

// InsertMarkerFull adds a location cache row with explicit filter attributes.
func (s *Store) InsertMarkerFull(m Marker, status, mtype, qualifier, featureTerm, organism string) error {
	var strand any
	if m.Strand != "" {
		strand = m.Strand
	}
	_, err := s.db.Exec(
		`INSERT INTO mrk_location_cache
		 (marker_key, accid, chromosome, start_coordinate, end_coordinate, strand,
		  marker_status, marker_type, feature_qualifier, feature_term, organism)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.MarkerKey, m.Acc, m.Chromosome, m.Start, m.End, strand,
		status, mtype, qualifier, featureTerm, organism)
	if err != nil {
		return fmt.Errorf("insert marker %s: %w", m.Acc, err)
	}
	return nil
}

// InsertAssociation adds an association row. Used by tests for the locus and
// check steps; production association rows arrive through bcp.
func (s *Store) InsertAssociation(key, snpKey, markerKey int64, fxnKey int, coordCacheKey int64) error {
	_, err := s.db.Exec(
		`INSERT INTO snp_consensussnp_marker
		 (consensussnp_marker_key, consensus_snp_key, marker_key, fxn_key, coord_cache_key)
		 VALUES (?, ?, ?, ?, ?)`,
		key, snpKey, markerKey, fxnKey, coordCacheKey)
	if err != nil {
		return fmt.Errorf("insert association %d: %w", key, err)
	}
	return nil
}

// FunctionClassTerms returns term name to term key for the SNP function class
// vocabulary, restricted to the terms the cache load resolves: the fixed
// names plus any legacy "within % of" range terms.
func (s *Store) FunctionClassTerms() (map[string]int, error) {
	rows, err := s.db.Query(
		`SELECT term, term_key
		 FROM voc_term
		 WHERE vocab_name = ?
		   AND (term IN ('within coordinates of', 'within distance of', 'Locus-Region')
		        OR term LIKE 'within % of')`,
		FunctionClassVocab)
	if err != nil {
		return nil, fmt.Errorf("query function class terms: %w", err)
	}
	defer rows.Close()

	terms := make(map[string]int)
	for rows.Next() {
		var term string
		var key int
		if err := rows.Scan(&term, &key); err != nil {
			return nil, fmt.Errorf("scan term: %w", err)
		}
		terms[term] = key
	}
	return terms, rows.Err()
}

// MaxSNPCoord returns the maximum SNP start coordinate on a chromosome, or 0
// when the chromosome has no SNPs.
func (s *Store) MaxSNPCoord(chromosome string) (int64, error) {
	row := s.db.QueryRow(
		`SELECT COALESCE(MAX(start_coordinate), 0)
		 FROM snp_coord_cache
		 WHERE chromosome = ?`,
		chromosome)

	var max int64
	if err := row.Scan(&max); err != nil {
		return 0, fmt.Errorf("query max coord on chr %s: %w", chromosome, err)
	}
	return max, nil
}

// SNPsInRange returns the SNPs on a chromosome whose coordinate lies in
// [lo, hi], ordered ascending by coordinate. Ties are ordered by SNP key.
func (s *Store) SNPsInRange(chromosome string, lo, hi int64) ([]SNP, error) {
	rows, err := s.db.Query(
		`SELECT consensus_snp_key, coord_cache_key, accid, start_coordinate
		 FROM snp_coord_cache
		 WHERE chromosome = ? AND start_coordinate BETWEEN ? AND ?
		 ORDER BY start_coordinate, consensus_snp_key`,
		chromosome, lo, hi)
	if err != nil {
		return nil, fmt.Errorf("query snps on chr %s: %w", chromosome, err)
	}
	defer rows.Close()

	var snps []SNP
	for rows.Next() {
		snp := SNP{Chromosome: chromosome}
		if err := rows.Scan(&snp.SNPKey, &snp.CoordCacheKey, &snp.Acc, &snp.Coord); err != nil {
			return nil, fmt.Errorf("scan snp: %w", err)
		}
		snps = append(snps, snp)
	}
	return snps, rows.Err()
}

// MarkersInRange returns the markers on a chromosome whose interval overlaps
// [lo, hi] and that pass the marker filters: official status, not QTL or
// Cytogenetic, direct feature qualifier, not the heritable phenotypic feature
// term, mouse. Order is by marker key so reruns iterate identically.
func (s *Store) MarkersInRange(chromosome string, lo, hi int64) ([]Marker, error) {
	rows, err := s.db.Query(
		`SELECT marker_key, accid, start_coordinate, end_coordinate, strand
		 FROM mrk_location_cache
		 WHERE chromosome = ?
		   AND start_coordinate IS NOT NULL
		   AND end_coordinate IS NOT NULL
		   AND end_coordinate >= ?
		   AND start_coordinate <= ?
		   AND marker_status = ?
		   AND marker_type NOT IN ('QTL', 'Cytogenetic')
		   AND feature_qualifier = ?
		   AND feature_term <> ?
		   AND organism = ?
		 ORDER BY marker_key`,
		chromosome, lo, hi,
		officialStatus, directQualifier, heritablePhenoTerm, mouseOrganism)
	if err != nil {
		return nil, fmt.Errorf("query markers on chr %s: %w", chromosome, err)
	}
	defer rows.Close()

	var markers []Marker
	for rows.Next() {
		m := Marker{Chromosome: chromosome}
		var strand sql.NullString
		if err := rows.Scan(&m.MarkerKey, &m.Acc, &m.Start, &m.End, &strand); err != nil {
			return nil, fmt.Errorf("scan marker: %w", err)
		}
		m.Strand = strand.String
		markers = append(markers, m)
	}
	return markers, rows.Err()
}

// LocusRegionAnnotations returns every association row carrying the given
// function class key, joined back to its SNP and marker coordinates.
func (s *Store) LocusRegionAnnotations(fxnKey int) ([]LocusAnnotation, error) {
	rows, err := s.db.Query(
		`SELECT sm.consensussnp_marker_key,
		        sc.start_coordinate,
		        mc.start_coordinate,
		        mc.end_coordinate,
		        mc.strand
		 FROM snp_consensussnp_marker sm
		 JOIN snp_coord_cache sc
		   ON sm.consensus_snp_key = sc.consensus_snp_key
		  AND sm.coord_cache_key = sc.coord_cache_key
		 JOIN mrk_location_cache mc
		   ON sm.marker_key = mc.marker_key
		 WHERE sm.fxn_key = ?
		   AND mc.start_coordinate IS NOT NULL
		   AND mc.end_coordinate IS NOT NULL
		   AND mc.organism = ?
		 ORDER BY sm.consensussnp_marker_key`,
		fxnKey, mouseOrganism)
	if err != nil {
		return nil, fmt.Errorf("query locus-region annotations: %w", err)
	}
	defer rows.Close()

	var anns []LocusAnnotation
	for rows.Next() {
		var a LocusAnnotation
		var strand sql.NullString
		if err := rows.Scan(&a.Key, &a.SNPCoord, &a.MarkerStart, &a.MarkerEnd, &strand); err != nil {
			return nil, fmt.Errorf("scan locus-region annotation: %w", err)
		}
		a.Strand = strand.String
		anns = append(anns, a)
	}
	return anns, rows.Err()
}

// AssociationCount returns the total number of association rows.
func (s *Store) AssociationCount() (int64, error) {
	row := s.db.QueryRow(`SELECT COUNT(*) FROM snp_consensussnp_marker`)
	var n int64
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("count associations: %w", err)
	}
	return n, nil
}

// AssociationCountByChromosome returns association row counts per chromosome,
// resolved through the marker location cache.
func (s *Store) AssociationCountByChromosome() (map[string]int64, error) {
	rows, err := s.db.Query(
		`SELECT mc.chromosome, COUNT(*)
		 FROM snp_consensussnp_marker sm
		 JOIN mrk_location_cache mc ON sm.marker_key = mc.marker_key
		 GROUP BY mc.chromosome`)
	if err != nil {
		return nil, fmt.Errorf("count associations by chromosome: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var chromosome string
		var n int64
		if err := rows.Scan(&chromosome, &n); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		counts[chromosome] = n
	}
	return counts, rows.Err()
}
