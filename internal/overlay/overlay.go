// Package overlay loads the externally-curated SNP/marker function class
// assignments that supersede geometric inference.
package overlay

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mgijax/snpcacheload/internal/vocab"
)

// SnpAcc is an rs accession.
type SnpAcc string

// MarkerAcc is an MGI accession.
type MarkerAcc string

// Pair keys the overlay by SNP and marker accession.
type Pair struct {
	SNP    SnpAcc
	Marker MarkerAcc
}

// Entry is one curated function class assignment for a pair.
type Entry struct {
	TermKey vocab.TermKey
	Term    string // canonical term name
}

// Map holds the overlay for one chromosome. Entries for a pair preserve
// input order.
type Map map[Pair][]Entry

// Lookup returns the entries for a pair, or nil.
func (m Map) Lookup(snp SnpAcc, marker MarkerAcc) []Entry {
	return m[Pair{SNP: snp, Marker: marker}]
}

// ParseError reports a malformed overlay line.
type ParseError struct {
	File    string
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("overlay %s line %d: %s", e.File, e.Line, e.Message)
}

// Load parses the overlay TSV for one chromosome. Columns are
// pipe-delimited: snp accession, marker accession, marker symbol, raw term,
// term key, canonical term. Lines whose field count is not exactly 6 are
// skipped; a malformed term key is a ParseError. A missing file yields an
// empty map.
func Load(path string) (Map, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Map{}, nil
		}
		return nil, fmt.Errorf("open overlay: %w", err)
	}
	defer f.Close()

	m := Map{}
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line == "" {
			continue
		}

		fields := strings.Split(line, "|")
		if len(fields) != 6 {
			continue
		}

		key, err := strconv.Atoi(strings.TrimSpace(fields[4]))
		if err != nil {
			return nil, &ParseError{
				File:    path,
				Line:    lineNum,
				Message: fmt.Sprintf("bad term key %q", fields[4]),
			}
		}

		pair := Pair{SNP: SnpAcc(fields[0]), Marker: MarkerAcc(fields[1])}
		m[pair] = append(m[pair], Entry{TermKey: vocab.TermKey(key), Term: fields[5]})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read overlay: %w", err)
	}

	return m, nil
}
