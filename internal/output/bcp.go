// Package output writes pipe-delimited association bcp files.
package output

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mgijax/snpcacheload/internal/proximity"
)

// fieldCount is the number of pipe-delimited columns in an association row:
// pk, snp key, marker key, fxn key, coord cache key, four reserved empty
// columns, distance, direction, and a trailing empty column.
const fieldCount = 12

// KeyGen allocates monotonically increasing primary keys. It is threaded
// through the writer explicitly so parallel runs can rebase ranges.
type KeyGen struct {
	next int64
}

// NewKeyGen creates a generator whose first key is start.
func NewKeyGen(start int64) *KeyGen {
	return &KeyGen{next: start}
}

// Next returns the next primary key.
func (g *KeyGen) Next() int64 {
	key := g.next
	g.next++
	return key
}

// BCPWriter appends association rows to one per-chromosome bcp file.
type BCPWriter struct {
	f    *os.File
	w    *bufio.Writer
	keys *KeyGen
	rows int64
}

// NewBCPWriter creates the output file for one chromosome, truncating any
// previous run's file.
func NewBCPWriter(path string, keys *KeyGen) (*BCPWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create bcp file: %w", err)
	}
	return &BCPWriter{f: f, w: bufio.NewWriter(f), keys: keys}, nil
}

// Write allocates a primary key and appends one row.
func (bw *BCPWriter) Write(a *proximity.Association) error {
	if _, err := bw.w.WriteString(FormatRow(bw.keys.Next(), a)); err != nil {
		return fmt.Errorf("write bcp row: %w", err)
	}
	bw.rows++
	return nil
}

// Rows returns the number of rows written so far.
func (bw *BCPWriter) Rows() int64 {
	return bw.rows
}

// Close flushes and closes the file.
func (bw *BCPWriter) Close() error {
	if err := bw.w.Flush(); err != nil {
		return fmt.Errorf("flush bcp file: %w", err)
	}
	if err := bw.f.Close(); err != nil {
		return fmt.Errorf("close bcp file: %w", err)
	}
	return nil
}

// FormatRow renders one association row, LF-terminated. Empty positional
// placeholders are preserved for the columns the load does not populate.
func FormatRow(pk int64, a *proximity.Association) string {
	fields := make([]string, 0, fieldCount)
	fields = append(fields,
		strconv.FormatInt(pk, 10),
		strconv.FormatInt(a.SNPKey, 10),
		strconv.FormatInt(a.MarkerKey, 10),
		strconv.Itoa(a.FxnKey),
		strconv.FormatInt(a.CoordCacheKey, 10),
		"", "", "", "",
		strconv.FormatInt(a.Distance, 10),
		a.Direction.String(),
		"",
	)
	return strings.Join(fields, "|") + "\n"
}
