// Package vocab resolves SNP function class term names to term keys.
package vocab

import "fmt"

// TermName is a function class term name.
type TermName string

// TermKey is the integer key of a vocabulary term.
type TermKey int

// Function class terms resolved by the cache load.
const (
	WithinCoordinates TermName = "within coordinates of"
	WithinDistance    TermName = "within distance of"
	LocusRegion       TermName = "Locus-Region"
)

// requiredTerms must all be present in the vocabulary for a run to start.
var requiredTerms = []TermName{WithinCoordinates, WithinDistance, LocusRegion}

// ConfigError reports a required term missing from the vocabulary.
type ConfigError struct {
	Term TermName
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("vocab: required function class term %q not found", string(e.Term))
}

// TermSource yields the term name to term key pairs of the SNP function
// class vocabulary.
type TermSource interface {
	FunctionClassTerms() (map[string]int, error)
}

// Lookup resolves term names to keys. Immutable after Load.
type Lookup struct {
	terms map[TermName]TermKey
}

// Load builds a Lookup from a term source and verifies that every required
// term is present.
func Load(src TermSource) (*Lookup, error) {
	raw, err := src.FunctionClassTerms()
	if err != nil {
		return nil, fmt.Errorf("load function class terms: %w", err)
	}

	terms := make(map[TermName]TermKey, len(raw))
	for name, key := range raw {
		terms[TermName(name)] = TermKey(key)
	}

	for _, name := range requiredTerms {
		if _, ok := terms[name]; !ok {
			return nil, &ConfigError{Term: name}
		}
	}

	return &Lookup{terms: terms}, nil
}

// Resolve returns the key for a term name.
func (l *Lookup) Resolve(name TermName) (TermKey, error) {
	key, ok := l.terms[name]
	if !ok {
		return 0, &ConfigError{Term: name}
	}
	return key, nil
}

// MustResolve returns the key for a term name that Load already verified.
// It panics on an unverified name; callers resolve only the fixed constants.
func (l *Lookup) MustResolve(name TermName) TermKey {
	key, err := l.Resolve(name)
	if err != nil {
		panic(err)
	}
	return key
}
