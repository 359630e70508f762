package embed

import (
	"fmt"
	"math"
)

// Table is an immutable embedding table for one language: a vocabulary of
// normalized words, each mapped to exactly one fixed-dimension vector.
// Vectors live in a single flat slice and vector norms are computed once at
// build time, so nearest-neighbor search over a table never recomputes them
// per query.
//
// A Table is safe for concurrent readers once built.
type Table struct {
	dim   int
	words []string
	index map[string]int
	data  []float32
	norms []float64
}

// TableBuilder accumulates vocabulary entries before freezing them into a
// Table. Entries are kept in insertion order; that order is the table's
// enumeration order and is used for deterministic tie-breaking in search.
type TableBuilder struct {
	dim   int
	words []string
	index map[string]int
	data  []float32
}

// NewTableBuilder creates a builder for vectors of the given dimension.
func NewTableBuilder(dim int) (*TableBuilder, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("embedding dimension must be positive, got %d", dim)
	}
	return &TableBuilder{
		dim:   dim,
		index: make(map[string]int),
	}, nil
}

// Add appends one vocabulary entry. The word is expected to be already
// normalized (see Normalize). A repeated word is ignored: the first
// occurrence wins, matching the fastText text-format convention where
// earlier rows carry higher-frequency entries.
func (b *TableBuilder) Add(word string, vec []float32) error {
	if len(vec) != b.dim {
		return fmt.Errorf("vector dimension mismatch for %q: expected %d, got %d", word, b.dim, len(vec))
	}
	for _, v := range vec {
		if f := float64(v); math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("non-finite coordinate in vector for %q", word)
		}
	}
	if _, ok := b.index[word]; ok {
		return nil
	}
	b.index[word] = len(b.words)
	b.words = append(b.words, word)
	b.data = append(b.data, vec...)
	return nil
}

// Build freezes the accumulated entries into an immutable Table and
// precomputes per-entry vector norms. The builder must not be reused.
func (b *TableBuilder) Build() *Table {
	norms := make([]float64, len(b.words))
	for i := range b.words {
		var sum float64
		for _, v := range b.data[i*b.dim : (i+1)*b.dim] {
			sum += float64(v) * float64(v)
		}
		norms[i] = math.Sqrt(sum)
	}
	return &Table{
		dim:   b.dim,
		words: b.words,
		index: b.index,
		data:  b.data,
		norms: norms,
	}
}

// Dim returns the vector dimension.
func (t *Table) Dim() int {
	return t.dim
}

// Len returns the vocabulary size.
func (t *Table) Len() int {
	return len(t.words)
}

// Word returns the vocabulary entry at enumeration index i.
func (t *Table) Word(i int) string {
	return t.words[i]
}

// Lookup returns the enumeration index of a normalized word.
func (t *Table) Lookup(word string) (int, bool) {
	i, ok := t.index[word]
	return i, ok
}

// Vector returns the stored vector at enumeration index i. The returned
// slice aliases the table's backing storage and must not be modified.
func (t *Table) Vector(i int) []float32 {
	return t.data[i*t.dim : (i+1)*t.dim]
}

func (t *Table) norm(i int) float64 {
	return t.norms[i]
}
