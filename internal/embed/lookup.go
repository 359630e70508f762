package embed

import "math"

// Resolve looks up each input word in the table after normalization and
// returns one vector row per word, in input order. Words absent from the
// vocabulary produce an all-NaN row rather than an error: out-of-vocabulary
// tokens are the expected common case for user-supplied text. Duplicate
// inputs produce duplicate rows, and an empty batch returns an empty result.
func Resolve(words []string, t *Table) [][]float32 {
	out := make([][]float32, len(words))
	for i, w := range words {
		row := make([]float32, t.dim)
		if idx, ok := t.Lookup(Normalize(w)); ok {
			copy(row, t.Vector(idx))
		} else {
			nan := float32(math.NaN())
			for j := range row {
				row[j] = nan
			}
		}
		out[i] = row
	}
	return out
}
