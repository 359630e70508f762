package embed

import (
	"fmt"
	"math"
	"sort"

	"github.com/statsmaths/fasttextm/internal/domain"
)

// Nearest resolves each input word against the source table and, for every
// resolved word, returns the k target-table words with the highest cosine
// similarity to it, best match first. Words absent from the source
// vocabulary produce a nil row with no scoring done for them. The source
// and target may be the same table (monolingual neighbors) or different
// tables sharing an aligned vector space (cross-lingual); the computation
// is identical either way.
//
// Arguments are validated up front: k must be positive and no larger than
// the target vocabulary, and both tables must share one vector dimension.
func Nearest(words []string, src, dst *Table, k int) ([][]string, error) {
	if k < 1 {
		return nil, fmt.Errorf("%w: k must be positive, got %d", domain.ErrInvalidArgument, k)
	}
	if k > dst.Len() {
		return nil, fmt.Errorf("%w: k=%d exceeds target vocabulary size %d", domain.ErrInvalidArgument, k, dst.Len())
	}
	if src.Dim() != dst.Dim() {
		return nil, fmt.Errorf("%w: source dimension %d does not match target dimension %d", domain.ErrInvalidArgument, src.Dim(), dst.Dim())
	}

	out := make([][]string, len(words))
	scores := make([]float64, dst.Len())
	order := make([]int, dst.Len())

	for i, w := range words {
		qi, ok := src.Lookup(Normalize(w))
		if !ok {
			continue
		}
		q := src.Vector(qi)
		qnorm := src.norm(qi)

		for j := range scores {
			n := dst.norm(j)
			if qnorm == 0 || n == 0 {
				// Cosine against a zero-magnitude vector is undefined;
				// rank such entries last instead of propagating NaN.
				scores[j] = math.Inf(-1)
				continue
			}
			scores[j] = dot(q, dst.Vector(j)) / (qnorm * n)
		}

		for j := range order {
			order[j] = j
		}
		// Equal similarities break toward the earlier enumeration index so
		// output is reproducible across runs.
		sort.Slice(order, func(a, b int) bool {
			if scores[order[a]] != scores[order[b]] {
				return scores[order[a]] > scores[order[b]]
			}
			return order[a] < order[b]
		})

		row := make([]string, k)
		for j := 0; j < k; j++ {
			row[j] = dst.Word(order[j])
		}
		out[i] = row
	}

	return out, nil
}

func dot(a, b []float32) float64 {
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}
