package embed

import "golang.org/x/text/cases"

// Normalize case-folds a word for vocabulary matching using a
// locale-independent transform. The same fold is applied to stored keys at
// model-conversion time and to query words at lookup time; mismatched
// normalization on either side would make lookups silently fail.
func Normalize(word string) string {
	// cases.Caser is stateful and not safe for concurrent use, so a fresh
	// one is built per call.
	return cases.Fold().String(word)
}
