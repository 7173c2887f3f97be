// Package trigram scores text similarity via 3-gram set overlap.
//
// Grams follow the pg_trgm convention: each lower-cased word is padded with
// two leading spaces and one trailing space before sliding a 3-character
// window, so words shorter than three characters still contribute grams and
// word boundaries weigh into the score. The score is the Jaccard coefficient
// of the two gram sets, which keeps single-character typos ("sneakrs" vs
// "sneakers") well above any sane threshold.
package trigram

import "strings"

// DefaultMinScore is the default minimum similarity for a candidate to be
// considered a match at all.
const DefaultMinScore = 0.1

// Score returns the trigram Jaccard similarity of two texts in [0,1].
// Case-insensitive; an empty side scores 0.
func Score(a, b string) float64 {
	ga := grams(a)
	if len(ga) == 0 {
		return 0
	}
	gb := grams(b)
	if len(gb) == 0 {
		return 0
	}

	inter := 0
	for g := range ga {
		if _, ok := gb[g]; ok {
			inter++
		}
	}
	union := len(ga) + len(gb) - inter
	return float64(inter) / float64(union)
}

// grams extracts the padded trigram set of a text blob. Words are maximal
// runs of letters and digits; everything else is a separator.
func grams(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, word := range splitWords(strings.ToLower(text)) {
		padded := "  " + word + " "
		for i := 0; i+3 <= len(padded); i++ {
			set[padded[i:i+3]] = struct{}{}
		}
	}
	return set
}

func splitWords(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !isAlnum(r)
	})
}

func isAlnum(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r >= 'A' && r <= 'Z' ||
		r > 127 // keep non-ASCII letters intact rather than splitting on them
}
