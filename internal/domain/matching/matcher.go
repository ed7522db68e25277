package matching

import "strings"

// minSharedTokens is the number of shared long tokens that makes two
// non-identical names count as the same person.
const minSharedTokens = 2

// minTokenLength excludes connectives ("de", "da", "do") from token comparison.
const minTokenLength = 3

// NamesMatch reports whether two free-text person names refer to the same
// person. Names match when their normalized forms are equal, or when they
// share at least two tokens longer than two characters. Symmetric.
func NamesMatch(a, b string) bool {
	na, nb := Normalize(a), Normalize(b)
	if na == "" || nb == "" {
		return false
	}
	if na == nb {
		return true
	}
	return sharedTokenCount(na, nb) >= minSharedTokens
}

func sharedTokenCount(na, nb string) int {
	seen := make(map[string]bool)
	for _, tok := range strings.Fields(na) {
		if len(tok) >= minTokenLength {
			seen[tok] = true
		}
	}
	count := 0
	for _, tok := range strings.Fields(nb) {
		if len(tok) >= minTokenLength && seen[tok] {
			count++
			delete(seen, tok)
		}
	}
	return count
}

// NeighborhoodsMatch reports whether two neighborhood (bairro) descriptions
// refer to the same locality. Both empty counts as a match; exactly one empty
// does not. Otherwise localities match when the normalized forms are equal,
// one contains the other, or both appear in the same alias group.
func NeighborhoodsMatch(a, b string) bool {
	na, nb := Normalize(a), Normalize(b)
	if na == "" && nb == "" {
		return true
	}
	if na == "" || nb == "" {
		return false
	}
	if na == nb {
		return true
	}
	if strings.Contains(na, nb) || strings.Contains(nb, na) {
		return true
	}
	return sameAliasGroup(na, nb)
}
