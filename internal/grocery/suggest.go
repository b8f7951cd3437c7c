package grocery

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// DefaultSuggestThreshold is the minimum similarity for a catalog name to be
// offered as a replacement for an unknown ingredient.
const DefaultSuggestThreshold = 0.6

// Suggestion is a catalog name close to an unrecognised ingredient.
type Suggestion struct {
	Name       string  `json:"name"`
	Similarity float64 `json:"similarity"`
}

// Similarity returns 1 - editDistance/maxLen over the normalized names.
func Similarity(a, b string) float64 {
	a, b = normalizeName(a), normalizeName(b)
	if a == b {
		return 1
	}
	maxLen := max(len([]rune(a)), len([]rune(b)))
	if maxLen == 0 {
		return 0
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1 - float64(dist)/float64(maxLen)
}

// Suggest ranks candidates by similarity to name and returns up to limit of
// them at or above threshold. An exact match yields no suggestions.
func Suggest(name string, candidates []string, threshold float64, limit int) []Suggestion {
	if strings.TrimSpace(name) == "" {
		return nil
	}
	seen := make(map[string]bool, len(candidates))
	var out []Suggestion
	for _, c := range candidates {
		key := normalizeName(c)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		s := Similarity(name, c)
		if s == 1 {
			return nil
		}
		if s >= threshold {
			out = append(out, Suggestion{Name: c, Similarity: s})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Similarity != out[j].Similarity {
			return out[i].Similarity > out[j].Similarity
		}
		return out[i].Name < out[j].Name
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Unknown returns the ingredient names not present in known, preserving
// first-seen order.
func Unknown(names, known []string) []string {
	index := make(map[string]bool, len(known))
	for _, k := range known {
		index[normalizeName(k)] = true
	}
	seen := make(map[string]bool)
	var out []string
	for _, n := range names {
		key := normalizeName(n)
		if key == "" || index[key] || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, n)
	}
	return out
}
