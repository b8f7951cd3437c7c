package grocery

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// normalizeName folds an ingredient name for matching: NFKC, lower case,
// single spaces.
func normalizeName(s string) string {
	s = norm.NFKC.String(s)
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func containsAny(name string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(name, kw) {
			return true
		}
	}
	return false
}
