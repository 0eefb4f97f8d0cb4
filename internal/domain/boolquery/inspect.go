package boolquery

import "strings"

// Complexity estimates how heavy a rendered query is for the target platform,
// as a score in [0.0, 1.0]. Length, operator count, parenthesis depth and
// phrase count each contribute a capped, weighted share.
func Complexity(query string) float64 {
	if query == "" {
		return 0.0
	}

	upper := strings.ToUpper(query)
	length := capAt(float64(len(query))/1000.0, 1.0)
	operators := capAt(float64(strings.Count(upper, "AND")+strings.Count(upper, "OR")+strings.Count(upper, "NOT"))/20.0, 1.0)
	parens := capAt(float64(strings.Count(query, "("))/10.0, 1.0)
	quotes := capAt(float64(strings.Count(query, `"`))/20.0, 1.0)

	score := 0.3*length + 0.4*operators + 0.2*parens + 0.1*quotes
	return capAt(score, 1.0)
}

// Coverage returns the fraction of the given taxonomy terms that occur in the
// query, case-insensitively. Empty inputs yield 0.
func Coverage(query string, terms []string) float64 {
	if query == "" || len(terms) == 0 {
		return 0.0
	}

	queryLower := strings.ToLower(query)
	matched := 0
	for _, term := range terms {
		if term != "" && strings.Contains(queryLower, strings.ToLower(term)) {
			matched++
		}
	}
	return float64(matched) / float64(len(terms))
}

func capAt(v, max float64) float64 {
	if v > max {
		return max
	}
	return v
}
