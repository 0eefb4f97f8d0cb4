// Package boolquery builds boolean search strings for recruitment platforms.
//
// Queries are assembled from structural Clause values (term, qualifier, OR,
// AND) and rendered once at the end, so operator precedence is decided by the
// clause shape rather than by inspecting rendered strings. These are the only
// string-construction primitives: no other package concatenates boolean
// keywords by hand.
package boolquery

import "strings"

type kind int

const (
	kindTerm kind = iota
	kindRaw
	kindOr
	kindAnd
)

// Clause is a node in a boolean query expression.
// The zero value is an empty clause that renders to "".
type Clause struct {
	kind kind
	text string
	subs []Clause
}

// Term creates a leaf clause for a search term. Multi-word terms are wrapped
// in double quotes when rendered; single words pass through unquoted. Terms
// containing quote characters are not escaped — the target search grammar has
// no escaping rule beyond phrase quoting, taxonomy curation is expected to
// keep terms quote-free.
func Term(text string) Clause {
	return Clause{kind: kindTerm, text: text}
}

// Raw creates a leaf clause rendered verbatim, without phrase quoting.
// Used for qualifier syntax such as `employer:"Unica"` where quoting the
// whole leaf would break the field prefix.
func Raw(text string) Clause {
	return Clause{kind: kindRaw, text: text}
}

// Or combines clauses with OR. Empty clauses are dropped.
func Or(clauses ...Clause) Clause {
	return Clause{kind: kindOr, subs: compact(clauses)}
}

// OrTerms builds an OR clause over plain search terms.
// Empty terms are dropped; an empty input yields an empty clause.
func OrTerms(terms []string) Clause {
	clauses := make([]Clause, 0, len(terms))
	for _, t := range terms {
		clauses = append(clauses, Term(t))
	}
	return Or(clauses...)
}

// And combines clauses with AND. Empty clauses are dropped. OR sub-clauses
// with more than one member are parenthesized to preserve precedence; a
// single non-OR clause passes through unwrapped.
func And(clauses ...Clause) Clause {
	return Clause{kind: kindAnd, subs: compact(clauses)}
}

// Quote wraps a term in double quotes if it contains a space.
// This is the phrase-boundary convention of the target search syntax,
// not general escaping.
func Quote(term string) string {
	if strings.Contains(term, " ") {
		return `"` + term + `"`
	}
	return term
}

// IsEmpty reports whether the clause renders to an empty string.
func (c Clause) IsEmpty() bool {
	switch c.kind {
	case kindTerm, kindRaw:
		return c.text == ""
	default:
		return len(c.subs) == 0
	}
}

// String renders the clause as a boolean search string.
func (c Clause) String() string {
	switch c.kind {
	case kindTerm:
		return Quote(c.text)
	case kindRaw:
		return c.text
	case kindOr:
		parts := make([]string, 0, len(c.subs))
		for _, s := range c.subs {
			parts = append(parts, s.String())
		}
		return strings.Join(parts, " OR ")
	case kindAnd:
		parts := make([]string, 0, len(c.subs))
		for _, s := range c.subs {
			if s.needsParens() {
				parts = append(parts, "("+s.String()+")")
			} else {
				parts = append(parts, s.String())
			}
		}
		return strings.Join(parts, " AND ")
	}
	return ""
}

// needsParens reports whether the clause must be parenthesized inside an AND.
func (c Clause) needsParens() bool {
	return c.kind == kindOr && len(c.subs) > 1
}

// compact drops empty clauses and flattens nothing else.
func compact(clauses []Clause) []Clause {
	out := make([]Clause, 0, len(clauses))
	for _, c := range clauses {
		if !c.IsEmpty() {
			out = append(out, c)
		}
	}
	return out
}
