// Package crossmatch builds combined queries spanning multiple function
// groups and analyzes the market overlap between them.
package crossmatch

import (
	"strings"

	"github.com/kailas-cloud/querydex/internal/domain/boolquery"
	"github.com/kailas-cloud/querydex/internal/domain/taxonomy"
)

const (
	crossMatchTitlesPerGroup = 3
	crossMatchMaxSkills      = 5
	hybridTitlesPerSecondary = 2
	hybridSkillsPerSecondary = 10
	hybridMaxSkills          = 15
)

// Similarity scores two function groups.
type Similarity interface {
	Score(a, b taxonomy.Group) float64
}

// Service composes cross-group queries.
type Service struct {
	store taxonomy.Store
	sim   Similarity
}

// New creates a cross-match service.
func New(store taxonomy.Store, sim Similarity) *Service {
	return &Service{store: store, sim: sim}
}

// CrossMatch builds a query targeting profiles straddling both groups: the
// first titles of each ANDed with their common skills. Groups sharing no
// skills yield a bare title clause with no AND.
func (s *Service) CrossMatch(a, b taxonomy.Group) string {
	titles := dedupe(append(
		head(a.Titles(), crossMatchTitlesPerGroup),
		head(b.Titles(), crossMatchTitlesPerGroup)...,
	))
	titleClause := boolquery.OrTerms(titles)

	common := head(intersect(a.Skills(), b.Skills()), crossMatchMaxSkills)
	if len(common) == 0 {
		return titleClause.String()
	}
	return boolquery.And(titleClause, boolquery.OrTerms(common)).String()
}

// Hybrid builds a query combining the primary group with several secondary
// groups: all primary titles and skills, widened with the first titles and
// skills of each secondary. Secondary ids missing from the store are skipped;
// an unknown primary is ErrGroupNotFound.
func (s *Service) Hybrid(primaryID string, secondaryIDs []string) (string, error) {
	primary, err := s.store.Get(primaryID)
	if err != nil {
		return "", err
	}

	titles := append([]string(nil), primary.Titles()...)
	skills := append([]string(nil), primary.Skills()...)

	for _, id := range secondaryIDs {
		sec, err := s.store.Get(id)
		if err != nil {
			continue
		}
		titles = append(titles, head(sec.Titles(), hybridTitlesPerSecondary)...)
		skills = append(skills, head(sec.Skills(), hybridSkillsPerSecondary)...)
	}

	return boolquery.And(
		boolquery.OrTerms(dedupe(titles)),
		boolquery.OrTerms(head(dedupe(skills), hybridMaxSkills)),
	).String(), nil
}

// head returns at most n leading elements.
func head(in []string, n int) []string {
	if len(in) <= n {
		return in
	}
	return in[:n]
}

// dedupe removes case-insensitive duplicates, keeping first occurrences.
func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		key := strings.ToLower(s)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
	}
	return out
}

// intersect returns the terms of a that also occur in b, case-insensitively,
// in a's order.
func intersect(a, b []string) []string {
	setB := make(map[string]struct{}, len(b))
	for _, s := range b {
		setB[strings.ToLower(s)] = struct{}{}
	}

	out := make([]string, 0)
	seen := make(map[string]struct{}, len(a))
	for _, s := range a {
		key := strings.ToLower(s)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		if _, ok := setB[key]; ok {
			out = append(out, s)
		}
	}
	return out
}
