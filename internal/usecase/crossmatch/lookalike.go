package crossmatch

import (
	"fmt"

	"github.com/kailas-cloud/querydex/internal/domain/taxonomy"
	"github.com/kailas-cloud/querydex/internal/domain/variant"
)

// Compiler builds the query variants for a function group.
type Compiler interface {
	Variants(g taxonomy.Group) map[variant.Variant]string
}

// LookalikeGroup is one related group in a look-alike report.
type LookalikeGroup struct {
	ID         string                     `json:"id"`
	Name       string                     `json:"name"`
	Similarity float64                    `json:"similarity_score"`
	Searches   map[variant.Variant]string `json:"searches"`
}

// CrossMatchSearch is one cross-match query in a look-alike report.
type CrossMatchSearch struct {
	Primary     string `json:"primary"`
	Lookalike   string `json:"lookalike"`
	Query       string `json:"boolean_query"`
	Description string `json:"description"`
}

// LookalikeReport widens sourcing for one group: its own variants, the
// variants of every curated look-alike with a similarity score, and a
// cross-match query per look-alike pair.
type LookalikeReport struct {
	Primary         GroupRef                   `json:"primary_group"`
	PrimarySearches map[variant.Variant]string `json:"primary_searches"`
	Lookalikes      []LookalikeGroup           `json:"lookalike_groups"`
	CrossMatches    []CrossMatchSearch         `json:"cross_match_searches"`
}

// Lookalikes builds the full look-alike report for a group. Dangling
// look-alike references are skipped. An unknown id is ErrGroupNotFound.
func (s *Service) Lookalikes(groupID string, compiler Compiler) (LookalikeReport, error) {
	primary, err := s.store.Get(groupID)
	if err != nil {
		return LookalikeReport{}, err
	}

	related, err := s.store.LookAlikes(groupID)
	if err != nil {
		return LookalikeReport{}, err
	}

	report := LookalikeReport{
		Primary:         ref(primary),
		PrimarySearches: compiler.Variants(primary),
		Lookalikes:      make([]LookalikeGroup, 0, len(related)),
		CrossMatches:    make([]CrossMatchSearch, 0, len(related)),
	}

	for _, la := range related {
		report.Lookalikes = append(report.Lookalikes, LookalikeGroup{
			ID:         la.ID(),
			Name:       la.Name(),
			Similarity: s.sim.Score(primary, la),
			Searches:   compiler.Variants(la),
		})
		report.CrossMatches = append(report.CrossMatches, CrossMatchSearch{
			Primary:     primary.ID(),
			Lookalike:   la.ID(),
			Query:       s.CrossMatch(primary, la),
			Description: fmt.Sprintf("Profiles overlapping %s and %s", primary.Name(), la.Name()),
		})
	}

	return report, nil
}
