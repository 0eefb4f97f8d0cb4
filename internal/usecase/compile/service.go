// Package compile turns function groups into boolean search query variants
// and full per-vacancy search bundles.
package compile

import (
	"fmt"

	"github.com/kailas-cloud/querydex/internal/domain/boolquery"
	"github.com/kailas-cloud/querydex/internal/domain/geo"
	"github.com/kailas-cloud/querydex/internal/domain/taxonomy"
	"github.com/kailas-cloud/querydex/internal/domain/vacancy"
	"github.com/kailas-cloud/querydex/internal/domain/variant"
)

// openToWorkSignals are the fixed open-to-work signal phrases.
var openToWorkSignals = []string{"#OpenToWork", "open to work", "actively looking", "looking for"}

// Matcher resolves a free-text title to a function group.
type Matcher interface {
	Match(title string) (taxonomy.Group, int, error)
}

// Service compiles boolean search queries for function groups and vacancies.
type Service struct {
	store   taxonomy.Store
	regions geo.Table
	matcher Matcher
}

// New creates a compiler over the given store and region table.
func New(store taxonomy.Store, regions geo.Table, matcher Matcher) *Service {
	return &Service{store: store, regions: regions, matcher: matcher}
}

// Variants compiles all applicable query variants for a group, keyed by
// variant name. Broad and open_to_work are always present; the conditional
// variants appear exactly when their source lists are non-empty.
func (s *Service) Variants(g taxonomy.Group) map[variant.Variant]string {
	out := make(map[variant.Variant]string, len(variant.All()))
	for _, vc := range s.variantClauses(g) {
		out[vc.name] = vc.clause.String()
	}
	return out
}

// ForVacancy resolves the vacancy to a function group and compiles the full
// search bundle. When hint names a known group it is used directly; otherwise
// the title is matched against the taxonomy. A vacancy no group scores on
// yields ErrNoMatch.
func (s *Service) ForVacancy(v vacancy.Vacancy, hint string) (Bundle, error) {
	group, err := s.resolve(v.Title(), hint)
	if err != nil {
		return Bundle{}, err
	}

	locations := s.regions.Nearby(v.Location())
	locationClause := boolquery.OrTerms(locations)

	searches := make([]Search, 0, len(variant.All()))
	for _, vc := range s.variantClauses(group) {
		search := Search{
			Variant:         vc.name,
			Query:           vc.clause.String(),
			Priority:        vc.name.Priority(),
			ExpectedResults: vc.name.ExpectedResults(),
			Filters:         s.filters(vc.name, group, v),
		}
		// No location clause means no augmented query at all,
		// never a dangling `AND ()`.
		if !locationClause.IsEmpty() {
			search.QueryWithLocation = boolquery.And(vc.clause, locationClause).String()
		}
		searches = append(searches, search)
	}

	return Bundle{
		Vacancy: v,
		Group: GroupRef{
			ID:       group.ID(),
			Name:     group.Name(),
			Category: group.Category(),
		},
		Searches: searches,
	}, nil
}

func (s *Service) resolve(title, hint string) (taxonomy.Group, error) {
	if hint != "" {
		if g, err := s.store.Get(hint); err == nil {
			return g, nil
		}
		// Unknown hints fall through to title matching.
	}
	g, _, err := s.matcher.Match(title)
	if err != nil {
		return taxonomy.Group{}, err
	}
	return g, nil
}

// variantClause pairs a variant name with its unrendered clause, so the
// location-augmented form can be built structurally instead of re-parsing
// rendered strings.
type variantClause struct {
	name   variant.Variant
	clause boolquery.Clause
}

// variantClauses builds the applicable variants in canonical order.
func (s *Service) variantClauses(g taxonomy.Group) []variantClause {
	broadTitles := boolquery.OrTerms(g.AllTitles())
	primaryTitles := boolquery.OrTerms(g.Titles())

	out := []variantClause{{variant.Broad, broadTitles}}

	if sectors := boolquery.OrTerms(g.SectorKeywords()); !sectors.IsEmpty() {
		out = append(out, variantClause{variant.Narrow, boolquery.And(broadTitles, sectors)})
	}
	if employers := employerClause(g.TypicalEmployers()); !employers.IsEmpty() {
		// Narrower title set on purpose: employer targeting pairs the
		// primary titles with companies that already staff this profile.
		out = append(out, variantClause{variant.LookalikeEmployer, boolquery.And(primaryTitles, employers)})
	}
	if competitors := employerClause(g.Competitors()); !competitors.IsEmpty() {
		out = append(out, variantClause{variant.Competitor, boolquery.And(broadTitles, competitors)})
	}
	if skills := boolquery.OrTerms(g.Skills()); !skills.IsEmpty() {
		out = append(out, variantClause{variant.SkillBased, boolquery.And(broadTitles, skills)})
	}

	out = append(out, variantClause{variant.OpenToWork, boolquery.And(broadTitles, boolquery.OrTerms(openToWorkSignals))})

	if certs := boolquery.OrTerms(g.Certifications()); !certs.IsEmpty() {
		out = append(out, variantClause{variant.Certification, boolquery.And(broadTitles, certs)})
	}

	return out
}

// employerClause builds an OR over employer qualifiers. The qualifier prefix
// must stay outside the phrase quotes, so these are raw leaves.
func employerClause(companies []string) boolquery.Clause {
	clauses := make([]boolquery.Clause, 0, len(companies))
	for _, c := range companies {
		if c == "" {
			continue
		}
		clauses = append(clauses, boolquery.Raw(fmt.Sprintf("employer:%q", c)))
	}
	return boolquery.Or(clauses...)
}
