package compile

import (
	"github.com/kailas-cloud/querydex/internal/domain/taxonomy"
	"github.com/kailas-cloud/querydex/internal/domain/vacancy"
	"github.com/kailas-cloud/querydex/internal/domain/variant"
)

// industriesByCategory maps taxonomy categories to suggested platform
// industries. Unknown categories fall back to a single generic industry.
var industriesByCategory = map[string][]string{
	"werkvoorbereiding": {"Construction", "Engineering", "Utilities"},
	"techniek":          {"Construction", "Manufacturing", "Engineering"},
	"automatisering":    {"Manufacturing", "Engineering", "IT"},
	"projectleiding":    {"Construction", "Engineering"},
	"engineering":       {"Engineering", "Manufacturing", "IT"},
	"productie":         {"Manufacturing", "Food & Beverage"},
	"metaal":            {"Manufacturing", "Construction"},
	"software":          {"Information Technology", "Computer Software", "Internet"},
}

// defaultIndustries is the fallback for unmapped categories.
var defaultIndustries = []string{"Engineering"}

// Industries returns the suggested platform industries for a category.
func Industries(category string) []string {
	if industries, ok := industriesByCategory[category]; ok {
		return cloneStrings(industries)
	}
	return cloneStrings(defaultIndustries)
}

// filters builds the suggested platform filters for one variant.
func (s *Service) filters(name variant.Variant, g taxonomy.Group, v vacancy.Vacancy) PlatformFilters {
	f := PlatformFilters{
		Location:   v.Location(),
		Industries: Industries(g.Category()),
	}

	switch name {
	case variant.OpenToWork:
		f.OpenToWork = true
	case variant.LookalikeEmployer:
		f.CurrentCompany = v.Company()
	case variant.Competitor:
		f.CurrentOrPastCompanies = cloneStrings(g.Competitors())
	}

	return f
}

func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
