package compile

import (
	"github.com/kailas-cloud/querydex/internal/domain/vacancy"
	"github.com/kailas-cloud/querydex/internal/domain/variant"
)

// GroupRef identifies the function group a bundle was compiled from.
type GroupRef struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// Search is one compiled query variant with its sourcing metadata.
// QueryWithLocation is empty when the vacancy carried no usable location.
type Search struct {
	Variant           variant.Variant  `json:"search_type"`
	Query             string           `json:"boolean_query"`
	QueryWithLocation string           `json:"boolean_query_with_location,omitempty"`
	Priority          variant.Priority `json:"priority"`
	ExpectedResults   string           `json:"expected_result_size"`
	Filters           PlatformFilters  `json:"platform_filters"`
}

// PlatformFilters are suggested platform-side filter settings for a variant.
type PlatformFilters struct {
	Location               string   `json:"location,omitempty"`
	Industries             []string `json:"industries,omitempty"`
	OpenToWork             bool     `json:"open_to_work,omitempty"`
	CurrentCompany         string   `json:"current_company,omitempty"`
	CurrentOrPastCompanies []string `json:"current_or_past_companies,omitempty"`
}

// Bundle is the full compiled result for one vacancy. It exists only for the
// duration of one compilation call and is never persisted by the engine.
type Bundle struct {
	Vacancy  vacancy.Vacancy `json:"-"`
	Group    GroupRef        `json:"group"`
	Searches []Search        `json:"searches"`
}

// Search returns the compiled search for a variant, if present.
func (b Bundle) Search(v variant.Variant) (Search, bool) {
	for _, s := range b.Searches {
		if s.Variant == v {
			return s, true
		}
	}
	return Search{}, false
}
