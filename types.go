package querydex

import (
	"github.com/kailas-cloud/querydex/internal/domain/taxonomy"
	compileuc "github.com/kailas-cloud/querydex/internal/usecase/compile"
)

// GroupInfo identifies one function group of the taxonomy.
type GroupInfo struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// Match is the outcome of resolving a vacancy title to a function group.
type Match struct {
	Group GroupInfo `json:"group"`
	Score int       `json:"score"`
}

// Search is one compiled boolean query variant with its sourcing metadata.
type Search struct {
	Type              string          `json:"search_type"`
	Query             string          `json:"boolean_query"`
	QueryWithLocation string          `json:"boolean_query_with_location,omitempty"`
	Priority          string          `json:"priority"`
	ExpectedResults   string          `json:"expected_result_size"`
	Filters           PlatformFilters `json:"platform_filters"`
}

// PlatformFilters are suggested platform-side filter settings for a variant.
type PlatformFilters struct {
	Location               string   `json:"location,omitempty"`
	Industries             []string `json:"industries,omitempty"`
	OpenToWork             bool     `json:"open_to_work,omitempty"`
	CurrentCompany         string   `json:"current_company,omitempty"`
	CurrentOrPastCompanies []string `json:"current_or_past_companies,omitempty"`
}

// Bundle is the full compiled result for one vacancy.
type Bundle struct {
	Group    GroupInfo `json:"group"`
	Searches []Search  `json:"searches"`
}

// SimilarGroup is one entry in a similarity ranking.
type SimilarGroup struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

func groupInfo(g taxonomy.Group) GroupInfo {
	return GroupInfo{ID: g.ID(), Name: g.Name(), Category: g.Category()}
}

func bundleFromInternal(b compileuc.Bundle) Bundle {
	searches := make([]Search, len(b.Searches))
	for i, s := range b.Searches {
		searches[i] = Search{
			Type:              string(s.Variant),
			Query:             s.Query,
			QueryWithLocation: s.QueryWithLocation,
			Priority:          string(s.Priority),
			ExpectedResults:   s.ExpectedResults,
			Filters: PlatformFilters{
				Location:               s.Filters.Location,
				Industries:             s.Filters.Industries,
				OpenToWork:             s.Filters.OpenToWork,
				CurrentCompany:         s.Filters.CurrentCompany,
				CurrentOrPastCompanies: s.Filters.CurrentOrPastCompanies,
			},
		}
	}
	return Bundle{
		Group:    GroupInfo{ID: b.Group.ID, Name: b.Group.Name, Category: b.Group.Category},
		Searches: searches,
	}
}
