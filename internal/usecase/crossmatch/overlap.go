package crossmatch

import "github.com/kailas-cloud/querydex/internal/domain/taxonomy"

// Level is a qualitative overlap label.
type Level string

// Overlap levels.
const (
	LevelHigh   Level = "high"
	LevelMedium Level = "medium"
	LevelLow    Level = "low"
)

// GroupRef identifies one side of an overlap analysis.
type GroupRef struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// Overlaps holds the term intersections between two groups, in the first
// group's term order.
type Overlaps struct {
	Skills           []string `json:"skills"`
	Certifications   []string `json:"certifications"`
	TypicalEmployers []string `json:"typical_employers"`
	Competitors      []string `json:"competitors"`
}

// OverlapCounts carries the intersection sizes alongside the term lists.
type OverlapCounts struct {
	Skills           int `json:"skills"`
	Certifications   int `json:"certifications"`
	TypicalEmployers int `json:"typical_employers"`
	Competitors      int `json:"competitors"`
}

// Insights are the qualitative market labels derived from overlap counts.
type Insights struct {
	TalentCompetition      Level `json:"talent_competition"`
	SkillTransferability   Level `json:"skill_transferability"`
	CrossTrainingPotential Level `json:"cross_training_potential"`
}

// OverlapReport is the market overlap analysis of two function groups.
type OverlapReport struct {
	A          GroupRef      `json:"group_a"`
	B          GroupRef      `json:"group_b"`
	Similarity float64       `json:"similarity_score"`
	Overlaps   Overlaps      `json:"overlaps"`
	Counts     OverlapCounts `json:"overlap_counts"`
	Insights   Insights      `json:"market_insights"`
}

// MarketOverlap analyzes the hiring-market overlap between two groups.
// Both ids must exist; a missing one is ErrGroupNotFound.
func (s *Service) MarketOverlap(aID, bID string) (OverlapReport, error) {
	a, err := s.store.Get(aID)
	if err != nil {
		return OverlapReport{}, err
	}
	b, err := s.store.Get(bID)
	if err != nil {
		return OverlapReport{}, err
	}

	overlaps := Overlaps{
		Skills:           intersect(a.Skills(), b.Skills()),
		Certifications:   intersect(a.Certifications(), b.Certifications()),
		TypicalEmployers: intersect(a.TypicalEmployers(), b.TypicalEmployers()),
		Competitors:      intersect(a.Competitors(), b.Competitors()),
	}

	return OverlapReport{
		A:          ref(a),
		B:          ref(b),
		Similarity: s.sim.Score(a, b),
		Overlaps:   overlaps,
		Counts: OverlapCounts{
			Skills:           len(overlaps.Skills),
			Certifications:   len(overlaps.Certifications),
			TypicalEmployers: len(overlaps.TypicalEmployers),
			Competitors:      len(overlaps.Competitors),
		},
		Insights: Insights{
			TalentCompetition:      level(len(overlaps.TypicalEmployers), 3, 1),
			SkillTransferability:   level(len(overlaps.Skills), 10, 5),
			CrossTrainingPotential: level(len(overlaps.Certifications), 3, 1),
		},
	}, nil
}

func ref(g taxonomy.Group) GroupRef {
	return GroupRef{ID: g.ID(), Name: g.Name(), Category: g.Category()}
}

// level maps an overlap count to a label via fixed thresholds.
func level(count, high, medium int) Level {
	switch {
	case count > high:
		return LevelHigh
	case count > medium:
		return LevelMedium
	default:
		return LevelLow
	}
}
