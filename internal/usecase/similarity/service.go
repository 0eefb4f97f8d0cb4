// Package similarity scores function-group pairs by weighted term overlap.
package similarity

import (
	"math"
	"sort"
	"strings"

	"github.com/kailas-cloud/querydex/internal/domain/taxonomy"
)

// maxScore is the fixed denominator of the weighted sum: skills contribute up
// to 2, certifications 1, sector keywords 1, and a same-category bonus 1.
const maxScore = 5.0

// DefaultThreshold is the minimum score for Rank results.
const DefaultThreshold = 0.3

// Service computes similarity between function groups.
type Service struct {
	store taxonomy.Store
}

// New creates a similarity service over the given store.
func New(store taxonomy.Store) *Service {
	return &Service{store: store}
}

// Score returns the similarity of two groups in [0.0, 1.0], rounded to two
// decimals. The measure is symmetric. A term whose sets are empty on either
// side contributes zero rather than NaN.
func (s *Service) Score(a, b taxonomy.Group) float64 {
	score := 0.0

	score += 2 * jaccard(a.Skills(), b.Skills())
	score += jaccard(a.Certifications(), b.Certifications())
	score += jaccard(a.SectorKeywords(), b.SectorKeywords())
	if a.Category() == b.Category() {
		score++
	}

	return math.Round(score/maxScore*100) / 100
}

// Ranked is one entry of a similarity ranking.
type Ranked struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Score    float64 `json:"score"`
}

// Rank returns all other groups with similarity >= threshold, sorted by score
// descending. Ties keep store order (stable sort). The queried group itself
// is never included.
func (s *Service) Rank(groupID string, threshold float64) ([]Ranked, error) {
	base, err := s.store.Get(groupID)
	if err != nil {
		return nil, err
	}

	ranked := make([]Ranked, 0, s.store.Len())
	for _, other := range s.store.Groups() {
		if other.ID() == groupID {
			continue
		}
		score := s.Score(base, other)
		if score >= threshold {
			ranked = append(ranked, Ranked{
				ID:       other.ID(),
				Name:     other.Name(),
				Category: other.Category(),
				Score:    score,
			})
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked, nil
}

// Matrix is a full pairwise similarity matrix over the store, in store order.
type Matrix struct {
	IDs    []string    `json:"ids"`
	Names  []string    `json:"names"`
	Scores [][]float64 `json:"scores"`
}

// Matrix computes the identity matrix of the store. The diagonal is fixed at
// exactly 1.0 by convention; the raw formula is only used off-diagonal.
func (s *Service) Matrix() Matrix {
	groups := s.store.Groups()

	m := Matrix{
		IDs:    make([]string, len(groups)),
		Names:  make([]string, len(groups)),
		Scores: make([][]float64, len(groups)),
	}
	for i, g := range groups {
		m.IDs[i] = g.ID()
		m.Names[i] = g.Name()
		m.Scores[i] = make([]float64, len(groups))
		for j, other := range groups {
			if i == j {
				m.Scores[i][j] = 1.0
				continue
			}
			m.Scores[i][j] = s.Score(g, other)
		}
	}
	return m
}

// jaccard computes case-insensitive Jaccard overlap of two term lists.
// Returns 0 when either set is empty.
func jaccard(a, b []string) float64 {
	setA := lowerSet(a)
	setB := lowerSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0.0
	}

	intersection := 0
	for term := range setA {
		if _, ok := setB[term]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	return float64(intersection) / float64(union)
}

func lowerSet(terms []string) map[string]struct{} {
	set := make(map[string]struct{}, len(terms))
	for _, t := range terms {
		set[strings.ToLower(t)] = struct{}{}
	}
	return set
}
