// Package match scores free-text vacancy titles against the taxonomy.
package match

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/kailas-cloud/querydex/internal/domain"
	"github.com/kailas-cloud/querydex/internal/domain/taxonomy"
)

// sectorKeywordBonus is the flat score for a sector keyword found in a title.
const sectorKeywordBonus = 5

// Service matches free-text vacancy titles to function groups.
type Service struct {
	store taxonomy.Store
}

// New creates a matcher over the given store.
func New(store taxonomy.Store) *Service {
	return &Service{store: store}
}

// Match scores the title against every group and returns the best match with
// its score. Each title variant found in the text contributes its character
// length, so longer and more specific matches outweigh shorter ones; each
// sector keyword found contributes a flat bonus. When every group scores
// zero, ErrNoMatch is returned. The strictly highest score wins; on a tie the
// group that comes first in store order is kept.
func (s *Service) Match(title string) (taxonomy.Group, int, error) {
	titleLower := strings.ToLower(title)

	var best taxonomy.Group
	bestScore := 0

	for _, g := range s.store.Groups() {
		score := Score(g, titleLower)
		if score > bestScore {
			bestScore = score
			best = g
		}
	}

	if bestScore == 0 {
		return taxonomy.Group{}, 0, fmt.Errorf("%w: %q", domain.ErrNoMatch, title)
	}
	return best, bestScore, nil
}

// Score computes the match score of one group against a lowercased title.
func Score(g taxonomy.Group, titleLower string) int {
	score := 0
	for _, t := range g.AllTitles() {
		if strings.Contains(titleLower, strings.ToLower(t)) {
			// Rune count, not byte length: diacritics must not outscore
			// an equally long ascii title.
			score += utf8.RuneCountInString(t)
		}
	}
	for _, kw := range g.SectorKeywords() {
		if strings.Contains(titleLower, strings.ToLower(kw)) {
			score += sectorKeywordBonus
		}
	}
	return score
}
