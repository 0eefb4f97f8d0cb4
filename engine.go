// Package querydex synthesizes boolean sourcing queries for recruitment:
// it matches vacancy titles to a function-group taxonomy, compiles boolean
// query variants per group, and scores similarity between groups.
package querydex

import (
	"errors"
	"fmt"

	"github.com/kailas-cloud/querydex/internal/domain"
	"github.com/kailas-cloud/querydex/internal/domain/geo"
	"github.com/kailas-cloud/querydex/internal/domain/taxonomy"
	"github.com/kailas-cloud/querydex/internal/domain/vacancy"
	taxrepo "github.com/kailas-cloud/querydex/internal/repository/taxonomy"
	compileuc "github.com/kailas-cloud/querydex/internal/usecase/compile"
	crossmatchuc "github.com/kailas-cloud/querydex/internal/usecase/crossmatch"
	matchuc "github.com/kailas-cloud/querydex/internal/usecase/match"
	similarityuc "github.com/kailas-cloud/querydex/internal/usecase/similarity"
)

// Sentinel errors returned by Engine operations.
var (
	ErrGroupNotFound  = domain.ErrGroupNotFound
	ErrNoMatch        = domain.ErrNoMatch
	ErrInvalidVacancy = domain.ErrInvalidVacancy
)

// Engine is the querydex SDK entry point. It is immutable after New and
// safe for concurrent use.
type Engine struct {
	store      taxonomy.Store
	regions    geo.Table
	matcher    *matchuc.Service
	compiler   *compileuc.Service
	similarity *similarityuc.Service
	crossmatch *crossmatchuc.Service
}

// New creates an Engine from a taxonomy source.
func New(opts ...Option) (*Engine, error) {
	cfg := &engineConfig{}
	for _, o := range opts {
		o(cfg)
	}

	store, regions, err := loadStore(cfg)
	if err != nil {
		return nil, err
	}

	matcher := matchuc.New(store)
	sim := similarityuc.New(store)
	return &Engine{
		store:      store,
		regions:    regions,
		matcher:    matcher,
		compiler:   compileuc.New(store, regions, matcher),
		similarity: sim,
		crossmatch: crossmatchuc.New(store, sim),
	}, nil
}

func loadStore(cfg *engineConfig) (taxonomy.Store, geo.Table, error) {
	switch {
	case cfg.taxonomyData != nil:
		store, regions, err := taxrepo.Parse(cfg.taxonomyData)
		if err != nil {
			return taxonomy.Store{}, geo.Table{}, fmt.Errorf("querydex: parse taxonomy: %w", err)
		}
		return store, regions, nil
	case cfg.taxonomyPath != "":
		store, regions, err := taxrepo.Load(cfg.taxonomyPath)
		if err != nil {
			return taxonomy.Store{}, geo.Table{}, fmt.Errorf("querydex: load taxonomy: %w", err)
		}
		return store, regions, nil
	default:
		return taxonomy.Store{}, geo.Table{},
			errors.New("querydex: taxonomy required (use WithTaxonomyFile or WithTaxonomyData)")
	}
}

// Groups lists all function groups in taxonomy order.
func (e *Engine) Groups() []GroupInfo {
	groups := e.store.Groups()
	out := make([]GroupInfo, len(groups))
	for i, g := range groups {
		out[i] = groupInfo(g)
	}
	return out
}

// Searches compiles all boolean query variants for a function group,
// keyed by variant name.
func (e *Engine) Searches(groupID string) (map[string]string, error) {
	g, err := e.store.Get(groupID)
	if err != nil {
		return nil, err
	}
	variants := e.compiler.Variants(g)
	out := make(map[string]string, len(variants))
	for name, query := range variants {
		out[string(name)] = query
	}
	return out, nil
}

// MatchTitle resolves a free-text vacancy title to the best-scoring
// function group.
func (e *Engine) MatchTitle(title string) (Match, error) {
	g, score, err := e.matcher.Match(title)
	if err != nil {
		return Match{}, err
	}
	return Match{Group: groupInfo(g), Score: score}, nil
}

// CompileVacancy builds the full search bundle for one vacancy. groupHint
// may name a group directly; when empty the title is matched against the
// taxonomy.
func (e *Engine) CompileVacancy(title, company, location, groupHint string) (Bundle, error) {
	v, err := vacancy.New(title, company, location)
	if err != nil {
		return Bundle{}, err
	}
	bundle, err := e.compiler.ForVacancy(v, groupHint)
	if err != nil {
		return Bundle{}, err
	}
	return bundleFromInternal(bundle), nil
}

// Similar ranks the other function groups by similarity to groupID,
// keeping scores at or above threshold.
func (e *Engine) Similar(groupID string, threshold float64) ([]SimilarGroup, error) {
	ranked, err := e.similarity.Rank(groupID, threshold)
	if err != nil {
		return nil, err
	}
	out := make([]SimilarGroup, len(ranked))
	for i, r := range ranked {
		out[i] = SimilarGroup{ID: r.ID, Name: r.Name, Score: r.Score}
	}
	return out, nil
}

// Similarity scores two function groups on [0,1].
func (e *Engine) Similarity(aID, bID string) (float64, error) {
	a, err := e.store.Get(aID)
	if err != nil {
		return 0, err
	}
	b, err := e.store.Get(bID)
	if err != nil {
		return 0, err
	}
	return e.similarity.Score(a, b), nil
}

// CrossMatch builds a query targeting profiles straddling two groups.
func (e *Engine) CrossMatch(aID, bID string) (string, error) {
	a, err := e.store.Get(aID)
	if err != nil {
		return "", err
	}
	b, err := e.store.Get(bID)
	if err != nil {
		return "", err
	}
	return e.crossmatch.CrossMatch(a, b), nil
}

// Hybrid builds a widened query combining a primary group with several
// secondary groups. Unknown secondary ids are skipped.
func (e *Engine) Hybrid(primaryID string, secondaryIDs []string) (string, error) {
	return e.crossmatch.Hybrid(primaryID, secondaryIDs)
}
