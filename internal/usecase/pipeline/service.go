// Package pipeline runs bulk operations over the taxonomy: batch vacancy
// compilation, full taxonomy export rows, and the similarity matrix.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"github.com/kailas-cloud/querydex/internal/domain"
	"github.com/kailas-cloud/querydex/internal/domain/taxonomy"
	"github.com/kailas-cloud/querydex/internal/domain/vacancy"
	"github.com/kailas-cloud/querydex/internal/domain/variant"
	"github.com/kailas-cloud/querydex/internal/usecase/compile"
	"github.com/kailas-cloud/querydex/internal/usecase/similarity"
)

// defaultPoolSize is the fan-out width for batch vacancy compilation.
// Compilation is pure in-memory work over the immutable store, so requests
// need no coordination beyond the pool itself.
const defaultPoolSize = 8

const exportListLimit = 5

// Service runs the bulk pipeline operations.
type Service struct {
	store    taxonomy.Store
	compiler *compile.Service
	sim      *similarity.Service
	logger   *zap.Logger
	poolSize int
}

// New creates a pipeline service.
func New(store taxonomy.Store, compiler *compile.Service, sim *similarity.Service, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:    store,
		compiler: compiler,
		sim:      sim,
		logger:   logger,
		poolSize: defaultPoolSize,
	}
}

// WithPoolSize sets the worker pool size for batch processing.
func (s *Service) WithPoolSize(size int) *Service {
	if size > 0 {
		s.poolSize = size
	}
	return s
}

// VacancyRow is one flattened export row: one vacancy, one variant.
type VacancyRow struct {
	VacancyID         int
	Title             string
	Company           string
	Location          string
	GroupName         string
	Variant           variant.Variant
	Priority          variant.Priority
	Query             string
	QueryWithLocation string
	ExpectedResults   string
}

// Stats summarizes a batch run.
type Stats struct {
	Processed int `json:"processed"`
	Matched   int `json:"matched"`
	Unmatched int `json:"unmatched"`
	Rows      int `json:"rows"`
}

// ProcessVacancies compiles search bundles for all vacancies concurrently and
// flattens them to export rows in input order. Vacancies no group matches are
// counted and skipped — one bad row never aborts the batch.
func (s *Service) ProcessVacancies(ctx context.Context, vacancies []vacancy.Vacancy) ([]VacancyRow, Stats, error) {
	pool, err := ants.NewPool(s.poolSize)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	type outcome struct {
		bundle compile.Bundle
		err    error
	}
	outcomes := make([]outcome, len(vacancies))

	var wg sync.WaitGroup
	// Submitted workers write into outcomes, so an early return on
	// cancellation must still wait for them to finish.
	defer wg.Wait()
	for i, v := range vacancies {
		if err := ctx.Err(); err != nil {
			return nil, Stats{}, err
		}
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			bundle, err := s.compiler.ForVacancy(v, "")
			outcomes[i] = outcome{bundle: bundle, err: err}
		})
		if submitErr != nil {
			wg.Done()
			outcomes[i] = outcome{err: submitErr}
		}
	}
	wg.Wait()

	stats := Stats{Processed: len(vacancies)}
	rows := make([]VacancyRow, 0, len(vacancies)*len(variant.All()))

	for i, out := range outcomes {
		v := vacancies[i]
		if out.err != nil {
			if !errors.Is(out.err, domain.ErrNoMatch) {
				return nil, Stats{}, fmt.Errorf("vacancy %d: %w", i+1, out.err)
			}
			stats.Unmatched++
			s.logger.Debug("no function group matched",
				zap.Int("vacancy", i+1),
				zap.String("title", v.Title()),
			)
			continue
		}

		stats.Matched++
		for _, search := range out.bundle.Searches {
			rows = append(rows, VacancyRow{
				VacancyID:         i + 1,
				Title:             v.Title(),
				Company:           v.Company(),
				Location:          v.Location(),
				GroupName:         out.bundle.Group.Name,
				Variant:           search.Variant,
				Priority:          search.Priority,
				Query:             search.Query,
				QueryWithLocation: search.QueryWithLocation,
				ExpectedResults:   search.ExpectedResults,
			})
		}
	}

	stats.Rows = len(rows)
	s.logger.Info("processed vacancy batch",
		zap.Int("vacancies", stats.Processed),
		zap.Int("matched", stats.Matched),
		zap.Int("unmatched", stats.Unmatched),
		zap.Int("rows", stats.Rows),
	)
	return rows, stats, nil
}

// TaxonomyRow is one export row of the full taxonomy: one group, one variant.
type TaxonomyRow struct {
	GroupID     string
	GroupName   string
	Category    string
	Variant     variant.Variant
	Query       string
	Titles      string
	Skills      string
	LookAlikes  string
	Competitors string
}

// TaxonomyRows compiles every group's variants into export rows, in store
// order with variants in canonical order.
func (s *Service) TaxonomyRows() []TaxonomyRow {
	rows := make([]TaxonomyRow, 0, s.store.Len()*len(variant.All()))

	for _, g := range s.store.Groups() {
		searches := s.compiler.Variants(g)
		for _, name := range variant.All() {
			query, ok := searches[name]
			if !ok {
				continue
			}
			rows = append(rows, TaxonomyRow{
				GroupID:     g.ID(),
				GroupName:   g.Name(),
				Category:    g.Category(),
				Variant:     name,
				Query:       query,
				Titles:      strings.Join(g.Titles(), " | "),
				Skills:      strings.Join(limit(g.Skills(), exportListLimit), " | "),
				LookAlikes:  strings.Join(g.LookAlikes(), " | "),
				Competitors: strings.Join(limit(g.Competitors(), exportListLimit), " | "),
			})
		}
	}
	return rows
}

// SimilarityMatrix returns the pairwise similarity matrix of the store.
func (s *Service) SimilarityMatrix() similarity.Matrix {
	return s.sim.Matrix()
}

func limit(in []string, n int) []string {
	if len(in) <= n {
		return in
	}
	return in[:n]
}
