// Package chi exposes the query engine over HTTP using the chi router.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/querydex/internal/domain"
	"github.com/kailas-cloud/querydex/internal/domain/taxonomy"
	"github.com/kailas-cloud/querydex/internal/domain/vacancy"
	logpkg "github.com/kailas-cloud/querydex/internal/logger"
	"github.com/kailas-cloud/querydex/internal/metrics"
	compileuc "github.com/kailas-cloud/querydex/internal/usecase/compile"
	crossmatchuc "github.com/kailas-cloud/querydex/internal/usecase/crossmatch"
	healthuc "github.com/kailas-cloud/querydex/internal/usecase/health"
	matchuc "github.com/kailas-cloud/querydex/internal/usecase/match"
	similarityuc "github.com/kailas-cloud/querydex/internal/usecase/similarity"
)

// Error codes returned in JSON error responses.
const (
	CodeBadRequest       = "bad_request"
	CodeValidationFailed = "validation_failed"
	CodeNotFound         = "not_found"
	CodeNoMatch          = "no_match"
	CodeInternalError    = "internal_error"
)

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server holds the HTTP handlers for the query engine API.
type Server struct {
	store         taxonomy.Store
	compiler      *compileuc.Service
	matcher       *matchuc.Service
	similarity    *similarityuc.Service
	crossmatch    *crossmatchuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	store taxonomy.Store,
	compiler *compileuc.Service,
	matcher *matchuc.Service,
	similarity *similarityuc.Service,
	crossmatch *crossmatchuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		store:      store,
		compiler:   compiler,
		matcher:    matcher,
		similarity: similarity,
		crossmatch: crossmatch,
		health:     health,
		logger:     logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrGroupNotFound, http.StatusNotFound, CodeNotFound),
		sentinelHandler(domain.ErrNoMatch, http.StatusNotFound, CodeNoMatch),
		sentinelHandler(domain.ErrInvalidVacancy, http.StatusBadRequest, CodeValidationFailed),
	}
	return s
}

// Routes mounts all API routes on the given router.
func (s *Server) Routes(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/groups", s.ListGroups)
		r.Get("/groups/{id}", s.GetGroup)
		r.Get("/groups/{id}/searches", s.GroupSearches)
		r.Get("/groups/{id}/similar", s.SimilarGroups)
		r.Get("/groups/{id}/lookalikes", s.Lookalikes)
		r.Get("/similarity/matrix", s.SimilarityMatrix)
		r.Get("/match", s.MatchTitle)
		r.Post("/vacancies/searches", s.CompileVacancy)
		r.Post("/crossmatch", s.CrossMatch)
		r.Post("/hybrid", s.Hybrid)
		r.Post("/overlap", s.MarketOverlap)
	})
}

// groupSummary is the list representation of a function group.
type groupSummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Titles   int    `json:"titles"`
	Skills   int    `json:"skills"`
}

// groupDetail is the full representation of a function group.
type groupDetail struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Category         string   `json:"category"`
	Titles           []string `json:"titles"`
	Synonyms         []string `json:"synonyms,omitempty"`
	EnglishTitles    []string `json:"english_titles,omitempty"`
	Skills           []string `json:"skills,omitempty"`
	Certifications   []string `json:"certifications,omitempty"`
	LookAlikes       []string `json:"look_alikes,omitempty"`
	TypicalEmployers []string `json:"typical_employers,omitempty"`
	Competitors      []string `json:"competitors,omitempty"`
	SectorKeywords   []string `json:"sector_keywords,omitempty"`
}

// ListGroups handles GET /v1/groups.
func (s *Server) ListGroups(w http.ResponseWriter, r *http.Request) {
	groups := s.store.Groups()
	items := make([]groupSummary, len(groups))
	for i, g := range groups {
		items[i] = groupSummary{
			ID:       g.ID(),
			Name:     g.Name(),
			Category: g.Category(),
			Titles:   len(g.AllTitles()),
			Skills:   len(g.Skills()),
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"items": items,
		"total": len(items),
	})
}

// GetGroup handles GET /v1/groups/{id}.
func (s *Server) GetGroup(w http.ResponseWriter, r *http.Request) {
	g, err := s.store.Get(chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, groupToDetail(g))
}

// GroupSearches handles GET /v1/groups/{id}/searches.
func (s *Server) GroupSearches(w http.ResponseWriter, r *http.Request) {
	g, err := s.store.Get(chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	searches := s.compiler.Variants(g)
	for name := range searches {
		metrics.SearchCompiled(string(name))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"group":    groupRef(g),
		"searches": searches,
	})
}

// SimilarGroups handles GET /v1/groups/{id}/similar.
func (s *Server) SimilarGroups(w http.ResponseWriter, r *http.Request) {
	threshold := similarityuc.DefaultThreshold
	if raw := r.URL.Query().Get("threshold"); raw != "" {
		t, err := strconv.ParseFloat(raw, 64)
		if err != nil || t < 0 || t > 1 {
			writeError(w, http.StatusBadRequest, CodeValidationFailed, "threshold must be a number in [0,1]")
			return
		}
		threshold = t
	}

	ranked, err := s.similarity.Rank(chi.URLParam(r, "id"), threshold)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"threshold": threshold,
		"items":     ranked,
		"total":     len(ranked),
	})
}

// Lookalikes handles GET /v1/groups/{id}/lookalikes.
func (s *Server) Lookalikes(w http.ResponseWriter, r *http.Request) {
	report, err := s.crossmatch.Lookalikes(chi.URLParam(r, "id"), s.compiler)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// SimilarityMatrix handles GET /v1/similarity/matrix.
func (s *Server) SimilarityMatrix(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.similarity.Matrix())
}

// MatchTitle handles GET /v1/match.
func (s *Server) MatchTitle(w http.ResponseWriter, r *http.Request) {
	title := r.URL.Query().Get("title")
	if title == "" {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, "title query parameter is required")
		return
	}

	g, score, err := s.matcher.Match(title)
	metrics.TitleMatched(err == nil)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"group": groupRef(g),
		"score": score,
	})
}

// compileVacancyRequest is the body of POST /v1/vacancies/searches.
type compileVacancyRequest struct {
	Title    string `json:"title"`
	Company  string `json:"company"`
	Location string `json:"location"`
	GroupID  string `json:"group_id"`
}

// CompileVacancy handles POST /v1/vacancies/searches.
func (s *Server) CompileVacancy(w http.ResponseWriter, r *http.Request) {
	var req compileVacancyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "invalid request body: "+err.Error())
		return
	}

	v, err := vacancy.New(req.Title, req.Company, req.Location)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	bundle, err := s.compiler.ForVacancy(v, req.GroupID)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	for _, search := range bundle.Searches {
		metrics.SearchCompiled(string(search.Variant))
	}
	writeJSON(w, http.StatusOK, bundle)
}

// crossMatchRequest is the body of POST /v1/crossmatch.
type crossMatchRequest struct {
	GroupA string `json:"group_a"`
	GroupB string `json:"group_b"`
}

// CrossMatch handles POST /v1/crossmatch.
func (s *Server) CrossMatch(w http.ResponseWriter, r *http.Request) {
	var req crossMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "invalid request body: "+err.Error())
		return
	}

	a, err := s.store.Get(req.GroupA)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	b, err := s.store.Get(req.GroupB)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"group_a":    groupRef(a),
		"group_b":    groupRef(b),
		"query":      s.crossmatch.CrossMatch(a, b),
		"similarity": s.similarity.Score(a, b),
	})
}

// hybridRequest is the body of POST /v1/hybrid.
type hybridRequest struct {
	Primary     string   `json:"primary"`
	Secondaries []string `json:"secondaries"`
}

// Hybrid handles POST /v1/hybrid.
func (s *Server) Hybrid(w http.ResponseWriter, r *http.Request) {
	var req hybridRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "invalid request body: "+err.Error())
		return
	}
	if len(req.Secondaries) == 0 {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, "secondaries must not be empty")
		return
	}

	query, err := s.crossmatch.Hybrid(req.Primary, req.Secondaries)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"primary":     req.Primary,
		"secondaries": req.Secondaries,
		"query":       query,
	})
}

// MarketOverlap handles POST /v1/overlap.
func (s *Server) MarketOverlap(w http.ResponseWriter, r *http.Request) {
	var req crossMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "invalid request body: "+err.Error())
		return
	}

	report, err := s.crossmatch.MarketOverlap(req.GroupA, req.GroupB)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check()

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}
	writeJSON(w, httpStatus, report)
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func groupRef(g taxonomy.Group) compileuc.GroupRef {
	return compileuc.GroupRef{ID: g.ID(), Name: g.Name(), Category: g.Category()}
}

func groupToDetail(g taxonomy.Group) groupDetail {
	return groupDetail{
		ID:               g.ID(),
		Name:             g.Name(),
		Category:         g.Category(),
		Titles:           g.Titles(),
		Synonyms:         g.Synonyms(),
		EnglishTitles:    g.EnglishTitles(),
		Skills:           g.Skills(),
		Certifications:   g.Certifications(),
		LookAlikes:       g.LookAlikes(),
		TypicalEmployers: g.TypicalEmployers(),
		Competitors:      g.Competitors(),
		SectorKeywords:   g.SectorKeywords(),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Code: code, Message: message})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrGroupNotFound,
		domain.ErrNoMatch,
		domain.ErrInvalidVacancy,
		domain.ErrMalformedGroup,
		domain.ErrDuplicateGroup,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	logger := logpkg.FromContext(r.Context(), s.logger)
	logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}
