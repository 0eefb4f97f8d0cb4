// Package health reports engine readiness.
package health

import "github.com/kailas-cloud/querydex/internal/domain/taxonomy"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status Status                 `json:"status"`
	Checks map[string]CheckResult `json:"checks"`
	Groups int                    `json:"groups"`
}

// Service coordinates health checks.
type Service struct {
	store taxonomy.Store
}

// New creates a health service.
func New(store taxonomy.Store) *Service {
	return &Service{store: store}
}

// Check verifies the taxonomy store is loaded. The store is immutable for
// the process lifetime, so an empty store can only mean a broken startup.
func (s *Service) Check() Report {
	checks := map[string]CheckResult{"taxonomy": CheckOK}
	status := Healthy

	if s.store.Len() == 0 {
		checks["taxonomy"] = CheckError
		status = Degraded
	}

	return Report{Status: status, Checks: checks, Groups: s.store.Len()}
}
