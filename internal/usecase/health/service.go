package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure (e.g. semantic ranking down).
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
	Status Status
	Checks map[string]CheckResult
}

// CatalogReader reports catalog size.
type CatalogReader interface {
	Len() int
}

// EmbeddingChecker verifies the embedding backend.
type EmbeddingChecker interface {
	HealthCheck(ctx context.Context) error
}

// Service coordinates health checks.
type Service struct {
	catalog   CatalogReader
	embedding EmbeddingChecker
}

// New creates a Service. embedding can be nil when no backend is configured.
func New(catalog CatalogReader, embedding EmbeddingChecker) *Service {
	return &Service{catalog: catalog, embedding: embedding}
}

// Check runs health checks against all components. An empty catalog and a
// dead embedding backend both degrade rather than fail: the engine still
// answers with fallback strategies.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	if s.catalog.Len() > 0 {
		checks["catalog"] = CheckOK
	} else {
		checks["catalog"] = CheckError
	}

	if s.embedding != nil {
		if err := s.embedding.HealthCheck(ctx); err != nil {
			checks["embedding"] = CheckError
		} else {
			checks["embedding"] = CheckOK
		}
	}

	status := Healthy
	for _, v := range checks {
		if v == CheckError {
			status = Degraded
			break
		}
	}

	return Report{Status: status, Checks: checks}
}
