package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
	// Unhealthy indicates total failure.
	Unhealthy Status = "error"
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
}

// BackendPinger checks retrieval backend reachability.
type BackendPinger interface {
	Ping(ctx context.Context) error
}

// CachePinger checks analytics cache reachability.
type CachePinger interface {
	Ping(ctx context.Context) error
}

// Service coordinates health checks.
type Service struct {
	backend BackendPinger
	cache   CachePinger
}

// New creates a Service. cache can be nil.
func New(backend BackendPinger, cache CachePinger) *Service {
	return &Service{backend: backend, cache: cache}
}

// Check runs health checks against all components. The backend is the
// critical dependency: when it is down the report is Unhealthy; a
// failing cache alone only degrades.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	backendOK := s.backend.Ping(ctx) == nil
	if backendOK {
		checks["backend"] = CheckOK
	} else {
		checks["backend"] = CheckError
	}

	cacheOK := true
	if s.cache != nil {
		if err := s.cache.Ping(ctx); err != nil {
			checks["cache"] = CheckError
			cacheOK = false
		} else {
			checks["cache"] = CheckOK
		}
	}

	status := Healthy
	switch {
	case !backendOK:
		status = Unhealthy
	case !cacheOK:
		status = Degraded
	}

	return Report{Status: status, Checks: checks}
}
