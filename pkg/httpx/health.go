package httpx

import (
	"context"
	"net/http"
	"sync"
	"time"
)

// Health statuses reported by the readiness and liveness endpoints.
const (
	StatusHealthy   = "Healthy"
	StatusUnhealthy = "Unhealthy"
)

// HealthChecker is satisfied by any infrastructure dependency that exposes
// a Ping method (database.Database, docstore.Client, cache.RedisClient,
// events.EventBus and the in-memory repository all qualify).
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// NamedCheck binds a HealthChecker to the name reported in the readiness document.
type NamedCheck struct {
	Name    string
	Checker HealthChecker
}

// HealthReport is the readiness document.
type HealthReport struct {
	Status string        `json:"status"`
	Checks []CheckReport `json:"checks"`
}

// CheckReport is the outcome of a single dependency probe.
type CheckReport struct {
	Name      string `json:"name"`
	Status    string `json:"status"`
	Exception string `json:"exception"`
	Duration  string `json:"duration"`
}

// ReadinessHandler returns an http.HandlerFunc that probes every check
// concurrently, each bounded by timeout. The overall status is Unhealthy
// (503) if any check fails.
func ReadinessHandler(timeout time.Duration, checks ...NamedCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report := HealthReport{
			Status: StatusHealthy,
			Checks: make([]CheckReport, len(checks)),
		}

		var wg sync.WaitGroup
		for i, c := range checks {
			wg.Add(1)
			go func() {
				defer wg.Done()
				report.Checks[i] = runCheck(r.Context(), c, timeout)
			}()
		}
		wg.Wait()

		for _, c := range report.Checks {
			if c.Status != StatusHealthy {
				report.Status = StatusUnhealthy
			}
		}

		status := http.StatusOK
		if report.Status != StatusHealthy {
			status = http.StatusServiceUnavailable
		}
		JSON(w, status, report)
	}
}

// LivenessHandler always reports Healthy without evaluating any dependency.
func LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		JSON(w, http.StatusOK, HealthReport{Status: StatusHealthy, Checks: []CheckReport{}})
	}
}

func runCheck(ctx context.Context, c NamedCheck, timeout time.Duration) CheckReport {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	err := c.Checker.Ping(ctx)
	report := CheckReport{
		Name:      c.Name,
		Status:    StatusHealthy,
		Exception: "none",
		Duration:  time.Since(start).String(),
	}
	if err != nil {
		report.Status = StatusUnhealthy
		report.Exception = err.Error()
	}
	return report
}
