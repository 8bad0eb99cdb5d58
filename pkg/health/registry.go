// Package health aggregates health checks over the configured store adapters.
package health

import (
	"context"
	"sync"
	"time"
)

// Status represents the health status of a component.
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusUnhealthy Status = "unhealthy"
)

// CheckResult represents the result of a single health check.
type CheckResult struct {
	Name      string        `json:"name"`
	Status    Status        `json:"status"`
	Error     string        `json:"error,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
	Duration  time.Duration `json:"duration"`
}

// HealthChecker is satisfied by every store adapter.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Registry manages named health checks over store adapters.
type Registry struct {
	mu       sync.RWMutex
	checkers map[string]HealthChecker
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{checkers: make(map[string]HealthChecker)}
}

// Register adds or replaces the checker under the given name.
func (r *Registry) Register(name string, checker HealthChecker) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checkers[name] = checker
}

// Unregister removes the checker under the given name.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.checkers, name)
}

// CheckAll runs every registered check sequentially and returns one result
// per checker. The adapter layer is synchronous throughout; health checks
// follow suit.
func (r *Registry) CheckAll(ctx context.Context) []CheckResult {
	r.mu.RLock()
	names := make([]string, 0, len(r.checkers))
	for name := range r.checkers {
		names = append(names, name)
	}
	r.mu.RUnlock()

	results := make([]CheckResult, 0, len(names))
	for _, name := range names {
		results = append(results, r.check(ctx, name))
	}
	return results
}

// Healthy reports whether every registered check passes.
func (r *Registry) Healthy(ctx context.Context) bool {
	for _, result := range r.CheckAll(ctx) {
		if result.Status != StatusHealthy {
			return false
		}
	}
	return true
}

func (r *Registry) check(ctx context.Context, name string) CheckResult {
	r.mu.RLock()
	checker, ok := r.checkers[name]
	r.mu.RUnlock()

	result := CheckResult{Name: name, Timestamp: time.Now().UTC()}
	if !ok {
		result.Status = StatusUnhealthy
		result.Error = "checker not registered"
		return result
	}

	start := time.Now()
	err := checker.HealthCheck(ctx)
	result.Duration = time.Since(start)
	if err != nil {
		result.Status = StatusUnhealthy
		result.Error = err.Error()
		return result
	}
	result.Status = StatusHealthy
	return result
}
