package utils

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// HealthCheck pings one backing service.
type HealthCheck func(ctx context.Context) error

// HealthStatus represents current status of external services.
type HealthStatus struct {
	Services  map[string]bool `json:"services"`
	Healthy   bool            `json:"healthy"`
	CheckedAt time.Time       `json:"checkedAt"`
}

// HealthMonitor keeps the latest snapshot of every registered check.
type HealthMonitor struct {
	checks  map[string]HealthCheck
	mu      sync.RWMutex
	current HealthStatus
}

func NewHealthMonitor(checks map[string]HealthCheck) *HealthMonitor {
	return &HealthMonitor{checks: checks}
}

// Check runs every check now and stores the result.
func (m *HealthMonitor) Check(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Services:  make(map[string]bool, len(m.checks)),
		Healthy:   true,
		CheckedAt: time.Now(),
	}
	for name, check := range m.checks {
		cctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err := check(cctx)
		cancel()
		status.Services[name] = err == nil
		if err != nil {
			status.Healthy = false
			GetLogger().Warn("health check failed", zap.String("service", name), zap.Error(err))
		}
	}

	m.mu.Lock()
	m.current = status
	m.mu.Unlock()
	return status
}

// Status returns the latest stored snapshot. Before the first check has
// completed it runs one inline so callers never see an empty snapshot.
func (m *HealthMonitor) Status(ctx context.Context) HealthStatus {
	m.mu.RLock()
	current := m.current
	m.mu.RUnlock()
	if current.CheckedAt.IsZero() {
		return m.Check(ctx)
	}
	return current
}

// Start performs periodic health checks until ctx is done.
func (m *HealthMonitor) Start(ctx context.Context, every time.Duration) {
	if every <= 0 {
		every = 15 * time.Second
	}
	go func() {
		m.Check(ctx)
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.Check(ctx)
			}
		}
	}()
}
