package utils

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHealthMonitorCheck(t *testing.T) {
	m := NewHealthMonitor(map[string]HealthCheck{
		"postgres": func(context.Context) error { return nil },
		"redis":    func(context.Context) error { return errors.New("connection refused") },
	})

	status := m.Check(context.Background())
	assert.False(t, status.Healthy)
	assert.True(t, status.Services["postgres"])
	assert.False(t, status.Services["redis"])
	assert.Equal(t, status, m.Status(context.Background()))
}

func TestHealthMonitorStatusServesSnapshot(t *testing.T) {
	var calls atomic.Int32
	m := NewHealthMonitor(map[string]HealthCheck{
		"postgres": func(context.Context) error {
			calls.Add(1)
			return nil
		},
	})

	// The first read has nothing stored yet and checks inline.
	first := m.Status(context.Background())
	assert.True(t, first.Healthy)
	assert.Equal(t, int32(1), calls.Load())

	assert.Equal(t, first, m.Status(context.Background()))
	assert.Equal(t, int32(1), calls.Load())
}

func TestHealthMonitorStartRefreshesUntilCancelled(t *testing.T) {
	var calls atomic.Int32
	m := NewHealthMonitor(map[string]HealthCheck{
		"redis": func(context.Context) error {
			calls.Add(1)
			return nil
		},
	})

	ctx, cancel := context.WithCancel(context.Background())
	m.Start(ctx, 10*time.Millisecond)
	assert.Eventually(t, func() bool { return calls.Load() >= 3 }, time.Second, 5*time.Millisecond)

	cancel()
	time.Sleep(30 * time.Millisecond)
	stopped := calls.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, stopped, calls.Load())
}
