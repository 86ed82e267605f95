package api

import (
	"sync/atomic"
	"time"
)

// Metrics tracks server statistics using atomic operations for thread-safety
type Metrics struct {
	RequestsTotal    atomic.Int64
	RequestErrors    atomic.Int64
	StatusChanges    atomic.Int64
	StatusRejections atomic.Int64
	Recalculations   atomic.Int64
	InFlight         atomic.Int32
	StartTime        time.Time
}

// NewMetrics creates a new Metrics instance
func NewMetrics() *Metrics {
	return &Metrics{
		StartTime: time.Now(),
	}
}

// IncRequests increments the request counter
func (m *Metrics) IncRequests() {
	m.RequestsTotal.Add(1)
}

// IncRequestErrors counts responses with a 4xx or 5xx status
func (m *Metrics) IncRequestErrors() {
	m.RequestErrors.Add(1)
}

// IncStatusChanges counts accepted status changes
func (m *Metrics) IncStatusChanges() {
	m.StatusChanges.Add(1)
}

// IncStatusRejections counts refused status changes
func (m *Metrics) IncStatusRejections() {
	m.StatusRejections.Add(1)
}

// AddRecalculations counts projects whose metrics were refreshed by the scheduler
func (m *Metrics) AddRecalculations(n int) {
	m.Recalculations.Add(int64(n))
}

// MetricsSnapshot represents a point-in-time snapshot of metrics
type MetricsSnapshot struct {
	RequestsTotal    int64     `json:"requests_total"`
	RequestErrors    int64     `json:"request_errors"`
	StatusChanges    int64     `json:"status_changes"`
	StatusRejections int64     `json:"status_rejections"`
	Recalculations   int64     `json:"recalculations"`
	InFlight         int32     `json:"in_flight"`
	StartTime        time.Time `json:"start_time"`
	Uptime           string    `json:"uptime"`
}

// GetSnapshot returns a snapshot of current metrics
func (m *Metrics) GetSnapshot() MetricsSnapshot {
	return MetricsSnapshot{
		RequestsTotal:    m.RequestsTotal.Load(),
		RequestErrors:    m.RequestErrors.Load(),
		StatusChanges:    m.StatusChanges.Load(),
		StatusRejections: m.StatusRejections.Load(),
		Recalculations:   m.Recalculations.Load(),
		InFlight:         m.InFlight.Load(),
		StartTime:        m.StartTime,
		Uptime:           time.Since(m.StartTime).String(),
	}
}
