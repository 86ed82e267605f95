package api

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewMetrics(t *testing.T) {
	m := NewMetrics()

	snap := m.GetSnapshot()
	assert.Zero(t, snap.RequestsTotal)
	assert.Zero(t, snap.StatusChanges)
	assert.Zero(t, snap.InFlight)
	assert.WithinDuration(t, time.Now(), m.StartTime, time.Second)
	assert.NotEmpty(t, snap.Uptime)
}

func TestMetricsConcurrentUpdates(t *testing.T) {
	m := NewMetrics()

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.IncRequests()
			m.IncStatusChanges()
			m.IncStatusRejections()
			m.AddRecalculations(2)
		}()
	}
	wg.Wait()

	snap := m.GetSnapshot()
	assert.EqualValues(t, 50, snap.RequestsTotal)
	assert.EqualValues(t, 50, snap.StatusChanges)
	assert.EqualValues(t, 50, snap.StatusRejections)
	assert.EqualValues(t, 100, snap.Recalculations)
}
