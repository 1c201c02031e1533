package mlflow

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like
// Prometheus.
type MetricsCollector interface {
	// RecordCreate is called after each create operation.
	// duration is the total time taken, err is nil if successful.
	RecordCreate(duration time.Duration, err error)

	// RecordGet is called after each point lookup.
	RecordGet(duration time.Duration, err error)

	// RecordUpdate is called after each metadata mutation (tags, params,
	// finalize).
	RecordUpdate(duration time.Duration, err error)

	// RecordSearch is called after each search operation. scanned is the
	// number of candidate records hydrated, matched the number returned
	// before pagination.
	RecordSearch(scanned, matched int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordCreate(time.Duration, error)           {}
func (NoopMetricsCollector) RecordGet(time.Duration, error)              {}
func (NoopMetricsCollector) RecordUpdate(time.Duration, error)           {}
func (NoopMetricsCollector) RecordSearch(int, int, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	CreateCount      atomic.Int64
	CreateErrors     atomic.Int64
	GetCount         atomic.Int64
	GetErrors        atomic.Int64
	UpdateCount      atomic.Int64
	UpdateErrors     atomic.Int64
	SearchCount      atomic.Int64
	SearchErrors     atomic.Int64
	SearchScanned    atomic.Int64
	SearchMatched    atomic.Int64
	SearchTotalNanos atomic.Int64
}

// RecordCreate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCreate(duration time.Duration, err error) {
	b.CreateCount.Add(1)
	if err != nil {
		b.CreateErrors.Add(1)
	}
}

// RecordGet implements MetricsCollector.
func (b *BasicMetricsCollector) RecordGet(duration time.Duration, err error) {
	b.GetCount.Add(1)
	if err != nil {
		b.GetErrors.Add(1)
	}
}

// RecordUpdate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordUpdate(duration time.Duration, err error) {
	b.UpdateCount.Add(1)
	if err != nil {
		b.UpdateErrors.Add(1)
	}
}

// RecordSearch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSearch(scanned, matched int, duration time.Duration, err error) {
	b.SearchCount.Add(1)
	b.SearchScanned.Add(int64(scanned))
	b.SearchMatched.Add(int64(matched))
	b.SearchTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.SearchErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		CreateCount:    b.CreateCount.Load(),
		CreateErrors:   b.CreateErrors.Load(),
		GetCount:       b.GetCount.Load(),
		GetErrors:      b.GetErrors.Load(),
		UpdateCount:    b.UpdateCount.Load(),
		UpdateErrors:   b.UpdateErrors.Load(),
		SearchCount:    b.SearchCount.Load(),
		SearchErrors:   b.SearchErrors.Load(),
		SearchScanned:  b.SearchScanned.Load(),
		SearchMatched:  b.SearchMatched.Load(),
		SearchAvgNanos: b.getAvgSearchNanos(),
	}
}

func (b *BasicMetricsCollector) getAvgSearchNanos() int64 {
	count := b.SearchCount.Load()
	if count == 0 {
		return 0
	}
	return b.SearchTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	CreateCount    int64
	CreateErrors   int64
	GetCount       int64
	GetErrors      int64
	UpdateCount    int64
	UpdateErrors   int64
	SearchCount    int64
	SearchErrors   int64
	SearchScanned  int64
	SearchMatched  int64
	SearchAvgNanos int64
}
