package mlflow

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/time/rate"
)

// RunProvider resolves run ids when models are created from a tracked run.
// Stores that do not track runs can leave it unset; source run ids are then
// stored without validation.
type RunProvider interface {
	// RunExists reports whether a run id is known.
	RunExists(ctx context.Context, runID string) (bool, error)
}

type options struct {
	logger             *Logger
	metricsCollector   MetricsCollector
	now                func() time.Time
	runProvider        RunProvider
	scanLimiter        *rate.Limiter
	hydrateConcurrency int
}

// Option configures store constructor behavior.
type Option func(*options)

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := mlflow.NewJSONLogger(slog.LevelInfo)
//	store, _ := mlflow.NewFileStore(ctx, root, mlflow.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithMetricsCollector configures a metrics collector for monitoring
// operations. Pass nil to disable metrics collection.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithClock overrides the wall clock. Tests use it to pin timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// WithRunProvider wires a run registry so source_run_id values on new
// models are validated against known runs.
func WithRunProvider(p RunProvider) Option {
	return func(o *options) {
		o.runProvider = p
	}
}

// WithScanLimiter throttles record hydration during searches. Useful when
// the backing store is a rate-limited object store.
func WithScanLimiter(l *rate.Limiter) Option {
	return func(o *options) {
		o.scanLimiter = l
	}
}

// WithHydrateConcurrency bounds how many records a search hydrates in
// parallel. Values below 1 fall back to the default.
func WithHydrateConcurrency(n int) Option {
	return func(o *options) {
		o.hydrateConcurrency = n
	}
}

const defaultHydrateConcurrency = 8

func applyOptions(optFns []Option) options {
	o := options{
		logger:             NoopLogger(),
		metricsCollector:   NoopMetricsCollector{},
		now:                time.Now,
		hydrateConcurrency: defaultHydrateConcurrency,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	if o.metricsCollector == nil {
		o.metricsCollector = NoopMetricsCollector{}
	}
	if o.now == nil {
		o.now = time.Now
	}
	if o.hydrateConcurrency < 1 {
		o.hydrateConcurrency = defaultHydrateConcurrency
	}
	return o
}
