// Package extensibility holds InitRunner implementations that decorate the
// init steps of instantiation.
package extensibility

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/comalice/objectx/internal/core"
)

var (
	logger   *zap.Logger
	loggerMu sync.RWMutex
)

// Logger returns the package logger. It is a no-op logger until SetLogger is called.
func Logger() *zap.Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

// SetLogger replaces the package logger. A nil logger restores the no-op default.
func SetLogger(l *zap.Logger) {
	loggerMu.Lock()
	logger = l
	loggerMu.Unlock()
}

// DefaultInitRunner invokes init routines directly.
type DefaultInitRunner struct{}

// RunInit calls fn with self and args.
func (r *DefaultInitRunner) RunInit(_ core.InitStep, fn core.InitFunc, self *core.Object, args []any) error {
	return fn(self, args...)
}

// LoggingInitRunner wraps an InitRunner and logs every step.
type LoggingInitRunner struct {
	inner core.InitRunner
	log   *zap.Logger
}

// NewLoggingInitRunner creates a LoggingInitRunner. A nil inner runner falls
// back to DefaultInitRunner; a nil logger falls back to the package logger.
func NewLoggingInitRunner(inner core.InitRunner, log *zap.Logger) *LoggingInitRunner {
	if inner == nil {
		inner = &DefaultInitRunner{}
	}
	if log == nil {
		log = Logger()
	}
	return &LoggingInitRunner{inner: inner, log: log.Named("init")}
}

// RunInit logs before and after delegating to the inner runner.
func (r *LoggingInitRunner) RunInit(step core.InitStep, fn core.InitFunc, self *core.Object, args []any) error {
	fields := stepFields(step)
	r.log.Debug("running init step", append(fields, zap.Int("args", len(args)))...)
	start := time.Now()
	err := r.inner.RunInit(step, fn, self, args)
	fields = append(fields, zap.Duration("elapsed", time.Since(start)))
	if err != nil {
		r.log.Warn("init step failed", append(fields, zap.Error(err))...)
		return err
	}
	r.log.Debug("init step completed", fields...)
	return nil
}

func stepFields(step core.InitStep) []zap.Field {
	fields := []zap.Field{
		zap.String("kind", string(step.Kind)),
		zap.String("label", step.Label),
	}
	if step.Recipe != nil {
		fields = append(fields, zap.String("recipe", step.Recipe.Name()))
	}
	if step.Kind == core.StepMixin {
		fields = append(fields, zap.Int("index", step.Index))
	}
	return fields
}

// Metrics holds the collectors a MetricsInitRunner reports to.
type Metrics struct {
	Steps    *prometheus.CounterVec
	Failures *prometheus.CounterVec
	Duration *prometheus.HistogramVec
}

// NewMetrics creates the init-step collectors and registers them with reg.
// A nil reg leaves the collectors unregistered.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Steps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "objectx",
			Subsystem: "init",
			Name:      "steps_total",
			Help:      "Init steps executed, by recipe and step kind",
		}, []string{"recipe", "kind"}),
		Failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "objectx",
			Subsystem: "init",
			Name:      "failures_total",
			Help:      "Init steps that returned an error, by recipe and step kind",
		}, []string{"recipe", "kind"}),
		Duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "objectx",
			Subsystem: "init",
			Name:      "step_duration_seconds",
			Help:      "Init step latency in seconds",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
		}, []string{"kind"}),
	}
	if reg == nil {
		return m, nil
	}
	for _, c := range []prometheus.Collector{m.Steps, m.Failures, m.Duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// MetricsInitRunner wraps an InitRunner and records step counts and latency.
type MetricsInitRunner struct {
	inner   core.InitRunner
	metrics *Metrics
}

// NewMetricsInitRunner creates a MetricsInitRunner. A nil inner runner falls
// back to DefaultInitRunner; nil metrics get unregistered collectors.
func NewMetricsInitRunner(inner core.InitRunner, metrics *Metrics) *MetricsInitRunner {
	if inner == nil {
		inner = &DefaultInitRunner{}
	}
	if metrics == nil {
		metrics, _ = NewMetrics(nil)
	}
	return &MetricsInitRunner{inner: inner, metrics: metrics}
}

// RunInit times the inner runner and records the outcome.
func (r *MetricsInitRunner) RunInit(step core.InitStep, fn core.InitFunc, self *core.Object, args []any) error {
	recipe := step.Label
	if step.Recipe != nil {
		recipe = step.Recipe.Name()
	}
	kind := string(step.Kind)

	start := time.Now()
	err := r.inner.RunInit(step, fn, self, args)
	r.metrics.Duration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
	r.metrics.Steps.WithLabelValues(recipe, kind).Inc()
	if err != nil {
		r.metrics.Failures.WithLabelValues(recipe, kind).Inc()
	}
	return err
}
