package observability

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// BatchCollector exposes Prometheus metrics for the batch reprojection
// worker pool.
type BatchCollector struct {
	gatherer prometheus.Gatherer

	JobDuration    prometheus.Histogram
	RowsProcessed  prometheus.Counter
	RowErrors      prometheus.Counter
	WorkersRunning prometheus.Gauge
}

// NewBatchCollector registers batch metrics against the provided registerer.
func NewBatchCollector(reg prometheus.Registerer) (*BatchCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	jobHistogram := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "reproj_batch_job_duration_seconds",
		Help:    "Wall-clock duration of whole batch reprojection jobs.",
		Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60, 300},
	})
	jobHistogram, err := registerHistogram(reg, jobHistogram, "reproj_batch_job_duration_seconds")
	if err != nil {
		return nil, err
	}

	rows := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "reproj_batch_rows_total",
		Help: "Cumulative number of input rows processed by batch jobs.",
	})
	rows, err = registerCounter(reg, rows, "reproj_batch_rows_total")
	if err != nil {
		return nil, err
	}

	rowErrors := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "reproj_batch_row_errors_total",
		Help: "Cumulative number of input rows that failed to transform.",
	})
	rowErrors, err = registerCounter(reg, rowErrors, "reproj_batch_row_errors_total")
	if err != nil {
		return nil, err
	}

	workers := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "reproj_batch_workers",
		Help: "Number of worker goroutines currently transforming rows.",
	})
	workers, err = registerGauge(reg, workers, "reproj_batch_workers")
	if err != nil {
		return nil, err
	}

	return &BatchCollector{
		gatherer:       gatherer,
		JobDuration:    jobHistogram,
		RowsProcessed:  rows,
		RowErrors:      rowErrors,
		WorkersRunning: workers,
	}, nil
}

// Gatherer returns the Prometheus gatherer associated with the collector.
func (c *BatchCollector) Gatherer() prometheus.Gatherer {
	if c == nil {
		return nil
	}
	return c.gatherer
}

// ObserveJob records the duration of a completed batch job.
func (c *BatchCollector) ObserveJob(d time.Duration) {
	if c == nil || c.JobDuration == nil {
		return
	}
	c.JobDuration.Observe(d.Seconds())
}

// AddRows counts processed input rows.
func (c *BatchCollector) AddRows(n int) {
	if c == nil || c.RowsProcessed == nil || n <= 0 {
		return
	}
	c.RowsProcessed.Add(float64(n))
}

// IncRowError counts a row that failed to transform.
func (c *BatchCollector) IncRowError() {
	if c == nil || c.RowErrors == nil {
		return
	}
	c.RowErrors.Inc()
}

// SetWorkers updates the running-worker gauge.
func (c *BatchCollector) SetWorkers(count int) {
	if c == nil || c.WorkersRunning == nil {
		return
	}
	c.WorkersRunning.Set(float64(count))
}

func registerHistogram(reg prometheus.Registerer, hist prometheus.Histogram, name string) (prometheus.Histogram, error) {
	if err := reg.Register(hist); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Histogram); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return hist, nil
}

func registerCounter(reg prometheus.Registerer, counter prometheus.Counter, name string) (prometheus.Counter, error) {
	if err := reg.Register(counter); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return counter, nil
}
