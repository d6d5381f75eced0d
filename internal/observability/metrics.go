package observability

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// TransformCollector bundles Prometheus metrics for the transform service and
// provides helpers to wire them into HTTP handlers.
type TransformCollector struct {
	gatherer prometheus.Gatherer

	HTTPRequests  *prometheus.CounterVec
	HTTPDurations *prometheus.HistogramVec

	PointsTransformed *prometheus.CounterVec
	TransformErrors   *prometheus.CounterVec
	RegistrySize      prometheus.Gauge
}

// NewTransformCollector registers transform-service Prometheus metrics
// against the provided registerer, defaulting to the global Prometheus
// registry when nil.
func NewTransformCollector(reg prometheus.Registerer) (*TransformCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "reproj_http_requests_total",
		Help: "Total number of handled HTTP requests, labeled by route, method, and status code.",
	}, []string{"route", "method", "code"})
	requests, err := registerCounterVec(reg, requests, "reproj_http_requests_total")
	if err != nil {
		return nil, err
	}

	durations := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "reproj_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds.",
		Buckets: []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	}, []string{"route", "method"})
	durations, err = registerHistogramVec(reg, durations, "reproj_http_request_duration_seconds")
	if err != nil {
		return nil, err
	}

	points := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "reproj_points_transformed_total",
		Help: "Total number of coordinates run through a transform, labeled by source and target CRS.",
	}, []string{"source_crs", "target_crs"})
	points, err = registerCounterVec(reg, points, "reproj_points_transformed_total")
	if err != nil {
		return nil, err
	}

	tErrors := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "reproj_transform_errors_total",
		Help: "Total number of failed coordinate transforms, labeled by pipeline stage.",
	}, []string{"stage"})
	tErrors, err = registerCounterVec(reg, tErrors, "reproj_transform_errors_total")
	if err != nil {
		return nil, err
	}

	registrySize, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "reproj_registry_crs",
		Help: "Current number of CRS definitions in the registry.",
	}), "reproj_registry_crs")
	if err != nil {
		return nil, err
	}

	return &TransformCollector{
		gatherer:          gatherer,
		HTTPRequests:      requests,
		HTTPDurations:     durations,
		PointsTransformed: points,
		TransformErrors:   tErrors,
		RegistrySize:      registrySize,
	}, nil
}

// Middleware records request counts and durations for an HTTP route.
func (c *TransformCollector) Middleware(route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c == nil {
			next.ServeHTTP(w, r)
			return
		}
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, code: http.StatusOK}
		next.ServeHTTP(sw, r)

		if c.HTTPRequests != nil {
			c.HTTPRequests.WithLabelValues(route, r.Method, strconv.Itoa(sw.code)).Inc()
		}
		if c.HTTPDurations != nil {
			c.HTTPDurations.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
		}
	})
}

// statusWriter captures the status code a handler writes.
type statusWriter struct {
	http.ResponseWriter
	code    int
	written bool
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.written {
		w.code = code
		w.written = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	w.written = true
	return w.ResponseWriter.Write(b)
}

// Handler exposes a ready-to-use /metrics handler.
func (c *TransformCollector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// RecordPoints counts coordinates run through a transform between two CRSs.
func (c *TransformCollector) RecordPoints(sourceCRS, targetCRS string, n int) {
	if c == nil || c.PointsTransformed == nil || n <= 0 {
		return
	}
	c.PointsTransformed.WithLabelValues(sourceCRS, targetCRS).Add(float64(n))
}

// RecordTransformError counts a failed transform by pipeline stage. An empty
// stage is recorded as "unknown".
func (c *TransformCollector) RecordTransformError(stage string) {
	if c == nil || c.TransformErrors == nil {
		return
	}
	if stage == "" {
		stage = "unknown"
	}
	c.TransformErrors.WithLabelValues(stage).Inc()
}

// SetRegistrySize drives the CRS gauge; the server calls it after seeding the
// registry.
func (c *TransformCollector) SetRegistrySize(n int) {
	if c == nil || c.RegistrySize == nil {
		return
	}
	c.RegistrySize.Set(float64(n))
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogramVec(reg prometheus.Registerer, vec *prometheus.HistogramVec, name string) (*prometheus.HistogramVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}
