// Package api is the HTTP JSON surface of the transform service: a batch
// transform endpoint, a CRS catalog listing, and a health probe, wrapped in
// request-id, tracing, and metrics middleware.
package api

import (
	"net/http"
	"sync"

	"github.com/geodesyworks/reproj/core"
	"github.com/geodesyworks/reproj/internal/logging"
	"github.com/geodesyworks/reproj/internal/observability"
	"github.com/geodesyworks/reproj/registry"
)

// Server holds the service dependencies shared by all handlers.
type Server struct {
	registry  *registry.Registry
	collector *observability.TransformCollector
	log       logging.Logger

	// transforms caches built pipelines per (source, target) pair. A
	// Transform is immutable and safe to share, so building one per
	// request would only waste the strategy work.
	mu         sync.RWMutex
	transforms map[transformKey]*core.Transform
}

type transformKey struct {
	src, tgt string
}

// NewServer builds a Server. A nil collector disables metrics; a nil logger
// drops logs.
func NewServer(reg *registry.Registry, collector *observability.TransformCollector, log logging.Logger) *Server {
	if log == nil {
		log = logging.Noop()
	}
	return &Server{
		registry:   reg,
		collector:  collector,
		log:        log,
		transforms: make(map[transformKey]*core.Transform),
	}
}

// Routes assembles the service mux with the middleware chain applied per
// route.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/v1/transform", s.wrap("/v1/transform", http.HandlerFunc(s.handleTransform)))
	mux.Handle("/v1/crs", s.wrap("/v1/crs", http.HandlerFunc(s.handleListCRS)))
	mux.Handle("/healthz", s.wrap("/healthz", http.HandlerFunc(s.handleHealthz)))
	if s.collector != nil {
		mux.Handle("/metrics", s.collector.Handler())
	}
	return mux
}

func (s *Server) wrap(route string, h http.Handler) http.Handler {
	h = TracingMiddleware(route, h)
	h = s.collector.Middleware(route, h)
	h = RequestIDMiddleware(s.log, h)
	return h
}

// transformFor returns the cached pipeline between two registered CRS names,
// building and caching it on first use.
func (s *Server) transformFor(srcName, tgtName string) (*core.Transform, error) {
	key := transformKey{src: srcName, tgt: tgtName}

	s.mu.RLock()
	tr, ok := s.transforms[key]
	s.mu.RUnlock()
	if ok {
		return tr, nil
	}

	src, ok := s.registry.Get(srcName)
	if !ok {
		return nil, &unknownCRSError{name: srcName}
	}
	tgt, ok := s.registry.Get(tgtName)
	if !ok {
		return nil, &unknownCRSError{name: tgtName}
	}

	tr, err := core.NewTransform(src, tgt)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if cached, ok := s.transforms[key]; ok {
		tr = cached
	} else {
		s.transforms[key] = tr
	}
	s.mu.Unlock()
	return tr, nil
}

type unknownCRSError struct {
	name string
}

func (e *unknownCRSError) Error() string { return "unknown CRS " + e.name }
