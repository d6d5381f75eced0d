package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/geodesyworks/reproj/core"
	"github.com/geodesyworks/reproj/internal/logging"
	"github.com/geodesyworks/reproj/model"
)

// TransformRequest is the body of POST /v1/transform. Each point is [x, y]
// or [x, y, z], in source CRS units.
type TransformRequest struct {
	SourceCRS string      `json:"source_crs"`
	TargetCRS string      `json:"target_crs"`
	Points    [][]float64 `json:"points"`
}

// PointError reports one point that could not be transformed.
type PointError struct {
	Index   int    `json:"index"`
	Stage   string `json:"stage,omitempty"`
	Message string `json:"message"`
}

// TransformResponse mirrors the request shape. Points that failed are null
// and carry an entry in Errors.
type TransformResponse struct {
	SourceCRS string       `json:"source_crs"`
	TargetCRS string       `json:"target_crs"`
	Points    [][]float64  `json:"points"`
	Errors    []PointError `json:"errors,omitempty"`
}

const maxPointsPerRequest = 100000

func (s *Server) handleTransform(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logging.LoggerFromContext(ctx)
	if log == nil {
		log = s.log
	}

	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "POST only")
		return
	}

	var req TransformRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body: "+err.Error())
		return
	}
	if req.SourceCRS == "" || req.TargetCRS == "" {
		writeError(w, http.StatusBadRequest, "source_crs and target_crs are required")
		return
	}
	if len(req.Points) == 0 {
		writeError(w, http.StatusBadRequest, "points must not be empty")
		return
	}
	if len(req.Points) > maxPointsPerRequest {
		writeError(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("at most %d points per request, got %d", maxPointsPerRequest, len(req.Points)))
		return
	}

	tr, err := s.transformFor(req.SourceCRS, req.TargetCRS)
	if err != nil {
		var unknown *unknownCRSError
		if errors.As(err, &unknown) {
			writeError(w, http.StatusNotFound, unknown.Error())
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp := TransformResponse{
		SourceCRS: req.SourceCRS,
		TargetCRS: req.TargetCRS,
		Points:    make([][]float64, len(req.Points)),
	}

	var c model.Coordinate
	for i, p := range req.Points {
		switch len(p) {
		case 2:
			c = model.NewCoordinate2D(p[0], p[1])
		case 3:
			c = model.NewCoordinate(p[0], p[1], p[2])
		default:
			resp.Errors = append(resp.Errors, PointError{
				Index:   i,
				Message: fmt.Sprintf("point must have 2 or 3 values, got %d", len(p)),
			})
			continue
		}

		out, err := tr.Apply(c)
		if err != nil {
			pe := PointError{Index: i, Message: err.Error()}
			var se *core.StageError
			if errors.As(err, &se) {
				pe.Stage = se.Stage
			}
			resp.Errors = append(resp.Errors, pe)
			s.collector.RecordTransformError(pe.Stage)
			continue
		}

		if out.HasZ() {
			resp.Points[i] = []float64{out.X, out.Y, out.Z}
		} else {
			resp.Points[i] = []float64{out.X, out.Y}
		}
	}

	s.collector.RecordPoints(req.SourceCRS, req.TargetCRS, len(req.Points)-len(resp.Errors))
	if len(resp.Errors) > 0 {
		log.Warn(ctx, "batch transform finished with point failures",
			logging.String("source_crs", req.SourceCRS),
			logging.String("target_crs", req.TargetCRS),
			logging.Int("points", len(req.Points)),
			logging.Int("failed", len(resp.Errors)),
		)
	} else {
		log.Debug(ctx, "batch transform finished",
			logging.String("source_crs", req.SourceCRS),
			logging.String("target_crs", req.TargetCRS),
			logging.Int("points", len(req.Points)),
		)
	}

	writeJSON(w, http.StatusOK, resp)
}

// CRSListResponse is the body of GET /v1/crs.
type CRSListResponse struct {
	Count int      `json:"count"`
	Names []string `json:"names"`
}

func (s *Server) handleListCRS(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "GET only")
		return
	}
	names := s.registry.Names()
	writeJSON(w, http.StatusOK, CRSListResponse{Count: len(names), Names: names})
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
