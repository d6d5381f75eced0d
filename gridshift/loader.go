package gridshift

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// internal JSON shape, unexported so the on-disk format can evolve.
type gridJSON struct {
	Name        string    `json:"name"`
	LonMinDeg   float64   `json:"lon_min_deg"`
	LatMinDeg   float64   `json:"lat_min_deg"`
	CellLonDeg  float64   `json:"cell_lon_deg"`
	CellLatDeg  float64   `json:"cell_lat_deg"`
	NLon        int       `json:"n_lon"`
	NLat        int       `json:"n_lat"`
	LonShiftSec []float64 `json:"lon_shift_arcsec"`
	LatShiftSec []float64 `json:"lat_shift_arcsec"`
}

// LoadGrid reads one correction lattice from a JSON stream. Loading happens
// before any Transform referencing the grid is built; the per-point path
// never touches I/O.
func LoadGrid(r io.Reader) (*Grid, error) {
	var payload gridJSON
	dec := json.NewDecoder(r)
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("LoadGrid: decode failed: %w", err)
	}
	g, err := NewGrid(payload.Name,
		payload.LonMinDeg, payload.LatMinDeg,
		payload.CellLonDeg, payload.CellLatDeg,
		payload.NLon, payload.NLat,
		payload.LonShiftSec, payload.LatShiftSec)
	if err != nil {
		return nil, fmt.Errorf("LoadGrid: %w", err)
	}
	return g, nil
}

// LoadGridFile reads a correction lattice from a JSON file.
func LoadGridFile(path string) (*Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("LoadGridFile: %w", err)
	}
	defer f.Close()
	return LoadGrid(f)
}
