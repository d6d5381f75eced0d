// Package gridshift implements the tabulated datum-correction collaborator:
// regular lattices of longitude/latitude shifts, looked up by location with
// bilinear interpolation. A Shifter bundles one or more grids and satisfies
// model.GridShifter; all lookups are read-only and safe for concurrent use.
package gridshift

import (
	"fmt"
	"math"

	"github.com/geodesyworks/reproj/model"
)

const arcSecToRad = 4.84813681109535994e-6

// Grid is a single correction lattice. Cell values are the corrections, in
// radians, that move a coordinate from the grid's datum toward WGS84.
type Grid struct {
	Name string

	lonMin, latMin float64 // radians, lattice origin (south-west corner)
	dLon, dLat     float64 // radians, cell size
	nLon, nLat     int

	lonShift []float64 // radians, row-major from the south-west corner
	latShift []float64
}

// NewGrid builds a grid from a lattice description in degrees and correction
// values in arc-seconds (the unit correction tables are published in). Both
// shift slices must hold nLon*nLat values, row-major, southernmost row first.
func NewGrid(name string, lonMinDeg, latMinDeg, cellLonDeg, cellLatDeg float64, nLon, nLat int, lonShiftSec, latShiftSec []float64) (*Grid, error) {
	if nLon < 2 || nLat < 2 {
		return nil, fmt.Errorf("grid %q: lattice must be at least 2x2, got %dx%d", name, nLon, nLat)
	}
	if cellLonDeg <= 0 || cellLatDeg <= 0 {
		return nil, fmt.Errorf("grid %q: non-positive cell size", name)
	}
	if len(lonShiftSec) != nLon*nLat || len(latShiftSec) != nLon*nLat {
		return nil, fmt.Errorf("grid %q: want %d shift values per component, got %d/%d",
			name, nLon*nLat, len(lonShiftSec), len(latShiftSec))
	}

	g := &Grid{
		Name:     name,
		lonMin:   lonMinDeg * math.Pi / 180,
		latMin:   latMinDeg * math.Pi / 180,
		dLon:     cellLonDeg * math.Pi / 180,
		dLat:     cellLatDeg * math.Pi / 180,
		nLon:     nLon,
		nLat:     nLat,
		lonShift: make([]float64, len(lonShiftSec)),
		latShift: make([]float64, len(latShiftSec)),
	}
	for i := range lonShiftSec {
		g.lonShift[i] = lonShiftSec[i] * arcSecToRad
		g.latShift[i] = latShiftSec[i] * arcSecToRad
	}
	return g, nil
}

// coverageSlack absorbs the floating-point noise of the lattice fraction
// computation so a grid's own edges count as covered. A billionth of a cell
// is far below any correction table's resolution.
const coverageSlack = 1e-9

// fractions converts a location to lattice cell fractions and reports
// whether it lies inside the lattice, edges included.
func (g *Grid) fractions(lon, lat float64) (fx, fy float64, inside bool) {
	fx = (lon - g.lonMin) / g.dLon
	fy = (lat - g.latMin) / g.dLat
	inside = fx >= -coverageSlack && fx <= float64(g.nLon-1)+coverageSlack &&
		fy >= -coverageSlack && fy <= float64(g.nLat-1)+coverageSlack
	return fx, fy, inside
}

// Covers reports whether the location falls inside the lattice.
func (g *Grid) Covers(lon, lat float64) bool {
	_, _, inside := g.fractions(lon, lat)
	return inside
}

// Correction returns the bilinearly interpolated (dLon, dLat) correction in
// radians for a location, or ErrGridCoverageMiss outside the lattice.
func (g *Grid) Correction(lon, lat float64) (float64, float64, error) {
	fx, fy, inside := g.fractions(lon, lat)
	if !inside {
		return 0, 0, fmt.Errorf("grid %q: lon %.6f°, lat %.6f°: %w",
			g.Name, lon*180/math.Pi, lat*180/math.Pi, model.ErrGridCoverageMiss)
	}

	i := int(fx)
	j := int(fy)
	if i > g.nLon-2 {
		i = g.nLon - 2
	}
	if j > g.nLat-2 {
		j = g.nLat - 2
	}
	tx := fx - float64(i)
	ty := fy - float64(j)

	idx := j*g.nLon + i
	dLon := bilinear(g.lonShift[idx], g.lonShift[idx+1], g.lonShift[idx+g.nLon], g.lonShift[idx+g.nLon+1], tx, ty)
	dLat := bilinear(g.latShift[idx], g.latShift[idx+1], g.latShift[idx+g.nLon], g.latShift[idx+g.nLon+1], tx, ty)
	return dLon, dLat, nil
}

func bilinear(sw, se, nw, ne, tx, ty float64) float64 {
	south := sw + (se-sw)*tx
	north := nw + (ne-nw)*tx
	return south + (north-south)*ty
}
