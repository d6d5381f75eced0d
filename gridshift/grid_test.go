package gridshift

import (
	"errors"
	"math"
	"testing"

	"github.com/geodesyworks/reproj/model"
)

const degToRad = math.Pi / 180

// rampGrid has a longitude shift growing eastward and a latitude shift
// growing northward, so interpolation errors show up as position-dependent
// bias.
func rampGrid(t *testing.T) *Grid {
	t.Helper()
	const nLon, nLat = 5, 4
	lonSec := make([]float64, nLon*nLat)
	latSec := make([]float64, nLon*nLat)
	for j := 0; j < nLat; j++ {
		for i := 0; i < nLon; i++ {
			lonSec[j*nLon+i] = float64(i)     // 0..4 arcsec west to east
			latSec[j*nLon+i] = 2 * float64(j) // 0..6 arcsec south to north
		}
	}
	g, err := NewGrid("ramp", -10, 40, 1, 1, nLon, nLat, lonSec, latSec)
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	return g
}

func TestNewGridValidation(t *testing.T) {
	shifts := make([]float64, 4)
	cases := []struct {
		name       string
		nLon, nLat int
		cell       float64
		lon, lat   []float64
	}{
		{"too few columns", 1, 4, 1, shifts, shifts},
		{"too few rows", 4, 1, 1, shifts, shifts},
		{"zero cell size", 2, 2, 0, shifts, shifts},
		{"short shift slice", 3, 3, 1, shifts, shifts},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewGrid("bad", 0, 0, tc.cell, tc.cell, tc.nLon, tc.nLat, tc.lon, tc.lat)
			if err == nil {
				t.Error("invalid lattice accepted")
			}
		})
	}
}

func TestGridCorrectionAtNodes(t *testing.T) {
	g := rampGrid(t)
	// Node (i=2, j=1) sits at lon -8°, lat 41° and tabulates 2″/2″.
	dLon, dLat, err := g.Correction(-8*degToRad, 41*degToRad)
	if err != nil {
		t.Fatalf("Correction: %v", err)
	}
	if math.Abs(dLon-2*arcSecToRad) > 1e-15 || math.Abs(dLat-2*arcSecToRad) > 1e-15 {
		t.Errorf("node correction = (%v, %v), want (2″, 2″) in radians", dLon, dLat)
	}
}

func TestGridCorrectionBilinearMidpoint(t *testing.T) {
	g := rampGrid(t)
	// Halfway between four nodes both ramps interpolate to their means.
	dLon, dLat, err := g.Correction(-7.5*degToRad, 41.5*degToRad)
	if err != nil {
		t.Fatalf("Correction: %v", err)
	}
	if math.Abs(dLon-2.5*arcSecToRad) > 1e-15 {
		t.Errorf("midpoint dLon = %v, want 2.5″ in radians", dLon)
	}
	if math.Abs(dLat-3*arcSecToRad) > 1e-15 {
		t.Errorf("midpoint dLat = %v, want 3″ in radians", dLat)
	}
}

func TestGridCoversEdges(t *testing.T) {
	g := rampGrid(t)
	cases := []struct {
		lon, lat float64
		want     bool
	}{
		{-10, 40, true},  // south-west corner
		{-6, 43, true},   // north-east corner
		{-8, 41.7, true}, // interior
		{-10.001, 41, false},
		{-6, 43.001, false},
		{120, 10, false},
	}
	for _, tc := range cases {
		if got := g.Covers(tc.lon*degToRad, tc.lat*degToRad); got != tc.want {
			t.Errorf("Covers(%v°, %v°) = %v, want %v", tc.lon, tc.lat, got, tc.want)
		}
	}
}

func TestGridCorrectionAtNorthEastCorner(t *testing.T) {
	g := rampGrid(t)
	// The lattice's own far corner must interpolate, not miss.
	dLon, dLat, err := g.Correction(-6*degToRad, 43*degToRad)
	if err != nil {
		t.Fatalf("Correction at corner: %v", err)
	}
	if math.Abs(dLon-4*arcSecToRad) > 1e-15 || math.Abs(dLat-6*arcSecToRad) > 1e-15 {
		t.Errorf("corner correction = (%v, %v), want (4″, 6″) in radians", dLon, dLat)
	}
}

func TestGridCorrectionMiss(t *testing.T) {
	g := rampGrid(t)
	_, _, err := g.Correction(0, 0)
	if !errors.Is(err, model.ErrGridCoverageMiss) {
		t.Errorf("Correction outside lattice: error = %v, want ErrGridCoverageMiss", err)
	}
}
