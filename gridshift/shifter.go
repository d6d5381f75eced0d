package gridshift

import (
	"errors"
	"fmt"
	"math"

	"github.com/geodesyworks/reproj/model"
)

const (
	inverseTolerance = 1e-12
	inverseMaxTry    = 9
)

// Shifter looks corrections up across an ordered list of grids (first
// covering grid wins, so denser regional grids go before coarse national
// ones) and applies them to geographic-radian coordinates. It implements
// model.GridShifter.
type Shifter struct {
	grids []*Grid
}

// NewShifter bundles grids into a lookup service.
func NewShifter(grids ...*Grid) (*Shifter, error) {
	if len(grids) == 0 {
		return nil, errors.New("gridshift: shifter needs at least one grid")
	}
	for i, g := range grids {
		if g == nil {
			return nil, fmt.Errorf("gridshift: grid %d is nil", i)
		}
	}
	return &Shifter{grids: append([]*Grid(nil), grids...)}, nil
}

// LookupCorrection returns the (dLon, dLat) correction in radians from the
// first grid covering the location.
func (s *Shifter) LookupCorrection(lon, lat float64) (float64, float64, error) {
	for _, g := range s.grids {
		if g.Covers(lon, lat) {
			return g.Correction(lon, lat)
		}
	}
	return 0, 0, fmt.Errorf("lon %.6f°, lat %.6f° covered by none of %d grids: %w",
		lon*180/math.Pi, lat*180/math.Pi, len(s.grids), model.ErrGridCoverageMiss)
}

// Shift moves a coordinate from the grids' datum toward WGS84 in place: the
// correction at the source location is applied directly.
func (s *Shifter) Shift(c *model.Coordinate) error {
	dLon, dLat, err := s.LookupCorrection(c.X, c.Y)
	if err != nil {
		return err
	}
	c.X += dLon
	c.Y += dLat
	return nil
}

// InverseShift moves a coordinate from WGS84 back to the grids' datum in
// place. The correction is tabulated at source locations, so the inverse
// must iterate: find the point whose forward shift lands on the input.
func (s *Shifter) InverseShift(c *model.Coordinate) error {
	lon, lat := c.X, c.Y

	dLon, dLat, err := s.LookupCorrection(lon, lat)
	if err != nil {
		return err
	}
	gLon := lon - dLon
	gLat := lat - dLat

	for i := 0; i < inverseMaxTry; i++ {
		dLon, dLat, err = s.LookupCorrection(gLon, gLat)
		if err != nil {
			return err
		}
		errLon := gLon + dLon - lon
		errLat := gLat + dLat - lat
		if math.Abs(errLon) < inverseTolerance && math.Abs(errLat) < inverseTolerance {
			c.X = gLon
			c.Y = gLat
			return nil
		}
		gLon -= errLon
		gLat -= errLat
	}
	return fmt.Errorf("inverse grid shift after %d iterations: %w", inverseMaxTry, model.ErrNonConvergence)
}
