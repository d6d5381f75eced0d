// Package proj implements the projection families the transform pipeline
// consumes through the model.Projection interface. Each family maps between
// Greenwich-relative geographic radians and planar units; shared parameter
// handling (central meridian, false origin, scale, units, axis order, prime
// meridian) lives in the embedded base.
package proj

import (
	"fmt"

	"github.com/geodesyworks/reproj/model"
)

// Params are the parameters shared by every projected CRS definition. Angles
// are given in degrees, as published in CRS catalogs; distances in the
// projection's unit. Zero values mean: scale factor 1, metre units, canonical
// east-north-up axes, Greenwich meridian.
type Params struct {
	Ellipsoid model.Ellipsoid

	// CentralMeridianDeg is the longitude of origin, degrees east of the
	// prime meridian.
	CentralMeridianDeg float64
	// LatitudeOriginDeg is the latitude of origin in degrees.
	LatitudeOriginDeg float64

	FalseEasting  float64
	FalseNorthing float64
	ScaleFactor   float64

	// UnitsPerMetre scales projected output into the CRS's unit
	// (e.g. 1/0.3048 for feet).
	UnitsPerMetre float64

	Axes     model.AxisOrder
	Meridian model.PrimeMeridian
}

// base carries the resolved shared parameters and implements the metadata
// half of model.Projection.
type base struct {
	ellipsoid model.Ellipsoid
	lon0      float64 // radians
	lat0      float64 // radians
	x0        float64
	y0        float64
	k0        float64
	axes      model.AxisOrder
	meridian  model.PrimeMeridian

	// totalScale converts dimensionless projected values (units of the
	// semi-major axis) into the CRS's planar unit.
	totalScale float64
}

func newBase(p Params) (base, error) {
	if !p.Ellipsoid.IsValid() {
		return base{}, fmt.Errorf("projection: invalid ellipsoid (a=%g, e2=%g)", p.Ellipsoid.A, p.Ellipsoid.E2)
	}
	k0 := p.ScaleFactor
	if k0 == 0 {
		k0 = 1
	}
	if k0 < 0 {
		return base{}, fmt.Errorf("projection: negative scale factor %g", k0)
	}
	upm := p.UnitsPerMetre
	if upm == 0 {
		upm = 1
	}
	meridian := p.Meridian
	if meridian.Name == "" {
		meridian = model.Greenwich
	}
	return base{
		ellipsoid:  p.Ellipsoid,
		lon0:       p.CentralMeridianDeg * degToRad,
		lat0:       p.LatitudeOriginDeg * degToRad,
		x0:         p.FalseEasting,
		y0:         p.FalseNorthing,
		k0:         k0,
		axes:       p.Axes,
		meridian:   meridian,
		totalScale: p.Ellipsoid.A * upm,
	}, nil
}

func (b *base) Axes() model.AxisOrder              { return b.axes }
func (b *base) PrimeMeridian() model.PrimeMeridian { return b.meridian }
func (b *base) Geographic() bool                   { return false }

// Ellipsoid returns the ellipsoid the projection formulas work on. It may
// differ from the datum's ellipsoid (spherical web mercator on a WGS84
// datum being the canonical case).
func (b *base) Ellipsoid() model.Ellipsoid { return b.ellipsoid }

// finishForward scales a dimensionless projected coordinate into planar
// units and applies the false origin.
func (b *base) finishForward(x, y float64) (float64, float64) {
	return b.totalScale*x + b.x0, b.totalScale*y + b.y0
}

// startInverse removes the false origin and rescales planar units back to
// dimensionless values.
func (b *base) startInverse(x, y float64) (float64, float64) {
	return (x - b.x0) / b.totalScale, (y - b.y0) / b.totalScale
}
