package core

import (
	"fmt"
	"math"

	"github.com/geodesyworks/reproj/model"
)

const (
	halfPi = math.Pi / 2

	// Latitudes may exceed ±90° by a sliver of numerical noise; anything
	// beyond this bound is treated as a genuine domain violation.
	latitudeSlack = 1.001

	geodeticTolerance  = 1e-12
	geodeticMaxIter    = 15
	polarAxisThreshold = 1e-9

	// cos 67.5°, the crossover between the two height recovery forms.
	cos67P5 = 0.38268343236508977
)

// GeocentricConverter maps between geodetic (lon, lat, height) and 3-D
// geocentric Cartesian coordinates on a fixed working ellipsoid. Stateless
// per ellipsoid after construction and safe for concurrent use.
type GeocentricConverter struct {
	a  float64
	b  float64
	e2 float64
}

// NewGeocentricConverter builds a converter for the given ellipsoid.
func NewGeocentricConverter(e model.Ellipsoid) *GeocentricConverter {
	return &GeocentricConverter{a: e.A, b: e.B(), e2: e.E2}
}

// OverrideWithWGS84 swaps the working ellipsoid for WGS84's. The transform
// strategy does this when a side's datum goes through a grid shift (grid
// corrections land on WGS84 directly) or lacks a direct WGS84 path while the
// other side is projected.
func (g *GeocentricConverter) OverrideWithWGS84() {
	e := model.WGS84Ellipsoid
	g.a, g.b, g.e2 = e.A, e.B(), e.E2
}

// GeodeticToGeocentric converts a geographic-radian coordinate to geocentric
// XYZ metres, in place. An absent height is treated as zero. Latitudes
// marginally past ±90° are clamped; anything further out is rejected.
func (g *GeocentricConverter) GeodeticToGeocentric(c *model.Coordinate) error {
	lon, lat := c.X, c.Y
	var h float64
	if c.HasZ() {
		h = c.Z
	}

	switch {
	case lat < -halfPi && lat > -latitudeSlack*halfPi:
		lat = -halfPi
	case lat > halfPi && lat < latitudeSlack*halfPi:
		lat = halfPi
	case lat < -halfPi || lat > halfPi:
		return fmt.Errorf("latitude %g rad: %w", lat, model.ErrOutOfProjectionDomain)
	}
	if lon > math.Pi {
		lon -= 2 * math.Pi
	}

	sinLat := math.Sin(lat)
	cosLat := math.Cos(lat)
	rn := g.a / math.Sqrt(1-g.e2*sinLat*sinLat)

	c.X = (rn + h) * cosLat * math.Cos(lon)
	c.Y = (rn + h) * cosLat * math.Sin(lon)
	c.Z = (rn*(1-g.e2) + h) * sinLat
	return nil
}

// GeocentricToGeodetic converts geocentric XYZ metres back to geographic
// radians plus an ellipsoidal height, in place. Latitude is recovered
// iteratively to within 1e-12 rad; failing to converge inside the iteration
// bound is reported, never silently truncated.
func (g *GeocentricConverter) GeocentricToGeodetic(c *model.Coordinate) error {
	x, y, z := c.X, c.Y, c.Z
	p := math.Hypot(x, y)

	if p < polarAxisThreshold {
		// On the polar axis the longitude is arbitrary.
		lat := halfPi
		if z < 0 {
			lat = -halfPi
		}
		c.X = 0
		c.Y = lat
		c.Z = math.Abs(z) - g.b
		return nil
	}

	lon := math.Atan2(y, x)
	lat := math.Atan2(z, p*(1-g.e2))

	for i := 0; i < geodeticMaxIter; i++ {
		sinLat := math.Sin(lat)
		cosLat := math.Cos(lat)
		rn := g.a / math.Sqrt(1-g.e2*sinLat*sinLat)

		// The p/cos form loses precision as cos approaches zero; past 67.5°
		// the z/sin form is the better-conditioned of the two.
		var h float64
		if math.Abs(cosLat) > cos67P5 {
			h = p/cosLat - rn
		} else {
			h = z/sinLat - rn*(1-g.e2)
		}

		next := math.Atan2(z, p*(1-g.e2*rn/(rn+h)))
		if math.Abs(next-lat) < geodeticTolerance {
			c.X = lon
			c.Y = next
			c.Z = h
			return nil
		}
		lat = next
	}
	return fmt.Errorf("geocentric to geodetic after %d iterations: %w", geodeticMaxIter, model.ErrNonConvergence)
}
