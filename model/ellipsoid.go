package model

import "math"

// Tolerances for the approximate-equality predicate. They are deliberately
// loose enough that reference ellipsoids which are numerically near-identical
// (GRS80 vs WGS84, whose eccentricities differ by ~3e-11) compare equal, since
// that comparison decides whether a datum conversion can skip the geocentric
// detour entirely.
const (
	ellipsoidRadiusTolerance = 1e-6
	ellipsoidE2Tolerance     = 5e-11
)

// Ellipsoid holds the geometric parameters of a reference ellipsoid.
// Immutable after construction.
type Ellipsoid struct {
	Name string

	// A is the semi-major (equatorial) axis in metres.
	A float64
	// E2 is the first eccentricity squared.
	E2 float64
}

// NewEllipsoid builds an ellipsoid from a semi-major axis and an inverse
// flattening. An inverse flattening of zero denotes a sphere.
func NewEllipsoid(name string, a, invFlattening float64) Ellipsoid {
	var e2 float64
	if invFlattening != 0 {
		f := 1 / invFlattening
		e2 = 2*f - f*f
	}
	return Ellipsoid{Name: name, A: a, E2: e2}
}

// B returns the semi-minor (polar) axis in metres.
func (e Ellipsoid) B() float64 {
	return e.A * math.Sqrt(1-e.E2)
}

// IsSphere reports whether the ellipsoid has zero eccentricity.
func (e Ellipsoid) IsSphere() bool {
	return e.E2 == 0
}

// IsValid reports whether the parameters describe a usable ellipsoid.
func (e Ellipsoid) IsValid() bool {
	return e.A > 0 && e.E2 >= 0 && e.E2 < 1
}

// Equal is the approximate-equality predicate over ellipsoid parameters.
// Names are ignored: only geometry decides.
func (e Ellipsoid) Equal(other Ellipsoid) bool {
	return math.Abs(e.A-other.A) < ellipsoidRadiusTolerance &&
		math.Abs(e.E2-other.E2) < ellipsoidE2Tolerance
}

// Commonly used reference ellipsoids.
var (
	WGS84Ellipsoid      = NewEllipsoid("WGS 84", 6378137.0, 298.257223563)
	GRS80Ellipsoid      = NewEllipsoid("GRS 1980", 6378137.0, 298.257222101)
	WGS72Ellipsoid      = NewEllipsoid("WGS 72", 6378135.0, 298.26)
	Airy1830Ellipsoid   = NewEllipsoid("Airy 1830", 6377563.396, 299.3249646)
	Intl1924Ellipsoid   = NewEllipsoid("International 1924", 6378388.0, 297.0)
	Bessel1841Ellipsoid = NewEllipsoid("Bessel 1841", 6377397.155, 299.1528128)
	Clarke1866Ellipsoid = NewEllipsoid("Clarke 1866", 6378206.4, 294.9786982)
	KrassovskyEllipsoid = NewEllipsoid("Krassovsky 1940", 6378245.0, 298.3)
	SphereEllipsoid     = NewEllipsoid("Sphere", 6371000.0, 0)

	// WebSphereEllipsoid is the WGS84-radius sphere used by spherical web
	// mercator tilesets.
	WebSphereEllipsoid = NewEllipsoid("WGS 84 auxiliary sphere", 6378137.0, 0)
)
