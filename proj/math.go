package proj

import (
	"fmt"
	"math"

	"github.com/geodesyworks/reproj/model"
)

const (
	halfPi  = math.Pi / 2
	quartPi = math.Pi / 4
	twoPi   = 2 * math.Pi

	eps10 = 1e-10

	degToRad = math.Pi / 180
	radToDeg = 180 / math.Pi
)

// adjlon wraps a longitude into [-π, π], leaving in-range values (the
// boundaries included) untouched.
func adjlon(lon float64) float64 {
	for lon > math.Pi {
		lon -= twoPi
	}
	for lon < -math.Pi {
		lon += twoPi
	}
	return lon
}

// tsfn computes the function t of the isometric latitude, used by conformal
// projections (Mercator, Lambert Conformal Conic).
func tsfn(phi, sinphi, e float64) float64 {
	sinphi *= e
	return math.Tan(0.5*(halfPi-phi)) /
		math.Pow((1-sinphi)/(1+sinphi), 0.5*e)
}

// msfn computes the radius of the parallel of latitude phi, divided by the
// semi-major axis.
func msfn(sinphi, cosphi, es float64) float64 {
	return cosphi / math.Sqrt(1-es*sinphi*sinphi)
}

// phi2 recovers latitude from the conformal function value ts by fixed-point
// iteration.
func phi2(ts, e float64) (float64, error) {
	const maxIter = 15

	eccnth := 0.5 * e
	phi := halfPi - 2*math.Atan(ts)
	for i := 0; i < maxIter; i++ {
		con := e * math.Sin(phi)
		dphi := halfPi - 2*math.Atan(ts*math.Pow((1-con)/(1+con), eccnth)) - phi
		phi += dphi
		if math.Abs(dphi) <= eps10 {
			return phi, nil
		}
	}
	return 0, fmt.Errorf("conformal latitude after %d iterations: %w", maxIter, model.ErrNonConvergence)
}

// Meridional arc coefficients.
const (
	c00 = 1.0
	c02 = 0.25
	c04 = 0.046875
	c06 = 0.01953125
	c08 = 0.01068115234375
	c22 = 0.75
	c44 = 0.46875
	c46 = 0.01302083333333333333
	c48 = 0.00712076822916666666
	c66 = 0.36458333333333333333
	c68 = 0.00569661458333333333
	c88 = 0.3076171875
)

// enfn precomputes the meridional arc series coefficients for an eccentricity
// squared.
func enfn(es float64) [5]float64 {
	var en [5]float64
	en[0] = c00 - es*(c02+es*(c04+es*(c06+es*c08)))
	en[1] = es * (c22 - es*(c04+es*(c06+es*c08)))
	t := es * es
	en[2] = t * (c44 - es*(c46+es*c48))
	t *= es
	en[3] = t * (c66 - es*c68)
	en[4] = t * es * c88
	return en
}

// mlfn computes the meridional arc length from the equator to latitude phi,
// in units of the semi-major axis.
func mlfn(phi, sphi, cphi float64, en [5]float64) float64 {
	cphi *= sphi
	sphi *= sphi
	return en[0]*phi - cphi*(en[1]+sphi*(en[2]+sphi*(en[3]+sphi*en[4])))
}

// invMlfn inverts mlfn by Newton iteration.
func invMlfn(arg, es float64, en [5]float64) (float64, error) {
	const maxIter = 10
	const tol = 1e-11

	k := 1 / (1 - es)
	phi := arg
	for i := 0; i < maxIter; i++ {
		s := math.Sin(phi)
		t := 1 - es*s*s
		t = (mlfn(phi, s, math.Cos(phi), en) - arg) * t * math.Sqrt(t) * k
		phi -= t
		if math.Abs(t) < tol {
			return phi, nil
		}
	}
	return 0, fmt.Errorf("inverse meridional arc after %d iterations: %w", maxIter, model.ErrNonConvergence)
}
