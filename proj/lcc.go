package proj

import (
	"fmt"
	"math"

	"github.com/geodesyworks/reproj/model"
)

// LambertConformalConic is the Lambert conformal conic projection with one or
// two standard parallels.
type LambertConformalConic struct {
	base
	e    float64
	n    float64
	c    float64
	rho0 float64
}

// NewLambertConformalConic builds a Lambert conformal conic projection. The
// standard parallels are given in degrees; pass the same value twice for the
// tangent (single-parallel) case.
func NewLambertConformalConic(p Params, stdParallel1Deg, stdParallel2Deg float64) (*LambertConformalConic, error) {
	b, err := newBase(p)
	if err != nil {
		return nil, fmt.Errorf("lambert conformal conic: %w", err)
	}

	phi1 := stdParallel1Deg * degToRad
	phi2v := stdParallel2Deg * degToRad
	if math.Abs(phi1+phi2v) < eps10 {
		return nil, fmt.Errorf("lambert conformal conic: standard parallels %g and %g are opposed", stdParallel1Deg, stdParallel2Deg)
	}

	l := &LambertConformalConic{base: b, e: math.Sqrt(p.Ellipsoid.E2)}

	sin1 := math.Sin(phi1)
	cos1 := math.Cos(phi1)
	secant := math.Abs(phi1-phi2v) >= eps10

	m1 := msfn(sin1, cos1, p.Ellipsoid.E2)
	ml1 := tsfn(phi1, sin1, l.e)
	if secant {
		sin2 := math.Sin(phi2v)
		cos2 := math.Cos(phi2v)
		l.n = math.Log(m1/msfn(sin2, cos2, p.Ellipsoid.E2)) /
			math.Log(ml1/tsfn(phi2v, sin2, l.e))
	} else {
		l.n = sin1
	}
	if l.n == 0 {
		return nil, fmt.Errorf("lambert conformal conic: standard parallels on the equator")
	}

	l.c = m1 * math.Pow(ml1, -l.n) / l.n
	if math.Abs(math.Abs(l.lat0)-halfPi) < eps10 {
		l.rho0 = 0
	} else {
		l.rho0 = l.c * math.Pow(tsfn(l.lat0, math.Sin(l.lat0), l.e), l.n)
	}
	return l, nil
}

func (l *LambertConformalConic) ProjectRadians(lon, lat float64) (float64, float64, error) {
	if math.Abs(lat) > halfPi+eps10 {
		return 0, 0, fmt.Errorf("latitude %g rad beyond the pole: %w", lat, model.ErrOutOfProjectionDomain)
	}
	lam := adjlon(lon - l.lon0)

	var rho float64
	if math.Abs(math.Abs(lat)-halfPi) < eps10 {
		// The pole opposite the cone's apex is infinitely far away.
		if lat*l.n <= 0 {
			return 0, 0, fmt.Errorf("pole opposite the cone apex: %w", model.ErrOutOfProjectionDomain)
		}
		rho = 0
	} else {
		rho = l.c * math.Pow(tsfn(lat, math.Sin(lat), l.e), l.n)
	}

	gamma := lam * l.n
	x := l.k0 * rho * math.Sin(gamma)
	y := l.k0 * (l.rho0 - rho*math.Cos(gamma))
	fx, fy := l.finishForward(x, y)
	return fx, fy, nil
}

func (l *LambertConformalConic) InverseProjectRadians(px, py float64) (float64, float64, error) {
	x, y := l.startInverse(px, py)
	x /= l.k0
	y = l.rho0 - y/l.k0

	rho := math.Hypot(x, y)
	if rho == 0 {
		lat := halfPi
		if l.n < 0 {
			lat = -halfPi
		}
		return adjlon(l.lon0), lat, nil
	}
	if l.n < 0 {
		rho = -rho
		x = -x
		y = -y
	}

	lat, err := phi2(math.Pow(rho/l.c, 1/l.n), l.e)
	if err != nil {
		return 0, 0, err
	}
	lon := adjlon(math.Atan2(x, y)/l.n + l.lon0)
	return lon, lat, nil
}
