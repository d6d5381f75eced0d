package proj

import (
	"fmt"
	"math"

	"github.com/geodesyworks/reproj/model"
)

// Mercator is the regular (equatorial) Mercator projection, ellipsoidal or
// spherical depending on the ellipsoid's eccentricity.
type Mercator struct {
	base
	e         float64
	spherical bool
}

// NewMercator builds a Mercator projection from shared parameters.
func NewMercator(p Params) (*Mercator, error) {
	b, err := newBase(p)
	if err != nil {
		return nil, fmt.Errorf("mercator: %w", err)
	}
	return &Mercator{
		base:      b,
		e:         math.Sqrt(p.Ellipsoid.E2),
		spherical: p.Ellipsoid.IsSphere(),
	}, nil
}

func (m *Mercator) ProjectRadians(lon, lat float64) (float64, float64, error) {
	if math.Abs(lat) >= halfPi-eps10 {
		return 0, 0, fmt.Errorf("mercator is undefined at and beyond the poles: %w", model.ErrOutOfProjectionDomain)
	}
	lam := adjlon(lon - m.lon0)

	x := m.k0 * lam
	var y float64
	if m.spherical {
		y = m.k0 * math.Log(math.Tan(quartPi+0.5*lat))
	} else {
		y = -m.k0 * math.Log(tsfn(lat, math.Sin(lat), m.e))
	}
	fx, fy := m.finishForward(x, y)
	return fx, fy, nil
}

func (m *Mercator) InverseProjectRadians(px, py float64) (float64, float64, error) {
	x, y := m.startInverse(px, py)

	var lat float64
	if m.spherical {
		lat = halfPi - 2*math.Atan(math.Exp(-y/m.k0))
	} else {
		var err error
		lat, err = phi2(math.Exp(-y/m.k0), m.e)
		if err != nil {
			return 0, 0, err
		}
	}
	lon := adjlon(x/m.k0 + m.lon0)
	return lon, lat, nil
}
