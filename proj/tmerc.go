package proj

import (
	"fmt"
	"math"

	"github.com/geodesyworks/reproj/model"
)

// Series coefficients for the Gauss-Krüger expansion.
const (
	fc1 = 1.0
	fc2 = 0.5
	fc3 = 1.0 / 6
	fc4 = 1.0 / 12
	fc5 = 1.0 / 20
	fc6 = 1.0 / 30
	fc7 = 1.0 / 42
	fc8 = 1.0 / 56
)

// TransverseMercator is the transverse Mercator (Gauss-Krüger) projection,
// the workhorse behind UTM and most national grids.
type TransverseMercator struct {
	base
	es        float64 // eccentricity squared
	esp       float64 // second eccentricity squared
	en        [5]float64
	ml0       float64
	spherical bool
}

// NewTransverseMercator builds a transverse Mercator projection from shared
// parameters.
func NewTransverseMercator(p Params) (*TransverseMercator, error) {
	b, err := newBase(p)
	if err != nil {
		return nil, fmt.Errorf("transverse mercator: %w", err)
	}
	t := &TransverseMercator{
		base:      b,
		es:        p.Ellipsoid.E2,
		spherical: p.Ellipsoid.IsSphere(),
	}
	if t.spherical {
		t.esp = t.k0
		t.ml0 = 0.5 * t.k0
	} else {
		t.esp = t.es / (1 - t.es)
		t.en = enfn(t.es)
		t.ml0 = mlfn(t.lat0, math.Sin(t.lat0), math.Cos(t.lat0), t.en)
	}
	return t, nil
}

func (t *TransverseMercator) ProjectRadians(lon, lat float64) (float64, float64, error) {
	lam := adjlon(lon - t.lon0)
	var x, y float64
	var err error
	if t.spherical {
		x, y, err = t.forwardSphere(lam, lat)
	} else {
		x, y, err = t.forwardEllipsoid(lam, lat)
	}
	if err != nil {
		return 0, 0, err
	}
	fx, fy := t.finishForward(x, y)
	return fx, fy, nil
}

func (t *TransverseMercator) InverseProjectRadians(px, py float64) (float64, float64, error) {
	x, y := t.startInverse(px, py)
	var lam, lat float64
	var err error
	if t.spherical {
		lam, lat = t.inverseSphere(x, y)
	} else {
		lam, lat, err = t.inverseEllipsoid(x, y)
	}
	if err != nil {
		return 0, 0, err
	}
	return adjlon(lam + t.lon0), lat, nil
}

func (t *TransverseMercator) forwardEllipsoid(lam, phi float64) (float64, float64, error) {
	sinphi := math.Sin(phi)
	cosphi := math.Cos(phi)

	var tt float64
	if math.Abs(cosphi) > eps10 {
		tt = sinphi / cosphi
	}
	tt *= tt

	al := cosphi * lam
	als := al * al
	al /= math.Sqrt(1 - t.es*sinphi*sinphi)
	n := t.esp * cosphi * cosphi

	// The series degrades far from the central meridian; beyond ~a quarter
	// turn the point is outside the usable zone.
	if math.Abs(lam) >= halfPi && math.Abs(phi) <= eps10 {
		return 0, 0, fmt.Errorf("point too far from central meridian: %w", model.ErrOutOfProjectionDomain)
	}

	x := t.k0 * al * (fc1 +
		fc3*als*(1-tt+n+
			fc5*als*(5+tt*(tt-18)+n*(14-58*tt)+
				fc7*als*(61+tt*(tt*(179-tt)-479)))))
	y := t.k0 * (mlfn(phi, sinphi, cosphi, t.en) - t.ml0 +
		sinphi*al*lam*
			fc2*(1+
				fc4*als*(5-tt+n*(9+4*n)+
					fc6*als*(61+tt*(tt-58)+n*(270-330*tt)+
						fc8*als*(1385+tt*(tt*(543-tt)-3111))))))
	return x, y, nil
}

func (t *TransverseMercator) inverseEllipsoid(x, y float64) (float64, float64, error) {
	phi, err := invMlfn(t.ml0+y/t.k0, t.es, t.en)
	if err != nil {
		return 0, 0, err
	}
	if math.Abs(phi) >= halfPi {
		if y < 0 {
			return 0, -halfPi, nil
		}
		return 0, halfPi, nil
	}

	sinphi := math.Sin(phi)
	cosphi := math.Cos(phi)
	var tt float64
	if math.Abs(cosphi) > eps10 {
		tt = sinphi / cosphi
	}
	n := t.esp * cosphi * cosphi
	con := 1 - t.es*sinphi*sinphi
	d := x * math.Sqrt(con) / t.k0
	con *= tt
	tt *= tt
	ds := d * d

	lat := phi - (con*ds/(1-t.es))*
		fc2*(1-
			ds*fc4*(5+tt*(3-9*n)+n*(1-4*n)-
				ds*fc6*(61+tt*(90-252*n+45*tt)+46*n-
					ds*fc8*(1385+tt*(3633+tt*(4095+1574*tt))))))
	lam := d * (fc1 -
		ds*fc3*(1+2*tt+n-
			ds*fc5*(5+tt*(28+24*tt+8*n)+6*n-
				ds*fc7*(61+tt*(662+tt*(1320+720*tt)))))) / cosphi
	return lam, lat, nil
}

func (t *TransverseMercator) forwardSphere(lam, phi float64) (float64, float64, error) {
	cosphi := math.Cos(phi)
	b := cosphi * math.Sin(lam)
	if math.Abs(math.Abs(b)-1) <= eps10 {
		return 0, 0, fmt.Errorf("point maps to infinity: %w", model.ErrOutOfProjectionDomain)
	}

	x := t.ml0 * math.Log((1+b)/(1-b))
	yy := cosphi * math.Cos(lam) / math.Sqrt(1-b*b)
	if ab := math.Abs(yy); ab >= 1 {
		if ab-1 > eps10 {
			return 0, 0, fmt.Errorf("point maps to infinity: %w", model.ErrOutOfProjectionDomain)
		}
		yy = 0
	} else {
		yy = math.Acos(yy)
	}
	if phi < 0 {
		yy = -yy
	}
	y := t.esp * (yy - t.lat0)
	return x, y, nil
}

func (t *TransverseMercator) inverseSphere(x, y float64) (float64, float64) {
	h := math.Exp(x / t.esp)
	g := 0.5 * (h - 1/h)
	h = math.Cos(t.lat0 + y/t.esp)
	lat := math.Asin(math.Sqrt((1 - h*h) / (1 + g*g)))
	if y < 0 {
		lat = -lat
	}
	var lam float64
	if g != 0 || h != 0 {
		lam = math.Atan2(g, h)
	}
	return lam, lat
}
