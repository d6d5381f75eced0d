package proj

import (
	"math"
	"testing"

	"github.com/geodesyworks/reproj/model"
)

func utm33(t *testing.T) *TransverseMercator {
	t.Helper()
	p, err := NewTransverseMercator(Params{
		Ellipsoid:          model.WGS84Ellipsoid,
		CentralMeridianDeg: 15,
		ScaleFactor:        0.9996,
		FalseEasting:       500000,
	})
	if err != nil {
		t.Fatalf("NewTransverseMercator: %v", err)
	}
	return p
}

func TestTransverseMercatorOrigin(t *testing.T) {
	p := utm33(t)
	x, y, err := p.ProjectRadians(15*degToRad, 0)
	if err != nil {
		t.Fatalf("ProjectRadians: %v", err)
	}
	if math.Abs(x-500000) > 1e-6 || math.Abs(y) > 1e-6 {
		t.Errorf("origin = (%v, %v), want (500000, 0)", x, y)
	}
}

// On the central meridian the northing is the scaled meridional arc.
func TestTransverseMercatorCentralMeridianArc(t *testing.T) {
	p := utm33(t)
	_, y, err := p.ProjectRadians(15*degToRad, 45*degToRad)
	if err != nil {
		t.Fatalf("ProjectRadians: %v", err)
	}
	want := 0.9996 * 4984944.4
	if math.Abs(y-want) > 1 {
		t.Errorf("northing at 45° on the central meridian = %.1f, want ≈%.1f", y, want)
	}
}

func TestTransverseMercatorRoundTrip(t *testing.T) {
	p := utm33(t)
	for lat := -80.0; lat <= 84.0; lat += 8.2 {
		for dLon := -3.0; dLon <= 3.0; dLon += 1.5 {
			lon := 15 + dLon
			x, y, err := p.ProjectRadians(lon*degToRad, lat*degToRad)
			if err != nil {
				t.Fatalf("forward (%v, %v): %v", lon, lat, err)
			}
			gotLon, gotLat, err := p.InverseProjectRadians(x, y)
			if err != nil {
				t.Fatalf("inverse (%v, %v): %v", lon, lat, err)
			}
			if math.Abs(gotLon-lon*degToRad) > 1e-9 || math.Abs(gotLat-lat*degToRad) > 1e-9 {
				t.Errorf("round trip of (%v°, %v°) = (%.12f, %.12f) rad, want (%.12f, %.12f)",
					lon, lat, gotLon, gotLat, lon*degToRad, lat*degToRad)
			}
		}
	}
}

func TestTransverseMercatorSphericalRoundTrip(t *testing.T) {
	p, err := NewTransverseMercator(Params{
		Ellipsoid:          model.SphereEllipsoid,
		CentralMeridianDeg: 15,
	})
	if err != nil {
		t.Fatalf("NewTransverseMercator: %v", err)
	}
	for lat := -80.0; lat <= 80.0; lat += 16 {
		for dLon := -3.0; dLon <= 3.0; dLon += 1.5 {
			lon := 15 + dLon
			x, y, err := p.ProjectRadians(lon*degToRad, lat*degToRad)
			if err != nil {
				t.Fatalf("forward (%v, %v): %v", lon, lat, err)
			}
			gotLon, gotLat, err := p.InverseProjectRadians(x, y)
			if err != nil {
				t.Fatalf("inverse (%v, %v): %v", lon, lat, err)
			}
			if math.Abs(gotLon-lon*degToRad) > 1e-9 || math.Abs(gotLat-lat*degToRad) > 1e-9 {
				t.Errorf("spherical round trip of (%v°, %v°) = (%.12f, %.12f) rad", lon, lat, gotLon, gotLat)
			}
		}
	}
}

func TestTransverseMercatorFalseOrigin(t *testing.T) {
	p, err := NewTransverseMercator(Params{
		Ellipsoid:          model.Airy1830Ellipsoid,
		CentralMeridianDeg: -2,
		LatitudeOriginDeg:  49,
		ScaleFactor:        0.9996012717,
		FalseEasting:       400000,
		FalseNorthing:      -100000,
	})
	if err != nil {
		t.Fatalf("NewTransverseMercator: %v", err)
	}
	x, y, err := p.ProjectRadians(-2*degToRad, 49*degToRad)
	if err != nil {
		t.Fatalf("ProjectRadians: %v", err)
	}
	if math.Abs(x-400000) > 1e-6 || math.Abs(y+100000) > 1e-6 {
		t.Errorf("true origin = (%v, %v), want (400000, -100000)", x, y)
	}
}

func TestTransverseMercatorEastWestSymmetry(t *testing.T) {
	p := utm33(t)
	xe, ye, err := p.ProjectRadians(17*degToRad, 50*degToRad)
	if err != nil {
		t.Fatalf("ProjectRadians: %v", err)
	}
	xw, yw, err := p.ProjectRadians(13*degToRad, 50*degToRad)
	if err != nil {
		t.Fatalf("ProjectRadians: %v", err)
	}
	if math.Abs((xe-500000)+(xw-500000)) > 1e-6 {
		t.Errorf("eastings not symmetric about the central meridian: %v, %v", xe, xw)
	}
	if math.Abs(ye-yw) > 1e-6 {
		t.Errorf("northings differ across the central meridian: %v, %v", ye, yw)
	}
}
