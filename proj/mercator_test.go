package proj

import (
	"errors"
	"math"
	"testing"

	"github.com/geodesyworks/reproj/model"
)

func TestSphericalMercatorKnownValues(t *testing.T) {
	m, err := NewMercator(Params{Ellipsoid: model.WebSphereEllipsoid})
	if err != nil {
		t.Fatalf("NewMercator: %v", err)
	}

	// The web-mercator world edge: x(180°) = π·a.
	x, y, err := m.ProjectRadians(math.Pi, 0)
	if err != nil {
		t.Fatalf("ProjectRadians: %v", err)
	}
	if math.Abs(x-20037508.342789244) > 1e-3 || math.Abs(y) > 1e-9 {
		t.Errorf("(180°, 0°) = (%.6f, %.6f), want (20037508.342789, 0)", x, y)
	}

	// y(45°) = a·ln(tan(67.5°)).
	_, y, err = m.ProjectRadians(0, 45*degToRad)
	if err != nil {
		t.Fatalf("ProjectRadians: %v", err)
	}
	if math.Abs(y-5621521.486192) > 1e-3 {
		t.Errorf("y(45°) = %.6f, want 5621521.486192", y)
	}
}

func TestMercatorRoundTrip(t *testing.T) {
	for _, e := range []model.Ellipsoid{model.WGS84Ellipsoid, model.WebSphereEllipsoid} {
		m, err := NewMercator(Params{Ellipsoid: e})
		if err != nil {
			t.Fatalf("NewMercator: %v", err)
		}
		for lat := -85.0; lat <= 85.0; lat += 17 {
			for lon := -180.0; lon < 180.0; lon += 45 {
				x, y, err := m.ProjectRadians(lon*degToRad, lat*degToRad)
				if err != nil {
					t.Fatalf("%s: forward (%v, %v): %v", e.Name, lon, lat, err)
				}
				gotLon, gotLat, err := m.InverseProjectRadians(x, y)
				if err != nil {
					t.Fatalf("%s: inverse (%v, %v): %v", e.Name, lon, lat, err)
				}
				if math.Abs(gotLon-lon*degToRad) > 1e-10 || math.Abs(gotLat-lat*degToRad) > 1e-10 {
					t.Errorf("%s: round trip of (%v°, %v°) = (%v, %v) rad", e.Name, lon, lat, gotLon, gotLat)
				}
			}
		}
	}
}

func TestMercatorRejectsPoles(t *testing.T) {
	m, err := NewMercator(Params{Ellipsoid: model.WGS84Ellipsoid})
	if err != nil {
		t.Fatalf("NewMercator: %v", err)
	}
	// Latitudes beyond the poles, the shape bad batch rows take, must be
	// rejected rather than feeding a negative argument to the log.
	for _, lat := range []float64{halfPi, -halfPi, 90.5 * degToRad, -91 * degToRad, math.Pi} {
		x, y, err := m.ProjectRadians(0, lat)
		if !errors.Is(err, model.ErrOutOfProjectionDomain) {
			t.Errorf("ProjectRadians(0, %v) error = %v, want ErrOutOfProjectionDomain", lat, err)
		}
		if math.IsNaN(x) || math.IsNaN(y) {
			t.Errorf("ProjectRadians(0, %v) = (%v, %v), want no NaN", lat, x, y)
		}
	}
}

func TestMercatorScaleFactorAndOffsets(t *testing.T) {
	m, err := NewMercator(Params{
		Ellipsoid:          model.WebSphereEllipsoid,
		CentralMeridianDeg: 10,
		ScaleFactor:        0.5,
		FalseEasting:       1000,
		FalseNorthing:      -2000,
	})
	if err != nil {
		t.Fatalf("NewMercator: %v", err)
	}
	x, y, err := m.ProjectRadians(10*degToRad, 0)
	if err != nil {
		t.Fatalf("ProjectRadians: %v", err)
	}
	if math.Abs(x-1000) > 1e-9 || math.Abs(y+2000) > 1e-9 {
		t.Errorf("origin = (%v, %v), want (1000, -2000)", x, y)
	}

	x, _, err = m.ProjectRadians(11*degToRad, 0)
	if err != nil {
		t.Fatalf("ProjectRadians: %v", err)
	}
	want := 1000 + 0.5*model.WebSphereEllipsoid.A*degToRad
	if math.Abs(x-want) > 1e-6 {
		t.Errorf("x one degree east = %v, want %v", x, want)
	}
}
