package core

import (
	"math"
	"testing"

	"github.com/geodesyworks/reproj/model"
)

func TestHelmertThreeParamTranslation(t *testing.T) {
	p := model.HelmertParams{Dx: -87, Dy: -96, Dz: -120, M: 1}
	c := model.NewCoordinate(4000000, 300000, 4900000)
	HelmertForward(p, &c)
	want := model.NewCoordinate(3999913, 299904, 4899880)
	if c != want {
		t.Errorf("HelmertForward = %v, want %v", c, want)
	}
}

func TestHelmertScaleOnly(t *testing.T) {
	// 1 ppm on a 6378 km vector stretches it by ~6.378 m.
	p := model.HelmertParams{M: 1 + 1e-6}
	c := model.NewCoordinate(6378137, 0, 0)
	HelmertForward(p, &c)
	if math.Abs(c.X-6378137*(1+1e-6)) > 1e-6 {
		t.Errorf("scaled X = %.9f, want %.9f", c.X, 6378137*(1+1e-6))
	}
}

func TestHelmertRoundTrip(t *testing.T) {
	params, ok := model.OSGB36Datum.WGS84Params()
	if !ok {
		t.Fatal("OSGB36Datum has no Helmert parameters")
	}
	points := []model.Coordinate{
		model.NewCoordinate(3980000, -100000, 4970000),
		model.NewCoordinate(-2694000, -4297000, 3854000),
		model.NewCoordinate(0, 0, 6356752),
	}
	for _, in := range points {
		c := in
		HelmertForward(params, &c)
		HelmertInverse(params, &c)
		// The algebraic inverse of the linearized form leaves a residual of
		// the order of R·r², about 1e-4 m for OSGB36's ~0.8″ rotations.
		if math.Abs(c.X-in.X) > 1e-4 || math.Abs(c.Y-in.Y) > 1e-4 || math.Abs(c.Z-in.Z) > 1e-4 {
			t.Errorf("forward∘inverse of %v drifted to %v", in, c)
		}
	}
}

func TestHelmertRoundTripSmallRotations(t *testing.T) {
	// With milliarcsecond-scale rotations the quadratic residual vanishes
	// and forward∘inverse recovers the input to well under a micrometre.
	p := model.HelmertParams{
		Dx: -82.5, Dy: -91.7, Dz: -117.4,
		Rx: 4.85e-9, Ry: -9.7e-9, Rz: 2.4e-9,
		M: 1 + 1e-7,
	}
	points := []model.Coordinate{
		model.NewCoordinate(3980000, -100000, 4970000),
		model.NewCoordinate(-2694000, -4297000, 3854000),
		model.NewCoordinate(0, 0, 6356752),
	}
	for _, in := range points {
		c := in
		HelmertForward(p, &c)
		HelmertInverse(p, &c)
		if math.Abs(c.X-in.X) > 1e-6 || math.Abs(c.Y-in.Y) > 1e-6 || math.Abs(c.Z-in.Z) > 1e-6 {
			t.Errorf("forward∘inverse of %v drifted to %v", in, c)
		}
	}
}

func TestHelmertSmallRotation(t *testing.T) {
	// Position-vector convention: a Z rotation of r radians moves an
	// equatorial X-axis point by r·x in Y.
	const r = 1e-6
	p := model.HelmertParams{Rz: r, M: 1}
	c := model.NewCoordinate(6378137, 0, 0)
	HelmertForward(p, &c)
	if math.Abs(c.Y-r*6378137) > 1e-3 {
		t.Errorf("rotated Y = %.6f, want ~%.6f", c.Y, r*6378137)
	}
}
