package core

import (
	"errors"
	"fmt"

	"github.com/geodesyworks/reproj/model"
)

// Transform converts coordinates from a source CRS to a target CRS, using
// reprojection and datum conversion as required. The stages a conversion
// needs are decided once at construction; Transform values are immutable
// afterwards and safe for concurrent use, provided each call supplies its own
// coordinate buffers.
//
// Symbolically a full conversion is:
//
//	[ src planar {inverse projection} ] src geographic
//	    [ {datum conversion} ] tgt geographic [ {projection} tgt planar ]
//
// Between the two projection stages the working coordinate holds
// Greenwich-relative radians with height in metres.
type Transform struct {
	srcCRS *model.CRS
	tgtCRS *model.CRS

	// strategy, fixed at construction
	doInverseProjection    bool
	doForwardProjection    bool
	doDatumTransform       bool
	transformViaGeocentric bool
	srcGeoConv             *GeocentricConverter
	tgtGeoConv             *GeocentricConverter
}

// NewTransform builds a transform between two fully resolved CRS values.
// Passing an unresolved CRS (missing projection, datum, or ellipsoid data) is
// a construction error, reported here and never deferred to the first call.
func NewTransform(src, tgt *model.CRS) (*Transform, error) {
	if !src.IsResolved() {
		return nil, fmt.Errorf("source CRS %s is not fully resolved", src)
	}
	if !tgt.IsResolved() {
		return nil, fmt.Errorf("target CRS %s is not fully resolved", tgt)
	}

	srcDatum, tgtDatum := src.Datum, tgt.Datum
	srcKind, tgtKind := srcDatum.Kind(), tgtDatum.Kind()
	srcToWGS84 := srcDatum.TransformsToWGS84()
	tgtToWGS84 := tgtDatum.TransformsToWGS84()

	t := &Transform{srcCRS: src, tgtCRS: tgt}

	t.doInverseProjection = src != model.PlainGeographic
	t.doForwardProjection = tgt != model.PlainGeographic

	// Datum conversion is pure waste (and sub-metre drift risk) when either
	// endpoint is plain geographic or the datums are indistinguishable, and
	// it is impossible when neither side knows any transform at all.
	t.doDatumTransform = t.doInverseProjection && t.doForwardProjection &&
		!srcDatum.Equal(tgtDatum) &&
		(srcToWGS84 || tgtToWGS84 ||
			(srcKind != model.KindUnknown && tgtKind != model.KindUnknown))

	if t.doDatumTransform {
		srcEll := srcDatum.Ellipsoid()
		tgtEll := tgtDatum.Ellipsoid()

		t.transformViaGeocentric = !srcEll.Equal(tgtEll) || srcToWGS84 || tgtToWGS84

		if t.transformViaGeocentric {
			// A converter works on WGS84's ellipsoid rather than its own
			// side's when that side reaches WGS84 through a grid shift, or
			// lacks a direct WGS84 path while the opposite side is
			// projected. The latter is an inherited heuristic that keeps the
			// geocentric round trip internally consistent, not a derivable
			// rule.
			t.srcGeoConv = NewGeocentricConverter(srcEll)
			if srcKind == model.KindGridShift || (!srcToWGS84 && !tgt.IsGeographic()) {
				t.srcGeoConv.OverrideWithWGS84()
			}

			t.tgtGeoConv = NewGeocentricConverter(tgtEll)
			if tgtKind == model.KindGridShift || (!tgtToWGS84 && !src.IsGeographic()) {
				t.tgtGeoConv.OverrideWithWGS84()
			}
		}
	}

	return t, nil
}

// SourceCRS returns the CRS the transform converts from.
func (t *Transform) SourceCRS() *model.CRS { return t.srcCRS }

// TargetCRS returns the CRS the transform converts to.
func (t *Transform) TargetCRS() *model.CRS { return t.tgtCRS }

// DatumTransformRequired reports whether the strategy decided a datum
// conversion stage is needed.
func (t *Transform) DatumTransformRequired() bool { return t.doDatumTransform }

// ViaGeocentric reports whether datum conversion routes through a 3-D
// geocentric frame.
func (t *Transform) ViaGeocentric() bool { return t.transformViaGeocentric }

// Transform converts src into dst, which may alias src. dst is seeded from
// src and then mutated stage by stage; on error its contents are an
// intermediate pipeline value and must not be used. The returned pointer is
// always dst, so callers can chain or reuse buffers across a batch.
func (t *Transform) Transform(src, dst *model.Coordinate) (*model.Coordinate, error) {
	if src == nil || dst == nil {
		return nil, errors.New("transform: nil coordinate")
	}
	if dst != src {
		dst.Set(*src)
	}

	t.srcCRS.Projection.Axes().ToENU(dst)

	if t.doInverseProjection {
		lon, lat, err := t.srcCRS.Projection.InverseProjectRadians(dst.X, dst.Y)
		if err != nil {
			return nil, stageError("inverse projection", t.srcCRS.Name, err)
		}
		dst.X, dst.Y = lon, lat
	}

	t.srcCRS.Projection.PrimeMeridian().ToGreenwich(dst)

	// An inverse projection never populates the height; whatever is in z at
	// this point is stale and must not leak into a datum conversion that
	// does use height.
	dst.ClearZ()

	if t.doDatumTransform {
		if err := t.datumTransform(dst); err != nil {
			return nil, err
		}
	}

	t.tgtCRS.Projection.PrimeMeridian().FromGreenwich(dst)

	if t.doForwardProjection {
		x, y, err := t.tgtCRS.Projection.ProjectRadians(dst.X, dst.Y)
		if err != nil {
			return nil, stageError("forward projection", t.tgtCRS.Name, err)
		}
		dst.X, dst.Y = x, y
	}

	t.tgtCRS.Projection.Axes().FromENU(dst)

	return dst, nil
}

// Apply is a by-value convenience wrapper around Transform for callers that
// do not manage their own buffers.
func (t *Transform) Apply(c model.Coordinate) (model.Coordinate, error) {
	out := c
	if _, err := t.Transform(&out, &out); err != nil {
		return model.Coordinate{}, err
	}
	return out, nil
}

// datumTransform converts a Greenwich geographic-radian coordinate from the
// source datum to the target datum: source grid shift, then an optional
// detour through geocentric space with Helmert pivots on each side, then the
// target grid shift in inverse.
func (t *Transform) datumTransform(c *model.Coordinate) error {
	srcDatum, tgtDatum := t.srcCRS.Datum, t.tgtCRS.Datum

	if srcDatum.Kind() == model.KindGridShift {
		if err := srcDatum.Shift(c); err != nil {
			return stageError("source grid shift", t.srcCRS.Name, err)
		}
	}

	if t.transformViaGeocentric {
		if err := t.srcGeoConv.GeodeticToGeocentric(c); err != nil {
			return stageError("geodetic to geocentric", t.srcCRS.Name, err)
		}

		if p, ok := srcDatum.WGS84Params(); ok {
			HelmertForward(p, c)
		}
		if p, ok := tgtDatum.WGS84Params(); ok {
			HelmertInverse(p, c)
		}

		if err := t.tgtGeoConv.GeocentricToGeodetic(c); err != nil {
			return stageError("geocentric to geodetic", t.tgtCRS.Name, err)
		}
	}

	if tgtDatum.Kind() == model.KindGridShift {
		if err := tgtDatum.InverseShift(c); err != nil {
			return stageError("target grid shift", t.tgtCRS.Name, err)
		}
	}

	return nil
}
