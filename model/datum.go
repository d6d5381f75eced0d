package model

import "fmt"

// TransformKind classifies a datum's path to WGS84.
type TransformKind int

const (
	// KindUnknown means no path to WGS84 is known for the datum.
	KindUnknown TransformKind = iota
	// KindNone means the datum coincides with WGS84; no conversion needed.
	KindNone
	// KindThreeParam is a geocentric translation (tx, ty, tz metres).
	KindThreeParam
	// KindSevenParam is a full Helmert similarity transform.
	KindSevenParam
	// KindGridShift is a tabulated, location-dependent correction.
	KindGridShift
)

func (k TransformKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindThreeParam:
		return "3-param"
	case KindSevenParam:
		return "7-param"
	case KindGridShift:
		return "grid-shift"
	default:
		return "unknown"
	}
}

// arcSecToRad converts arc-seconds to radians.
const arcSecToRad = 4.84813681109535994e-6

// HelmertParams is a geocentric similarity transform to WGS84 in applied
// units: translations in metres, rotations in radians, scale as a plain
// multiplier. Declared datum parameters (arc-seconds, ppm) are converted once
// at datum construction.
type HelmertParams struct {
	Dx, Dy, Dz float64
	Rx, Ry, Rz float64
	M          float64
}

// GridShifter is the grid-shift collaborator a KindGridShift datum delegates
// to. Shift moves a geographic-radian coordinate from the datum toward WGS84;
// InverseShift moves it back. Implementations must be safe for concurrent
// read-only use.
type GridShifter interface {
	Shift(c *Coordinate) error
	InverseShift(c *Coordinate) error
}

// Datum is a reference frame: an ellipsoid plus an optional transform to
// WGS84. Immutable after construction; datum values are shared freely
// between CRSs and transforms.
type Datum struct {
	Name string

	ellipsoid Ellipsoid
	kind      TransformKind
	declared  []float64 // 3 or 7 values as published: metres, arcsec, ppm
	helmert   HelmertParams
	shifter   GridShifter
}

// NewDatum builds a datum with an optional published transform to WGS84:
// no values for a datum identical to WGS84, three translations, or the full
// seven Helmert parameters (tx, ty, tz metres, rx, ry, rz arc-seconds,
// scale ppm). A transform of all zeros collapses to KindNone, since it is
// numerically the identity.
func NewDatum(name string, e Ellipsoid, toWGS84 ...float64) (*Datum, error) {
	if !e.IsValid() {
		return nil, fmt.Errorf("datum %q: invalid ellipsoid (a=%g, e2=%g)", name, e.A, e.E2)
	}
	d := &Datum{Name: name, ellipsoid: e}
	switch len(toWGS84) {
	case 0:
		d.kind = KindNone
	case 3:
		d.kind = KindThreeParam
	case 7:
		d.kind = KindSevenParam
	default:
		return nil, fmt.Errorf("datum %q: toWGS84 must have 0, 3 or 7 parameters, got %d", name, len(toWGS84))
	}
	if isIdentityTransform(toWGS84) {
		d.kind = KindNone
		return d, nil
	}
	d.declared = append([]float64(nil), toWGS84...)
	d.helmert = HelmertParams{
		Dx: toWGS84[0],
		Dy: toWGS84[1],
		Dz: toWGS84[2],
		M:  1,
	}
	if len(toWGS84) == 7 {
		d.helmert.Rx = toWGS84[3] * arcSecToRad
		d.helmert.Ry = toWGS84[4] * arcSecToRad
		d.helmert.Rz = toWGS84[5] * arcSecToRad
		d.helmert.M = 1 + toWGS84[6]*1e-6
	}
	return d, nil
}

// NewGridShiftDatum builds a datum whose path to WGS84 goes through a
// grid-shift lookup service.
func NewGridShiftDatum(name string, e Ellipsoid, shifter GridShifter) (*Datum, error) {
	if !e.IsValid() {
		return nil, fmt.Errorf("datum %q: invalid ellipsoid (a=%g, e2=%g)", name, e.A, e.E2)
	}
	if shifter == nil {
		return nil, fmt.Errorf("datum %q: grid-shift datum requires a shifter", name)
	}
	return &Datum{Name: name, ellipsoid: e, kind: KindGridShift, shifter: shifter}, nil
}

// NewUnknownDatum builds a datum with no known path to WGS84. Transforms
// between such datums are refused unless both endpoints agree.
func NewUnknownDatum(name string, e Ellipsoid) (*Datum, error) {
	if !e.IsValid() {
		return nil, fmt.Errorf("datum %q: invalid ellipsoid (a=%g, e2=%g)", name, e.A, e.E2)
	}
	return &Datum{Name: name, ellipsoid: e, kind: KindUnknown}, nil
}

func isIdentityTransform(p []float64) bool {
	for _, v := range p {
		if v != 0 {
			return false
		}
	}
	return true
}

// Ellipsoid returns the datum's reference ellipsoid.
func (d *Datum) Ellipsoid() Ellipsoid { return d.ellipsoid }

// Kind returns the datum's transform classification.
func (d *Datum) Kind() TransformKind { return d.kind }

// TransformsToWGS84 reports whether any path to WGS84 exists (Helmert
// parameters or a grid shift). KindNone datums return false: they need no
// transform at all.
func (d *Datum) TransformsToWGS84() bool {
	return d.kind == KindThreeParam || d.kind == KindSevenParam || d.kind == KindGridShift
}

// WGS84Params returns the converted Helmert parameters and whether the datum
// carries any (only KindThreeParam and KindSevenParam do).
func (d *Datum) WGS84Params() (HelmertParams, bool) {
	if d.kind != KindThreeParam && d.kind != KindSevenParam {
		return HelmertParams{}, false
	}
	return d.helmert, true
}

// Shift applies the grid-shift correction toward WGS84 in place.
func (d *Datum) Shift(c *Coordinate) error {
	if d.shifter == nil {
		return fmt.Errorf("datum %q: %w", d.Name, ErrUnsupportedDatumPath)
	}
	return d.shifter.Shift(c)
}

// InverseShift applies the grid-shift correction away from WGS84 in place.
func (d *Datum) InverseShift(c *Coordinate) error {
	if d.shifter == nil {
		return fmt.Errorf("datum %q: %w", d.Name, ErrUnsupportedDatumPath)
	}
	return d.shifter.InverseShift(c)
}

// Equal is the datum-equality predicate: same value, or same transform kind
// with approximately equal ellipsoids and identical published parameters.
// Names do not participate. This predicate, not identity, decides whether a
// transform skips datum conversion.
func (d *Datum) Equal(other *Datum) bool {
	if d == other {
		return true
	}
	if d == nil || other == nil {
		return false
	}
	if d.kind != other.kind {
		return false
	}
	if !d.ellipsoid.Equal(other.ellipsoid) {
		return false
	}
	switch d.kind {
	case KindThreeParam, KindSevenParam:
		if len(d.declared) != len(other.declared) {
			return false
		}
		for i := range d.declared {
			if d.declared[i] != other.declared[i] {
				return false
			}
		}
		return true
	case KindGridShift:
		return d.shifter == other.shifter
	default:
		return true
	}
}

func mustDatum(d *Datum, err error) *Datum {
	if err != nil {
		panic(err)
	}
	return d
}

// Well-known datums used by the built-in CRS registry.
var (
	WGS84Datum = mustDatum(NewDatum("WGS84", WGS84Ellipsoid))
	NAD83Datum = mustDatum(NewDatum("NAD83", GRS80Ellipsoid, 0, 0, 0))
	RGF93Datum = mustDatum(NewDatum("RGF93", GRS80Ellipsoid, 0, 0, 0))

	// OSGB 1936, single-solution Helmert for Great Britain.
	OSGB36Datum = mustDatum(NewDatum("OSGB36", Airy1830Ellipsoid,
		446.448, -125.157, 542.060, 0.1502, 0.2470, 0.8421, -20.4894))

	// European Datum 1950, mean European translation.
	ED50Datum = mustDatum(NewDatum("ED50", Intl1924Ellipsoid, -87, -96, -120))

	// Pulkovo 1942 (SK-42), Krassovsky ellipsoid.
	Pulkovo1942Datum = mustDatum(NewDatum("Pulkovo 1942", KrassovskyEllipsoid,
		23.92, -141.27, -80.9, 0, 0, 0, 0))

	// Potsdam (DHDN), Bessel ellipsoid.
	PotsdamDatum = mustDatum(NewDatum("Potsdam", Bessel1841Ellipsoid,
		598.1, 73.7, 418.2, 0.202, 0.045, -2.455, 6.7))
)
