package model

import "errors"

// Failure kinds surfaced by the transform pipeline and its collaborators.
// Wrapped errors carry stage and CRS context; callers test with errors.Is.
var (
	// ErrOutOfProjectionDomain is returned when a projection formula (or the
	// geodetic-to-geocentric conversion) cannot map the given point, for
	// example a latitude beyond the projection's valid range.
	ErrOutOfProjectionDomain = errors.New("point outside projection domain")

	// ErrGridCoverageMiss is returned when a grid-shift lookup has no data
	// for the point's location. The pipeline never substitutes an
	// un-shifted value on its own.
	ErrGridCoverageMiss = errors.New("point outside grid-shift coverage")

	// ErrNonConvergence is returned when an iterative recovery (inverse
	// meridional arc, conformal latitude, geocentric-to-geodetic, inverse
	// grid shift) fails to reach tolerance within its iteration bound.
	ErrNonConvergence = errors.New("iteration failed to converge")

	// ErrUnsupportedDatumPath indicates a datum pivot was attempted on a
	// side whose transform kind is unknown. The construction-time strategy
	// refuses such pairs, so hitting this at transform time is a bug in the
	// strategy, not a caller error.
	ErrUnsupportedDatumPath = errors.New("no known path to WGS84 for datum")
)
