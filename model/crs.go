package model

// Projection is the per-family capability the transform pipeline consumes.
// ProjectRadians and InverseProjectRadians map between Greenwich-relative
// geographic radians and the projection's planar units; both may fail for
// points outside the projection's valid domain. Implementations must be
// stateless after construction and safe for concurrent use.
type Projection interface {
	// ProjectRadians maps geographic radians to planar coordinates.
	ProjectRadians(lon, lat float64) (x, y float64, err error)
	// InverseProjectRadians maps planar coordinates to geographic radians.
	InverseProjectRadians(x, y float64) (lon, lat float64, err error)
	// Axes is the planar axis convention of the projected output.
	Axes() AxisOrder
	// PrimeMeridian is the meridian the projection's longitudes are
	// measured from.
	PrimeMeridian() PrimeMeridian
	// Geographic reports whether the "projection" is a plain
	// degree-valued geographic coordinate system.
	Geographic() bool
}

// CRS is a coordinate reference system: a projection composed with a datum.
// CRS values are immutable and shared; a transform holds two of them.
type CRS struct {
	Name       string
	Projection Projection
	Datum      *Datum
}

// IsGeographic reports whether coordinates in this CRS are geographic
// (degree-valued lon/lat) rather than projected planar units.
func (c *CRS) IsGeographic() bool {
	if c == PlainGeographic {
		return true
	}
	return c.Projection != nil && c.Projection.Geographic()
}

// IsResolved reports whether the CRS carries everything a transform needs.
func (c *CRS) IsResolved() bool {
	return c != nil && c.Projection != nil && c.Datum != nil && c.Datum.Ellipsoid().IsValid()
}

func (c *CRS) String() string {
	if c == nil {
		return "<nil>"
	}
	return c.Name
}

// PlainGeographic is the sentinel CRS for callers that already hold
// Greenwich-relative geographic radians on WGS84. Using it as a source skips
// inverse projection; as a target it skips forward projection, so the
// transform's output stays in radians.
var PlainGeographic = &CRS{
	Name:       "geographic",
	Projection: radianIdentity{},
	Datum:      WGS84Datum,
}

// radianIdentity backs the PlainGeographic sentinel. The pipeline never
// invokes its projection methods (the strategy flags skip both directions),
// but axis and meridian adjustments still run and must be identities.
type radianIdentity struct{}

func (radianIdentity) ProjectRadians(lon, lat float64) (float64, float64, error) {
	return lon, lat, nil
}

func (radianIdentity) InverseProjectRadians(x, y float64) (float64, float64, error) {
	return x, y, nil
}

func (radianIdentity) Axes() AxisOrder              { return AxesENU }
func (radianIdentity) PrimeMeridian() PrimeMeridian { return Greenwich }
func (radianIdentity) Geographic() bool             { return true }
