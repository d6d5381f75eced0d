package model

import "math"

// PrimeMeridian is the reference longitude a CRS measures its longitudes
// from, expressed as an offset east of Greenwich in radians.
type PrimeMeridian struct {
	Name string
	// Offset is the meridian's longitude east of Greenwich, radians.
	Offset float64
}

// Greenwich is the zero meridian.
var Greenwich = PrimeMeridian{Name: "greenwich"}

// ToGreenwich re-expresses a geographic-radian longitude relative to
// Greenwich, in place.
func (pm PrimeMeridian) ToGreenwich(c *Coordinate) {
	if pm.Offset != 0 {
		c.X += pm.Offset
	}
}

// FromGreenwich re-expresses a Greenwich longitude relative to this meridian,
// in place.
func (pm PrimeMeridian) FromGreenwich(c *Coordinate) {
	if pm.Offset != 0 {
		c.X -= pm.Offset
	}
}

func meridian(name string, offsetDeg float64) PrimeMeridian {
	return PrimeMeridian{Name: name, Offset: offsetDeg * math.Pi / 180}
}

// The historical prime meridians still in circulation in legacy CRS
// definitions.
var (
	MeridianLisbon    = meridian("lisbon", -9.131906111111)
	MeridianParis     = meridian("paris", 2.337229166667)
	MeridianBogota    = meridian("bogota", -74.080916666667)
	MeridianMadrid    = meridian("madrid", -3.687938888889)
	MeridianRome      = meridian("rome", 12.452333333333)
	MeridianBern      = meridian("bern", 7.439583333333)
	MeridianJakarta   = meridian("jakarta", 106.807719444444)
	MeridianFerro     = meridian("ferro", -17.666666666667)
	MeridianBrussels  = meridian("brussels", 4.367975)
	MeridianStockholm = meridian("stockholm", 18.058277777778)
	MeridianAthens    = meridian("athens", 23.7163375)
	MeridianOslo      = meridian("oslo", 10.722916666667)
)
