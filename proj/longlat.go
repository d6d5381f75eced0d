package proj

import "github.com/geodesyworks/reproj/model"

// LongLat is the degenerate "projection" of a geographic CRS: planar values
// are longitude and latitude in degrees. The pipeline still runs it through
// both projection stages, converting between radians and degrees.
type LongLat struct {
	axes     model.AxisOrder
	meridian model.PrimeMeridian
}

// NewLongLat builds a geographic coordinate system with the given axis order
// and prime meridian. A zero meridian means Greenwich.
func NewLongLat(axes model.AxisOrder, meridian model.PrimeMeridian) *LongLat {
	if meridian.Name == "" {
		meridian = model.Greenwich
	}
	return &LongLat{axes: axes, meridian: meridian}
}

func (l *LongLat) ProjectRadians(lon, lat float64) (float64, float64, error) {
	return lon * radToDeg, lat * radToDeg, nil
}

func (l *LongLat) InverseProjectRadians(x, y float64) (float64, float64, error) {
	return x * degToRad, y * degToRad, nil
}

func (l *LongLat) Axes() model.AxisOrder              { return l.axes }
func (l *LongLat) PrimeMeridian() model.PrimeMeridian { return l.meridian }
func (l *LongLat) Geographic() bool                   { return true }
