package model

import "fmt"

// AxisOrder describes how a CRS assigns its numeric slots to geographic or
// planar axes. Each of the three slots carries one of the letters
// e/w/n/s/u/d (east, west, north, south, up, down); "enu" is the canonical
// east-north-up convention the pipeline works in.
type AxisOrder struct {
	spec string
}

// AxesENU is the canonical east-north-up order.
var AxesENU = AxisOrder{spec: "enu"}

// ParseAxisOrder validates and builds an axis order from a three-letter spec
// such as "enu", "neu" or "wsu".
func ParseAxisOrder(spec string) (AxisOrder, error) {
	if len(spec) != 3 {
		return AxisOrder{}, fmt.Errorf("axis order %q: want exactly three axes", spec)
	}
	var seen [3]bool
	for _, r := range spec {
		var group int
		switch r {
		case 'e', 'w':
			group = 0
		case 'n', 's':
			group = 1
		case 'u', 'd':
			group = 2
		default:
			return AxisOrder{}, fmt.Errorf("axis order %q: unknown axis %q", spec, r)
		}
		if seen[group] {
			return AxisOrder{}, fmt.Errorf("axis order %q: duplicate axis direction", spec)
		}
		seen[group] = true
	}
	return AxisOrder{spec: spec}, nil
}

// IsCanonical reports whether the order is already east-north-up.
func (a AxisOrder) IsCanonical() bool {
	return a.spec == "" || a.spec == "enu"
}

func (a AxisOrder) String() string {
	if a.spec == "" {
		return "enu"
	}
	return a.spec
}

// ToENU permutes a coordinate from this axis convention into canonical
// east-north-up, in place.
func (a AxisOrder) ToENU(c *Coordinate) {
	if a.IsCanonical() {
		return
	}
	in := [3]float64{c.X, c.Y, c.Z}
	var out [3]float64
	for i, r := range a.spec {
		switch r {
		case 'e':
			out[0] = in[i]
		case 'w':
			out[0] = -in[i]
		case 'n':
			out[1] = in[i]
		case 's':
			out[1] = -in[i]
		case 'u':
			out[2] = in[i]
		case 'd':
			out[2] = -in[i]
		}
	}
	c.X, c.Y, c.Z = out[0], out[1], out[2]
}

// FromENU permutes a canonical east-north-up coordinate into this axis
// convention, in place.
func (a AxisOrder) FromENU(c *Coordinate) {
	if a.IsCanonical() {
		return
	}
	enu := [3]float64{c.X, c.Y, c.Z}
	var out [3]float64
	for i, r := range a.spec {
		switch r {
		case 'e':
			out[i] = enu[0]
		case 'w':
			out[i] = -enu[0]
		case 'n':
			out[i] = enu[1]
		case 's':
			out[i] = -enu[1]
		case 'u':
			out[i] = enu[2]
		case 'd':
			out[i] = -enu[2]
		}
	}
	c.X, c.Y, c.Z = out[0], out[1], out[2]
}
