package model

import (
	"fmt"
	"math"
)

// Coordinate is a mutable 3-component tuple passed through the transform
// pipeline. The meaning of X and Y depends on the pipeline stage operating on
// it: projected units in a planar CRS, radians between the inverse and forward
// projection stages, degrees at a geographic CRS endpoint. Z is a height in
// metres when present.
type Coordinate struct {
	X float64
	Y float64
	Z float64
}

// NewCoordinate2D returns a coordinate without a height. The missing height is
// represented as NaN so that downstream stages can tell "no height" apart from
// "height zero".
func NewCoordinate2D(x, y float64) Coordinate {
	return Coordinate{X: x, Y: y, Z: math.NaN()}
}

// NewCoordinate returns a coordinate carrying a height in metres.
func NewCoordinate(x, y, z float64) Coordinate {
	return Coordinate{X: x, Y: y, Z: z}
}

// HasZ reports whether the coordinate carries a height.
func (c *Coordinate) HasZ() bool {
	return !math.IsNaN(c.Z)
}

// ClearZ marks the height as absent.
func (c *Coordinate) ClearZ() {
	c.Z = math.NaN()
}

// Set overwrites all three components from another coordinate.
func (c *Coordinate) Set(other Coordinate) {
	c.X = other.X
	c.Y = other.Y
	c.Z = other.Z
}

func (c Coordinate) String() string {
	if !c.HasZ() {
		return fmt.Sprintf("(%.9g, %.9g)", c.X, c.Y)
	}
	return fmt.Sprintf("(%.9g, %.9g, %.9g)", c.X, c.Y, c.Z)
}
