package core

import "github.com/geodesyworks/reproj/model"

// HelmertForward applies a datum's similarity transform to a geocentric
// coordinate, moving it into the WGS84 frame, in place. Rotations are small
// angles, so the rotation matrix is linearized.
func HelmertForward(p model.HelmertParams, c *model.Coordinate) {
	x, y, z := c.X, c.Y, c.Z
	c.X = p.M*(x-p.Rz*y+p.Ry*z) + p.Dx
	c.Y = p.M*(p.Rz*x+y-p.Rx*z) + p.Dy
	c.Z = p.M*(-p.Ry*x+p.Rx*y+z) + p.Dz
}

// HelmertInverse applies the algebraic inverse of HelmertForward, moving a
// WGS84 geocentric coordinate into the datum's frame, in place.
func HelmertInverse(p model.HelmertParams, c *model.Coordinate) {
	x := (c.X - p.Dx) / p.M
	y := (c.Y - p.Dy) / p.M
	z := (c.Z - p.Dz) / p.M
	c.X = x + p.Rz*y - p.Ry*z
	c.Y = -p.Rz*x + y + p.Rx*z
	c.Z = p.Ry*x - p.Rx*y + z
}
