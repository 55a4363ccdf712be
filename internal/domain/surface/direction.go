package surface

import "math"

// Direction is a compass heading in radians, where 0 is north and angles
// increase clockwise. The value is reduced to [0, 2*pi) on construction and
// its sine and cosine are cached.
type Direction struct {
	radians float64
	sin     float64
	cos     float64
}

// NewDirection creates a direction from an angle in radians.
func NewDirection(radians float64) Direction {
	r := math.Mod(radians, twoPi)
	if r < 0 {
		r += twoPi
	}
	return Direction{
		radians: r,
		sin:     math.Sin(r),
		cos:     math.Cos(r),
	}
}

// Radians returns the heading angle in radians.
func (d Direction) Radians() float64 { return d.radians }

// Sin returns the cached sine of the heading.
func (d Direction) Sin() float64 { return d.sin }

// Cos returns the cached cosine of the heading.
func (d Direction) Cos() float64 { return d.cos }
