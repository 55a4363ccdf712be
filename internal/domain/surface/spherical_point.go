package surface

import (
	"fmt"
	"math"
)

const (
	// MarsRadiusKm is the planetary radius used for surface distances.
	MarsRadiusKm = 3393.0

	twoPi = 2.0 * math.Pi

	// Reference projection scale used for bearing calculations:
	// half the map circumference in pixels.
	halfCircumPixels = 1440.0

	// Kilometers per map unit at the reference projection scale.
	kmPerMapUnit = 7.4

	// Step size for chunked long-distance moves. The projection
	// formulas are only locally accurate, so positions are advanced
	// in fixed increments.
	stepDistanceKm = 10.0
)

// SphericalPoint represents a location on the planet surface in spherical
// coordinates. Phi is the polar angle in [0, pi] (0 = north pole) and theta
// is the azimuthal angle in [0, 2*pi) (0 = prime meridian, increasing east).
//
// Sines and cosines of both angles are cached and recomputed whenever an
// angle changes. They are never mutated independently.
type SphericalPoint struct {
	phi   float64
	theta float64

	sinPhi   float64
	cosPhi   float64
	sinTheta float64
	cosTheta float64
}

// NewSphericalPoint creates a point from raw phi/theta angles.
// Phi is clamped to [0, pi]; theta is reduced mod 2*pi and made non-negative.
func NewSphericalPoint(phi, theta float64) SphericalPoint {
	var p SphericalPoint
	p.setPhi(phi)
	p.setTheta(theta)
	return p
}

// ParseSphericalPoint creates a point from formatted latitude and longitude
// strings, e.g. "25.344 N" and "63.55 W".
func ParseSphericalPoint(latitude, longitude string) (SphericalPoint, error) {
	phi, err := ParseLatitude(latitude)
	if err != nil {
		return SphericalPoint{}, err
	}
	theta, err := ParseLongitude(longitude)
	if err != nil {
		return SphericalPoint{}, err
	}
	return NewSphericalPoint(phi, theta), nil
}

func (p *SphericalPoint) setPhi(phi float64) {
	switch {
	case phi < 0:
		p.phi = 0
	case phi > math.Pi:
		p.phi = math.Pi
	default:
		p.phi = phi
	}
	p.refreshTrig()
}

func (p *SphericalPoint) setTheta(theta float64) {
	p.theta = math.Abs(math.Mod(theta, twoPi))
	p.refreshTrig()
}

func (p *SphericalPoint) refreshTrig() {
	p.sinPhi = math.Sin(p.phi)
	p.cosPhi = math.Cos(p.phi)
	p.sinTheta = math.Sin(p.theta)
	p.cosTheta = math.Cos(p.theta)
}

// Phi returns the polar angle in radians.
func (p SphericalPoint) Phi() float64 { return p.phi }

// Theta returns the azimuthal angle in radians.
func (p SphericalPoint) Theta() float64 { return p.theta }

// Equals reports whether both angles match exactly.
func (p SphericalPoint) Equals(other SphericalPoint) bool {
	return p.phi == other.phi && p.theta == other.theta
}

// AngleTo returns the arc angle in radians between this point and another,
// using the spherical law of cosines. The result is in [0, pi]. The interior
// dot-product term is clamped to [-1, 1] to guard against floating-point
// overshoot at identical or antipodal points.
func (p SphericalPoint) AngleTo(other SphericalPoint) float64 {
	dot := p.cosPhi*other.cosPhi +
		p.sinPhi*other.sinPhi*math.Cos(math.Abs(p.theta-other.theta))

	if dot > 1.0 {
		dot = 1.0
	} else if dot < -1.0 {
		dot = -1.0
	}

	return math.Acos(dot)
}

// DistanceTo returns the great-circle distance in kilometers between this
// point and another.
func (p SphericalPoint) DistanceTo(other SphericalPoint) float64 {
	return p.AngleTo(other) * MarsRadiusKm
}

// PixelPoint is an integer pixel position on a projected map.
type PixelPoint struct {
	X int
	Y int
}

// RectPosition projects a target point into the rectangular frame centered on
// this point using an azimuthal projection. Rho is the projection radius,
// halfMap is half the map width in pixels and lowEdge is the lower edge
// offset. The result is rounded to the nearest integer pixel.
func (p SphericalPoint) RectPosition(target SphericalPoint, rho float64, halfMap, lowEdge int) PixelPoint {
	col := target.theta + (-math.Pi/2.0 - p.theta)
	x := rho * math.Sin(target.phi)

	bufX := int(math.Round(x*math.Cos(col))) + halfMap - lowEdge
	bufY := int(math.Round(x*(-p.cosPhi)*math.Sin(col)+rho*math.Cos(target.phi)*(-p.sinPhi))) + halfMap - lowEdge

	return PixelPoint{X: bufX, Y: bufY}
}

// RectToSpherical converts a rectangular XY displacement (in km) from this
// point into a new spherical location, using the default reference scale.
func (p SphericalPoint) RectToSpherical(x, y float64) SphericalPoint {
	return p.RectToSphericalWithScale(x, y, halfCircumPixels/math.Pi)
}

// RectToSphericalWithScale converts a rectangular XY displacement from this
// point into a new spherical location at the given projection radius.
//
// The longitude is recovered from asin, which is quadrant-ambiguous, so the
// result is corrected by an explicit four-way case on the signs of the two
// rotated rectangular components.
func (p SphericalPoint) RectToSphericalWithScale(x, y, rho float64) SphericalPoint {
	z := math.Sqrt(rho*rho - x*x - y*y)

	x2 := x
	y2 := y*p.cosPhi + z*p.sinPhi
	z2 := z*p.cosPhi - y*p.sinPhi

	x3 := x2*p.cosTheta + y2*p.sinTheta
	y3 := y2*p.cosTheta - x2*p.sinTheta
	z3 := z2

	newPhi := math.Acos(z3 / rho)
	newTheta := math.Asin(x3 / (rho * math.Sin(newPhi)))

	switch {
	case x3 >= 0 && y3 >= 0:
		// asin already in the correct quadrant
	case x3 >= 0 && y3 < 0:
		newTheta = math.Pi - newTheta
	case x3 < 0 && y3 < 0:
		newTheta = math.Pi - newTheta
	default: // x3 < 0 && y3 >= 0
		newTheta = twoPi + newTheta
	}

	return NewSphericalPoint(newPhi, newTheta)
}

// BearingTo returns the direction from this point to a target on the surface,
// where 0 is north and angles increase clockwise.
//
// The target is projected into this point's local frame at a fixed reference
// scale and the bearing derived from a quadrant-corrected arctangent. When
// the target projects onto the local origin, a sign heuristic on the raw
// angle deltas is used instead; that heuristic leaves the angle at 0 when
// the phi delta is 0 and the quadrant correction still applies afterwards.
func (p SphericalPoint) BearingTo(target SphericalPoint) Direction {
	rho := halfCircumPixels / math.Pi
	halfMap := 720

	pos := p.RectPosition(target, rho, halfMap, 0)
	x := pos.X - halfMap
	y := pos.Y - halfMap

	result := 0.0

	if x == 0 && y == 0 {
		angle := p.AngleTo(target)
		if angle <= math.Pi/2.0 && p.DistanceTo(target) > 1.0 {
			if target.phi-p.phi != 0 {
				result = math.Atan((target.theta - p.theta) / (target.phi - p.phi))
			}
		}
	} else {
		result = math.Atan(math.Abs(float64(x) / float64(y)))
	}

	if x < 0 {
		if y < 0 {
			result = twoPi - result
		} else {
			result = math.Pi + result
		}
	} else {
		if y >= 0 {
			result = math.Pi - result
		}
	}

	return NewDirection(result)
}

// Destination returns the location reached by travelling the given distance
// (in km) along a direction. The move is integrated in fixed 10 km steps so
// that projection error does not accumulate over long distances, with the
// remainder applied last.
func (p SphericalPoint) Destination(direction Direction, distanceKm float64) SphericalPoint {
	steps := 0
	remainder := distanceKm
	if distanceKm > stepDistanceKm {
		steps = int(distanceKm / stepDistanceKm)
		remainder = distanceKm - float64(steps)*stepDistanceKm
	}

	current := p
	for i := 0; i < steps; i++ {
		dx := direction.Sin() * (stepDistanceKm / kmPerMapUnit)
		dy := -direction.Cos() * (stepDistanceKm / kmPerMapUnit)
		current = current.RectToSpherical(dx, dy)
	}

	dx := direction.Sin() * (remainder / kmPerMapUnit)
	dy := -direction.Cos() * (remainder / kmPerMapUnit)
	return current.RectToSpherical(dx, dy)
}

// String returns the formatted latitude and longitude, e.g. "25.3 N 63.6 W".
func (p SphericalPoint) String() string {
	return fmt.Sprintf("%s %s", FormatLatitude(p.phi), FormatLongitude(p.theta))
}
