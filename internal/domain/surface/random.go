package surface

import (
	"math"
	"math/rand"
)

// RandomLatitude returns a random phi angle in [0, pi]. Summing two uniform
// quarter-turns biases the result away from the poles.
func RandomLatitude(rng *rand.Rand) float64 {
	return rng.Float64()*(math.Pi/2.0) + rng.Float64()*(math.Pi/2.0)
}

// RandomLongitude returns a random theta angle in [0, 2*pi).
func RandomLongitude(rng *rand.Rand) float64 {
	return rng.Float64() * twoPi
}

// RandomPoint returns a random surface location with pole-avoiding latitude.
func RandomPoint(rng *rand.Rand) SphericalPoint {
	return NewSphericalPoint(RandomLatitude(rng), RandomLongitude(rng))
}
