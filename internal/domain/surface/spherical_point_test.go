package surface

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAngleTo_IdentityIsZero(t *testing.T) {
	points := []SphericalPoint{
		NewSphericalPoint(0, 0),
		NewSphericalPoint(math.Pi/2, math.Pi/4),
		NewSphericalPoint(math.Pi, 1.5),
		NewSphericalPoint(1.234, 5.678),
	}

	for _, p := range points {
		assert.Equal(t, 0.0, p.AngleTo(p))
		assert.Equal(t, 0.0, p.DistanceTo(p))
	}
}

func TestAngleTo_SymmetricAndInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 200; i++ {
		p := RandomPoint(rng)
		q := RandomPoint(rng)

		pq := p.AngleTo(q)
		qp := q.AngleTo(p)

		assert.InDelta(t, pq, qp, 1e-12)
		assert.GreaterOrEqual(t, pq, 0.0)
		assert.LessOrEqual(t, pq, math.Pi)
	}
}

func TestAngleTo_Antipodal(t *testing.T) {
	p := NewSphericalPoint(math.Pi/2, 0)
	q := NewSphericalPoint(math.Pi/2, math.Pi)

	assert.InDelta(t, math.Pi, p.AngleTo(q), 1e-9)
}

func TestNewSphericalPoint_ClampsAndReduces(t *testing.T) {
	assert.Equal(t, 0.0, NewSphericalPoint(-1, 0).Phi())
	assert.Equal(t, math.Pi, NewSphericalPoint(4, 0).Phi())

	p := NewSphericalPoint(1, 2*math.Pi+0.5)
	assert.InDelta(t, 0.5, p.Theta(), 1e-12)
}

func TestRectToSpherical_ZeroDeltaRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(11))

	for i := 0; i < 200; i++ {
		// Stay away from the poles, where longitude degenerates.
		phi := 0.2 + rng.Float64()*(math.Pi-0.4)
		theta := rng.Float64() * 2 * math.Pi
		p := NewSphericalPoint(phi, theta)

		back := p.RectToSpherical(0, 0)

		assert.InDelta(t, p.Phi(), back.Phi(), 1e-6)
		assert.InDelta(t, p.Theta(), back.Theta(), 1e-6)
	}
}

func TestBearingTo_CardinalDirections(t *testing.T) {
	origin := NewSphericalPoint(math.Pi/2, 0)

	north := NewSphericalPoint(math.Pi/2-0.1, 0)
	assert.InDelta(t, 0.0, origin.BearingTo(north).Radians(), 1e-6)

	east := NewSphericalPoint(math.Pi/2, 0.1)
	assert.InDelta(t, math.Pi/2, origin.BearingTo(east).Radians(), 1e-6)

	south := NewSphericalPoint(math.Pi/2+0.1, 0)
	assert.InDelta(t, math.Pi, origin.BearingTo(south).Radians(), 1e-6)

	west := NewSphericalPoint(math.Pi/2, 2*math.Pi-0.1)
	assert.InDelta(t, 3*math.Pi/2, origin.BearingTo(west).Radians(), 1e-6)
}

func TestBearingTo_DegenerateSameLatitudeNeighbor(t *testing.T) {
	// A target close enough to project onto the local origin but more than
	// a kilometer away, at identical latitude. The fallback heuristic
	// cannot resolve a direction from a zero phi delta, so the quadrant
	// correction alone decides the result. Pinned, not corrected.
	origin := NewSphericalPoint(math.Pi/2, 0)
	target := NewSphericalPoint(math.Pi/2, 4e-4)

	require.Greater(t, origin.DistanceTo(target), 1.0)

	assert.InDelta(t, math.Pi, origin.BearingTo(target).Radians(), 1e-9)
}

func TestDestination_EastAlongEquator(t *testing.T) {
	origin := NewSphericalPoint(math.Pi/2, 1.0)
	east := NewDirection(math.Pi / 2)

	dest := origin.Destination(east, 100)

	wantTheta := 1.0 + 100.0/MarsRadiusKm
	assert.InDelta(t, math.Pi/2, dest.Phi(), 1e-3)
	assert.InDelta(t, wantTheta, dest.Theta(), 1e-3)
	assert.InDelta(t, 100.0, origin.DistanceTo(dest), 1.0)
}

func TestDestination_ZeroDistanceStaysPut(t *testing.T) {
	origin := NewSphericalPoint(1.2, 0.7)

	dest := origin.Destination(NewDirection(0.3), 0)

	assert.InDelta(t, origin.Phi(), dest.Phi(), 1e-9)
	assert.InDelta(t, origin.Theta(), dest.Theta(), 1e-9)
}

func TestDestination_RoundTripOpposite(t *testing.T) {
	origin := NewSphericalPoint(math.Pi/2-0.3, 2.0)

	out := origin.Destination(NewDirection(math.Pi/2), 250)
	back := out.Destination(NewDirection(3*math.Pi/2), 250)

	assert.InDelta(t, 0.0, origin.DistanceTo(back), 5.0)
}

func TestString_FormatsCoordinates(t *testing.T) {
	p := NewSphericalPoint(0, 0)
	assert.Equal(t, "0.0 N 0.0 E", p.String())
}
