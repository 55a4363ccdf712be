package trading

import (
	"github.com/marscolony/simcore/internal/domain/goods"
	"github.com/marscolony/simcore/internal/domain/surface"
)

// Trader is the settlement-side view the valuator needs: identity, location,
// stock levels and marginal valuations. Implemented by settlement.Settlement.
type Trader interface {
	Name() string
	Location() surface.SphericalPoint

	// NumInStock returns how many of a good the settlement holds:
	// kilograms for amount resources, counts for everything else.
	NumInStock(g *goods.Good) float64

	// EmptyContainerCount returns the empty containers of a type on hand.
	EmptyContainerCount(ct goods.ContainerType) int

	// ValuePerUnit returns the marginal value of one unit of a good at a
	// hypothetical supply level. Must be pure: the optimizer calls it
	// repeatedly at hypothetical levels before any inventory moves.
	ValuePerUnit(g *goods.Good, hypotheticalSupply float64) float64
}

// Carrier is the vehicle capability view needed for load sizing and mission
// cost estimates. Implemented by settlement.Carrier.
type Carrier interface {
	Name() string
	VehicleGood() *goods.Good
	MassCapacityKg() float64
	FuelEfficiency() float64
	BaseSpeedKmh() float64
	RangeKm() float64
	CrewCapacity() int
	FuelResource() *goods.Good
}

// CreditLedger exposes the signed running balance between two settlements.
// Positive means the first settlement is owed value by the second.
type CreditLedger interface {
	Credit(a, b string) float64
}
