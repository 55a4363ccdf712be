package settlement

import (
	"fmt"

	"github.com/marscolony/simcore/internal/domain/goods"
	"github.com/marscolony/simcore/internal/domain/shared"
)

// Carrier is a surface vehicle capable of hauling a trade load between
// settlements. Capabilities are fixed at construction; only the reservation
// flag mutates.
type Carrier struct {
	name        string
	vehicleGood *goods.Good

	massCapacityKg float64
	fuelEfficiency float64 // km travelled per kg of fuel
	baseSpeedKmh   float64
	rangeKm        float64
	crewCapacity   int

	fuelResource *goods.Good

	reserved bool
}

// NewCarrier creates a carrier with validation.
func NewCarrier(name string, vehicleGood *goods.Good, massCapacityKg, fuelEfficiency, baseSpeedKmh, rangeKm float64, crewCapacity int, fuelResource *goods.Good) (*Carrier, error) {
	if name == "" {
		return nil, shared.NewValidationError("name", "cannot be empty")
	}
	if vehicleGood == nil || vehicleGood.Category() != goods.CategoryVehicle {
		return nil, shared.NewValidationError("vehicleGood", "must be a vehicle good")
	}
	if massCapacityKg <= 0 {
		return nil, shared.NewValidationError("massCapacityKg", "must be positive")
	}
	if fuelEfficiency <= 0 {
		return nil, shared.NewValidationError("fuelEfficiency", "must be positive")
	}
	if baseSpeedKmh <= 0 {
		return nil, shared.NewValidationError("baseSpeedKmh", "must be positive")
	}

	return &Carrier{
		name:           name,
		vehicleGood:    vehicleGood,
		massCapacityKg: massCapacityKg,
		fuelEfficiency: fuelEfficiency,
		baseSpeedKmh:   baseSpeedKmh,
		rangeKm:        rangeKm,
		crewCapacity:   crewCapacity,
		fuelResource:   fuelResource,
	}, nil
}

func (c *Carrier) Name() string             { return c.name }
func (c *Carrier) VehicleGood() *goods.Good { return c.vehicleGood }
func (c *Carrier) MassCapacityKg() float64  { return c.massCapacityKg }
func (c *Carrier) FuelEfficiency() float64  { return c.fuelEfficiency }
func (c *Carrier) BaseSpeedKmh() float64    { return c.baseSpeedKmh }
func (c *Carrier) RangeKm() float64         { return c.rangeKm }
func (c *Carrier) CrewCapacity() int        { return c.crewCapacity }
func (c *Carrier) FuelResource() *goods.Good { return c.fuelResource }

// Reserved reports whether the carrier is committed to a mission.
func (c *Carrier) Reserved() bool { return c.reserved }

// Reserve marks the carrier as committed to a mission.
func (c *Carrier) Reserve() { c.reserved = true }

// Release returns the carrier to the available pool.
func (c *Carrier) Release() { c.reserved = false }

func (c *Carrier) String() string {
	return fmt.Sprintf("Carrier[%s, cap=%.0fkg, range=%.0fkm]", c.name, c.massCapacityKg, c.rangeKm)
}
