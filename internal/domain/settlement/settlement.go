package settlement

import (
	"fmt"

	"github.com/marscolony/simcore/internal/domain/goods"
	"github.com/marscolony/simcore/internal/domain/shared"
	"github.com/marscolony/simcore/internal/domain/surface"
)

// Settlement is the aggregate root for a single colony site: its location,
// demographics, goods inventory, vehicle pool and local market valuations.
//
// All mutation happens through methods so invariants hold: stored amounts
// never go negative, counts never go negative, and mission counters move in
// matched begin/end pairs.
type Settlement struct {
	name     string
	location surface.SphericalPoint

	population         int
	indoorPopulation   int
	populationCapacity int

	amounts   map[*goods.Good]float64
	items     map[*goods.Good]int
	equipment map[*goods.Good]int
	carriers  []*Carrier

	catalog *goods.Catalog
	market  *Market

	activeMissions    map[string]int
	embarkingMissions int

	// Survey value of collectable local resources, used by mission scoring.
	resourceMetric float64

	// Economic specialization divisor for mission probabilities.
	tourismFactor float64
}

// NewSettlement creates a settlement with an empty inventory.
func NewSettlement(name string, location surface.SphericalPoint, population, capacity int, catalog *goods.Catalog, market *Market) (*Settlement, error) {
	if name == "" {
		return nil, shared.NewValidationError("name", "cannot be empty")
	}
	if population < 0 {
		return nil, shared.NewValidationError("population", "cannot be negative")
	}
	if market == nil {
		market = NewMarket()
	}

	return &Settlement{
		name:               name,
		location:           location,
		population:         population,
		indoorPopulation:   population,
		populationCapacity: capacity,
		amounts:            map[*goods.Good]float64{},
		items:              map[*goods.Good]int{},
		equipment:          map[*goods.Good]int{},
		catalog:            catalog,
		market:             market,
		activeMissions:     map[string]int{},
		tourismFactor:      1.0,
	}, nil
}

// Identity and demographics

func (s *Settlement) Name() string                     { return s.name }
func (s *Settlement) Location() surface.SphericalPoint { return s.location }
func (s *Settlement) Population() int                  { return s.population }
func (s *Settlement) IndoorPopulation() int            { return s.indoorPopulation }
func (s *Settlement) PopulationCapacity() int          { return s.populationCapacity }
func (s *Settlement) Market() *Market                  { return s.market }
func (s *Settlement) Catalog() *goods.Catalog          { return s.catalog }

// SetIndoorPopulation updates the count of people currently inside.
func (s *Settlement) SetIndoorPopulation(n int) {
	if n < 0 {
		n = 0
	}
	s.indoorPopulation = n
}

// Amount resource inventory

// AmountStored returns the kilograms of a bulk resource in storage.
func (s *Settlement) AmountStored(g *goods.Good) float64 {
	return s.amounts[g]
}

// StoreAmount adds kilograms of a bulk resource to storage.
func (s *Settlement) StoreAmount(g *goods.Good, kg float64) {
	if kg <= 0 {
		return
	}
	s.amounts[g] += kg
}

// RetrieveAmount removes kilograms of a bulk resource from storage.
func (s *Settlement) RetrieveAmount(g *goods.Good, kg float64) error {
	have := s.amounts[g]
	if kg > have {
		return shared.NewInsufficientResourceError(s.name, g.Symbol(), kg, have)
	}
	s.amounts[g] = have - kg
	return nil
}

// Item and equipment inventory

// ItemCount returns the number of a discrete part in storage.
func (s *Settlement) ItemCount(g *goods.Good) int {
	return s.items[g]
}

// AddItems adds discrete parts to storage.
func (s *Settlement) AddItems(g *goods.Good, n int) {
	if n <= 0 {
		return
	}
	s.items[g] += n
}

// RemoveItems removes discrete parts from storage.
func (s *Settlement) RemoveItems(g *goods.Good, n int) error {
	have := s.items[g]
	if n > have {
		return shared.NewInsufficientResourceError(s.name, g.Symbol(), float64(n), float64(have))
	}
	s.items[g] = have - n
	return nil
}

// EquipmentCount returns the number of an equipment class in storage.
func (s *Settlement) EquipmentCount(g *goods.Good) int {
	return s.equipment[g]
}

// AddEquipment adds equipment units to storage.
func (s *Settlement) AddEquipment(g *goods.Good, n int) {
	if n <= 0 {
		return
	}
	s.equipment[g] += n
}

// RemoveEquipment removes equipment units from storage.
func (s *Settlement) RemoveEquipment(g *goods.Good, n int) error {
	have := s.equipment[g]
	if n > have {
		return shared.NewInsufficientResourceError(s.name, g.Symbol(), float64(n), float64(have))
	}
	s.equipment[g] = have - n
	return nil
}

// EmptyContainerCount returns the number of empty containers of a type.
func (s *Settlement) EmptyContainerCount(ct goods.ContainerType) int {
	g, err := s.catalog.ContainerGood(ct)
	if err != nil {
		return 0
	}
	return s.equipment[g]
}

// SuitCount returns the number of pressure suits in storage.
func (s *Settlement) SuitCount() int {
	g, err := s.catalog.Lookup(goods.CategoryEquipment, goods.SymbolSuit)
	if err != nil {
		return 0
	}
	return s.equipment[g]
}

// Vehicles

// AddCarrier adds a carrier vehicle to the settlement pool.
func (s *Settlement) AddCarrier(c *Carrier) {
	s.carriers = append(s.carriers, c)
}

// Carriers returns the settlement's vehicle pool.
func (s *Settlement) Carriers() []*Carrier {
	return s.carriers
}

// AvailableCarriers returns the number of unreserved carriers.
func (s *Settlement) AvailableCarriers() int {
	count := 0
	for _, c := range s.carriers {
		if !c.Reserved() {
			count++
		}
	}
	return count
}

// HasBackupCarrier reports whether a second unreserved carrier would remain
// after one departs on a mission.
func (s *Settlement) HasBackupCarrier() bool {
	return s.AvailableCarriers() >= 2
}

// ReserveCarrier reserves and returns an unreserved carrier.
func (s *Settlement) ReserveCarrier() (*Carrier, error) {
	for _, c := range s.carriers {
		if !c.Reserved() {
			c.Reserve()
			return c, nil
		}
	}
	return nil, shared.NewSettlementError(s.name, "no carrier available")
}

// NumInStock returns how many of a good the settlement holds, dispatching on
// the good's category: kilograms for amount resources, counts for items and
// equipment, and the number of unreserved matching vehicles.
func (s *Settlement) NumInStock(g *goods.Good) float64 {
	switch g.Category() {
	case goods.CategoryAmountResource:
		return s.amounts[g]
	case goods.CategoryItemResource:
		return float64(s.items[g])
	case goods.CategoryEquipment:
		return float64(s.equipment[g])
	case goods.CategoryVehicle:
		count := 0
		for _, c := range s.carriers {
			if c.VehicleGood() == g && !c.Reserved() {
				count++
			}
		}
		return float64(count)
	default:
		return 0
	}
}

// ValuePerUnit returns the market value of one unit of a good at a
// hypothetical supply level, without mutating inventory.
func (s *Settlement) ValuePerUnit(g *goods.Good, hypotheticalSupply float64) float64 {
	return s.market.ValuePerUnit(g, hypotheticalSupply)
}

// Mission tracking

// EmbarkingMissions returns the number of missions currently loading up.
func (s *Settlement) EmbarkingMissions() int { return s.embarkingMissions }

// ActiveMissions returns the number of active missions of a type.
func (s *Settlement) ActiveMissions(missionType string) int {
	return s.activeMissions[missionType]
}

// BeginMission records a mission of the given type starting to embark.
func (s *Settlement) BeginMission(missionType string) {
	s.embarkingMissions++
	s.activeMissions[missionType]++
}

// EndMission records a mission of the given type finishing.
func (s *Settlement) EndMission(missionType string) error {
	if s.activeMissions[missionType] == 0 {
		return shared.NewSettlementError(s.name, fmt.Sprintf("no active %s mission", missionType))
	}
	s.activeMissions[missionType]--
	if s.embarkingMissions > 0 {
		s.embarkingMissions--
	}
	return nil
}

// HasBaselineResources reports whether the settlement holds at least the
// given kilograms of each life-support resource.
func (s *Settlement) HasBaselineResources(minKg float64) bool {
	for _, symbol := range []string{goods.SymbolOxygen, goods.SymbolWater, goods.SymbolFood} {
		g, err := s.catalog.Lookup(goods.CategoryAmountResource, symbol)
		if err != nil || s.amounts[g] < minKg {
			return false
		}
	}
	return true
}

// ResourceMetric returns the survey value of collectable local resources.
func (s *Settlement) ResourceMetric() float64 { return s.resourceMetric }

// SetResourceMetric updates the local resource survey value.
func (s *Settlement) SetResourceMetric(v float64) { s.resourceMetric = v }

// TourismFactor returns the economic specialization divisor.
func (s *Settlement) TourismFactor() float64 { return s.tourismFactor }

// SetTourismFactor updates the economic specialization divisor.
// Values below 1 are rejected to keep it a pure divisor.
func (s *Settlement) SetTourismFactor(v float64) {
	if v >= 1 {
		s.tourismFactor = v
	}
}

func (s *Settlement) String() string {
	return fmt.Sprintf("Settlement[%s, pop=%d, at %s]", s.name, s.population, s.location)
}
