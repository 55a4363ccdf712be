package goods

import "fmt"

// Well-known resource and equipment symbols used by mission cost estimates
// and trade eligibility checks.
const (
	SymbolOxygen = "oxygen"
	SymbolWater  = "water"
	SymbolFood   = "food"
	SymbolSuit   = "pressure suit"
)

// Catalog is the process-wide flyweight registry of goods. Every Good is
// constructed exactly once through the catalog, so identity comparison works
// everywhere downstream. Build a catalog once at startup and pass it to the
// components that need it; it is read-only after construction.
type Catalog struct {
	goods map[Category]map[string]*Good

	containerGoods map[ContainerType]*Good
}

// NewCatalog creates an empty goods catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		goods: map[Category]map[string]*Good{
			CategoryAmountResource: {},
			CategoryItemResource:   {},
			CategoryEquipment:      {},
			CategoryVehicle:        {},
		},
		containerGoods: map[ContainerType]*Good{},
	}
}

// NewDefaultCatalog creates a catalog pre-populated with the standard
// colony goods: life-support resources, containers and suits.
func NewDefaultCatalog() *Catalog {
	c := NewCatalog()
	c.RegisterAmountResource(SymbolOxygen, PhaseGas, true)
	c.RegisterAmountResource(SymbolWater, PhaseLiquid, true)
	c.RegisterAmountResource(SymbolFood, PhaseSolid, true)
	c.RegisterContainer(ContainerBag, "bag", 10, 50)
	c.RegisterContainer(ContainerBarrel, "barrel", 20, 200)
	c.RegisterContainer(ContainerGasCanister, "gas canister", 20, 50)
	c.RegisterEquipment(SymbolSuit, 45)
	return c
}

// RegisterAmountResource adds a bulk resource to the catalog and returns its
// flyweight. Registering the same symbol again returns the existing good.
func (c *Catalog) RegisterAmountResource(symbol string, phase Phase, lifeSupport bool) *Good {
	if g, ok := c.goods[CategoryAmountResource][symbol]; ok {
		return g
	}
	g := &Good{
		category:    CategoryAmountResource,
		symbol:      symbol,
		phase:       phase,
		lifeSupport: lifeSupport,
	}
	c.goods[CategoryAmountResource][symbol] = g
	return g
}

// RegisterItemResource adds a discrete part to the catalog.
func (c *Catalog) RegisterItemResource(symbol string, massPerItem float64, repairPart bool) *Good {
	if g, ok := c.goods[CategoryItemResource][symbol]; ok {
		return g
	}
	g := &Good{
		category:    CategoryItemResource,
		symbol:      symbol,
		massPerItem: massPerItem,
		repairPart:  repairPart,
	}
	c.goods[CategoryItemResource][symbol] = g
	return g
}

// RegisterEquipment adds a non-container equipment class to the catalog.
func (c *Catalog) RegisterEquipment(symbol string, baseMass float64) *Good {
	if g, ok := c.goods[CategoryEquipment][symbol]; ok {
		return g
	}
	g := &Good{
		category:    CategoryEquipment,
		symbol:      symbol,
		massPerItem: baseMass,
	}
	c.goods[CategoryEquipment][symbol] = g
	return g
}

// RegisterContainer adds a container equipment class with its carrying
// capacity, which defines the standard trade lot for matching resources.
func (c *Catalog) RegisterContainer(ct ContainerType, symbol string, baseMass, capacityKg float64) *Good {
	if g, ok := c.goods[CategoryEquipment][symbol]; ok {
		return g
	}
	g := &Good{
		category:    CategoryEquipment,
		symbol:      symbol,
		massPerItem: baseMass,
		container:   ct,
		capacity:    capacityKg,
	}
	c.goods[CategoryEquipment][symbol] = g
	c.containerGoods[ct] = g
	return g
}

// RegisterVehicle adds a vehicle class to the catalog.
func (c *Catalog) RegisterVehicle(symbol string) *Good {
	if g, ok := c.goods[CategoryVehicle][symbol]; ok {
		return g
	}
	g := &Good{category: CategoryVehicle, symbol: symbol}
	c.goods[CategoryVehicle][symbol] = g
	return g
}

// Lookup returns the flyweight for a category and symbol.
func (c *Catalog) Lookup(category Category, symbol string) (*Good, error) {
	g, ok := c.goods[category][symbol]
	if !ok {
		return nil, NewUnknownGoodError(category, symbol)
	}
	return g, nil
}

// MustLookup is Lookup for goods known to be registered; it panics on a
// missing symbol and is intended for catalog wiring at startup.
func (c *Catalog) MustLookup(category Category, symbol string) *Good {
	g, err := c.Lookup(category, symbol)
	if err != nil {
		panic(fmt.Sprintf("goods: %v", err))
	}
	return g
}

// ContainerGood returns the equipment good for a container type.
func (c *Catalog) ContainerGood(ct ContainerType) (*Good, error) {
	g, ok := c.containerGoods[ct]
	if !ok {
		return nil, NewUnknownGoodError(CategoryEquipment, string(ct))
	}
	return g, nil
}

// ContainerForResource returns the container equipment good that carries the
// given amount resource, based on its phase.
func (c *Catalog) ContainerForResource(resource *Good) (*Good, error) {
	if resource.Category() != CategoryAmountResource {
		return nil, NewUnknownGoodError(CategoryEquipment, resource.Symbol())
	}
	return c.ContainerGood(ContainerForPhase(resource.Phase()))
}

// TradeAmount returns the kilograms of an amount resource moved per trade
// lot: the capacity of its standard container.
func (c *Catalog) TradeAmount(resource *Good) float64 {
	g, err := c.ContainerForResource(resource)
	if err != nil {
		return 0
	}
	return g.capacity
}

// All returns every registered good. The order is unspecified.
func (c *Catalog) All() []*Good {
	var out []*Good
	for _, byName := range c.goods {
		for _, g := range byName {
			out = append(out, g)
		}
	}
	return out
}
