package goods

import "fmt"

// Category discriminates the kinds of tradable goods.
type Category string

const (
	// CategoryAmountResource is a bulk resource measured in kilograms
	// (water, oxygen, regolith). Traded in standard container lots.
	CategoryAmountResource Category = "AMOUNT_RESOURCE"

	// CategoryItemResource is a discrete manufactured part.
	CategoryItemResource Category = "ITEM_RESOURCE"

	// CategoryEquipment is a reusable equipment unit (containers, suits).
	CategoryEquipment Category = "EQUIPMENT"

	// CategoryVehicle is a vehicle class.
	CategoryVehicle Category = "VEHICLE"
)

// Phase is the physical phase of an amount resource. It determines which
// container type carries the resource on a trade.
type Phase string

const (
	PhaseSolid  Phase = "SOLID"
	PhaseLiquid Phase = "LIQUID"
	PhaseGas    Phase = "GAS"
)

// ContainerType identifies the equipment used to carry a bulk resource.
type ContainerType string

const (
	ContainerBag         ContainerType = "BAG"
	ContainerBarrel      ContainerType = "BARREL"
	ContainerGasCanister ContainerType = "GAS_CANISTER"
)

// ContainerForPhase maps a resource phase to its carrying container type.
func ContainerForPhase(phase Phase) ContainerType {
	switch phase {
	case PhaseSolid:
		return ContainerBag
	case PhaseLiquid:
		return ContainerBarrel
	default:
		return ContainerGasCanister
	}
}

// Good is a tradable good identity: a tagged union over amount resources,
// item resources, equipment classes and vehicle classes. Goods are immutable
// and deduplicated by the Catalog, so two lookups of the same symbol return
// the same pointer and identity comparison is safe.
type Good struct {
	category Category
	symbol   string

	// Amount resource fields.
	phase       Phase
	lifeSupport bool

	// Item resource and equipment fields.
	massPerItem float64
	repairPart  bool

	// Equipment fields.
	container ContainerType // zero value when not a container
	capacity  float64       // carrying capacity in kg for containers
}

// Category returns the good's category tag.
func (g *Good) Category() Category { return g.category }

// Symbol returns the good's identity within its category.
func (g *Good) Symbol() string { return g.symbol }

// Phase returns the physical phase of an amount resource good.
func (g *Good) Phase() Phase { return g.phase }

// IsLifeSupport reports whether an amount resource sustains crew life.
func (g *Good) IsLifeSupport() bool {
	return g.category == CategoryAmountResource && g.lifeSupport
}

// IsRepairPart reports whether an item resource is a spare repair part.
func (g *Good) IsRepairPart() bool {
	return g.category == CategoryItemResource && g.repairPart
}

// MassPerItem returns the unit mass in kilograms. For amount resources this
// is the standard trade lot mass (one container's worth); for item resources
// and equipment it is the per-unit mass; vehicles report zero since they are
// driven, not carried.
func (g *Good) MassPerItem(catalog *Catalog) float64 {
	switch g.category {
	case CategoryAmountResource:
		return catalog.TradeAmount(g)
	case CategoryItemResource, CategoryEquipment:
		return g.massPerItem
	default:
		return 0
	}
}

// ContainerType returns the container kind for container equipment goods,
// or the empty value for everything else.
func (g *Good) ContainerType() ContainerType { return g.container }

// IsContainer reports whether the good is container equipment.
func (g *Good) IsContainer() bool {
	return g.category == CategoryEquipment && g.container != ""
}

func (g *Good) String() string {
	return fmt.Sprintf("%s:%s", g.category, g.symbol)
}
