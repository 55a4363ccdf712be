package settlement

import "github.com/marscolony/simcore/internal/domain/goods"

// Market holds a settlement's demand-side valuations. The value of the Nth
// unit of a good follows a diminishing-marginal-value law: a monotonically
// decreasing function of the hypothetical supply level. Valuation is pure;
// the optimizer re-evaluates it at hypothetical supply levels many times
// before any inventory actually moves.
type Market struct {
	baseValues map[*goods.Good]float64
	scale      float64
}

// DefaultSupplyScale is the supply level at which a good's marginal value
// has halved from its base value.
const DefaultSupplyScale = 100.0

// NewMarket creates a market with the default diminishing-returns scale.
func NewMarket() *Market {
	return NewMarketWithScale(DefaultSupplyScale)
}

// NewMarketWithScale creates a market with a custom diminishing-returns
// scale. Smaller scales make value fall off faster with supply.
func NewMarketWithScale(scale float64) *Market {
	if scale <= 0 {
		scale = DefaultSupplyScale
	}
	return &Market{
		baseValues: map[*goods.Good]float64{},
		scale:      scale,
	}
}

// SetBaseValue sets the zero-supply value of one unit of a good.
func (m *Market) SetBaseValue(g *goods.Good, value float64) {
	if value < 0 {
		value = 0
	}
	m.baseValues[g] = value
}

// BaseValue returns the zero-supply value of one unit of a good.
// Goods never valued return 0 and are effectively untradable here.
func (m *Market) BaseValue(g *goods.Good) float64 {
	return m.baseValues[g]
}

// ValuePerUnit returns the marginal value of one unit of a good at a
// hypothetical supply level.
func (m *Market) ValuePerUnit(g *goods.Good, supply float64) float64 {
	base := m.baseValues[g]
	if base == 0 {
		return 0
	}
	if supply < 0 {
		supply = 0
	}
	return base / (1.0 + supply/m.scale)
}
