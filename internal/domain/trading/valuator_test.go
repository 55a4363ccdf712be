package trading

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marscolony/simcore/internal/domain/goods"
	"github.com/marscolony/simcore/internal/domain/settlement"
	"github.com/marscolony/simcore/internal/domain/surface"
)

// newTradeCatalog builds a catalog with the default goods plus the vehicles
// and resources the trade scenarios use.
func newTradeCatalog() *goods.Catalog {
	catalog := goods.NewDefaultCatalog()
	catalog.RegisterVehicle("cargo rover")
	catalog.RegisterAmountResource("methane", goods.PhaseGas, false)
	catalog.RegisterItemResource("spare part", 2.5, true)
	return catalog
}

func newTradePost(t *testing.T, catalog *goods.Catalog, name string, theta float64) *settlement.Settlement {
	t.Helper()

	s, err := settlement.NewSettlement(name, surface.NewSphericalPoint(1.5707963, theta), 10, 10, catalog, settlement.NewMarket())
	require.NoError(t, err)
	return s
}

func newTradeRover(t *testing.T, catalog *goods.Catalog, capacityKg, rangeKm float64) *settlement.Carrier {
	t.Helper()

	rover := catalog.MustLookup(goods.CategoryVehicle, "cargo rover")
	methane := catalog.MustLookup(goods.CategoryAmountResource, "methane")
	c, err := settlement.NewCarrier("MC-1", rover, capacityKg, 2.0, 30, rangeKm, 4, methane)
	require.NoError(t, err)
	return c
}

func TestDetermineLoadLimitedByContainers(t *testing.T) {
	catalog := newTradeCatalog()
	water := catalog.MustLookup(goods.CategoryAmountResource, goods.SymbolWater)
	barrel, _ := catalog.ContainerGood(goods.ContainerBarrel)

	home := newTradePost(t, catalog, "home", 0)
	home.Market().SetBaseValue(water, 10)

	away := newTradePost(t, catalog, "away", 0.05)
	away.Market().SetBaseValue(water, 2)
	away.StoreAmount(water, 2000)
	away.AddEquipment(barrel, 5)

	v := NewValuator(catalog, nil, 2)
	carrier := newTradeRover(t, catalog, 2500, 1000)

	load := v.DetermineLoad(home, away, carrier, 1e18)

	assert.Equal(t, 5, load.Quantity(water), "every empty barrel should be filled")
	assert.Equal(t, 5, load.Quantity(barrel))
	assert.InDelta(t, 1100.0, load.MassKg(catalog), 1e-9)
}

func TestDetermineLoadRespectsCapacity(t *testing.T) {
	catalog := newTradeCatalog()
	water := catalog.MustLookup(goods.CategoryAmountResource, goods.SymbolWater)
	barrel, _ := catalog.ContainerGood(goods.ContainerBarrel)

	home := newTradePost(t, catalog, "home", 0)
	home.Market().SetBaseValue(water, 10)

	away := newTradePost(t, catalog, "away", 0.05)
	away.Market().SetBaseValue(water, 2)
	away.StoreAmount(water, 4000)
	away.AddEquipment(barrel, 20)

	v := NewValuator(catalog, nil, 2)

	// 1000 kg of capacity is reserved for mission equipment; the remaining
	// 440 kg fits exactly two 200 kg lots with their 20 kg barrels.
	carrier := newTradeRover(t, catalog, 1440, 1000)

	load := v.DetermineLoad(home, away, carrier, 1e18)

	assert.Equal(t, 2, load.Quantity(water))
	assert.Equal(t, 2, load.Quantity(barrel))
	assert.LessOrEqual(t, load.MassKg(catalog), carrier.MassCapacityKg()-missionBaseMassKg+1e-9)
}

func TestDetermineLoadKeepsLifeSupportReserve(t *testing.T) {
	catalog := newTradeCatalog()
	oxygen := catalog.MustLookup(goods.CategoryAmountResource, goods.SymbolOxygen)
	canister, _ := catalog.ContainerGood(goods.ContainerGasCanister)

	home := newTradePost(t, catalog, "home", 0)
	home.Market().SetBaseValue(oxygen, 10)

	away := newTradePost(t, catalog, "away", 0.05)
	away.Market().SetBaseValue(oxygen, 1)
	away.StoreAmount(oxygen, 200)
	away.AddEquipment(canister, 5)

	v := NewValuator(catalog, nil, 2)
	carrier := newTradeRover(t, catalog, 2500, 1000)

	load := v.DetermineLoad(home, away, carrier, 1e18)

	// 200 kg of oxygen is four 50 kg lots; selling stops once less than
	// 100 kg would remain at the seller.
	assert.Equal(t, 2, load.Quantity(oxygen))
	assert.Equal(t, 2, load.Quantity(canister))
}

func TestDetermineLoadKeepsSuitReserve(t *testing.T) {
	catalog := newTradeCatalog()
	suit := catalog.MustLookup(goods.CategoryEquipment, goods.SymbolSuit)

	home := newTradePost(t, catalog, "home", 0)
	home.Market().SetBaseValue(suit, 20)

	away := newTradePost(t, catalog, "away", 0.05)
	away.Market().SetBaseValue(suit, 1)
	away.AddEquipment(suit, 5)

	v := NewValuator(catalog, nil, 2)
	carrier := newTradeRover(t, catalog, 2500, 1000)

	load := v.DetermineLoad(home, away, carrier, 1e18)

	// Crew size 2 keeps crew+2 suits at the seller.
	assert.Equal(t, 1, load.Quantity(suit))
}

func TestDetermineLoadKeepsRepairPartReserve(t *testing.T) {
	catalog := newTradeCatalog()
	part := catalog.MustLookup(goods.CategoryItemResource, "spare part")

	v := NewValuator(catalog, nil, 2)
	carrier := newTradeRover(t, catalog, 2500, 1000)

	t.Run("at the reserve nothing trades", func(t *testing.T) {
		home := newTradePost(t, catalog, "home", 0)
		home.Market().SetBaseValue(part, 5)
		away := newTradePost(t, catalog, "away", 0.05)
		away.Market().SetBaseValue(part, 5)
		away.AddItems(part, 20)

		load := v.DetermineLoad(home, away, carrier, 1e18)

		assert.Zero(t, load.Quantity(part))
	})

	t.Run("above the reserve the surplus trades", func(t *testing.T) {
		home := newTradePost(t, catalog, "home", 0)
		home.Market().SetBaseValue(part, 5)
		away := newTradePost(t, catalog, "away", 0.05)
		away.Market().SetBaseValue(part, 5)
		away.AddItems(part, 30)

		load := v.DetermineLoad(home, away, carrier, 1e18)

		assert.Positive(t, load.Quantity(part))
	})
}

func TestDetermineLoadExcludesSoleOwnVehicle(t *testing.T) {
	catalog := newTradeCatalog()
	rover := catalog.MustLookup(goods.CategoryVehicle, "cargo rover")

	v := NewValuator(catalog, nil, 2)
	carrier := newTradeRover(t, catalog, 2500, 1000)

	home := newTradePost(t, catalog, "home", 0)
	home.Market().SetBaseValue(rover, 100)

	t.Run("a settlement's last rover stays", func(t *testing.T) {
		away := newTradePost(t, catalog, "away", 0.05)
		away.Market().SetBaseValue(rover, 1)
		away.AddCarrier(newTradeRover(t, catalog, 2500, 1000))

		load := v.DetermineLoad(home, away, carrier, 1e18)

		assert.Zero(t, load.Quantity(rover))
	})

	t.Run("a spare rover trades, and only one per load", func(t *testing.T) {
		away := newTradePost(t, catalog, "away", 0.05)
		away.Market().SetBaseValue(rover, 1)
		away.AddCarrier(newTradeRover(t, catalog, 2500, 1000))
		away.AddCarrier(newTradeRover(t, catalog, 2500, 1000))

		load := v.DetermineLoad(home, away, carrier, 1e18)

		assert.Equal(t, 1, load.Quantity(rover))
	})
}

func TestLoadValueBuyAndSell(t *testing.T) {
	catalog := newTradeCatalog()
	part := catalog.MustLookup(goods.CategoryItemResource, "spare part")

	post := newTradePost(t, catalog, "home", 0)
	post.Market().SetBaseValue(part, 10)
	post.AddItems(part, 5)

	v := NewValuator(catalog, nil, 2)

	load := Load{}
	load.add(part, 3)

	// Buying grows the hypothetical supply unit by unit: levels 5, 6, 7.
	buy := 10.0/1.05 + 10.0/1.06 + 10.0/1.07
	assert.InDelta(t, buy, v.LoadValue(load, post, true), 1e-9)

	// Selling shrinks it: levels 5, 4, 3.
	sell := 10.0/1.05 + 10.0/1.04 + 10.0/1.03
	assert.InDelta(t, sell, v.LoadValue(load, post, false), 1e-9)
}

func TestEstimateMissionCost(t *testing.T) {
	catalog := newTradeCatalog()
	methane := catalog.MustLookup(goods.CategoryAmountResource, "methane")

	home := newTradePost(t, catalog, "home", 0)
	home.Market().SetBaseValue(methane, 1)

	v := NewValuator(catalog, nil, 2)
	carrier := newTradeRover(t, catalog, 2500, 1000)

	// 1000 km at 2 km/kg with the 1.2 safety factor burns 600 kg of
	// methane: twelve 50 kg lots, each valued at the zero-supply price
	// since home holds none.
	cost := v.EstimateMissionCost(home, carrier, 1000)
	assert.InDelta(t, 600.0, cost, 1e-9)

	shorter := v.EstimateMissionCost(home, carrier, 500)
	assert.Less(t, shorter, cost)
}

func TestBestTradeProfit(t *testing.T) {
	catalog := newTradeCatalog()
	water := catalog.MustLookup(goods.CategoryAmountResource, goods.SymbolWater)
	barrel, _ := catalog.ContainerGood(goods.ContainerBarrel)

	home := newTradePost(t, catalog, "home", 0)
	home.Market().SetBaseValue(water, 10)

	stock := func(name string, theta float64) *settlement.Settlement {
		s := newTradePost(t, catalog, name, theta)
		s.Market().SetBaseValue(water, 0.5)
		s.StoreAmount(water, 2000)
		s.AddEquipment(barrel, 5)
		return s
	}

	// 0.05 rad on the Mars sphere is about 170 km, 0.5 rad about 1700 km.
	near := stock("near", 0.05)
	far := stock("far", 0.5)

	v := NewValuator(catalog, nil, 2)
	carrier := newTradeRover(t, catalog, 2500, 1000)

	t.Run("picks a profitable partner in range", func(t *testing.T) {
		profit, partner := v.BestTradeProfit(home, carrier, []Trader{home, near, far})

		require.NotNil(t, partner)
		assert.Equal(t, "near", partner.Name())
		assert.Positive(t, profit)
	})

	t.Run("skips partners beyond safe round-trip range", func(t *testing.T) {
		profit, partner := v.BestTradeProfit(home, carrier, []Trader{far})

		assert.Nil(t, partner)
		assert.Zero(t, profit)
	})
}

func TestDesiredBuyLoadBalancesCredit(t *testing.T) {
	catalog := newTradeCatalog()
	food := catalog.MustLookup(goods.CategoryAmountResource, goods.SymbolFood)
	bag, _ := catalog.ContainerGood(goods.ContainerBag)

	home := newTradePost(t, catalog, "home", 0)
	home.Market().SetBaseValue(food, 1)

	// The partner values its food higher than home does, so no food trades
	// on margin alone.
	away := newTradePost(t, catalog, "away", 0.05)
	away.Market().SetBaseValue(food, 5)
	away.StoreAmount(food, 500)
	away.AddEquipment(bag, 10)

	carrier := newTradeRover(t, catalog, 2500, 1000)

	t.Run("without credit nothing trades", func(t *testing.T) {
		v := NewValuator(catalog, settlement.NewCreditLedger(), 2)

		load := v.DesiredBuyLoad(home, carrier, away)

		assert.Zero(t, load.Quantity(food))
	})

	t.Run("outstanding credit pulls in non-profit goods", func(t *testing.T) {
		ledger := settlement.NewCreditLedger()
		ledger.Add("home", "away", 100)
		v := NewValuator(catalog, ledger, 2)

		load := v.DesiredBuyLoad(home, carrier, away)

		assert.Positive(t, load.Quantity(food))
	})
}
