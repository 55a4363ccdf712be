package simulation

import (
	"context"
	"io"
	"log"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marscolony/simcore/internal/domain/goods"
	"github.com/marscolony/simcore/internal/domain/settlement"
	"github.com/marscolony/simcore/internal/domain/shared"
	"github.com/marscolony/simcore/internal/domain/surface"
	"github.com/marscolony/simcore/internal/domain/task"
	"github.com/marscolony/simcore/internal/domain/trading"
)

func newSimCatalog() *goods.Catalog {
	catalog := goods.NewDefaultCatalog()
	RegisterSimulationGoods(catalog)
	return catalog
}

func newSimSettlement(t *testing.T, catalog *goods.Catalog, name string, theta float64, population int) *settlement.Settlement {
	t.Helper()

	s, err := settlement.NewSettlement(name, surface.NewSphericalPoint(1.5707963, theta), population, population, catalog, settlement.NewMarket())
	require.NoError(t, err)

	for _, symbol := range []string{goods.SymbolOxygen, goods.SymbolWater, goods.SymbolFood} {
		g := catalog.MustLookup(goods.CategoryAmountResource, symbol)
		s.StoreAmount(g, 1000)
	}
	return s
}

func quietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func newSimRover(t *testing.T, catalog *goods.Catalog, name string) *settlement.Carrier {
	t.Helper()

	rover := catalog.MustLookup(goods.CategoryVehicle, SymbolRover)
	methane := catalog.MustLookup(goods.CategoryAmountResource, SymbolMethane)
	c, err := settlement.NewCarrier(name, rover, 2500, 2.0, 30, 1000, 4, methane)
	require.NoError(t, err)
	return c
}

func TestWindowAt(t *testing.T) {
	s := NewService(DefaultParams(), newSimCatalog(), nil, quietLogger(), nil)

	assert.Equal(t, task.OffHours, s.windowAt(1))
	assert.Equal(t, task.OffHours, s.windowAt(5))
	assert.Equal(t, task.WorkHours, s.windowAt(6))
	assert.Equal(t, task.WorkHours, s.windowAt(17))
	assert.Equal(t, task.OffHours, s.windowAt(18))
	assert.Equal(t, task.OffHours, s.windowAt(23))

	// Hour 25 is 0.34 into the second sol.
	assert.Equal(t, task.OffHours, s.windowAt(25))
	assert.Equal(t, task.WorkHours, s.windowAt(31))
}

func TestTickConsumesLifeSupport(t *testing.T) {
	catalog := newSimCatalog()
	s := NewService(DefaultParams(), catalog, nil, quietLogger(), rand.New(rand.NewSource(1)))
	post := newSimSettlement(t, catalog, "Port Lowell", 0, 10)
	s.AddSettlement(post, nil)

	require.NoError(t, s.Tick(context.Background()))

	perHour := 10.0 / 24.66
	water := catalog.MustLookup(goods.CategoryAmountResource, goods.SymbolWater)
	oxygen := catalog.MustLookup(goods.CategoryAmountResource, goods.SymbolOxygen)
	food := catalog.MustLookup(goods.CategoryAmountResource, goods.SymbolFood)

	assert.InDelta(t, 1000-4.0*perHour, post.AmountStored(water), 1e-9)
	assert.InDelta(t, 1000-1.0*perHour, post.AmountStored(oxygen), 1e-9)
	assert.InDelta(t, 1000-1.5*perHour, post.AmountStored(food), 1e-9)
	assert.Equal(t, int64(1), s.Ticks())
}

func TestTickRunsWorkBehaviors(t *testing.T) {
	catalog := newSimCatalog()
	regolith := catalog.MustLookup(goods.CategoryAmountResource, SymbolRegolith)

	s := NewService(DefaultParams(), catalog, nil, quietLogger(), rand.New(rand.NewSource(7)))
	post := newSimSettlement(t, catalog, "Port Lowell", 0, 10)
	post.SetResourceMetric(4000)

	// Maintenance weighted out so the only eligible work behavior is
	// regolith collection.
	digger := NewSettler("ada", RoleAreologist, map[string]float64{BehaviorMaintenance: 0})
	s.AddSettlement(post, []*Settler{digger})

	ctx := context.Background()
	for i := 0; i < 7; i++ {
		require.NoError(t, s.Tick(ctx))
	}

	// Hours 1 through 5 are off shift; hours 6 and 7 each dig one load.
	assert.InDelta(t, 2*regolithYieldKg, post.AmountStored(regolith), 1e-9)
	assert.InDelta(t, 4000-2*regolithMetricDecay, post.ResourceMetric(), 1e-9)
}

func TestTickStopsOnCancelledContext(t *testing.T) {
	catalog := newSimCatalog()
	s := NewService(DefaultParams(), catalog, nil, quietLogger(), rand.New(rand.NewSource(1)))
	post := newSimSettlement(t, catalog, "Port Lowell", 0, 10)
	s.AddSettlement(post, []*Settler{NewSettler("ada", RoleGeneralist, nil)})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, s.Tick(ctx))
}

func TestSettlerJobModifier(t *testing.T) {
	s := NewSettler("ada", RoleTrader, map[string]float64{BehaviorTradeMission: 2})

	assert.InDelta(t, 2.0, s.JobModifier(BehaviorTradeMission), 1e-9)
	assert.InDelta(t, 1.0, s.JobModifier(BehaviorRest), 1e-9)
	assert.Equal(t, RoleTrader, s.Role())
}

func TestRunTradeMission(t *testing.T) {
	catalog := newSimCatalog()
	water := catalog.MustLookup(goods.CategoryAmountResource, goods.SymbolWater)
	barrel, _ := catalog.ContainerGood(goods.ContainerBarrel)

	home, err := settlement.NewSettlement("home", surface.NewSphericalPoint(1.5707963, 0), 10, 10, catalog, settlement.NewMarket())
	require.NoError(t, err)
	home.Market().SetBaseValue(water, 10)
	home.AddCarrier(newSimRover(t, catalog, "MC-1"))

	away, err := settlement.NewSettlement("away", surface.NewSphericalPoint(1.5707963, 0.05), 10, 10, catalog, settlement.NewMarket())
	require.NoError(t, err)
	away.Market().SetBaseValue(water, 0.5)
	away.StoreAmount(water, 2000)
	away.AddEquipment(barrel, 5)

	ledger := settlement.NewCreditLedger()
	valuator := trading.NewValuator(catalog, ledger, 2)

	runner := &missionRunner{
		catalog:   catalog,
		valuator:  valuator,
		ledger:    ledger,
		clock:     shared.NewMockClock(time.Date(2045, 3, 1, 0, 0, 0, 0, time.UTC)),
		logger:    quietLogger(),
		peers:     func(*settlement.Settlement) []*settlement.Settlement { return []*settlement.Settlement{away} },
		reviewers: func(*settlement.Settlement) []string { return []string{"ada", "grace"} },
	}

	settler := NewSettler("ada", RoleTrader, nil)
	require.NoError(t, runner.RunTradeMission(context.Background(), home, settler))

	// Five barrels limit the load to five 200 kg water lots.
	assert.InDelta(t, 1000.0, home.AmountStored(water), 1e-9)
	assert.InDelta(t, 1000.0, away.AmountStored(water), 1e-9)
	assert.Equal(t, 5, home.EquipmentCount(barrel))
	assert.Zero(t, away.EquipmentCount(barrel))

	// Home sold nothing, so it owes away the value received.
	received := 2000.0 + 2000.0/3 + 2000.0/5 + 2000.0/7 + 2000.0/9
	assert.InDelta(t, -received, ledger.Credit("home", "away"), 1e-6)

	// The mission wound down: carrier released, counters back to zero.
	assert.Equal(t, 1, home.AvailableCarriers())
	assert.Zero(t, home.ActiveMissions(BehaviorTradeMission))
	assert.Zero(t, home.EmbarkingMissions())
}

func TestRunTradeMissionNoPartner(t *testing.T) {
	catalog := newSimCatalog()

	home, err := settlement.NewSettlement("home", surface.NewSphericalPoint(1.5707963, 0), 10, 10, catalog, settlement.NewMarket())
	require.NoError(t, err)
	home.AddCarrier(newSimRover(t, catalog, "MC-1"))

	ledger := settlement.NewCreditLedger()
	runner := &missionRunner{
		catalog:   catalog,
		valuator:  trading.NewValuator(catalog, ledger, 2),
		ledger:    ledger,
		clock:     shared.NewRealClock(),
		logger:    quietLogger(),
		peers:     func(*settlement.Settlement) []*settlement.Settlement { return nil },
		reviewers: func(*settlement.Settlement) []string { return []string{"ada"} },
	}

	require.NoError(t, runner.RunTradeMission(context.Background(), home, NewSettler("ada", RoleTrader, nil)))

	assert.Equal(t, 1, home.AvailableCarriers(), "carrier released when no partner found")
	assert.Zero(t, home.EmbarkingMissions())
}
