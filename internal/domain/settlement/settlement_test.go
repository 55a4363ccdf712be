package settlement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marscolony/simcore/internal/domain/goods"
	"github.com/marscolony/simcore/internal/domain/shared"
	"github.com/marscolony/simcore/internal/domain/surface"
)

func newTestSettlement(t *testing.T, population int) (*Settlement, *goods.Catalog) {
	t.Helper()

	catalog := goods.NewDefaultCatalog()
	s, err := NewSettlement("Port Lowell", surface.NewSphericalPoint(1.2, 0.5), population, population, catalog, NewMarket())
	require.NoError(t, err)
	return s, catalog
}

func newTestCarrier(t *testing.T, name string, catalog *goods.Catalog) *Carrier {
	t.Helper()

	rover := catalog.RegisterVehicle("cargo rover")
	methane := catalog.RegisterAmountResource("methane", goods.PhaseGas, false)
	c, err := NewCarrier(name, rover, 2500, 2.0, 30, 1000, 4, methane)
	require.NoError(t, err)
	return c
}

func TestNewSettlementValidation(t *testing.T) {
	catalog := goods.NewDefaultCatalog()
	point := surface.NewSphericalPoint(1.0, 1.0)

	_, err := NewSettlement("", point, 10, 10, catalog, nil)
	assert.Error(t, err)

	_, err = NewSettlement("X", point, -1, 10, catalog, nil)
	assert.Error(t, err)

	s, err := NewSettlement("X", point, 10, 12, catalog, nil)
	require.NoError(t, err)
	assert.NotNil(t, s.Market(), "nil market should be replaced with an empty one")
	assert.Equal(t, 10, s.IndoorPopulation())
}

func TestAmountStorage(t *testing.T) {
	s, catalog := newTestSettlement(t, 10)
	water := catalog.MustLookup(goods.CategoryAmountResource, goods.SymbolWater)

	s.StoreAmount(water, 300)
	s.StoreAmount(water, -50)

	assert.InDelta(t, 300.0, s.AmountStored(water), 1e-9)

	require.NoError(t, s.RetrieveAmount(water, 120))
	assert.InDelta(t, 180.0, s.AmountStored(water), 1e-9)

	err := s.RetrieveAmount(water, 200)
	var insufficient *shared.InsufficientResourceError
	require.ErrorAs(t, err, &insufficient)
	assert.InDelta(t, 180.0, s.AmountStored(water), 1e-9, "failed retrieval should not change stock")
}

func TestItemAndEquipmentStorage(t *testing.T) {
	s, catalog := newTestSettlement(t, 10)
	part := catalog.RegisterItemResource("spare part", 2.5, true)
	suit := catalog.MustLookup(goods.CategoryEquipment, goods.SymbolSuit)

	s.AddItems(part, 6)
	require.NoError(t, s.RemoveItems(part, 2))
	assert.Equal(t, 4, s.ItemCount(part))
	assert.Error(t, s.RemoveItems(part, 5))

	s.AddEquipment(suit, 3)
	require.NoError(t, s.RemoveEquipment(suit, 1))
	assert.Equal(t, 2, s.EquipmentCount(suit))
	assert.Equal(t, 2, s.SuitCount())
	assert.Error(t, s.RemoveEquipment(suit, 3))
}

func TestEmptyContainerCount(t *testing.T) {
	s, catalog := newTestSettlement(t, 10)
	barrel, err := catalog.ContainerGood(goods.ContainerBarrel)
	require.NoError(t, err)

	assert.Zero(t, s.EmptyContainerCount(goods.ContainerBarrel))

	s.AddEquipment(barrel, 7)
	assert.Equal(t, 7, s.EmptyContainerCount(goods.ContainerBarrel))
	assert.Zero(t, s.EmptyContainerCount(goods.ContainerBag))
}

func TestNumInStockDispatch(t *testing.T) {
	s, catalog := newTestSettlement(t, 10)
	water := catalog.MustLookup(goods.CategoryAmountResource, goods.SymbolWater)
	part := catalog.RegisterItemResource("spare part", 2.5, true)
	suit := catalog.MustLookup(goods.CategoryEquipment, goods.SymbolSuit)

	s.StoreAmount(water, 250)
	s.AddItems(part, 9)
	s.AddEquipment(suit, 4)

	assert.InDelta(t, 250.0, s.NumInStock(water), 1e-9)
	assert.InDelta(t, 9.0, s.NumInStock(part), 1e-9)
	assert.InDelta(t, 4.0, s.NumInStock(suit), 1e-9)
}

func TestNumInStockCountsUnreservedVehicles(t *testing.T) {
	s, catalog := newTestSettlement(t, 10)
	first := newTestCarrier(t, "MC-1", catalog)
	second := newTestCarrier(t, "MC-2", catalog)
	s.AddCarrier(first)
	s.AddCarrier(second)

	rover := first.VehicleGood()
	assert.InDelta(t, 2.0, s.NumInStock(rover), 1e-9)

	first.Reserve()
	assert.InDelta(t, 1.0, s.NumInStock(rover), 1e-9)
}

func TestCarrierReservation(t *testing.T) {
	s, catalog := newTestSettlement(t, 10)
	s.AddCarrier(newTestCarrier(t, "MC-1", catalog))
	s.AddCarrier(newTestCarrier(t, "MC-2", catalog))

	assert.Equal(t, 2, s.AvailableCarriers())
	assert.True(t, s.HasBackupCarrier())

	c, err := s.ReserveCarrier()
	require.NoError(t, err)
	assert.True(t, c.Reserved())
	assert.Equal(t, 1, s.AvailableCarriers())
	assert.False(t, s.HasBackupCarrier())

	_, err = s.ReserveCarrier()
	require.NoError(t, err)

	_, err = s.ReserveCarrier()
	assert.Error(t, err)

	c.Release()
	assert.Equal(t, 1, s.AvailableCarriers())
}

func TestMissionCounters(t *testing.T) {
	s, _ := newTestSettlement(t, 10)

	s.BeginMission("TRADE_MISSION")
	s.BeginMission("TRADE_MISSION")
	assert.Equal(t, 2, s.ActiveMissions("TRADE_MISSION"))
	assert.Equal(t, 2, s.EmbarkingMissions())

	require.NoError(t, s.EndMission("TRADE_MISSION"))
	assert.Equal(t, 1, s.ActiveMissions("TRADE_MISSION"))
	assert.Equal(t, 1, s.EmbarkingMissions())

	assert.Error(t, s.EndMission("SURVEY_MISSION"), "ending a mission type with none active should fail")
}

func TestHasBaselineResources(t *testing.T) {
	s, catalog := newTestSettlement(t, 10)
	oxygen := catalog.MustLookup(goods.CategoryAmountResource, goods.SymbolOxygen)
	water := catalog.MustLookup(goods.CategoryAmountResource, goods.SymbolWater)
	food := catalog.MustLookup(goods.CategoryAmountResource, goods.SymbolFood)

	s.StoreAmount(oxygen, 100)
	s.StoreAmount(water, 100)
	assert.False(t, s.HasBaselineResources(50), "missing food")

	s.StoreAmount(food, 100)
	assert.True(t, s.HasBaselineResources(50))
	assert.False(t, s.HasBaselineResources(150))
}

func TestTourismFactorFloor(t *testing.T) {
	s, _ := newTestSettlement(t, 10)

	s.SetTourismFactor(0.2)
	assert.InDelta(t, 1.0, s.TourismFactor(), 1e-9)

	s.SetTourismFactor(2.5)
	assert.InDelta(t, 2.5, s.TourismFactor(), 1e-9)
}

func TestCarrierValidation(t *testing.T) {
	catalog := goods.NewDefaultCatalog()
	rover := catalog.RegisterVehicle("cargo rover")
	water := catalog.MustLookup(goods.CategoryAmountResource, goods.SymbolWater)

	_, err := NewCarrier("", rover, 2500, 2.0, 30, 1000, 4, nil)
	assert.Error(t, err)

	_, err = NewCarrier("MC-1", water, 2500, 2.0, 30, 1000, 4, nil)
	assert.Error(t, err, "vehicle good must have the vehicle category")

	_, err = NewCarrier("MC-1", rover, 0, 2.0, 30, 1000, 4, nil)
	assert.Error(t, err)
}
