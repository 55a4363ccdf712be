package trading

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/marscolony/simcore/internal/domain/goods"
)

func TestLoadMassKg(t *testing.T) {
	catalog := goods.NewDefaultCatalog()
	water := catalog.MustLookup(goods.CategoryAmountResource, goods.SymbolWater)
	barrel, _ := catalog.ContainerGood(goods.ContainerBarrel)
	rover := catalog.RegisterVehicle("cargo rover")

	load := Load{}
	load.add(water, 2)
	load.add(barrel, 2)
	load.add(rover, 1)

	// Two water lots at 200 kg, two barrels at 20 kg, vehicles free.
	assert.InDelta(t, 440.0, load.MassKg(catalog), 1e-9)
	assert.True(t, load.HasVehicle())
}

func TestLoadAddIgnoresNonPositive(t *testing.T) {
	catalog := goods.NewDefaultCatalog()
	water := catalog.MustLookup(goods.CategoryAmountResource, goods.SymbolWater)

	load := Load{}
	load.add(water, 0)
	load.add(water, -3)

	assert.Zero(t, load.Quantity(water))
	assert.False(t, load.HasVehicle())
}

func TestLoadClone(t *testing.T) {
	catalog := goods.NewDefaultCatalog()
	water := catalog.MustLookup(goods.CategoryAmountResource, goods.SymbolWater)

	load := Load{}
	load.add(water, 3)

	copied := load.clone()
	copied.add(water, 2)

	assert.Equal(t, 3, load.Quantity(water))
	assert.Equal(t, 5, copied.Quantity(water))
}
