package trading

import "github.com/marscolony/simcore/internal/domain/goods"

// Load is a proposed trade cargo: a mapping from good to quantity. Amount
// resources are counted in standard container lots, everything else per
// unit. Quantities are never negative; loads are built incrementally by the
// valuator and only applied to real inventory by the caller once final.
type Load map[*goods.Good]int

// Quantity returns the number of units of a good in the load.
func (l Load) Quantity(g *goods.Good) int {
	return l[g]
}

// add increases a good's quantity. Non-positive increments are ignored.
func (l Load) add(g *goods.Good, n int) {
	if n > 0 {
		l[g] += n
	}
}

// MassKg returns the total carried mass of the load. Vehicles drive
// themselves and contribute nothing.
func (l Load) MassKg(catalog *goods.Catalog) float64 {
	total := 0.0
	for g, n := range l {
		total += g.MassPerItem(catalog) * float64(n)
	}
	return total
}

// HasVehicle reports whether the load already includes a vehicle good.
func (l Load) HasVehicle() bool {
	for g, n := range l {
		if g.Category() == goods.CategoryVehicle && n > 0 {
			return true
		}
	}
	return false
}

// clone returns a copy of the load.
func (l Load) clone() Load {
	out := make(Load, len(l))
	for g, n := range l {
		out[g] = n
	}
	return out
}
