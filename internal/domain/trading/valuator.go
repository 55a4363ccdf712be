package trading

import (
	"math"

	"github.com/marscolony/simcore/internal/domain/goods"
	"github.com/marscolony/simcore/pkg/utils"
)

// Tuning constants for trade load construction and mission costing.
const (
	// Mass reserved up front for mission equipment and spares.
	missionBaseMassKg = 1000.0

	// Life-support kilograms that must remain at the selling settlement.
	minLifeSupportReserveKg = 100.0

	// Repair parts that must remain at the selling settlement.
	minRepairPartReserve = 20

	// Target count when padding a load with a non-profit item resource.
	nonProfitItemTarget = 5

	// Fraction of carrier range considered safe for a round trip leg.
	tradeRangeFraction = 0.8

	// Safety margin applied to life-support consumable estimates.
	lifeSupportMargin = 3.0

	// Extra fuel fraction carried beyond the point-to-point estimate.
	fuelSafetyFactor = 1.2

	// Crew consumption rates in kg per sol per person.
	oxygenRateKgPerSol = 1.0
	waterRateKgPerSol  = 4.0
	foodRateKgPerSol   = 1.5

	// Length of a sol in hours.
	solHours = 24.66
)

// Valuator selects profitable trade loads between settlements and estimates
// mission profit. It is a stateless domain service: all methods are pure
// with respect to settlement inventories, which are only read through the
// Trader port.
type Valuator struct {
	catalog  *goods.Catalog
	ledger   CreditLedger
	crewSize int
}

// NewValuator creates a trade valuator. crewSize is the number of crew a
// trade mission carries; it drives suit reserves and consumable costs.
func NewValuator(catalog *goods.Catalog, ledger CreditLedger, crewSize int) *Valuator {
	if crewSize < 1 {
		crewSize = 1
	}
	return &Valuator{catalog: catalog, ledger: ledger, crewSize: crewSize}
}

// BestTradeProfit scans candidate settlements within safe round-trip range
// of the carrier and returns the best estimated profit and its partner.
// A nil partner means no candidate was worth trading with.
func (v *Valuator) BestTradeProfit(home Trader, carrier Carrier, candidates []Trader) (float64, Trader) {
	bestProfit := 0.0
	var bestPartner Trader

	for _, candidate := range candidates {
		if candidate == home || candidate.Name() == home.Name() {
			continue
		}
		distance := home.Location().DistanceTo(candidate.Location())
		if distance > carrier.RangeKm()*tradeRangeFraction {
			continue
		}
		profit := v.EstimateProfit(home, carrier, candidate)
		if profit > bestProfit {
			bestProfit = profit
			bestPartner = candidate
		}
	}

	return bestProfit, bestPartner
}

// EstimateProfit returns the estimated profit of a round-trip trade mission
// from home to partner: revenue minus mission cost.
func (v *Valuator) EstimateProfit(home Trader, carrier Carrier, partner Trader) float64 {
	revenue := v.estimateRevenue(home, carrier, partner)
	distance := home.Location().DistanceTo(partner.Location()) * 2.0
	return revenue - v.EstimateMissionCost(home, carrier, distance)
}

// estimateRevenue values the best buy and sell loads between home and
// partner, padding the lighter side with non-profit goods to balance any
// outstanding credit between the settlements.
func (v *Valuator) estimateRevenue(home Trader, carrier Carrier, partner Trader) float64 {
	buyLoad := v.DetermineLoad(home, partner, carrier, math.Inf(1))
	buyValue := v.LoadValue(buyLoad, home, true)

	sellLoad := v.DetermineLoad(partner, home, carrier, math.Inf(1))
	sellValue := v.LoadValue(sellLoad, partner, true)

	credit := 0.0
	if v.ledger != nil {
		credit = v.ledger.Credit(home.Name(), partner.Name())
	}

	// Balance trade parity: whichever side is lighter gets padded with
	// additional goods, profitable or not, up to the other side's value.
	if buyValue+credit > sellValue {
		sellLoad = v.AddNonProfitGoods(partner, home, carrier, sellLoad, nil, sellValue, buyValue+credit)
	} else {
		buyLoad = v.AddNonProfitGoods(home, partner, carrier, buyLoad, nil, buyValue, sellValue-credit)
	}

	incoming := v.LoadValue(buyLoad, home, true)
	outgoing := v.LoadValue(sellLoad, home, false)
	return incoming - outgoing
}

// DesiredBuyLoad determines the load home wants to buy from partner,
// extended with extra goods when partner owes home credit.
func (v *Valuator) DesiredBuyLoad(home Trader, carrier Carrier, partner Trader) Load {
	buyLoad := v.DetermineLoad(home, partner, carrier, math.Inf(1))

	credit := 0.0
	if v.ledger != nil {
		credit = v.ledger.Credit(home.Name(), partner.Name())
	}
	if credit > 0 {
		buyValue := v.LoadValue(buyLoad, home, true)
		buyLoad = v.AddNonProfitGoods(home, partner, carrier, buyLoad, nil, buyValue, buyValue+credit)
	}

	return buyLoad
}

// BestSellLoad determines the load home should sell to partner, extended
// with extra goods when home owes partner credit.
func (v *Valuator) BestSellLoad(home Trader, carrier Carrier, partner Trader) Load {
	sellLoad := v.DetermineLoad(partner, home, carrier, math.Inf(1))

	credit := 0.0
	if v.ledger != nil {
		credit = v.ledger.Credit(home.Name(), partner.Name())
	}
	if credit < 0 {
		sellValue := v.LoadValue(sellLoad, partner, true)
		sellLoad = v.AddNonProfitGoods(partner, home, carrier, sellLoad, nil, sellValue, sellValue-credit)
	}

	return sellLoad
}

// DetermineLoad greedily builds the most valuable load the buyer would take
// from the seller within the carrier's capacity, stopping below maxBuyValue.
//
// Each round picks the single best eligible good by marginal trade value.
// The previous round's good is tried first to avoid re-scanning the whole
// catalog when nothing has changed. Bulk resources bring a container good
// along with each lot.
func (v *Valuator) DetermineLoad(buyer, seller Trader, carrier Carrier, maxBuyValue float64) Load {
	load := Load{}

	capacity := carrier.MassCapacityKg()
	reserved := math.Min(capacity, missionBaseMassKg)
	capacity -= reserved

	hasVehicle := false
	loadValue := 0.0
	var previous *goods.Good

greedy:
	for {
		remainingValue := maxBuyValue - loadValue
		good := v.findBestGood(seller, buyer, load, nil, capacity, hasVehicle, carrier, previous, false, remainingValue)
		if good == nil {
			break
		}

		qty := 1
		switch good.Category() {
		case goods.CategoryAmountResource:
			if _, ok := v.commitContainer(good, seller, buyer, load, &capacity, &loadValue); !ok {
				break greedy
			}
			capacity -= v.unitMass(good)
		case goods.CategoryItemResource:
			qty = v.itemLotSize(good, seller, buyer, load, capacity, remainingValue)
			capacity -= v.unitMass(good) * float64(qty)
		case goods.CategoryVehicle:
			hasVehicle = true
		default:
			capacity -= v.unitMass(good) * float64(qty)
		}

		buySupply := v.stockUnits(buyer, good) + float64(load.Quantity(good)) + float64(qty)
		loadValue += v.unitValue(buyer, good, buySupply) * float64(qty)
		load.add(good, qty)

		previous = good
	}

	return load
}

// AddNonProfitGoods extends a load with additional goods, allowing negative
// margins, until the load's value to the buyer reaches targetValue. Used to
// balance trade parity when one settlement holds outstanding credit.
func (v *Valuator) AddNonProfitGoods(buyer, seller Trader, carrier Carrier, current Load, exclude map[*goods.Good]bool, currentValue, targetValue float64) Load {
	load := current.clone()

	capacity := carrier.MassCapacityKg()
	reserved := math.Min(capacity, missionBaseMassKg)
	capacity -= reserved
	capacity -= load.MassKg(v.catalog)

	hasVehicle := load.HasVehicle()
	loadValue := currentValue
	var previous *goods.Good

padding:
	for loadValue < targetValue {
		remainingValue := targetValue - loadValue
		good := v.findBestGood(seller, buyer, load, exclude, capacity, hasVehicle, carrier, previous, true, remainingValue)
		if good == nil {
			break
		}

		qty := 1
		switch good.Category() {
		case goods.CategoryAmountResource:
			if _, ok := v.commitContainer(good, seller, buyer, load, &capacity, &loadValue); !ok {
				break padding
			}
			capacity -= v.unitMass(good)
		case goods.CategoryItemResource:
			qty = v.nonProfitItemCount(good, seller, load, capacity)
			capacity -= v.unitMass(good) * float64(qty)
		case goods.CategoryVehicle:
			hasVehicle = true
		default:
			capacity -= v.unitMass(good) * float64(qty)
		}

		buySupply := v.stockUnits(buyer, good) + float64(load.Quantity(good)) + float64(qty)
		loadValue += v.unitValue(buyer, good, buySupply) * float64(qty)
		load.add(good, qty)

		previous = good
	}

	return load
}

// LoadValue determines the value of a load to a settlement, summing the
// marginal value of each unit at its hypothetical supply level: supply
// grows unit by unit when buying, shrinks (floored at zero) when selling.
func (v *Valuator) LoadValue(load Load, t Trader, buy bool) float64 {
	total := 0.0

	for good, qty := range load {
		supply := v.stockUnits(t, good)
		for x := 0; x < qty; x++ {
			level := supply + float64(x)
			if !buy {
				level = supply - float64(x)
				if level < 0 {
					level = 0
				}
			}
			total += v.unitValue(t, good, level)
		}
	}

	return total
}

// EstimateMissionCost values the consumables a trade mission burns: fuel for
// the trip plus crew life support for its estimated duration, priced at the
// starting settlement's sell valuations.
func (v *Valuator) EstimateMissionCost(home Trader, carrier Carrier, distanceKm float64) float64 {
	needed := Load{}

	fuelKg := distanceKm / carrier.FuelEfficiency() * fuelSafetyFactor
	if fuel := carrier.FuelResource(); fuel != nil {
		needed.add(fuel, v.lotCount(fuel, fuelKg))
	}

	// Average mission speed is half the carrier's base speed.
	tripSols := distanceKm/(carrier.BaseSpeedKmh()/2.0)/solHours + 1.0
	crew := float64(v.crewSize)

	for symbol, rate := range map[string]float64{
		goods.SymbolOxygen: oxygenRateKgPerSol,
		goods.SymbolWater:  waterRateKgPerSol,
		goods.SymbolFood:   foodRateKgPerSol,
	} {
		g, err := v.catalog.Lookup(goods.CategoryAmountResource, symbol)
		if err != nil {
			continue
		}
		kg := rate * tripSols * crew * lifeSupportMargin
		needed.add(g, v.lotCount(g, kg))
	}

	return v.LoadValue(needed, home, false)
}

// findBestGood returns the eligible good with the highest marginal trade
// value below maxBuyValue, or nil when none qualifies. The previous round's
// pick is re-checked first as a fast path.
func (v *Valuator) findBestGood(seller, buyer Trader, load Load, exclude map[*goods.Good]bool, capacity float64, hasVehicle bool, carrier Carrier, previous *goods.Good, allowNegative bool, maxBuyValue float64) *goods.Good {
	if previous != nil {
		value := v.tradeValue(previous, seller, buyer, load, capacity, hasVehicle, carrier, allowNegative)
		if value > 0 && value < maxBuyValue {
			return previous
		}
	}

	var best *goods.Good
	bestValue := 0.0
	if allowNegative {
		bestValue = math.Inf(-1)
	}

	for _, good := range v.catalog.All() {
		if exclude[good] {
			continue
		}
		value := v.tradeValue(good, seller, buyer, load, capacity, hasVehicle, carrier, allowNegative)
		if value > bestValue && value < maxBuyValue {
			best = good
			bestValue = value
		}
	}

	return best
}

// tradeValue returns the marginal value of moving one more unit of a good
// from seller to buyer given the load committed so far, or -Inf when the
// good is ineligible.
//
// Eligibility gates: remaining carrier capacity, a container on hand for
// bulk resources, not the mission's own carrier vehicle, enough of the
// resource left for a full lot, suit reserve (crew size + 2), repair-part
// reserve, and life-support reserve at the seller.
func (v *Valuator) tradeValue(good *goods.Good, seller, buyer Trader, load Load, capacity float64, hasVehicle bool, carrier Carrier, allowNegative bool) float64 {
	traded := float64(load.Quantity(good))

	sellingStock := v.stockUnits(seller, good)
	sellingSupply := sellingStock - traded - 1
	if sellingSupply < 0 {
		sellingSupply = 0
	}
	sellingValue := v.unitValue(seller, good, sellingSupply)

	allTraded := sellingStock <= traded

	buyingSupply := v.stockUnits(buyer, good) + traded + 1
	buyingValue := v.unitValue(buyer, good, buyingSupply)

	profitable := buyingValue > sellingValue
	if !(allowNegative || profitable) || buyingValue <= 0 || allTraded {
		return math.Inf(-1)
	}

	if !v.hasCapacityFor(good, capacity, hasVehicle) {
		return math.Inf(-1)
	}

	if good.Category() == goods.CategoryAmountResource {
		if !v.containerAvailable(good, seller, load) {
			return math.Inf(-1)
		}
		// A full lot must remain to fill the container.
		if sellingSupply < 1 {
			return math.Inf(-1)
		}
		if good.IsLifeSupport() && sellingSupply*v.catalog.TradeAmount(good) < minLifeSupportReserveKg {
			return math.Inf(-1)
		}
	}

	if good.Category() == goods.CategoryVehicle {
		if good == carrier.VehicleGood() && sellingStock <= 1 {
			return math.Inf(-1)
		}
	}

	if v.isSuitGood(good) {
		remaining := sellingStock - traded
		if remaining <= float64(v.crewSize+2) {
			return math.Inf(-1)
		}
	}

	if good.IsRepairPart() && sellingSupply < minRepairPartReserve {
		return math.Inf(-1)
	}

	return buyingValue - sellingValue
}

// itemLotSize grows an item-resource count one unit at a time until the buy
// value stops exceeding the sell value, seller stock runs out, carrier
// capacity is reached, or the remaining buy value is spent. Minimum 1.
func (v *Valuator) itemLotSize(good *goods.Good, seller, buyer Trader, load Load, capacity, maxBuyValue float64) int {
	sellingStock := v.stockUnits(seller, good)
	buyingStock := v.stockUnits(buyer, good)
	traded := float64(load.Quantity(good))

	capacityLimit := math.MaxInt32
	if mass := v.unitMass(good); mass > 0 {
		capacityLimit = int(capacity / mass)
	}

	count := 0
	totalBuyValue := 0.0
	for {
		next := traded + float64(count) + 1
		sellingValue := v.unitValue(seller, good, sellingStock-next)
		buyingValue := v.unitValue(buyer, good, buyingStock+next)

		if buyingValue <= sellingValue ||
			next > sellingStock ||
			count+1 > capacityLimit ||
			totalBuyValue+buyingValue >= maxBuyValue {
			break
		}

		count++
		totalBuyValue += buyingValue
	}

	if count == 0 {
		count = 1
	}
	return count
}

// nonProfitItemCount returns how many of an item resource to add when
// padding a load: the fixed target, capped by seller stock and carrier
// capacity, floored at 1.
func (v *Valuator) nonProfitItemCount(good *goods.Good, seller Trader, load Load, capacity float64) int {
	supply := int(v.stockUnits(seller, good)) - load.Quantity(good)

	byCapacity := math.MaxInt32
	if mass := v.unitMass(good); mass > 0 {
		byCapacity = int(capacity / mass)
	}

	return utils.Max(1, utils.Min3(nonProfitItemTarget, supply, byCapacity))
}

// commitContainer adds the container good carrying one lot of a bulk
// resource to the load, decrementing capacity and crediting its value.
// Returns false when no container is available.
func (v *Valuator) commitContainer(resource *goods.Good, seller, buyer Trader, load Load, capacity *float64, loadValue *float64) (*goods.Good, bool) {
	containerGood, err := v.catalog.ContainerForResource(resource)
	if err != nil || !v.containerAvailable(resource, seller, load) {
		return nil, false
	}

	*capacity -= containerGood.MassPerItem(v.catalog)
	supply := v.stockUnits(buyer, containerGood) + float64(load.Quantity(containerGood))
	*loadValue += v.unitValue(buyer, containerGood, supply)
	load.add(containerGood, 1)

	return containerGood, true
}

// containerAvailable reports whether the seller still has an empty container
// of the right type beyond those already committed to the load.
func (v *Valuator) containerAvailable(resource *goods.Good, seller Trader, load Load) bool {
	containerGood, err := v.catalog.ContainerForResource(resource)
	if err != nil {
		return false
	}
	stored := seller.EmptyContainerCount(goods.ContainerForPhase(resource.Phase()))
	return stored > load.Quantity(containerGood)
}

// hasCapacityFor checks whether one unit of a good fits in the remaining
// carrier capacity. Bulk resources need room for the lot plus its container;
// a vehicle needs no mass but only one may join a load.
func (v *Valuator) hasCapacityFor(good *goods.Good, capacity float64, hasVehicle bool) bool {
	switch good.Category() {
	case goods.CategoryAmountResource:
		containerMass := 0.0
		if containerGood, err := v.catalog.ContainerForResource(good); err == nil {
			containerMass = containerGood.MassPerItem(v.catalog)
		}
		return capacity >= v.catalog.TradeAmount(good)+containerMass
	case goods.CategoryVehicle:
		return !hasVehicle
	default:
		return capacity >= v.unitMass(good)
	}
}

// stockUnits returns a settlement's stock of a good in trade units: lots for
// amount resources, raw counts otherwise.
func (v *Valuator) stockUnits(t Trader, good *goods.Good) float64 {
	if good.Category() == goods.CategoryAmountResource {
		lot := v.catalog.TradeAmount(good)
		if lot <= 0 {
			return 0
		}
		return t.NumInStock(good) / lot
	}
	return t.NumInStock(good)
}

// unitValue returns the value of one trade unit of a good at a hypothetical
// supply level expressed in trade units.
func (v *Valuator) unitValue(t Trader, good *goods.Good, supplyUnits float64) float64 {
	if supplyUnits < 0 {
		supplyUnits = 0
	}
	if good.Category() == goods.CategoryAmountResource {
		lot := v.catalog.TradeAmount(good)
		return t.ValuePerUnit(good, supplyUnits*lot) * lot
	}
	return t.ValuePerUnit(good, supplyUnits)
}

// unitMass returns the carried mass of one trade unit of a good.
func (v *Valuator) unitMass(good *goods.Good) float64 {
	return good.MassPerItem(v.catalog)
}

// lotCount converts kilograms of a bulk resource to whole trade lots,
// rounding up.
func (v *Valuator) lotCount(resource *goods.Good, kg float64) int {
	lot := v.catalog.TradeAmount(resource)
	if lot <= 0 {
		return 0
	}
	return int(math.Ceil(kg / lot))
}

// isSuitGood reports whether a good is the pressure suit equipment class.
func (v *Valuator) isSuitGood(good *goods.Good) bool {
	suit, err := v.catalog.Lookup(goods.CategoryEquipment, goods.SymbolSuit)
	return err == nil && good == suit
}
