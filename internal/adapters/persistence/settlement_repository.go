package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/marscolony/simcore/internal/domain/goods"
	"github.com/marscolony/simcore/internal/domain/settlement"
	"github.com/marscolony/simcore/internal/domain/surface"
)

// SettlementRepository implements the settlement.Repository interface
type SettlementRepository struct {
	db      *gorm.DB
	catalog *goods.Catalog
}

// NewSettlementRepository creates a new settlement repository. The catalog
// resolves persisted good keys back to good identities.
func NewSettlementRepository(db *gorm.DB, catalog *goods.Catalog) *SettlementRepository {
	return &SettlementRepository{db: db, catalog: catalog}
}

// Save persists a settlement and its carriers
func (r *SettlementRepository) Save(ctx context.Context, s *settlement.Settlement) error {
	model, err := r.toModel(s)
	if err != nil {
		return fmt.Errorf("failed to convert settlement: %w", err)
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(model).Error; err != nil {
			return fmt.Errorf("failed to save settlement: %w", err)
		}

		if err := tx.Where("settlement_name = ?", s.Name()).
			Delete(&CarrierModel{}).Error; err != nil {
			return fmt.Errorf("failed to clear carriers: %w", err)
		}
		for _, c := range s.Carriers() {
			cm := r.carrierToModel(s.Name(), c)
			if err := tx.Create(cm).Error; err != nil {
				return fmt.Errorf("failed to save carrier %s: %w", c.Name(), err)
			}
		}
		return nil
	})
}

// FindByName retrieves a settlement by name, or nil when absent
func (r *SettlementRepository) FindByName(ctx context.Context, name string) (*settlement.Settlement, error) {
	var model SettlementModel
	if err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find settlement: %w", err)
	}

	var carriers []CarrierModel
	if err := r.db.WithContext(ctx).
		Where("settlement_name = ?", name).
		Find(&carriers).Error; err != nil {
		return nil, fmt.Errorf("failed to find carriers: %w", err)
	}

	return r.toEntity(&model, carriers)
}

// FindAll retrieves every persisted settlement
func (r *SettlementRepository) FindAll(ctx context.Context) ([]*settlement.Settlement, error) {
	var models []SettlementModel
	if err := r.db.WithContext(ctx).Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find settlements: %w", err)
	}

	settlements := make([]*settlement.Settlement, 0, len(models))
	for i := range models {
		var carriers []CarrierModel
		if err := r.db.WithContext(ctx).
			Where("settlement_name = ?", models[i].Name).
			Find(&carriers).Error; err != nil {
			return nil, fmt.Errorf("failed to find carriers: %w", err)
		}
		s, err := r.toEntity(&models[i], carriers)
		if err != nil {
			return nil, err
		}
		settlements = append(settlements, s)
	}
	return settlements, nil
}

// Remove deletes a settlement and its carriers
func (r *SettlementRepository) Remove(ctx context.Context, name string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("settlement_name = ?", name).
			Delete(&CarrierModel{}).Error; err != nil {
			return fmt.Errorf("failed to remove carriers: %w", err)
		}
		if err := tx.Where("name = ?", name).
			Delete(&SettlementModel{}).Error; err != nil {
			return fmt.Errorf("failed to remove settlement: %w", err)
		}
		return nil
	})
}

// goodKey builds the persisted identity of a good.
func goodKey(g *goods.Good) string {
	return string(g.Category()) + "|" + g.Symbol()
}

// lookupKey resolves a persisted good key against the catalog.
func (r *SettlementRepository) lookupKey(key string) (*goods.Good, error) {
	category, symbol, ok := strings.Cut(key, "|")
	if !ok {
		return nil, fmt.Errorf("malformed good key %q", key)
	}
	return r.catalog.Lookup(goods.Category(category), symbol)
}

func (r *SettlementRepository) toModel(s *settlement.Settlement) (*SettlementModel, error) {
	amounts := map[string]float64{}
	items := map[string]int{}
	equipment := map[string]int{}
	marketValues := map[string]float64{}

	for _, g := range r.catalog.All() {
		key := goodKey(g)
		switch g.Category() {
		case goods.CategoryAmountResource:
			if kg := s.AmountStored(g); kg > 0 {
				amounts[key] = kg
			}
		case goods.CategoryItemResource:
			if n := s.ItemCount(g); n > 0 {
				items[key] = n
			}
		case goods.CategoryEquipment:
			if n := s.EquipmentCount(g); n > 0 {
				equipment[key] = n
			}
		}
		if v := s.Market().BaseValue(g); v > 0 {
			marketValues[key] = v
		}
	}

	amountsJSON, err := json.Marshal(amounts)
	if err != nil {
		return nil, err
	}
	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}
	equipmentJSON, err := json.Marshal(equipment)
	if err != nil {
		return nil, err
	}
	marketJSON, err := json.Marshal(marketValues)
	if err != nil {
		return nil, err
	}

	return &SettlementModel{
		Name:               s.Name(),
		Phi:                s.Location().Phi(),
		Theta:              s.Location().Theta(),
		Population:         s.Population(),
		IndoorPopulation:   s.IndoorPopulation(),
		PopulationCapacity: s.PopulationCapacity(),
		ResourceMetric:     s.ResourceMetric(),
		TourismFactor:      s.TourismFactor(),
		Amounts:            string(amountsJSON),
		Items:              string(itemsJSON),
		Equipment:          string(equipmentJSON),
		MarketValues:       string(marketJSON),
		UpdatedAt:          time.Now(),
	}, nil
}

func (r *SettlementRepository) toEntity(model *SettlementModel, carrierModels []CarrierModel) (*settlement.Settlement, error) {
	marketValues := map[string]float64{}
	if model.MarketValues != "" {
		if err := json.Unmarshal([]byte(model.MarketValues), &marketValues); err != nil {
			return nil, fmt.Errorf("failed to parse market values: %w", err)
		}
	}
	market := settlement.NewMarket()
	for key, value := range marketValues {
		g, err := r.lookupKey(key)
		if err != nil {
			return nil, err
		}
		market.SetBaseValue(g, value)
	}

	location := surface.NewSphericalPoint(model.Phi, model.Theta)
	s, err := settlement.NewSettlement(model.Name, location, model.Population, model.PopulationCapacity, r.catalog, market)
	if err != nil {
		return nil, fmt.Errorf("failed to rebuild settlement: %w", err)
	}
	s.SetIndoorPopulation(model.IndoorPopulation)
	s.SetResourceMetric(model.ResourceMetric)
	s.SetTourismFactor(model.TourismFactor)

	if err := r.restoreStocks(s, model); err != nil {
		return nil, err
	}

	for i := range carrierModels {
		c, err := r.carrierToEntity(&carrierModels[i])
		if err != nil {
			return nil, err
		}
		s.AddCarrier(c)
	}
	return s, nil
}

func (r *SettlementRepository) restoreStocks(s *settlement.Settlement, model *SettlementModel) error {
	amounts := map[string]float64{}
	if model.Amounts != "" {
		if err := json.Unmarshal([]byte(model.Amounts), &amounts); err != nil {
			return fmt.Errorf("failed to parse amounts: %w", err)
		}
	}
	for key, kg := range amounts {
		g, err := r.lookupKey(key)
		if err != nil {
			return err
		}
		s.StoreAmount(g, kg)
	}

	items := map[string]int{}
	if model.Items != "" {
		if err := json.Unmarshal([]byte(model.Items), &items); err != nil {
			return fmt.Errorf("failed to parse items: %w", err)
		}
	}
	for key, n := range items {
		g, err := r.lookupKey(key)
		if err != nil {
			return err
		}
		s.AddItems(g, n)
	}

	equipment := map[string]int{}
	if model.Equipment != "" {
		if err := json.Unmarshal([]byte(model.Equipment), &equipment); err != nil {
			return fmt.Errorf("failed to parse equipment: %w", err)
		}
	}
	for key, n := range equipment {
		g, err := r.lookupKey(key)
		if err != nil {
			return err
		}
		s.AddEquipment(g, n)
	}
	return nil
}

func (r *SettlementRepository) carrierToModel(settlementName string, c *settlement.Carrier) *CarrierModel {
	reserved := 0
	if c.Reserved() {
		reserved = 1
	}
	fuelSymbol := ""
	if c.FuelResource() != nil {
		fuelSymbol = c.FuelResource().Symbol()
	}
	return &CarrierModel{
		Name:           c.Name(),
		SettlementName: settlementName,
		VehicleSymbol:  c.VehicleGood().Symbol(),
		MassCapacityKg: c.MassCapacityKg(),
		FuelEfficiency: c.FuelEfficiency(),
		BaseSpeedKmh:   c.BaseSpeedKmh(),
		RangeKm:        c.RangeKm(),
		CrewCapacity:   c.CrewCapacity(),
		FuelSymbol:     fuelSymbol,
		Reserved:       reserved,
	}
}

func (r *SettlementRepository) carrierToEntity(model *CarrierModel) (*settlement.Carrier, error) {
	vehicle, err := r.catalog.Lookup(goods.CategoryVehicle, model.VehicleSymbol)
	if err != nil {
		return nil, err
	}
	var fuel *goods.Good
	if model.FuelSymbol != "" {
		fuel, err = r.catalog.Lookup(goods.CategoryAmountResource, model.FuelSymbol)
		if err != nil {
			return nil, err
		}
	}
	c, err := settlement.NewCarrier(model.Name, vehicle, model.MassCapacityKg, model.FuelEfficiency, model.BaseSpeedKmh, model.RangeKm, model.CrewCapacity, fuel)
	if err != nil {
		return nil, fmt.Errorf("failed to rebuild carrier: %w", err)
	}
	if model.Reserved != 0 {
		c.Reserve()
	}
	return c, nil
}
