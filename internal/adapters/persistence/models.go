package persistence

import (
	"time"
)

// SettlementModel represents the settlements table. Inventories and market
// base values are stored as JSON text keyed by "category|symbol" so new
// goods need no schema change.
type SettlementModel struct {
	Name               string  `gorm:"column:name;primaryKey"`
	Phi                float64 `gorm:"column:phi;not null"`
	Theta              float64 `gorm:"column:theta;not null"`
	Population         int     `gorm:"column:population;not null"`
	IndoorPopulation   int     `gorm:"column:indoor_population;not null"`
	PopulationCapacity int     `gorm:"column:population_capacity;not null"`
	ResourceMetric     float64 `gorm:"column:resource_metric;not null;default:0"`
	TourismFactor      float64 `gorm:"column:tourism_factor;not null;default:1"`
	Amounts            string  `gorm:"column:amounts;type:text"`      // JSON object, kg by good key
	Items              string  `gorm:"column:items;type:text"`        // JSON object, count by good key
	Equipment          string  `gorm:"column:equipment;type:text"`    // JSON object, count by good key
	MarketValues       string  `gorm:"column:market_values;type:text"` // JSON object, base value by good key
	UpdatedAt          time.Time `gorm:"column:updated_at"`
}

func (SettlementModel) TableName() string {
	return "settlements"
}

// CarrierModel represents the carriers table
type CarrierModel struct {
	Name           string           `gorm:"column:name;primaryKey"`
	SettlementName string           `gorm:"column:settlement_name;not null;index"`
	Settlement     *SettlementModel `gorm:"foreignKey:SettlementName;references:Name;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	VehicleSymbol  string           `gorm:"column:vehicle_symbol;not null"`
	MassCapacityKg float64          `gorm:"column:mass_capacity_kg;not null"`
	FuelEfficiency float64          `gorm:"column:fuel_efficiency;not null"`
	BaseSpeedKmh   float64          `gorm:"column:base_speed_kmh;not null"`
	RangeKm        float64          `gorm:"column:range_km;not null"`
	CrewCapacity   int              `gorm:"column:crew_capacity;not null"`
	FuelSymbol     string           `gorm:"column:fuel_symbol"`
	Reserved       int              `gorm:"column:reserved;not null;default:0"` // 0 or 1 (SQLite compatible)
}

func (CarrierModel) TableName() string {
	return "carriers"
}

// MissionPlanModel represents the mission_plans table
type MissionPlanModel struct {
	ID              string     `gorm:"column:id;primaryKey"`
	MissionType     string     `gorm:"column:mission_type;not null"`
	Requester       string     `gorm:"column:requester;not null"`
	Status          string     `gorm:"column:status;not null;index"`
	Score           float64    `gorm:"column:score;not null;default:0"`
	QualityScore    float64    `gorm:"column:quality_score;not null;default:0"`
	PercentComplete float64    `gorm:"column:percent_complete;not null;default:0"`
	Reviews         string     `gorm:"column:reviews;type:text"` // JSON object, count by reviewer
	Approver        string     `gorm:"column:approver"`
	ApproverRole    string     `gorm:"column:approver_role"`
	CreatedAt       time.Time  `gorm:"column:created_at;not null"`
	LastReviewed    *time.Time `gorm:"column:last_reviewed"`
}

func (MissionPlanModel) TableName() string {
	return "mission_plans"
}

// CreditEntryModel represents the credit_ledger table
type CreditEntryModel struct {
	SettlementA string  `gorm:"column:settlement_a;primaryKey"`
	SettlementB string  `gorm:"column:settlement_b;primaryKey"`
	Balance     float64 `gorm:"column:balance;not null;default:0"`
}

func (CreditEntryModel) TableName() string {
	return "credit_ledger"
}
