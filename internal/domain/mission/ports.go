package mission

import "context"

// PlanRepository persists mission plans across daemon restarts.
type PlanRepository interface {
	Save(ctx context.Context, p *Plan) error
	FindByID(ctx context.Context, id string) (*Plan, error)
	FindPending(ctx context.Context) ([]*Plan, error)
	Remove(ctx context.Context, id string) error
}

// Prospect is the settlement view mission scoring reads. Implemented by
// settlement.Settlement. All methods are pure reads; the scorer never
// mutates settlement state.
type Prospect interface {
	Name() string
	Population() int
	IndoorPopulation() int
	PopulationCapacity() int

	// AvailableCarriers returns how many carriers are not reserved.
	AvailableCarriers() int

	// HasBackupCarrier reports whether a second carrier would remain
	// after one departs.
	HasBackupCarrier() bool

	// HasBaselineResources reports whether at least minKg of each
	// life-support resource is stored.
	HasBaselineResources(minKg float64) bool

	SuitCount() int
	ActiveMissions(missionType string) int
	EmbarkingMissions() int
	ResourceMetric() float64
	TourismFactor() float64
}
