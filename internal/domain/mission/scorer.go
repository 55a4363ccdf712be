package mission

import (
	"math"

	"github.com/marscolony/simcore/pkg/utils"
)

// Scoring calibration shared by all mission profiles.
const (
	// Divisor turning a raw settlement resource metric into a base score.
	defaultMetricDivisor = 8000.0

	// One concurrent mission slot per this many settlers.
	settlersPerMissionSlot = 4

	// Agent-level scores below this round down to zero.
	minAgentScore = 0.5
)

// Profile describes a mission type's requirements and scoring parameters.
// Profiles are immutable after construction and shared across settlements.
type Profile struct {
	// Type identifies the mission type in settlement mission counters.
	Type string

	// MinPopulation is the smallest settlement that can field the mission.
	MinPopulation int

	// CrewSize is how many settlers the mission takes away.
	CrewSize int

	// BaselineResourceKg is the life-support floor that must remain per
	// resource for the settlement to consider leaving at all.
	BaselineResourceKg float64

	// MetricDivisor scales the settlement resource metric into a base
	// score. Zero means the default calibration.
	MetricDivisor float64

	// StartupBonus is added on top of the metric-derived base score,
	// keeping the mission worth considering even when local resources
	// are lean.
	StartupBonus float64
}

func (p Profile) metricDivisor() float64 {
	if p.MetricDivisor > 0 {
		return p.MetricDivisor
	}
	return defaultMetricDivisor
}

// Scorer turns settlement state into a desirability score for a mission
// profile. It is stateless; all inputs arrive through the Prospect port.
type Scorer struct {
	profile Profile
}

// NewScorer creates a scorer for one mission profile.
func NewScorer(profile Profile) *Scorer {
	return &Scorer{profile: profile}
}

// Profile returns the mission profile being scored.
func (sc *Scorer) Profile() Profile { return sc.profile }

// Score computes the settlement-level desirability of starting this mission
// now. Zero means the settlement cannot or should not start it; positive
// values are relative weights, unclamped at this level.
//
// Hard gates return zero outright; the mission-slot gate counts embarking
// missions together with active missions of this type against one slot per
// four settlers. The soft score starts from the resource metric plus the
// profile's startup bonus, scales up with overcrowding (missions relieve
// pressure on habitat space) and population, and divides down by missions
// already embarking or active.
func (sc *Scorer) Score(s Prospect) float64 {
	p := sc.profile

	if s.IndoorPopulation() <= 1 {
		return 0
	}
	pop := s.Population()
	if pop < p.MinPopulation || pop <= p.CrewSize {
		return 0
	}
	if s.AvailableCarriers() == 0 || !s.HasBackupCarrier() {
		return 0
	}
	if !s.HasBaselineResources(p.BaselineResourceKg) {
		return 0
	}
	if pop-s.EmbarkingMissions()*p.CrewSize < p.CrewSize {
		return 0
	}
	if s.SuitCount() < p.CrewSize {
		return 0
	}

	active := s.ActiveMissions(p.Type)
	if active > 1 {
		return 0
	}
	if float64(pop)/settlersPerMissionSlot < float64(s.EmbarkingMissions()+active) {
		return 0
	}

	result := s.ResourceMetric()/p.metricDivisor() + p.StartupBonus
	if result <= 0 {
		return 0
	}

	if crowding := s.IndoorPopulation() - s.PopulationCapacity(); crowding > 0 {
		result *= float64(crowding + 1)
	}

	result *= float64(pop) / settlersPerMissionSlot

	embarking := s.EmbarkingMissions()
	if embarking < 1 {
		embarking = 1
	}
	activeFloor := active
	if activeFloor < 1 {
		activeFloor = 1
	}
	result /= float64(embarking)
	result /= float64(activeFloor)

	return result
}

// AgentScore adapts a settlement-level score to one agent: the agent's role
// modifier multiplies it, the settlement's tourism factor divides it, and
// the result is clamped to {0} ∪ [0.5, 1].
func (sc *Scorer) AgentScore(s Prospect, roleModifier float64) float64 {
	result := sc.Score(s)
	if result <= 0 {
		return 0
	}

	result *= roleModifier
	if tf := s.TourismFactor(); tf > 0 {
		result /= tf
	}

	if math.IsNaN(result) || result < minAgentScore {
		return 0
	}
	return utils.Clamp(result, minAgentScore, 1)
}
