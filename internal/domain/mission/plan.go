package mission

import (
	"time"

	"github.com/google/uuid"

	"github.com/marscolony/simcore/internal/domain/shared"
)

// PlanStatus is the review state of a mission plan.
type PlanStatus string

const (
	PlanPending  PlanStatus = "PENDING"
	PlanApproved PlanStatus = "APPROVED"
	PlanRejected PlanStatus = "REJECTED"
)

// Review caps scale down as settlements grow: small outposts need everyone's
// eyes on a plan, large settlements delegate.
const (
	smallSettlementPop = 8
	largeSettlementPop = 48

	smallSettlementReviewCap = 4
	largeSettlementReviewCap = 2
	defaultReviewCap         = 3
)

// Plan is a mission proposal moving through settlement leadership review.
// It starts PENDING and moves exactly once to APPROVED or REJECTED.
//
// The reviewer-count map lives and dies with the plan; it is never evicted.
// Callers serialize concurrent reviews of the same plan.
type Plan struct {
	id          string
	missionType string
	requester   string
	status      PlanStatus

	// Free-form quality fields set by the review process. No bounds are
	// enforced beyond the status gate.
	score           float64
	qualityScore    float64
	percentComplete float64

	reviews      map[string]int
	approver     string
	approverRole string

	createdAt    time.Time
	lastReviewed time.Time
	clock        shared.Clock
}

// NewPlan creates a pending plan for a mission type requested by an agent.
func NewPlan(missionType, requester string, clock shared.Clock) (*Plan, error) {
	if missionType == "" {
		return nil, shared.NewValidationError("missionType", "mission type cannot be empty")
	}
	if requester == "" {
		return nil, shared.NewValidationError("requester", "requester cannot be empty")
	}
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &Plan{
		id:          uuid.New().String(),
		missionType: missionType,
		requester:   requester,
		status:      PlanPending,
		reviews:     make(map[string]int),
		createdAt:   clock.Now(),
		clock:       clock,
	}, nil
}

func (p *Plan) ID() string              { return p.id }
func (p *Plan) MissionType() string     { return p.missionType }
func (p *Plan) Requester() string       { return p.requester }
func (p *Plan) Status() PlanStatus      { return p.status }
func (p *Plan) Score() float64          { return p.score }
func (p *Plan) QualityScore() float64   { return p.qualityScore }
func (p *Plan) PercentComplete() float64 { return p.percentComplete }
func (p *Plan) Approver() string        { return p.approver }
func (p *Plan) ApproverRole() string    { return p.approverRole }
func (p *Plan) CreatedAt() time.Time    { return p.createdAt }
func (p *Plan) LastReviewed() time.Time { return p.lastReviewed }

// SetScore records the running review score.
func (p *Plan) SetScore(v float64) { p.score = v }

// SetQualityScore records the reviewed quality score.
func (p *Plan) SetQualityScore(v float64) { p.qualityScore = v }

// SetPercentComplete records review progress.
func (p *Plan) SetPercentComplete(v float64) { p.percentComplete = v }

// PlanState carries a persisted plan's full state for rehydration.
type PlanState struct {
	ID              string
	MissionType     string
	Requester       string
	Status          PlanStatus
	Score           float64
	QualityScore    float64
	PercentComplete float64
	Reviews         map[string]int
	Approver        string
	ApproverRole    string
	CreatedAt       time.Time
	LastReviewed    time.Time
}

// RestorePlan rebuilds a plan from persisted state. Used by repositories
// only; new plans go through NewPlan.
func RestorePlan(state PlanState, clock shared.Clock) *Plan {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	reviews := make(map[string]int, len(state.Reviews))
	for id, n := range state.Reviews {
		reviews[id] = n
	}
	return &Plan{
		id:              state.ID,
		missionType:     state.MissionType,
		requester:       state.Requester,
		status:          state.Status,
		score:           state.Score,
		qualityScore:    state.QualityScore,
		percentComplete: state.PercentComplete,
		reviews:         reviews,
		approver:        state.Approver,
		approverRole:    state.ApproverRole,
		createdAt:       state.CreatedAt,
		lastReviewed:    state.LastReviewed,
		clock:           clock,
	}
}

// ReviewCap returns how many reviews one reviewer may submit for a plan at
// a settlement of the given population.
func ReviewCap(population int) int {
	switch {
	case population <= smallSettlementPop:
		return smallSettlementReviewCap
	case population >= largeSettlementPop:
		return largeSettlementReviewCap
	default:
		return defaultReviewCap
	}
}

// Review records one review by a reviewer. It returns false, without
// mutating the plan, when the plan is no longer pending or the reviewer has
// reached the population-scaled cap.
func (p *Plan) Review(reviewerID string, settlementPopulation int) bool {
	if p.status != PlanPending {
		return false
	}
	if p.reviews[reviewerID] >= ReviewCap(settlementPopulation) {
		return false
	}
	p.reviews[reviewerID]++
	p.lastReviewed = p.clock.Now()
	return true
}

// ReviewCount returns how many reviews a reviewer has submitted.
func (p *Plan) ReviewCount(reviewerID string) int {
	return p.reviews[reviewerID]
}

// Reviewers returns a copy of the per-reviewer review counts.
func (p *Plan) Reviewers() map[string]int {
	out := make(map[string]int, len(p.reviews))
	for id, n := range p.reviews {
		out[id] = n
	}
	return out
}

// Approve moves a pending plan to APPROVED, recording the approver.
func (p *Plan) Approve(approverID, role string) error {
	if p.status != PlanPending {
		return NewPlanStateError(p.id, p.status)
	}
	p.approver = approverID
	p.approverRole = role
	p.status = PlanApproved
	return nil
}

// Reject moves a pending plan to REJECTED, recording the approver.
func (p *Plan) Reject(approverID, role string) error {
	if p.status != PlanPending {
		return NewPlanStateError(p.id, p.status)
	}
	p.approver = approverID
	p.approverRole = role
	p.status = PlanRejected
	return nil
}
