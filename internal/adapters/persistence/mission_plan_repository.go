package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/marscolony/simcore/internal/domain/mission"
	"github.com/marscolony/simcore/internal/domain/shared"
)

// MissionPlanRepository implements the mission.PlanRepository interface
type MissionPlanRepository struct {
	db    *gorm.DB
	clock shared.Clock
}

// NewMissionPlanRepository creates a new mission plan repository
func NewMissionPlanRepository(db *gorm.DB, clock shared.Clock) *MissionPlanRepository {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &MissionPlanRepository{db: db, clock: clock}
}

// Save persists a mission plan
func (r *MissionPlanRepository) Save(ctx context.Context, p *mission.Plan) error {
	model, err := r.toModel(p)
	if err != nil {
		return fmt.Errorf("failed to convert plan: %w", err)
	}
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return fmt.Errorf("failed to save plan: %w", err)
	}
	return nil
}

// FindByID retrieves a plan by ID, or nil when absent
func (r *MissionPlanRepository) FindByID(ctx context.Context, id string) (*mission.Plan, error) {
	var model MissionPlanModel
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find plan: %w", err)
	}
	return r.toEntity(&model)
}

// FindPending retrieves every plan still awaiting review
func (r *MissionPlanRepository) FindPending(ctx context.Context) ([]*mission.Plan, error) {
	var models []MissionPlanModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", string(mission.PlanPending)).
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find pending plans: %w", err)
	}

	plans := make([]*mission.Plan, len(models))
	for i := range models {
		p, err := r.toEntity(&models[i])
		if err != nil {
			return nil, err
		}
		plans[i] = p
	}
	return plans, nil
}

// Remove deletes a plan
func (r *MissionPlanRepository) Remove(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&MissionPlanModel{}).Error; err != nil {
		return fmt.Errorf("failed to remove plan: %w", err)
	}
	return nil
}

func (r *MissionPlanRepository) toModel(p *mission.Plan) (*MissionPlanModel, error) {
	reviewsJSON, err := json.Marshal(p.Reviewers())
	if err != nil {
		return nil, err
	}

	var lastReviewed *time.Time
	if !p.LastReviewed().IsZero() {
		t := p.LastReviewed()
		lastReviewed = &t
	}

	return &MissionPlanModel{
		ID:              p.ID(),
		MissionType:     p.MissionType(),
		Requester:       p.Requester(),
		Status:          string(p.Status()),
		Score:           p.Score(),
		QualityScore:    p.QualityScore(),
		PercentComplete: p.PercentComplete(),
		Reviews:         string(reviewsJSON),
		Approver:        p.Approver(),
		ApproverRole:    p.ApproverRole(),
		CreatedAt:       p.CreatedAt(),
		LastReviewed:    lastReviewed,
	}, nil
}

func (r *MissionPlanRepository) toEntity(model *MissionPlanModel) (*mission.Plan, error) {
	reviews := map[string]int{}
	if model.Reviews != "" {
		if err := json.Unmarshal([]byte(model.Reviews), &reviews); err != nil {
			return nil, fmt.Errorf("failed to parse reviews: %w", err)
		}
	}

	var lastReviewed time.Time
	if model.LastReviewed != nil {
		lastReviewed = *model.LastReviewed
	}

	return mission.RestorePlan(mission.PlanState{
		ID:              model.ID,
		MissionType:     model.MissionType,
		Requester:       model.Requester,
		Status:          mission.PlanStatus(model.Status),
		Score:           model.Score,
		QualityScore:    model.QualityScore,
		PercentComplete: model.PercentComplete,
		Reviews:         reviews,
		Approver:        model.Approver,
		ApproverRole:    model.ApproverRole,
		CreatedAt:       model.CreatedAt,
		LastReviewed:    lastReviewed,
	}, r.clock), nil
}
