package mission

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marscolony/simcore/internal/domain/shared"
)

func TestNewPlanValidation(t *testing.T) {
	_, err := NewPlan("", "ada", nil)
	assert.Error(t, err)

	_, err = NewPlan("TRADE_MISSION", "", nil)
	assert.Error(t, err)

	p, err := NewPlan("TRADE_MISSION", "ada", nil)
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID())
	assert.Equal(t, PlanPending, p.Status())
	assert.True(t, p.LastReviewed().IsZero())
}

func TestReviewCap(t *testing.T) {
	assert.Equal(t, 4, ReviewCap(4))
	assert.Equal(t, 4, ReviewCap(8))
	assert.Equal(t, 3, ReviewCap(9))
	assert.Equal(t, 3, ReviewCap(47))
	assert.Equal(t, 2, ReviewCap(48))
	assert.Equal(t, 2, ReviewCap(200))
}

func TestReviewHonorsCap(t *testing.T) {
	clock := shared.NewMockClock(time.Date(2045, 3, 1, 12, 0, 0, 0, time.UTC))
	p, err := NewPlan("TRADE_MISSION", "ada", clock)
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		clock.Advance(time.Hour)
		assert.True(t, p.Review("grace", 8), "review %d should be accepted", i+1)
	}
	assert.False(t, p.Review("grace", 8), "cap of 4 reached")
	assert.Equal(t, 4, p.ReviewCount("grace"))

	// Another reviewer has their own budget.
	assert.True(t, p.Review("elon", 8))

	assert.Equal(t, clock.Now(), p.LastReviewed())
}

func TestReviewCapScalesWithPopulation(t *testing.T) {
	p, err := NewPlan("TRADE_MISSION", "ada", nil)
	require.NoError(t, err)

	assert.True(t, p.Review("grace", 50))
	assert.True(t, p.Review("grace", 50))
	assert.False(t, p.Review("grace", 50), "large settlements cap at 2")
}

func TestApproveAndReject(t *testing.T) {
	t.Run("approve is final", func(t *testing.T) {
		p, err := NewPlan("TRADE_MISSION", "ada", nil)
		require.NoError(t, err)

		require.NoError(t, p.Approve("grace", "commander"))
		assert.Equal(t, PlanApproved, p.Status())
		assert.Equal(t, "grace", p.Approver())
		assert.Equal(t, "commander", p.ApproverRole())

		var stateErr *PlanStateError
		require.ErrorAs(t, p.Reject("elon", "commander"), &stateErr)
		assert.Equal(t, PlanApproved, stateErr.Status)
		require.ErrorAs(t, p.Approve("elon", "commander"), &stateErr)

		assert.False(t, p.Review("grace", 8), "terminal plans take no more reviews")
	})

	t.Run("reject is final", func(t *testing.T) {
		p, err := NewPlan("TRADE_MISSION", "ada", nil)
		require.NoError(t, err)

		require.NoError(t, p.Reject("grace", "commander"))
		assert.Equal(t, PlanRejected, p.Status())

		var stateErr *PlanStateError
		require.ErrorAs(t, p.Approve("elon", "commander"), &stateErr)
	})
}

func TestPlanScores(t *testing.T) {
	p, err := NewPlan("TRADE_MISSION", "ada", nil)
	require.NoError(t, err)

	p.SetScore(3.2)
	p.SetQualityScore(0.9)
	p.SetPercentComplete(55)

	assert.InDelta(t, 3.2, p.Score(), 1e-9)
	assert.InDelta(t, 0.9, p.QualityScore(), 1e-9)
	assert.InDelta(t, 55.0, p.PercentComplete(), 1e-9)
}

func TestRestorePlanRoundTrip(t *testing.T) {
	clock := shared.NewMockClock(time.Date(2045, 3, 1, 12, 0, 0, 0, time.UTC))
	p, err := NewPlan("TRADE_MISSION", "ada", clock)
	require.NoError(t, err)
	p.Review("grace", 10)
	p.Review("grace", 10)
	p.SetScore(1.5)
	require.NoError(t, p.Approve("grace", "commander"))

	state := PlanState{
		ID:              p.ID(),
		MissionType:     p.MissionType(),
		Requester:       p.Requester(),
		Status:          p.Status(),
		Score:           p.Score(),
		QualityScore:    p.QualityScore(),
		PercentComplete: p.PercentComplete(),
		Reviews:         p.Reviewers(),
		Approver:        p.Approver(),
		ApproverRole:    p.ApproverRole(),
		CreatedAt:       p.CreatedAt(),
		LastReviewed:    p.LastReviewed(),
	}

	restored := RestorePlan(state, clock)

	assert.Equal(t, p.ID(), restored.ID())
	assert.Equal(t, PlanApproved, restored.Status())
	assert.Equal(t, 2, restored.ReviewCount("grace"))
	assert.Equal(t, "grace", restored.Approver())
	assert.Equal(t, p.CreatedAt(), restored.CreatedAt())
	assert.Equal(t, p.LastReviewed(), restored.LastReviewed())
	assert.InDelta(t, 1.5, restored.Score(), 1e-9)
}

func TestReviewersReturnsCopy(t *testing.T) {
	p, err := NewPlan("TRADE_MISSION", "ada", nil)
	require.NoError(t, err)
	p.Review("grace", 10)

	reviewers := p.Reviewers()
	reviewers["grace"] = 99

	assert.Equal(t, 1, p.ReviewCount("grace"))
}
