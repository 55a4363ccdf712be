package simulation

import (
	"context"

	"github.com/marscolony/simcore/internal/domain/goods"
	"github.com/marscolony/simcore/internal/domain/mission"
	"github.com/marscolony/simcore/internal/domain/settlement"
	"github.com/marscolony/simcore/internal/domain/task"
)

// Behavior names, used as job-modifier keys and mission-type identifiers.
const (
	BehaviorTradeMission    = "TRADE_MISSION"
	BehaviorCollectRegolith = "COLLECT_REGOLITH"
	BehaviorMaintenance     = "MAINTENANCE"
	BehaviorRest            = "REST"
)

// Good symbols the simulation registers beyond the default catalog.
const (
	SymbolRegolith  = "regolith"
	SymbolSparePart = "spare part"
	SymbolRover     = "cargo rover"
	SymbolMethane   = "methane"
)

// Behavior is a schedulable meta-task that can also run: Score drives the
// weighted draw, Execute performs the behavior for the settler who drew it.
type Behavior interface {
	task.MetaTask
	Execute(ctx context.Context, settler *Settler) error
}

// Regolith collection tuning.
const (
	regolithScoreDivisor = 2000.0
	regolithYieldKg      = 40.0
	regolithMetricDecay  = 25.0
)

// collectRegolithBehavior digs local regolith during work hours. Its
// desirability tracks the settlement's resource survey metric, which decays
// as the easy deposits near the settlement are worked out.
type collectRegolithBehavior struct {
	home     *settlement.Settlement
	regolith *goods.Good
}

func newCollectRegolithBehavior(home *settlement.Settlement) *collectRegolithBehavior {
	return &collectRegolithBehavior{
		home:     home,
		regolith: home.Catalog().MustLookup(goods.CategoryAmountResource, SymbolRegolith),
	}
}

func (b *collectRegolithBehavior) Name() string        { return BehaviorCollectRegolith }
func (b *collectRegolithBehavior) Window() task.Window { return task.WorkHours }

func (b *collectRegolithBehavior) Score(a task.Agent) float64 {
	score := b.home.ResourceMetric() / regolithScoreDivisor
	return score * a.JobModifier(BehaviorCollectRegolith)
}

func (b *collectRegolithBehavior) Execute(ctx context.Context, settler *Settler) error {
	b.home.StoreAmount(b.regolith, regolithYieldKg)
	metric := b.home.ResourceMetric() - regolithMetricDecay
	if metric < 0 {
		metric = 0
	}
	b.home.SetResourceMetric(metric)
	return nil
}

// maintenanceBehavior is schedulable in any window: habitat upkeep does not
// wait for a shift. It consumes a spare part when one is on hand.
type maintenanceBehavior struct {
	home      *settlement.Settlement
	sparePart *goods.Good
	baseScore float64
}

func newMaintenanceBehavior(home *settlement.Settlement) *maintenanceBehavior {
	return &maintenanceBehavior{
		home:      home,
		sparePart: home.Catalog().MustLookup(goods.CategoryItemResource, SymbolSparePart),
		baseScore: 0.3,
	}
}

func (b *maintenanceBehavior) Name() string        { return BehaviorMaintenance }
func (b *maintenanceBehavior) Window() task.Window { return task.AnyHours }

func (b *maintenanceBehavior) Score(a task.Agent) float64 {
	return b.baseScore * a.JobModifier(BehaviorMaintenance)
}

func (b *maintenanceBehavior) Execute(ctx context.Context, settler *Settler) error {
	if b.home.ItemCount(b.sparePart) > 0 {
		return b.home.RemoveItems(b.sparePart, 1)
	}
	return nil
}

// restBehavior fills off-hours when nothing else scores higher.
type restBehavior struct{}

func (restBehavior) Name() string        { return BehaviorRest }
func (restBehavior) Window() task.Window { return task.OffHours }

func (restBehavior) Score(a task.Agent) float64 {
	return 0.2 * a.JobModifier(BehaviorRest)
}

func (restBehavior) Execute(ctx context.Context, settler *Settler) error {
	return nil
}

// tradeMissionBehavior proposes and, when approved, runs a trade mission
// with another settlement. Scoring delegates to the mission scorer so every
// readiness gate applies before an agent can draw this behavior.
type tradeMissionBehavior struct {
	home    *settlement.Settlement
	mission *missionRunner
	scorer  *mission.Scorer
}

func newTradeMissionBehavior(home *settlement.Settlement, runner *missionRunner, scorer *mission.Scorer) *tradeMissionBehavior {
	return &tradeMissionBehavior{home: home, mission: runner, scorer: scorer}
}

func (b *tradeMissionBehavior) Name() string        { return BehaviorTradeMission }
func (b *tradeMissionBehavior) Window() task.Window { return task.WorkHours }

func (b *tradeMissionBehavior) Score(a task.Agent) float64 {
	return b.scorer.AgentScore(b.home, a.JobModifier(BehaviorTradeMission))
}

func (b *tradeMissionBehavior) Execute(ctx context.Context, settler *Settler) error {
	return b.mission.RunTradeMission(ctx, b.home, settler)
}
