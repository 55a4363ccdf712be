package simulation

import (
	"context"
	"log"
	"math/rand"
	"sync"

	"github.com/marscolony/simcore/internal/domain/goods"
	"github.com/marscolony/simcore/internal/domain/mission"
	"github.com/marscolony/simcore/internal/domain/settlement"
	"github.com/marscolony/simcore/internal/domain/shared"
	"github.com/marscolony/simcore/internal/domain/task"
	"github.com/marscolony/simcore/internal/domain/trading"
)

// Params tunes the simulation loop. Zero values fall back to defaults.
type Params struct {
	// HoursPerSol is the length of the Martian day driving shift windows.
	HoursPerSol float64

	// WorkStartHour and WorkEndHour bound the duty shift within a sol.
	WorkStartHour float64
	WorkEndHour   float64

	// CrewSize is the crew a trade mission takes.
	CrewSize int

	// TradeProfile configures trade mission readiness scoring.
	TradeProfile mission.Profile
}

// DefaultParams returns the standard simulation tuning.
func DefaultParams() Params {
	return Params{
		HoursPerSol:   24.66,
		WorkStartHour: 6,
		WorkEndHour:   18,
		CrewSize:      2,
		TradeProfile: mission.Profile{
			Type:               BehaviorTradeMission,
			MinPopulation:      2,
			CrewSize:           2,
			BaselineResourceKg: 50,
			StartupBonus:       0.5,
		},
	}
}

func (p Params) withDefaults() Params {
	d := DefaultParams()
	if p.HoursPerSol <= 0 {
		p.HoursPerSol = d.HoursPerSol
	}
	if p.WorkEndHour <= p.WorkStartHour {
		p.WorkStartHour = d.WorkStartHour
		p.WorkEndHour = d.WorkEndHour
	}
	if p.CrewSize < 1 {
		p.CrewSize = d.CrewSize
	}
	if p.TradeProfile.Type == "" {
		p.TradeProfile = d.TradeProfile
		p.TradeProfile.CrewSize = p.CrewSize
	}
	return p
}

// Crew life-support consumption in kg per sol per person.
const (
	oxygenKgPerSol = 1.0
	waterKgPerSol  = 4.0
	foodKgPerSol   = 1.5
)

type settlementState struct {
	settlement *settlement.Settlement
	settlers   []*Settler
	scheduler  *task.Scheduler
}

// Service drives the colony simulation one tick (one simulated hour) at a
// time: settlements consume life support, then every settler draws a
// behavior for the current shift window and runs it.
//
// Behavior registries are built exactly once, on the first tick, behind a
// one-shot barrier; they are read-only afterwards so settler evaluation
// could fan out without races.
type Service struct {
	params  Params
	catalog *goods.Catalog
	ledger  *settlement.CreditLedger
	clock   shared.Clock
	logger  *log.Logger
	rng     *rand.Rand

	valuator *trading.Valuator
	runner   *missionRunner

	mu     sync.Mutex
	states []*settlementState
	tick   int64

	registryInit sync.Once
}

// NewService creates a simulation service. The catalog must already carry
// the simulation goods (see RegisterSimulationGoods). A nil logger logs to
// the standard logger; a nil rng gets a time-seeded source.
func NewService(params Params, catalog *goods.Catalog, clock shared.Clock, logger *log.Logger, rng *rand.Rand) *Service {
	params = params.withDefaults()
	if clock == nil {
		clock = shared.NewRealClock()
	}
	if logger == nil {
		logger = log.Default()
	}

	ledger := settlement.NewCreditLedger()
	valuator := trading.NewValuator(catalog, ledger, params.CrewSize)

	s := &Service{
		params:   params,
		catalog:  catalog,
		ledger:   ledger,
		clock:    clock,
		logger:   logger,
		rng:      rng,
		valuator: valuator,
	}
	s.runner = &missionRunner{
		catalog:   catalog,
		valuator:  valuator,
		ledger:    ledger,
		clock:     clock,
		logger:    logger,
		peers:     s.peersOf,
		reviewers: s.reviewersOf,
	}
	return s
}

// RegisterSimulationGoods adds the goods the simulation behaviors use to a
// catalog. Safe to call on a catalog that already has them.
func RegisterSimulationGoods(catalog *goods.Catalog) {
	catalog.RegisterAmountResource(SymbolRegolith, goods.PhaseSolid, false)
	catalog.RegisterAmountResource(SymbolMethane, goods.PhaseGas, false)
	catalog.RegisterItemResource(SymbolSparePart, 2.5, true)
	catalog.RegisterVehicle(SymbolRover)
}

// AddSettlement places a settlement and its settlers under simulation.
// Must be called before the first tick; the behavior registries freeze
// there.
func (s *Service) AddSettlement(st *settlement.Settlement, settlers []*Settler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states = append(s.states, &settlementState{settlement: st, settlers: settlers})
}

// Ledger exposes the inter-settlement credit ledger.
func (s *Service) Ledger() *settlement.CreditLedger { return s.ledger }

// Valuator exposes the trade valuator for query-side callers.
func (s *Service) Valuator() *trading.Valuator { return s.valuator }

// Tick advances the simulation one hour: life support is consumed, then
// each settler draws and runs a behavior for the current shift window.
func (s *Service) Tick(ctx context.Context) error {
	s.registryInit.Do(s.buildRegistries)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.tick++
	window := s.windowAt(s.tick)

	for _, state := range s.states {
		s.consumeLifeSupport(state.settlement)

		for _, settler := range state.settlers {
			if err := ctx.Err(); err != nil {
				return err
			}
			behavior, ok := state.scheduler.SelectNext(settler, window)
			if !ok {
				continue
			}
			b, isBehavior := behavior.(Behavior)
			if !isBehavior {
				continue
			}
			if err := b.Execute(ctx, settler); err != nil {
				s.logger.Printf("settler %s: %s failed: %v", settler.Name(), behavior.Name(), err)
			}
		}
	}
	return nil
}

// Tick count since the simulation started.
func (s *Service) Ticks() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tick
}

// buildRegistries constructs each settlement's behavior registry and
// scheduler. Runs exactly once.
func (s *Service) buildRegistries() {
	s.mu.Lock()
	defer s.mu.Unlock()

	scorer := mission.NewScorer(s.params.TradeProfile)
	for _, state := range s.states {
		registry := task.NewRegistryBuilder().
			Add(newCollectRegolithBehavior(state.settlement)).
			Add(newMaintenanceBehavior(state.settlement)).
			Add(restBehavior{}).
			Add(newTradeMissionBehavior(state.settlement, s.runner, scorer)).
			Build()
		state.scheduler = task.NewScheduler(registry, s.rng)
	}
}

// windowAt maps a tick to the shift window by the hour of sol.
func (s *Service) windowAt(tick int64) task.Window {
	hour := float64(tick)
	for hour >= s.params.HoursPerSol {
		hour -= s.params.HoursPerSol
	}
	if hour >= s.params.WorkStartHour && hour < s.params.WorkEndHour {
		return task.WorkHours
	}
	return task.OffHours
}

// consumeLifeSupport draws one tick's crew consumables from stores.
// Shortfalls are logged, not fatal; the colony is in trouble, not the
// simulation.
func (s *Service) consumeLifeSupport(st *settlement.Settlement) {
	perHour := 1.0 / s.params.HoursPerSol
	pop := float64(st.Population())

	for symbol, rate := range map[string]float64{
		goods.SymbolOxygen: oxygenKgPerSol,
		goods.SymbolWater:  waterKgPerSol,
		goods.SymbolFood:   foodKgPerSol,
	} {
		g, err := s.catalog.Lookup(goods.CategoryAmountResource, symbol)
		if err != nil {
			continue
		}
		kg := rate * pop * perHour
		if err := st.RetrieveAmount(g, kg); err != nil {
			s.logger.Printf("settlement %s: life support shortfall: %v", st.Name(), err)
		}
	}
}

func (s *Service) peersOf(home *settlement.Settlement) []*settlement.Settlement {
	out := make([]*settlement.Settlement, 0, len(s.states))
	for _, state := range s.states {
		if state.settlement != home {
			out = append(out, state.settlement)
		}
	}
	return out
}

// reviewersOf returns the reviewer identities for a settlement's mission
// plans: its settlers, leadership first.
func (s *Service) reviewersOf(home *settlement.Settlement) []string {
	for _, state := range s.states {
		if state.settlement != home {
			continue
		}
		ids := make([]string, 0, len(state.settlers))
		for _, p := range state.settlers {
			ids = append(ids, p.Name())
		}
		return ids
	}
	return nil
}
