package simulation

import (
	"context"
	"fmt"
	"log"

	"github.com/marscolony/simcore/internal/domain/goods"
	"github.com/marscolony/simcore/internal/domain/mission"
	"github.com/marscolony/simcore/internal/domain/settlement"
	"github.com/marscolony/simcore/internal/domain/shared"
	"github.com/marscolony/simcore/internal/domain/trading"
)

// missionRunner owns the full lifecycle of a trade mission: leadership
// review of the plan, carrier reservation, partner and load selection, the
// inventory transfer, and credit settlement.
type missionRunner struct {
	catalog  *goods.Catalog
	valuator *trading.Valuator
	ledger   *settlement.CreditLedger
	clock    shared.Clock
	logger   *log.Logger

	// peers lists trade partner candidates for a settlement.
	peers func(home *settlement.Settlement) []*settlement.Settlement

	// reviewers lists the leadership reviewer identities for a settlement.
	reviewers func(home *settlement.Settlement) []string
}

// RunTradeMission proposes a trade mission from home, walks it through
// leadership review, and on approval executes the exchange with the best
// partner in range. A mission that finds no worthwhile partner ends quietly;
// that is a normal outcome, not an error.
func (r *missionRunner) RunTradeMission(ctx context.Context, home *settlement.Settlement, settler *Settler) error {
	plan, err := mission.NewPlan(BehaviorTradeMission, settler.Name(), r.clock)
	if err != nil {
		return err
	}

	if !r.reviewPlan(plan, home) {
		r.logger.Printf("settlement %s: trade mission plan %s rejected in review", home.Name(), plan.ID())
		return nil
	}

	carrier, err := home.ReserveCarrier()
	if err != nil {
		// Readiness can change between scoring and execution.
		return nil
	}
	defer carrier.Release()

	profit, partner := r.valuator.BestTradeProfit(home, carrier, r.candidates(home))
	if partner == nil {
		r.logger.Printf("settlement %s: no profitable trade partner in range", home.Name())
		return nil
	}
	target, ok := partner.(*settlement.Settlement)
	if !ok {
		return fmt.Errorf("trade partner %s is not a settlement", partner.Name())
	}

	home.BeginMission(BehaviorTradeMission)
	defer func() {
		if err := home.EndMission(BehaviorTradeMission); err != nil {
			r.logger.Printf("settlement %s: %v", home.Name(), err)
		}
	}()

	sellLoad := r.valuator.BestSellLoad(home, carrier, partner)
	buyLoad := r.valuator.DesiredBuyLoad(home, carrier, partner)

	delivered := r.valuator.LoadValue(sellLoad, partner, true)
	received := r.valuator.LoadValue(buyLoad, home, true)

	if err := r.transfer(home, target, sellLoad); err != nil {
		return err
	}
	if err := r.transfer(target, home, buyLoad); err != nil {
		return err
	}
	r.ledger.Add(home.Name(), target.Name(), delivered-received)

	r.logger.Printf("settlement %s: traded with %s, estimated profit %.1f", home.Name(), target.Name(), profit)
	return ctx.Err()
}

// reviewPlan runs leadership review: each reviewer submits reviews up to
// the population-scaled cap, then the first reviewer decides. Plans with no
// reviewers available are rejected.
func (r *missionRunner) reviewPlan(plan *mission.Plan, home *settlement.Settlement) bool {
	ids := r.reviewers(home)
	if len(ids) == 0 {
		return false
	}

	reviews := 0
	for _, id := range ids {
		if plan.Review(id, home.Population()) {
			reviews++
		}
	}
	plan.SetScore(float64(reviews))
	plan.SetPercentComplete(100)

	if err := plan.Approve(ids[0], "commander"); err != nil {
		return false
	}
	return plan.Status() == mission.PlanApproved
}

// candidates adapts the settlement peer list to the valuator's trader port.
func (r *missionRunner) candidates(home *settlement.Settlement) []trading.Trader {
	peers := r.peers(home)
	out := make([]trading.Trader, 0, len(peers))
	for _, p := range peers {
		if p != home {
			out = append(out, p)
		}
	}
	return out
}

// transfer moves a load's goods between settlement inventories. Amount
// resources move by whole container lots together with their containers;
// vehicles stay with their settlement of registry and are skipped.
func (r *missionRunner) transfer(from, to *settlement.Settlement, load trading.Load) error {
	for good, qty := range load {
		switch good.Category() {
		case goods.CategoryAmountResource:
			kg := r.catalog.TradeAmount(good) * float64(qty)
			if err := from.RetrieveAmount(good, kg); err != nil {
				return err
			}
			to.StoreAmount(good, kg)
		case goods.CategoryItemResource:
			if err := from.RemoveItems(good, qty); err != nil {
				return err
			}
			to.AddItems(good, qty)
		case goods.CategoryEquipment:
			if err := from.RemoveEquipment(good, qty); err != nil {
				return err
			}
			to.AddEquipment(good, qty)
		case goods.CategoryVehicle:
			// Carrier transfers need a crewed delivery run.
		}
	}
	return nil
}
