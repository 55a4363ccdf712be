package task

import (
	"math"
	"math/rand"
	"time"
)

// Scheduler picks an agent's next behavior by weighted-random draw over the
// behaviors schedulable in the current window.
type Scheduler struct {
	registry *Registry
	rng      *rand.Rand
}

// NewScheduler creates a scheduler over a built registry. A nil rng gets a
// time-seeded source; tests inject a fixed-seed one.
func NewScheduler(registry *Registry, rng *rand.Rand) *Scheduler {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Scheduler{registry: registry, rng: rng}
}

// SelectNext scores every behavior in the window for the agent, builds a
// cumulative-weight table over the positive scores, and draws one. It
// returns false when nothing scored positive, meaning the agent idles this
// tick.
func (s *Scheduler) SelectNext(a Agent, w Window) (MetaTask, bool) {
	behaviors := s.registry.BehaviorsFor(w)

	weights := make([]float64, 0, len(behaviors))
	eligible := make([]MetaTask, 0, len(behaviors))
	total := 0.0

	for _, b := range behaviors {
		score := b.Score(a)
		if math.IsNaN(score) || score <= 0 {
			continue
		}
		weights = append(weights, score)
		eligible = append(eligible, b)
		total += score
	}

	if total <= 0 {
		return nil, false
	}

	draw := s.rng.Float64() * total
	cumulative := 0.0
	for i, weight := range weights {
		cumulative += weight
		if draw < cumulative {
			return eligible[i], true
		}
	}

	// Rounding can leave the draw just past the final cumulative weight.
	return eligible[len(eligible)-1], true
}
