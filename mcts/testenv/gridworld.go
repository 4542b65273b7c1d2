// Package testenv supplies small, literal environments used across
// weavetree's own test suite to exercise the engine without depending on
// the MDP-modelling binding layer the core explicitly excludes (spec.md
// §1). These are reference implementations of the Environment/
// RolloutPolicyFunc contract (spec.md §6), not the core itself.
package testenv

import (
	"golang.org/x/exp/rand"

	"github.com/weavetree/core/ids"
	"github.com/weavetree/core/mcts"
)

// Gridworld is the deterministic five-state gridworld of spec.md §8
// scenario S1: states 0..4, state 4 terminal. Action 0 advances toward 4,
// paying a reward of 1.0 on the transition that enters it; action 1 stays
// put for no reward.
func Gridworld() mcts.Environment {
	return mcts.Environment{
		NumActions: func(ids.StateKey) int { return 2 },
		Step: func(state ids.StateKey, action ids.ActionId) (ids.StateKey, float64, bool) {
			s := int(state)
			if action.Int() == 0 {
				next := s + 1
				if next > 4 {
					next = 4
				}
				reward := 0.0
				if next == 4 && s != 4 {
					reward = 1.0
				}
				return ids.StateKey(next), reward, next == 4
			}
			return state, 0.0, s == 4
		},
	}
}

// TwoOutcomeDecision is the deterministic two-action MDP of spec.md §8
// scenario S2: from state 0, action 0 leads to terminal state 1 with
// reward 1.0, action 1 leads to terminal state 2 with reward 0.2.
func TwoOutcomeDecision() mcts.Environment {
	return mcts.Environment{
		NumActions: func(state ids.StateKey) int {
			if state.Uint64() == 0 {
				return 2
			}
			return 0
		},
		Step: func(_ ids.StateKey, action ids.ActionId) (ids.StateKey, float64, bool) {
			if action.Int() == 0 {
				return ids.StateKey(1), 1.0, true
			}
			return ids.StateKey(2), 0.2, true
		},
	}
}

// SeededCoinFlip builds a single-action environment whose one transition
// samples one of two successor states with probability 1/2 each, using a
// seeded golang.org/x/exp/rand generator so a test run is reproducible.
// This exercises the chance-outcome histogram (spec.md §3, §9): repeated
// visits to the same (node, action) accumulate two distinct Outcome
// entries rather than one.
func SeededCoinFlip(seed uint64) mcts.Environment {
	rng := rand.New(rand.NewSource(seed))
	return mcts.Environment{
		NumActions: func(state ids.StateKey) int {
			if state.Uint64() == 0 {
				return 1
			}
			return 0
		},
		Step: func(_ ids.StateKey, _ ids.ActionId) (ids.StateKey, float64, bool) {
			if rng.Float64() < 0.5 {
				return ids.StateKey(1), 1.0, true
			}
			return ids.StateKey(2), 0.0, true
		},
	}
}

// ZeroActionState is a non-terminal environment that reports zero legal
// actions for every state (spec.md §8 scenario S5).
func ZeroActionState() mcts.Environment {
	return mcts.Environment{
		NumActions: func(ids.StateKey) int { return 0 },
		Step: func(state ids.StateKey, _ ids.ActionId) (ids.StateKey, float64, bool) {
			return state, 0, false
		},
	}
}

// AlwaysChoose returns a RolloutPolicyFunc that always plays the same
// action, ignoring numActions.
func AlwaysChoose(action ids.ActionId) mcts.RolloutPolicyFunc {
	return func(ids.StateKey, int) ids.ActionId { return action }
}

// FixedSequence returns a RolloutPolicyFunc that plays actions in order,
// repeating the last one once the sequence is exhausted. Useful for
// driving a rollout through a known path in a test.
func FixedSequence(actions ...ids.ActionId) mcts.RolloutPolicyFunc {
	i := 0
	return func(ids.StateKey, int) ids.ActionId {
		a := actions[i]
		if i < len(actions)-1 {
			i++
		}
		return a
	}
}
