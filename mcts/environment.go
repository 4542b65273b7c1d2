package mcts

import "github.com/weavetree/core/ids"

// ActionCountFunc returns the number of legal actions at state, a
// non-negative integer. It must be deterministic in state within one
// search. A return of 0 signifies "no legal actions here"; the engine
// treats such a node as effectively terminal for tree-policy purposes
// without flipping its IsTerminal flag (spec.md §9, open question 2).
type ActionCountFunc func(state ids.StateKey) int

// StepFunc applies action at state and returns the successor state key,
// the (finite) reward earned, and whether the successor is terminal. It
// must accept any action in [0, ActionCountFunc(state)) and any number of
// repeated calls with the same inputs, which may legitimately return
// different outcomes under stochastic dynamics.
type StepFunc func(state ids.StateKey, action ids.ActionId) (next ids.StateKey, reward float64, terminal bool)

// RolloutPolicyFunc chooses an action to play during rollout. It must
// return a value in [0, numActions); an out-of-range value fails the
// iteration with InvalidRolloutActionError.
type RolloutPolicyFunc func(state ids.StateKey, numActions int) ids.ActionId

// Environment groups the two callbacks the tree policy needs to expand
// and descend the tree. Together with a RolloutPolicyFunc, these are the
// only three capabilities the core consumes from a collaborator (spec.md
// §1, §6).
type Environment struct {
	NumActions ActionCountFunc
	Step       StepFunc
}
