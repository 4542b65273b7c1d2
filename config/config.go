// Package config defines weavetree's search configuration: the validated
// parameters governing iteration count, exploration, discounting, horizon,
// and return semantics (spec.md §4.C).
package config

import "math"

// ReturnType selects how phase 3 (return computation) turns a path's
// rewards and a rollout's rewards into the scalar backed up through the
// tree.
type ReturnType int

const (
	// Discounted sums gamma^i * reward over the concatenated
	// prefix+rollout reward sequence.
	Discounted ReturnType = iota
	// EpisodicUndiscounted sums prefix and rollout rewards with no
	// discounting; gamma is ignored.
	EpisodicUndiscounted
	// FixedHorizon behaves like EpisodicUndiscounted but caps the
	// rollout length at FixedHorizonSteps.
	FixedHorizon
)

// String renders the lowercase name used in YAML and in the structured
// log event contract.
func (r ReturnType) String() string {
	switch r {
	case Discounted:
		return "discounted"
	case EpisodicUndiscounted:
		return "episodic_undiscounted"
	case FixedHorizon:
		return "fixed_horizon"
	default:
		return "unknown"
	}
}

func parseReturnType(s string) (ReturnType, bool) {
	switch s {
	case "discounted":
		return Discounted, true
	case "episodic_undiscounted":
		return EpisodicUndiscounted, true
	case "fixed_horizon":
		return FixedHorizon, true
	default:
		return 0, false
	}
}

// Config governs one MCTS run. Construct with New, which validates every
// field; a Config obtained any other way (e.g. a struct literal used in a
// test) should be passed through Validate before use.
type Config struct {
	Iterations        int
	C                 float64
	Gamma             float64
	MaxSteps          int
	ReturnType        ReturnType
	FixedHorizonSteps int
}

// Default returns weavetree's default configuration:
// iterations=256, c=1.4, gamma=1.0, max_steps=128, return_type=discounted,
// fixed_horizon_steps=32.
func Default() Config {
	return Config{
		Iterations:        256,
		C:                 1.4,
		Gamma:             1.0,
		MaxSteps:          128,
		ReturnType:        Discounted,
		FixedHorizonSteps: 32,
	}
}

// New constructs and validates a Config.
func New(iterations int, c, gamma float64, maxSteps int, returnType ReturnType, fixedHorizonSteps int) (Config, error) {
	cfg := Config{
		Iterations:        iterations,
		C:                 c,
		Gamma:             gamma,
		MaxSteps:          maxSteps,
		ReturnType:        returnType,
		FixedHorizonSteps: fixedHorizonSteps,
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate enforces every rule in spec.md §4.C, returning an *InvalidError
// naming the first offending field.
func (c Config) Validate() error {
	if c.Iterations <= 0 {
		return &InvalidError{Field: "iterations", Detail: "must be > 0"}
	}
	if math.IsNaN(c.C) || math.IsInf(c.C, 0) || c.C < 0 {
		return &InvalidError{Field: "c", Detail: "must be finite and >= 0"}
	}
	if math.IsNaN(c.Gamma) || math.IsInf(c.Gamma, 0) || c.Gamma < 0 {
		return &InvalidError{Field: "gamma", Detail: "must be finite and >= 0"}
	}
	if c.MaxSteps <= 0 {
		return &InvalidError{Field: "max_steps", Detail: "must be > 0"}
	}
	switch c.ReturnType {
	case Discounted, EpisodicUndiscounted, FixedHorizon:
	default:
		return &InvalidError{Field: "return_type", Detail: "must be one of discounted, episodic_undiscounted, fixed_horizon"}
	}
	if c.FixedHorizonSteps <= 0 {
		return &InvalidError{Field: "fixed_horizon_steps", Detail: "must be > 0"}
	}
	return nil
}
