package simulation

import (
	"github.com/oscillab/resonance/internal/constants"
	"github.com/oscillab/resonance/internal/discrete"
)

// Scenario defines a complete simulation experiment.
type Scenario struct {
	Name   string
	Config *discrete.Config // nil = fast preset
	Seed   int64            // 0 = seed 1
	Boosts []BoostSpec      // applied once, after Start and before the first tick
	Ticks  int

	// BeforeTick, when non-nil, is called before each tick executes. Use
	// this to manipulate the engine mid-run (e.g., re-boosting to sustain
	// activity, or damping to force silence).
	BeforeTick func(tick int, e *discrete.Engine)
}

// BoostSpec defines an initial amplitude boost addressed by prime.
type BoostSpec struct {
	Prime  int
	Amount float64
}

// TickSnapshot captures the engine state observed after one tick.
type TickSnapshot struct {
	Tick        int
	Result      discrete.TickResult
	LockedUp    bool
	Amplitudes  []float64
	Semantic    [constants.SemanticAxes]float64
	CouplingSum int // sum of the upper-triangle coupling values
}

// SimulationResult captures all snapshots and the final engine.
type SimulationResult struct {
	Snapshots []TickSnapshot
	Engine    *discrete.Engine
}

// Final returns the last snapshot.
func (r SimulationResult) Final() TickSnapshot {
	return r.Snapshots[len(r.Snapshots)-1]
}
