package simulation

import (
	"math/rand"
	"testing"

	"github.com/oscillab/resonance/internal/discrete"
)

// Runner orchestrates simulation experiments against a real engine.
type Runner struct {
	t *testing.T
}

// NewRunner creates a simulation runner.
func NewRunner(t *testing.T) *Runner {
	t.Helper()
	return &Runner{t: t}
}

// Run executes the scenario and returns the collected snapshots.
func (r *Runner) Run(scenario Scenario) SimulationResult {
	r.t.Helper()

	cfg := discrete.FastConfig()
	if scenario.Config != nil {
		cfg = *scenario.Config
	}

	seed := scenario.Seed
	if seed == 0 {
		seed = 1
	}

	engine := discrete.NewEngine(cfg, rand.New(rand.NewSource(seed)))
	engine.Start()

	for _, boost := range scenario.Boosts {
		engine.BoostPrime(boost.Prime, boost.Amount)
	}

	snapshots := make([]TickSnapshot, 0, scenario.Ticks)
	for tick := 0; tick < scenario.Ticks; tick++ {
		if scenario.BeforeTick != nil {
			scenario.BeforeTick(tick, engine)
		}
		result := engine.Tick()
		snapshots = append(snapshots, r.snapshot(tick, engine, result))
	}

	return SimulationResult{
		Snapshots: snapshots,
		Engine:    engine,
	}
}

// snapshot captures the observable engine state after a tick.
func (r *Runner) snapshot(tick int, engine *discrete.Engine, result discrete.TickResult) TickSnapshot {
	amplitudes := make([]float64, engine.Size())
	for i := range amplitudes {
		amplitudes[i] = engine.Amplitude(i)
	}

	return TickSnapshot{
		Tick:        tick,
		Result:      result,
		LockedUp:    engine.LockedUp(),
		Amplitudes:  amplitudes,
		Semantic:    engine.Semantic(),
		CouplingSum: CouplingSum(engine),
	}
}

// CouplingSum sums the upper triangle of the engine's coupling matrix.
func CouplingSum(e *discrete.Engine) int {
	sum := 0
	n := e.Size()
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			sum += int(e.Coupling(i, j))
		}
	}
	return sum
}

// CouplingMatrix copies the engine's full coupling matrix.
func CouplingMatrix(e *discrete.Engine) [][]int8 {
	n := e.Size()
	matrix := make([][]int8, n)
	for i := range matrix {
		matrix[i] = make([]int8, n)
		for j := 0; j < n; j++ {
			matrix[i][j] = e.Coupling(i, j)
		}
	}
	return matrix
}
