package simulation

import (
	"testing"

	"github.com/oscillab/resonance/internal/discrete"
)

func canonicalBoosts(amount float64) []BoostSpec {
	return []BoostSpec{
		{Prime: 2, Amount: amount},
		{Prime: 3, Amount: amount},
		{Prime: 5, Amount: amount},
		{Prime: 7, Amount: amount},
		{Prime: 11, Amount: amount},
		{Prime: 13, Amount: amount},
		{Prime: 17, Amount: amount},
	}
}

func TestCoherenceBoundedFastPreset(t *testing.T) {
	r := NewRunner(t)
	result := r.Run(Scenario{
		Name:   "coherence-bounded-fast",
		Boosts: canonicalBoosts(3.0),
		Ticks:  120,
	})

	AssertCoherenceBounded(t, result)
	AssertEntropyBounded(t, result)
	AssertFiringMatchesMargin(t, result)
}

func TestCoherenceBoundedPrecisePreset(t *testing.T) {
	cfg := discrete.PreciseConfig()

	r := NewRunner(t)
	result := r.Run(Scenario{
		Name:   "coherence-bounded-precise",
		Config: &cfg,
		Boosts: canonicalBoosts(3.0),
		Ticks:  150,
	})

	AssertCoherenceBounded(t, result)
	AssertEntropyBounded(t, result)
	AssertFiringMatchesMargin(t, result)
}

func TestZeroActivityNeverFires(t *testing.T) {
	r := NewRunner(t)
	result := r.Run(Scenario{
		Name:  "zero-activity",
		Ticks: 50,
	})

	AssertNeverFired(t, result)
	for _, snap := range result.Snapshots {
		if snap.Result.ActiveCount != 0 {
			t.Errorf("tick %d: active count %d on a silent engine", snap.Tick, snap.Result.ActiveCount)
		}
		if snap.Result.Coherence != 0 {
			t.Errorf("tick %d: coherence %.6f on a silent engine", snap.Tick, snap.Result.Coherence)
		}
	}
}

// A single phase bin forces every active oscillator into the same bin, so
// coherence is exactly 1 whenever anything is active.
func TestSingleBinResolutionAlwaysFires(t *testing.T) {
	cfg := discrete.FastConfig()
	cfg.PhaseResolution = 1

	r := NewRunner(t)
	result := r.Run(Scenario{
		Name:   "single-bin",
		Config: &cfg,
		Boosts: []BoostSpec{{Prime: 2, Amount: 3}, {Prime: 3, Amount: 3}, {Prime: 5, Amount: 3}},
		Ticks:  5,
	})

	for _, snap := range result.Snapshots {
		if !snap.Result.Fired {
			t.Errorf("tick %d did not fire with a single phase bin", snap.Tick)
		}
		if snap.Result.Coherence != 1.0 {
			t.Errorf("tick %d: coherence %.6f, want 1.0", snap.Tick, snap.Result.Coherence)
		}
	}
}
