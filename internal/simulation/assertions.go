package simulation

import (
	"testing"
)

// AssertCoherenceBounded asserts that coherence stays within [0, 1] in every
// snapshot.
func AssertCoherenceBounded(t *testing.T, result SimulationResult) {
	t.Helper()
	for _, snap := range result.Snapshots {
		c := snap.Result.Coherence
		if c < 0 || c > 1 {
			t.Errorf("AssertCoherenceBounded: tick %d: coherence %.6f out of [0, 1]", snap.Tick, c)
		}
	}
}

// AssertEntropyBounded asserts that normalized entropy stays within [0, 1] in
// every snapshot.
func AssertEntropyBounded(t *testing.T, result SimulationResult) {
	t.Helper()
	for _, snap := range result.Snapshots {
		e := snap.Result.Entropy
		if e < 0 || e > 1 {
			t.Errorf("AssertEntropyBounded: tick %d: entropy %.6f out of [0, 1]", snap.Tick, e)
		}
	}
}

// AssertFiringMatchesMargin asserts that the fired flag agrees with the sign
// of the stabilization margin in every snapshot.
func AssertFiringMatchesMargin(t *testing.T, result SimulationResult) {
	t.Helper()
	for _, snap := range result.Snapshots {
		fired := snap.Result.StabilizationMargin >= 0
		if snap.Result.Fired != fired {
			t.Errorf("AssertFiringMatchesMargin: tick %d: fired=%v but margin=%.6f",
				snap.Tick, snap.Result.Fired, snap.Result.StabilizationMargin)
		}
	}
}

// AssertNeverFired asserts that no snapshot reports a firing.
func AssertNeverFired(t *testing.T, result SimulationResult) {
	t.Helper()
	for _, snap := range result.Snapshots {
		if snap.Result.Fired {
			t.Errorf("AssertNeverFired: tick %d fired (coherence %.6f)", snap.Tick, snap.Result.Coherence)
		}
	}
}

// AssertAmplitudeNonIncreasing asserts that oscillator i's amplitude never
// grows between consecutive snapshots. Only valid for runs without mid-run
// boosts.
func AssertAmplitudeNonIncreasing(t *testing.T, result SimulationResult, i int) {
	t.Helper()
	for k := 1; k < len(result.Snapshots); k++ {
		prev := result.Snapshots[k-1].Amplitudes[i]
		cur := result.Snapshots[k].Amplitudes[i]
		if cur > prev {
			t.Errorf("AssertAmplitudeNonIncreasing: oscillator %d grew from %.6f to %.6f at tick %d",
				i, prev, cur, result.Snapshots[k].Tick)
		}
	}
}

// AssertCouplingNonDecreasing asserts that the total coupling mass never
// shrinks between consecutive snapshots. Only valid for runs without coupling
// randomization.
func AssertCouplingNonDecreasing(t *testing.T, result SimulationResult) {
	t.Helper()
	for k := 1; k < len(result.Snapshots); k++ {
		prev := result.Snapshots[k-1].CouplingSum
		cur := result.Snapshots[k].CouplingSum
		if cur < prev {
			t.Errorf("AssertCouplingNonDecreasing: coupling sum fell from %d to %d at tick %d",
				prev, cur, result.Snapshots[k].Tick)
		}
	}
}

// AssertCouplingIncreased asserts that the total coupling mass is strictly
// higher in a later snapshot than in an earlier one.
func AssertCouplingIncreased(t *testing.T, result SimulationResult, fromTick, toTick int) {
	t.Helper()
	from := result.Snapshots[fromTick].CouplingSum
	to := result.Snapshots[toTick].CouplingSum
	if to <= from {
		t.Errorf("AssertCouplingIncreased: coupling sum did not increase: tick %d=%d, tick %d=%d",
			fromTick, from, toTick, to)
	}
}

// AssertCouplingConstant asserts that the total coupling mass never changes
// across the run.
func AssertCouplingConstant(t *testing.T, result SimulationResult) {
	t.Helper()
	first := result.Snapshots[0].CouplingSum
	for _, snap := range result.Snapshots[1:] {
		if snap.CouplingSum != first {
			t.Errorf("AssertCouplingConstant: coupling sum changed from %d to %d at tick %d",
				first, snap.CouplingSum, snap.Tick)
		}
	}
}

// AssertSemanticMassBounded asserts that the semantic accumulator's total
// mass never exceeds maxMass in any snapshot.
func AssertSemanticMassBounded(t *testing.T, result SimulationResult, maxMass float64) {
	t.Helper()
	for _, snap := range result.Snapshots {
		total := 0.0
		for _, v := range snap.Semantic {
			total += v
		}
		if total > maxMass {
			t.Errorf("AssertSemanticMassBounded: tick %d: semantic mass %.6f > max %.6f",
				snap.Tick, total, maxMass)
		}
	}
}

// CountFired counts snapshots that reported a firing.
func CountFired(result SimulationResult) int {
	count := 0
	for _, snap := range result.Snapshots {
		if snap.Result.Fired {
			count++
		}
	}
	return count
}

// MaxCoherence returns the largest coherence seen across the run.
func MaxCoherence(result SimulationResult) float64 {
	max := 0.0
	for _, snap := range result.Snapshots {
		if snap.Result.Coherence > max {
			max = snap.Result.Coherence
		}
	}
	return max
}
