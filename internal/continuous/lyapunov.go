package continuous

import (
	"math"

	"github.com/oscillab/resonance/internal/constants"
	"github.com/oscillab/resonance/internal/phasemath"
)

// estimateExponent computes the network-level Lyapunov proxy: for every
// oscillator with at least two recorded history phases, sum ln|Δphase| over
// consecutive entries (wrapped to [0, π], skipping differences below
// constants.MinPhaseDelta) and divide by the history length, then average
// across all oscillators with sufficient history.
//
// This is a cheap divergence estimate, not a rigorous Lyapunov exponent.
// It exists to flag instability, and its absolute value only matters
// relative to the configured stability threshold.
func (n *Network) estimateExponent() float64 {
	sum := 0.0
	sampled := 0

	for i := range n.oscillators {
		local, ok := localExponent(n.oscillators[i].history)
		if !ok {
			continue
		}
		sum += local
		sampled++
	}

	if sampled == 0 {
		return 0
	}
	return sum / float64(sampled)
}

// localExponent estimates a single oscillator's divergence from its phase
// history. Returns false when the history is too short to sample.
func localExponent(history []float64) (float64, bool) {
	if len(history) < 2 {
		return 0, false
	}

	sum := 0.0
	for k := 1; k < len(history); k++ {
		delta := phasemath.WrapDiff(history[k], history[k-1])
		if delta < constants.MinPhaseDelta {
			continue
		}
		sum += math.Log(delta)
	}

	return sum / float64(len(history)), true
}
