package discrete

import (
	"math"

	"github.com/oscillab/resonance/internal/constants"
)

// accumulateSemantic decays all 16 axes, then adds a fraction of each active
// oscillator's amplitude to the axis selected by its prime. When the
// resulting mass exceeds 1, all axes are renormalized to sum to exactly 1.
func (e *Engine) accumulateSemantic(active []int) {
	for axis := range e.semantic {
		e.semantic[axis] *= constants.SemanticDecay
	}

	for _, i := range active {
		axis := e.primeAt[i] % constants.SemanticAxes
		e.semantic[axis] += e.amplitudes[i] * constants.SemanticContribution
	}

	total := 0.0
	for _, v := range e.semantic {
		total += v
	}
	if total > 1 {
		for axis := range e.semantic {
			e.semantic[axis] /= total
		}
	}
}

// semanticEntropy computes the Shannon entropy of the semantic accumulator,
// skipping axes below the floor, normalized by ln(16) to lie in [0, 1].
func (e *Engine) semanticEntropy() float64 {
	total := 0.0
	for _, v := range e.semantic {
		if v >= constants.SemanticFloor {
			total += v
		}
	}
	if total == 0 {
		return 0
	}

	entropy := 0.0
	for _, v := range e.semantic {
		if v < constants.SemanticFloor {
			continue
		}
		p := v / total
		entropy -= p * math.Log(p)
	}

	return entropy / math.Log(constants.SemanticAxes)
}

// Semantic returns a copy of the 16-axis semantic accumulator (the SMF
// vector consumed by outer layers).
func (e *Engine) Semantic() [constants.SemanticAxes]float64 {
	return e.semantic
}
