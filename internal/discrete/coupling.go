package discrete

import (
	"math"

	"github.com/oscillab/resonance/internal/constants"
	"github.com/oscillab/resonance/internal/primes"
)

// defaultCoupling builds the canonical coupling matrix: symmetric, zero
// diagonal, with elevated magnitude for pairs touching a canonical index.
func defaultCoupling(count int) [][]int8 {
	matrix := make([][]int8, count)
	for i := range matrix {
		matrix[i] = make([]int8, count)
	}

	for i := 0; i < count; i++ {
		for j := i + 1; j < count; j++ {
			weight := int8(constants.BaseCouplingWeight)
			if primes.IsCanonicalIndex(i) || primes.IsCanonicalIndex(j) {
				weight = int8(constants.CanonicalCouplingWeight)
			}
			matrix[i][j] = weight
			matrix[j][i] = weight
		}
	}

	return matrix
}

// Coupling returns the coupling value between oscillators i and j, or 0 if
// either index is out of range.
func (e *Engine) Coupling(i, j int) int8 {
	if i < 0 || i >= len(e.coupling) || j < 0 || j >= len(e.coupling) {
		return 0
	}
	return e.coupling[i][j]
}

// setCoupling writes both cells of a pair, preserving symmetry. The diagonal
// is never written.
func (e *Engine) setCoupling(i, j int, value int8) {
	if i == j {
		return
	}
	e.coupling[i][j] = value
	e.coupling[j][i] = value
}

// RandomizeCoupling replaces the entire coupling matrix with random small
// values drawn from the engine's random source. Symmetry and the zero
// diagonal are preserved. This is the standard lockup remedy.
func (e *Engine) RandomizeCoupling() {
	count := len(e.coupling)
	spread := constants.RandomCouplingSpread
	for i := 0; i < count; i++ {
		e.coupling[i][i] = 0
		for j := i + 1; j < count; j++ {
			value := int8(e.rng.Intn(2*spread+1) - spread)
			e.setCoupling(i, j, value)
		}
	}
}

// ResetCoupling restores the canonical default coupling matrix.
func (e *Engine) ResetCoupling() {
	e.coupling = defaultCoupling(len(e.phases))
}

// hebbianUpdate strengthens coupling between every pair of active
// oscillators whose phases are aligned: within M/10 of 0 or of M
// (near-identical phase, wrap-aware). The increment is round(eta * amp_i *
// amp_j), written symmetrically and clamped at the representable maximum.
// Saturation clamps every step and keeps accumulating; it never errors.
func (e *Engine) hebbianUpdate(active []int) {
	m := e.config.PhaseResolution
	window := m / constants.AlignmentDivisor

	for a := 0; a < len(active); a++ {
		for b := a + 1; b < len(active); b++ {
			i, j := active[a], active[b]

			diff := e.phases[i] - e.phases[j]
			if diff < 0 {
				diff = -diff
			}
			if diff > window && diff < m-window {
				continue
			}

			delta := int(math.Round(e.config.HebbianLearningRate * e.amplitudes[i] * e.amplitudes[j]))
			if delta <= 0 {
				continue
			}

			value := int(e.coupling[i][j]) + delta
			if value > constants.CouplingMax {
				value = constants.CouplingMax
			}
			e.setCoupling(i, j, int8(value))
		}
	}
}
