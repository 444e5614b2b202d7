// Package continuous implements the real-valued synchronization network: a
// collection of prime-indexed oscillators advanced by pairwise sine coupling
// (the Kuramoto rule) with an adaptively scaled coupling constant derived
// from an online Lyapunov-exponent estimate.
//
// Each Network owns its oscillator buffer outright. Pipelines instantiate
// one network apiece; there is no process-wide shared state.
package continuous

import (
	"math"

	"github.com/oscillab/resonance/internal/constants"
	"github.com/oscillab/resonance/internal/phasemath"
)

// Config holds tunable parameters for the continuous network.
type Config struct {
	// BaseCoupling is the Kuramoto coupling constant before adaptive
	// scaling. Default: 0.1.
	BaseCoupling float64

	// StabilityThreshold is the Lyapunov proxy value above which the
	// network is considered unstable and coupling is boosted. Default: 0.1.
	StabilityThreshold float64

	// AmplitudeDecay is the per-step geometric decay factor applied to
	// every amplitude. Default: 0.99.
	AmplitudeDecay float64
}

// DefaultConfig returns the default continuous network configuration.
func DefaultConfig() Config {
	return Config{
		BaseCoupling:       constants.DefaultBaseCoupling,
		StabilityThreshold: constants.DefaultStabilityThreshold,
		AmplitudeDecay:     constants.DefaultContinuousDecay,
	}
}

// Oscillator is a single continuous-phase unit. Phase lives in [0, 2π);
// amplitude is non-negative and decays geometrically each step.
type Oscillator struct {
	Prime     int
	Frequency float64
	Phase     float64
	Amplitude float64

	// history holds pre-update phases, newest last, capped at
	// constants.PhaseHistoryCap. Used only for divergence estimation.
	history []float64
}

// History returns the recorded phase history, newest last. The returned
// slice is the oscillator's own buffer; callers must not mutate it.
func (o *Oscillator) History() []float64 {
	return o.history
}

// Metrics is the aggregate snapshot returned by one Advance pass.
type Metrics struct {
	Coherence        float64 `json:"coherence"`
	TotalEnergy      float64 `json:"total_energy"`
	Entropy          float64 `json:"entropy"`
	MeanPhase        float64 `json:"mean_phase"`
	LyapunovExponent float64 `json:"lyapunov_exponent"`
	Stable           bool    `json:"stable"`
}

// Network is a mutable collection of continuous oscillators. It is not safe
// for concurrent use; callers running several pipelines serialize per
// instance themselves.
type Network struct {
	config      Config
	oscillators []Oscillator
}

// NewNetwork creates an empty network with the given configuration.
func NewNetwork(config Config) *Network {
	return &Network{config: config}
}

// AddOscillator appends a new oscillator for the given prime with the given
// initial amplitude and phase. The natural frequency is derived as
// 1 + ln(prime)/10, incommensurate across distinct primes. No upper bound is
// enforced here; callers are expected to bound the population.
func (n *Network) AddOscillator(prime int, amplitude, phase float64) {
	n.oscillators = append(n.oscillators, Oscillator{
		Prime:     prime,
		Frequency: 1 + math.Log(float64(prime))/constants.FrequencyLogDivisor,
		Phase:     phasemath.WrapPhase(phase),
		Amplitude: amplitude,
	})
}

// Clear empties the collection. Removal is all-or-nothing: individual
// oscillators are never removed. Metric queries on an empty network return
// neutral values rather than fail.
func (n *Network) Clear() {
	n.oscillators = nil
}

// Size returns the current oscillator count.
func (n *Network) Size() int {
	return len(n.oscillators)
}

// Oscillators returns the network's oscillator buffer for inspection.
// Callers must not mutate it; all updates go through Advance.
func (n *Network) Oscillators() []Oscillator {
	return n.oscillators
}

// Advance performs one full update pass with the given time step and
// returns the aggregate snapshot. The pass runs to completion with no
// suspension points; an empty network yields neutral metrics.
func (n *Network) Advance(dt float64) Metrics {
	count := len(n.oscillators)
	if count == 0 {
		return Metrics{Stable: true}
	}

	phases := make([]float64, count)
	for i := range n.oscillators {
		phases[i] = n.oscillators[i].Phase
	}

	meanPhase := phasemath.CircularMean(phases)

	exponent := n.estimateExponent()
	coupling := n.adaptiveCoupling(exponent)

	// Kuramoto pass: coupling sums are computed against the pre-update
	// phase snapshot so updates within a step do not affect each other.
	for i := range n.oscillators {
		osc := &n.oscillators[i]

		couplingSum := 0.0
		for j := range phases {
			if j == i {
				continue
			}
			couplingSum += math.Sin(phases[j] - phases[i])
		}

		next := phases[i] + osc.Frequency*dt + coupling/float64(count)*couplingSum
		osc.Phase = phasemath.WrapPhase(next)

		// Record the pre-update phase for divergence estimation.
		osc.history = append(osc.history, phases[i])
		if len(osc.history) > constants.PhaseHistoryCap {
			osc.history = osc.history[1:]
		}

		osc.Amplitude *= n.config.AmplitudeDecay
	}

	for i := range n.oscillators {
		phases[i] = n.oscillators[i].Phase
	}

	amplitudes := make([]float64, count)
	totalEnergy := 0.0
	for i := range n.oscillators {
		amplitudes[i] = n.oscillators[i].Amplitude
		totalEnergy += n.oscillators[i].Amplitude
	}

	return Metrics{
		Coherence:        phasemath.OrderParameter(phases),
		TotalEnergy:      totalEnergy,
		Entropy:          phasemath.ShannonEntropy(amplitudes),
		MeanPhase:        meanPhase,
		LyapunovExponent: exponent,
		Stable:           exponent < n.config.StabilityThreshold,
	}
}

// adaptiveCoupling derives the effective coupling strength from the current
// exponent estimate. When the estimate exceeds the stability threshold, the
// base is scaled upward linearly with the excess.
func (n *Network) adaptiveCoupling(exponent float64) float64 {
	coupling := n.config.BaseCoupling
	if exponent > n.config.StabilityThreshold {
		coupling *= 1 + constants.LyapunovPenaltyFactor*(exponent-n.config.StabilityThreshold)
	}
	return coupling
}
