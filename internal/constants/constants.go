// Package constants provides named constants used throughout the resonance codebase.
// This centralizes magic numbers for better maintainability and documentation.
package constants

// Continuous network constants.
const (
	// PhaseHistoryCap is the maximum number of past phases retained per
	// oscillator for divergence estimation. Older entries are dropped.
	PhaseHistoryCap = 50

	// MinPhaseDelta is the smallest phase difference included in the
	// Lyapunov proxy sum. Differences below this would drive ln toward
	// negative infinity.
	MinPhaseDelta = 0.001

	// LyapunovPenaltyFactor scales the adaptive coupling boost applied
	// when the estimated exponent exceeds the stability threshold.
	LyapunovPenaltyFactor = 2.0

	// DefaultBaseCoupling is the default Kuramoto coupling constant
	// before adaptive scaling.
	DefaultBaseCoupling = 0.1

	// DefaultStabilityThreshold is the Lyapunov exponent below which the
	// network is considered stable.
	DefaultStabilityThreshold = 0.1

	// DefaultContinuousDecay is the per-step geometric amplitude decay
	// factor for the continuous network.
	DefaultContinuousDecay = 0.99

	// FrequencyLogDivisor derives an oscillator's natural frequency from
	// its prime: 1 + ln(prime)/FrequencyLogDivisor. The log keeps
	// frequencies incommensurate across distinct primes.
	FrequencyLogDivisor = 10.0
)

// Discrete engine constants.
const (
	// CouplingMax is the saturation bound for discrete coupling values.
	// Coupling is stored as int8; Hebbian growth clamps here.
	CouplingMax = 127

	// CanonicalCouplingWeight is the default coupling magnitude for pairs
	// where either oscillator carries a canonical prime.
	CanonicalCouplingWeight = 24

	// BaseCouplingWeight is the default coupling magnitude for all other
	// pairs.
	BaseCouplingWeight = 8

	// RandomCouplingSpread bounds the magnitude of randomized coupling
	// values: RandomizeCoupling draws from [-spread, spread].
	RandomCouplingSpread = 16

	// AlignmentDivisor sets the Hebbian phase-alignment window as a
	// fraction of the phase resolution: pairs within M/AlignmentDivisor
	// of zero difference (wrap-aware) count as aligned.
	AlignmentDivisor = 10
)

// Semantic accumulator constants.
const (
	// SemanticAxes is the dimensionality of the semantic accumulator.
	SemanticAxes = 16

	// SemanticContribution is the fraction of an active oscillator's
	// amplitude added to its axis each tick.
	SemanticContribution = 0.1

	// SemanticDecay is the per-tick geometric decay applied to every
	// semantic axis before contributions are accumulated.
	SemanticDecay = 0.95

	// SemanticFloor is the smallest axis value included in the semantic
	// entropy sum.
	SemanticFloor = 0.001
)
