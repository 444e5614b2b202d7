package discrete

// Config holds the discrete engine's construction parameters. All fields are
// immutable after construction except via explicit Reset. Values are trusted
// inputs: the engine performs no validation of them — validation, if desired,
// belongs to the owning pipeline's construction path.
type Config struct {
	// NumOscillators is the fixed oscillator count.
	NumOscillators int `json:"num_oscillators" yaml:"num_oscillators"`

	// PhaseResolution is the number of integer phase bins (M). Phases
	// live in [0, M).
	PhaseResolution int `json:"phase_resolution" yaml:"phase_resolution"`

	// AmplitudeMax is the ceiling boost operations clamp to.
	AmplitudeMax float64 `json:"amplitude_max" yaml:"amplitude_max"`

	// AmplitudeDecay is the per-tick geometric decay factor.
	AmplitudeDecay float64 `json:"amplitude_decay" yaml:"amplitude_decay"`

	// ActiveThreshold is the minimum amplitude for an oscillator to count
	// as active in the histogram, Hebbian, and semantic passes.
	ActiveThreshold float64 `json:"active_threshold" yaml:"active_threshold"`

	// BaseBoostAmount is the default boost applied when a caller does not
	// specify an amount.
	BaseBoostAmount float64 `json:"base_boost_amount" yaml:"base_boost_amount"`

	// CouplingStrength scales the integer Kuramoto sum (K).
	CouplingStrength float64 `json:"coupling_strength" yaml:"coupling_strength"`

	// CoherenceThreshold is the firing threshold: ticks at or above it set
	// the fired flag and enable Hebbian adaptation.
	CoherenceThreshold float64 `json:"coherence_threshold" yaml:"coherence_threshold"`

	// HebbianLearningRate (eta) scales coupling growth for aligned active
	// pairs.
	HebbianLearningRate float64 `json:"hebbian_learning_rate" yaml:"hebbian_learning_rate"`

	// EnableLockupRecovery opts in to automatic coupling re-randomization
	// when lockup is detected during a tick. Off by default: detection and
	// recovery are deliberately separated, and recovery is normally the
	// caller's decision.
	EnableLockupRecovery bool `json:"enable_lockup_recovery" yaml:"enable_lockup_recovery"`

	// LockupWindow is the coherence-history window size for lockup
	// detection.
	LockupWindow int `json:"lockup_window" yaml:"lockup_window"`

	// LockupThreshold is the coherence variance below which a full window
	// counts as locked up.
	LockupThreshold float64 `json:"lockup_threshold" yaml:"lockup_threshold"`
}

// FastConfig returns the "fast" preset: fewer oscillators and coarser phase
// resolution, tuned for per-frame ticking.
func FastConfig() Config {
	return Config{
		NumOscillators:      32,
		PhaseResolution:     64,
		AmplitudeMax:        10.0,
		AmplitudeDecay:      0.95,
		ActiveThreshold:     0.5,
		BaseBoostAmount:     2.0,
		CouplingStrength:    6.0,
		CoherenceThreshold:  0.55,
		HebbianLearningRate: 0.05,
		LockupWindow:        32,
		LockupThreshold:     1e-4,
	}
}

// PreciseConfig returns the "precise" preset: more oscillators, finer
// resolution, and slower learning.
func PreciseConfig() Config {
	return Config{
		NumOscillators:      128,
		PhaseResolution:     256,
		AmplitudeMax:        10.0,
		AmplitudeDecay:      0.97,
		ActiveThreshold:     0.5,
		BaseBoostAmount:     1.5,
		CouplingStrength:    4.0,
		CoherenceThreshold:  0.6,
		HebbianLearningRate: 0.01,
		LockupWindow:        64,
		LockupThreshold:     1e-5,
	}
}

// DefaultConfig returns the default engine configuration (the fast preset).
func DefaultConfig() Config {
	return FastConfig()
}
