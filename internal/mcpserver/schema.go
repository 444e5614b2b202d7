package mcpserver

// StatusInput defines the input for the resonance_status tool.
type StatusInput struct{}

// StatusOutput defines the output for the resonance_status tool.
type StatusOutput struct {
	Preset      string     `json:"preset" jsonschema:"Engine preset in use"`
	Oscillators int        `json:"oscillators" jsonschema:"Total oscillator count"`
	TickCount   uint64     `json:"tick_count" jsonschema:"Ticks since start or reset"`
	ActiveCount int        `json:"active_count" jsonschema:"Oscillators above the active threshold"`
	LockedUp    bool       `json:"locked_up" jsonschema:"Whether coherence has stagnated across the detection window"`
	Last        TickReport `json:"last" jsonschema:"Result of the most recent tick"`
}

// TickReport mirrors a tick result for tool output.
type TickReport struct {
	Fired                bool    `json:"fired"`
	Coherence            float64 `json:"coherence"`
	Entropy              float64 `json:"entropy"`
	StabilizationMargin  float64 `json:"stabilization_margin"`
	ActiveCount          int     `json:"active_count"`
	DominantPhaseBin     int     `json:"dominant_phase_bin"`
	PeakPrime            int     `json:"peak_prime"`
	DominantSemanticAxis int     `json:"dominant_semantic_axis"`
}

// TickInput defines the input for the resonance_tick tool.
type TickInput struct {
	Count int `json:"count,omitempty" jsonschema:"Number of steps to advance (default 1, max 1000)"`
}

// TickOutput defines the output for the resonance_tick tool.
type TickOutput struct {
	Ticked   int        `json:"ticked" jsonschema:"Number of steps actually advanced"`
	Result   TickReport `json:"result" jsonschema:"Result of the final tick"`
	LockedUp bool       `json:"locked_up" jsonschema:"Lockup state after ticking"`
}

// BoostInput defines the input for the resonance_boost tool.
type BoostInput struct {
	Prime  int     `json:"prime" jsonschema:"Prime identity of the oscillator to boost"`
	Amount float64 `json:"amount,omitempty" jsonschema:"Boost amount (default: configured base boost)"`
}

// BoostOutput defines the output for the resonance_boost tool.
type BoostOutput struct {
	ActiveCount int    `json:"active_count" jsonschema:"Active oscillators after the boost"`
	Message     string `json:"message" jsonschema:"Human-readable result message"`
}

// DampenInput defines the input for the resonance_dampen tool.
type DampenInput struct {
	Factor float64 `json:"factor" jsonschema:"Multiplier applied to every amplitude (0..1 damps)"`
}

// DampenOutput defines the output for the resonance_dampen tool.
type DampenOutput struct {
	ActiveCount int `json:"active_count" jsonschema:"Active oscillators after damping"`
}

// ResetInput defines the input for the resonance_reset tool.
type ResetInput struct{}

// ResetOutput defines the output for the resonance_reset tool.
type ResetOutput struct {
	Message string `json:"message" jsonschema:"Human-readable result message"`
}

// RecoverInput defines the input for the resonance_recover tool.
type RecoverInput struct{}

// RecoverOutput defines the output for the resonance_recover tool.
type RecoverOutput struct {
	WasLockedUp bool   `json:"was_locked_up" jsonschema:"Whether the engine was locked up before recovery"`
	Message     string `json:"message" jsonschema:"Human-readable result message"`
}
