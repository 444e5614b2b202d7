// Package discrete implements the quantized phase-synchronization engine: a
// fixed-size array of oscillators with integer phase bins, an int8 symmetric
// coupling matrix, histogram-based coherence, Hebbian coupling adaptation, a
// 16-axis semantic accumulator, and lockup detection.
//
// The engine is strictly single-threaded and synchronous. A Tick runs to
// completion with no suspension points and no I/O; all mutable state is owned
// exclusively by the Engine instance. Out-of-range boosts and queries are
// silent no-ops by design — the engine runs inside tight per-frame loops
// where panics and errors would be disruptive.
package discrete

import (
	"math"
	"math/rand"
	"time"

	"github.com/oscillab/resonance/internal/constants"
	"github.com/oscillab/resonance/internal/primes"
)

// TickResult is the snapshot returned by one Tick.
type TickResult struct {
	// Fired reports whether coherence reached the configured threshold.
	Fired bool `json:"fired"`

	// Coherence is the histogram peak ratio: largest bin count over the
	// number of active oscillators. Always in [0, 1].
	Coherence float64 `json:"coherence"`

	// Entropy is the normalized Shannon entropy of the semantic
	// accumulator, in [0, 1].
	Entropy float64 `json:"entropy"`

	// StabilizationMargin is coherence minus the coherence threshold;
	// negative while the engine is below firing.
	StabilizationMargin float64 `json:"stabilization_margin"`

	// ActiveCount is the number of oscillators above the active threshold
	// at the start of the tick.
	ActiveCount int `json:"active_count"`

	// DominantPhaseBin is the histogram bin with the largest count.
	DominantPhaseBin int `json:"dominant_phase_bin"`

	// PeakPrime is the prime of the oscillator with the largest amplitude.
	PeakPrime int `json:"peak_prime"`

	// DominantSemanticAxis is the semantic axis with the largest value.
	DominantSemanticAxis int `json:"dominant_semantic_axis"`
}

// Engine is a discrete phase-synchronization engine instance. One engine per
// owning pipeline; instances share nothing.
type Engine struct {
	config Config
	rng    *rand.Rand

	phases      []int
	amplitudes  []float64
	frequencies []int
	primeAt     []int
	indexOf     map[int]int

	coupling [][]int8
	semantic [constants.SemanticAxes]float64

	coherenceHistory []float64
	historyLen       int
	historyPos       int

	tickCount  uint64
	started    bool
	lastResult TickResult
}

// NewEngine constructs an engine from the given configuration. rng is the
// injectable random source used for phase and coupling randomization; pass a
// seeded source for reproducible tests, or nil for a time-seeded one. The
// engine starts stopped: Tick is a no-op until Start is called.
func NewEngine(config Config, rng *rand.Rand) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	count := config.NumOscillators
	e := &Engine{
		config:           config,
		rng:              rng,
		phases:           make([]int, count),
		amplitudes:       make([]float64, count),
		frequencies:      make([]int, count),
		primeAt:          make([]int, count),
		indexOf:          make(map[int]int, count),
		coherenceHistory: make([]float64, config.LockupWindow),
	}

	for i := 0; i < count; i++ {
		p, _ := primes.ForIndex(i)
		e.primeAt[i] = p
		e.indexOf[p] = i
		e.frequencies[i] = p % config.PhaseResolution
	}

	e.coupling = defaultCoupling(count)

	return e
}

// Start randomizes all phases and enables ticking.
func (e *Engine) Start() {
	e.randomizePhases()
	e.started = true
}

// Stop disables ticking. State is preserved; Start resumes with fresh phases.
func (e *Engine) Stop() {
	e.started = false
}

// Started reports whether the engine is ticking.
func (e *Engine) Started() bool {
	return e.started
}

// Tick advances one virtual step and returns the resulting snapshot. On a
// stopped engine it is a no-op returning a neutral result.
func (e *Engine) Tick() TickResult {
	if !e.started {
		return TickResult{}
	}

	m := e.config.PhaseResolution
	count := len(e.phases)

	// Step 1: activity histogram over phase bins.
	histogram := make([]int, m)
	active := make([]int, 0, count)
	for i := 0; i < count; i++ {
		if e.amplitudes[i] > e.config.ActiveThreshold {
			histogram[e.phases[i]]++
			active = append(active, i)
		}
	}
	totalWeight := len(active)

	// Step 2: coherence is the histogram peak ratio.
	coherence := 0.0
	dominantBin := 0
	if totalWeight > 0 {
		peak := 0
		for bin, n := range histogram {
			if n > peak {
				peak = n
				dominantBin = bin
			}
		}
		coherence = float64(peak) / float64(totalWeight)
	}

	// Step 3: record coherence for lockup detection.
	e.recordCoherence(coherence)

	// Step 4: integer Kuramoto update against the pre-update snapshot.
	snapshot := make([]int, count)
	copy(snapshot, e.phases)

	for i := 0; i < count; i++ {
		sum := 0.0
		for _, j := range active {
			if j == i {
				continue
			}
			diff := float64(snapshot[j]-snapshot[i]) * 2 * math.Pi / float64(m)
			sum += float64(e.coupling[i][j]) * math.Sin(diff)
		}

		delta := int(e.config.CouplingStrength / float64(count) * sum)

		next := (snapshot[i] + e.frequencies[i] + delta + m) % m
		if next < 0 {
			next += m
		}
		e.phases[i] = next
	}

	// Step 5: amplitude decay.
	for i := 0; i < count; i++ {
		e.amplitudes[i] *= e.config.AmplitudeDecay
	}

	// Step 6: Hebbian adaptation, only while coherent.
	if coherence >= e.config.CoherenceThreshold {
		e.hebbianUpdate(active)
	}

	// Steps 7-8: semantic accumulator and its entropy.
	e.accumulateSemantic(active)
	entropy := e.semanticEntropy()

	// Step 9: activity statistics.
	peakPrime := 0
	peakAmplitude := math.Inf(-1)
	for i := 0; i < count; i++ {
		if e.amplitudes[i] > peakAmplitude {
			peakAmplitude = e.amplitudes[i]
			peakPrime = e.primeAt[i]
		}
	}

	dominantAxis := 0
	for axis := 1; axis < constants.SemanticAxes; axis++ {
		if e.semantic[axis] > e.semantic[dominantAxis] {
			dominantAxis = axis
		}
	}

	result := TickResult{
		Fired:                coherence >= e.config.CoherenceThreshold,
		Coherence:            coherence,
		Entropy:              entropy,
		StabilizationMargin:  coherence - e.config.CoherenceThreshold,
		ActiveCount:          totalWeight,
		DominantPhaseBin:     dominantBin,
		PeakPrime:            peakPrime,
		DominantSemanticAxis: dominantAxis,
	}

	e.tickCount++
	e.lastResult = result

	if e.config.EnableLockupRecovery && e.LockedUp() {
		e.RandomizeCoupling()
		e.resetCoherenceHistory()
	}

	return result
}

// BoostIndex increases oscillator i's amplitude, clamped to the configured
// maximum. A non-positive amount applies the configured base boost. An
// out-of-range index is a silent no-op.
func (e *Engine) BoostIndex(i int, amount float64) {
	if i < 0 || i >= len(e.amplitudes) {
		return
	}
	if amount <= 0 {
		amount = e.config.BaseBoostAmount
	}
	boosted := e.amplitudes[i] + amount
	if boosted > e.config.AmplitudeMax {
		boosted = e.config.AmplitudeMax
	}
	e.amplitudes[i] = boosted
}

// BoostPrime boosts the oscillator carrying the given prime. An unknown
// prime is a silent no-op.
func (e *Engine) BoostPrime(prime int, amount float64) {
	i, ok := e.indexOf[prime]
	if !ok {
		return
	}
	e.BoostIndex(i, amount)
}

// DampenAll multiplies every amplitude by factor.
func (e *Engine) DampenAll(factor float64) {
	for i := range e.amplitudes {
		e.amplitudes[i] *= factor
	}
}

// Reset re-randomizes phases, zeroes amplitudes and the semantic
// accumulator, restores the default coupling matrix, and zeroes the tick
// count. Configuration is untouched.
func (e *Engine) Reset() {
	e.randomizePhases()
	for i := range e.amplitudes {
		e.amplitudes[i] = 0
	}
	e.semantic = [constants.SemanticAxes]float64{}
	e.coupling = defaultCoupling(len(e.phases))
	e.resetCoherenceHistory()
	e.tickCount = 0
	e.lastResult = TickResult{}
}

// randomizePhases draws every phase uniformly from [0, M).
func (e *Engine) randomizePhases() {
	for i := range e.phases {
		e.phases[i] = e.rng.Intn(e.config.PhaseResolution)
	}
}

// Config returns the engine's construction configuration.
func (e *Engine) Config() Config {
	return e.config
}

// Phase returns oscillator i's phase bin, or 0 if i is out of range.
func (e *Engine) Phase(i int) int {
	if i < 0 || i >= len(e.phases) {
		return 0
	}
	return e.phases[i]
}

// Amplitude returns oscillator i's amplitude, or 0 if i is out of range.
func (e *Engine) Amplitude(i int) float64 {
	if i < 0 || i >= len(e.amplitudes) {
		return 0
	}
	return e.amplitudes[i]
}

// Prime returns oscillator i's prime, or 0 if i is out of range.
func (e *Engine) Prime(i int) int {
	if i < 0 || i >= len(e.primeAt) {
		return 0
	}
	return e.primeAt[i]
}

// Size returns the oscillator count.
func (e *Engine) Size() int {
	return len(e.phases)
}

// ActiveCount returns the number of oscillators currently above the active
// threshold.
func (e *Engine) ActiveCount() int {
	count := 0
	for _, amp := range e.amplitudes {
		if amp > e.config.ActiveThreshold {
			count++
		}
	}
	return count
}

// LastResult returns the result of the most recent tick.
func (e *Engine) LastResult() TickResult {
	return e.lastResult
}

// TickCount returns the number of ticks since construction or Reset.
func (e *Engine) TickCount() uint64 {
	return e.tickCount
}
