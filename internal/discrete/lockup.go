package discrete

import "github.com/oscillab/resonance/internal/phasemath"

// recordCoherence appends a coherence sample to the fixed-capacity circular
// buffer, overwriting the oldest entry once the window is full. The buffer
// feeds lockup detection only; it does not affect dynamics.
func (e *Engine) recordCoherence(coherence float64) {
	if len(e.coherenceHistory) == 0 {
		return
	}

	e.coherenceHistory[e.historyPos] = coherence
	e.historyPos = (e.historyPos + 1) % len(e.coherenceHistory)
	if e.historyLen < len(e.coherenceHistory) {
		e.historyLen++
	}
}

// LockedUp reports whether the engine has stagnated: the coherence window is
// full and its variance is below the configured lockup threshold. Before the
// window fills the answer is always false. Detection is exposed here;
// applying a remedy (typically RandomizeCoupling) is the caller's decision
// unless automatic recovery was enabled at construction.
func (e *Engine) LockedUp() bool {
	if len(e.coherenceHistory) == 0 || e.historyLen < len(e.coherenceHistory) {
		return false
	}
	return phasemath.Variance(e.coherenceHistory) < e.config.LockupThreshold
}

// resetCoherenceHistory empties the lockup-detection window.
func (e *Engine) resetCoherenceHistory() {
	e.historyLen = 0
	e.historyPos = 0
	for i := range e.coherenceHistory {
		e.coherenceHistory[i] = 0
	}
}
