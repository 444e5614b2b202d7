package simulation

import (
	"testing"

	"github.com/oscillab/resonance/internal/discrete"
)

func lockupConfig() discrete.Config {
	cfg := discrete.FastConfig()
	cfg.LockupWindow = 8
	cfg.LockupThreshold = 1e-4
	return cfg
}

func TestLockupDetectedOnSilentEngine(t *testing.T) {
	cfg := lockupConfig()

	r := NewRunner(t)
	result := r.Run(Scenario{
		Name:   "lockup-silent",
		Config: &cfg,
		Ticks:  8,
	})

	if result.Snapshots[6].LockedUp {
		t.Error("lockup reported before the detection window filled")
	}
	if !result.Snapshots[7].LockedUp {
		t.Error("flat zero coherence not reported as lockup once the window filled")
	}
}

func TestVaryingCoherenceIsNotLockup(t *testing.T) {
	// Fast decay kills the single active oscillator after two ticks, so the
	// window sees coherence 1 twice and then zeros — high variance.
	cfg := lockupConfig()
	cfg.AmplitudeDecay = 0.5

	r := NewRunner(t)
	result := r.Run(Scenario{
		Name:   "lockup-varying",
		Config: &cfg,
		Boosts: []BoostSpec{{Prime: 2, Amount: 2.0}},
		Ticks:  8,
	})

	if result.Final().LockedUp {
		t.Error("varying coherence reported as lockup")
	}
	if result.Snapshots[0].Result.Coherence != 1.0 {
		t.Errorf("tick 0 coherence = %.6f, want 1.0", result.Snapshots[0].Result.Coherence)
	}
	if result.Snapshots[7].Result.Coherence != 0.0 {
		t.Errorf("tick 7 coherence = %.6f, want 0 after decay", result.Snapshots[7].Result.Coherence)
	}
}

func TestAutoRecoveryRandomizesCoupling(t *testing.T) {
	cfg := lockupConfig()
	cfg.EnableLockupRecovery = true

	var initial [][]int8
	r := NewRunner(t)
	result := r.Run(Scenario{
		Name:   "lockup-auto-recovery",
		Config: &cfg,
		Ticks:  8,
		BeforeTick: func(tick int, e *discrete.Engine) {
			if tick == 0 {
				initial = CouplingMatrix(e)
			}
		},
	})

	// Recovery fires inside the eighth tick and clears the window, so the
	// final snapshot must not report lockup.
	if result.Final().LockedUp {
		t.Error("lockup still reported after automatic recovery")
	}

	final := CouplingMatrix(result.Engine)
	changed := false
	for i := range final {
		for j := range final[i] {
			if final[i][j] != initial[i][j] {
				changed = true
			}
		}
	}
	if !changed {
		t.Error("coupling matrix unchanged by automatic recovery")
	}
}

func TestCallerDrivenRecoveryByDefault(t *testing.T) {
	cfg := lockupConfig()

	var initial [][]int8
	r := NewRunner(t)
	result := r.Run(Scenario{
		Name:   "lockup-caller-driven",
		Config: &cfg,
		Ticks:  12,
		BeforeTick: func(tick int, e *discrete.Engine) {
			if tick == 0 {
				initial = CouplingMatrix(e)
			}
		},
	})

	// Without the recovery flag the engine only reports; coupling stays put.
	if !result.Final().LockedUp {
		t.Error("lockup not reported with recovery disabled")
	}
	final := CouplingMatrix(result.Engine)
	for i := range final {
		for j := range final[i] {
			if final[i][j] != initial[i][j] {
				t.Fatalf("coupling[%d][%d] changed without recovery enabled", i, j)
			}
		}
	}
}
