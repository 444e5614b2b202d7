package discrete

import (
	"math/rand"
	"testing"
)

func TestLockupUndecidableBeforeWindowFills(t *testing.T) {
	config := FastConfig()
	e := NewEngine(config, rand.New(rand.NewSource(11)))
	e.Start()

	// Zero activity means perfectly flat coherence, but detection must
	// still wait for a full window.
	for tick := 0; tick < config.LockupWindow-1; tick++ {
		e.Tick()
		if e.LockedUp() {
			t.Fatalf("tick %d: locked up before window of %d filled", tick, config.LockupWindow)
		}
	}
}

func TestLockupDetectedOnFlatCoherence(t *testing.T) {
	config := FastConfig()
	e := NewEngine(config, rand.New(rand.NewSource(11)))
	e.Start()

	// With no active oscillators every tick records coherence 0: variance
	// is exactly 0 once the window fills.
	for tick := 0; tick < config.LockupWindow; tick++ {
		e.Tick()
	}

	if !e.LockedUp() {
		t.Error("flat coherence across a full window not detected as lockup")
	}
}

func TestLockupDecidableExactlyAtWindow(t *testing.T) {
	config := FastConfig()
	e := NewEngine(config, rand.New(rand.NewSource(11)))
	e.Start()

	for tick := 1; tick <= config.LockupWindow*2; tick++ {
		e.Tick()
		locked := e.LockedUp()
		if tick < config.LockupWindow && locked {
			t.Fatalf("tick %d: locked up below window size %d", tick, config.LockupWindow)
		}
		if tick >= config.LockupWindow && !locked {
			// Flat zero coherence must stay detected once decidable.
			t.Fatalf("tick %d: lockup undetected after window filled", tick)
		}
	}
}

func TestLockupNotDetectedOnVaryingCoherence(t *testing.T) {
	config := FastConfig()
	e := NewEngine(config, rand.New(rand.NewSource(11)))
	e.Start()

	// Drive alternating activity so coherence oscillates: boost a pair
	// into alignment on even ticks, spread on odd ticks.
	for tick := 0; tick < config.LockupWindow*2; tick++ {
		e.phases[0] = 0
		if tick%2 == 0 {
			e.phases[1] = 0
		} else {
			e.phases[1] = config.PhaseResolution / 2
		}
		e.BoostIndex(0, config.AmplitudeMax)
		e.BoostIndex(1, config.AmplitudeMax)
		e.Tick()
	}

	if e.LockedUp() {
		t.Error("oscillating coherence misdetected as lockup")
	}
}

func TestLockupRecoveryWhenEnabled(t *testing.T) {
	config := FastConfig()
	config.EnableLockupRecovery = true
	e := NewEngine(config, rand.New(rand.NewSource(11)))
	e.Start()

	// Flat zero coherence triggers detection; the engine should then
	// randomize coupling and clear the detection window.
	for tick := 0; tick < config.LockupWindow; tick++ {
		e.Tick()
	}

	if e.LockedUp() {
		t.Error("detection window not cleared after automatic recovery")
	}

	// Recovery replaced the canonical matrix with random values; the
	// default pattern (uniform 24s among canonical pairs) should be gone.
	fresh := NewEngine(config, rand.New(rand.NewSource(77)))
	same := true
	for i := 0; i < e.Size() && same; i++ {
		for j := i + 1; j < e.Size(); j++ {
			if e.Coupling(i, j) != fresh.Coupling(i, j) {
				same = false
				break
			}
		}
	}
	if same {
		t.Error("coupling matrix unchanged after automatic recovery")
	}
}

func TestRecoveryIsCallerDrivenByDefault(t *testing.T) {
	config := FastConfig()
	e := NewEngine(config, rand.New(rand.NewSource(11)))
	e.Start()

	for tick := 0; tick < config.LockupWindow*2; tick++ {
		e.Tick()
	}

	// Detection without automatic remedy: still locked, coupling intact.
	if !e.LockedUp() {
		t.Fatal("expected lockup with recovery disabled")
	}
	fresh := NewEngine(config, rand.New(rand.NewSource(77)))
	for i := 0; i < e.Size(); i++ {
		for j := 0; j < e.Size(); j++ {
			if e.Coupling(i, j) != fresh.Coupling(i, j) {
				t.Fatal("coupling mutated without caller-driven recovery")
			}
		}
	}

	// The caller applies the remedy explicitly.
	e.RandomizeCoupling()
	assertSymmetric(t, e)
}

func TestSemanticAxisRouting(t *testing.T) {
	config := FastConfig()
	e := NewEngine(config, rand.New(rand.NewSource(11)))
	e.Start()

	// Boost only the prime-13 oscillator: its mass lands on axis 13.
	e.BoostPrime(13, config.AmplitudeMax)
	result := e.Tick()

	smf := e.Semantic()
	if smf[13] == 0 {
		t.Error("axis 13 empty after boosting prime 13")
	}
	for axis, v := range smf {
		if axis != 13 && v != 0 {
			t.Errorf("axis %d = %v, want 0", axis, v)
		}
	}
	if result.DominantSemanticAxis != 13 {
		t.Errorf("dominant axis = %d, want 13", result.DominantSemanticAxis)
	}
}

func TestSemanticDecayDrainsAxes(t *testing.T) {
	config := FastConfig()
	e := NewEngine(config, rand.New(rand.NewSource(11)))
	e.Start()

	e.BoostPrime(7, config.AmplitudeMax)
	e.Tick()
	peak := e.Semantic()[7]
	if peak == 0 {
		t.Fatal("axis 7 empty after boost")
	}

	// Let the oscillator die out; the axis must drain toward zero.
	for tick := 0; tick < 400; tick++ {
		e.Tick()
	}
	if got := e.Semantic()[7]; got >= peak/100 {
		t.Errorf("axis 7 = %v after decay, want well below peak %v", got, peak)
	}
}
