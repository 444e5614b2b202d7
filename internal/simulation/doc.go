// Package simulation provides a multi-tick test harness for validating
// emergent dynamics of the discrete phase-synchronization engine.
//
// The simulation exercises the real Engine — no mocks. Scenarios are Go
// builders that construct a seeded engine, apply initial boosts, and run a
// configurable number of ticks, capturing per-tick snapshots (tick result,
// amplitudes, semantic accumulator, coupling mass, lockup state) for
// property-based assertions.
//
// Every scenario runs on an explicitly seeded random source so failures
// reproduce exactly.
//
// Usage:
//
//	func TestCouplingGrowth(t *testing.T) {
//	    r := simulation.NewRunner(t)
//	    result := r.Run(simulation.Scenario{
//	        Name:   "coupling-growth",
//	        Boosts: []simulation.BoostSpec{{Prime: 7, Amount: 5}},
//	        Ticks:  40,
//	    })
//	    simulation.AssertCouplingNonDecreasing(t, result)
//	}
package simulation
