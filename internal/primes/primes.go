// Package primes supplies the prime identities and phase twists that seed
// resonance oscillators. Primes are assigned positionally: the first seven
// indices always receive the canonical set, later indices draw from an
// extended table, and indices past the table synthesize successive odd
// numbers. The generation strategy is reported explicitly so large engines
// never diverge silently.
package primes

import (
	"math"

	"github.com/oscillab/resonance/internal/phasemath"
)

// Strategy identifies how a prime was generated for an oscillator index.
type Strategy int

const (
	// StrategyCanonical covers the first seven indices, which always
	// receive the canonical small primes and elevated coupling status.
	StrategyCanonical Strategy = iota

	// StrategyExtended covers indices served from the extended prime table.
	StrategyExtended

	// StrategySynthetic covers indices past the extended table, which
	// receive successive odd numbers as a fallback. These are not
	// guaranteed prime; they only preserve pairwise distinctness.
	StrategySynthetic
)

// String returns the strategy name.
func (s Strategy) String() string {
	switch s {
	case StrategyCanonical:
		return "canonical"
	case StrategyExtended:
		return "extended"
	case StrategySynthetic:
		return "synthetic"
	default:
		return "unknown"
	}
}

// Canonical is the fixed set of primes assigned to indices 0-6. Pairs
// involving any canonical index start with elevated coupling magnitude.
var Canonical = [7]int{2, 3, 5, 7, 11, 13, 17}

// extended holds the primes served to indices 7 and up, in order.
var extended = []int{
	19, 23, 29, 31, 37, 41, 43, 47, 53, 59, 61, 67, 71, 73, 79, 83,
	89, 97, 101, 103, 107, 109, 113, 127, 131, 137, 139, 149, 151, 157,
	163, 167, 173, 179, 181, 191, 193, 197, 199, 211, 223, 227, 229, 233,
	239, 241, 251, 257, 263, 269, 271, 277, 281, 283, 293, 307, 311, 313,
	317, 331, 337, 347, 349, 353, 359, 367, 373, 379, 383, 389, 397, 401,
	409, 419, 421, 431, 433, 439, 443, 449, 457, 461, 463, 467, 479, 487,
	491, 499, 503, 509, 521, 523, 541, 547, 557, 563, 569, 571, 577, 587,
}

// goldenAngle spaces twist offsets maximally apart on the phase circle.
const goldenAngle = 2.399963229728653

// ForIndex returns the prime assigned to oscillator index i and the
// strategy that produced it. Negative indices yield (0, StrategySynthetic).
func ForIndex(i int) (int, Strategy) {
	if i < 0 {
		return 0, StrategySynthetic
	}
	if i < len(Canonical) {
		return Canonical[i], StrategyCanonical
	}

	ext := i - len(Canonical)
	if ext < len(extended) {
		return extended[ext], StrategyExtended
	}

	// Past the table: successive odd numbers continuing from the last
	// extended entry. Distinct per index, but not screened for primality.
	last := extended[len(extended)-1]
	return last + 2*(ext-len(extended)+1), StrategySynthetic
}

// IsCanonicalIndex reports whether index i belongs to the canonical set.
func IsCanonicalIndex(i int) bool {
	return i >= 0 && i < len(Canonical)
}

// Twist returns the deterministic base phase offset and phase rate for a
// prime. The offset walks the golden angle around the circle; the rate is
// the same log-derived frequency the continuous network uses, so the two
// engines agree on what a prime "sounds like".
func Twist(prime int) (offset, rate float64) {
	if prime <= 0 {
		return 0, 1
	}
	offset = phasemath.WrapPhase(float64(prime) * goldenAngle)
	rate = 1 + math.Log(float64(prime))/10
	return offset, rate
}
