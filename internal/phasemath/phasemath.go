// Package phasemath provides the shared numeric helpers for both resonance
// engines: phase wrapping, circular statistics, and entropy. All functions
// guard their arithmetic edge cases (zero totals, non-positive logs) and
// substitute 0 rather than propagating NaN or Inf.
package phasemath

import "math"

// TwoPi is the full phase circle.
const TwoPi = 2 * math.Pi

// WrapPhase maps a phase into [0, 2π).
func WrapPhase(phase float64) float64 {
	wrapped := math.Mod(phase, TwoPi)
	if wrapped < 0 {
		wrapped += TwoPi
	}
	return wrapped
}

// WrapDiff maps the absolute difference between two phases into [0, π],
// taking the shorter way around the circle.
func WrapDiff(a, b float64) float64 {
	d := math.Abs(math.Mod(a-b, TwoPi))
	if d > math.Pi {
		d = TwoPi - d
	}
	return d
}

// OrderParameter computes the Kuramoto order parameter |Σe^(iφ)| / N for the
// given phases. An empty slice yields 0; a single phase yields 1.
func OrderParameter(phases []float64) float64 {
	if len(phases) == 0 {
		return 0
	}

	sumCos := 0.0
	sumSin := 0.0
	for _, p := range phases {
		sumCos += math.Cos(p)
		sumSin += math.Sin(p)
	}

	return math.Sqrt(sumCos*sumCos+sumSin*sumSin) / float64(len(phases))
}

// CircularMean returns the circular mean of the given phases via
// atan2(Σsin, Σcos), wrapped into [0, 2π). An empty slice yields 0.
func CircularMean(phases []float64) float64 {
	if len(phases) == 0 {
		return 0
	}

	sumCos := 0.0
	sumSin := 0.0
	for _, p := range phases {
		sumCos += math.Cos(p)
		sumSin += math.Sin(p)
	}

	return WrapPhase(math.Atan2(sumSin, sumCos))
}

// ShannonEntropy computes -Σ p·ln(p) over the values normalized to sum to 1.
// Non-positive values are skipped. Returns 0 when the total is 0.
func ShannonEntropy(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		if v > 0 {
			total += v
		}
	}
	if total == 0 {
		return 0
	}

	entropy := 0.0
	for _, v := range values {
		if v <= 0 {
			continue
		}
		p := v / total
		entropy -= p * math.Log(p)
	}
	return entropy
}

// NormalizedEntropy computes ShannonEntropy divided by ln(n) so the result
// lies in [0, 1] for an n-bucket distribution. Returns 0 when n < 2.
func NormalizedEntropy(values []float64, n int) float64 {
	if n < 2 {
		return 0
	}
	return ShannonEntropy(values) / math.Log(float64(n))
}

// Variance returns the population variance of the given values.
// Fewer than two values yield 0.
func Variance(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}

	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	variance := 0.0
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	return variance / float64(len(values))
}

// Clamp restricts v to [min, max]. NaN and Inf collapse to min.
func Clamp(v, min, max float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return min
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
