package fuzzy

import (
	"math"
	"sort"
)

// minSpan guards against a zero-width universe when every calibration
// value is identical; live inputs would otherwise never fuzzify.
const minSpan = 1e-6

// Percentile returns the p-th percentile of values with linear
// interpolation between order statistics. p is in [0, 100]. Returns NaN
// for an empty slice.
func Percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	if p <= 0 {
		return sorted[0]
	}
	if p >= 100 {
		return sorted[len(sorted)-1]
	}

	pos := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	frac := pos - float64(lo)
	if lo+1 >= len(sorted) {
		return sorted[lo]
	}
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

// PctRange returns the [loPct, hiPct] percentile interval of values,
// expanded symmetrically by pad times the interval span. Degenerate
// all-equal inputs are widened to a minimum epsilon span instead of
// producing a zero-width range.
func PctRange(values []float64, loPct, hiPct, pad float64) (lo, hi float64) {
	lo = Percentile(values, loPct)
	hi = Percentile(values, hiPct)
	span := hi - lo
	lo -= pad * span
	hi += pad * span
	if hi-lo < minSpan {
		mid := (lo + hi) / 2
		lo = mid - minSpan/2
		hi = mid + minSpan/2
	}
	return lo, hi
}

// Universe is the frozen numeric working range of a fuzzy variable,
// discretized into n evenly spaced sample points. Bounds are computed
// once from training statistics and never change afterwards.
type Universe struct {
	Lo     float64
	Hi     float64
	Points []float64
}

// NewUniverse discretizes [lo, hi] into n points. A degenerate range is
// widened to the minimum span so the universe is never empty.
func NewUniverse(lo, hi float64, n int) Universe {
	if hi-lo < minSpan {
		mid := (lo + hi) / 2
		lo = mid - minSpan/2
		hi = mid + minSpan/2
	}
	if n < 2 {
		n = 2
	}
	points := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range points {
		points[i] = lo + float64(i)*step
	}
	return Universe{Lo: lo, Hi: hi, Points: points}
}

// Clip clamps x into the universe bounds. Out-of-range inputs saturate at
// the boundary rather than being rejected.
func (u Universe) Clip(x float64) float64 {
	if x < u.Lo {
		return u.Lo
	}
	if x > u.Hi {
		return u.Hi
	}
	return x
}
