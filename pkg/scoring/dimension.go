package scoring

import "github.com/ventradar/ventradar/pkg/insight"

// NormalizeDimension converts one raw dimension value into a 0-10 float.
// ok=false means the dimension is absent and must be excluded from
// aggregation. Out-of-range numbers are clamped rather than rejected so a
// bad upstream value can never break rendering.
func NormalizeDimension(d insight.Dimension, v insight.DimensionValue) (float64, bool) {
	switch v.Kind {
	case insight.KindNumber:
		return clamp10(v.Number), true
	case insight.KindTier:
		// Symbolic tiers are only meaningful for revenue potential.
		if d == insight.DimRevenuePotential {
			if n, ok := RevenueTierValue(v.Tier); ok {
				return n, true
			}
		}
		return 0, false
	default:
		return 0, false
	}
}

// DimensionScores returns the normalized value of every present dimension.
// Absent dimensions are omitted, not zero-filled.
func DimensionScores(in *insight.Insight) map[insight.Dimension]float64 {
	scores := make(map[insight.Dimension]float64)
	for _, d := range insight.AllDimensions() {
		if v, ok := NormalizeDimension(d, in.Dimension(d)); ok {
			scores[d] = v
		}
	}
	return scores
}

func clamp10(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 10 {
		return 10
	}
	return v
}
