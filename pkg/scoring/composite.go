package scoring

import "github.com/ventradar/ventradar/pkg/insight"

// OverallScore folds an insight's dimensions into a single 0-10 score.
//
// The score is the unweighted mean of whichever dimensions are present. An
// insight with no scored dimensions at all falls back to relevance * 10,
// which is always available, so every insight gets a usable number.
//
// The mean is deliberately unweighted: an insight scored only on its two
// weakest dimensions can look stronger than it is, but upstream never
// specified a weighting, so this preserves the documented behavior.
func OverallScore(in *insight.Insight) float64 {
	var sum float64
	n := 0
	for _, d := range insight.AllDimensions() {
		if v, ok := NormalizeDimension(d, in.Dimension(d)); ok {
			sum += v
			n++
		}
	}
	if n > 0 {
		return sum / float64(n)
	}
	return clamp10(in.Relevance * 10)
}
