package scoring

import "github.com/ventradar/ventradar/pkg/insight"

// ConfidenceTier is the coarse reliability label shown next to an insight.
type ConfidenceTier string

const (
	ConfidenceLow    ConfidenceTier = "low"
	ConfidenceMedium ConfidenceTier = "medium"
	ConfidenceHigh   ConfidenceTier = "high"
)

// Confidence pairs the evidence count with the relevance-derived tier. The
// two are reported together but computed independently: the tier comes from
// the relevance score alone, never from how much evidence was attached.
type Confidence struct {
	EvidenceCount int            `json:"evidence_count"`
	Tier          ConfidenceTier `json:"confidence_tier"`
}

// AggregateConfidence counts the independent evidence groups backing an
// insight and labels its confidence.
func AggregateConfidence(in *insight.Insight) Confidence {
	count := len(in.CommunitySignals) + len(in.TrendKeywords)
	if hasDimensionScores(in) {
		count++
	}
	if in.PrimarySource != nil {
		count++
	}

	return Confidence{
		EvidenceCount: count,
		Tier:          confidenceTier(in.Relevance),
	}
}

func confidenceTier(relevance float64) ConfidenceTier {
	switch {
	case relevance >= 0.8:
		return ConfidenceHigh
	case relevance >= 0.5:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

func hasDimensionScores(in *insight.Insight) bool {
	for _, d := range insight.AllDimensions() {
		if _, ok := NormalizeDimension(d, in.Dimension(d)); ok {
			return true
		}
	}
	return false
}
