package insight

import (
	"encoding/json"
	"time"
)

// Dimension names one of the eight quality axes an insight can be scored on.
type Dimension string

const (
	DimOpportunity         Dimension = "opportunity"
	DimProblem             Dimension = "problem"
	DimFeasibility         Dimension = "feasibility"
	DimWhyNow              Dimension = "whyNow"
	DimGoToMarket          Dimension = "goToMarket"
	DimFounderFit          Dimension = "founderFit"
	DimExecutionDifficulty Dimension = "executionDifficulty"
	DimRevenuePotential    Dimension = "revenuePotential"
)

// AllDimensions returns the canonical dimensions in a fixed order.
func AllDimensions() []Dimension {
	return []Dimension{
		DimOpportunity,
		DimProblem,
		DimFeasibility,
		DimWhyNow,
		DimGoToMarket,
		DimFounderFit,
		DimExecutionDifficulty,
		DimRevenuePotential,
	}
}

// DimensionKind discriminates the three shapes a dimension value can take.
type DimensionKind int

const (
	KindAbsent DimensionKind = iota
	KindNumber
	KindTier
)

// DimensionValue is a tagged value: a number in [0,10], a symbolic revenue
// tier ("$".."$$$$"), or absent. Absent is distinct from zero; consumers must
// exclude absent values from aggregation rather than treating them as 0.
type DimensionValue struct {
	Kind   DimensionKind
	Number float64
	Tier   string
}

// Number wraps a numeric dimension value.
func Number(v float64) DimensionValue {
	return DimensionValue{Kind: KindNumber, Number: v}
}

// Tier wraps a symbolic tier dimension value.
func Tier(t string) DimensionValue {
	return DimensionValue{Kind: KindTier, Tier: t}
}

// Absent returns the missing-value sentinel.
func Absent() DimensionValue {
	return DimensionValue{Kind: KindAbsent}
}

// MarshalJSON emits the raw number or tier string; absent values marshal as
// null (they are normally omitted from the map entirely).
func (v DimensionValue) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindNumber:
		return json.Marshal(v.Number)
	case KindTier:
		return json.Marshal(v.Tier)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON accepts a JSON number, a tier string, or null.
func (v *DimensionValue) UnmarshalJSON(data []byte) error {
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*v = Number(num)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = Tier(s)
		return nil
	}
	// null or anything unrecognized reads as absent, never an error.
	*v = Absent()
	return nil
}

// DimensionSet holds whichever dimension scores the analysis backend emitted.
// Missing keys read as absent.
type DimensionSet map[Dimension]DimensionValue

// Value returns the stored value, or the absent sentinel if the dimension was
// never scored.
func (s DimensionSet) Value(d Dimension) DimensionValue {
	if v, ok := s[d]; ok {
		return v
	}
	return Absent()
}

// TrendKeyword is a free-text keyword with compact magnitude strings as
// emitted by the analysis backend, e.g. {"ai agents", "27.1K", "+514%"}.
type TrendKeyword struct {
	Keyword string `json:"keyword"`
	Volume  string `json:"volume"`
	Growth  string `json:"growth"`
}

// CommunitySignal is a per-platform engagement measurement.
type CommunitySignal struct {
	Platform       Platform `json:"platform"`
	Score          float64  `json:"score"` // 0-10
	Members        int      `json:"members"`
	EngagementRate *float64 `json:"engagement_rate,omitempty"`
}

// SourceRef points at the primary discussion that surfaced the opportunity.
type SourceRef struct {
	Platform Platform `json:"platform"`
	URL      string   `json:"url"`
}

// TrendPoint is one (label, value) pair of a chronological series.
type TrendPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Insight is one machine-generated opportunity analysis. The record is
// produced and owned by the analysis backend; ventradar treats it as
// read-only and recomputes all derived values on every read.
type Insight struct {
	ID          string    `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Summary     string    `json:"summary" db:"summary"`
	Category    string    `json:"category" db:"category"`
	Relevance   float64   `json:"relevance" db:"relevance"` // 0-1, always present
	GeneratedAt time.Time `json:"generated_at" db:"generated_at"`
	FetchedAt   time.Time `json:"fetched_at" db:"fetched_at"`
	Alerted     bool      `json:"alerted" db:"alerted"`

	Dimensions       DimensionSet      `json:"dimensions,omitempty" db:"-"`
	TrendKeywords    []TrendKeyword    `json:"trend_keywords,omitempty" db:"-"`
	CommunitySignals []CommunitySignal `json:"community_signals,omitempty" db:"-"`
	PrimarySource    *SourceRef        `json:"primary_source,omitempty" db:"-"`
	TrendSeries      []TrendPoint      `json:"trend_series,omitempty" db:"-"`

	DimensionsJSON       string `json:"-" db:"dimensions"`
	TrendKeywordsJSON    string `json:"-" db:"trend_keywords"`
	CommunitySignalsJSON string `json:"-" db:"community_signals"`
	PrimarySourceJSON    string `json:"-" db:"primary_source"`
	TrendSeriesJSON      string `json:"-" db:"trend_series"`
}

// Dimension returns the value recorded for d, or absent.
func (in *Insight) Dimension(d Dimension) DimensionValue {
	return in.Dimensions.Value(d)
}
