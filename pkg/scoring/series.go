package scoring

import (
	"hash/fnv"
	"math"
	"time"

	"github.com/ventradar/ventradar/pkg/insight"
)

const (
	lookbackMonths  = 36
	wobbleAmplitude = 0.15 // max fraction of base a point may deviate
	monthLabel      = "2006-01"
)

// Series is an ordered, chronological value series for charting. Estimated
// marks the degenerate single-point fallback so callers can label it as an
// estimate rather than measured data.
type Series struct {
	Points    []insight.TrendPoint `json:"points"`
	Estimated bool                 `json:"estimated"`
}

// BuildSeries returns a chart-ready series for an insight.
//
// Real data always wins: a stored series with at least two points is
// returned untouched and never regenerated. Otherwise a 36-month series is
// synthesized from the primary trend keyword. With no keyword data either,
// a single estimated point keeps the chart non-empty.
//
// Synthesis is a pure function of the record: identical insights produce
// bit-identical series on every call.
func BuildSeries(in *insight.Insight) Series {
	if len(in.TrendSeries) >= 2 {
		return Series{Points: in.TrendSeries}
	}
	if len(in.TrendKeywords) > 0 {
		return synthesize(in)
	}
	return estimatedPoint(in)
}

// synthesize reconstructs a monthly series from the primary keyword's
// summary statistics. The curve interpolates exponentially toward the
// current volume, so the final point lands exactly on it, with a bounded
// sinusoidal wobble keyed off (month index, year, insight ID) for shape.
func synthesize(in *insight.Insight) Series {
	kw := in.TrendKeywords[0]
	volume := ParseMagnitude(kw.Volume)
	growth := ParseGrowthPercent(kw.Growth) / 100

	// Growth at or below -100% would make the interpolation base
	// non-positive; clamp so Pow stays defined.
	factor := 1 + growth
	if factor < 0.01 {
		factor = 0.01
	}

	phase := seriesPhase(in.ID)
	anchor := seriesAnchor(in)

	points := make([]insight.TrendPoint, 0, lookbackMonths)
	for i := 0; i < lookbackMonths; i++ {
		month := anchor.AddDate(0, i-(lookbackMonths-1), 0)
		progress := float64(i+1) / lookbackMonths
		base := volume * math.Pow(factor, progress-1)

		wobble := wobbleAmplitude * math.Sin(float64(i)*1.1+float64(month.Year())*0.7+phase)
		value := base * (1 + wobble)
		if value < 0 {
			value = 0
		}

		points = append(points, insight.TrendPoint{
			Label: month.Format(monthLabel),
			Value: math.Round(value*100) / 100,
		})
	}
	return Series{Points: points}
}

// estimatedPoint is the last-resort fallback: one synthetic point derived
// from relevance and whatever timing/upside dimensions exist.
func estimatedPoint(in *insight.Insight) Series {
	value := in.Relevance * 100

	var sum float64
	n := 0
	for _, d := range []insight.Dimension{insight.DimWhyNow, insight.DimOpportunity} {
		if v, ok := NormalizeDimension(d, in.Dimension(d)); ok {
			sum += v
			n++
		}
	}
	if n > 0 {
		value *= sum / float64(n) / 10
	}

	return Series{
		Points: []insight.TrendPoint{{
			Label: seriesAnchor(in).Format(monthLabel),
			Value: math.Round(value*100) / 100,
		}},
		Estimated: true,
	}
}

// seriesAnchor picks the month the series ends on. Record timestamps keep
// the output a function of the insight alone; time.Now is the last resort
// for records that carry no timestamps at all.
func seriesAnchor(in *insight.Insight) time.Time {
	if !in.GeneratedAt.IsZero() {
		return in.GeneratedAt.UTC()
	}
	if !in.FetchedAt.IsZero() {
		return in.FetchedAt.UTC()
	}
	return time.Now().UTC()
}

// seriesPhase derives a stable wobble phase from the insight ID, so different
// insights get visually distinct curves without any randomness.
func seriesPhase(id string) float64 {
	h := fnv.New32a()
	h.Write([]byte(id))
	return float64(h.Sum32()%1000) / 1000 * 2 * math.Pi
}
