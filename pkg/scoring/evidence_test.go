package scoring_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/ventradar/ventradar/pkg/insight"
	"github.com/ventradar/ventradar/pkg/scoring"
)

func TestAggregateConfidence(t *testing.T) {
	Convey("Given insights with varying evidence", t, func() {
		Convey("Confidence comes from relevance alone, independent of evidence", func() {
			in := &insight.Insight{Relevance: 0.9}
			conf := scoring.AggregateConfidence(in)
			So(conf.EvidenceCount, ShouldEqual, 0)
			So(conf.Tier, ShouldEqual, scoring.ConfidenceHigh)
		})

		Convey("Tier thresholds sit at 0.8 and 0.5", func() {
			So(scoring.AggregateConfidence(&insight.Insight{Relevance: 0.8}).Tier, ShouldEqual, scoring.ConfidenceHigh)
			So(scoring.AggregateConfidence(&insight.Insight{Relevance: 0.79}).Tier, ShouldEqual, scoring.ConfidenceMedium)
			So(scoring.AggregateConfidence(&insight.Insight{Relevance: 0.5}).Tier, ShouldEqual, scoring.ConfidenceMedium)
			So(scoring.AggregateConfidence(&insight.Insight{Relevance: 0.49}).Tier, ShouldEqual, scoring.ConfidenceLow)
		})

		Convey("Evidence counts signals and keywords individually, scores and source once", func() {
			rate := 0.12
			in := &insight.Insight{
				Relevance: 0.4,
				CommunitySignals: []insight.CommunitySignal{
					{Platform: insight.PlatformReddit, Score: 8, Members: 120000, EngagementRate: &rate},
					{Platform: insight.PlatformHackerNews, Score: 6, Members: 40000},
				},
				TrendKeywords: []insight.TrendKeyword{
					{Keyword: "ai agents", Volume: "27.1K", Growth: "+514%"},
				},
				Dimensions:    insight.DimensionSet{insight.DimOpportunity: insight.Number(7)},
				PrimarySource: &insight.SourceRef{Platform: insight.PlatformReddit, URL: "https://reddit.com/r/startups/1"},
			}

			conf := scoring.AggregateConfidence(in)
			So(conf.EvidenceCount, ShouldEqual, 5) // 2 signals + 1 keyword + dims + source
			So(conf.Tier, ShouldEqual, scoring.ConfidenceLow)
		})

		Convey("A dimension set with only unknown tiers does not count as scores", func() {
			in := &insight.Insight{
				Relevance:  0.6,
				Dimensions: insight.DimensionSet{insight.DimRevenuePotential: insight.Tier("???")},
			}
			So(scoring.AggregateConfidence(in).EvidenceCount, ShouldEqual, 0)
		})
	})
}

func TestEndToEndScenario(t *testing.T) {
	Convey("Given the canonical two-dimension trending insight", t, func() {
		in := &insight.Insight{
			ID:        "ins-e2e",
			Relevance: 0.85,
			Dimensions: insight.DimensionSet{
				insight.DimOpportunity: insight.Number(9),
				insight.DimWhyNow:      insight.Number(8),
			},
			TrendKeywords: []insight.TrendKeyword{
				{Keyword: "ai agents", Volume: "27.1K", Growth: "+514%"},
			},
		}

		Convey("Composite is the mean of the two present dimensions", func() {
			So(scoring.OverallScore(in), ShouldAlmostEqual, 8.5, 0.0001)
		})

		Convey("Confidence is high with one evidence group counted", func() {
			conf := scoring.AggregateConfidence(in)
			So(conf.Tier, ShouldEqual, scoring.ConfidenceHigh)
			So(conf.EvidenceCount, ShouldEqual, 2) // keyword + dimension scores
		})

		Convey("The synthesized series has 36 points rising toward 27100", func() {
			got := scoring.BuildSeries(in)
			So(got.Points, ShouldHaveLength, 36)
			last := got.Points[len(got.Points)-1].Value
			So(last, ShouldBeBetween, 27100*0.84, 27100*1.16)
			So(last, ShouldBeGreaterThan, got.Points[0].Value)
		})
	})
}
