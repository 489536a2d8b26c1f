package insight_test

import (
	"encoding/json"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/ventradar/ventradar/pkg/insight"
)

func TestDimensionValueJSON(t *testing.T) {
	Convey("Given upstream dimension JSON with mixed value types", t, func() {
		raw := `{
			"id": "ins-1",
			"title": "AI agent marketplaces",
			"relevance": 0.82,
			"dimensions": {
				"opportunity": 8,
				"problem": 6.5,
				"revenuePotential": "$$$"
			}
		}`

		Convey("Numbers and tier strings decode into their variants", func() {
			var in insight.Insight
			err := json.Unmarshal([]byte(raw), &in)
			So(err, ShouldBeNil)

			So(in.Dimension(insight.DimOpportunity).Kind, ShouldEqual, insight.KindNumber)
			So(in.Dimension(insight.DimOpportunity).Number, ShouldEqual, 8)
			So(in.Dimension(insight.DimProblem).Number, ShouldEqual, 6.5)
			So(in.Dimension(insight.DimRevenuePotential).Kind, ShouldEqual, insight.KindTier)
			So(in.Dimension(insight.DimRevenuePotential).Tier, ShouldEqual, "$$$")
		})

		Convey("Missing dimensions read as absent", func() {
			var in insight.Insight
			So(json.Unmarshal([]byte(raw), &in), ShouldBeNil)
			So(in.Dimension(insight.DimFounderFit).Kind, ShouldEqual, insight.KindAbsent)
		})

		Convey("Null and malformed values read as absent, never an error", func() {
			var v insight.DimensionValue
			So(json.Unmarshal([]byte(`null`), &v), ShouldBeNil)
			So(v.Kind, ShouldEqual, insight.KindAbsent)

			So(json.Unmarshal([]byte(`{"nested": true}`), &v), ShouldBeNil)
			So(v.Kind, ShouldEqual, insight.KindAbsent)
		})

		Convey("Values survive a marshal/unmarshal round trip", func() {
			set := insight.DimensionSet{
				insight.DimWhyNow:           insight.Number(7),
				insight.DimRevenuePotential: insight.Tier("$$$$"),
			}
			data, err := json.Marshal(set)
			So(err, ShouldBeNil)

			var back insight.DimensionSet
			So(json.Unmarshal(data, &back), ShouldBeNil)
			So(back.Value(insight.DimWhyNow), ShouldResemble, insight.Number(7))
			So(back.Value(insight.DimRevenuePotential), ShouldResemble, insight.Tier("$$$$"))
		})
	})
}

func TestPlatformMeta(t *testing.T) {
	Convey("Given the platform configuration table", t, func() {
		Convey("Known platforms carry their display metadata", func() {
			meta := insight.PlatformReddit.Meta()
			So(meta.Label, ShouldEqual, "Reddit")
			So(meta.Color, ShouldNotBeEmpty)
			So(meta.MemberThreshold, ShouldBeGreaterThan, 0)
		})

		Convey("Unknown platforms get a neutral fallback", func() {
			meta := insight.Platform("newplatform").Meta()
			So(meta.Label, ShouldEqual, "newplatform")
			So(meta.Color, ShouldNotBeEmpty)
		})
	})
}
