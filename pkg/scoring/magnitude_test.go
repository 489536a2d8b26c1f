package scoring_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/ventradar/ventradar/pkg/scoring"
)

func TestParseMagnitude(t *testing.T) {
	Convey("Given compact volume strings", t, func() {
		Convey("K suffixes multiply by a thousand", func() {
			So(scoring.ParseMagnitude("27.1K"), ShouldAlmostEqual, 27100, 0.001)
			So(scoring.ParseMagnitude("2k"), ShouldAlmostEqual, 2000, 0.001)
		})

		Convey("M suffixes multiply by a million", func() {
			So(scoring.ParseMagnitude("74.0M"), ShouldAlmostEqual, 74_000_000, 0.001)
		})

		Convey("Plain numbers pass through, separators stripped", func() {
			So(scoring.ParseMagnitude("1234"), ShouldEqual, 1234)
			So(scoring.ParseMagnitude("$1,234"), ShouldEqual, 1234)
			So(scoring.ParseMagnitude("-5"), ShouldEqual, -5)
		})

		Convey("Empty or digit-free input yields zero, never an error", func() {
			So(scoring.ParseMagnitude(""), ShouldEqual, 0)
			So(scoring.ParseMagnitude("n/a"), ShouldEqual, 0)
			So(scoring.ParseMagnitude("---"), ShouldEqual, 0)
		})
	})
}

func TestParseGrowthPercent(t *testing.T) {
	Convey("Given growth strings", t, func() {
		Convey("Signs and percent symbols parse correctly", func() {
			So(scoring.ParseGrowthPercent("+514%"), ShouldEqual, 514)
			So(scoring.ParseGrowthPercent("-12.5%"), ShouldAlmostEqual, -12.5, 0.001)
			So(scoring.ParseGrowthPercent("1,200%"), ShouldEqual, 1200)
		})

		Convey("Non-numeric input yields zero", func() {
			So(scoring.ParseGrowthPercent(""), ShouldEqual, 0)
			So(scoring.ParseGrowthPercent("flat"), ShouldEqual, 0)
		})

		Convey("The sign drives the direction classification", func() {
			So(scoring.GrowthDirection(514), ShouldEqual, scoring.Rising)
			So(scoring.GrowthDirection(-3), ShouldEqual, scoring.Falling)
			So(scoring.GrowthDirection(0), ShouldEqual, scoring.Stable)
		})
	})
}

func TestRevenueTierValue(t *testing.T) {
	Convey("Given symbolic revenue tiers", t, func() {
		Convey("Known tiers map to the fixed increasing sequence", func() {
			cases := map[string]float64{"$": 3, "$$": 5, "$$$": 7, "$$$$": 9}
			for tier, want := range cases {
				v, ok := scoring.RevenueTierValue(tier)
				So(ok, ShouldBeTrue)
				So(v, ShouldEqual, want)
			}
		})

		Convey("Unknown tiers report absent, not zero", func() {
			_, ok := scoring.RevenueTierValue("bogus")
			So(ok, ShouldBeFalse)

			_, ok = scoring.RevenueTierValue("")
			So(ok, ShouldBeFalse)
		})
	})
}
