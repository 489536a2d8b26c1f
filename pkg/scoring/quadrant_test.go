package scoring_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/ventradar/ventradar/pkg/scoring"
)

func TestClassifyQuadrant(t *testing.T) {
	Convey("Given the market map axes", t, func() {
		axes := scoring.MarketMapAxes

		Convey("Each quadrant resolves to its label", func() {
			So(scoring.ClassifyQuadrant(2, 8, axes), ShouldEqual, axes.LowXHighY)
			So(scoring.ClassifyQuadrant(8, 8, axes), ShouldEqual, axes.HighXHighY)
			So(scoring.ClassifyQuadrant(2, 2, axes), ShouldEqual, axes.LowXLowY)
			So(scoring.ClassifyQuadrant(8, 2, axes), ShouldEqual, axes.HighXLowY)
		})

		Convey("Boundary values round toward the high side on both axes", func() {
			So(scoring.ClassifyQuadrant(5, 5, axes), ShouldEqual, axes.HighXHighY)
			So(scoring.ClassifyQuadrant(5, 0, axes), ShouldEqual, axes.HighXLowY)
			So(scoring.ClassifyQuadrant(0, 5, axes), ShouldEqual, axes.LowXHighY)
		})

		Convey("Extremes classify without issue", func() {
			So(scoring.ClassifyQuadrant(0, 0, axes), ShouldEqual, axes.LowXLowY)
			So(scoring.ClassifyQuadrant(10, 10, axes), ShouldEqual, axes.HighXHighY)
		})
	})

	Convey("Given the competitor map axes", t, func() {
		axes := scoring.CompetitorMapAxes

		Convey("The same geometry applies with different labels", func() {
			So(scoring.ClassifyQuadrant(3, 9, axes), ShouldEqual, scoring.Quadrant("Value Leaders"))
			So(scoring.ClassifyQuadrant(9, 9, axes), ShouldEqual, scoring.Quadrant("Premium"))
			So(scoring.ClassifyQuadrant(3, 3, axes), ShouldEqual, scoring.Quadrant("Budget"))
			So(scoring.ClassifyQuadrant(9, 3, axes), ShouldEqual, scoring.Quadrant("Overpriced"))
		})
	})
}
