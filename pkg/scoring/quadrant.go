package scoring

// Quadrant is one of four named regions of a 2-D positioning chart.
type Quadrant string

// AxisLabels supplies the semantic quadrant names for one chart. The
// classifier itself is axis-agnostic.
type AxisLabels struct {
	LowXHighY  Quadrant
	HighXHighY Quadrant
	LowXLowY   Quadrant
	HighXLowY  Quadrant
}

// MarketMapAxes names quadrants for the feasibility (x) vs opportunity (y)
// market map.
var MarketMapAxes = AxisLabels{
	LowXHighY:  "Moonshots",
	HighXHighY: "Prime Targets",
	LowXLowY:   "Dead Ends",
	HighXLowY:  "Safe Bets",
}

// CompetitorMapAxes names quadrants for the price (x) vs feature depth (y)
// competitor map.
var CompetitorMapAxes = AxisLabels{
	LowXHighY:  "Value Leaders",
	HighXHighY: "Premium",
	LowXLowY:   "Budget",
	HighXLowY:  "Overpriced",
}

const quadrantMidpoint = 5

// ClassifyQuadrant maps two 0-10 axis scores onto a named quadrant. The
// split is a fixed midpoint at 5; exact boundary values round toward the
// high side on both axes.
func ClassifyQuadrant(x, y float64, axes AxisLabels) Quadrant {
	highX := x >= quadrantMidpoint
	highY := y >= quadrantMidpoint

	switch {
	case highX && highY:
		return axes.HighXHighY
	case !highX && highY:
		return axes.LowXHighY
	case highX && !highY:
		return axes.HighXLowY
	default:
		return axes.LowXLowY
	}
}
