package scoring

import (
	"strconv"
	"strings"
)

// Revenue tiers map to a strictly increasing sequence. Read-only.
var revenueTiers = map[string]float64{
	"$":    3,
	"$$":   5,
	"$$$":  7,
	"$$$$": 9,
}

// ParseMagnitude converts a compact volume string like "27.1K", "74.0M" or
// "1,250" into a number. Unparseable input yields 0, never an error.
func ParseMagnitude(s string) float64 {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0
	}

	n, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}

	upper := strings.ToUpper(s)
	if strings.Contains(upper, "K") {
		n *= 1_000
	} else if strings.Contains(upper, "M") {
		n *= 1_000_000
	}
	return n
}

// ParseGrowthPercent converts a growth string like "+514%" or "-12.5%" into
// a signed percentage. Unparseable input yields 0.
func ParseGrowthPercent(s string) float64 {
	cleaned := strings.NewReplacer("%", "", "+", "", ",", "", " ", "").Replace(s)
	if cleaned == "" {
		return 0
	}
	n, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return n
}

// Direction classifies the sign of a growth percentage.
type Direction string

const (
	Rising  Direction = "rising"
	Stable  Direction = "stable"
	Falling Direction = "falling"
)

// GrowthDirection maps a signed growth percentage to its direction.
func GrowthDirection(pct float64) Direction {
	switch {
	case pct > 0:
		return Rising
	case pct < 0:
		return Falling
	default:
		return Stable
	}
}

// RevenueTierValue returns the numeric value of a symbolic revenue tier.
// Unknown tiers return ok=false; callers must treat that as absent, not zero.
func RevenueTierValue(tier string) (float64, bool) {
	v, ok := revenueTiers[tier]
	return v, ok
}
