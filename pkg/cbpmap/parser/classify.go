package parser

import "strings"

// UnitInfo holds the unit fields inferred from a description.
type UnitInfo struct {
	UnitType string
	DataType string
	DataUnit string
}

type unitRule struct {
	needles []string
	info    UnitInfo
}

// unitRules is evaluated in order; the first rule with a matching needle wins.
var unitRules = []unitRule{
	{[]string{"%", "percent", "percentage"}, UnitInfo{"LEVEL", "PERCENT", "PERCENT"}},
	{[]string{"index", "idx"}, UnitInfo{"LEVEL", "INDEX", "INDEX"}},
	{[]string{"$", "dollar", "nzd", "millions", "currency"}, UnitInfo{"FLOW", "CURRENCY", "NZD"}},
}

var defaultUnit = UnitInfo{"FLOW", "UNITS", "UNIT"}

// ClassifyUnits infers UNIT_TYPE, DATA_TYPE and DATA_UNIT from a description.
func ClassifyUnits(description string) UnitInfo {
	lower := strings.ToLower(description)
	for _, rule := range unitRules {
		if containsAny(lower, rule.needles) {
			return rule.info
		}
	}
	return defaultUnit
}

// Multiplier returns the power of ten the values are expressed in.
func Multiplier(description string) int {
	lower := strings.ToLower(description)
	switch {
	case strings.Contains(lower, "millions"):
		return 9
	case containsAny(lower, []string{"000s", "thousands"}):
		return 3
	default:
		return 0
	}
}

// SeasonalAdjustment returns "SA" for seasonally adjusted series, else "NSA".
func SeasonalAdjustment(description string) string {
	if containsAny(strings.ToLower(description), []string{"seasonally adjusted", "seasonal adjustment"}) {
		return "SA"
	}
	return "NSA"
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
