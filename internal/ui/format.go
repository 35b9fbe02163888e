package ui

import (
	"math"
	"strconv"
	"strings"
)

var viewUnits = []string{"", "k", "m", "b", "t"}

// FormatViews сокращает счетчик просмотров: 950, 1.2k, 12k, 123k, 3.4m.
// До 10 единиц разряда показывается один знак после точки, дальше целое число.
func FormatViews(views int) string {
	if views < 1000 { //nolint:mnd
		return strconv.Itoa(max(views, 0))
	}

	value := float64(views)
	unit := 0
	for value >= 1000 && unit < len(viewUnits)-1 {
		value /= 1000
		unit++
	}

	var rounded float64
	if value < 10 { //nolint:mnd
		rounded = math.Round(value*10) / 10 //nolint:mnd
	} else {
		rounded = math.Round(value)
	}
	if rounded >= 1000 && unit < len(viewUnits)-1 {
		rounded /= 1000
		unit++
	}

	text := strconv.FormatFloat(rounded, 'f', 1, 64)
	text = strings.TrimSuffix(text, ".0")
	return text + viewUnits[unit]
}
