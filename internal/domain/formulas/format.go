// Package formulas holds the closed-form railway engineering calculations.
// Every function expects inputs that already passed validation and returns a
// fully formatted models.Result.
package formulas

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/railtools/internal/domain/models"
)

// Fixed renders x with the given number of decimals. Rounding is applied to
// the exact binary value with ties going away from zero, so 1.005 renders as
// "1.00" and 2.5 as "3".
func Fixed(x float64, places int32) string {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return strconv.FormatFloat(x, 'f', -1, 64)
	}

	exact := decimal.RequireFromString(strconv.FormatFloat(x, 'f', 1074, 64))
	out := exact.StringFixed(places)
	if x < 0 && !strings.HasPrefix(out, "-") {
		out = "-" + out
	}
	return out
}

// RoundTo rounds x the same way Fixed does and returns the number.
func RoundTo(x float64, places int32) float64 {
	v, err := strconv.ParseFloat(Fixed(x, places), 64)
	if err != nil {
		return x
	}
	return v
}

// Plain renders x with the shortest representation that round-trips.
func Plain(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}

func metric(key, label string, value float64, places int32, unit string) models.Metric {
	display := Plain(value)
	if places >= 0 {
		display = Fixed(value, places)
	}
	return models.Metric{Key: key, Label: label, Value: value, Display: display, Unit: unit}
}

// count builds an integer metric. A count saturated by ceilInt carries +Inf
// as its value so the result can be recognised as out of range.
func count(key, label string, value int, unit string) models.Metric {
	v := float64(value)
	if value == math.MaxInt {
		v = math.Inf(1)
	}
	return models.Metric{Key: key, Label: label, Value: v, Display: strconv.Itoa(value), Unit: unit}
}

func newResult(themeID, calculationType string) models.Result {
	theme, _ := models.LookupTheme(themeID)
	return models.Result{
		ThemeID:         themeID,
		ThemeName:       theme.Title,
		CalculationType: calculationType,
	}
}

// ceilInt rounds x up, saturating at math.MaxInt for values an int cannot hold.
func ceilInt(x float64) int {
	c := math.Ceil(x)
	if math.IsNaN(c) || c >= math.MaxInt {
		return math.MaxInt
	}
	if c <= math.MinInt {
		return math.MinInt
	}
	return int(c)
}
