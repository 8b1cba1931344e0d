package format

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// Currency renders a value as en-US USD with no decimal places, rounding half
// away from zero to match the dashboard's display convention.
func Currency(v float64) string {
	rounded := decimal.NewFromFloat(v).Round(0).IntPart()
	if rounded < 0 {
		return printer.Sprintf("-$%d", -rounded)
	}
	return printer.Sprintf("$%d", rounded)
}

// Percent renders a value with one decimal place and a percent sign.
func Percent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

// Number renders a value with en-US thousands grouping.
func Number(v float64) string {
	return printer.Sprintf("%d", decimal.NewFromFloat(v).Round(0).IntPart())
}
