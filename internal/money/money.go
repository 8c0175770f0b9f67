// Package money formats monetary values for display. Stored amounts keep
// full float precision; only rendering applies the two-decimal, en-IN
// grouped form.
package money

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.MustParse("en-IN"))

// Format renders v with locale grouping and exactly two decimal places.
func Format(v float64) string {
	return printer.Sprint(number.Decimal(v,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2),
	))
}

// INR prefixes the formatted value with the rupee sign.
func INR(v float64) string {
	return "₹" + Format(v)
}
