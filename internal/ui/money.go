// Package ui formats values for terminal output.
package ui

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.English)

// FormatMoney renders amount with the currency symbol and thousands
// grouping, e.g. -$1,234.50. An empty code means USD; a code that is not a
// known ISO 4217 currency is printed as a prefix.
func FormatMoney(amount decimal.Decimal, code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		code = "USD"
	}

	var symbol string
	if unit, err := currency.ParseISO(code); err == nil {
		symbol = printer.Sprint(currency.Symbol(unit))
	} else {
		symbol = code + " "
	}

	rounded := amount.Round(2)
	digits := printer.Sprint(number.Decimal(rounded.Abs().InexactFloat64(),
		number.MinFractionDigits(2), number.MaxFractionDigits(2)))

	if rounded.IsNegative() {
		return "-" + symbol + digits
	}
	return symbol + digits
}

// FormatPercent renders v with one decimal and a percent sign.
func FormatPercent(v float64) string {
	return printer.Sprintf("%.1f%%", v)
}
