// currency_format.go renders monetary values for the report display sections.
// All arithmetic happens upstream in decimal; floats appear only at the final
// formatting step, after rounding to the display scale.
package utils

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const displayScale = 2

// CurrencyFormatter formats decimal amounts as locale-correct currency
// strings (symbol, thousands separator, two fraction digits).
type CurrencyFormatter struct {
	printer *message.Printer
	unit    currency.Unit
}

// NewCurrencyFormatter builds a formatter for the given BCP 47 locale tag and
// ISO 4217 currency code. Unparseable values fall back to pt-BR / BRL, the
// locale of the point-of-sale systems this service reports on.
func NewCurrencyFormatter(locale, currencyCode string) *CurrencyFormatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.BrazilianPortuguese
	}
	unit, err := currency.ParseISO(currencyCode)
	if err != nil {
		unit = currency.BRL
	}
	return &CurrencyFormatter{
		printer: message.NewPrinter(tag),
		unit:    unit,
	}
}

// Format renders the amount with the currency symbol, e.g. "R$ 1.234,56".
// Negative amounts keep their sign.
func (f *CurrencyFormatter) Format(amount decimal.Decimal) string {
	v, _ := amount.Round(displayScale).Float64()
	return f.printer.Sprintf("%v %v", currency.Symbol(f.unit), number.Decimal(v, number.Scale(displayScale)))
}

// FormatSigned renders the amount with an explicit sign prefix: "+" for
// additive lines (supply) and "-" for subtractive ones (sangria,
// devolution). The sign is presentation only; stored totals stay unprefixed.
func (f *CurrencyFormatter) FormatSigned(amount decimal.Decimal) string {
	if amount.IsNegative() {
		return "- " + f.Format(amount.Neg())
	}
	return "+ " + f.Format(amount)
}
