package checkout

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PriceFormatter renders money amounts for the order summary.
type PriceFormatter struct {
	symbol  string
	printer *message.Printer
}

// NewPriceFormatter creates a formatter that prefixes symbol and groups digits
// per locale (a BCP 47 tag such as "en-US"). An unparseable locale falls back to en-US.
func NewPriceFormatter(symbol, locale string) *PriceFormatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.AmericanEnglish
	}

	return &PriceFormatter{
		symbol:  symbol,
		printer: message.NewPrinter(tag),
	}
}

// Format renders amount with two decimals, e.g. "₹1,234.50".
func (f *PriceFormatter) Format(amount decimal.Decimal) string {
	return f.symbol + f.printer.Sprintf("%.2f", amount.Round(2).InexactFloat64())
}
