package views

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var wonPrinter = message.NewPrinter(language.Korean)

// FormatWon renders an amount in won with digit grouping, e.g. "1,234,567원"
func FormatWon(amount int64) string {
	return wonPrinter.Sprintf("%d원", amount)
}
