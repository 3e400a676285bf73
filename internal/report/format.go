package report

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var vi = message.NewPrinter(language.Vietnamese)

// Money formats an amount in whole dong with Vietnamese digit grouping.
func Money(v float64) string {
	return vi.Sprintf("%.0f", v) + " đ"
}

// Number formats an integer with Vietnamese digit grouping.
func Number(v int) string {
	return vi.Sprintf("%d", v)
}

// Decimal formats v with one fractional digit.
func Decimal(v float64) string {
	return vi.Sprintf("%.1f", v)
}

// Percent formats v (already a percentage) with one fractional digit.
func Percent(v float64) string {
	return vi.Sprintf("%.1f", v) + "%"
}

// pad left-aligns s in width runes, truncating with an ellipsis.
func pad(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n > width {
		r := []rune(s)
		return string(r[:width-1]) + "…"
	}
	return s + strings.Repeat(" ", width-n)
}

// padLeft right-aligns s in width runes.
func padLeft(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return strings.Repeat(" ", width-n) + s
}
