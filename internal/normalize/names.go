package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	multiSpace   = regexp.MustCompile(`\s+`)
	separatorRun = regexp.MustCompile(`[\s\-.]+`)
	underscores  = regexp.MustCompile(`_+`)
)

// FoldHeader reduces a column header to the form used for fuzzy matching:
// diacritics removed, đ mapped to D, upper-cased, separators turned into
// single underscores.
func FoldHeader(h string) string {
	// transform chains carry state, so one is built per call.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	s, _, err := transform.String(t, h)
	if err != nil {
		s = h
	}
	s = strings.NewReplacer("đ", "D", "Đ", "D").Replace(s)
	s = strings.ToUpper(strings.TrimSpace(s))
	s = separatorRun.ReplaceAllString(s, "_")
	s = underscores.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}

// Text stringifies a raw cell value, trims it and collapses internal
// whitespace. Nil becomes "".
func Text(v any) string {
	var s string
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		s = x
	case []byte:
		s = string(x)
	case time.Time:
		if x.IsZero() {
			return ""
		}
		s = x.Format(time.RFC3339)
	case float64:
		s = strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		s = strconv.FormatFloat(float64(x), 'f', -1, 32)
	case fmt.Stringer:
		s = x.String()
	default:
		s = fmt.Sprint(x)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return multiSpace.ReplaceAllString(s, " ")
}

// TextOr returns Text(v), or def when the result is empty.
func TextOr(v any, def string) string {
	if s := Text(v); s != "" {
		return s
	}
	return def
}
