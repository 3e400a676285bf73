package normalize

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	currencyMarks = strings.NewReplacer("VNĐ", "", "vnđ", "", "VND", "", "vnd", "", "₫", "", "đ", "", "Đ", "", " ", "", "\u00a0", "")
	commaGrouped  = regexp.MustCompile(`^-?\d{1,3}(,\d{3})+$`)
	dotGrouped    = regexp.MustCompile(`^-?\d{1,3}(\.\d{3}){2,}$`)
)

// Number coerces a raw cell to a float64. Native numerics pass through,
// strings lose currency marks and thousands separators. NaN, infinities and
// anything unparseable become 0.
func Number(v any) float64 {
	var f float64
	switch x := v.(type) {
	case nil:
		return 0
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int8:
		f = float64(x)
	case int16:
		f = float64(x)
	case int32:
		f = float64(x)
	case int64:
		f = float64(x)
	case uint:
		f = float64(x)
	case uint8:
		f = float64(x)
	case uint16:
		f = float64(x)
	case uint32:
		f = float64(x)
	case uint64:
		f = float64(x)
	case bool:
		return 0
	case string:
		f = parseNumber(x)
	default:
		f = parseNumber(fmt.Sprint(x))
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// Amount coerces a money cell. Negative values are kept unless clamp is set.
func Amount(v any, clamp bool) float64 {
	f := Number(v)
	if clamp && f < 0 {
		return 0
	}
	return f
}

// Days coerces a length-of-stay cell to a non-negative whole number of days.
func Days(v any) int {
	f := math.Round(Number(v))
	if f <= 0 {
		return 0
	}
	if f > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(f)
}

func parseNumber(s string) float64 {
	s = currencyMarks.Replace(strings.TrimSpace(s))
	if s == "" {
		return 0
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}

	hasComma := strings.Contains(s, ",")
	hasDot := strings.Contains(s, ".")
	switch {
	case hasComma && hasDot:
		// The separator that appears last is the decimal one.
		if strings.LastIndex(s, ",") > strings.LastIndex(s, ".") {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case hasComma && commaGrouped.MatchString(s):
		s = strings.ReplaceAll(s, ",", "")
	case hasComma:
		s = strings.Replace(s, ",", ".", 1)
	case hasDot && dotGrouped.MatchString(s):
		s = strings.ReplaceAll(s, ".", "")
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}
