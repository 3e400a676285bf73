package normalize

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// Day-first dates as hospital exports write them, optionally followed by a
// time of day: 15/03/2024, 5-3-2024, 15/03/2024 14:30.
var dayFirst = regexp.MustCompile(`^(\d{1,2})[/\-](\d{1,2})[/\-](\d{4})(?:[ T](\d{1,2}):(\d{2})(?::(\d{2}))?)?`)

// Layouts tried after the day-first form.
var dateFormats = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"01-02-2006",
	"2006/1/2",
	"January 2, 2006",
	"Jan 2, 2006",
	"January 2 2006",
	"Jan 2 2006",
	"2 January 2006",
	"2 Jan 2006",
	"2006", // bare year, before the numeric fallback claims it as a serial
}

// Excel serial day numbers cover 1900-01-01 up to 9999-12-31.
const (
	minExcelSerial = 1
	maxExcelSerial = 2958465
)

// DateParser coerces raw cells into timestamps. The zero value parses in
// time.Local against the wall clock.
type DateParser struct {
	Location *time.Location
	Now      func() time.Time
}

func (p DateParser) loc() *time.Location {
	if p.Location != nil {
		return p.Location
	}
	return time.Local
}

func (p DateParser) now() time.Time {
	if p.Now != nil {
		return p.Now().In(p.loc())
	}
	return time.Now().In(p.loc())
}

// Coerce always returns a timestamp: the parsed value, or now when the input
// is absent or unparseable.
func (p DateParser) Coerce(raw any) time.Time {
	if t, ok := p.Parse(raw); ok {
		return t
	}
	return p.now()
}

// Parse reports the timestamp a raw cell holds. ok is false when the value is
// absent or cannot be interpreted as a date.
func (p DateParser) Parse(raw any) (time.Time, bool) {
	switch v := raw.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		return v, !v.IsZero()
	case *time.Time:
		if v == nil || v.IsZero() {
			return time.Time{}, false
		}
		return *v, true
	case string:
		return p.parseString(v)
	case []byte:
		return p.parseString(string(v))
	case float64:
		return p.parseNumber(v)
	case float32:
		return p.parseNumber(float64(v))
	case int:
		return p.parseNumber(float64(v))
	case int32:
		return p.parseNumber(float64(v))
	case int64:
		return p.parseNumber(float64(v))
	default:
		return p.parseString(fmt.Sprint(v))
	}
}

func (p DateParser) parseNumber(f float64) (time.Time, bool) {
	if f == 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return time.Time{}, false
	}
	if f >= minExcelSerial && f <= maxExcelSerial {
		t, err := excelize.ExcelDateToTime(f, false)
		if err != nil {
			return time.Time{}, false
		}
		// Serials carry a wall clock, not an instant.
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, p.loc()), true
	}
	return time.UnixMilli(int64(f)).In(p.loc()), true
}

func (p DateParser) parseString(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	if m := dayFirst.FindStringSubmatch(s); m != nil {
		if t, ok := p.dayFirstDate(m); ok {
			return t, true
		}
	}

	for _, layout := range dateFormats {
		if t, err := time.ParseInLocation(layout, s, p.loc()); err == nil {
			return t, true
		}
	}

	// Bare numbers in text cells: Excel serials or epoch millis.
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return p.parseNumber(f)
	}
	return time.Time{}, false
}

func (p DateParser) dayFirstDate(m []string) (time.Time, bool) {
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])

	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, p.loc())
	// time.Date normalizes out-of-range parts; a mismatch means the input was not a real date.
	if date.Day() != day || int(date.Month()) != month || date.Year() != year {
		return time.Time{}, false
	}
	if m[4] == "" {
		return date, true
	}

	hour, _ := strconv.Atoi(m[4])
	minute, _ := strconv.Atoi(m[5])
	var sec int
	if m[6] != "" {
		sec, _ = strconv.Atoi(m[6])
	}
	// A bad time of day keeps the calendar date at midnight.
	if hour > 23 || minute > 59 || sec > 59 {
		return date, true
	}
	return time.Date(year, time.Month(month), day, hour, minute, sec, 0, p.loc()), true
}

// IsBlank reports whether a raw cell carries no value at all.
func IsBlank(raw any) bool {
	switch v := raw.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	case time.Time:
		return v.IsZero()
	case *time.Time:
		return v == nil || v.IsZero()
	}
	return false
}
