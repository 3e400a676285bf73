package filter

import (
	"fmt"
	"strings"
	"time"

	"github.com/gyeh/hisdash/internal/model"
)

// Period names a time-window preset.
type Period string

const (
	PeriodAll     Period = "all"
	PeriodToday   Period = "today"
	PeriodWeek    Period = "week"
	PeriodMonth   Period = "month"
	PeriodQuarter Period = "quarter"
	PeriodYear    Period = "year"
	Period7Days   Period = "7days"
	Period30Days  Period = "30days"
	PeriodCustom  Period = "custom"
)

// Periods lists every accepted preset.
var Periods = []Period{
	PeriodAll, PeriodToday, PeriodWeek, PeriodMonth, PeriodQuarter,
	PeriodYear, Period7Days, Period30Days, PeriodCustom,
}

// periodAliases maps older preset names to their current form.
var periodAliases = map[Period]Period{
	"thismonth": PeriodMonth,
}

// canonical folds case and spaces and resolves aliases.
func canonical(p Period) Period {
	p = Period(strings.ToLower(strings.TrimSpace(string(p))))
	if alias, ok := periodAliases[p]; ok {
		return alias
	}
	return p
}

// ValidPeriod reports whether p names a preset or an alias of one, ignoring
// case and spaces.
func ValidPeriod(p Period) bool {
	p = canonical(p)
	for _, q := range Periods {
		if p == q {
			return true
		}
	}
	return false
}

// Window is an inclusive [Start, End] range on the payment date. A nil bound
// is unbounded on that side.
type Window struct {
	Start *time.Time
	End   *time.Time
}

// Contains reports whether t lies within the window.
func (w Window) Contains(t time.Time) bool {
	if w.Start != nil && t.Before(*w.Start) {
		return false
	}
	if w.End != nil && t.After(*w.End) {
		return false
	}
	return true
}

// Predicate matches records whose payment date lies within the window.
func (w Window) Predicate() Predicate {
	if w.Start == nil && w.End == nil {
		return Any
	}
	return func(r *model.Record) bool { return w.Contains(r.PaidAt) }
}

// String renders the bounds, e.g. "2024-03-01 .. 2024-03-31".
func (w Window) String() string {
	if w.Start == nil && w.End == nil {
		return "all time"
	}
	return boundText(w.Start) + " .. " + boundText(w.End)
}

func boundText(t *time.Time) string {
	if t == nil {
		return "*"
	}
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t.Format("2006-01-02")
	}
	if isEndOfDay(*t) {
		return t.Format("2006-01-02")
	}
	return t.Format("2006-01-02 15:04")
}

// ResolvePeriod computes the window for a preset at instant now. Calendar
// presets cover the whole day, week (Monday start), month, quarter or year
// containing now. The rolling presets reach back 7 or 30 days with no upper
// bound. For custom, from and to are dates (2006-01-02, 02/01/2006 or RFC
// 3339) and either may be empty; a bare to date covers that whole day.
func ResolvePeriod(p Period, now time.Time, from, to string) (Window, error) {
	loc := now.Location()
	day := startOfDay(now)

	switch canonical(p) {
	case "", PeriodAll:
		return Window{}, nil
	case PeriodToday:
		return span(day, day.AddDate(0, 0, 1)), nil
	case PeriodWeek:
		offset := (int(day.Weekday()) + 6) % 7 // days since Monday
		start := day.AddDate(0, 0, -offset)
		return span(start, start.AddDate(0, 0, 7)), nil
	case PeriodMonth:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
		return span(start, start.AddDate(0, 1, 0)), nil
	case PeriodQuarter:
		q := (int(now.Month()) - 1) / 3
		start := time.Date(now.Year(), time.Month(q*3+1), 1, 0, 0, 0, 0, loc)
		return span(start, start.AddDate(0, 3, 0)), nil
	case PeriodYear:
		start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, loc)
		return span(start, start.AddDate(1, 0, 0)), nil
	case Period7Days:
		start := now.AddDate(0, 0, -7)
		return Window{Start: &start}, nil
	case Period30Days:
		start := now.AddDate(0, 0, -30)
		return Window{Start: &start}, nil
	case PeriodCustom:
		var w Window
		if from != "" {
			t, _, err := parseBound(from, loc)
			if err != nil {
				return Window{}, fmt.Errorf("parse from: %w", err)
			}
			w.Start = &t
		}
		if to != "" {
			t, bare, err := parseBound(to, loc)
			if err != nil {
				return Window{}, fmt.Errorf("parse to: %w", err)
			}
			if bare {
				t = endOfDay(t)
			}
			w.End = &t
		}
		if w.Start != nil && w.End != nil && w.End.Before(*w.Start) {
			return Window{}, fmt.Errorf("custom range ends before it starts: %s", w)
		}
		return w, nil
	default:
		return Window{}, fmt.Errorf("unknown period %q", p)
	}
}

var boundLayouts = []struct {
	layout string
	bare   bool
}{
	{"2006-01-02", true},
	{"02/01/2006", true},
	{"2/1/2006", true},
	{time.RFC3339, false},
	{"2006-01-02 15:04:05", false},
	{"2006-01-02 15:04", false},
}

func parseBound(s string, loc *time.Location) (time.Time, bool, error) {
	s = strings.TrimSpace(s)
	for _, l := range boundLayouts {
		if t, err := time.ParseInLocation(l.layout, s, loc); err == nil {
			return t, l.bare, nil
		}
	}
	return time.Time{}, false, fmt.Errorf("unrecognized date %q", s)
}

// span returns [start, next) as an inclusive window ending one nanosecond
// before next.
func span(start, next time.Time) Window {
	end := next.Add(-time.Nanosecond)
	return Window{Start: &start, End: &end}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return startOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

func isEndOfDay(t time.Time) bool {
	return t.Equal(endOfDay(t))
}
