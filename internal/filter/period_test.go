package filter

import (
	"testing"
	"time"
)

// Wednesday.
var now = time.Date(2024, 5, 15, 14, 30, 0, 0, time.UTC)

func mustResolve(t *testing.T, p Period, from, to string) Window {
	t.Helper()
	w, err := ResolvePeriod(p, now, from, to)
	if err != nil {
		t.Fatalf("ResolvePeriod(%s): %v", p, err)
	}
	return w
}

func TestResolvePeriod_Calendar(t *testing.T) {
	cases := []struct {
		p          Period
		start, end time.Time
	}{
		{PeriodToday, time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC), time.Date(2024, 5, 16, 0, 0, 0, 0, time.UTC)},
		{PeriodWeek, time.Date(2024, 5, 13, 0, 0, 0, 0, time.UTC), time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)},
		{PeriodMonth, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
		{PeriodQuarter, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)},
		{PeriodYear, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, c := range cases {
		w := mustResolve(t, c.p, "", "")
		if w.Start == nil || !w.Start.Equal(c.start) {
			t.Errorf("%s start = %v, want %v", c.p, w.Start, c.start)
		}
		wantEnd := c.end.Add(-time.Nanosecond)
		if w.End == nil || !w.End.Equal(wantEnd) {
			t.Errorf("%s end = %v, want %v", c.p, w.End, wantEnd)
		}
	}
}

func TestResolvePeriod_ThisMonthAlias(t *testing.T) {
	got := mustResolve(t, "thisMonth", "", "")
	want := mustResolve(t, PeriodMonth, "", "")
	if !got.Start.Equal(*want.Start) || !got.End.Equal(*want.End) {
		t.Errorf("thisMonth = %s, want %s", got, want)
	}
}

func TestResolvePeriod_WeekStartsMonday(t *testing.T) {
	sunday := time.Date(2024, 5, 19, 23, 0, 0, 0, time.UTC)
	w, err := ResolvePeriod(PeriodWeek, sunday, "", "")
	if err != nil {
		t.Fatal(err)
	}
	if want := time.Date(2024, 5, 13, 0, 0, 0, 0, time.UTC); !w.Start.Equal(want) {
		t.Errorf("start = %v, want Monday %v", w.Start, want)
	}
	monday := time.Date(2024, 5, 13, 0, 0, 0, 0, time.UTC)
	w, _ = ResolvePeriod(PeriodWeek, monday, "", "")
	if !w.Start.Equal(monday) {
		t.Errorf("start = %v, want %v", w.Start, monday)
	}
}

func TestResolvePeriod_Rolling(t *testing.T) {
	w := mustResolve(t, Period7Days, "", "")
	if w.End != nil {
		t.Errorf("rolling window should be open-ended, got end %v", w.End)
	}
	if want := now.AddDate(0, 0, -7); !w.Start.Equal(want) {
		t.Errorf("start = %v, want %v", w.Start, want)
	}
	w = mustResolve(t, Period30Days, "", "")
	if want := now.AddDate(0, 0, -30); !w.Start.Equal(want) {
		t.Errorf("start = %v, want %v", w.Start, want)
	}
}

func TestResolvePeriod_All(t *testing.T) {
	for _, p := range []Period{"", PeriodAll, "ALL"} {
		w := mustResolve(t, p, "", "")
		if w.Start != nil || w.End != nil {
			t.Errorf("%q: expected unbounded window, got %s", p, w)
		}
	}
}

func TestResolvePeriod_CustomEndOfDay(t *testing.T) {
	w := mustResolve(t, PeriodCustom, "2024-03-01", "31/03/2024")
	if !w.Start.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("start = %v", w.Start)
	}
	last := time.Date(2024, 3, 31, 23, 59, 0, 0, time.UTC)
	if !w.Contains(last) {
		t.Errorf("window %s should contain %v", w, last)
	}
	if w.Contains(time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)) {
		t.Error("window should stop at end of March 31")
	}
	if got := w.String(); got != "2024-03-01 .. 2024-03-31" {
		t.Errorf("String() = %q", got)
	}
}

func TestResolvePeriod_CustomHalfOpen(t *testing.T) {
	w := mustResolve(t, PeriodCustom, "2024-03-01", "")
	if w.End != nil {
		t.Errorf("expected open end, got %v", w.End)
	}
	if got := w.String(); got != "2024-03-01 .. *" {
		t.Errorf("String() = %q", got)
	}
}

func TestResolvePeriod_Errors(t *testing.T) {
	if _, err := ResolvePeriod("fortnight", now, "", ""); err == nil {
		t.Error("expected error for unknown preset")
	}
	if _, err := ResolvePeriod(PeriodCustom, now, "yesterday", ""); err == nil {
		t.Error("expected error for unparseable bound")
	}
	if _, err := ResolvePeriod(PeriodCustom, now, "2024-03-10", "2024-03-01"); err == nil {
		t.Error("expected error for inverted range")
	}
}

func TestSelection_ResolveIsStable(t *testing.T) {
	sel := Selection{Period: PeriodMonth}
	a, _ := sel.Resolve(now)
	b, _ := sel.Resolve(now.Add(time.Hour))
	if a.String() != b.String() {
		t.Errorf("bound text moved: %s vs %s", a, b)
	}
}

func TestValidPeriod(t *testing.T) {
	for _, p := range []Period{"all", " Month ", "7DAYS", "custom", "thisMonth"} {
		if !ValidPeriod(p) {
			t.Errorf("ValidPeriod(%q) = false", p)
		}
	}
	for _, p := range []Period{"", "fortnight"} {
		if ValidPeriod(p) {
			t.Errorf("ValidPeriod(%q) = true", p)
		}
	}
}
