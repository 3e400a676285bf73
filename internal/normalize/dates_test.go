package normalize

import (
	"testing"
	"time"
)

func TestDateParser_DayFirst(t *testing.T) {
	p := DateParser{Location: time.UTC, Now: func() time.Time { return testNow }}
	cases := []struct {
		in   string
		want time.Time
	}{
		{"15/03/2024", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
		{"5-3-2024", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)},
		{"01/12/2023 14:30", time.Date(2023, 12, 1, 14, 30, 0, 0, time.UTC)},
		{"01/12/2023 14:30:05", time.Date(2023, 12, 1, 14, 30, 5, 0, time.UTC)},
		{"29/02/2024", time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)},
		// Out-of-range time of day keeps the calendar date.
		{"15/03/2024 25:00", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
		{"15/03/2024 10:75:00", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
	}
	for _, c := range cases {
		got, ok := p.Parse(c.in)
		if !ok {
			t.Errorf("Parse(%q) failed", c.in)
			continue
		}
		if !got.Equal(c.want) {
			t.Errorf("Parse(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestDateParser_InvalidDayFirst(t *testing.T) {
	p := DateParser{Location: time.UTC, Now: func() time.Time { return testNow }}
	for _, in := range []string{"31/02/2024", "29/02/2023", "00/01/2024"} {
		if got, ok := p.Parse(in); ok {
			t.Errorf("Parse(%q) = %v, want failure", in, got)
		}
		if got := p.Coerce(in); !got.Equal(testNow) {
			t.Errorf("Coerce(%q) = %v, want now", in, got)
		}
	}
}

func TestDateParser_GenericLayouts(t *testing.T) {
	p := DateParser{Location: time.UTC}
	cases := []struct {
		in   string
		want time.Time
	}{
		{"2024-03-15", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
		{"2024-03-15 08:15:00", time.Date(2024, 3, 15, 8, 15, 0, 0, time.UTC)},
		{"2024-03-15T08:15:00Z", time.Date(2024, 3, 15, 8, 15, 0, 0, time.UTC)},
		{"2024/03/15", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
		{"March 15, 2024", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
		{"Mar 15 2024", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
		{"2024/3/5", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)},
		// A bare year is January 1st, not an Excel serial.
		{"2024", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		// Not a valid day-first date (month 25), read month-first.
		{"03/25/2024", time.Date(2024, 3, 25, 0, 0, 0, 0, time.UTC)},
	}
	for _, c := range cases {
		got, ok := p.Parse(c.in)
		if !ok || !got.Equal(c.want) {
			t.Errorf("Parse(%q) = %v, %v; want %v", c.in, got, ok, c.want)
		}
	}
}

func TestDateParser_Numbers(t *testing.T) {
	p := DateParser{Location: time.UTC}

	got, ok := p.Parse(45366.0)
	if !ok || !got.Equal(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("excel serial: got %v, %v", got, ok)
	}

	ms := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC).UnixMilli()
	got, ok = p.Parse(ms)
	if !ok || !got.Equal(time.UnixMilli(ms)) {
		t.Errorf("epoch millis: got %v, %v", got, ok)
	}

	got, ok = p.Parse("45366")
	if !ok || !got.Equal(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("serial text: got %v, %v", got, ok)
	}

	if _, ok := p.Parse(0); ok {
		t.Error("zero should not parse")
	}
}

func TestDateParser_Passthrough(t *testing.T) {
	p := DateParser{Location: time.UTC}
	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	if got, ok := p.Parse(ts); !ok || !got.Equal(ts) {
		t.Errorf("time.Time: got %v, %v", got, ok)
	}
	if got, ok := p.Parse(&ts); !ok || !got.Equal(ts) {
		t.Errorf("*time.Time: got %v, %v", got, ok)
	}
}

func TestDateParser_EmptyIsNow(t *testing.T) {
	p := DateParser{Location: time.UTC, Now: func() time.Time { return testNow }}
	for _, in := range []any{nil, "", "   "} {
		if got := p.Coerce(in); !got.Equal(testNow) {
			t.Errorf("Coerce(%#v) = %v, want now", in, got)
		}
	}
}
